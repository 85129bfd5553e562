package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-service/internal/api/dto"
	"github.com/spec-kit/lead-service/internal/auth"
	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/repository"
	"github.com/spec-kit/lead-service/internal/service"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

// LeadsHandler manages the operator-facing lead endpoints.
type LeadsHandler struct {
	intake          *service.IntakeService
	leads           *service.LeadService
	recommendations *service.RecommendationService
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(intake *service.IntakeService, leads *service.LeadService, recommendations *service.RecommendationService) *LeadsHandler {
	return &LeadsHandler{intake: intake, leads: leads, recommendations: recommendations}
}

// CreateLead POST /leads.
func (h *LeadsHandler) CreateLead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.intake.Submit(c.Context(), service.IntakeInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Channel:     req.Channel,
		RawMessage:  req.Message,
		Origin:      service.OriginAPI,
		ActorUserID: &principal.User.ID,
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.Merged {
		status = http.StatusOK
	}
	return c.Status(status).JSON(fiber.Map{"data": intakeResponse(result)})
}

// ListLeads GET /leads.
func (h *LeadsHandler) ListLeads(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	leads, err := h.leads.ListLeads(c.Context(), principal.User, parseLeadQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.LeadResponse, 0, len(leads))
	for i := range leads {
		items = append(items, leadResponse(&leads[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetLead GET /leads/:id.
func (h *LeadsHandler) GetLead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	lead, err := h.leads.GetLead(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leadResponse(lead)})
}

// UpdateLead PATCH /leads/:id.
func (h *LeadsHandler) UpdateLead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == nil && req.AssignedAgentID == nil {
		return apperrors.NewValidationError("status or assigned_agent_id required", nil)
	}

	lead, err := h.leads.UpdateLead(c.Context(), principal.User, c.Params("id"), service.LeadUpdateInput{
		Status:          req.Status,
		AssignedAgentID: req.AssignedAgentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leadResponse(lead)})
}

// Recommendations GET /leads/:id/recommendations.
func (h *LeadsHandler) Recommendations(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	matches, err := h.recommendations.Recommend(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.PropertyMatchResponse, 0, len(matches))
	for _, match := range matches {
		items = append(items, dto.PropertyMatchResponse{
			Property:   propertyResponse(&match.Property),
			MatchScore: match.MatchScore,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseLeadQuery(c *fiber.Ctx) repository.LeadFilter {
	filter := repository.LeadFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.LeadStatus(strings.TrimSpace(part)))
		}
	}
	if channelStr := c.Query("channel"); channelStr != "" {
		channel := domain.LeadChannel(strings.TrimSpace(channelStr))
		filter.Channel = &channel
	}
	if scoreStr := c.Query("min_score"); scoreStr != "" {
		if parsed, err := strconv.ParseFloat(scoreStr, 64); err == nil {
			filter.MinScore = &parsed
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func leadResponse(lead *domain.Lead) dto.LeadResponse {
	return dto.LeadResponse{
		ID:              lead.ID,
		FullName:        lead.FullName,
		Email:           lead.Email,
		Phone:           lead.Phone,
		Channel:         lead.Channel,
		RawMessage:      lead.RawMessage,
		Status:          lead.Status,
		Score:           lead.Score,
		PropertyType:    lead.PropertyType,
		Location:        lead.Location,
		Budget:          lead.Budget,
		Timeline:        lead.Timeline,
		AssignedAgentID: lead.AssignedAgentID,
		CreatedAt:       lead.CreatedAt,
	}
}

func intakeResponse(result *service.IntakeResult) dto.IntakeResponse {
	return dto.IntakeResponse{
		Lead:   leadResponse(result.Lead),
		Merged: result.Merged,
	}
}
