package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-service/internal/api/dto"
	"github.com/spec-kit/lead-service/internal/config"
	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/service"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

const (
	embedKeyHeader      = "X-Embed-Key"
	webhookSecretHeader = "X-Webhook-Secret"
)

// PublicIntakeHandler serves the unauthenticated ingestion endpoints: the
// website embed widget, the chat widget and third-party channel webhooks.
type PublicIntakeHandler struct {
	intake *service.IntakeService
	cfg    config.IntakeConfig
}

// NewPublicIntakeHandler constructs handler.
func NewPublicIntakeHandler(intake *service.IntakeService, cfg config.IntakeConfig) *PublicIntakeHandler {
	return &PublicIntakeHandler{intake: intake, cfg: cfg}
}

// EmbedLead POST /public/embed/leads.
func (h *PublicIntakeHandler) EmbedLead(c *fiber.Ctx) error {
	if h.cfg.EmbedKey != "" && c.Get(embedKeyHeader) != h.cfg.EmbedKey {
		return apperrors.NewUnauthorized("invalid embed key")
	}
	var req dto.EmbedLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.intake.Submit(c.Context(), service.IntakeInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Channel:    domain.LeadChannelWebsiteChat,
		RawMessage: req.Message,
		Origin:     service.OriginEmbed,
	})
	if err != nil {
		return err
	}
	return c.Status(intakeStatus(result)).JSON(fiber.Map{"data": intakeResponse(result)})
}

// ChatMessage POST /public/chat/messages. Widgets without a free-text box
// send structured fields only; a raw message is synthesized from them so
// extraction still has something to chew on.
func (h *PublicIntakeHandler) ChatMessage(c *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = synthesizeChatMessage(req)
	}
	if message == "" {
		return apperrors.NewValidationError("message or structured fields required", nil)
	}

	result, err := h.intake.Submit(c.Context(), service.IntakeInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Channel:    domain.LeadChannelWebsiteChat,
		RawMessage: message,
		Origin:     service.OriginChat,
	})
	if err != nil {
		return err
	}
	return c.Status(intakeStatus(result)).JSON(fiber.Map{"data": intakeResponse(result)})
}

// WebhookLead POST /webhooks/:channel.
func (h *PublicIntakeHandler) WebhookLead(c *fiber.Ctx) error {
	if h.cfg.WebhookSharedSecret == "" || c.Get(webhookSecretHeader) != h.cfg.WebhookSharedSecret {
		return apperrors.NewUnauthorized("invalid webhook secret")
	}

	channel := domain.LeadChannel(strings.ToUpper(strings.TrimSpace(c.Params("channel"))))
	if !domain.ValidChannel(channel) {
		return apperrors.NewValidationError("unknown channel", map[string]any{"channel": c.Params("channel")})
	}

	var req dto.WebhookLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.intake.Submit(c.Context(), service.IntakeInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Channel:    channel,
		RawMessage: req.Message,
		Origin:     service.OriginWebhook,
	})
	if err != nil {
		return err
	}
	return c.Status(intakeStatus(result)).JSON(fiber.Map{"data": intakeResponse(result)})
}

func intakeStatus(result *service.IntakeResult) int {
	if result.Merged {
		return http.StatusOK
	}
	return http.StatusCreated
}

func synthesizeChatMessage(req dto.ChatMessageRequest) string {
	parts := []string{}
	if req.PropertyType != nil && *req.PropertyType != "" {
		parts = append(parts, fmt.Sprintf("Looking for a %s", *req.PropertyType))
	}
	if req.Location != nil && *req.Location != "" {
		parts = append(parts, fmt.Sprintf("in %s", *req.Location))
	}
	if req.Budget != nil && *req.Budget != "" {
		parts = append(parts, fmt.Sprintf("budget %s", *req.Budget))
	}
	if req.Timeline != nil && *req.Timeline != "" {
		parts = append(parts, fmt.Sprintf("timeline %s", *req.Timeline))
	}
	return strings.Join(parts, ", ")
}
