package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-service/internal/api/dto"
	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/service"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

// ReportsHandler serves analytics, scheduled reports and the audit trail.
type ReportsHandler struct {
	reports *service.ReportService
	audit   *service.AuditService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService, auditService *service.AuditService) *ReportsHandler {
	return &ReportsHandler{reports: reportService, audit: auditService}
}

// AnalyticsSummary GET /analytics/summary.
func (h *ReportsHandler) AnalyticsSummary(c *fiber.Ctx) error {
	summary, err := h.reports.Summary(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summaryResponse(summary)})
}

// CreateScheduledReport POST /reports/scheduled.
func (h *ReportsHandler) CreateScheduledReport(c *fiber.Ctx) error {
	var req dto.CreateScheduledReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.reports.CreateScheduledReport(c.Context(), req.RecipientEmail, req.Cadence)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": scheduledReportResponse(report)})
}

// ListScheduledReports GET /reports/scheduled.
func (h *ReportsHandler) ListScheduledReports(c *fiber.Ctx) error {
	reports, err := h.reports.ListScheduledReports(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ScheduledReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, scheduledReportResponse(&reports[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListAudit GET /audit.
func (h *ReportsHandler) ListAudit(c *fiber.Ctx) error {
	entries, err := h.audit.ListRecent(c.Context(), parseInt(c.Query("limit"), 50))
	if err != nil {
		return err
	}
	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.AuditEntryResponse{
			ID:          entry.ID,
			ActorUserID: entry.ActorUserID,
			Action:      entry.Action,
			Resource:    entry.Resource,
			Details:     entry.Details,
			CreatedAt:   entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func summaryResponse(summary *domain.AnalyticsSummary) dto.AnalyticsSummaryResponse {
	byStatus := make(map[string]int64, len(summary.ByStatus))
	for status, count := range summary.ByStatus {
		byStatus[string(status)] = count
	}
	byChannel := make(map[string]int64, len(summary.ByChannel))
	for channel, count := range summary.ByChannel {
		byChannel[string(channel)] = count
	}
	return dto.AnalyticsSummaryResponse{
		TotalLeads:     summary.TotalLeads,
		ByStatus:       byStatus,
		ByChannel:      byChannel,
		AverageScore:   summary.AverageScore,
		UnassignedOpen: summary.UnassignedOpen,
	}
}

func scheduledReportResponse(report *domain.ScheduledReport) dto.ScheduledReportResponse {
	return dto.ScheduledReportResponse{
		ID:             report.ID,
		RecipientEmail: report.RecipientEmail,
		Cadence:        report.Cadence,
		CreatedAt:      report.CreatedAt,
	}
}
