package dto

import (
	"time"

	"github.com/spec-kit/lead-service/internal/domain"
)

// CreateScheduledReportRequest payload.
type CreateScheduledReportRequest struct {
	RecipientEmail string               `json:"recipient_email"`
	Cadence        domain.ReportCadence `json:"cadence"`
}

// ScheduledReportResponse is the subscription representation.
type ScheduledReportResponse struct {
	ID             string               `json:"id"`
	RecipientEmail string               `json:"recipient_email"`
	Cadence        domain.ReportCadence `json:"cadence"`
	CreatedAt      time.Time            `json:"created_at"`
}

// AnalyticsSummaryResponse aggregates lead counts for dashboards.
type AnalyticsSummaryResponse struct {
	TotalLeads     int64            `json:"total_leads"`
	ByStatus       map[string]int64 `json:"by_status"`
	ByChannel      map[string]int64 `json:"by_channel"`
	AverageScore   float64          `json:"average_score"`
	UnassignedOpen int64            `json:"unassigned_open"`
}

// AuditEntryResponse represents one audit trail entry.
type AuditEntryResponse struct {
	ID          string    `json:"id"`
	ActorUserID *string   `json:"actor_user_id"`
	Action      string    `json:"action"`
	Resource    string    `json:"resource"`
	Details     *string   `json:"details"`
	CreatedAt   time.Time `json:"created_at"`
}
