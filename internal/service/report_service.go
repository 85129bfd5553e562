package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/queue"
	"github.com/spec-kit/lead-service/internal/repository"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

// ReportService manages scheduled report subscriptions and the analytics
// summary behind dashboards and report mails.
type ReportService struct {
	reports  repository.ReportRepository
	enqueuer queue.Enqueuer
	logger   *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(reports repository.ReportRepository, enqueuer queue.Enqueuer, logger *zap.Logger) *ReportService {
	return &ReportService{reports: reports, enqueuer: enqueuer, logger: logger}
}

// CreateScheduledReport registers a recipient subscription.
func (s *ReportService) CreateScheduledReport(ctx context.Context, recipientEmail string, cadence domain.ReportCadence) (*domain.ScheduledReport, error) {
	recipientEmail = strings.TrimSpace(recipientEmail)
	if recipientEmail == "" {
		return nil, apperrors.NewValidationError("recipient_email required", nil)
	}
	if cadence == "" {
		cadence = domain.ReportCadenceWeekly
	}
	if cadence != domain.ReportCadenceDaily && cadence != domain.ReportCadenceWeekly {
		return nil, apperrors.NewValidationError("unknown cadence", map[string]any{"cadence": cadence})
	}

	report := &domain.ScheduledReport{RecipientEmail: recipientEmail, Cadence: cadence}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, apperrors.MapError(err)
	}
	return report, nil
}

// ListScheduledReports returns all subscriptions.
func (s *ReportService) ListScheduledReports(ctx context.Context) ([]domain.ScheduledReport, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

// Summary returns the current analytics aggregates.
func (s *ReportService) Summary(ctx context.Context) (*domain.AnalyticsSummary, error) {
	summary, err := s.reports.Summary(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return summary, nil
}

// EnqueueDue queues one report delivery per subscription matching the
// cadence. Enqueue failures are logged per subscription, never escalated.
func (s *ReportService) EnqueueDue(ctx context.Context, cadence domain.ReportCadence) error {
	if s.enqueuer == nil {
		return nil
	}
	reports, err := s.reports.List(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	for _, report := range reports {
		if report.Cadence != cadence {
			continue
		}
		payload := queue.ScheduledReportPayload{ReportID: report.ID}
		if err := s.enqueuer.EnqueueScheduledReport(ctx, payload); err != nil {
			s.logger.Warn("report enqueue failed", zap.String("report_id", report.ID), zap.Error(err))
		}
	}
	return nil
}

// GetScheduledReport loads one subscription for the worker.
func (s *ReportService) GetScheduledReport(ctx context.Context, id string) (*domain.ScheduledReport, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", map[string]any{"report_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return report, nil
}

// FormatSummaryBody renders the plain-text report mail body.
func FormatSummaryBody(summary *domain.AnalyticsSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lead Analytics Summary\n\n")
	fmt.Fprintf(&b, "Total leads: %d\n", summary.TotalLeads)
	fmt.Fprintf(&b, "Average score: %.1f\n", summary.AverageScore)
	fmt.Fprintf(&b, "Unassigned open leads: %d\n\n", summary.UnassignedOpen)

	b.WriteString("By status:\n")
	for _, status := range sortedStatusKeys(summary.ByStatus) {
		fmt.Fprintf(&b, "  %s: %d\n", status, summary.ByStatus[status])
	}
	b.WriteString("\nBy channel:\n")
	for _, channel := range sortedChannelKeys(summary.ByChannel) {
		fmt.Fprintf(&b, "  %s: %d\n", channel, summary.ByChannel[channel])
	}
	return b.String()
}

func sortedStatusKeys(m map[domain.LeadStatus]int64) []domain.LeadStatus {
	keys := make([]domain.LeadStatus, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedChannelKeys(m map[domain.LeadChannel]int64) []domain.LeadChannel {
	keys := make([]domain.LeadChannel, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
