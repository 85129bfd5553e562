package worker

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/mail"
	"github.com/spec-kit/lead-service/internal/queue"
	"github.com/spec-kit/lead-service/internal/service"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

const reportMailSubject = "Scheduled Lead Analytics Report"

// handleReportCycle fans one delivery task out per subscription on the due
// cadence.
func (w *Worker) handleReportCycle(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseReportCyclePayload(task)
	if err != nil {
		return err
	}
	return w.deps.Reports.EnqueueDue(ctx, domain.ReportCadence(payload.Cadence))
}

// handleScheduledReport builds the analytics summary and mails it to the
// subscription's recipient.
func (w *Worker) handleScheduledReport(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseScheduledReportPayload(task)
	if err != nil {
		return err
	}

	report, err := w.deps.Reports.GetScheduledReport(ctx, payload.ReportID)
	if err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "NOT_FOUND" {
			w.deps.Logger.Warn("scheduled report missing", zap.String("report_id", payload.ReportID))
			return nil
		}
		return err
	}

	summary, err := w.deps.Reports.Summary(ctx)
	if err != nil {
		return err
	}

	body := service.FormatSummaryBody(summary)
	if err := w.deps.Mailer.Send(report.RecipientEmail, reportMailSubject, body); err != nil {
		if errors.Is(err, mail.ErrNotConfigured) {
			w.deps.Logger.Warn("report mail skipped, smtp not configured",
				zap.String("report_id", report.ID))
			return nil
		}
		return err
	}

	w.deps.Logger.Info("report mail sent",
		zap.String("report_id", report.ID),
		zap.String("recipient", report.RecipientEmail))
	return nil
}
