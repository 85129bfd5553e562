package worker

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/messaging"
	"github.com/spec-kit/lead-service/internal/queue"
)

// handleLeadFollowUp delivers the automated follow-up through the lead's
// channel integration. Delivery failures are terminal outcomes, not retries:
// the dispatcher reports them as statuses and the task completes.
func (w *Worker) handleLeadFollowUp(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseLeadFollowUpPayload(task)
	if err != nil {
		return err
	}

	lead, err := w.deps.Leads.GetByID(ctx, payload.LeadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			w.deps.Logger.Warn("followup lead missing", zap.String("lead_id", payload.LeadID))
			return nil
		}
		return err
	}

	to := ""
	if lead.Phone != nil && *lead.Phone != "" {
		to = *lead.Phone
	} else if lead.Email != nil && *lead.Email != "" {
		to = *lead.Email
	}
	if to == "" {
		w.deps.Logger.Warn("followup skipped, lead has no contact",
			zap.String("lead_id", lead.ID))
		return nil
	}

	message := messaging.OutboundMessage{
		LeadID:    lead.ID,
		To:        to,
		Name:      lead.FullName,
		Content:   payload.Content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	result := w.deps.Messenger.Dispatch(ctx, lead.Channel, message)
	w.deps.Logger.Info("followup dispatched",
		zap.String("lead_id", lead.ID),
		zap.String("channel", string(result.Channel)),
		zap.String("status", result.Status),
		zap.Int("code", result.Code))
	return nil
}
