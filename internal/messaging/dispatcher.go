package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/repository"
)

const dispatchTimeout = 15 * time.Second

// OutboundMessage is the payload posted to a channel integration.
type OutboundMessage struct {
	LeadID    string `json:"lead_id"`
	To        string `json:"to"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// DispatchResult records the delivery outcome. Failures are outcomes, not
// errors: the caller logs them and moves on.
type DispatchResult struct {
	Status  string
	Code    int
	Channel domain.LeadChannel
}

const (
	StatusSent          = "sent"
	StatusFailed        = "failed"
	StatusError         = "error"
	StatusNotConfigured = "not_configured"
)

// Dispatcher pushes outbound messages through the configured channel
// integration.
type Dispatcher struct {
	integrations repository.IntegrationRepository
	client       *http.Client
	logger       *zap.Logger
}

// NewDispatcher builds a dispatcher with a bounded HTTP client.
func NewDispatcher(integrations repository.IntegrationRepository, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		integrations: integrations,
		client:       &http.Client{Timeout: dispatchTimeout},
		logger:       logger,
	}
}

// Dispatch sends the message through the channel's integration webhook.
// Missing or incomplete integration configuration degrades to a
// not_configured result.
func (d *Dispatcher) Dispatch(ctx context.Context, channel domain.LeadChannel, message OutboundMessage) DispatchResult {
	integration, err := d.integrations.GetByChannel(ctx, channel)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			d.logger.Warn("integration lookup failed", zap.String("channel", string(channel)), zap.Error(err))
		}
		return DispatchResult{Status: StatusNotConfigured, Channel: channel}
	}
	if integration.WebhookURL == nil || *integration.WebhookURL == "" {
		return DispatchResult{Status: StatusNotConfigured, Channel: channel}
	}

	body, err := json.Marshal(message)
	if err != nil {
		return DispatchResult{Status: StatusError, Channel: channel}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *integration.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return DispatchResult{Status: StatusError, Channel: channel}
	}
	req.Header.Set("Content-Type", "application/json")
	if integration.APIKeyRef != nil && *integration.APIKeyRef != "" {
		req.Header.Set("Authorization", "Bearer "+*integration.APIKeyRef)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Warn("outbound dispatch failed", zap.String("channel", string(channel)), zap.Error(err))
		return DispatchResult{Status: StatusError, Channel: channel}
	}
	defer resp.Body.Close()

	status := StatusSent
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		status = StatusFailed
	}
	return DispatchResult{Status: status, Code: resp.StatusCode, Channel: channel}
}
