package dto

import (
	"time"

	"github.com/spec-kit/lead-service/internal/domain"
)

// UpsertIntegrationRequest payload for per-channel delivery settings.
type UpsertIntegrationRequest struct {
	Channel      domain.LeadChannel `json:"channel"`
	ProviderName string             `json:"provider_name"`
	WebhookURL   *string            `json:"webhook_url"`
	APIKeyRef    *string            `json:"api_key_ref"`
	Metadata     *string            `json:"metadata"`
}

// IntegrationResponse is the integration representation.
type IntegrationResponse struct {
	ID           string             `json:"id"`
	Channel      domain.LeadChannel `json:"channel"`
	ProviderName string             `json:"provider_name"`
	WebhookURL   *string            `json:"webhook_url"`
	APIKeyRef    *string            `json:"api_key_ref"`
	Metadata     *string            `json:"metadata"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
