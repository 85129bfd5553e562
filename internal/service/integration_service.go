package service

import (
	"context"
	"strings"

	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/repository"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

// IntegrationService manages per-channel outbound delivery settings.
type IntegrationService struct {
	integrations repository.IntegrationRepository
}

// NewIntegrationService constructs the service.
func NewIntegrationService(integrations repository.IntegrationRepository) *IntegrationService {
	return &IntegrationService{integrations: integrations}
}

// IntegrationInput carries the writable integration fields.
type IntegrationInput struct {
	Channel      domain.LeadChannel
	ProviderName string
	WebhookURL   *string
	APIKeyRef    *string
	Metadata     *string
}

// UpsertIntegration creates or replaces the settings for a channel.
func (s *IntegrationService) UpsertIntegration(ctx context.Context, input IntegrationInput) (*domain.ChannelIntegration, error) {
	if !domain.ValidChannel(input.Channel) {
		return nil, apperrors.NewValidationError("unknown channel", map[string]any{"channel": input.Channel})
	}
	if strings.TrimSpace(input.ProviderName) == "" {
		return nil, apperrors.NewValidationError("provider_name required", nil)
	}

	integration := &domain.ChannelIntegration{
		Channel:      input.Channel,
		ProviderName: strings.TrimSpace(input.ProviderName),
		WebhookURL:   input.WebhookURL,
		APIKeyRef:    input.APIKeyRef,
		Metadata:     input.Metadata,
	}
	if err := s.integrations.Upsert(ctx, integration); err != nil {
		return nil, apperrors.MapError(err)
	}
	return integration, nil
}

// ListIntegrations returns all configured channels.
func (s *IntegrationService) ListIntegrations(ctx context.Context) ([]domain.ChannelIntegration, error) {
	integrations, err := s.integrations.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return integrations, nil
}
