package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-service/internal/api/dto"
	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/service"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

// IntegrationsHandler manages per-channel outbound delivery settings.
type IntegrationsHandler struct {
	integrations *service.IntegrationService
}

// NewIntegrationsHandler constructs handler.
func NewIntegrationsHandler(integrationService *service.IntegrationService) *IntegrationsHandler {
	return &IntegrationsHandler{integrations: integrationService}
}

// UpsertIntegration PUT /integrations.
func (h *IntegrationsHandler) UpsertIntegration(c *fiber.Ctx) error {
	var req dto.UpsertIntegrationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	integration, err := h.integrations.UpsertIntegration(c.Context(), service.IntegrationInput{
		Channel:      req.Channel,
		ProviderName: req.ProviderName,
		WebhookURL:   req.WebhookURL,
		APIKeyRef:    req.APIKeyRef,
		Metadata:     req.Metadata,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": integrationResponse(integration)})
}

// ListIntegrations GET /integrations.
func (h *IntegrationsHandler) ListIntegrations(c *fiber.Ctx) error {
	integrations, err := h.integrations.ListIntegrations(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.IntegrationResponse, 0, len(integrations))
	for i := range integrations {
		items = append(items, integrationResponse(&integrations[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func integrationResponse(integration *domain.ChannelIntegration) dto.IntegrationResponse {
	return dto.IntegrationResponse{
		ID:           integration.ID,
		Channel:      integration.Channel,
		ProviderName: integration.ProviderName,
		WebhookURL:   integration.WebhookURL,
		APIKeyRef:    integration.APIKeyRef,
		Metadata:     integration.Metadata,
		CreatedAt:    integration.CreatedAt,
		UpdatedAt:    integration.UpdatedAt,
	}
}
