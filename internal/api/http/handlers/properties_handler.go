package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-service/internal/api/dto"
	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/service"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

// PropertiesHandler manages the listing catalog endpoints.
type PropertiesHandler struct {
	properties *service.PropertyService
}

// NewPropertiesHandler constructs handler.
func NewPropertiesHandler(propertyService *service.PropertyService) *PropertiesHandler {
	return &PropertiesHandler{properties: propertyService}
}

// CreateProperty POST /properties.
func (h *PropertiesHandler) CreateProperty(c *fiber.Ctx) error {
	var req dto.PropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	property, err := h.properties.CreateProperty(c.Context(), propertyInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": propertyResponse(property)})
}

// UpdateProperty PUT /properties/:id.
func (h *PropertiesHandler) UpdateProperty(c *fiber.Ctx) error {
	var req dto.PropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	property, err := h.properties.UpdateProperty(c.Context(), c.Params("id"), propertyInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": propertyResponse(property)})
}

// GetProperty GET /properties/:id.
func (h *PropertiesHandler) GetProperty(c *fiber.Ctx) error {
	property, err := h.properties.GetProperty(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": propertyResponse(property)})
}

// ListProperties GET /properties.
func (h *PropertiesHandler) ListProperties(c *fiber.Ctx) error {
	properties, err := h.properties.ListAvailableProperties(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.PropertyResponse, 0, len(properties))
	for i := range properties {
		items = append(items, propertyResponse(&properties[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func propertyInput(req dto.PropertyRequest) service.PropertyInput {
	return service.PropertyInput{
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		Location:     req.Location,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		Available:    req.Available,
	}
}

func propertyResponse(property *domain.Property) dto.PropertyResponse {
	return dto.PropertyResponse{
		ID:           property.ID,
		Title:        property.Title,
		Description:  property.Description,
		PropertyType: property.PropertyType,
		Location:     property.Location,
		Price:        property.Price,
		ImageURL:     property.ImageURL,
		Available:    property.Available,
		CreatedAt:    property.CreatedAt,
		UpdatedAt:    property.UpdatedAt,
	}
}
