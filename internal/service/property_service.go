package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/repository"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

// PropertyService manages the listing catalog behind recommendations.
type PropertyService struct {
	properties repository.PropertyRepository
}

// NewPropertyService constructs the service.
func NewPropertyService(properties repository.PropertyRepository) *PropertyService {
	return &PropertyService{properties: properties}
}

// PropertyInput carries the writable listing fields.
type PropertyInput struct {
	Title        string
	Description  string
	PropertyType string
	Location     string
	Price        float64
	ImageURL     *string
	Available    *bool
}

func validatePropertyInput(input PropertyInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apperrors.NewValidationError("title required", nil)
	}
	if strings.TrimSpace(input.PropertyType) == "" {
		return apperrors.NewValidationError("property_type required", nil)
	}
	if strings.TrimSpace(input.Location) == "" {
		return apperrors.NewValidationError("location required", nil)
	}
	if input.Price <= 0 {
		return apperrors.NewValidationError("price must be positive", map[string]any{"price": input.Price})
	}
	return nil
}

// CreateProperty adds a listing. Listings default to available.
func (s *PropertyService) CreateProperty(ctx context.Context, input PropertyInput) (*domain.Property, error) {
	if err := validatePropertyInput(input); err != nil {
		return nil, err
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}
	property := &domain.Property{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		PropertyType: strings.TrimSpace(input.PropertyType),
		Location:     strings.TrimSpace(input.Location),
		Price:        input.Price,
		ImageURL:     input.ImageURL,
		Available:    available,
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, apperrors.MapError(err)
	}
	return property, nil
}

// UpdateProperty replaces a listing's writable fields.
func (s *PropertyService) UpdateProperty(ctx context.Context, id string, input PropertyInput) (*domain.Property, error) {
	if err := validatePropertyInput(input); err != nil {
		return nil, err
	}

	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("property", map[string]any{"property_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	property.Title = strings.TrimSpace(input.Title)
	property.Description = input.Description
	property.PropertyType = strings.TrimSpace(input.PropertyType)
	property.Location = strings.TrimSpace(input.Location)
	property.Price = input.Price
	property.ImageURL = input.ImageURL
	if input.Available != nil {
		property.Available = *input.Available
	}

	if err := s.properties.Update(ctx, property); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("property", map[string]any{"property_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return property, nil
}

// GetProperty loads a single listing.
func (s *PropertyService) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("property", map[string]any{"property_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return property, nil
}

// ListAvailableProperties returns active listings.
func (s *PropertyService) ListAvailableProperties(ctx context.Context) ([]domain.Property, error) {
	properties, err := s.properties.ListAvailable(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return properties, nil
}
