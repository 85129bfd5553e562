package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/repository"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

const maxRecommendations = 10

// PropertyMatch pairs a listing with its computed match score.
type PropertyMatch struct {
	Property   domain.Property
	MatchScore float64
}

// RecommendationService ranks available listings against a lead's derived
// attributes.
type RecommendationService struct {
	leadService *LeadService
	properties  repository.PropertyRepository
}

// NewRecommendationService constructs the service.
func NewRecommendationService(leadService *LeadService, properties repository.PropertyRepository) *RecommendationService {
	return &RecommendationService{leadService: leadService, properties: properties}
}

// Recommend returns the top matches for a lead, honoring the lead visibility
// rules (agents only see recommendations for their own leads).
func (s *RecommendationService) Recommend(ctx context.Context, actor *domain.User, leadID string) ([]PropertyMatch, error) {
	lead, err := s.leadService.GetLead(ctx, actor, leadID)
	if err != nil {
		return nil, err
	}

	properties, err := s.properties.ListAvailable(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	matches := make([]PropertyMatch, 0, len(properties))
	for _, property := range properties {
		matches = append(matches, PropertyMatch{
			Property:   property,
			MatchScore: matchScore(lead, property),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > maxRecommendations {
		matches = matches[:maxRecommendations]
	}
	return matches, nil
}

// matchScore weighs type (45), location (30) and budget fit (25, sliding
// penalty when over budget, flat 10 when the lead has no budget), capped
// at 100 and rounded to two decimals.
func matchScore(lead *domain.Lead, property domain.Property) float64 {
	score := 0.0

	if lead.PropertyType != nil && strings.EqualFold(property.PropertyType, *lead.PropertyType) {
		score += 45
	}
	if lead.Location != nil && strings.Contains(strings.ToLower(property.Location), strings.ToLower(*lead.Location)) {
		score += 30
	}

	switch {
	case lead.Budget != nil && property.Price <= *lead.Budget:
		score += 25
	case lead.Budget != nil:
		overRatio := (property.Price - *lead.Budget) / *lead.Budget
		score += math.Max(0.0, 20-overRatio*20)
	default:
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return math.Round(score*100) / 100
}
