package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lead-service/internal/domain"
)

type fakePropertyRepo struct {
	properties []domain.Property
}

func (f *fakePropertyRepo) Create(_ context.Context, property *domain.Property) error {
	property.ID = fmt.Sprintf("prop-%d", len(f.properties)+1)
	f.properties = append(f.properties, *property)
	return nil
}

func (f *fakePropertyRepo) Update(_ context.Context, property *domain.Property) error {
	for i := range f.properties {
		if f.properties[i].ID == property.ID {
			f.properties[i] = *property
			return nil
		}
	}
	return nil
}

func (f *fakePropertyRepo) GetByID(_ context.Context, id string) (*domain.Property, error) {
	for i := range f.properties {
		if f.properties[i].ID == id {
			return &f.properties[i], nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakePropertyRepo) ListAvailable(_ context.Context) ([]domain.Property, error) {
	return f.properties, nil
}

func newRecommendationFixture(lead *domain.Lead, properties []domain.Property) *RecommendationService {
	leads := &fakeLeadRepo{leads: []*domain.Lead{lead}}
	leadService := newLeadFixture(leads, &fakeUserRepo{})
	return NewRecommendationService(leadService, &fakePropertyRepo{properties: properties})
}

func floatPtr(f float64) *float64 { return &f }

func TestRecommendRanksByMatchScore(t *testing.T) {
	lead := &domain.Lead{
		ID:           "l1",
		Status:       domain.LeadStatusNew,
		PropertyType: strPtr("villa"),
		Location:     strPtr("miami"),
		Budget:       floatPtr(300000),
	}
	properties := []domain.Property{
		{ID: "p1", Title: "Villa Miami", PropertyType: "villa", Location: "Miami Beach", Price: 280000},
		{ID: "p2", Title: "Condo Miami", PropertyType: "condo", Location: "Miami", Price: 200000},
		{ID: "p3", Title: "Villa Dallas", PropertyType: "villa", Location: "Dallas", Price: 280000},
	}
	svc := newRecommendationFixture(lead, properties)

	matches, err := svc.Recommend(context.Background(), manager("m1"), "l1")
	require.NoError(t, err)
	require.Len(t, matches, 3)

	// type + location + within budget = 45 + 30 + 25
	assert.Equal(t, "p1", matches[0].Property.ID)
	assert.Equal(t, 100.0, matches[0].MatchScore)
	// type + within budget only
	assert.Equal(t, "p3", matches[1].Property.ID)
	assert.Equal(t, 70.0, matches[1].MatchScore)
	// location + within budget only
	assert.Equal(t, "p2", matches[2].Property.ID)
	assert.Equal(t, 55.0, matches[2].MatchScore)
}

func TestRecommendOverBudgetSlidingPenalty(t *testing.T) {
	lead := &domain.Lead{
		ID:     "l1",
		Status: domain.LeadStatusNew,
		Budget: floatPtr(100000),
	}
	properties := []domain.Property{
		// 50% over budget: 20 - 0.5*20 = 10
		{ID: "p1", PropertyType: "villa", Location: "Austin", Price: 150000},
		// 200% over budget: penalty floors at zero
		{ID: "p2", PropertyType: "villa", Location: "Austin", Price: 300000},
	}
	svc := newRecommendationFixture(lead, properties)

	matches, err := svc.Recommend(context.Background(), manager("m1"), "l1")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 10.0, matches[0].MatchScore)
	assert.Equal(t, 0.0, matches[1].MatchScore)
}

func TestRecommendNoBudgetGetsFlatComponent(t *testing.T) {
	lead := &domain.Lead{ID: "l1", Status: domain.LeadStatusNew}
	properties := []domain.Property{
		{ID: "p1", PropertyType: "condo", Location: "Denver", Price: 500000},
	}
	svc := newRecommendationFixture(lead, properties)

	matches, err := svc.Recommend(context.Background(), manager("m1"), "l1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 10.0, matches[0].MatchScore)
}

func TestRecommendCapsAtTopTen(t *testing.T) {
	lead := &domain.Lead{ID: "l1", Status: domain.LeadStatusNew}
	properties := make([]domain.Property, 0, 15)
	for i := 0; i < 15; i++ {
		properties = append(properties, domain.Property{
			ID: fmt.Sprintf("p%d", i), PropertyType: "house", Location: "Reno", Price: 100000,
		})
	}
	svc := newRecommendationFixture(lead, properties)

	matches, err := svc.Recommend(context.Background(), manager("m1"), "l1")
	require.NoError(t, err)
	assert.Len(t, matches, 10)
}

func TestRecommendHonorsLeadVisibility(t *testing.T) {
	lead := &domain.Lead{ID: "l1", Status: domain.LeadStatusNew, AssignedAgentID: strPtr("a2")}
	svc := newRecommendationFixture(lead, nil)

	_, err := svc.Recommend(context.Background(), agent("a1"), "l1")
	assert.Error(t, err)
}
