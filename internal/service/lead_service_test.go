package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/events"
	"github.com/spec-kit/lead-service/internal/repository"
)

func newLeadFixture(leads *fakeLeadRepo, users *fakeUserRepo) *LeadService {
	return NewLeadService(LeadDependencies{
		LeadRepo:   leads,
		UserRepo:   users,
		AuditRepo:  &fakeAuditRepo{},
		Dispatcher: events.NewInMemoryDispatcher(),
		Logger:     zap.NewNop(),
	})
}

func manager(id string) *domain.User {
	return &domain.User{ID: id, Role: domain.UserRoleManager, Active: true}
}

func TestListLeadsAgentSeesOnlyOwnAssignments(t *testing.T) {
	leads := &fakeLeadRepo{leads: []*domain.Lead{
		{ID: "l1", Status: domain.LeadStatusNew, AssignedAgentID: strPtr("a1")},
		{ID: "l2", Status: domain.LeadStatusNew, AssignedAgentID: strPtr("a2")},
		{ID: "l3", Status: domain.LeadStatusNew},
	}}
	svc := newLeadFixture(leads, &fakeUserRepo{})

	visible, err := svc.ListLeads(context.Background(), agent("a1"), repository.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "l1", visible[0].ID)

	all, err := svc.ListLeads(context.Background(), manager("m1"), repository.LeadFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetLeadAgentForbiddenForForeignLead(t *testing.T) {
	leads := &fakeLeadRepo{leads: []*domain.Lead{
		{ID: "l1", Status: domain.LeadStatusNew, AssignedAgentID: strPtr("a2")},
	}}
	svc := newLeadFixture(leads, &fakeUserRepo{})

	_, err := svc.GetLead(context.Background(), agent("a1"), "l1")
	assert.Error(t, err)

	lead, err := svc.GetLead(context.Background(), agent("a2"), "l1")
	require.NoError(t, err)
	assert.Equal(t, "l1", lead.ID)
}

func TestGetLeadNotFound(t *testing.T) {
	svc := newLeadFixture(&fakeLeadRepo{}, &fakeUserRepo{})

	_, err := svc.GetLead(context.Background(), manager("m1"), "missing")
	assert.Error(t, err)
}

func TestUpdateLeadRequiresManagerRole(t *testing.T) {
	leads := &fakeLeadRepo{leads: []*domain.Lead{
		{ID: "l1", Status: domain.LeadStatusNew, AssignedAgentID: strPtr("a1")},
	}}
	svc := newLeadFixture(leads, &fakeUserRepo{})

	status := domain.LeadStatusContacted
	_, err := svc.UpdateLead(context.Background(), agent("a1"), "l1", LeadUpdateInput{Status: &status})
	assert.Error(t, err)
}

func TestUpdateLeadChangesStatusAndAssignment(t *testing.T) {
	leads := &fakeLeadRepo{leads: []*domain.Lead{
		{ID: "l1", Status: domain.LeadStatusNew},
	}}
	users := &fakeUserRepo{users: []*domain.User{agent("a1")}}
	svc := newLeadFixture(leads, users)

	status := domain.LeadStatusQualified
	lead, err := svc.UpdateLead(context.Background(), manager("m1"), "l1", LeadUpdateInput{
		Status:          &status,
		AssignedAgentID: strPtr("a1"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusQualified, lead.Status)
	require.NotNil(t, lead.AssignedAgentID)
	assert.Equal(t, "a1", *lead.AssignedAgentID)
}

func TestUpdateLeadRejectsUnknownStatus(t *testing.T) {
	leads := &fakeLeadRepo{leads: []*domain.Lead{{ID: "l1", Status: domain.LeadStatusNew}}}
	svc := newLeadFixture(leads, &fakeUserRepo{})

	bad := domain.LeadStatus("PENDING")
	_, err := svc.UpdateLead(context.Background(), manager("m1"), "l1", LeadUpdateInput{Status: &bad})
	assert.Error(t, err)
}

func TestUpdateLeadRejectsInactiveAssignee(t *testing.T) {
	inactive := agent("a1")
	inactive.Active = false
	leads := &fakeLeadRepo{leads: []*domain.Lead{{ID: "l1", Status: domain.LeadStatusNew}}}
	users := &fakeUserRepo{users: []*domain.User{inactive}}
	svc := newLeadFixture(leads, users)

	_, err := svc.UpdateLead(context.Background(), manager("m1"), "l1", LeadUpdateInput{AssignedAgentID: strPtr("a1")})
	assert.Error(t, err)
}
