package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lead-service/internal/domain"
)

func newAssignmentService(leads *fakeLeadRepo, users *fakeUserRepo) *AssignmentService {
	return NewAssignmentService(AssignmentDependencies{LeadRepo: leads, UserRepo: users})
}

func TestSelectAgentNoActiveAgents(t *testing.T) {
	svc := newAssignmentService(&fakeLeadRepo{}, &fakeUserRepo{})

	selected, err := svc.SelectAgent(context.Background())
	require.NoError(t, err)
	assert.Nil(t, selected)
}

func TestSelectAgentPicksLeastLoaded(t *testing.T) {
	users := &fakeUserRepo{users: []*domain.User{agent("a1"), agent("a2")}}
	leads := &fakeLeadRepo{leads: []*domain.Lead{
		{ID: "l1", Status: domain.LeadStatusNew, AssignedAgentID: strPtr("a1")},
		{ID: "l2", Status: domain.LeadStatusContacted, AssignedAgentID: strPtr("a1")},
	}}
	svc := newAssignmentService(leads, users)

	selected, err := svc.SelectAgent(context.Background())
	require.NoError(t, err)
	require.NotNil(t, selected)
	assert.Equal(t, "a2", selected.ID)
}

func TestSelectAgentTerminalStatusesDoNotCount(t *testing.T) {
	users := &fakeUserRepo{users: []*domain.User{agent("a1"), agent("a2")}}
	leads := &fakeLeadRepo{leads: []*domain.Lead{
		{ID: "l1", Status: domain.LeadStatusConverted, AssignedAgentID: strPtr("a1")},
		{ID: "l2", Status: domain.LeadStatusLost, AssignedAgentID: strPtr("a1")},
		{ID: "l3", Status: domain.LeadStatusNew, AssignedAgentID: strPtr("a2")},
	}}
	svc := newAssignmentService(leads, users)

	selected, err := svc.SelectAgent(context.Background())
	require.NoError(t, err)
	require.NotNil(t, selected)
	assert.Equal(t, "a1", selected.ID)
}

func TestSelectAgentTieGoesToFirstCandidate(t *testing.T) {
	users := &fakeUserRepo{users: []*domain.User{agent("a1"), agent("a2"), agent("a3")}}
	svc := newAssignmentService(&fakeLeadRepo{}, users)

	selected, err := svc.SelectAgent(context.Background())
	require.NoError(t, err)
	require.NotNil(t, selected)
	assert.Equal(t, "a1", selected.ID)
}

func TestSelectAgentSkipsInactiveAndNonAgents(t *testing.T) {
	admin := &domain.User{ID: "admin", Role: domain.UserRoleAdmin, Active: true}
	inactive := agent("a1")
	inactive.Active = false
	users := &fakeUserRepo{users: []*domain.User{admin, inactive, agent("a2")}}
	svc := newAssignmentService(&fakeLeadRepo{}, users)

	selected, err := svc.SelectAgent(context.Background())
	require.NoError(t, err)
	require.NotNil(t, selected)
	assert.Equal(t, "a2", selected.ID)
}
