package service

import (
	"context"

	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/repository"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

// AssignmentService selects an owning agent for new leads.
type AssignmentService struct {
	leads repository.LeadRepository
	users repository.UserRepository
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	LeadRepo repository.LeadRepository
	UserRepo repository.UserRepository
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		leads: deps.LeadRepo,
		users: deps.UserRepo,
	}
}

// SelectAgent picks the active agent with the fewest non-terminal leads.
// Zero candidates is a valid outcome: the lead stays unassigned and nil is
// returned without an error. Ties go to the first candidate in enumeration
// order (created_at, then id).
func (s *AssignmentService) SelectAgent(ctx context.Context) (*domain.User, error) {
	agents, err := s.users.ListActiveAgents(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(agents) == 0 {
		return nil, nil
	}

	var best *domain.User
	minLoad := -1
	for i := range agents {
		load, err := s.leads.CountActiveByAgent(ctx, agents[i].ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if minLoad < 0 || load < minLoad {
			minLoad = load
			best = &agents[i]
		}
	}
	return best, nil
}
