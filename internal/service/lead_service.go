package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/events"
	"github.com/spec-kit/lead-service/internal/repository"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

// LeadService covers lead listing, visibility and explicit updates.
type LeadService struct {
	leads      repository.LeadRepository
	users      repository.UserRepository
	audit      repository.AuditRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// LeadDependencies bundles repositories for the lead service.
type LeadDependencies struct {
	LeadRepo   repository.LeadRepository
	UserRepo   repository.UserRepository
	AuditRepo  repository.AuditRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// LeadUpdateInput carries the mutable fields of an explicit update.
type LeadUpdateInput struct {
	Status          *domain.LeadStatus
	AssignedAgentID *string
}

// NewLeadService constructs the service.
func NewLeadService(deps LeadDependencies) *LeadService {
	return &LeadService{
		leads:      deps.LeadRepo,
		users:      deps.UserRepo,
		audit:      deps.AuditRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ListLeads returns leads visible to the actor: admins and managers see all,
// agents only their own assignments.
func (s *LeadService) ListLeads(ctx context.Context, actor *domain.User, filter repository.LeadFilter) ([]domain.Lead, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	if actor.Role == domain.UserRoleAgent {
		filter.AssignedAgentID = &actor.ID
	}
	leads, err := s.leads.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return leads, nil
}

// GetLead returns a single lead, applying the same visibility rule.
func (s *LeadService) GetLead(ctx context.Context, actor *domain.User, leadID string) (*domain.Lead, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.MapError(err)
	}
	if actor.Role == domain.UserRoleAgent {
		if lead.AssignedAgentID == nil || *lead.AssignedAgentID != actor.ID {
			return nil, apperrors.NewForbidden("agents can only view assigned leads")
		}
	}
	return lead, nil
}

// UpdateLead applies an explicit status and/or assignment change. Status is a
// plain tagged value: any valid status may be set, no transition graph is
// enforced.
func (s *LeadService) UpdateLead(ctx context.Context, actor *domain.User, leadID string, input LeadUpdateInput) (*domain.Lead, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	if actor.Role != domain.UserRoleAdmin && actor.Role != domain.UserRoleManager {
		return nil, apperrors.NewForbidden("insufficient role for lead update")
	}

	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.MapError(err)
	}

	oldStatus := lead.Status
	if input.Status != nil {
		if !domain.ValidLeadStatus(*input.Status) {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *input.Status})
		}
		lead.Status = *input.Status
	}
	if input.AssignedAgentID != nil {
		agent, err := s.users.GetByID(ctx, *input.AssignedAgentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("agent", map[string]any{"agent_id": *input.AssignedAgentID})
			}
			return nil, apperrors.MapError(err)
		}
		if agent.Role != domain.UserRoleAgent || !agent.Active {
			return nil, apperrors.NewConflict("assignee is not an active agent", map[string]any{"agent_id": agent.ID})
		}
		lead.AssignedAgentID = &agent.ID
	}

	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.recordAudit(ctx, actor.ID, lead.ID)
	if input.Status != nil && oldStatus != lead.Status {
		s.publish(ctx, events.Event{
			Type:   events.EventLeadStatusChanged,
			LeadID: lead.ID,
			Actor:  events.Actor{UserID: &actor.ID},
			Payload: events.LeadStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: lead.Status,
			},
		})
	}
	if input.AssignedAgentID != nil {
		s.publish(ctx, events.Event{
			Type:    events.EventLeadAssigned,
			LeadID:  lead.ID,
			Actor:   events.Actor{UserID: &actor.ID},
			Payload: events.LeadAssignedPayload{AssignedAgentID: lead.AssignedAgentID},
		})
	}

	return lead, nil
}

func (s *LeadService) recordAudit(ctx context.Context, actorID, leadID string) {
	if s.audit == nil {
		return
	}
	details := fmt.Sprintf("lead_id=%s", leadID)
	entry := &domain.AuditEntry{
		ActorUserID: &actorID,
		Action:      "lead_update",
		Resource:    "lead",
		Details:     &details,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn("audit write failed", zap.String("action", "lead_update"), zap.Error(err))
	}
}

func (s *LeadService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
