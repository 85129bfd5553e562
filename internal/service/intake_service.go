package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/config"
	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/events"
	"github.com/spec-kit/lead-service/internal/nlp"
	"github.com/spec-kit/lead-service/internal/phone"
	"github.com/spec-kit/lead-service/internal/queue"
	"github.com/spec-kit/lead-service/internal/repository"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

// mergeDelimiter separates appended raw messages on a merged lead.
const mergeDelimiter = "\n---\n"

// IntakeOrigin identifies which adapter called into the pipeline. Only the
// direct API origin triggers the follow-up job.
type IntakeOrigin string

const (
	OriginAPI     IntakeOrigin = "api"
	OriginEmbed   IntakeOrigin = "embed"
	OriginChat    IntakeOrigin = "chat"
	OriginWebhook IntakeOrigin = "webhook"
)

// IntakeInput is the canonical inbound shape every channel adapter
// normalizes into before calling Submit.
type IntakeInput struct {
	FullName    string
	Email       *string
	Phone       *string
	Channel     domain.LeadChannel
	RawMessage  string
	Origin      IntakeOrigin
	ActorUserID *string
}

// IntakeResult reports what the pipeline did with the inbound contact.
type IntakeResult struct {
	Lead       *domain.Lead
	Merged     bool
	Extraction nlp.ExtractionResult
}

// IntakeService is the single choke point every ingestion channel calls
// through: extract, score, dedup/merge or create+assign, audit, notify.
type IntakeService struct {
	leads      repository.LeadRepository
	audit      repository.AuditRepository
	assignment *AssignmentService
	dispatcher events.Dispatcher
	enqueuer   queue.Enqueuer
	cfg        config.IntakeConfig
	logger     *zap.Logger
}

// IntakeDependencies bundles collaborators.
type IntakeDependencies struct {
	LeadRepo   repository.LeadRepository
	AuditRepo  repository.AuditRepository
	Assignment *AssignmentService
	Dispatcher events.Dispatcher
	Enqueuer   queue.Enqueuer
	Intake     config.IntakeConfig
	Logger     *zap.Logger
}

// NewIntakeService constructs the service.
func NewIntakeService(deps IntakeDependencies) *IntakeService {
	return &IntakeService{
		leads:      deps.LeadRepo,
		audit:      deps.AuditRepo,
		assignment: deps.Assignment,
		dispatcher: deps.Dispatcher,
		enqueuer:   deps.Enqueuer,
		cfg:        deps.Intake,
		logger:     deps.Logger,
	}
}

// Submit runs the intake pipeline for one inbound payload. Store failures
// propagate; audit and follow-up failures never do.
func (s *IntakeService) Submit(ctx context.Context, input IntakeInput) (*IntakeResult, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	if input.FullName == "" {
		return nil, apperrors.NewValidationError("full_name required", nil)
	}
	if !domain.ValidChannel(input.Channel) {
		return nil, apperrors.NewValidationError("unknown channel", map[string]any{"channel": input.Channel})
	}
	normalizeContact(&input, s.cfg.PhoneRegion)

	extraction := nlp.Extract(input.RawMessage)
	score := nlp.Score(extraction.Intent, extraction.Budget, extraction.Timeline)

	existing, err := s.findMatch(ctx, input)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if existing != nil {
		return s.merge(ctx, existing, input, extraction, score)
	}

	lead, err := s.create(ctx, input, extraction, score)
	if err != nil {
		// Two concurrent deliveries for the same contact can both miss the
		// dedup lookup; the partial unique indexes turn the loser into a
		// conflict, which we resolve by merging after all.
		if repository.IsUniqueViolation(err) {
			existing, lookupErr := s.findMatch(ctx, input)
			if lookupErr == nil && existing != nil {
				return s.merge(ctx, existing, input, extraction, score)
			}
		}
		return nil, apperrors.MapError(err)
	}

	if input.Origin == OriginAPI && lead.Status == domain.LeadStatusNew {
		s.enqueueFollowUp(ctx, lead)
	}

	return &IntakeResult{Lead: lead, Extraction: extraction}, nil
}

func (s *IntakeService) findMatch(ctx context.Context, input IntakeInput) (*domain.Lead, error) {
	if input.Email == nil && input.Phone == nil {
		return nil, nil
	}
	existing, err := s.leads.FindLatestByContact(ctx, input.Email, input.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return existing, nil
}

// merge folds the inbound message into an existing lead: raw text appended,
// score raised to the max, derived fields filled only where still empty.
// Status and assignment stay untouched.
func (s *IntakeService) merge(ctx context.Context, existing *domain.Lead, input IntakeInput, extraction nlp.ExtractionResult, score float64) (*IntakeResult, error) {
	existing.RawMessage = strings.TrimSpace(existing.RawMessage + mergeDelimiter + input.RawMessage)
	if score > existing.Score {
		existing.Score = score
	}
	if existing.PropertyType == nil {
		existing.PropertyType = extraction.PropertyType
	}
	if existing.Location == nil {
		existing.Location = extraction.Location
	}
	if existing.Budget == nil {
		existing.Budget = extraction.Budget
	}
	if existing.Timeline == nil {
		existing.Timeline = extraction.Timeline
	}

	if err := s.leads.Update(ctx, existing); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.recordAudit(ctx, "lead_merge", input.ActorUserID, existing.ID, input.Channel)
	s.publish(ctx, events.Event{
		Type:   events.EventLeadMerged,
		LeadID: existing.ID,
		Actor:  events.Actor{UserID: input.ActorUserID, Channel: input.Channel},
		Payload: events.LeadMergedPayload{
			Channel:  input.Channel,
			NewScore: existing.Score,
		},
	})

	return &IntakeResult{Lead: existing, Merged: true, Extraction: extraction}, nil
}

func (s *IntakeService) create(ctx context.Context, input IntakeInput, extraction nlp.ExtractionResult, score float64) (*domain.Lead, error) {
	lead := &domain.Lead{
		FullName:     input.FullName,
		Email:        input.Email,
		Phone:        input.Phone,
		Channel:      input.Channel,
		RawMessage:   input.RawMessage,
		Status:       domain.LeadStatusNew,
		Score:        score,
		PropertyType: extraction.PropertyType,
		Location:     extraction.Location,
		Budget:       extraction.Budget,
		Timeline:     extraction.Timeline,
	}

	// Selection failure must not leave the lead unpersisted; an unassigned
	// lead is a valid outcome that can be fixed up later.
	agent, err := s.assignment.SelectAgent(ctx)
	if err != nil {
		s.logger.Warn("agent selection failed; persisting unassigned", zap.Error(err))
	} else if agent != nil {
		lead.AssignedAgentID = &agent.ID
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, "lead_create", input.ActorUserID, lead.ID, input.Channel)
	s.publish(ctx, events.Event{
		Type:   events.EventLeadCreated,
		LeadID: lead.ID,
		Actor:  events.Actor{UserID: input.ActorUserID, Channel: input.Channel},
		Payload: events.LeadCreatedPayload{
			Channel: lead.Channel,
			Score:   lead.Score,
			Intent:  string(extraction.Intent),
		},
	})
	if lead.AssignedAgentID != nil {
		s.publish(ctx, events.Event{
			Type:    events.EventLeadAssigned,
			LeadID:  lead.ID,
			Actor:   events.Actor{UserID: input.ActorUserID, Channel: input.Channel},
			Payload: events.LeadAssignedPayload{AssignedAgentID: lead.AssignedAgentID},
		})
	}

	return lead, nil
}

func (s *IntakeService) enqueueFollowUp(ctx context.Context, lead *domain.Lead) {
	if s.enqueuer == nil {
		return
	}
	err := s.enqueuer.EnqueueLeadFollowUp(ctx, queue.LeadFollowUpPayload{
		LeadID:  lead.ID,
		Channel: string(lead.Channel),
		Content: s.cfg.FollowUpMessage,
	})
	if err != nil {
		s.logger.Warn("follow-up enqueue failed", zap.String("lead_id", lead.ID), zap.Error(err))
	}
}

func (s *IntakeService) recordAudit(ctx context.Context, action string, actorID *string, leadID string, channel domain.LeadChannel) {
	if s.audit == nil {
		return
	}
	details := fmt.Sprintf("lead_id=%s channel=%s", leadID, channel)
	entry := &domain.AuditEntry{
		ActorUserID: actorID,
		Action:      action,
		Resource:    "lead",
		Details:     &details,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn("audit write failed", zap.String("action", action), zap.Error(err))
	}
}

func (s *IntakeService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func normalizeContact(input *IntakeInput, region string) {
	if input.Email != nil {
		trimmed := strings.TrimSpace(*input.Email)
		if trimmed == "" {
			input.Email = nil
		} else {
			input.Email = &trimmed
		}
	}
	if input.Phone != nil {
		normalized := phone.NormalizeE164(*input.Phone, region)
		if normalized == "" {
			input.Phone = nil
		} else {
			input.Phone = &normalized
		}
	}
}
