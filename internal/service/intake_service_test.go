package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/config"
	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/events"
)

type intakeFixture struct {
	svc      *IntakeService
	leads    *fakeLeadRepo
	users    *fakeUserRepo
	audit    *fakeAuditRepo
	enqueuer *fakeEnqueuer
	events   *[]events.Event
}

func newIntakeFixture(t *testing.T, agents ...*domain.User) *intakeFixture {
	t.Helper()

	leads := &fakeLeadRepo{}
	users := &fakeUserRepo{users: agents}
	audit := &fakeAuditRepo{}
	enqueuer := &fakeEnqueuer{}
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	record := func(_ context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	}
	dispatcher.Subscribe(events.EventLeadCreated, record)
	dispatcher.Subscribe(events.EventLeadMerged, record)
	dispatcher.Subscribe(events.EventLeadAssigned, record)

	svc := NewIntakeService(IntakeDependencies{
		LeadRepo:   leads,
		AuditRepo:  audit,
		Assignment: newAssignmentService(leads, users),
		Dispatcher: dispatcher,
		Enqueuer:   enqueuer,
		Intake: config.IntakeConfig{
			PhoneRegion:     "US",
			FollowUpMessage: "Thanks for reaching out. We will contact you shortly.",
		},
		Logger: zap.NewNop(),
	})
	return &intakeFixture{svc: svc, leads: leads, users: users, audit: audit, enqueuer: enqueuer, events: &published}
}

func TestSubmitCreatesScoresAndAssigns(t *testing.T) {
	fx := newIntakeFixture(t, agent("a1"))

	result, err := fx.svc.Submit(context.Background(), IntakeInput{
		FullName:   "Jamie Fox",
		Email:      strPtr("jamie@example.com"),
		Channel:    domain.LeadChannelWhatsApp,
		RawMessage: "Looking for a villa in Miami, budget 250000, ready to buy this month",
		Origin:     OriginAPI,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Lead)
	assert.False(t, result.Merged)

	lead := result.Lead
	assert.Equal(t, domain.LeadStatusNew, lead.Status)
	require.NotNil(t, lead.PropertyType)
	assert.Equal(t, "villa", *lead.PropertyType)
	require.NotNil(t, lead.Budget)
	assert.Equal(t, 250000.0, *lead.Budget)
	// base 30 + serious 35 + budget 20 + near timeline 15
	assert.Equal(t, 100.0, lead.Score)
	require.NotNil(t, lead.AssignedAgentID)
	assert.Equal(t, "a1", *lead.AssignedAgentID)

	require.Len(t, fx.audit.entries, 1)
	assert.Equal(t, "lead_create", fx.audit.entries[0].Action)

	require.Len(t, fx.enqueuer.followUps, 1)
	assert.Equal(t, lead.ID, fx.enqueuer.followUps[0].LeadID)
}

func TestSubmitZeroAgentsLeavesUnassigned(t *testing.T) {
	fx := newIntakeFixture(t)

	result, err := fx.svc.Submit(context.Background(), IntakeInput{
		FullName:   "Sam Ortiz",
		Email:      strPtr("sam@example.com"),
		Channel:    domain.LeadChannelEmail,
		RawMessage: "price info please",
		Origin:     OriginAPI,
	})
	require.NoError(t, err)
	assert.Nil(t, result.Lead.AssignedAgentID)
}

func TestSubmitMergesOnExistingContact(t *testing.T) {
	fx := newIntakeFixture(t, agent("a1"))

	first, err := fx.svc.Submit(context.Background(), IntakeInput{
		FullName:   "Robin Vale",
		Email:      strPtr("robin@example.com"),
		Channel:    domain.LeadChannelInstagram,
		RawMessage: "any details on condos?",
		Origin:     OriginWebhook,
	})
	require.NoError(t, err)
	firstScore := first.Lead.Score
	originalAssignee := first.Lead.AssignedAgentID

	second, err := fx.svc.Submit(context.Background(), IntakeInput{
		FullName:   "Robin Vale",
		Email:      strPtr("robin@example.com"),
		Channel:    domain.LeadChannelWhatsApp,
		RawMessage: "ready to schedule a visit in Austin, budget 180000",
		Origin:     OriginWebhook,
	})
	require.NoError(t, err)
	assert.True(t, second.Merged)
	assert.Equal(t, first.Lead.ID, second.Lead.ID)

	lead := second.Lead
	assert.Contains(t, lead.RawMessage, "any details on condos?")
	assert.Contains(t, lead.RawMessage, "\n---\n")
	assert.Contains(t, lead.RawMessage, "ready to schedule a visit")
	assert.Greater(t, lead.Score, firstScore)
	// derived fields fill only where still empty
	require.NotNil(t, lead.Location)
	assert.Equal(t, "austin", *lead.Location)
	require.NotNil(t, lead.Budget)
	assert.Equal(t, 180000.0, *lead.Budget)
	// status and assignment untouched by merge
	assert.Equal(t, domain.LeadStatusNew, lead.Status)
	assert.Equal(t, originalAssignee, lead.AssignedAgentID)
}

func TestSubmitMergeKeepsHigherScore(t *testing.T) {
	fx := newIntakeFixture(t)

	first, err := fx.svc.Submit(context.Background(), IntakeInput{
		FullName:   "Dana Reid",
		Phone:      strPtr("+14155552671"),
		Channel:    domain.LeadChannelFacebook,
		RawMessage: "ready to buy immediately, budget 500000",
		Origin:     OriginWebhook,
	})
	require.NoError(t, err)
	highScore := first.Lead.Score

	second, err := fx.svc.Submit(context.Background(), IntakeInput{
		FullName:   "Dana Reid",
		Phone:      strPtr("+14155552671"),
		Channel:    domain.LeadChannelFacebook,
		RawMessage: "just browsing",
		Origin:     OriginWebhook,
	})
	require.NoError(t, err)
	assert.True(t, second.Merged)
	assert.Equal(t, highScore, second.Lead.Score)
}

func TestSubmitNoContactInfoAlwaysCreates(t *testing.T) {
	fx := newIntakeFixture(t)

	first, err := fx.svc.Submit(context.Background(), IntakeInput{
		FullName:   "Anonymous",
		Channel:    domain.LeadChannelWebsiteChat,
		RawMessage: "hello",
		Origin:     OriginChat,
	})
	require.NoError(t, err)

	second, err := fx.svc.Submit(context.Background(), IntakeInput{
		FullName:   "Anonymous",
		Channel:    domain.LeadChannelWebsiteChat,
		RawMessage: "hello again",
		Origin:     OriginChat,
	})
	require.NoError(t, err)
	assert.False(t, second.Merged)
	assert.NotEqual(t, first.Lead.ID, second.Lead.ID)
}

func TestSubmitFollowUpOnlyForDirectAPI(t *testing.T) {
	fx := newIntakeFixture(t)

	_, err := fx.svc.Submit(context.Background(), IntakeInput{
		FullName:   "Kim Soto",
		Email:      strPtr("kim@example.com"),
		Channel:    domain.LeadChannelWhatsApp,
		RawMessage: "looking around",
		Origin:     OriginWebhook,
	})
	require.NoError(t, err)
	assert.Empty(t, fx.enqueuer.followUps)
}

func TestSubmitValidatesInput(t *testing.T) {
	fx := newIntakeFixture(t)

	_, err := fx.svc.Submit(context.Background(), IntakeInput{
		FullName:   "   ",
		Channel:    domain.LeadChannelEmail,
		RawMessage: "hi",
	})
	assert.Error(t, err)

	_, err = fx.svc.Submit(context.Background(), IntakeInput{
		FullName:   "Lee Chan",
		Channel:    domain.LeadChannel("CARRIER_PIGEON"),
		RawMessage: "hi",
	})
	assert.Error(t, err)
}

func TestSubmitUniqueViolationRetriesAsMerge(t *testing.T) {
	fx := newIntakeFixture(t)

	// A concurrent delivery wins the insert race; our insert trips the
	// unique index and the pipeline must fall back to merging.
	racedLead := &domain.Lead{
		ID:         "lead-raced",
		FullName:   "Noor Aziz",
		Email:      strPtr("noor@example.com"),
		Channel:    domain.LeadChannelEmail,
		RawMessage: "first message",
		Status:     domain.LeadStatusNew,
		Score:      30,
		CreatedAt:  time.Now(),
	}
	fx.leads.createErr = uniqueViolation()
	fx.leads.revealOnConflict = racedLead

	result, err := fx.svc.Submit(context.Background(), IntakeInput{
		FullName:   "Noor Aziz",
		Email:      strPtr("noor@example.com"),
		Channel:    domain.LeadChannelEmail,
		RawMessage: "second message",
		Origin:     OriginWebhook,
	})
	require.NoError(t, err)
	assert.True(t, result.Merged)
	assert.Equal(t, "lead-raced", result.Lead.ID)
	assert.Contains(t, result.Lead.RawMessage, "first message")
	assert.Contains(t, result.Lead.RawMessage, "second message")
}

func TestSubmitPublishesEvents(t *testing.T) {
	fx := newIntakeFixture(t, agent("a1"))

	_, err := fx.svc.Submit(context.Background(), IntakeInput{
		FullName:   "Pat Quinn",
		Email:      strPtr("pat@example.com"),
		Channel:    domain.LeadChannelEmail,
		RawMessage: "ready to buy",
		Origin:     OriginAPI,
	})
	require.NoError(t, err)

	types := make([]events.EventType, 0, len(*fx.events))
	for _, event := range *fx.events {
		types = append(types, event.Type)
	}
	assert.Contains(t, types, events.EventLeadCreated)
	assert.Contains(t, types, events.EventLeadAssigned)
}
