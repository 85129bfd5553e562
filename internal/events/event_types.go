package events

import (
	"time"

	"github.com/spec-kit/lead-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeadCreated       EventType = "lead_created"
	EventLeadMerged        EventType = "lead_merged"
	EventLeadAssigned      EventType = "lead_assigned"
	EventLeadStatusChanged EventType = "lead_status_changed"
)

// Actor encapsulates actor metadata for an event. A nil UserID means the
// event originated from a public intake channel.
type Actor struct {
	UserID  *string            `json:"user_id,omitempty"`
	Channel domain.LeadChannel `json:"channel,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	LeadID    string      `json:"lead_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LeadCreatedPayload payload.
type LeadCreatedPayload struct {
	Channel domain.LeadChannel `json:"channel"`
	Score   float64            `json:"score"`
	Intent  string             `json:"intent"`
}

// LeadMergedPayload payload.
type LeadMergedPayload struct {
	Channel  domain.LeadChannel `json:"channel"`
	NewScore float64            `json:"new_score"`
}

// LeadAssignedPayload payload.
type LeadAssignedPayload struct {
	AssignedAgentID *string `json:"assigned_agent_id,omitempty"`
}

// LeadStatusChangedPayload payload.
type LeadStatusChangedPayload struct {
	OldStatus domain.LeadStatus `json:"old_status"`
	NewStatus domain.LeadStatus `json:"new_status"`
}
