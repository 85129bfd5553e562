package dto

import (
	"time"

	"github.com/spec-kit/lead-service/internal/domain"
)

// CreateLeadRequest payload for the direct API intake.
type CreateLeadRequest struct {
	FullName string             `json:"full_name"`
	Email    *string            `json:"email"`
	Phone    *string            `json:"phone"`
	Channel  domain.LeadChannel `json:"channel"`
	Message  string             `json:"message"`
}

// EmbedLeadRequest payload for the website embed widget.
type EmbedLeadRequest struct {
	FullName string  `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Message  string  `json:"message"`
}

// ChatMessageRequest payload for the chat widget. A missing free-text
// message is synthesized from the structured fields.
type ChatMessageRequest struct {
	FullName     string  `json:"full_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Message      string  `json:"message"`
	PropertyType *string `json:"property_type"`
	Location     *string `json:"location"`
	Budget       *string `json:"budget"`
	Timeline     *string `json:"timeline"`
}

// WebhookLeadRequest payload delivered by third-party channel webhooks.
type WebhookLeadRequest struct {
	FullName string  `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Message  string  `json:"message"`
}

// UpdateLeadRequest payload for explicit status/assignment changes.
type UpdateLeadRequest struct {
	Status          *domain.LeadStatus `json:"status"`
	AssignedAgentID *string            `json:"assigned_agent_id"`
}

// LeadResponse is the full lead representation.
type LeadResponse struct {
	ID              string             `json:"id"`
	FullName        string             `json:"full_name"`
	Email           *string            `json:"email"`
	Phone           *string            `json:"phone"`
	Channel         domain.LeadChannel `json:"channel"`
	RawMessage      string             `json:"raw_message"`
	Status          domain.LeadStatus  `json:"status"`
	Score           float64            `json:"score"`
	PropertyType    *string            `json:"property_type"`
	Location        *string            `json:"location"`
	Budget          *float64           `json:"budget"`
	Timeline        *string            `json:"timeline"`
	AssignedAgentID *string            `json:"assigned_agent_id"`
	CreatedAt       time.Time          `json:"created_at"`
}

// IntakeResponse wraps the pipeline outcome for intake endpoints.
type IntakeResponse struct {
	Lead   LeadResponse `json:"lead"`
	Merged bool         `json:"merged"`
}

// PropertyMatchResponse pairs a listing with its match score.
type PropertyMatchResponse struct {
	Property   PropertyResponse `json:"property"`
	MatchScore float64          `json:"match_score"`
}
