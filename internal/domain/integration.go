package domain

import "time"

// ChannelIntegration holds outbound delivery settings for one channel.
// A missing row or empty webhook URL means follow-ups for that channel
// degrade to a "not configured" outcome.
type ChannelIntegration struct {
	ID           string
	Channel      LeadChannel
	ProviderName string
	WebhookURL   *string
	APIKeyRef    *string
	Metadata     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
