package domain

import "time"

// AuditEntry records an action taken against a resource. Writes are
// best-effort and must never fail the operation that produced them.
type AuditEntry struct {
	ID          string
	ActorUserID *string
	Action      string
	Resource    string
	Details     *string
	CreatedAt   time.Time
}
