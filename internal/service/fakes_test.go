package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/queue"
	"github.com/spec-kit/lead-service/internal/repository"
)

type fakeLeadRepo struct {
	leads  []*domain.Lead
	nextID int

	createErr        error
	revealOnConflict *domain.Lead
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

func (f *fakeLeadRepo) Create(_ context.Context, lead *domain.Lead) error {
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		if f.revealOnConflict != nil {
			f.leads = append(f.leads, f.revealOnConflict)
			f.revealOnConflict = nil
		}
		return err
	}
	f.nextID++
	lead.ID = fmt.Sprintf("lead-%d", f.nextID)
	lead.CreatedAt = time.Now()
	f.leads = append(f.leads, lead)
	return nil
}

func (f *fakeLeadRepo) Update(_ context.Context, lead *domain.Lead) error {
	for i, existing := range f.leads {
		if existing.ID == lead.ID {
			f.leads[i] = lead
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeLeadRepo) GetByID(_ context.Context, id string) (*domain.Lead, error) {
	for _, lead := range f.leads {
		if lead.ID == id {
			return lead, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeLeadRepo) FindLatestByContact(_ context.Context, email, phone *string) (*domain.Lead, error) {
	if email == nil && phone == nil {
		return nil, pgx.ErrNoRows
	}
	var latest *domain.Lead
	for _, lead := range f.leads {
		matched := false
		if email != nil && lead.Email != nil && *lead.Email == *email {
			matched = true
		}
		if phone != nil && lead.Phone != nil && *lead.Phone == *phone {
			matched = true
		}
		if matched && (latest == nil || lead.CreatedAt.After(latest.CreatedAt)) {
			latest = lead
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	return latest, nil
}

func (f *fakeLeadRepo) List(_ context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	var result []domain.Lead
	for _, lead := range f.leads {
		if filter.AssignedAgentID != nil {
			if lead.AssignedAgentID == nil || *lead.AssignedAgentID != *filter.AssignedAgentID {
				continue
			}
		}
		if len(filter.Statuses) > 0 {
			found := false
			for _, status := range filter.Statuses {
				if lead.Status == status {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		result = append(result, *lead)
	}
	return result, nil
}

func (f *fakeLeadRepo) CountActiveByAgent(_ context.Context, agentID string) (int, error) {
	count := 0
	for _, lead := range f.leads {
		if lead.AssignedAgentID == nil || *lead.AssignedAgentID != agentID {
			continue
		}
		for _, status := range domain.ActiveLeadStatuses {
			if lead.Status == status {
				count++
				break
			}
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users []*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	user.CreatedAt = time.Now()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	for i, existing := range f.users {
		if existing.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ListActiveAgents(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range f.users {
		if user.Role == domain.UserRoleAgent && user.Active {
			result = append(result, *user)
		}
	}
	return result, nil
}

type fakeAuditRepo struct {
	entries []domain.AuditEntry
}

func (f *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditEntry) error {
	entry.ID = fmt.Sprintf("audit-%d", len(f.entries)+1)
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) ListRecent(_ context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 || limit > len(f.entries) {
		limit = len(f.entries)
	}
	result := make([]domain.AuditEntry, 0, limit)
	for i := len(f.entries) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, f.entries[i])
	}
	return result, nil
}

type fakeEnqueuer struct {
	followUps []queue.LeadFollowUpPayload
	reports   []queue.ScheduledReportPayload
}

func (f *fakeEnqueuer) EnqueueLeadFollowUp(_ context.Context, payload queue.LeadFollowUpPayload) error {
	f.followUps = append(f.followUps, payload)
	return nil
}

func (f *fakeEnqueuer) EnqueueScheduledReport(_ context.Context, payload queue.ScheduledReportPayload) error {
	f.reports = append(f.reports, payload)
	return nil
}

func strPtr(s string) *string { return &s }

func agent(id string) *domain.User {
	return &domain.User{ID: id, FullName: "Agent " + id, Email: id + "@example.com", Role: domain.UserRoleAgent, Active: true}
}
