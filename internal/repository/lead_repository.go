package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-service/internal/domain"
)

// LeadFilter captures listing parameters.
type LeadFilter struct {
	AssignedAgentID *string
	Channel         *domain.LeadChannel
	Statuses        []domain.LeadStatus
	MinScore        *float64
	Limit           int
	Offset          int
}

// LeadRepository encapsulates lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	Update(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	FindLatestByContact(ctx context.Context, email, phone *string) (*domain.Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error)
	CountActiveByAgent(ctx context.Context, agentID string) (int, error)
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

const leadColumns = `id, full_name, email, phone, channel, raw_message, status, score,
               property_type, location, budget, timeline, assigned_agent_id, created_at`

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	const query = `
        INSERT INTO leads (full_name, email, phone, channel, raw_message, status, score, property_type, location, budget, timeline, assigned_agent_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		lead.FullName,
		lead.Email,
		lead.Phone,
		lead.Channel,
		lead.RawMessage,
		lead.Status,
		lead.Score,
		lead.PropertyType,
		lead.Location,
		lead.Budget,
		lead.Timeline,
		lead.AssignedAgentID,
	).Scan(&lead.ID, &lead.CreatedAt)
}

func (r *leadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	const query = `
        UPDATE leads SET raw_message=$1, status=$2, score=$3, property_type=$4, location=$5,
            budget=$6, timeline=$7, assigned_agent_id=$8
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		lead.RawMessage,
		lead.Status,
		lead.Score,
		lead.PropertyType,
		lead.Location,
		lead.Budget,
		lead.Timeline,
		lead.AssignedAgentID,
		lead.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE id=$1`, leadColumns)
	return r.fetchSingle(ctx, query, id)
}

// FindLatestByContact returns the most recently created lead matching the
// inbound email or phone. Both nil yields pgx.ErrNoRows without querying.
func (r *leadRepository) FindLatestByContact(ctx context.Context, email, phone *string) (*domain.Lead, error) {
	clauses := []string{}
	args := []any{}
	if email != nil {
		args = append(args, *email)
		clauses = append(clauses, fmt.Sprintf("email=$%d", len(args)))
	}
	if phone != nil {
		args = append(args, *phone)
		clauses = append(clauses, fmt.Sprintf("phone=$%d", len(args)))
	}
	if len(clauses) == 0 {
		return nil, pgx.ErrNoRows
	}

	query := fmt.Sprintf(`SELECT %s FROM leads WHERE %s ORDER BY created_at DESC LIMIT 1`,
		leadColumns, strings.Join(clauses, " OR "))
	return r.fetchSingle(ctx, query, args...)
}

func (r *leadRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Lead, error) {
	var lead domain.Lead
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&lead.ID,
		&lead.FullName,
		&lead.Email,
		&lead.Phone,
		&lead.Channel,
		&lead.RawMessage,
		&lead.Status,
		&lead.Score,
		&lead.PropertyType,
		&lead.Location,
		&lead.Budget,
		&lead.Timeline,
		&lead.AssignedAgentID,
		&lead.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AssignedAgentID != nil {
		args = append(args, *filter.AssignedAgentID)
		clauses = append(clauses, fmt.Sprintf("assigned_agent_id=$%d", len(args)))
	}
	if filter.Channel != nil {
		args = append(args, *filter.Channel)
		clauses = append(clauses, fmt.Sprintf("channel=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.MinScore != nil {
		args = append(args, *filter.MinScore)
		clauses = append(clauses, fmt.Sprintf("score >= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM leads WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		leadColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

// CountActiveByAgent counts the agent's leads still in a non-terminal status.
func (r *leadRepository) CountActiveByAgent(ctx context.Context, agentID string) (int, error) {
	const query = `
        SELECT COUNT(*) FROM leads
        WHERE assigned_agent_id=$1 AND status = ANY($2)`
	statuses := make([]string, 0, len(domain.ActiveLeadStatuses))
	for _, s := range domain.ActiveLeadStatuses {
		statuses = append(statuses, string(s))
	}
	var count int
	if err := r.pool.QueryRow(ctx, query, agentID, statuses).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanLeads(rows pgx.Rows) ([]domain.Lead, error) {
	var result []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.FullName,
			&lead.Email,
			&lead.Phone,
			&lead.Channel,
			&lead.RawMessage,
			&lead.Status,
			&lead.Score,
			&lead.PropertyType,
			&lead.Location,
			&lead.Budget,
			&lead.Timeline,
			&lead.AssignedAgentID,
			&lead.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The intake pipeline uses this to retry the merge path when two
// deliveries race on the same contact.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
