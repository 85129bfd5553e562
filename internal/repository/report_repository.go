package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-service/internal/domain"
)

// ReportRepository stores scheduled report subscriptions and serves the
// aggregate queries behind the analytics summary.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.ScheduledReport) error
	GetByID(ctx context.Context, id string) (*domain.ScheduledReport, error)
	List(ctx context.Context) ([]domain.ScheduledReport, error)
	Summary(ctx context.Context) (*domain.AnalyticsSummary, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates the repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.ScheduledReport) error {
	const query = `
        INSERT INTO scheduled_reports (recipient_email, cadence)
        VALUES ($1,$2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		report.RecipientEmail,
		report.Cadence,
	).Scan(&report.ID, &report.CreatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.ScheduledReport, error) {
	const query = `
        SELECT id, recipient_email, cadence, created_at
        FROM scheduled_reports WHERE id=$1`
	var report domain.ScheduledReport
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.RecipientEmail,
		&report.Cadence,
		&report.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context) ([]domain.ScheduledReport, error) {
	const query = `
        SELECT id, recipient_email, cadence, created_at
        FROM scheduled_reports ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ScheduledReport
	for rows.Next() {
		var report domain.ScheduledReport
		if err := rows.Scan(
			&report.ID,
			&report.RecipientEmail,
			&report.Cadence,
			&report.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, rows.Err()
}

func (r *reportRepository) Summary(ctx context.Context) (*domain.AnalyticsSummary, error) {
	summary := &domain.AnalyticsSummary{
		ByStatus:  make(map[domain.LeadStatus]int64),
		ByChannel: make(map[domain.LeadChannel]int64),
	}

	const totalsQuery = `SELECT COUNT(*), COALESCE(AVG(score), 0) FROM leads`
	if err := r.pool.QueryRow(ctx, totalsQuery).Scan(&summary.TotalLeads, &summary.AverageScore); err != nil {
		return nil, err
	}

	const statusQuery = `SELECT status, COUNT(*) FROM leads GROUP BY status`
	rows, err := r.pool.Query(ctx, statusQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status domain.LeadStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		summary.ByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const channelQuery = `SELECT channel, COUNT(*) FROM leads GROUP BY channel`
	channelRows, err := r.pool.Query(ctx, channelQuery)
	if err != nil {
		return nil, err
	}
	defer channelRows.Close()
	for channelRows.Next() {
		var channel domain.LeadChannel
		var count int64
		if err := channelRows.Scan(&channel, &count); err != nil {
			return nil, err
		}
		summary.ByChannel[channel] = count
	}
	if err := channelRows.Err(); err != nil {
		return nil, err
	}

	const unassignedQuery = `
        SELECT COUNT(*) FROM leads
        WHERE assigned_agent_id IS NULL AND status = ANY($1)`
	statuses := make([]string, 0, len(domain.ActiveLeadStatuses))
	for _, s := range domain.ActiveLeadStatuses {
		statuses = append(statuses, string(s))
	}
	if err := r.pool.QueryRow(ctx, unassignedQuery, statuses).Scan(&summary.UnassignedOpen); err != nil {
		return nil, err
	}

	return summary, nil
}
