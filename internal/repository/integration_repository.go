package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-service/internal/domain"
)

// IntegrationRepository handles per-channel outbound delivery settings.
type IntegrationRepository interface {
	GetByChannel(ctx context.Context, channel domain.LeadChannel) (*domain.ChannelIntegration, error)
	Upsert(ctx context.Context, integration *domain.ChannelIntegration) error
	List(ctx context.Context) ([]domain.ChannelIntegration, error)
}

type integrationRepository struct {
	pool *pgxpool.Pool
}

// NewIntegrationRepository instantiates the repository.
func NewIntegrationRepository(pool *pgxpool.Pool) IntegrationRepository {
	return &integrationRepository{pool: pool}
}

const integrationColumns = `id, channel, provider_name, webhook_url, api_key_ref, metadata, created_at, updated_at`

func (r *integrationRepository) GetByChannel(ctx context.Context, channel domain.LeadChannel) (*domain.ChannelIntegration, error) {
	query := `SELECT ` + integrationColumns + ` FROM channel_integrations WHERE channel=$1`
	var integration domain.ChannelIntegration
	if err := r.pool.QueryRow(ctx, query, channel).Scan(
		&integration.ID,
		&integration.Channel,
		&integration.ProviderName,
		&integration.WebhookURL,
		&integration.APIKeyRef,
		&integration.Metadata,
		&integration.CreatedAt,
		&integration.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &integration, nil
}

func (r *integrationRepository) Upsert(ctx context.Context, integration *domain.ChannelIntegration) error {
	const query = `
        INSERT INTO channel_integrations (channel, provider_name, webhook_url, api_key_ref, metadata)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (channel) DO UPDATE
        SET provider_name=EXCLUDED.provider_name, webhook_url=EXCLUDED.webhook_url,
            api_key_ref=EXCLUDED.api_key_ref, metadata=EXCLUDED.metadata, updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		integration.Channel,
		integration.ProviderName,
		integration.WebhookURL,
		integration.APIKeyRef,
		integration.Metadata,
	).Scan(&integration.ID, &integration.CreatedAt, &integration.UpdatedAt)
}

func (r *integrationRepository) List(ctx context.Context) ([]domain.ChannelIntegration, error) {
	query := `SELECT ` + integrationColumns + ` FROM channel_integrations ORDER BY channel ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChannelIntegration
	for rows.Next() {
		var integration domain.ChannelIntegration
		if err := rows.Scan(
			&integration.ID,
			&integration.Channel,
			&integration.ProviderName,
			&integration.WebhookURL,
			&integration.APIKeyRef,
			&integration.Metadata,
			&integration.CreatedAt,
			&integration.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, integration)
	}
	return result, rows.Err()
}
