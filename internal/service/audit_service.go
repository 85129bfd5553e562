package service

import (
	"context"

	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/repository"
	apperrors "github.com/spec-kit/lead-service/pkg/util"
)

// AuditService exposes the audit trail for admin review.
type AuditService struct {
	audit repository.AuditRepository
}

// NewAuditService constructs the service.
func NewAuditService(audit repository.AuditRepository) *AuditService {
	return &AuditService{audit: audit}
}

// ListRecent returns the newest entries, capped by limit.
func (s *AuditService) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	entries, err := s.audit.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}
