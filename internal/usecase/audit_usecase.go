package usecase

import (
	"context"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
)

// AuditUseCase exposes the read side of the audit trail.
type AuditUseCase struct {
	auditRepo AuditRepository
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(auditRepo AuditRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// ListAuditEntries lists audit entries matching the filter.
func (uc *AuditUseCase) ListAuditEntries(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.auditRepo.List(ctx, filter)
}

// GetEntityTrail returns the full audit trail of one entity.
func (uc *AuditUseCase) GetEntityTrail(ctx context.Context, entityType, entityID string) ([]*domain.AuditEntry, error) {
	return uc.auditRepo.GetByEntity(ctx, entityType, entityID)
}
