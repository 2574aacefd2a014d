package services

import (
	"context"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	portssvc "github.com/fortresspm/bookkeeping_backend/internal/core/ports/services"
	"github.com/fortresspm/bookkeeping_backend/internal/middleware"
)

// AuditService records domain events on the structured log. It never returns
// errors so a failed audit write cannot undo a committed operation.
type AuditService struct{}

var _ portssvc.AuditSvcFacade = (*AuditService)(nil)

// NewAuditService creates a new AuditService.
func NewAuditService() *AuditService {
	return &AuditService{}
}

// InstallmentPaid records that an installment was settled.
func (s *AuditService) InstallmentPaid(ctx context.Context, installment domain.Installment, actorUserID string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("audit: installment paid",
		"event", "installment_paid",
		"installmentID", installment.InstallmentID,
		"entryID", installment.EntryID,
		"amount", installment.Amount,
		"actor", actorUserID,
	)
}

// EntryStatusChanged records an entry status transition.
func (s *AuditService) EntryStatusChanged(ctx context.Context, entryID string, from, to domain.EntryStatus, actorUserID string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("audit: entry status changed",
		"event", "entry_status_changed",
		"entryID", entryID,
		"from", from,
		"to", to,
		"actor", actorUserID,
	)
}
