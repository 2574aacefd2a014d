package services

import (
	"context"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
)

// AuditSvcFacade receives domain events emitted after a successful commit.
// The audit subscriber is an external collaborator: implementations must not
// fail the originating operation.
type AuditSvcFacade interface {
	// InstallmentPaid records that an installment was settled.
	InstallmentPaid(ctx context.Context, installment domain.Installment, actorUserID string)

	// EntryStatusChanged records an entry status transition.
	EntryStatusChanged(ctx context.Context, entryID string, from, to domain.EntryStatus, actorUserID string)
}
