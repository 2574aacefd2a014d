package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	portsrepo "github.com/fortresspm/bookkeeping_backend/internal/core/ports/repositories"
	portssvc "github.com/fortresspm/bookkeeping_backend/internal/core/ports/services"
	"github.com/fortresspm/bookkeeping_backend/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// EntryStateService derives journal entry statuses from installment state and
// persists transitions. It is the only component allowed to write the status
// column outside of entry creation.
type EntryStateService struct {
	entryRepo portsrepo.EntryRepositoryFacade
	auditSvc  portssvc.AuditSvcFacade
	now       func() time.Time
}

var _ portssvc.EntryStateSvcFacade = (*EntryStateService)(nil)

// NewEntryStateService creates a new EntryStateService.
func NewEntryStateService(entryRepo portsrepo.EntryRepositoryFacade, auditSvc portssvc.AuditSvcFacade) *EntryStateService {
	return &EntryStateService{
		entryRepo: entryRepo,
		auditSvc:  auditSvc,
		now:       time.Now,
	}
}

// Derive computes the status the entry should hold on the given day.
//
// Precedence, highest first: cancellation absorbs everything; all installments
// paid means paid; overdue while anything is still open past due (an open
// installment past its own due date, or the entry past its due date with open
// installments remaining); nothing paid and the movement date still in the
// future means planned; otherwise pending. Entries without installments keep
// whatever status they hold.
func (s *EntryStateService) Derive(entry domain.JournalEntry, today time.Time) domain.EntryStatus {
	if entry.Status == domain.StatusCancelled {
		return domain.StatusCancelled
	}
	if len(entry.Installments) == 0 {
		return entry.Status
	}

	allPaid := true
	anyPaid := false
	anyOverdue := false
	for _, inst := range entry.Installments {
		if inst.Paid() {
			anyPaid = true
		} else {
			allPaid = false
		}
		if inst.OverdueAt(today) {
			anyOverdue = true
		}
	}
	entryPastDue := domain.DateOnly(entry.DueDate).Before(domain.DateOnly(today))

	switch {
	case allPaid:
		return domain.StatusPaid
	case anyOverdue || entryPastDue:
		return domain.StatusOverdue
	case !anyPaid && domain.DateOnly(entry.MovementDate).After(domain.DateOnly(today)):
		return domain.StatusPlanned
	default:
		return domain.StatusPending
	}
}

// Sync recomputes and persists the entry's status. The write is skipped when
// the derived status matches the one already stored; the audit event fires
// whenever the derived status differs from previousStatus.
func (s *EntryStateService) Sync(ctx context.Context, entry *domain.JournalEntry, previousStatus domain.EntryStatus, actorUserID string) (domain.EntryStatus, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	next := s.Derive(*entry, s.now())
	if next != entry.Status {
		if err := s.entryRepo.UpdateEntryStatus(ctx, entry.EntryID, next, actorUserID, s.now()); err != nil {
			logger.Error("failed to update entry status", "entryID", entry.EntryID, "status", next, "error", err)
			return entry.Status, fmt.Errorf("failed to update entry status: %w", err)
		}
		entry.Status = next
	}

	if next != previousStatus {
		s.auditSvc.EntryStatusChanged(ctx, entry.EntryID, previousStatus, next, actorUserID)
	}
	return next, nil
}

// SyncInTx is Sync running on an open transaction. The caller owns the commit
// and reports the transition afterwards, so no audit event is emitted here.
func (s *EntryStateService) SyncInTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry, previousStatus domain.EntryStatus, actorUserID string) (domain.EntryStatus, error) {
	next := s.Derive(*entry, s.now())
	if next != entry.Status {
		if err := s.entryRepo.UpdateEntryStatusInTx(ctx, tx, entry.EntryID, next, actorUserID, s.now()); err != nil {
			return entry.Status, fmt.Errorf("failed to update entry status: %w", err)
		}
		entry.Status = next
	}
	return next, nil
}
