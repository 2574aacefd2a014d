package services

import (
	"context"
	"time"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// EntryStateSvcFacade is the single source of truth for deriving a journal
// entry's status from its installments and persisting it.
type EntryStateSvcFacade interface {
	// Derive computes the status an entry should hold given its installments
	// and the provided day. Pure: no I/O, deterministic for fixed inputs.
	Derive(entry domain.JournalEntry, today time.Time) domain.EntryStatus

	// Sync recomputes the entry's status and persists it when it changed,
	// emitting a status-change audit event against previousStatus. The entry
	// is updated in place.
	Sync(ctx context.Context, entry *domain.JournalEntry, previousStatus domain.EntryStatus, actorUserID string) (domain.EntryStatus, error)

	// SyncInTx is Sync running inside an existing transaction. No audit event
	// is emitted; the transaction owner reports the change after commit.
	SyncInTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry, previousStatus domain.EntryStatus, actorUserID string) (domain.EntryStatus, error)
}
