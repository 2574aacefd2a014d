package repositories

import (
	"context"
	"time"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntryByID retrieves an entry with its installments, cost center,
	// person and property eagerly loaded.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindInstallmentByID retrieves a single installment.
	FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error)

	// ListEntries retrieves entries matching the filter, with related
	// installments/cost-center/person/property loaded, ordered by
	// (movement_date ASC, entry_id ASC) for deterministic report rows.
	ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, error)
}

// EntryWriter defines write operations for journal entry data
type EntryWriter interface {
	// SaveEntry persists a new entry together with its installment schedule
	// in a single transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, installments []domain.Installment) error

	// SaveInstallment appends one open installment to an existing entry.
	SaveInstallment(ctx context.Context, installment domain.Installment) error

	// UpdateEntryStatus updates only the status (plus audit fields) of an entry.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedByUserID string, updatedAt time.Time) error
}

// EntryTransactionSupport defines the operations the payment transaction
// performs while holding the installment row lock.
type EntryTransactionSupport interface {
	// FindInstallmentForUpdate selects an installment and locks its row
	// (SELECT ... FOR UPDATE) within the given transaction.
	FindInstallmentForUpdate(ctx context.Context, tx pgx.Tx, installmentID string) (*domain.Installment, error)

	// UpdateInstallmentInTx persists the settled installment within the
	// transaction.
	UpdateInstallmentInTx(ctx context.Context, tx pgx.Tx, installment domain.Installment) error

	// FindInstallmentsByEntryIDInTx re-reads an entry's installments inside
	// the transaction, ordered by installment_id.
	FindInstallmentsByEntryIDInTx(ctx context.Context, tx pgx.Tx, entryID string) ([]domain.Installment, error)

	// UpdateEntryStatusInTx updates the entry status within the transaction.
	UpdateEntryStatusInTx(ctx context.Context, tx pgx.Tx, entryID string, status domain.EntryStatus, updatedByUserID string, updatedAt time.Time) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
// This is a facade for clients that need access to all operations
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
	EntryTransactionSupport
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
