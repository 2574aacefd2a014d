package services

import (
	"context"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/fortresspm/bookkeeping_backend/internal/dto"
)

// EntryReaderSvc defines read operations for journal entries
type EntryReaderSvc interface {
	// GetEntryByID retrieves an entry with installments and related records.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// EntryWriterSvc defines write operations for journal entries
type EntryWriterSvc interface {
	// CreateEntry persists a new entry with its generated installment
	// schedule. Every created entry has at least one installment.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// AddInstallment appends one open installment to an existing entry.
	AddInstallment(ctx context.Context, entryID string, req dto.AddInstallmentRequest, creatorUserID string) (*domain.Installment, error)
}

// EntrySvcFacade combines all entry-related service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
