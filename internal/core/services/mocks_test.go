package services_test

import (
	"context"
	"time"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	portsrepo "github.com/fortresspm/bookkeeping_backend/internal/core/ports/repositories"
	portssvc "github.com/fortresspm/bookkeeping_backend/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

// Ensure MockEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	args := m.Called(ctx, installmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installment), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, installments []domain.Installment) error {
	args := m.Called(ctx, entry, installments)
	return args.Error(0)
}

func (m *MockEntryRepository) SaveInstallment(ctx context.Context, installment domain.Installment) error {
	args := m.Called(ctx, installment)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, status, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) FindInstallmentForUpdate(ctx context.Context, tx pgx.Tx, installmentID string) (*domain.Installment, error) {
	args := m.Called(ctx, tx, installmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installment), args.Error(1)
}

func (m *MockEntryRepository) UpdateInstallmentInTx(ctx context.Context, tx pgx.Tx, installment domain.Installment) error {
	args := m.Called(ctx, tx, installment)
	return args.Error(0)
}

func (m *MockEntryRepository) FindInstallmentsByEntryIDInTx(ctx context.Context, tx pgx.Tx, entryID string) ([]domain.Installment, error) {
	args := m.Called(ctx, tx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockEntryRepository) UpdateEntryStatusInTx(ctx context.Context, tx pgx.Tx, entryID string, status domain.EntryStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, entryID, status, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialAccount), args.Error(1)
}

func (m *MockAccountRepository) UpdateOpeningBalance(ctx context.Context, accountID string, openingBalance decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, accountID, openingBalance, updatedByUserID, updatedAt)
	return args.Error(0)
}

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

// Ensure MockAuditService implements portssvc.AuditSvcFacade
var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)

func (m *MockAuditService) InstallmentPaid(ctx context.Context, installment domain.Installment, actorUserID string) {
	m.Called(ctx, installment, actorUserID)
}

func (m *MockAuditService) EntryStatusChanged(ctx context.Context, entryID string, from, to domain.EntryStatus, actorUserID string) {
	m.Called(ctx, entryID, from, to, actorUserID)
}
