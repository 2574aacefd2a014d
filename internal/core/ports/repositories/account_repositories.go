package repositories

import (
	"context"
	"time"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for financial account data
type AccountReader interface {
	// FindAccountByID retrieves a specific financial account by its identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error)
}

// AccountWriter defines write operations for financial account data
type AccountWriter interface {
	// UpdateOpeningBalance sets the account's opening balance.
	UpdateOpeningBalance(ctx context.Context, accountID string, openingBalance decimal.Decimal, updatedByUserID string, updatedAt time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
