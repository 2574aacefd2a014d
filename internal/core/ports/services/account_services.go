package services

import (
	"context"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/fortresspm/bookkeeping_backend/internal/dto"
)

// AccountSvcFacade exposes financial account operations.
type AccountSvcFacade interface {
	// GetAccountByID retrieves a financial account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error)

	// UpdateOpeningBalance sets the account's opening balance and returns the
	// updated account.
	UpdateOpeningBalance(ctx context.Context, accountID string, req dto.UpdateAccountBalanceRequest, updatedByUserID string) (*domain.FinancialAccount, error)
}
