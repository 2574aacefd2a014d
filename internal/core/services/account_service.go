package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	portsrepo "github.com/fortresspm/bookkeeping_backend/internal/core/ports/repositories"
	portssvc "github.com/fortresspm/bookkeeping_backend/internal/core/ports/services"
	"github.com/fortresspm/bookkeeping_backend/internal/dto"
	"github.com/fortresspm/bookkeeping_backend/internal/middleware"
)

// AccountService manages financial accounts.
type AccountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		now:         time.Now,
	}
}

// GetAccountByID retrieves a financial account.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

// UpdateOpeningBalance sets the account's opening balance and returns the
// updated account.
func (s *AccountService) UpdateOpeningBalance(ctx context.Context, accountID string, req dto.UpdateAccountBalanceRequest, updatedByUserID string) (*domain.FinancialAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	balance := domain.RoundAmount(*req.OpeningBalance)
	now := s.now()
	if err := s.accountRepo.UpdateOpeningBalance(ctx, accountID, balance, updatedByUserID, now); err != nil {
		logger.Error("failed to update opening balance", "accountID", accountID, "error", err)
		return nil, fmt.Errorf("failed to update opening balance: %w", err)
	}

	account.OpeningBalance = balance
	account.LastUpdatedAt = now
	account.LastUpdatedBy = updatedByUserID

	logger.Info("opening balance updated", "accountID", accountID, "openingBalance", balance)
	return account, nil
}
