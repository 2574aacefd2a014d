package services_test

import (
	"context"
	"testing"

	"github.com/fortresspm/bookkeeping_backend/internal/apperrors"
	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/fortresspm/bookkeeping_backend/internal/core/services"
	"github.com/fortresspm/bookkeeping_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         *services.AccountService

	userID string
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.mockAccountRepo)
	s.userID = uuid.NewString()
}

func (s *AccountServiceTestSuite) TestUpdateOpeningBalance() {
	ctx := context.Background()
	account := &domain.FinancialAccount{
		AccountID:      uuid.NewString(),
		Name:           "Banco Alfa",
		OpeningBalance: decimal.Zero,
		IsActive:       true,
	}
	newBalance := decimal.NewFromFloat(2500.555)

	s.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	s.mockAccountRepo.On("UpdateOpeningBalance", ctx, account.AccountID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromFloat(2500.56))
	}), s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := s.service.UpdateOpeningBalance(ctx, account.AccountID, dto.UpdateAccountBalanceRequest{OpeningBalance: &newBalance}, s.userID)

	s.NoError(err)
	s.Equal("2500.56", updated.OpeningBalance.StringFixed(2))
	s.Equal(s.userID, updated.LastUpdatedBy)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestUpdateOpeningBalanceAccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()
	balance := decimal.NewFromInt(100)

	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.NewNotFoundError("financial account not found")).Once()

	updated, err := s.service.UpdateOpeningBalance(ctx, accountID, dto.UpdateAccountBalanceRequest{OpeningBalance: &balance}, s.userID)

	s.Nil(updated)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockAccountRepo.AssertNotCalled(s.T(), "UpdateOpeningBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestGetAccountByID() {
	ctx := context.Background()
	account := &domain.FinancialAccount{AccountID: uuid.NewString(), Name: "Banco Beta"}

	s.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	got, err := s.service.GetAccountByID(ctx, account.AccountID)

	s.NoError(err)
	s.Equal(account.Name, got.Name)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
