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

type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo *MockEntryRepository
	service       *services.EntryService

	userID string
}

func (s *EntryServiceTestSuite) SetupTest() {
	s.mockEntryRepo = new(MockEntryRepository)
	s.service = services.NewEntryService(s.mockEntryRepo)
	s.userID = uuid.NewString()
}

func (s *EntryServiceTestSuite) createRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		Type:          "despesa",
		Amount:        decimal.NewFromFloat(300.00),
		MovementDate:  "2026-01-10",
		DueDate:       "2026-02-10",
		Description:   "Condomínio",
		BankAccountID: uuid.NewString(),
	}
}

func (s *EntryServiceTestSuite) TestCreateEntrySingleInstallment() {
	ctx := context.Background()
	req := s.createRequest()

	s.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.Installment")).Return(nil).Once()

	entry, err := s.service.CreateEntry(ctx, req, s.userID)

	s.NoError(err)
	s.Equal(domain.TypeExpense, entry.Type)
	s.Len(entry.Installments, 1)
	s.True(entry.Installments[0].Amount.Equal(entry.Amount))
	s.Equal(domain.StatusPending, entry.Installments[0].Status)
	s.Equal("2026-02-10", entry.Installments[0].DueDate.Format("2006-01-02"))
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestCreateEntryInstallmentSplitSumsExactly() {
	ctx := context.Background()
	req := s.createRequest()
	req.Amount = decimal.NewFromFloat(100.00)
	req.InstallmentCount = 3

	s.mockEntryRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := s.service.CreateEntry(ctx, req, s.userID)

	s.NoError(err)
	s.Len(entry.Installments, 3)

	// 100.00 / 3 rounds to 33.33 per part; the last takes the remainder.
	s.Equal("33.33", entry.Installments[0].Amount.StringFixed(2))
	s.Equal("33.33", entry.Installments[1].Amount.StringFixed(2))
	s.Equal("33.34", entry.Installments[2].Amount.StringFixed(2))

	total := decimal.Zero
	for _, inst := range entry.Installments {
		total = total.Add(inst.Amount)
	}
	s.True(total.Equal(entry.Amount))

	// Due dates advance month by month.
	s.Equal("2026-02-10", entry.Installments[0].DueDate.Format("2006-01-02"))
	s.Equal("2026-03-10", entry.Installments[1].DueDate.Format("2006-01-02"))
	s.Equal("2026-04-10", entry.Installments[2].DueDate.Format("2006-01-02"))
}

func (s *EntryServiceTestSuite) TestCreateEntryPropertyLabelStashedInMeta() {
	ctx := context.Background()
	req := s.createRequest()
	label := "Casa 2 • Rua A"
	req.PropertyLabel = &label
	req.InstallmentCount = 2

	s.mockEntryRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := s.service.CreateEntry(ctx, req, s.userID)

	s.NoError(err)
	for _, inst := range entry.Installments {
		s.Equal(label, inst.Meta[domain.MetaKeyPropertyLabel])
	}
}

func (s *EntryServiceTestSuite) TestCreateEntryNegativeAmountRejected() {
	ctx := context.Background()
	req := s.createRequest()
	req.Amount = decimal.NewFromFloat(-10.00)

	entry, err := s.service.CreateEntry(ctx, req, s.userID)

	s.Nil(entry)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestAddInstallmentToCancelledEntryRejected() {
	ctx := context.Background()
	entry := &domain.JournalEntry{
		EntryID: uuid.NewString(),
		Type:    domain.TypeExpense,
		Status:  domain.StatusCancelled,
	}

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	inst, err := s.service.AddInstallment(ctx, entry.EntryID, dto.AddInstallmentRequest{DueDate: "2026-03-01"}, s.userID)

	s.Nil(inst)
	s.ErrorIs(err, apperrors.ErrEntryCancelled)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveInstallment", mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestAddInstallment() {
	ctx := context.Background()
	entry := &domain.JournalEntry{
		EntryID: uuid.NewString(),
		Type:    domain.TypeIncome,
		Status:  domain.StatusPending,
	}

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockEntryRepo.On("SaveInstallment", ctx, mock.MatchedBy(func(inst domain.Installment) bool {
		return inst.EntryID == entry.EntryID &&
			inst.Status == domain.StatusPending &&
			inst.Amount.Equal(decimal.NewFromFloat(55.50)) &&
			inst.Penalty.IsZero() && inst.Interest.IsZero() && inst.Discount.IsZero()
	})).Return(nil).Once()

	inst, err := s.service.AddInstallment(ctx, entry.EntryID, dto.AddInstallmentRequest{
		DueDate: "2026-03-01",
		Amount:  decimal.NewFromFloat(55.50),
	}, s.userID)

	s.NoError(err)
	s.NotNil(inst)
	s.Equal("2026-03-01", inst.DueDate.Format("2006-01-02"))
	s.mockEntryRepo.AssertExpectations(s.T())
}

func TestEntryService(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
