package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/fortresspm/bookkeeping_backend/internal/core/services"
	"github.com/fortresspm/bookkeeping_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockEntryRepository
	mockAccountRepo *MockAccountRepository
	service         *services.LedgerService
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockEntryRepo = new(MockEntryRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewLedgerService(s.mockEntryRepo, s.mockAccountRepo)
}

func (s *LedgerServiceTestSuite) entry(t domain.EntryType, amount float64, movement time.Time) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      uuid.NewString(),
		Type:         t,
		Status:       domain.StatusPending,
		Amount:       decimal.NewFromFloat(amount),
		MovementDate: movement,
		DueDate:      movement.AddDate(0, 0, 10),
		Description:  "test movement",
	}
}

func (s *LedgerServiceTestSuite) TestOpeningBalanceZeroWithoutStartDate() {
	balance, err := s.service.OpeningBalance(context.Background(), domain.EntryFilter{})

	s.NoError(err)
	s.True(balance.IsZero())
	s.mockEntryRepo.AssertNotCalled(s.T(), "ListEntries", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestOpeningBalanceSumsPrecedingEntries() {
	ctx := context.Background()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	accountID := uuid.NewString()
	filter := domain.EntryFilter{BankAccountID: &accountID, DateFrom: &from}

	preceding := []domain.JournalEntry{
		s.entry(domain.TypeIncome, 1200.00, from.AddDate(0, -1, 0)),
		s.entry(domain.TypeExpense, 200.00, from.AddDate(0, 0, -3)),
	}
	s.mockEntryRepo.On("ListEntries", ctx, mock.MatchedBy(func(f domain.EntryFilter) bool {
		return f.DateBefore != nil && f.DateBefore.Equal(from) && f.DateFrom == nil && f.BankAccountID != nil
	})).Return(preceding, nil).Once()

	balance, err := s.service.OpeningBalance(ctx, filter)

	s.NoError(err)
	s.True(balance.Equal(decimal.NewFromFloat(1000.00)), "got %s", balance)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestBuildRowsBalanceContinuity() {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	entries := []domain.JournalEntry{
		s.entry(domain.TypeIncome, 250.00, day),
		s.entry(domain.TypeExpense, 100.00, day.AddDate(0, 0, 1)),
		s.entry(domain.TypeTransfer, 75.25, day.AddDate(0, 0, 2)),
	}
	opening := decimal.NewFromFloat(1000.00)

	rows := s.service.BuildRows(entries, opening)

	s.Len(rows, 3)
	previous := opening
	for i, row := range rows {
		expected := previous.Add(entries[i].SignedAmount())
		s.True(row.BalanceAfter.Equal(domain.RoundAmount(expected)), "row %d: got %s want %s", i, row.BalanceAfter, expected)
		previous = expected
	}
}

func (s *LedgerServiceTestSuite) TestBuildRowsSplitsInflowAndOutflow() {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	income := s.entry(domain.TypeIncome, 250.00, day)
	expense := s.entry(domain.TypeExpense, 100.00, day)

	rows := s.service.BuildRows([]domain.JournalEntry{income, expense}, decimal.Zero)

	s.True(rows[0].AmountIn.Equal(decimal.NewFromFloat(250.00)))
	s.True(rows[0].AmountOut.IsZero())
	s.True(rows[1].AmountOut.Equal(decimal.NewFromFloat(100.00)))
	s.True(rows[1].AmountIn.IsZero())

	s.Equal("Receita", rows[0].TypeLabel)
	s.Equal("Aberto", rows[0].StatusLabel)
	s.Equal(domain.CategoryOpen, rows[0].StatusCategory)
}

func (s *LedgerServiceTestSuite) TestTotals() {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := s.service.BuildRows([]domain.JournalEntry{
		s.entry(domain.TypeIncome, 250.00, day),
		s.entry(domain.TypeExpense, 100.00, day),
	}, decimal.NewFromFloat(1000.00))

	totals := s.service.Totals(rows)

	s.Equal("250.00", totals.Inflow.StringFixed(2))
	s.Equal("100.00", totals.Outflow.StringFixed(2))
	s.Equal("150.00", totals.Net.StringFixed(2))
}

func (s *LedgerServiceTestSuite) TestPropertyLabelFallbackChain() {
	entry := s.entry(domain.TypeExpense, 50, time.Now())

	// Nothing linked: empty.
	s.Equal("", s.service.PropertyLabel(entry))

	// Only the first installment's metadata counts. A label further down the
	// schedule does not resurface.
	entry.Installments = []domain.Installment{
		{InstallmentID: "a"},
		{InstallmentID: "b", Meta: map[string]string{domain.MetaKeyPropertyLabel: "Casa 2 • Rua A"}},
	}
	s.Equal("", s.service.PropertyLabel(entry))

	// Installment metadata is the last resort.
	entry.Installments = []domain.Installment{
		{InstallmentID: "a", Meta: map[string]string{domain.MetaKeyPropertyLabel: "Casa 2 • Rua A"}},
	}
	s.Equal("Casa 2 • Rua A", s.service.PropertyLabel(entry))

	// Cost center beats installment metadata.
	entry.CostCenter = &domain.CostCenter{CostCenterID: "cc", Name: "Obras"}
	s.Equal("Obras", s.service.PropertyLabel(entry))

	// A linked property with an address wins outright.
	entry.Property = &domain.Property{PropertyID: "p1", Street: "Rua B", Number: "10", City: "Curitiba"}
	s.Equal("Rua B 10 • Curitiba", s.service.PropertyLabel(entry))
}

func (s *LedgerServiceTestSuite) TestBankLedgerReportExampleScenario() {
	// Opening balance 1000.00, one income of 250.00 and one expense of 100.00
	// inside the period: closing 1150.00, inflow 250.00, outflow 100.00,
	// net 150.00.
	ctx := context.Background()
	accountID := uuid.NewString()
	from := "2026-08-01"
	to := "2026-08-31"
	params := dto.ReportLedgerParams{
		FinancialAccountID: &accountID,
		DateFrom:           &from,
		DateTo:             &to,
	}

	account := &domain.FinancialAccount{AccountID: accountID, Name: "Banco Alfa"}
	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	day := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)
	preceding := []domain.JournalEntry{s.entry(domain.TypeIncome, 1000.00, day.AddDate(0, -2, 0))}
	inPeriod := []domain.JournalEntry{
		s.entry(domain.TypeIncome, 250.00, day),
		s.entry(domain.TypeExpense, 100.00, day.AddDate(0, 0, 3)),
	}

	s.mockEntryRepo.On("ListEntries", ctx, mock.MatchedBy(func(f domain.EntryFilter) bool {
		return f.DateBefore != nil
	})).Return(preceding, nil).Once()
	s.mockEntryRepo.On("ListEntries", ctx, mock.MatchedBy(func(f domain.EntryFilter) bool {
		return f.DateBefore == nil && f.DateFrom != nil && f.DateTo != nil
	})).Return(inPeriod, nil).Once()

	report, err := s.service.BankLedgerReport(ctx, params)

	s.NoError(err)
	s.Equal("Banco Alfa", report.Account.Name)
	s.Equal("1000.00", report.OpeningBalance.StringFixed(2))
	s.Equal("1150.00", report.ClosingBalance.StringFixed(2))
	s.Equal("250.00", report.Totals.Inflow.StringFixed(2))
	s.Equal("100.00", report.Totals.Outflow.StringFixed(2))
	s.Equal("150.00", report.Totals.Net.StringFixed(2))
	s.Len(report.Data, 2)
	s.mockEntryRepo.AssertExpectations(s.T())
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestBankLedgerReportAllAccounts() {
	ctx := context.Background()
	params := dto.ReportLedgerParams{}

	s.mockEntryRepo.On("ListEntries", ctx, mock.AnythingOfType("domain.EntryFilter")).Return([]domain.JournalEntry{}, nil).Once()

	report, err := s.service.BankLedgerReport(ctx, params)

	s.NoError(err)
	s.Equal("Todos os bancos", report.Account.Name)
	s.Nil(report.Account.ID)
	s.Equal("0.00", report.OpeningBalance.StringFixed(2))
	s.Equal("0.00", report.ClosingBalance.StringFixed(2))
	s.Empty(report.Data)
	s.mockAccountRepo.AssertNotCalled(s.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestBankLedgerReportUnknownStatusTokenYieldsNoRows() {
	ctx := context.Background()
	token := "whatever"
	params := dto.ReportLedgerParams{Status: &token}

	s.mockEntryRepo.On("ListEntries", ctx, mock.MatchedBy(func(f domain.EntryFilter) bool {
		return f.Statuses != nil && len(f.Statuses) == 0
	})).Return([]domain.JournalEntry{}, nil).Once()

	report, err := s.service.BankLedgerReport(ctx, params)

	s.NoError(err)
	s.Empty(report.Data)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestDetailedRowsCarryExtraFields() {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	entry := s.entry(domain.TypeExpense, 99.90, day)
	entry.Notes = "manutenção"
	entry.ReferenceCode = "NF-123"
	entry.Person = &domain.Person{PersonID: "p1", Name: "Fornecedor X"}

	rows := s.service.BuildRows([]domain.JournalEntry{entry}, decimal.Zero)
	detailed := dto.ToLedgerRowResponse(rows[0], true)
	base := dto.ToLedgerRowResponse(rows[0], false)

	s.NotNil(detailed.Notes)
	s.Equal("manutenção", *detailed.Notes)
	s.NotNil(detailed.Person)
	s.Equal("Fornecedor X", detailed.Person.Name)
	s.NotNil(detailed.SignedAmount)
	s.Equal("-99.90", detailed.SignedAmount.StringFixed(2))
	s.NotNil(detailed.AbsoluteAmount)
	s.Equal("99.90", detailed.AbsoluteAmount.StringFixed(2))

	s.Nil(base.Notes)
	s.Nil(base.Person)
	s.Nil(base.SignedAmount)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
