package services

import (
	"context"
	"fmt"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	portsrepo "github.com/fortresspm/bookkeeping_backend/internal/core/ports/repositories"
	portssvc "github.com/fortresspm/bookkeeping_backend/internal/core/ports/services"
	"github.com/fortresspm/bookkeeping_backend/internal/dto"
	"github.com/fortresspm/bookkeeping_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// allAccountsName is the report heading used when no account filter is given.
const allAccountsName = "Todos os bancos"

// LedgerService projects journal entries into bank-ledger statements. It is
// read-only: balances are recomputed on every request, never stored.
type LedgerService struct {
	entryRepo   portsrepo.EntryReader
	accountRepo portsrepo.AccountReader
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// NewLedgerService creates a new LedgerService.
func NewLedgerService(entryRepo portsrepo.EntryReader, accountRepo portsrepo.AccountReader) *LedgerService {
	return &LedgerService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
	}
}

// OpeningBalance sums signed amounts over every entry strictly preceding the
// report period, under the same account and status criteria. A filter without
// a start date opens at zero without touching storage.
func (s *LedgerService) OpeningBalance(ctx context.Context, filter domain.EntryFilter) (decimal.Decimal, error) {
	if filter.DateFrom == nil {
		return decimal.Zero, nil
	}

	entries, err := s.entryRepo.ListEntries(ctx, filter.OpeningBalanceFilter())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list opening-balance entries: %w", err)
	}

	balance := decimal.Zero
	for _, e := range entries {
		balance = balance.Add(e.SignedAmount())
	}
	return balance, nil
}

// BuildRows projects the entries into statement rows. The running balance
// accumulates unrounded signed amounts and is rounded only at presentation,
// so long statements cannot drift by accumulated cents.
func (s *LedgerService) BuildRows(entries []domain.JournalEntry, openingBalance decimal.Decimal) []domain.LedgerRow {
	rows := make([]domain.LedgerRow, 0, len(entries))
	running := openingBalance

	for _, e := range entries {
		signed := e.SignedAmount()
		running = running.Add(signed)

		row := domain.LedgerRow{
			EntryID:        e.EntryID,
			MovementDate:   e.MovementDate,
			DueDate:        e.DueDate,
			Description:    e.Description,
			Type:           e.Type,
			TypeLabel:      e.Type.Label(),
			AmountIn:       decimal.Zero,
			AmountOut:      decimal.Zero,
			BalanceAfter:   domain.RoundAmount(running),
			StatusLabel:    e.Status.Label(e.Type),
			StatusCategory: e.Status.Category(),
			Notes:          e.Notes,
			ReferenceCode:  e.ReferenceCode,
			Amount:         domain.RoundAmount(e.Amount),
			SignedAmount:   domain.RoundAmount(signed),
			AbsoluteAmount: domain.RoundAmount(signed.Abs()),
			Status:         e.Status,
		}
		if signed.IsPositive() {
			row.AmountIn = domain.RoundAmount(signed)
		} else if signed.IsNegative() {
			row.AmountOut = domain.RoundAmount(signed.Abs())
		}
		if label := s.PropertyLabel(e); label != "" {
			ref := domain.LedgerPartyRef{Name: label}
			if e.Property != nil {
				ref.ID = e.Property.PropertyID
			}
			row.Property = &ref
		}
		if e.CostCenter != nil {
			row.CostCenter = &domain.LedgerCostCenterRef{
				ID:   e.CostCenter.CostCenterID,
				Name: e.CostCenter.Name,
				Code: e.CostCenter.Code,
			}
		}
		if e.Person != nil {
			row.Person = &domain.LedgerPartyRef{ID: e.Person.PersonID, Name: e.Person.Name}
		}
		rows = append(rows, row)
	}
	return rows
}

// Totals aggregates inflow, outflow and net over the rows. Each figure is
// rounded independently.
func (s *LedgerService) Totals(rows []domain.LedgerRow) domain.LedgerTotals {
	inflow := decimal.Zero
	outflow := decimal.Zero
	for _, row := range rows {
		inflow = inflow.Add(row.AmountIn)
		outflow = outflow.Add(row.AmountOut)
	}
	return domain.LedgerTotals{
		Inflow:  domain.RoundAmount(inflow),
		Outflow: domain.RoundAmount(outflow),
		Net:     domain.RoundAmount(inflow.Sub(outflow)),
	}
}

// PropertyLabel resolves the property display label for an entry. Fallback
// chain: linked property address, cost-center name, property label stashed in
// the metadata of the entry's first installment.
func (s *LedgerService) PropertyLabel(entry domain.JournalEntry) string {
	if entry.Property != nil {
		if label := entry.Property.DisplayLabel(); label != "" {
			return label
		}
	}
	if entry.CostCenter != nil && entry.CostCenter.Name != "" {
		return entry.CostCenter.Name
	}
	if len(entry.Installments) > 0 {
		if label := entry.Installments[0].Meta[domain.MetaKeyPropertyLabel]; label != "" {
			return label
		}
	}
	return ""
}

// BankLedgerReport assembles the full statement for the filtered period.
func (s *LedgerService) BankLedgerReport(ctx context.Context, params dto.ReportLedgerParams) (*dto.BankLedgerReportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter, err := params.ToEntryFilter()
	if err != nil {
		return nil, err
	}

	accountName := allAccountsName
	if params.FinancialAccountID != nil {
		account, err := s.accountRepo.FindAccountByID(ctx, *params.FinancialAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to find financial account: %w", err)
		}
		accountName = account.Name
	}

	opening, err := s.OpeningBalance(ctx, filter)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	rows := s.BuildRows(entries, opening)
	totals := s.Totals(rows)

	closing := domain.RoundAmount(opening)
	if len(rows) > 0 {
		closing = rows[len(rows)-1].BalanceAfter
	}

	data := make([]dto.LedgerRowResponse, len(rows))
	for i, row := range rows {
		data[i] = dto.ToLedgerRowResponse(row, params.Detailed)
	}

	logger.Info("bank ledger report built", "rows", len(rows), "account", accountName)
	return &dto.BankLedgerReportResponse{
		Account:        dto.AccountRef{ID: params.FinancialAccountID, Name: accountName},
		Period:         dto.PeriodRef{From: params.DateFrom, To: params.DateTo},
		OpeningBalance: domain.RoundAmount(opening),
		ClosingBalance: closing,
		Totals: dto.TotalsRef{
			Inflow:  totals.Inflow,
			Outflow: totals.Outflow,
			Net:     totals.Net,
		},
		Data: data,
	}, nil
}
