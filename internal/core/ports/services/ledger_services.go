package services

import (
	"context"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/fortresspm/bookkeeping_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the stateless projection used by statements and exports.
// It never mutates persisted data.
type LedgerSvcFacade interface {
	// OpeningBalance sums signed amounts over entries preceding the report
	// period. Zero when the filter carries no start date.
	OpeningBalance(ctx context.Context, filter domain.EntryFilter) (decimal.Decimal, error)

	// BuildRows projects pre-sorted entries into ledger rows with a running
	// balance seeded at openingBalance.
	BuildRows(entries []domain.JournalEntry, openingBalance decimal.Decimal) []domain.LedgerRow

	// Totals aggregates inflow, outflow and net over the rows.
	Totals(rows []domain.LedgerRow) domain.LedgerTotals

	// PropertyLabel resolves the display label for an entry's property via
	// the fallback chain: property link, cost-center name, first-installment
	// metadata. Empty string when none applies.
	PropertyLabel(entry domain.JournalEntry) string

	// BankLedgerReport runs the full statement: opening balance, rows,
	// totals and closing balance for the filtered period.
	BankLedgerReport(ctx context.Context, params dto.ReportLedgerParams) (*dto.BankLedgerReportResponse, error)
}
