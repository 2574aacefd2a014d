package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryFilter holds the criteria used by reporting queries. DateBefore is an
// exclusive upper bound used for opening-balance computation; DateFrom and
// DateTo are the inclusive report period.
type EntryFilter struct {
	BankAccountID *string
	Type          *EntryType
	Statuses      []EntryStatus
	DateFrom      *time.Time
	DateTo        *time.Time
	DateBefore    *time.Time
}

// OpeningBalanceFilter derives the filter matching every entry that precedes
// the report period: same account and status criteria, movement date strictly
// before the period start. The type filter intentionally does not carry over.
func (f EntryFilter) OpeningBalanceFilter() EntryFilter {
	return EntryFilter{
		BankAccountID: f.BankAccountID,
		Statuses:      f.Statuses,
		DateBefore:    f.DateFrom,
	}
}

// LedgerPartyRef is a minimal {id, name} reference used on ledger rows.
type LedgerPartyRef struct {
	ID   string
	Name string
}

// LedgerCostCenterRef references a cost center on a ledger row.
type LedgerCostCenterRef struct {
	ID   string
	Name string
	Code string
}

// LedgerRow is the read-only projection of one journal entry in a bank-ledger
// statement. It is recomputed on every report request and never persisted.
type LedgerRow struct {
	EntryID        string
	MovementDate   time.Time
	DueDate        time.Time
	Description    string
	Type           EntryType
	TypeLabel      string
	Property       *LedgerPartyRef
	CostCenter     *LedgerCostCenterRef
	AmountIn       decimal.Decimal
	AmountOut      decimal.Decimal
	BalanceAfter   decimal.Decimal
	StatusLabel    string
	StatusCategory StatusCategory

	// Detailed-mode fields.
	Notes          string
	ReferenceCode  string
	Amount         decimal.Decimal
	Person         *LedgerPartyRef
	SignedAmount   decimal.Decimal
	AbsoluteAmount decimal.Decimal
	Status         EntryStatus
}

// LedgerTotals aggregates a row sequence. Each figure is rounded
// independently from the unrounded per-row sums to avoid cent-level drift.
type LedgerTotals struct {
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
	Net     decimal.Decimal
}
