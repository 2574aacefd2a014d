package dto

import (
	"fmt"
	"time"

	"github.com/fortresspm/bookkeeping_backend/internal/apperrors"
	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportLedgerParams are the bank-ledger report query parameters. The status
// token is bilingual; "statusfilter" is a custom binding validation
// registered at startup.
type ReportLedgerParams struct {
	FinancialAccountID *string `form:"financial_account_id" binding:"omitempty"`
	DateFrom           *string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo             *string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Type               *string `form:"type" binding:"omitempty,oneof=receita despesa transferencia income expense transfer"`
	Status             *string `form:"status" binding:"omitempty,statusfilter"`
	Format             string  `form:"format" binding:"omitempty"`
	Detailed           bool    `form:"detailed"`
}

// ToEntryFilter converts the wire parameters into the domain filter. Status
// tokens expand through domain.FilterValues; an unknown token therefore
// matches nothing rather than erroring.
func (p ReportLedgerParams) ToEntryFilter() (domain.EntryFilter, error) {
	filter := domain.EntryFilter{BankAccountID: p.FinancialAccountID}

	if p.Type != nil {
		t, ok := domain.ParseEntryType(*p.Type)
		if !ok {
			return domain.EntryFilter{}, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, *p.Type)
		}
		filter.Type = &t
	}

	if p.Status != nil {
		filter.Statuses = domain.FilterValues(*p.Status)
	}

	if p.DateFrom != nil {
		from, err := time.Parse(dateLayout, *p.DateFrom)
		if err != nil {
			return domain.EntryFilter{}, fmt.Errorf("%w: invalid date_from: %v", apperrors.ErrValidation, err)
		}
		filter.DateFrom = &from
	}
	if p.DateTo != nil {
		to, err := time.Parse(dateLayout, *p.DateTo)
		if err != nil {
			return domain.EntryFilter{}, fmt.Errorf("%w: invalid date_to: %v", apperrors.ErrValidation, err)
		}
		if filter.DateFrom != nil && to.Before(*filter.DateFrom) {
			return domain.EntryFilter{}, fmt.Errorf("%w: date_to precedes date_from", apperrors.ErrValidation)
		}
		filter.DateTo = &to
	}

	return filter, nil
}

// ExpenseReport reports whether the export totals should aggregate absolute
// amounts (expense reports) instead of signed revenues. Expense is the
// historical default.
func (p ReportLedgerParams) ExpenseReport() bool {
	return p.Type == nil || *p.Type == "despesa" || *p.Type == "expense"
}

// AccountRef identifies the reported account; Name falls back to "Todos os
// bancos" when no account filter was given.
type AccountRef struct {
	ID   *string `json:"id"`
	Name string  `json:"nome"`
}

// PeriodRef is the reported date range.
type PeriodRef struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

// TotalsRef carries the aggregated inflow/outflow/net figures.
type TotalsRef struct {
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
}

// PartyRef is a minimal {id, nome} reference.
type PartyRef struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
}

// CostCenterRef references a cost center on a ledger row.
type CostCenterRef struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
	Code string `json:"codigo"`
}

// LedgerRowResponse is the wire form of one statement row. Detailed-mode
// fields are pointers so they drop out of the base rendering.
type LedgerRowResponse struct {
	EntryID        string          `json:"id"`
	MovementDate   string          `json:"movement_date"`
	DueDate        string          `json:"due_date"`
	Description    string          `json:"description"`
	Type           string          `json:"type"`
	TypeLabel      string          `json:"type_label"`
	Property       *PartyRef       `json:"property"`
	CostCenter     *CostCenterRef  `json:"cost_center"`
	AmountIn       decimal.Decimal `json:"amount_in"`
	AmountOut      decimal.Decimal `json:"amount_out"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
	StatusLabel    string          `json:"status_label"`
	StatusCategory string          `json:"status_category"`

	Notes          *string          `json:"notes,omitempty"`
	ReferenceCode  *string          `json:"reference_code,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Person         *PartyRef        `json:"person,omitempty"`
	SignedAmount   *decimal.Decimal `json:"signed_amount,omitempty"`
	AbsoluteAmount *decimal.Decimal `json:"absolute_amount,omitempty"`
	Status         *string          `json:"status,omitempty"`
}

// BankLedgerReportResponse is the full statement payload.
type BankLedgerReportResponse struct {
	Account        AccountRef          `json:"account"`
	Period         PeriodRef           `json:"period"`
	OpeningBalance decimal.Decimal     `json:"opening_balance"`
	ClosingBalance decimal.Decimal     `json:"closing_balance"`
	Totals         TotalsRef           `json:"totals"`
	Data           []LedgerRowResponse `json:"data"`
}

// ToLedgerRowResponse converts a domain ledger row to its wire form.
func ToLedgerRowResponse(row domain.LedgerRow, detailed bool) LedgerRowResponse {
	resp := LedgerRowResponse{
		EntryID:        row.EntryID,
		MovementDate:   row.MovementDate.Format(dateLayout),
		DueDate:        row.DueDate.Format(dateLayout),
		Description:    row.Description,
		Type:           string(row.Type),
		TypeLabel:      row.TypeLabel,
		AmountIn:       row.AmountIn,
		AmountOut:      row.AmountOut,
		BalanceAfter:   row.BalanceAfter,
		StatusLabel:    row.StatusLabel,
		StatusCategory: string(row.StatusCategory),
	}
	if row.Property != nil {
		resp.Property = &PartyRef{ID: row.Property.ID, Name: row.Property.Name}
	}
	if row.CostCenter != nil {
		resp.CostCenter = &CostCenterRef{ID: row.CostCenter.ID, Name: row.CostCenter.Name, Code: row.CostCenter.Code}
	}
	if detailed {
		notes := row.Notes
		refCode := row.ReferenceCode
		amount := row.Amount
		signed := row.SignedAmount
		absolute := row.AbsoluteAmount
		status := string(row.Status)
		resp.Notes = &notes
		resp.ReferenceCode = &refCode
		resp.Amount = &amount
		resp.SignedAmount = &signed
		resp.AbsoluteAmount = &absolute
		resp.Status = &status
		if row.Person != nil {
			resp.Person = &PartyRef{ID: row.Person.ID, Name: row.Person.Name}
		}
	}
	return resp
}
