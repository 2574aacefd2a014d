package dto

import (
	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateAccountBalanceRequest sets a financial account's opening balance.
// The pointer keeps an explicit zero distinguishable from an absent field.
type UpdateAccountBalanceRequest struct {
	OpeningBalance *decimal.Decimal `json:"opening_balance" binding:"required"`
}

// FinancialAccountResponse is the wire representation of a financial account.
type FinancialAccountResponse struct {
	AccountID      string          `json:"id"`
	Name           string          `json:"nome"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// ToFinancialAccountResponse converts a domain account to its wire form.
func ToFinancialAccountResponse(a *domain.FinancialAccount) FinancialAccountResponse {
	return FinancialAccountResponse{
		AccountID:      a.AccountID,
		Name:           a.Name,
		OpeningBalance: a.OpeningBalance,
	}
}
