package models

import (
	"github.com/shopspring/decimal"
)

// FinancialAccount is the persistence model for a bank account.
type FinancialAccount struct {
	AccountID      string          `db:"account_id"`
	Name           string          `db:"name"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
