package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is the persistence model for one scheduled payment line.
// Meta is stored as a JSONB column.
type Installment struct {
	InstallmentID string            `db:"installment_id"`
	EntryID       string            `db:"entry_id"`
	DueDate       time.Time         `db:"due_date"`
	PaymentDate   *time.Time        `db:"payment_date"` // Nullable until paid
	Status        EntryStatus       `db:"status"`
	Amount        decimal.Decimal   `db:"amount"`
	Penalty       decimal.Decimal   `db:"penalty"`
	Interest      decimal.Decimal   `db:"interest"`
	Discount      decimal.Decimal   `db:"discount"`
	Meta          map[string]string `db:"meta"`
	AuditFields
}
