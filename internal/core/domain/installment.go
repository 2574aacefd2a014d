package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetaKeyPropertyLabel is the installment metadata key holding a
// human-readable property label for entries without a direct property link.
const MetaKeyPropertyLabel = "property_label"

// Installment is one scheduled payment line of a journal entry. Once paid it
// is immutable: payment date and amounts from the settling call stick.
type Installment struct {
	InstallmentID string            `json:"installmentID"`
	EntryID       string            `json:"entryID"`
	DueDate       time.Time         `json:"dueDate"`
	PaymentDate   *time.Time        `json:"paymentDate,omitempty"` // set exactly once, when paid
	Status        EntryStatus       `json:"status"`                // Pending or Paid
	Amount        decimal.Decimal   `json:"amount"`
	Penalty       decimal.Decimal   `json:"penalty"`
	Interest      decimal.Decimal   `json:"interest"`
	Discount      decimal.Decimal   `json:"discount"`
	Meta          map[string]string `json:"meta,omitempty"`
	AuditFields
}

// Paid reports whether the installment has been settled.
func (i Installment) Paid() bool {
	return i.Status == StatusPaid
}

// OverdueAt reports whether the installment is open and past due on the given
// day. The comparison is strict: an installment due today is not yet overdue.
func (i Installment) OverdueAt(today time.Time) bool {
	return !i.Paid() && DateOnly(i.DueDate).Before(DateOnly(today))
}
