package dto

import (
	"time"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// PayInstallmentRequest is the body for settling an installment. Penalty,
// interest and discount are partial-update fields: nil keeps the stored value.
type PayInstallmentRequest struct {
	PaymentDate string           `json:"payment_date" binding:"required,datetime=2006-01-02"`
	Penalty     *decimal.Decimal `json:"penalty,omitempty"`
	Interest    *decimal.Decimal `json:"interest,omitempty"`
	Discount    *decimal.Decimal `json:"discount,omitempty"`
}

// ParsedPaymentDate returns the payment date at calendar-date precision.
func (r PayInstallmentRequest) ParsedPaymentDate() (time.Time, error) {
	t, err := time.Parse(dateLayout, r.PaymentDate)
	if err != nil {
		return time.Time{}, err
	}
	return domain.DateOnly(t), nil
}

// InstallmentResponse is the wire representation of an installment.
type InstallmentResponse struct {
	InstallmentID string            `json:"id"`
	EntryID       string            `json:"journal_entry_id"`
	DueDate       string            `json:"due_date"`
	PaymentDate   *string           `json:"payment_date"`
	Status        string            `json:"status"`
	Amount        decimal.Decimal   `json:"amount"`
	Penalty       decimal.Decimal   `json:"penalty"`
	Interest      decimal.Decimal   `json:"interest"`
	Discount      decimal.Decimal   `json:"discount"`
	Meta          map[string]string `json:"meta,omitempty"`
}

// ToInstallmentResponse converts a domain installment to its wire form.
func ToInstallmentResponse(i domain.Installment) InstallmentResponse {
	resp := InstallmentResponse{
		InstallmentID: i.InstallmentID,
		EntryID:       i.EntryID,
		DueDate:       i.DueDate.Format(dateLayout),
		Status:        string(i.Status),
		Amount:        i.Amount,
		Penalty:       i.Penalty,
		Interest:      i.Interest,
		Discount:      i.Discount,
		Meta:          i.Meta,
	}
	if i.PaymentDate != nil {
		paid := i.PaymentDate.Format(dateLayout)
		resp.PaymentDate = &paid
	}
	return resp
}
