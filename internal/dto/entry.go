package dto

import (
	"time"

	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest is the body for creating a journal entry with its
// installment schedule. Type accepts both the legacy Portuguese tokens and
// the canonical English ones.
type CreateEntryRequest struct {
	Type             string          `json:"type" binding:"required,oneof=receita despesa transferencia income expense transfer"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	MovementDate     string          `json:"movement_date" binding:"required,datetime=2006-01-02"`
	DueDate          string          `json:"due_date" binding:"required,datetime=2006-01-02"`
	Description      string          `json:"description" binding:"required"`
	Notes            string          `json:"notes"`
	ReferenceCode    string          `json:"reference_code"`
	BankAccountID    string          `json:"bank_account_id" binding:"required"`
	CounterAccountID *string         `json:"counter_account_id"`
	CostCenterID     *string         `json:"cost_center_id"`
	PersonID         *string         `json:"person_id"`
	PropertyID       *string         `json:"property_id"`
	PropertyLabel    *string         `json:"property_label"`
	InstallmentCount int             `json:"installment_count" binding:"omitempty,min=1,max=120"`
}

// AddInstallmentRequest appends one open installment to an existing entry.
type AddInstallmentRequest struct {
	DueDate string            `json:"due_date" binding:"required,datetime=2006-01-02"`
	Amount  decimal.Decimal   `json:"amount"`
	Meta    map[string]string `json:"meta"`
}

// ParsedDueDate returns the due date at calendar-date precision.
func (r AddInstallmentRequest) ParsedDueDate() (time.Time, error) {
	t, err := time.Parse(dateLayout, r.DueDate)
	if err != nil {
		return time.Time{}, err
	}
	return domain.DateOnly(t), nil
}

// EntryResponse is the wire representation of a journal entry.
type EntryResponse struct {
	EntryID       string                `json:"id"`
	Type          string                `json:"type"`
	Status        string                `json:"status"`
	Amount        decimal.Decimal       `json:"amount"`
	MovementDate  string                `json:"movement_date"`
	DueDate       string                `json:"due_date"`
	Description   string                `json:"description"`
	Notes         string                `json:"notes,omitempty"`
	ReferenceCode string                `json:"reference_code,omitempty"`
	BankAccountID string                `json:"bank_account_id"`
	Installments  []InstallmentResponse `json:"installments"`
}

// ToEntryResponse converts a domain entry to its wire form.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	installments := make([]InstallmentResponse, len(e.Installments))
	for i, inst := range e.Installments {
		installments[i] = ToInstallmentResponse(inst)
	}
	return EntryResponse{
		EntryID:       e.EntryID,
		Type:          string(e.Type),
		Status:        string(e.Status),
		Amount:        e.Amount,
		MovementDate:  e.MovementDate.Format(dateLayout),
		DueDate:       e.DueDate.Format(dateLayout),
		Description:   e.Description,
		Notes:         e.Notes,
		ReferenceCode: e.ReferenceCode,
		BankAccountID: e.BankAccountID,
		Installments:  installments,
	}
}
