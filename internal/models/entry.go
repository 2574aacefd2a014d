package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the persisted movement direction of a journal entry.
type EntryType string

// EntryStatus is the persisted lifecycle state. Installments share the same
// column type, with only pending/paid in use.
type EntryStatus string

// JournalEntry is the persistence model for a journal entry row. The related
// cost center, person and property come back through LEFT JOINs as nullable
// columns.
type JournalEntry struct {
	EntryID          string          `db:"entry_id"`
	Type             EntryType       `db:"type"`
	Status           EntryStatus     `db:"status"`
	Amount           decimal.Decimal `db:"amount"`
	MovementDate     time.Time       `db:"movement_date"`
	DueDate          time.Time       `db:"due_date"`
	Description      string          `db:"description"`
	Notes            string          `db:"notes"`
	ReferenceCode    string          `db:"reference_code"`
	BankAccountID    string          `db:"bank_account_id"`
	CounterAccountID *string         `db:"counter_account_id"` // Nullable, transfers only
	CostCenterID     *string         `db:"cost_center_id"`     // Nullable
	PersonID         *string         `db:"person_id"`          // Nullable
	PropertyID       *string         `db:"property_id"`        // Nullable
	AuditFields

	// Joined columns, nullable when the reference is absent.
	CostCenterName     *string `db:"cost_center_name"`
	CostCenterCode     *string `db:"cost_center_code"`
	PersonName         *string `db:"person_name"`
	PropertyCode       *string `db:"property_code"`
	PropertyStreet     *string `db:"property_street"`
	PropertyNumber     *string `db:"property_number"`
	PropertyComplement *string `db:"property_complement"`
	PropertyDistrict   *string `db:"property_district"`
	PropertyCity       *string `db:"property_city"`
}
