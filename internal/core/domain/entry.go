package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies the direction of a journal entry's money movement.
type EntryType string

const (
	TypeIncome   EntryType = "income"
	TypeExpense  EntryType = "expense"
	TypeTransfer EntryType = "transfer"
)

// typeAliases maps the legacy Portuguese vocabulary onto the canonical types.
// The alias table lives at the parsing boundary; everything past it operates
// on canonical values only.
var typeAliases = map[string]EntryType{
	"receita":       TypeIncome,
	"despesa":       TypeExpense,
	"transferencia": TypeTransfer,
	"income":        TypeIncome,
	"expense":       TypeExpense,
	"transfer":      TypeTransfer,
}

// ParseEntryType resolves a raw token (legacy or canonical) to an EntryType.
func ParseEntryType(token string) (EntryType, bool) {
	t, ok := typeAliases[token]
	return t, ok
}

// Label returns the display label for the entry type.
func (t EntryType) Label() string {
	switch t {
	case TypeIncome:
		return "Receita"
	case TypeExpense:
		return "Despesa"
	case TypeTransfer:
		return "Transferência"
	default:
		return string(t)
	}
}

// EntryStatus is the lifecycle state of a journal entry. Installments reuse
// the same vocabulary, with only Pending and Paid in play.
type EntryStatus string

const (
	StatusPlanned   EntryStatus = "planned"
	StatusPending   EntryStatus = "pending"
	StatusPaid      EntryStatus = "paid"
	StatusCancelled EntryStatus = "cancelled"
	StatusOverdue   EntryStatus = "overdue"
)

// StatusCategory is the coarse bucket used for report grouping and coloring.
type StatusCategory string

const (
	CategoryOpen      StatusCategory = "open"
	CategorySettled   StatusCategory = "settled"
	CategoryCancelled StatusCategory = "cancelled"
	CategoryOverdue   StatusCategory = "overdue"
)

// Label returns the display label for the status. The pending wording depends
// on the entry type: transfers read "Pendente" while income and expense
// entries read "Aberto".
func (s EntryStatus) Label(t EntryType) string {
	switch s {
	case StatusPlanned:
		return "Planejado"
	case StatusPending:
		if t == TypeTransfer {
			return "Pendente"
		}
		return "Aberto"
	case StatusPaid:
		return "Pago"
	case StatusCancelled:
		return "Cancelado"
	case StatusOverdue:
		return "Atrasado"
	default:
		return string(s)
	}
}

// Category maps the status to its report bucket.
func (s EntryStatus) Category() StatusCategory {
	switch s {
	case StatusPlanned, StatusPending:
		return CategoryOpen
	case StatusPaid:
		return CategorySettled
	case StatusCancelled:
		return CategoryCancelled
	case StatusOverdue:
		return CategoryOverdue
	default:
		return StatusCategory(s)
	}
}

// statusFilterAliases expands filter tokens from both the legacy Portuguese
// vocabulary and the newer English one into concrete status sets. "open"
// covers every status in the open category.
var statusFilterAliases = map[string][]EntryStatus{
	"planejado": {StatusPlanned},
	"pendente":  {StatusPending},
	"pago":      {StatusPaid},
	"cancelado": {StatusCancelled},
	"atrasado":  {StatusOverdue},
	"open":      {StatusPlanned, StatusPending},
	"pending":   {StatusPending},
	"settled":   {StatusPaid},
	"cancelled": {StatusCancelled},
	"overdue":   {StatusOverdue},
}

// FilterValues expands a possibly-aliased status filter token into the set of
// concrete statuses it matches. It is total: unknown tokens yield an empty,
// non-nil set so callers degrade to zero rows instead of failing.
func FilterValues(token string) []EntryStatus {
	if statuses, ok := statusFilterAliases[token]; ok {
		out := make([]EntryStatus, len(statuses))
		copy(out, statuses)
		return out
	}
	return []EntryStatus{}
}

// JournalEntry is a single financial movement record. Its amount is always
// non-negative; the sign is derived from the type at read time.
type JournalEntry struct {
	EntryID          string          `json:"entryID"`
	Type             EntryType       `json:"type"`
	Status           EntryStatus     `json:"status"`
	Amount           decimal.Decimal `json:"amount"`
	MovementDate     time.Time       `json:"movementDate"`
	DueDate          time.Time       `json:"dueDate"`
	Description      string          `json:"description"`
	Notes            string          `json:"notes"`
	ReferenceCode    string          `json:"referenceCode"`
	BankAccountID    string          `json:"bankAccountID"`
	CounterAccountID *string         `json:"counterAccountID,omitempty"` // transfers only
	CostCenter       *CostCenter     `json:"costCenter,omitempty"`
	Person           *Person         `json:"person,omitempty"`
	Property         *Property       `json:"property,omitempty"`
	Installments     []Installment   `json:"installments,omitempty"`
	AuditFields
}

// SignedAmount applies the sign convention to the entry's amount: income is
// positive, expense and transfer are negative, anything else contributes zero.
func (e JournalEntry) SignedAmount() decimal.Decimal {
	switch e.Type {
	case TypeIncome:
		return e.Amount
	case TypeExpense, TypeTransfer:
		return e.Amount.Neg()
	default:
		return decimal.Zero
	}
}
