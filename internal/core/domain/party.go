package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FinancialAccount is a bank account entries are booked against.
type FinancialAccount struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// CostCenter is an accounting bucket an entry can be attributed to,
// independent of any property.
type CostCenter struct {
	CostCenterID string `json:"costCenterID"`
	Name         string `json:"name"`
	Code         string `json:"code"`
}

// Person is a counterparty (tenant, supplier, owner).
type Person struct {
	PersonID string `json:"personID"`
	Name     string `json:"name"`
}

// Property is a managed real-estate unit.
type Property struct {
	PropertyID string `json:"propertyID"`
	Code       string `json:"code"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
}

// DisplayLabel assembles the property's report label from its address
// segments, falling back to the property code when no address is on file.
func (p Property) DisplayLabel() string {
	segments := make([]string, 0, 4)

	if s := strings.TrimSpace(p.Complement); s != "" {
		segments = append(segments, s)
	}
	if s := strings.TrimSpace(p.Street); s != "" {
		if n := strings.TrimSpace(p.Number); n != "" {
			s = s + " " + n
		}
		segments = append(segments, s)
	}
	if s := strings.TrimSpace(p.District); s != "" {
		segments = append(segments, s)
	}
	if s := strings.TrimSpace(p.City); s != "" {
		segments = append(segments, s)
	}
	if len(segments) == 0 {
		if s := strings.TrimSpace(p.Code); s != "" {
			segments = append(segments, s)
		}
	}

	return strings.Join(segments, " • ")
}
