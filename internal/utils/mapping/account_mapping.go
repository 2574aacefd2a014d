package mapping

import (
	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/fortresspm/bookkeeping_backend/internal/models"
)

// ToModelFinancialAccount converts a domain FinancialAccount to a model FinancialAccount
func ToModelFinancialAccount(d domain.FinancialAccount) models.FinancialAccount {
	return models.FinancialAccount{
		AccountID:      d.AccountID,
		Name:           d.Name,
		OpeningBalance: d.OpeningBalance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFinancialAccount converts a model FinancialAccount to a domain FinancialAccount
func ToDomainFinancialAccount(m models.FinancialAccount) domain.FinancialAccount {
	return domain.FinancialAccount{
		AccountID:      m.AccountID,
		Name:           m.Name,
		OpeningBalance: m.OpeningBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
