package mapping

import (
	"github.com/fortresspm/bookkeeping_backend/internal/core/domain"
	"github.com/fortresspm/bookkeeping_backend/internal/models"
)

// ToModelEntry converts a domain JournalEntry to a model JournalEntry
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:          d.EntryID,
		Type:             models.EntryType(d.Type),
		Status:           models.EntryStatus(d.Status),
		Amount:           d.Amount,
		MovementDate:     d.MovementDate,
		DueDate:          d.DueDate,
		Description:      d.Description,
		Notes:            d.Notes,
		ReferenceCode:    d.ReferenceCode,
		BankAccountID:    d.BankAccountID,
		CounterAccountID: d.CounterAccountID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.CostCenter != nil {
		m.CostCenterID = &d.CostCenter.CostCenterID
	}
	if d.Person != nil {
		m.PersonID = &d.Person.PersonID
	}
	if d.Property != nil {
		m.PropertyID = &d.Property.PropertyID
	}
	return m
}

// ToDomainEntry converts a model JournalEntry to a domain JournalEntry,
// assembling the joined cost-center, person and property references.
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:          m.EntryID,
		Type:             domain.EntryType(m.Type),
		Status:           domain.EntryStatus(m.Status),
		Amount:           m.Amount,
		MovementDate:     m.MovementDate,
		DueDate:          m.DueDate,
		Description:      m.Description,
		Notes:            m.Notes,
		ReferenceCode:    m.ReferenceCode,
		BankAccountID:    m.BankAccountID,
		CounterAccountID: m.CounterAccountID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.CostCenterID != nil {
		d.CostCenter = &domain.CostCenter{
			CostCenterID: *m.CostCenterID,
			Name:         deref(m.CostCenterName),
			Code:         deref(m.CostCenterCode),
		}
	}
	if m.PersonID != nil {
		d.Person = &domain.Person{
			PersonID: *m.PersonID,
			Name:     deref(m.PersonName),
		}
	}
	if m.PropertyID != nil {
		d.Property = &domain.Property{
			PropertyID: *m.PropertyID,
			Code:       deref(m.PropertyCode),
			Street:     deref(m.PropertyStreet),
			Number:     deref(m.PropertyNumber),
			Complement: deref(m.PropertyComplement),
			District:   deref(m.PropertyDistrict),
			City:       deref(m.PropertyCity),
		}
	}
	return d
}

// ToModelInstallment converts a domain Installment to a model Installment
func ToModelInstallment(d domain.Installment) models.Installment {
	return models.Installment{
		InstallmentID: d.InstallmentID,
		EntryID:       d.EntryID,
		DueDate:       d.DueDate,
		PaymentDate:   d.PaymentDate,
		Status:        models.EntryStatus(d.Status),
		Amount:        d.Amount,
		Penalty:       d.Penalty,
		Interest:      d.Interest,
		Discount:      d.Discount,
		Meta:          d.Meta,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInstallment converts a model Installment to a domain Installment
func ToDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		InstallmentID: m.InstallmentID,
		EntryID:       m.EntryID,
		DueDate:       m.DueDate,
		PaymentDate:   m.PaymentDate,
		Status:        domain.EntryStatus(m.Status),
		Amount:        m.Amount,
		Penalty:       m.Penalty,
		Interest:      m.Interest,
		Discount:      m.Discount,
		Meta:          m.Meta,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInstallmentSlice converts a slice of model Installments to a slice of domain Installments
func ToDomainInstallmentSlice(ms []models.Installment) []domain.Installment {
	ds := make([]domain.Installment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInstallment(m)
	}
	return ds
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
