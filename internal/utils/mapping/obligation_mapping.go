package mapping

import (
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/models"
)

// ToModelObligation converts a domain Obligation to a model Obligation.
// Joined name columns are not written.
func ToModelObligation(d domain.Obligation) models.Obligation {
	return models.Obligation{
		ObligationID:   d.ObligationID,
		Description:    d.Description,
		Amount:         d.Amount,
		ExpirationDate: domain.DateOf(d.ExpirationDate),
		PaymentDate:    d.PaymentDate,
		Status:         string(d.Status),
		Direction:      string(d.Direction),
		CategoryID:     d.CategoryID,
		BankAccountID:  d.BankAccountID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainObligation converts a model Obligation to a domain Obligation
func ToDomainObligation(m models.Obligation) domain.Obligation {
	return domain.Obligation{
		ObligationID:    m.ObligationID,
		Description:     m.Description,
		Amount:          m.Amount,
		ExpirationDate:  domain.DateOf(m.ExpirationDate),
		PaymentDate:     m.PaymentDate,
		Status:          domain.ObligationStatus(m.Status),
		Direction:       domain.Direction(m.Direction),
		CategoryID:      m.CategoryID,
		BankAccountID:   m.BankAccountID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		CategoryName:    m.CategoryName,
		BankAccountName: m.BankAccountName,
		BankName:        m.BankName,
	}
}
