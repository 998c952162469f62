package mapping

import (
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		BankAccountID:   d.BankAccountID,
		ObligationID:    d.ObligationID,
		Direction:       string(d.Direction),
		Amount:          d.Amount,
		Description:     d.Description,
		PreviousBalance: d.PreviousBalance,
		CurrentBalance:  d.CurrentBalance,
		TransactionDate: d.TransactionDate,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:         m.EntryID,
		BankAccountID:   m.BankAccountID,
		ObligationID:    m.ObligationID,
		Direction:       domain.Direction(m.Direction),
		Amount:          m.Amount,
		Description:     m.Description,
		PreviousBalance: m.PreviousBalance,
		CurrentBalance:  m.CurrentBalance,
		TransactionDate: m.TransactionDate,
		CreatedBy:       m.CreatedBy,
		BankAccountName: m.BankAccountName,
	}
	if m.ObligationDescription != nil {
		d.ObligationDescription = *m.ObligationDescription
	}
	return d
}
