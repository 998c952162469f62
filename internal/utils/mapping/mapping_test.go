package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToModelObligation_TruncatesExpirationDate(t *testing.T) {
	o := domain.Obligation{
		ObligationID:   "obl_1",
		Amount:         decimal.RequireFromString("99.90"),
		ExpirationDate: time.Date(2026, 4, 1, 22, 15, 0, 0, time.UTC),
		Status:         domain.Pending,
		Direction:      domain.Receivable,
		CategoryName:   "Utilities",
	}

	m := ToModelObligation(o)

	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), m.ExpirationDate)
	assert.Equal(t, "PENDING", m.Status)
	assert.Equal(t, "RECEIVABLE", m.Direction)
	assert.Empty(t, m.CategoryName, "joined names are never written")
}

func TestToDomainJournalEntry_DeletedObligation(t *testing.T) {
	m := models.JournalEntry{
		EntryID:         "je_1",
		BankAccountID:   "ba_1",
		Direction:       "PAYABLE",
		Amount:          decimal.RequireFromString("10"),
		BankAccountName: "Operating",
	}

	d := ToDomainJournalEntry(m)

	assert.Nil(t, d.ObligationID)
	assert.Empty(t, d.ObligationDescription)
	assert.Equal(t, domain.Payable, d.Direction)
	assert.Equal(t, "Operating", d.BankAccountName)
}
