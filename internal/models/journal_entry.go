package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID         string          `db:"entry_id"`
	BankAccountID   string          `db:"bank_account_id"`
	ObligationID    *string         `db:"obligation_id"` // Nullable, ON DELETE SET NULL
	Direction       string          `db:"direction"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	PreviousBalance decimal.Decimal `db:"previous_balance"`
	CurrentBalance  decimal.Decimal `db:"current_balance"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedBy       string          `db:"created_by"`

	// Joined columns, read only.
	BankAccountName       string  `db:"bank_account_name"`
	ObligationDescription *string `db:"obligation_description"`
}
