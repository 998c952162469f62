package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the immutable audit record of one balance-affecting event.
type JournalEntry struct {
	EntryID         string          `json:"entryID"`       // Primary Key (UUID)
	BankAccountID   string          `json:"bankAccountID"` // FK -> bank_accounts.bank_account_id (Not Null)
	ObligationID    *string         `json:"obligationID"`  // Nullable FK, cleared when the obligation is deleted
	Direction       Direction       `json:"direction"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	TransactionDate time.Time       `json:"transactionDate"` // Set once at settlement
	CreatedBy       string          `json:"createdBy"`

	// Read-side denormalisation filled by repositories; never persisted.
	BankAccountName       string `json:"bankAccountName,omitempty"`
	ObligationDescription string `json:"obligationDescription,omitempty"`
}
