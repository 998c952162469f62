package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Obligation is a row of the obligations table.
type Obligation struct {
	ObligationID   string          `db:"obligation_id"`
	Description    string          `db:"description"`
	Amount         decimal.Decimal `db:"amount"`          // NUMERIC(19,2), > 0
	ExpirationDate time.Time       `db:"expiration_date"` // DATE
	PaymentDate    *time.Time      `db:"payment_date"`    // Nullable DATE
	Status         string          `db:"status"`
	Direction      string          `db:"direction"`
	CategoryID     string          `db:"category_id"`
	BankAccountID  string          `db:"bank_account_id"`
	AuditFields

	// Joined columns, read only.
	CategoryName    string `db:"category_name"`
	BankAccountName string `db:"bank_account_name"`
	BankName        string `db:"bank_name"`
}
