package models

import "github.com/shopspring/decimal"

// BankAccount is a row of the bank_accounts table.
type BankAccount struct {
	BankAccountID  string          `db:"bank_account_id"`
	Name           string          `db:"name"` // Unique
	Bank           string          `db:"bank"`
	CurrentBalance decimal.Decimal `db:"current_balance"` // NUMERIC(19,2)
	IsActive       bool            `db:"is_active"`
	AuditFields
}
