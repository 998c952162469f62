package domain

import (
	"github.com/shopspring/decimal"
)

// BankAccount holds the running balance obligations are settled against.
type BankAccount struct {
	BankAccountID  string          `json:"bankAccountID"` // Primary Key (UUID)
	Name           string          `json:"name"`          // Unique
	Bank           string          `json:"bank"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// Debit subtracts amount from the balance and returns the balances before and after.
// No floor is enforced here; settlement policy decides whether a negative result is allowed.
func (b *BankAccount) Debit(amount decimal.Decimal) (previous, current decimal.Decimal) {
	previous = b.CurrentBalance
	b.CurrentBalance = RoundMoney(previous.Sub(amount))
	return previous, b.CurrentBalance
}
