package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ObligationStatus is the settlement state of an obligation.
type ObligationStatus string

const (
	Pending ObligationStatus = "PENDING"
	Paid    ObligationStatus = "PAID"
)

// ParseStatus converts a free-text token into an ObligationStatus.
func ParseStatus(s string) (ObligationStatus, error) {
	switch ObligationStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case Pending:
		return Pending, nil
	case Paid:
		return Paid, nil
	}
	return "", apperrors.Validation("unknown status %q, expected one of PENDING, PAID", s)
}

// Obligation is a payable or receivable amount owed against a bank account.
type Obligation struct {
	ObligationID   string           `json:"obligationID"` // Primary Key (UUID)
	Description    string           `json:"description"`
	Amount         decimal.Decimal  `json:"amount"`         // Positive, scale 2
	ExpirationDate time.Time        `json:"expirationDate"` // Calendar date (UTC midnight)
	PaymentDate    *time.Time       `json:"paymentDate"`    // Nil until settled
	Status         ObligationStatus `json:"status"`
	Direction      Direction        `json:"direction"`
	CategoryID     string           `json:"categoryID"`    // FK -> categories.category_id
	BankAccountID  string           `json:"bankAccountID"` // FK -> bank_accounts.bank_account_id
	AuditFields

	// Read-side denormalisation filled by repositories; never persisted.
	CategoryName    string `json:"categoryName,omitempty"`
	BankAccountName string `json:"bankAccountName,omitempty"`
	BankName        string `json:"bankName,omitempty"`
}

// IsPaid reports whether the obligation has been settled.
func (o *Obligation) IsPaid() bool {
	return o.Status == Paid
}

// IsExpired reports whether the obligation is still pending after its expiration date.
// Only the calendar date of asOf is considered.
func (o *Obligation) IsExpired(asOf time.Time) bool {
	return o.Status == Pending && DateOf(o.ExpirationDate).Before(DateOf(asOf))
}

// MarkAsPaid performs the one-way PENDING -> PAID transition.
func (o *Obligation) MarkAsPaid(on time.Time) error {
	if o.Status != Pending {
		return apperrors.BusinessRule("obligation %s is already %s", o.ObligationID, o.Status)
	}
	paidOn := DateOf(on)
	o.Status = Paid
	o.PaymentDate = &paidOn
	return nil
}

// SettlementDescription is the journal description recorded when the obligation is paid.
func (o *Obligation) SettlementDescription() string {
	return "Payment for: " + o.Description
}
