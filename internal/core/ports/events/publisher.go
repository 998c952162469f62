package events

import (
	"context"
	"time"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ObligationSettledType is the event type written to the event stream after a settlement commits.
const ObligationSettledType = "obligation.settled"

// ObligationSettled describes a committed settlement.
type ObligationSettled struct {
	EventID         string           `json:"eventID"`
	Type            string           `json:"type"`
	ObligationID    string           `json:"obligationID"`
	BankAccountID   string           `json:"bankAccountID"`
	JournalEntryID  string           `json:"journalEntryID"`
	Direction       domain.Direction `json:"direction"`
	Amount          decimal.Decimal  `json:"amount"`
	PreviousBalance decimal.Decimal  `json:"previousBalance"`
	CurrentBalance  decimal.Decimal  `json:"currentBalance"`
	SettledAt       time.Time        `json:"settledAt"`
	SettledBy       string           `json:"settledBy"`
}

// Publisher delivers domain events to downstream consumers.
type Publisher interface {
	PublishObligationSettled(ctx context.Context, event ObligationSettled) error
	Close() error
}
