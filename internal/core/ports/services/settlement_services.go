package services

import (
	"context"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/dto"
)

// SettlementSvc settles obligations against bank accounts.
type SettlementSvc interface {
	// PayObligation marks a pending obligation as paid, debits the bank account by its amount
	// and appends one journal entry, all atomically.
	PayObligation(ctx context.Context, req dto.PayObligationRequest, userID string) (*domain.Obligation, error)
}
