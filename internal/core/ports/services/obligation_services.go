package services

import (
	"context"
	"time"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// ObligationReaderSvc defines read operations for obligation data
type ObligationReaderSvc interface {
	// GetObligationByID retrieves an obligation by its unique identifier.
	GetObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error)

	// ListObligations retrieves a page of obligations.
	ListObligations(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.Obligation], error)

	// ListObligationsByStatus retrieves a page of obligations in the given status.
	ListObligationsByStatus(ctx context.Context, status domain.ObligationStatus, page pagination.PageRequest) (pagination.Page[domain.Obligation], error)

	// ListOverdueObligations retrieves pending obligations whose expiration date has passed.
	ListOverdueObligations(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.Obligation], error)

	// ListObligationsDueBetween retrieves obligations expiring in [start, end], optionally of one direction.
	ListObligationsDueBetween(ctx context.Context, start, end time.Time, direction *domain.Direction, page pagination.PageRequest) (pagination.Page[domain.Obligation], error)

	// GetTotalAmountByDirection sums obligation amounts of one direction.
	GetTotalAmountByDirection(ctx context.Context, direction domain.Direction) (decimal.Decimal, error)
}

// ObligationWriterSvc defines write operations for obligation data
type ObligationWriterSvc interface {
	// CreateObligation registers a pending obligation against an active category and bank account.
	CreateObligation(ctx context.Context, req dto.CreateObligationRequest, userID string) (*domain.Obligation, error)

	// UpdateObligation overwrites a pending obligation. Settled obligations are immutable.
	UpdateObligation(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, userID string) (*domain.Obligation, error)

	// DeleteObligation removes an obligation; its journal entries are kept.
	DeleteObligation(ctx context.Context, obligationID string) error
}

// ObligationSvcFacade combines all obligation service interfaces
type ObligationSvcFacade interface {
	ObligationReaderSvc
	ObligationWriterSvc
}
