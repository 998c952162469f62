package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// ObligationSort lists the sort fields accepted for obligation listings.
var ObligationSort = pagination.SortSpec{
	Allowed:          []string{"expirationDate", "amount", "description", "status", "createdAt"},
	DefaultField:     "expirationDate",
	DefaultDirection: pagination.Desc,
}

// ObligationFilter narrows an obligation listing. Zero values mean "no filter".
type ObligationFilter struct {
	Status        *domain.ObligationStatus
	Direction     *domain.Direction
	ExpiresFrom   *time.Time // inclusive
	ExpiresTo     *time.Time // inclusive
	ExpiresBefore *time.Time // exclusive, used for overdue listings
}

// ObligationReader defines read operations for obligation data
type ObligationReader interface {
	// FindObligationByID retrieves an obligation by its unique identifier, with category and bank names filled.
	FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error)

	// ListObligations retrieves a filtered page of obligations and the total number of matches.
	ListObligations(ctx context.Context, filter ObligationFilter, page pagination.PageRequest) ([]domain.Obligation, int64, error)

	// SumAmountByDirection totals obligation amounts of the given direction, zero if none.
	SumAmountByDirection(ctx context.Context, direction domain.Direction) (decimal.Decimal, error)

	// CountByCategory counts obligations referencing a category. A nil status counts every status.
	CountByCategory(ctx context.Context, categoryID string, status *domain.ObligationStatus) (int64, error)

	// CountByBankAccount counts obligations referencing a bank account. A nil status counts every status.
	CountByBankAccount(ctx context.Context, bankAccountID string, status *domain.ObligationStatus) (int64, error)
}

// ObligationWriter defines write operations for obligation data
type ObligationWriter interface {
	// SaveObligation persists a new obligation.
	SaveObligation(ctx context.Context, obligation domain.Obligation) error

	// UpdateObligation overwrites every mutable column of an existing obligation.
	UpdateObligation(ctx context.Context, obligation domain.Obligation) error

	// DeleteObligation removes an obligation. Journal entries keep their row with the link cleared.
	DeleteObligation(ctx context.Context, obligationID string) error
}

// ObligationTransactionSupport defines operations used by settlement inside a transaction
type ObligationTransactionSupport interface {
	// FindObligationByIDForUpdate selects an obligation and locks it until the transaction ends.
	FindObligationByIDForUpdate(ctx context.Context, obligationID string) (*domain.Obligation, error)
}

// ObligationRepositoryFacade combines all obligation repository interfaces
type ObligationRepositoryFacade interface {
	ObligationReader
	ObligationWriter
	ObligationTransactionSupport
}
