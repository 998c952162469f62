package repositories

import (
	"context"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
)

// CategorySort lists the sort fields accepted for category listings.
var CategorySort = pagination.SortSpec{
	Allowed:          []string{"name", "createdAt"},
	DefaultField:     "name",
	DefaultDirection: pagination.Asc,
}

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// FindCategoryByName retrieves a category by name, ignoring case.
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)

	// ListCategories retrieves a page of categories and the total number of categories.
	ListCategories(ctx context.Context, page pagination.PageRequest) ([]domain.Category, int64, error)

	// ListActiveCategories retrieves every active category ordered by name.
	ListActiveCategories(ctx context.Context) ([]domain.Category, error)

	// SearchCategoriesByName retrieves categories whose name contains fragment, ignoring case.
	SearchCategoriesByName(ctx context.Context, fragment string) ([]domain.Category, error)

	// FindMostUsedCategory returns the category referenced by the most obligations.
	// Ties go to the earliest created category. Returns ErrNotFound when no obligation exists.
	FindMostUsedCategory(ctx context.Context) (*domain.Category, error)

	// SumPayablesByCategory totals PAYABLE obligation amounts per active category.
	SumPayablesByCategory(ctx context.Context) ([]domain.CategoryTotal, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory overwrites name, description, active flag and update audit fields.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CategoryTransactionSupport defines operations used by lifecycle guards inside a transaction
type CategoryTransactionSupport interface {
	// FindCategoryByIDForUpdate selects a category and locks it until the transaction ends.
	FindCategoryByIDForUpdate(ctx context.Context, categoryID string) (*domain.Category, error)
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
	CategoryTransactionSupport
}
