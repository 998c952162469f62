package services

import (
	"context"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
)

// CategoryReaderSvc defines read operations for category data
type CategoryReaderSvc interface {
	// GetCategoryByID retrieves a category by its unique identifier.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves a page of categories.
	ListCategories(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.Category], error)

	// ListActiveCategories retrieves every active category.
	ListActiveCategories(ctx context.Context) ([]domain.Category, error)

	// SearchCategories retrieves categories whose name contains fragment, ignoring case.
	SearchCategories(ctx context.Context, fragment string) ([]domain.Category, error)

	// GetMostUsedCategory returns the category referenced by the most obligations.
	GetMostUsedCategory(ctx context.Context) (*domain.Category, error)

	// GetCategoryTotals returns the payable total of each active category.
	GetCategoryTotals(ctx context.Context) ([]domain.CategoryTotal, error)
}

// CategoryWriterSvc defines write operations for category data
type CategoryWriterSvc interface {
	// CreateCategory registers a new active category. Names are unique ignoring case.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error)

	// UpdateCategory renames or re-describes a category.
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error)

	// ToggleCategoryActive flips the active flag. Deactivation is refused while pending obligations reference the category.
	ToggleCategoryActive(ctx context.Context, categoryID string, userID string) (*domain.Category, error)

	// DeleteCategory removes a category no obligation references.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CategorySvcFacade combines all category-related service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
