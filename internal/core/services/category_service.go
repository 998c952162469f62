package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payables_ledger/internal/core/ports/services"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/google/uuid"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryReader
	txManager    portsrepo.TransactionManager
}

// NewCategoryService creates the category registry.
func NewCategoryService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.CategorySvcFacade {
	return &categoryService{
		BaseService:  newBaseService(options...),
		categoryRepo: repos.CategoryRepo,
		txManager:    repos.TxManager,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func normaliseCategoryRequest(name, description string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", apperrors.Validation("category name is required")
	}
	return name, strings.TrimSpace(description), nil
}

// ensureNameFree fails with ErrDuplicate if another category already uses name.
func ensureNameFree(ctx context.Context, repo portsrepo.CategoryReader, name string, selfID string) error {
	existing, err := repo.FindCategoryByName(ctx, name)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.CategoryID != selfID {
		return fmt.Errorf("%w: category named %q already exists", apperrors.ErrDuplicate, existing.Name)
	}
	return nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	name, description, err := normaliseCategoryRequest(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        name,
		Description: description,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := ensureNameFree(ctx, repos.Categories, name, ""); err != nil {
			return err
		}
		return repos.Categories.SaveCategory(ctx, category)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create category", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error) {
	name, description, err := normaliseCategoryRequest(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	var updated *domain.Category
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		category, err := repos.Categories.FindCategoryByIDForUpdate(ctx, categoryID)
		if err != nil {
			return err
		}
		if err := ensureNameFree(ctx, repos.Categories, name, categoryID); err != nil {
			return err
		}
		category.Name = name
		category.Description = description
		category.Touch(userID, s.Now())
		if err := repos.Categories.UpdateCategory(ctx, *category); err != nil {
			return err
		}
		updated = category
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category updated", slog.String("category_id", categoryID))
	return updated, nil
}

func (s *categoryService) ToggleCategoryActive(ctx context.Context, categoryID string, userID string) (*domain.Category, error) {
	var updated *domain.Category
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		category, err := repos.Categories.FindCategoryByIDForUpdate(ctx, categoryID)
		if err != nil {
			return err
		}
		if category.IsActive {
			pending := domain.Pending
			n, err := repos.Obligations.CountByCategory(ctx, categoryID, &pending)
			if err != nil {
				return err
			}
			if n > 0 {
				return apperrors.BusinessRule("category %q has %d pending obligation(s) and cannot be deactivated", category.Name, n)
			}
		}
		category.IsActive = !category.IsActive
		category.Touch(userID, s.Now())
		if err := repos.Categories.UpdateCategory(ctx, *category); err != nil {
			return err
		}
		updated = category
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to toggle category", slog.String("category_id", categoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category active flag toggled", slog.String("category_id", categoryID), slog.Bool("is_active", updated.IsActive))
	return updated, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		category, err := repos.Categories.FindCategoryByIDForUpdate(ctx, categoryID)
		if err != nil {
			return err
		}
		n, err := repos.Obligations.CountByCategory(ctx, categoryID, nil)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperrors.BusinessRule("category %q is referenced by %d obligation(s) and cannot be deleted", category.Name, n)
		}
		return repos.Categories.DeleteCategory(ctx, categoryID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return err
	}

	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get category", slog.String("category_id", categoryID))
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.Category], error) {
	page = page.Normalize(portsrepo.CategorySort)
	items, total, err := s.categoryRepo.ListCategories(ctx, page)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return pagination.Page[domain.Category]{}, err
	}
	return pagination.NewPage(items, page, total), nil
}

func (s *categoryService) ListActiveCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListActiveCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active categories")
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) SearchCategories(ctx context.Context, fragment string) ([]domain.Category, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, apperrors.Validation("search term is required")
	}
	categories, err := s.categoryRepo.SearchCategoriesByName(ctx, fragment)
	if err != nil {
		s.LogError(ctx, err, "Failed to search categories", slog.String("fragment", fragment))
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) GetMostUsedCategory(ctx context.Context) (*domain.Category, error) {
	category, err := s.categoryRepo.FindMostUsedCategory(ctx)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find most used category")
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetCategoryTotals(ctx context.Context) ([]domain.CategoryTotal, error) {
	totals, err := s.categoryRepo.SumPayablesByCategory(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to total categories")
		return nil, err
	}
	return totals, nil
}
