package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type categoryRepository struct {
	a access
}

var _ portsrepo.CategoryRepositoryFacade = (*categoryRepository)(nil)

func (r *categoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	var out *domain.Category
	err := r.a.read(func(st *state) error {
		c, ok := st.categories[categoryID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *categoryRepository) FindCategoryByIDForUpdate(ctx context.Context, categoryID string) (*domain.Category, error) {
	return r.FindCategoryByID(ctx, categoryID)
}

func (r *categoryRepository) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	var out *domain.Category
	err := r.a.read(func(st *state) error {
		for _, c := range st.categories {
			if c.SameName(name) {
				out = &c
				return nil
			}
		}
		return apperrors.ErrNotFound
	})
	return out, err
}

func (r *categoryRepository) ListCategories(ctx context.Context, page pagination.PageRequest) ([]domain.Category, int64, error) {
	var (
		out   []domain.Category
		total int64
	)
	err := r.a.read(func(st *state) error {
		all := make([]domain.Category, 0, len(st.categories))
		for _, c := range st.categories {
			all = append(all, c)
		}
		out, total = sortAndPage(all, page, categoryComparator(page.SortField), func(c domain.Category) int64 { return st.seq[c.CategoryID] })
		return nil
	})
	return out, total, err
}

func (r *categoryRepository) ListActiveCategories(ctx context.Context) ([]domain.Category, error) {
	return r.filter(func(c domain.Category) bool { return c.IsActive })
}

func (r *categoryRepository) SearchCategoriesByName(ctx context.Context, fragment string) ([]domain.Category, error) {
	return r.filter(func(c domain.Category) bool { return containsFold(c.Name, fragment) })
}

func (r *categoryRepository) filter(keep func(domain.Category) bool) ([]domain.Category, error) {
	var out []domain.Category
	err := r.a.read(func(st *state) error {
		out = make([]domain.Category, 0)
		for _, c := range st.categories {
			if keep(c) {
				out = append(out, c)
			}
		}
		slices.SortFunc(out, func(a, b domain.Category) int { return compareFold(a.Name, b.Name) })
		return nil
	})
	return out, err
}

func (r *categoryRepository) FindMostUsedCategory(ctx context.Context) (*domain.Category, error) {
	var out *domain.Category
	err := r.a.read(func(st *state) error {
		counts := make(map[string]int)
		for _, o := range st.obligations {
			counts[o.CategoryID]++
		}
		var best *domain.Category
		bestCount := 0
		for id, n := range counts {
			c, ok := st.categories[id]
			if !ok {
				continue
			}
			if n > bestCount || (n == bestCount && earlier(c, *best, st)) {
				c := c
				best, bestCount = &c, n
			}
		}
		if best == nil {
			return fmt.Errorf("%w: no category is referenced by an obligation", apperrors.ErrNotFound)
		}
		out = best
		return nil
	})
	return out, err
}

func earlier(a, b domain.Category, st *state) bool {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c < 0
	}
	return st.seq[a.CategoryID] < st.seq[b.CategoryID]
}

func (r *categoryRepository) SumPayablesByCategory(ctx context.Context) ([]domain.CategoryTotal, error) {
	var out []domain.CategoryTotal
	err := r.a.read(func(st *state) error {
		sums := make(map[string]decimal.Decimal)
		for _, o := range st.obligations {
			if o.Direction != domain.Payable {
				continue
			}
			c, ok := st.categories[o.CategoryID]
			if !ok || !c.IsActive {
				continue
			}
			sums[c.CategoryID] = sums[c.CategoryID].Add(o.Amount)
		}
		out = make([]domain.CategoryTotal, 0, len(sums))
		for id, sum := range sums {
			out = append(out, domain.CategoryTotal{
				CategoryID:  id,
				Name:        st.categories[id].Name,
				TotalAmount: domain.RoundMoney(sum),
			})
		}
		slices.SortFunc(out, func(a, b domain.CategoryTotal) int { return compareFold(a.Name, b.Name) })
		return nil
	})
	return out, err
}

func (r *categoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.categories[category.CategoryID]; exists {
			return fmt.Errorf("%w: category with ID %s already exists", apperrors.ErrDuplicate, category.CategoryID)
		}
		if err := uniqueCategoryName(st, category); err != nil {
			return err
		}
		st.categories[category.CategoryID] = category
		st.track(category.CategoryID)
		return nil
	})
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.categories[category.CategoryID]; !exists {
			return apperrors.ErrNotFound
		}
		if err := uniqueCategoryName(st, category); err != nil {
			return err
		}
		st.categories[category.CategoryID] = category
		return nil
	})
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.categories[categoryID]; !exists {
			return apperrors.ErrNotFound
		}
		for _, o := range st.obligations {
			if o.CategoryID == categoryID {
				return apperrors.BusinessRule("category %s is referenced by obligations", categoryID)
			}
		}
		delete(st.categories, categoryID)
		delete(st.seq, categoryID)
		return nil
	})
}

func uniqueCategoryName(st *state, category domain.Category) error {
	for id, existing := range st.categories {
		if id != category.CategoryID && existing.SameName(category.Name) {
			return fmt.Errorf("%w: category named %q already exists", apperrors.ErrDuplicate, category.Name)
		}
	}
	return nil
}

func categoryComparator(field string) func(a, b domain.Category) int {
	switch field {
	case "createdAt":
		return func(a, b domain.Category) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return func(a, b domain.Category) int { return compareFold(a.Name, b.Name) }
	}
}
