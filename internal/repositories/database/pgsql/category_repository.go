package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/payables_ledger/internal/models"
	"github.com/SscSPs/payables_ledger/internal/utils/mapping"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `c.category_id, c.name, c.description, c.is_active, c.created_at, c.created_by, c.last_updated_at, c.last_updated_by`

var categorySortColumns = map[string]string{
	"name":      "lower(c.name)",
	"createdAt": "c.created_at",
}

type PgxCategoryRepository struct {
	db querier
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{db: pool}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepositoryFacade
var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.CollectableRow) (domain.Category, error) {
	m, err := pgx.RowToStructByName[models.Category](row)
	if err != nil {
		return domain.Category{}, err
	}
	return mapping.ToDomainCategory(m), nil
}

func (r *PgxCategoryRepository) findOne(ctx context.Context, query string, what string, args ...any) (*domain.Category, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapReadError(err, what)
	}
	c, err := pgx.CollectExactlyOneRow(rows, scanCategory)
	if err != nil {
		return nil, mapReadError(err, what)
	}
	return &c, nil
}

func (r *PgxCategoryRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	out, err := pgx.CollectRows(rows, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	return out, nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories c WHERE c.category_id = $1`
	return r.findOne(ctx, query, "category "+categoryID, categoryID)
}

// FindCategoryByIDForUpdate retrieves a category and locks its row. Must run within a transaction.
func (r *PgxCategoryRepository) FindCategoryByIDForUpdate(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories c WHERE c.category_id = $1 FOR UPDATE`
	return r.findOne(ctx, query, "category "+categoryID, categoryID)
}

// FindCategoryByName retrieves a category by name, ignoring case.
func (r *PgxCategoryRepository) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories c WHERE lower(c.name) = lower(trim($1))`
	return r.findOne(ctx, query, "category named "+name, name)
}

// ListCategories retrieves a page of categories.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, page pagination.PageRequest) ([]domain.Category, int64, error) {
	listSQL := `SELECT ` + categoryColumns + ` FROM categories c` + orderBy(categorySortColumns, "name", page, "c.created_at, c.category_id")
	countSQL := `SELECT count(*) FROM categories c`
	return listWithCount(ctx, r.db, listSQL, countSQL, nil, page, scanCategory)
}

// ListActiveCategories retrieves every active category.
func (r *PgxCategoryRepository) ListActiveCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories c WHERE c.is_active ORDER BY lower(c.name)`
	return r.findMany(ctx, query)
}

// SearchCategoriesByName retrieves categories whose name contains fragment, ignoring case.
func (r *PgxCategoryRepository) SearchCategoriesByName(ctx context.Context, fragment string) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories c WHERE c.name ILIKE '%' || trim($1) || '%' ORDER BY lower(c.name)`
	return r.findMany(ctx, query, fragment)
}

// FindMostUsedCategory returns the category referenced by the most obligations.
func (r *PgxCategoryRepository) FindMostUsedCategory(ctx context.Context) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories c
		JOIN obligations o ON o.category_id = c.category_id
		GROUP BY c.category_id
		ORDER BY count(o.obligation_id) DESC, c.created_at ASC, c.category_id ASC
		LIMIT 1`
	return r.findOne(ctx, query, "category referenced by an obligation")
}

// SumPayablesByCategory totals PAYABLE obligation amounts per active category.
func (r *PgxCategoryRepository) SumPayablesByCategory(ctx context.Context) ([]domain.CategoryTotal, error) {
	query := `
		SELECT c.category_id, c.name, COALESCE(SUM(o.amount), 0) AS total_amount
		FROM categories c
		JOIN obligations o ON o.category_id = c.category_id
		WHERE c.is_active AND o.direction = $1
		GROUP BY c.category_id, c.name
		ORDER BY lower(c.name)`

	rows, err := r.db.Query(ctx, query, string(domain.Payable))
	if err != nil {
		return nil, fmt.Errorf("failed to total obligations by category: %w", err)
	}
	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CategoryTotal, error) {
		var t domain.CategoryTotal
		err := row.Scan(&t.CategoryID, &t.Name, &t.TotalAmount)
		t.TotalAmount = domain.RoundMoney(t.TotalAmount)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan category totals: %w", err)
	}
	return totals, nil
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO categories (category_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		m.CategoryID, m.Name, m.Description, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("category %q", m.Name))
	}
	return nil
}

// UpdateCategory overwrites the mutable columns of a category.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		UPDATE categories
		SET name = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE category_id = $1`
	ct, err := r.db.Exec(ctx, query, m.CategoryID, m.Name, m.Description, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("category %q", m.Name))
	}
	if ct.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "category "+m.CategoryID)
	}
	return nil
}

// DeleteCategory removes a category.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM categories WHERE category_id = $1`, categoryID)
	if err != nil {
		return mapWriteError(err, "category "+categoryID)
	}
	if ct.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "category "+categoryID)
	}
	return nil
}
