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
	"github.com/shopspring/decimal"
)

const obligationSelect = `
	SELECT o.obligation_id, o.description, o.amount, o.expiration_date, o.payment_date, o.status, o.direction,
	       o.category_id, o.bank_account_id, o.created_at, o.created_by, o.last_updated_at, o.last_updated_by,
	       c.name AS category_name, b.name AS bank_account_name, b.bank AS bank_name
	FROM obligations o
	JOIN categories c ON c.category_id = o.category_id
	JOIN bank_accounts b ON b.bank_account_id = o.bank_account_id`

var obligationSortColumns = map[string]string{
	"expirationDate": "o.expiration_date",
	"amount":         "o.amount",
	"description":    "lower(o.description)",
	"status":         "o.status",
	"createdAt":      "o.created_at",
}

type PgxObligationRepository struct {
	db querier
}

// newPgxObligationRepository creates a new repository for obligation data.
func newPgxObligationRepository(pool *pgxpool.Pool) portsrepo.ObligationRepositoryFacade {
	return &PgxObligationRepository{db: pool}
}

var _ portsrepo.ObligationRepositoryFacade = (*PgxObligationRepository)(nil)

func scanObligation(row pgx.CollectableRow) (domain.Obligation, error) {
	m, err := pgx.RowToStructByName[models.Obligation](row)
	if err != nil {
		return domain.Obligation{}, err
	}
	return mapping.ToDomainObligation(m), nil
}

func (r *PgxObligationRepository) findOne(ctx context.Context, query string, obligationID string) (*domain.Obligation, error) {
	rows, err := r.db.Query(ctx, query, obligationID)
	if err != nil {
		return nil, mapReadError(err, "obligation "+obligationID)
	}
	o, err := pgx.CollectExactlyOneRow(rows, scanObligation)
	if err != nil {
		return nil, mapReadError(err, "obligation "+obligationID)
	}
	return &o, nil
}

// FindObligationByID retrieves an obligation with its category and bank account names.
func (r *PgxObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	return r.findOne(ctx, obligationSelect+` WHERE o.obligation_id = $1`, obligationID)
}

// FindObligationByIDForUpdate retrieves an obligation and locks its row (not the joined rows).
// Must run within a transaction.
func (r *PgxObligationRepository) FindObligationByIDForUpdate(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	return r.findOne(ctx, obligationSelect+` WHERE o.obligation_id = $1 FOR UPDATE OF o`, obligationID)
}

func obligationConditions(f portsrepo.ObligationFilter) ([]string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != nil {
		add("o.status = $%d", string(*f.Status))
	}
	if f.Direction != nil {
		add("o.direction = $%d", string(*f.Direction))
	}
	if f.ExpiresFrom != nil {
		add("o.expiration_date >= $%d", domain.DateOf(*f.ExpiresFrom))
	}
	if f.ExpiresTo != nil {
		add("o.expiration_date <= $%d", domain.DateOf(*f.ExpiresTo))
	}
	if f.ExpiresBefore != nil {
		add("o.expiration_date < $%d", domain.DateOf(*f.ExpiresBefore))
	}
	return conds, args
}

// ListObligations retrieves a filtered page of obligations.
func (r *PgxObligationRepository) ListObligations(ctx context.Context, filter portsrepo.ObligationFilter, page pagination.PageRequest) ([]domain.Obligation, int64, error) {
	conds, args := obligationConditions(filter)
	listSQL := obligationSelect + where(conds) + orderBy(obligationSortColumns, "expirationDate", page, "o.created_at, o.obligation_id")
	countSQL := `SELECT count(*) FROM obligations o` + where(conds)
	return listWithCount(ctx, r.db, listSQL, countSQL, args, page, scanObligation)
}

// SumAmountByDirection totals obligation amounts of one direction.
func (r *PgxObligationRepository) SumAmountByDirection(ctx context.Context, direction domain.Direction) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM obligations WHERE direction = $1`, string(direction)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total %s obligations: %w", direction, err)
	}
	return domain.RoundMoney(total), nil
}

// CountByCategory counts obligations referencing a category, optionally of one status.
func (r *PgxObligationRepository) CountByCategory(ctx context.Context, categoryID string, status *domain.ObligationStatus) (int64, error) {
	return r.countBy(ctx, "category_id", categoryID, status)
}

// CountByBankAccount counts obligations referencing a bank account, optionally of one status.
func (r *PgxObligationRepository) CountByBankAccount(ctx context.Context, bankAccountID string, status *domain.ObligationStatus) (int64, error) {
	return r.countBy(ctx, "bank_account_id", bankAccountID, status)
}

// countBy is only called with fixed column names.
func (r *PgxObligationRepository) countBy(ctx context.Context, column string, id string, status *domain.ObligationStatus) (int64, error) {
	query := `SELECT count(*) FROM obligations WHERE ` + column + ` = $1`
	args := []any{id}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	var n int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count obligations by %s: %w", column, err)
	}
	return n, nil
}

// SaveObligation inserts a new obligation.
func (r *PgxObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	m := mapping.ToModelObligation(obligation)
	query := `
		INSERT INTO obligations (obligation_id, description, amount, expiration_date, payment_date, status, direction,
		                         category_id, bank_account_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		m.ObligationID, m.Description, m.Amount, m.ExpirationDate, m.PaymentDate, m.Status, m.Direction,
		m.CategoryID, m.BankAccountID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "obligation "+m.ObligationID)
	}
	return nil
}

// UpdateObligation overwrites the mutable columns of an obligation.
func (r *PgxObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation) error {
	m := mapping.ToModelObligation(obligation)
	query := `
		UPDATE obligations
		SET description = $2, amount = $3, expiration_date = $4, payment_date = $5, status = $6, direction = $7,
		    category_id = $8, bank_account_id = $9, last_updated_at = $10, last_updated_by = $11
		WHERE obligation_id = $1`
	ct, err := r.db.Exec(ctx, query,
		m.ObligationID, m.Description, m.Amount, m.ExpirationDate, m.PaymentDate, m.Status, m.Direction,
		m.CategoryID, m.BankAccountID, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "obligation "+m.ObligationID)
	}
	if ct.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "obligation "+m.ObligationID)
	}
	return nil
}

// DeleteObligation removes an obligation. journal_entries.obligation_id is cleared by the foreign key.
func (r *PgxObligationRepository) DeleteObligation(ctx context.Context, obligationID string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM obligations WHERE obligation_id = $1`, obligationID)
	if err != nil {
		return mapWriteError(err, "obligation "+obligationID)
	}
	if ct.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "obligation "+obligationID)
	}
	return nil
}
