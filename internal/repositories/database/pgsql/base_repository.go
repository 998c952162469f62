package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so each repository
// runs unchanged inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

var (
	_ querier = (*pgxpool.Pool)(nil)
	_ querier = (pgx.Tx)(nil)
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// WithinTx runs fn with repositories bound to a single database transaction.
func (r *BaseRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Rollback is a no-op once the transaction has been committed.
	defer func() {
		if rbErr := r.Rollback(context.WithoutCancel(ctx), tx); rbErr != nil {
			slog.ErrorContext(ctx, "Rollback failed", "error", rbErr)
		}
	}()

	if err := fn(ctx, reposFor(tx)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

func reposFor(q querier) portsrepo.TxRepositories {
	return portsrepo.TxRepositories{
		Categories:   &PgxCategoryRepository{db: q},
		BankAccounts: &PgxBankAccountRepository{db: q},
		Obligations:  &PgxObligationRepository{db: q},
		Journal:      &PgxJournalRepository{db: q},
	}
}

// mapWriteError translates constraint violations into application errors.
func mapWriteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s already exists", apperrors.ErrDuplicate, what)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s conflicts with a referenced row (%s)", apperrors.ErrBusinessRule, what, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s violates %s", apperrors.ErrValidation, what, pgErr.ConstraintName)
		case pgNumericOutOfRange:
			return fmt.Errorf("%w: %s has a value out of range", apperrors.ErrValidation, what)
		}
	}
	return apperrors.NewAppError(http.StatusInternalServerError, "failed to write "+what, err)
}

// mapReadError turns pgx.ErrNoRows into apperrors.ErrNotFound.
func mapReadError(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return apperrors.NewAppError(http.StatusInternalServerError, "failed to read "+what, err)
}

// orderBy renders an ORDER BY clause from a whitelisted column map. Unknown fields fall back
// to fallback; tieBreak is appended so paging is stable.
func orderBy(columns map[string]string, fallback string, page pagination.PageRequest, tieBreak string) string {
	col, ok := columns[page.SortField]
	if !ok {
		col = columns[fallback]
	}
	dir := "ASC"
	if page.Direction == pagination.Desc {
		dir = "DESC"
	}
	var b strings.Builder
	b.WriteString(" ORDER BY ")
	b.WriteString(col)
	b.WriteString(" ")
	b.WriteString(dir)
	if tieBreak != "" {
		b.WriteString(", ")
		b.WriteString(tieBreak)
	}
	return b.String()
}

// where joins conditions with AND.
func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// listWithCount sends the page query and the matching count in one round trip.
func listWithCount[T any](ctx context.Context, db querier, listSQL, countSQL string, args []any, page pagination.PageRequest, scan pgx.RowToFunc[T]) ([]T, int64, error) {
	n := len(args)
	pageArgs := append(append([]any{}, args...), page.Size, page.Offset())
	listSQL = fmt.Sprintf("%s LIMIT $%d OFFSET $%d", listSQL, n+1, n+2)

	batch := &pgx.Batch{}
	batch.Queue(countSQL, args...)
	batch.Queue(listSQL, pageArgs...)

	br := db.SendBatch(ctx, batch)
	defer br.Close()

	var total int64
	if err := br.QueryRow().Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rows: %w", err)
	}

	rows, err := br.Query()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rows: %w", err)
	}
	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan rows: %w", err)
	}
	return items, total, nil
}
