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

const bankAccountColumns = `b.bank_account_id, b.name, b.bank, b.current_balance, b.is_active, b.created_at, b.created_by, b.last_updated_at, b.last_updated_by`

var bankAccountSortColumns = map[string]string{
	"name":           "lower(b.name)",
	"bank":           "lower(b.bank)",
	"currentBalance": "b.current_balance",
	"createdAt":      "b.created_at",
}

type PgxBankAccountRepository struct {
	db querier
}

// newPgxBankAccountRepository creates a new repository for bank account data.
func newPgxBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepositoryFacade {
	return &PgxBankAccountRepository{db: pool}
}

var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

func scanBankAccount(row pgx.CollectableRow) (domain.BankAccount, error) {
	m, err := pgx.RowToStructByName[models.BankAccount](row)
	if err != nil {
		return domain.BankAccount{}, err
	}
	return mapping.ToDomainBankAccount(m), nil
}

func (r *PgxBankAccountRepository) findOne(ctx context.Context, query string, bankAccountID string) (*domain.BankAccount, error) {
	rows, err := r.db.Query(ctx, query, bankAccountID)
	if err != nil {
		return nil, mapReadError(err, "bank account "+bankAccountID)
	}
	b, err := pgx.CollectExactlyOneRow(rows, scanBankAccount)
	if err != nil {
		return nil, mapReadError(err, "bank account "+bankAccountID)
	}
	return &b, nil
}

func (r *PgxBankAccountRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.BankAccount, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts: %w", err)
	}
	out, err := pgx.CollectRows(rows, scanBankAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to scan bank accounts: %w", err)
	}
	return out, nil
}

// FindBankAccountByID retrieves a bank account by its ID.
func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	return r.findOne(ctx, `SELECT `+bankAccountColumns+` FROM bank_accounts b WHERE b.bank_account_id = $1`, bankAccountID)
}

// FindBankAccountByIDForUpdate retrieves a bank account and locks its row. Must run within a transaction.
func (r *PgxBankAccountRepository) FindBankAccountByIDForUpdate(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	return r.findOne(ctx, `SELECT `+bankAccountColumns+` FROM bank_accounts b WHERE b.bank_account_id = $1 FOR UPDATE`, bankAccountID)
}

// ListBankAccounts retrieves a page of bank accounts.
func (r *PgxBankAccountRepository) ListBankAccounts(ctx context.Context, page pagination.PageRequest) ([]domain.BankAccount, int64, error) {
	listSQL := `SELECT ` + bankAccountColumns + ` FROM bank_accounts b` + orderBy(bankAccountSortColumns, "name", page, "b.created_at, b.bank_account_id")
	return listWithCount(ctx, r.db, listSQL, `SELECT count(*) FROM bank_accounts b`, nil, page, scanBankAccount)
}

// ListActiveBankAccounts retrieves every active bank account.
func (r *PgxBankAccountRepository) ListActiveBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	return r.findMany(ctx, `SELECT `+bankAccountColumns+` FROM bank_accounts b WHERE b.is_active ORDER BY lower(b.name)`)
}

// SearchBankAccountsByBank retrieves accounts whose bank label contains fragment, ignoring case.
func (r *PgxBankAccountRepository) SearchBankAccountsByBank(ctx context.Context, fragment string) ([]domain.BankAccount, error) {
	return r.findMany(ctx, `SELECT `+bankAccountColumns+` FROM bank_accounts b WHERE b.bank ILIKE '%' || trim($1) || '%' ORDER BY lower(b.name)`, fragment)
}

// SumActiveBalances sums current balances across active accounts.
func (r *PgxBankAccountRepository) SumActiveBalances(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(current_balance), 0) FROM bank_accounts WHERE is_active`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum active balances: %w", err)
	}
	return domain.RoundMoney(total), nil
}

// SaveBankAccount inserts a new bank account.
func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	query := `
		INSERT INTO bank_accounts (bank_account_id, name, bank, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		m.BankAccountID, m.Name, m.Bank, m.CurrentBalance, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("bank account %q", m.Name))
	}
	return nil
}

// UpdateBankAccount overwrites the mutable columns of a bank account, balance included.
func (r *PgxBankAccountRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	query := `
		UPDATE bank_accounts
		SET name = $2, bank = $3, current_balance = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE bank_account_id = $1`
	ct, err := r.db.Exec(ctx, query, m.BankAccountID, m.Name, m.Bank, m.CurrentBalance, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("bank account %q", m.Name))
	}
	if ct.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "bank account "+m.BankAccountID)
	}
	return nil
}

// DeleteBankAccount removes a bank account.
func (r *PgxBankAccountRepository) DeleteBankAccount(ctx context.Context, bankAccountID string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM bank_accounts WHERE bank_account_id = $1`, bankAccountID)
	if err != nil {
		return mapWriteError(err, "bank account "+bankAccountID)
	}
	if ct.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "bank account "+bankAccountID)
	}
	return nil
}
