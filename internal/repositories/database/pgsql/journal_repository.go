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

const journalSelect = `
	SELECT j.entry_id, j.bank_account_id, j.obligation_id, j.direction, j.amount, j.description,
	       j.previous_balance, j.current_balance, j.transaction_date, j.created_by,
	       b.name AS bank_account_name, o.description AS obligation_description
	FROM journal_entries j
	JOIN bank_accounts b ON b.bank_account_id = j.bank_account_id
	LEFT JOIN obligations o ON o.obligation_id = j.obligation_id`

var journalSortColumns = map[string]string{
	"transactionDate": "j.transaction_date",
	"amount":          "j.amount",
}

type PgxJournalRepository struct {
	db querier
}

// newPgxJournalRepository creates a new repository for journal entries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{db: pool}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournalEntry(row pgx.CollectableRow) (domain.JournalEntry, error) {
	m, err := pgx.RowToStructByName[models.JournalEntry](row)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	return mapping.ToDomainJournalEntry(m), nil
}

// FindEntryByID retrieves a journal entry by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	rows, err := r.db.Query(ctx, journalSelect+` WHERE j.entry_id = $1`, entryID)
	if err != nil {
		return nil, mapReadError(err, "journal entry "+entryID)
	}
	e, err := pgx.CollectExactlyOneRow(rows, scanJournalEntry)
	if err != nil {
		return nil, mapReadError(err, "journal entry "+entryID)
	}
	return &e, nil
}

func journalConditions(f portsrepo.JournalFilter) ([]string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.BankAccountID != nil {
		add("j.bank_account_id = $%d", *f.BankAccountID)
	}
	if f.Direction != nil {
		add("j.direction = $%d", string(*f.Direction))
	}
	if f.From != nil {
		add("j.transaction_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("j.transaction_date <= $%d", *f.To)
	}
	return conds, args
}

// ListEntries retrieves a filtered page of journal entries.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.JournalFilter, page pagination.PageRequest) ([]domain.JournalEntry, int64, error) {
	conds, args := journalConditions(filter)
	listSQL := journalSelect + where(conds) + orderBy(journalSortColumns, "transactionDate", page, "j.entry_id")
	countSQL := `SELECT count(*) FROM journal_entries j` + where(conds)
	return listWithCount(ctx, r.db, listSQL, countSQL, args, page, scanJournalEntry)
}

// ListEntriesByObligation retrieves every entry recorded for an obligation.
func (r *PgxJournalRepository) ListEntriesByObligation(ctx context.Context, obligationID string) ([]domain.JournalEntry, error) {
	rows, err := r.db.Query(ctx, journalSelect+` WHERE j.obligation_id = $1 ORDER BY j.transaction_date`, obligationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries for obligation %s: %w", obligationID, err)
	}
	entries, err := pgx.CollectRows(rows, scanJournalEntry)
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal entries: %w", err)
	}
	return entries, nil
}

// CountByBankAccount counts entries recorded against a bank account.
func (r *PgxJournalRepository) CountByBankAccount(ctx context.Context, bankAccountID string) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM journal_entries WHERE bank_account_id = $1`, bankAccountID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count journal entries for bank account %s: %w", bankAccountID, err)
	}
	return n, nil
}

// AppendEntry inserts a journal entry.
func (r *PgxJournalRepository) AppendEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (entry_id, bank_account_id, obligation_id, direction, amount, description,
		                             previous_balance, current_balance, transaction_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		m.EntryID, m.BankAccountID, m.ObligationID, m.Direction, m.Amount, m.Description,
		m.PreviousBalance, m.CurrentBalance, m.TransactionDate, m.CreatedBy,
	)
	if err != nil {
		return mapWriteError(err, "journal entry "+m.EntryID)
	}
	return nil
}
