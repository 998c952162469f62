package pgsql

import (
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CategoryRepo:    newPgxCategoryRepository(dbPool),
		BankAccountRepo: newPgxBankAccountRepository(dbPool),
		ObligationRepo:  newPgxObligationRepository(dbPool),
		JournalRepo:     newPgxJournalRepository(dbPool),
		TxManager:       &BaseRepository{Pool: dbPool},
	}
}
