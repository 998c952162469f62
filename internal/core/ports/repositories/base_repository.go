package repositories

import (
	"context"
)

// TxRepositories exposes the repositories bound to a single storage transaction.
// Every read and write made through it is committed or rolled back together.
type TxRepositories struct {
	Categories   CategoryRepositoryFacade
	BankAccounts BankAccountRepositoryFacade
	Obligations  ObligationRepositoryFacade
	Journal      JournalRepositoryFacade
}

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithinTx runs fn inside a transaction. The transaction is committed when fn returns nil
	// and rolled back when fn returns an error or panics.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
