package repositories

import (
	"context"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// BankAccountSort lists the sort fields accepted for bank account listings.
var BankAccountSort = pagination.SortSpec{
	Allowed:          []string{"name", "bank", "currentBalance", "createdAt"},
	DefaultField:     "name",
	DefaultDirection: pagination.Asc,
}

// BankAccountReader defines read operations for bank account data
type BankAccountReader interface {
	// FindBankAccountByID retrieves a bank account by its unique identifier.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves a page of bank accounts and the total number of accounts.
	ListBankAccounts(ctx context.Context, page pagination.PageRequest) ([]domain.BankAccount, int64, error)

	// ListActiveBankAccounts retrieves every active bank account ordered by name.
	ListActiveBankAccounts(ctx context.Context) ([]domain.BankAccount, error)

	// SearchBankAccountsByBank retrieves bank accounts whose bank label contains fragment, ignoring case.
	SearchBankAccountsByBank(ctx context.Context, fragment string) ([]domain.BankAccount, error)

	// SumActiveBalances returns the sum of current balances across active accounts, zero if none.
	SumActiveBalances(ctx context.Context) (decimal.Decimal, error)
}

// BankAccountWriter defines write operations for bank account data
type BankAccountWriter interface {
	// SaveBankAccount persists a new bank account. A name clash yields ErrDuplicate.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// UpdateBankAccount overwrites every mutable column of an existing bank account.
	UpdateBankAccount(ctx context.Context, account domain.BankAccount) error

	// DeleteBankAccount removes a bank account.
	DeleteBankAccount(ctx context.Context, bankAccountID string) error
}

// BankAccountTransactionSupport defines operations used by settlement and lifecycle guards
type BankAccountTransactionSupport interface {
	// FindBankAccountByIDForUpdate selects a bank account and locks it until the transaction ends.
	FindBankAccountByIDForUpdate(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
}

// BankAccountRepositoryFacade combines all bank account repository interfaces
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	BankAccountTransactionSupport
}
