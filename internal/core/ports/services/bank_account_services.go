package services

import (
	"context"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// BankAccountReaderSvc defines read operations for bank account data
type BankAccountReaderSvc interface {
	// GetBankAccountByID retrieves a bank account by its unique identifier.
	GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves a page of bank accounts.
	ListBankAccounts(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.BankAccount], error)

	// ListActiveBankAccounts retrieves every active bank account.
	ListActiveBankAccounts(ctx context.Context) ([]domain.BankAccount, error)

	// SearchBankAccountsByBank retrieves accounts whose bank label contains fragment, ignoring case.
	SearchBankAccountsByBank(ctx context.Context, fragment string) ([]domain.BankAccount, error)

	// GetTotalActiveBalance sums the balances of active accounts.
	GetTotalActiveBalance(ctx context.Context) (decimal.Decimal, error)
}

// BankAccountWriterSvc defines write operations for bank account data
type BankAccountWriterSvc interface {
	// CreateBankAccount opens an active bank account with a non-negative balance.
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error)

	// UpdateBankAccount overwrites name, bank label and balance.
	UpdateBankAccount(ctx context.Context, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*domain.BankAccount, error)

	// SetBalance sets the balance directly. Negative balances are rejected.
	SetBalance(ctx context.Context, bankAccountID string, balance decimal.Decimal, userID string) (*domain.BankAccount, error)

	// ToggleBankAccountActive flips the active flag. Deactivation is refused while pending obligations reference the account.
	ToggleBankAccountActive(ctx context.Context, bankAccountID string, userID string) (*domain.BankAccount, error)

	// DeleteBankAccount removes an account no obligation or journal entry references.
	DeleteBankAccount(ctx context.Context, bankAccountID string) error
}

// BankAccountSvcFacade combines all bank account service interfaces
type BankAccountSvcFacade interface {
	BankAccountReaderSvc
	BankAccountWriterSvc
}
