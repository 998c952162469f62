package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payables_ledger/internal/core/ports/services"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type bankAccountService struct {
	BaseService
	bankAccountRepo portsrepo.BankAccountReader
	txManager       portsrepo.TransactionManager
}

// NewBankAccountService creates the bank account registry.
func NewBankAccountService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.BankAccountSvcFacade {
	return &bankAccountService{
		BaseService:     newBaseService(options...),
		bankAccountRepo: repos.BankAccountRepo,
		txManager:       repos.TxManager,
	}
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

func validateBalance(balance decimal.Decimal) (decimal.Decimal, error) {
	if balance.IsNegative() {
		return decimal.Zero, apperrors.Validation("balance must not be negative, got %s", balance.StringFixed(domain.MoneyScale))
	}
	balance = domain.RoundMoney(balance)
	if domain.ExceedsMoneyRange(balance) {
		return decimal.Zero, apperrors.Validation("balance must not exceed %s", domain.MaxMoney.StringFixed(domain.MoneyScale))
	}
	return balance, nil
}

func normaliseBankAccountRequest(name, bank string, balance decimal.Decimal) (string, string, decimal.Decimal, error) {
	name = strings.TrimSpace(name)
	bank = strings.TrimSpace(bank)
	if name == "" {
		return "", "", decimal.Zero, apperrors.Validation("bank account name is required")
	}
	if bank == "" {
		return "", "", decimal.Zero, apperrors.Validation("bank is required")
	}
	balance, err := validateBalance(balance)
	if err != nil {
		return "", "", decimal.Zero, err
	}
	return name, bank, balance, nil
}

func (s *bankAccountService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	name, bank, balance, err := normaliseBankAccountRequest(req.Name, req.Bank, req.CurrentBalance)
	if err != nil {
		return nil, err
	}

	account := domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		Name:           name,
		Bank:           bank,
		CurrentBalance: balance,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		return repos.BankAccounts.SaveBankAccount(ctx, account)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create bank account", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Bank account created", slog.String("bank_account_id", account.BankAccountID))
	return &account, nil
}

func (s *bankAccountService) UpdateBankAccount(ctx context.Context, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	name, bank, balance, err := normaliseBankAccountRequest(req.Name, req.Bank, req.CurrentBalance)
	if err != nil {
		return nil, err
	}

	updated, err := s.mutate(ctx, bankAccountID, func(account *domain.BankAccount) error {
		account.Name = name
		account.Bank = bank
		account.CurrentBalance = balance
		account.Touch(userID, s.Now())
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update bank account", slog.String("bank_account_id", bankAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Bank account updated", slog.String("bank_account_id", bankAccountID))
	return updated, nil
}

func (s *bankAccountService) SetBalance(ctx context.Context, bankAccountID string, balance decimal.Decimal, userID string) (*domain.BankAccount, error) {
	balance, err := validateBalance(balance)
	if err != nil {
		return nil, err
	}

	updated, err := s.mutate(ctx, bankAccountID, func(account *domain.BankAccount) error {
		account.CurrentBalance = balance
		account.Touch(userID, s.Now())
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to set bank account balance", slog.String("bank_account_id", bankAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Bank account balance set",
		slog.String("bank_account_id", bankAccountID),
		slog.String("balance", balance.StringFixed(domain.MoneyScale)))
	return updated, nil
}

func (s *bankAccountService) ToggleBankAccountActive(ctx context.Context, bankAccountID string, userID string) (*domain.BankAccount, error) {
	updated, err := s.mutateTx(ctx, bankAccountID, func(ctx context.Context, repos portsrepo.TxRepositories, account *domain.BankAccount) error {
		if account.IsActive {
			pending := domain.Pending
			n, err := repos.Obligations.CountByBankAccount(ctx, bankAccountID, &pending)
			if err != nil {
				return err
			}
			if n > 0 {
				return apperrors.BusinessRule("bank account %q has %d pending obligation(s) and cannot be deactivated", account.Name, n)
			}
		}
		account.IsActive = !account.IsActive
		account.Touch(userID, s.Now())
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to toggle bank account", slog.String("bank_account_id", bankAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Bank account active flag toggled", slog.String("bank_account_id", bankAccountID), slog.Bool("is_active", updated.IsActive))
	return updated, nil
}

func (s *bankAccountService) DeleteBankAccount(ctx context.Context, bankAccountID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		account, err := repos.BankAccounts.FindBankAccountByIDForUpdate(ctx, bankAccountID)
		if err != nil {
			return err
		}
		obligations, err := repos.Obligations.CountByBankAccount(ctx, bankAccountID, nil)
		if err != nil {
			return err
		}
		entries, err := repos.Journal.CountByBankAccount(ctx, bankAccountID)
		if err != nil {
			return err
		}
		if obligations > 0 || entries > 0 {
			return apperrors.BusinessRule("bank account %q is referenced by %d obligation(s) and %d journal entr(ies) and cannot be deleted",
				account.Name, obligations, entries)
		}
		return repos.BankAccounts.DeleteBankAccount(ctx, bankAccountID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete bank account", slog.String("bank_account_id", bankAccountID))
		return err
	}

	s.LogInfo(ctx, "Bank account deleted", slog.String("bank_account_id", bankAccountID))
	return nil
}

// mutate locks the account, applies change and writes it back in one transaction.
func (s *bankAccountService) mutate(ctx context.Context, bankAccountID string, change func(*domain.BankAccount) error) (*domain.BankAccount, error) {
	return s.mutateTx(ctx, bankAccountID, func(_ context.Context, _ portsrepo.TxRepositories, account *domain.BankAccount) error {
		return change(account)
	})
}

func (s *bankAccountService) mutateTx(ctx context.Context, bankAccountID string, change func(context.Context, portsrepo.TxRepositories, *domain.BankAccount) error) (*domain.BankAccount, error) {
	var updated *domain.BankAccount
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		account, err := repos.BankAccounts.FindBankAccountByIDForUpdate(ctx, bankAccountID)
		if err != nil {
			return err
		}
		if err := change(ctx, repos, account); err != nil {
			return err
		}
		if err := repos.BankAccounts.UpdateBankAccount(ctx, *account); err != nil {
			return err
		}
		updated = account
		return nil
	})
	return updated, err
}

func (s *bankAccountService) GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.bankAccountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get bank account", slog.String("bank_account_id", bankAccountID))
		return nil, err
	}
	return account, nil
}

func (s *bankAccountService) ListBankAccounts(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.BankAccount], error) {
	page = page.Normalize(portsrepo.BankAccountSort)
	items, total, err := s.bankAccountRepo.ListBankAccounts(ctx, page)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts")
		return pagination.Page[domain.BankAccount]{}, err
	}
	return pagination.NewPage(items, page, total), nil
}

func (s *bankAccountService) ListActiveBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	accounts, err := s.bankAccountRepo.ListActiveBankAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active bank accounts")
		return nil, err
	}
	return accounts, nil
}

func (s *bankAccountService) SearchBankAccountsByBank(ctx context.Context, fragment string) ([]domain.BankAccount, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, apperrors.Validation("search term is required")
	}
	accounts, err := s.bankAccountRepo.SearchBankAccountsByBank(ctx, fragment)
	if err != nil {
		s.LogError(ctx, err, "Failed to search bank accounts", slog.String("fragment", fragment))
		return nil, err
	}
	return accounts, nil
}

func (s *bankAccountService) GetTotalActiveBalance(ctx context.Context) (decimal.Decimal, error) {
	total, err := s.bankAccountRepo.SumActiveBalances(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to total active balances")
		return decimal.Zero, err
	}
	return total, nil
}
