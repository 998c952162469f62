package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type bankAccountRepository struct {
	a access
}

var _ portsrepo.BankAccountRepositoryFacade = (*bankAccountRepository)(nil)

func (r *bankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	var out *domain.BankAccount
	err := r.a.read(func(st *state) error {
		b, ok := st.bankAccounts[bankAccountID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &b
		return nil
	})
	return out, err
}

func (r *bankAccountRepository) FindBankAccountByIDForUpdate(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	return r.FindBankAccountByID(ctx, bankAccountID)
}

func (r *bankAccountRepository) ListBankAccounts(ctx context.Context, page pagination.PageRequest) ([]domain.BankAccount, int64, error) {
	var (
		out   []domain.BankAccount
		total int64
	)
	err := r.a.read(func(st *state) error {
		all := make([]domain.BankAccount, 0, len(st.bankAccounts))
		for _, b := range st.bankAccounts {
			all = append(all, b)
		}
		out, total = sortAndPage(all, page, bankAccountComparator(page.SortField), func(b domain.BankAccount) int64 { return st.seq[b.BankAccountID] })
		return nil
	})
	return out, total, err
}

func (r *bankAccountRepository) ListActiveBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	return r.filter(func(b domain.BankAccount) bool { return b.IsActive })
}

func (r *bankAccountRepository) SearchBankAccountsByBank(ctx context.Context, fragment string) ([]domain.BankAccount, error) {
	return r.filter(func(b domain.BankAccount) bool { return containsFold(b.Bank, fragment) })
}

func (r *bankAccountRepository) filter(keep func(domain.BankAccount) bool) ([]domain.BankAccount, error) {
	var out []domain.BankAccount
	err := r.a.read(func(st *state) error {
		out = make([]domain.BankAccount, 0)
		for _, b := range st.bankAccounts {
			if keep(b) {
				out = append(out, b)
			}
		}
		slices.SortFunc(out, func(a, b domain.BankAccount) int { return compareFold(a.Name, b.Name) })
		return nil
	})
	return out, err
}

func (r *bankAccountRepository) SumActiveBalances(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.a.read(func(st *state) error {
		for _, b := range st.bankAccounts {
			if b.IsActive {
				total = total.Add(b.CurrentBalance)
			}
		}
		return nil
	})
	return domain.RoundMoney(total), err
}

func (r *bankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.bankAccounts[account.BankAccountID]; exists {
			return fmt.Errorf("%w: bank account with ID %s already exists", apperrors.ErrDuplicate, account.BankAccountID)
		}
		if err := uniqueBankAccountName(st, account); err != nil {
			return err
		}
		st.bankAccounts[account.BankAccountID] = account
		st.track(account.BankAccountID)
		return nil
	})
}

func (r *bankAccountRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.bankAccounts[account.BankAccountID]; !exists {
			return apperrors.ErrNotFound
		}
		if err := uniqueBankAccountName(st, account); err != nil {
			return err
		}
		st.bankAccounts[account.BankAccountID] = account
		return nil
	})
}

func (r *bankAccountRepository) DeleteBankAccount(ctx context.Context, bankAccountID string) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.bankAccounts[bankAccountID]; !exists {
			return apperrors.ErrNotFound
		}
		for _, o := range st.obligations {
			if o.BankAccountID == bankAccountID {
				return apperrors.BusinessRule("bank account %s is referenced by obligations", bankAccountID)
			}
		}
		for _, e := range st.entries {
			if e.BankAccountID == bankAccountID {
				return apperrors.BusinessRule("bank account %s is referenced by journal entries", bankAccountID)
			}
		}
		delete(st.bankAccounts, bankAccountID)
		delete(st.seq, bankAccountID)
		return nil
	})
}

func uniqueBankAccountName(st *state, account domain.BankAccount) error {
	for id, existing := range st.bankAccounts {
		if id != account.BankAccountID && existing.Name == account.Name {
			return fmt.Errorf("%w: bank account named %q already exists", apperrors.ErrDuplicate, account.Name)
		}
	}
	return nil
}

func bankAccountComparator(field string) func(a, b domain.BankAccount) int {
	switch field {
	case "bank":
		return func(a, b domain.BankAccount) int { return compareFold(a.Bank, b.Bank) }
	case "currentBalance":
		return func(a, b domain.BankAccount) int { return a.CurrentBalance.Cmp(b.CurrentBalance) }
	case "createdAt":
		return func(a, b domain.BankAccount) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return func(a, b domain.BankAccount) int { return compareFold(a.Name, b.Name) }
	}
}
