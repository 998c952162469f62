package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type obligationRepository struct {
	a access
}

var _ portsrepo.ObligationRepositoryFacade = (*obligationRepository)(nil)

// withNames fills the read-side category and bank account names.
func withNames(st *state, o domain.Obligation) domain.Obligation {
	if c, ok := st.categories[o.CategoryID]; ok {
		o.CategoryName = c.Name
	}
	if b, ok := st.bankAccounts[o.BankAccountID]; ok {
		o.BankAccountName = b.Name
		o.BankName = b.Bank
	}
	if o.PaymentDate != nil {
		pd := *o.PaymentDate
		o.PaymentDate = &pd
	}
	return o
}

func (r *obligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	var out *domain.Obligation
	err := r.a.read(func(st *state) error {
		o, ok := st.obligations[obligationID]
		if !ok {
			return apperrors.ErrNotFound
		}
		o = withNames(st, o)
		out = &o
		return nil
	})
	return out, err
}

func (r *obligationRepository) FindObligationByIDForUpdate(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	return r.FindObligationByID(ctx, obligationID)
}

func matchesObligation(o domain.Obligation, f portsrepo.ObligationFilter) bool {
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	if f.Direction != nil && o.Direction != *f.Direction {
		return false
	}
	exp := domain.DateOf(o.ExpirationDate)
	if f.ExpiresFrom != nil && exp.Before(domain.DateOf(*f.ExpiresFrom)) {
		return false
	}
	if f.ExpiresTo != nil && exp.After(domain.DateOf(*f.ExpiresTo)) {
		return false
	}
	if f.ExpiresBefore != nil && !exp.Before(domain.DateOf(*f.ExpiresBefore)) {
		return false
	}
	return true
}

func (r *obligationRepository) ListObligations(ctx context.Context, filter portsrepo.ObligationFilter, page pagination.PageRequest) ([]domain.Obligation, int64, error) {
	var (
		out   []domain.Obligation
		total int64
	)
	err := r.a.read(func(st *state) error {
		matched := make([]domain.Obligation, 0)
		for _, o := range st.obligations {
			if matchesObligation(o, filter) {
				matched = append(matched, withNames(st, o))
			}
		}
		out, total = sortAndPage(matched, page, obligationComparator(page.SortField), func(o domain.Obligation) int64 { return st.seq[o.ObligationID] })
		return nil
	})
	return out, total, err
}

func (r *obligationRepository) SumAmountByDirection(ctx context.Context, direction domain.Direction) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.a.read(func(st *state) error {
		for _, o := range st.obligations {
			if o.Direction == direction {
				total = total.Add(o.Amount)
			}
		}
		return nil
	})
	return domain.RoundMoney(total), err
}

func (r *obligationRepository) CountByCategory(ctx context.Context, categoryID string, status *domain.ObligationStatus) (int64, error) {
	return r.count(func(o domain.Obligation) bool {
		return o.CategoryID == categoryID && (status == nil || o.Status == *status)
	})
}

func (r *obligationRepository) CountByBankAccount(ctx context.Context, bankAccountID string, status *domain.ObligationStatus) (int64, error) {
	return r.count(func(o domain.Obligation) bool {
		return o.BankAccountID == bankAccountID && (status == nil || o.Status == *status)
	})
}

func (r *obligationRepository) count(match func(domain.Obligation) bool) (int64, error) {
	var n int64
	err := r.a.read(func(st *state) error {
		for _, o := range st.obligations {
			if match(o) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *obligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.obligations[obligation.ObligationID]; exists {
			return fmt.Errorf("%w: obligation with ID %s already exists", apperrors.ErrDuplicate, obligation.ObligationID)
		}
		if err := obligationReferencesExist(st, obligation); err != nil {
			return err
		}
		st.obligations[obligation.ObligationID] = stripNames(obligation)
		st.track(obligation.ObligationID)
		return nil
	})
}

func (r *obligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.obligations[obligation.ObligationID]; !exists {
			return apperrors.ErrNotFound
		}
		if err := obligationReferencesExist(st, obligation); err != nil {
			return err
		}
		st.obligations[obligation.ObligationID] = stripNames(obligation)
		return nil
	})
}

func (r *obligationRepository) DeleteObligation(ctx context.Context, obligationID string) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.obligations[obligationID]; !exists {
			return apperrors.ErrNotFound
		}
		for id, e := range st.entries {
			if e.ObligationID != nil && *e.ObligationID == obligationID {
				e.ObligationID = nil
				st.entries[id] = e
			}
		}
		delete(st.obligations, obligationID)
		delete(st.seq, obligationID)
		return nil
	})
}

func obligationReferencesExist(st *state, o domain.Obligation) error {
	if _, ok := st.categories[o.CategoryID]; !ok {
		return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, o.CategoryID)
	}
	if _, ok := st.bankAccounts[o.BankAccountID]; !ok {
		return fmt.Errorf("%w: bank account %s", apperrors.ErrNotFound, o.BankAccountID)
	}
	return nil
}

func stripNames(o domain.Obligation) domain.Obligation {
	o.CategoryName, o.BankAccountName, o.BankName = "", "", ""
	if o.PaymentDate != nil {
		pd := *o.PaymentDate
		o.PaymentDate = &pd
	}
	return o
}

func obligationComparator(field string) func(a, b domain.Obligation) int {
	switch field {
	case "amount":
		return func(a, b domain.Obligation) int { return a.Amount.Cmp(b.Amount) }
	case "description":
		return func(a, b domain.Obligation) int { return compareFold(a.Description, b.Description) }
	case "status":
		return func(a, b domain.Obligation) int { return compareFold(string(a.Status), string(b.Status)) }
	case "createdAt":
		return func(a, b domain.Obligation) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return func(a, b domain.Obligation) int { return a.ExpirationDate.Compare(b.ExpirationDate) }
	}
}
