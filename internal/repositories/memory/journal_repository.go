package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
)

type journalRepository struct {
	a access
}

var _ portsrepo.JournalRepositoryFacade = (*journalRepository)(nil)

func entryWithNames(st *state, e domain.JournalEntry) domain.JournalEntry {
	if b, ok := st.bankAccounts[e.BankAccountID]; ok {
		e.BankAccountName = b.Name
	}
	if e.ObligationID != nil {
		id := *e.ObligationID
		e.ObligationID = &id
		if o, ok := st.obligations[id]; ok {
			e.ObligationDescription = o.Description
		}
	}
	return e
}

func (r *journalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	var out *domain.JournalEntry
	err := r.a.read(func(st *state) error {
		e, ok := st.entries[entryID]
		if !ok {
			return apperrors.ErrNotFound
		}
		e = entryWithNames(st, e)
		out = &e
		return nil
	})
	return out, err
}

func matchesEntry(e domain.JournalEntry, f portsrepo.JournalFilter) bool {
	if f.BankAccountID != nil && e.BankAccountID != *f.BankAccountID {
		return false
	}
	if f.Direction != nil && e.Direction != *f.Direction {
		return false
	}
	if f.From != nil && e.TransactionDate.Before(*f.From) {
		return false
	}
	if f.To != nil && e.TransactionDate.After(*f.To) {
		return false
	}
	return true
}

func (r *journalRepository) ListEntries(ctx context.Context, filter portsrepo.JournalFilter, page pagination.PageRequest) ([]domain.JournalEntry, int64, error) {
	var (
		out   []domain.JournalEntry
		total int64
	)
	err := r.a.read(func(st *state) error {
		matched := make([]domain.JournalEntry, 0)
		for _, e := range st.entries {
			if matchesEntry(e, filter) {
				matched = append(matched, entryWithNames(st, e))
			}
		}
		out, total = sortAndPage(matched, page, journalComparator(page.SortField), func(e domain.JournalEntry) int64 { return st.seq[e.EntryID] })
		return nil
	})
	return out, total, err
}

func (r *journalRepository) ListEntriesByObligation(ctx context.Context, obligationID string) ([]domain.JournalEntry, error) {
	var out []domain.JournalEntry
	err := r.a.read(func(st *state) error {
		out = make([]domain.JournalEntry, 0)
		for _, e := range st.entries {
			if e.ObligationID != nil && *e.ObligationID == obligationID {
				out = append(out, entryWithNames(st, e))
			}
		}
		slices.SortFunc(out, func(a, b domain.JournalEntry) int { return a.TransactionDate.Compare(b.TransactionDate) })
		return nil
	})
	return out, err
}

func (r *journalRepository) CountByBankAccount(ctx context.Context, bankAccountID string) (int64, error) {
	var n int64
	err := r.a.read(func(st *state) error {
		for _, e := range st.entries {
			if e.BankAccountID == bankAccountID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *journalRepository) AppendEntry(ctx context.Context, entry domain.JournalEntry) error {
	return r.a.write(func(st *state) error {
		if _, exists := st.entries[entry.EntryID]; exists {
			return fmt.Errorf("%w: journal entry with ID %s already exists", apperrors.ErrDuplicate, entry.EntryID)
		}
		if _, ok := st.bankAccounts[entry.BankAccountID]; !ok {
			return fmt.Errorf("%w: bank account %s", apperrors.ErrNotFound, entry.BankAccountID)
		}
		if entry.ObligationID != nil {
			if _, ok := st.obligations[*entry.ObligationID]; !ok {
				return fmt.Errorf("%w: obligation %s", apperrors.ErrNotFound, *entry.ObligationID)
			}
			id := *entry.ObligationID
			entry.ObligationID = &id
		}
		entry.BankAccountName, entry.ObligationDescription = "", ""
		st.entries[entry.EntryID] = entry
		st.track(entry.EntryID)
		return nil
	})
}

func journalComparator(field string) func(a, b domain.JournalEntry) int {
	switch field {
	case "amount":
		return func(a, b domain.JournalEntry) int { return a.Amount.Cmp(b.Amount) }
	default:
		return func(a, b domain.JournalEntry) int { return a.TransactionDate.Compare(b.TransactionDate) }
	}
}
