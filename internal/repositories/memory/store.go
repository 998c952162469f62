package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
)

// state is the full content of the store. Transactions work on a deep copy of it and
// swap the copy in on commit, so a failed transaction leaves no trace.
type state struct {
	categories   map[string]domain.Category
	bankAccounts map[string]domain.BankAccount
	obligations  map[string]domain.Obligation
	entries      map[string]domain.JournalEntry
	seq          map[string]int64 // insertion order, used as the final sort key
	nextSeq      int64
}

func newState() *state {
	return &state{
		categories:   make(map[string]domain.Category),
		bankAccounts: make(map[string]domain.BankAccount),
		obligations:  make(map[string]domain.Obligation),
		entries:      make(map[string]domain.JournalEntry),
		seq:          make(map[string]int64),
	}
}

func (st *state) clone() *state {
	c := &state{
		categories:   make(map[string]domain.Category, len(st.categories)),
		bankAccounts: make(map[string]domain.BankAccount, len(st.bankAccounts)),
		obligations:  make(map[string]domain.Obligation, len(st.obligations)),
		entries:      make(map[string]domain.JournalEntry, len(st.entries)),
		seq:          make(map[string]int64, len(st.seq)),
		nextSeq:      st.nextSeq,
	}
	for k, v := range st.categories {
		c.categories[k] = v
	}
	for k, v := range st.bankAccounts {
		c.bankAccounts[k] = v
	}
	for k, v := range st.obligations {
		if v.PaymentDate != nil {
			pd := *v.PaymentDate
			v.PaymentDate = &pd
		}
		c.obligations[k] = v
	}
	for k, v := range st.entries {
		if v.ObligationID != nil {
			id := *v.ObligationID
			v.ObligationID = &id
		}
		c.entries[k] = v
	}
	for k, v := range st.seq {
		c.seq[k] = v
	}
	return c
}

func (st *state) track(id string) {
	st.nextSeq++
	st.seq[id] = st.nextSeq
}

// access abstracts how a repository reaches the state: directly through the store's
// locks, or through the private copy owned by a running transaction.
type access interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

// Store is an in-memory, mutex guarded implementation of every repository port.
// Transactions are serialised; reads outside a transaction run concurrently.
type Store struct {
	txMu   sync.Mutex   // held for the whole of a transaction and for single writes
	dataMu sync.RWMutex // guards the state pointer
	st     *state
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{st: newState()}
}

type storeAccess struct {
	s *Store
}

func (a storeAccess) read(fn func(st *state) error) error {
	a.s.dataMu.RLock()
	defer a.s.dataMu.RUnlock()
	return fn(a.s.st)
}

func (a storeAccess) write(fn func(st *state) error) error {
	a.s.txMu.Lock()
	defer a.s.txMu.Unlock()

	working := a.s.current().clone()
	if err := fn(working); err != nil {
		return err
	}
	a.s.swap(working)
	return nil
}

type txAccess struct {
	st *state
}

func (a txAccess) read(fn func(st *state) error) error  { return fn(a.st) }
func (a txAccess) write(fn func(st *state) error) error { return fn(a.st) }

func (s *Store) current() *state {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.st
}

func (s *Store) swap(st *state) {
	s.dataMu.Lock()
	s.st = st
	s.dataMu.Unlock()
}

// WithinTx runs fn against a private copy of the store and publishes the copy only when fn
// succeeds. Repositories obtained outside fn must not be written to while it runs.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	working := s.current().clone()
	if err := fn(ctx, reposFor(txAccess{st: working})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.swap(working)
	return nil
}

var _ portsrepo.TransactionManager = (*Store)(nil)

func reposFor(a access) portsrepo.TxRepositories {
	return portsrepo.TxRepositories{
		Categories:   &categoryRepository{a: a},
		BankAccounts: &bankAccountRepository{a: a},
		Obligations:  &obligationRepository{a: a},
		Journal:      &journalRepository{a: a},
	}
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	repos := reposFor(storeAccess{s: s})
	return portsrepo.RepositoryProvider{
		CategoryRepo:    repos.Categories,
		BankAccountRepo: repos.BankAccounts,
		ObligationRepo:  repos.Obligations,
		JournalRepo:     repos.Journal,
		TxManager:       s,
	}
}

// sortAndPage orders items by the requested field, breaking ties by insertion order,
// and cuts out the requested page. It returns the page and the total item count.
func sortAndPage[T any](items []T, page pagination.PageRequest, compare func(a, b T) int, seqOf func(T) int64) ([]T, int64) {
	slices.SortStableFunc(items, func(a, b T) int {
		c := compare(a, b)
		if page.Direction == pagination.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(seqOf(a), seqOf(b))
	})

	total := int64(len(items))
	start := page.Offset()
	if start < 0 || start >= len(items) {
		return []T{}, total
	}
	end := start + page.Size
	if end < start || end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}

func containsFold(s, fragment string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(fragment)))
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
