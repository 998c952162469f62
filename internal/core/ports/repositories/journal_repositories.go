package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
)

// JournalSort lists the sort fields accepted for journal listings.
var JournalSort = pagination.SortSpec{
	Allowed:          []string{"transactionDate", "amount"},
	DefaultField:     "transactionDate",
	DefaultDirection: pagination.Desc,
}

// JournalFilter narrows a journal listing. Zero values mean "no filter".
type JournalFilter struct {
	BankAccountID *string
	Direction     *domain.Direction
	From          *time.Time // inclusive
	To            *time.Time // inclusive
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves a journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a filtered page of journal entries and the total number of matches.
	ListEntries(ctx context.Context, filter JournalFilter, page pagination.PageRequest) ([]domain.JournalEntry, int64, error)

	// ListEntriesByObligation retrieves every entry produced by settling an obligation.
	ListEntriesByObligation(ctx context.Context, obligationID string) ([]domain.JournalEntry, error)

	// CountByBankAccount counts entries recorded against a bank account.
	CountByBankAccount(ctx context.Context, bankAccountID string) (int64, error)
}

// JournalWriter defines the append operation used by settlement
type JournalWriter interface {
	// AppendEntry persists a new journal entry. Entries are never updated.
	AppendEntry(ctx context.Context, entry domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
