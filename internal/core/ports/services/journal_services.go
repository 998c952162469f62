package services

import (
	"context"
	"time"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
)

// JournalReaderSvc defines read operations for the transaction journal.
// The journal is only appended to by settlement, so there is no writer interface.
type JournalReaderSvc interface {
	// GetEntryByID retrieves a journal entry by its unique identifier.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of all journal entries.
	ListEntries(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error)

	// ListEntriesByBankAccount retrieves a page of entries for one bank account.
	ListEntriesByBankAccount(ctx context.Context, bankAccountID string, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error)

	// ListEntriesByDirection retrieves a page of entries of one direction.
	ListEntriesByDirection(ctx context.Context, direction domain.Direction, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error)

	// ListEntriesByPeriod retrieves a page of entries whose transaction date falls in [start, end].
	ListEntriesByPeriod(ctx context.Context, start, end time.Time, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error)

	// ListEntriesByObligation retrieves every entry produced by settling an obligation.
	ListEntriesByObligation(ctx context.Context, obligationID string) ([]domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
}
