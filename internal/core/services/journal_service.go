package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payables_ledger/internal/core/ports/services"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
)

// journalService answers queries over the append-only transaction journal.
type journalService struct {
	BaseService
	journalRepo     portsrepo.JournalReader
	bankAccountRepo portsrepo.BankAccountReader
}

// NewJournalService creates a new JournalService.
func NewJournalService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService:     newBaseService(options...),
		journalRepo:     repos.JournalRepo,
		bankAccountRepo: repos.BankAccountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

func (s *journalService) list(ctx context.Context, filter portsrepo.JournalFilter, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error) {
	page = page.Normalize(portsrepo.JournalSort)
	items, total, err := s.journalRepo.ListEntries(ctx, filter, page)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return pagination.Page[domain.JournalEntry]{}, err
	}
	return pagination.NewPage(items, page, total), nil
}

func (s *journalService) ListEntries(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error) {
	return s.list(ctx, portsrepo.JournalFilter{}, page)
}

// ListEntriesByBankAccount lists entries newest first unless the caller asked for another order.
func (s *journalService) ListEntriesByBankAccount(ctx context.Context, bankAccountID string, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error) {
	if _, err := s.bankAccountRepo.FindBankAccountByID(ctx, bankAccountID); err != nil {
		s.LogFailure(ctx, err, "Failed to list journal entries by bank account", slog.String("bank_account_id", bankAccountID))
		return pagination.Page[domain.JournalEntry]{}, err
	}
	return s.list(ctx, portsrepo.JournalFilter{BankAccountID: &bankAccountID}, page)
}

func (s *journalService) ListEntriesByDirection(ctx context.Context, direction domain.Direction, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error) {
	if !direction.Valid() {
		return pagination.Page[domain.JournalEntry]{}, apperrors.Validation("unknown direction %q", direction)
	}
	return s.list(ctx, portsrepo.JournalFilter{Direction: &direction}, page)
}

func (s *journalService) ListEntriesByPeriod(ctx context.Context, start, end time.Time, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error) {
	if start.After(end) {
		return pagination.Page[domain.JournalEntry]{}, apperrors.Validation("start %s is after end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return s.list(ctx, portsrepo.JournalFilter{From: &start, To: &end}, page)
}

func (s *journalService) ListEntriesByObligation(ctx context.Context, obligationID string) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListEntriesByObligation(ctx, obligationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries by obligation", slog.String("obligation_id", obligationID))
		return nil, err
	}
	return entries, nil
}
