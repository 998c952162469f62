package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/core/ports/events"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payables_ledger/internal/core/ports/services"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type settlementService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	publisher    events.Publisher
	balanceFloor *decimal.Decimal
}

// SettlementOption configures the settlement engine.
type SettlementOption func(*settlementService)

// WithBalanceFloor rejects settlements that would leave the bank balance below floor.
func WithBalanceFloor(floor decimal.Decimal) SettlementOption {
	return func(s *settlementService) {
		f := domain.RoundMoney(floor)
		s.balanceFloor = &f
	}
}

// WithEventPublisher publishes an ObligationSettled event after each committed settlement.
func WithEventPublisher(publisher events.Publisher) SettlementOption {
	return func(s *settlementService) {
		s.publisher = publisher
	}
}

// WithServiceOptions applies shared service options such as WithClock.
func WithServiceOptions(options ...ServiceOption) SettlementOption {
	return func(s *settlementService) {
		for _, option := range options {
			option(&s.BaseService)
		}
	}
}

// NewSettlementService creates the settlement engine.
func NewSettlementService(repos portsrepo.RepositoryProvider, options ...SettlementOption) portssvc.SettlementSvc {
	s := &settlementService{
		txManager: repos.TxManager,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.SettlementSvc = (*settlementService)(nil)

func (s *settlementService) PayObligation(ctx context.Context, req dto.PayObligationRequest, userID string) (*domain.Obligation, error) {
	obligationID := strings.TrimSpace(req.ObligationID)
	bankAccountID := strings.TrimSpace(req.BankAccountID)
	if obligationID == "" {
		return nil, apperrors.Validation("obligation id is required")
	}
	if bankAccountID == "" {
		return nil, apperrors.Validation("bank account id is required")
	}
	var requested *domain.Direction
	if strings.TrimSpace(req.Direction) != "" {
		d, err := domain.ParseDirection(req.Direction)
		if err != nil {
			return nil, err
		}
		requested = &d
	}

	now := s.Now()
	var (
		paid  *domain.Obligation
		entry domain.JournalEntry
	)
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		// Lock order: obligation, then bank account.
		obligation, err := repos.Obligations.FindObligationByIDForUpdate(ctx, obligationID)
		if err != nil {
			return err
		}
		account, err := repos.BankAccounts.FindBankAccountByIDForUpdate(ctx, bankAccountID)
		if err != nil {
			return err
		}

		if err := obligation.MarkAsPaid(now); err != nil {
			return err
		}
		previous, current := account.Debit(obligation.Amount)
		if s.balanceFloor != nil && current.LessThan(*s.balanceFloor) {
			return apperrors.BusinessRule("settling %s would leave bank account %q at %s, below the floor of %s",
				obligation.Amount.StringFixed(domain.MoneyScale), account.Name,
				current.StringFixed(domain.MoneyScale), s.balanceFloor.StringFixed(domain.MoneyScale))
		}
		if domain.ExceedsMoneyRange(current) {
			return apperrors.BusinessRule("settling %s would take bank account %q past the supported balance range",
				obligation.Amount.StringFixed(domain.MoneyScale), account.Name)
		}
		obligation.Touch(userID, now)
		account.Touch(userID, now)

		if err := repos.Obligations.UpdateObligation(ctx, *obligation); err != nil {
			return err
		}
		if err := repos.BankAccounts.UpdateBankAccount(ctx, *account); err != nil {
			return err
		}

		direction := obligation.Direction
		if requested != nil {
			direction = *requested
		}
		entry = domain.JournalEntry{
			EntryID:         uuid.NewString(),
			BankAccountID:   account.BankAccountID,
			ObligationID:    &obligation.ObligationID,
			Direction:       direction,
			Amount:          obligation.Amount,
			Description:     obligation.SettlementDescription(),
			PreviousBalance: previous,
			CurrentBalance:  current,
			TransactionDate: now,
			CreatedBy:       userID,
		}
		if err := repos.Journal.AppendEntry(ctx, entry); err != nil {
			return err
		}

		paid, err = repos.Obligations.FindObligationByID(ctx, obligationID)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to settle obligation",
			slog.String("obligation_id", obligationID),
			slog.String("bank_account_id", bankAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Obligation settled",
		slog.String("obligation_id", obligationID),
		slog.String("bank_account_id", bankAccountID),
		slog.String("entry_id", entry.EntryID),
		slog.String("previous_balance", entry.PreviousBalance.StringFixed(domain.MoneyScale)),
		slog.String("current_balance", entry.CurrentBalance.StringFixed(domain.MoneyScale)))

	s.publishSettled(ctx, entry, userID)
	return paid, nil
}

// publishSettled emits the settlement event. The settlement is already committed, so a
// delivery failure is only logged.
func (s *settlementService) publishSettled(ctx context.Context, entry domain.JournalEntry, userID string) {
	if s.publisher == nil {
		return
	}
	event := events.ObligationSettled{
		EventID:         uuid.NewString(),
		Type:            events.ObligationSettledType,
		ObligationID:    *entry.ObligationID,
		BankAccountID:   entry.BankAccountID,
		JournalEntryID:  entry.EntryID,
		Direction:       entry.Direction,
		Amount:          entry.Amount,
		PreviousBalance: entry.PreviousBalance,
		CurrentBalance:  entry.CurrentBalance,
		SettledAt:       entry.TransactionDate,
		SettledBy:       userID,
	}
	// The settlement is committed; a client disconnect must not drop the event.
	ctx = context.WithoutCancel(ctx)
	if err := s.publisher.PublishObligationSettled(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish settlement event", slog.String("obligation_id", event.ObligationID))
	}
}
