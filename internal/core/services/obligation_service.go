package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payables_ledger/internal/core/ports/services"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type obligationService struct {
	BaseService
	obligationRepo portsrepo.ObligationReader
	txManager      portsrepo.TransactionManager
}

// NewObligationService creates the obligation ledger.
func NewObligationService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ObligationSvcFacade {
	return &obligationService{
		BaseService:    newBaseService(options...),
		obligationRepo: repos.ObligationRepo,
		txManager:      repos.TxManager,
	}
}

var _ portssvc.ObligationSvcFacade = (*obligationService)(nil)

// obligationInput is a validated create or update request.
type obligationInput struct {
	description    string
	amount         decimal.Decimal
	expirationDate time.Time
	categoryID     string
	bankAccountID  string
	direction      domain.Direction
}

// parseObligationInput checks every field except the expiration date, which depends on
// whether the request is a create or an update.
func parseObligationInput(req dto.CreateObligationRequest) (obligationInput, error) {
	in := obligationInput{
		description:   strings.TrimSpace(req.Description),
		amount:        domain.RoundMoney(req.Amount),
		categoryID:    strings.TrimSpace(req.CategoryID),
		bankAccountID: strings.TrimSpace(req.BankAccountID),
	}
	if in.description == "" {
		return in, apperrors.Validation("description is required")
	}
	if !in.amount.IsPositive() {
		return in, apperrors.Validation("amount must be greater than zero, got %s", req.Amount.String())
	}
	if domain.ExceedsMoneyRange(in.amount) {
		return in, apperrors.Validation("amount must not exceed %s", domain.MaxMoney.StringFixed(domain.MoneyScale))
	}
	if req.ExpirationDate.IsZero() {
		return in, apperrors.Validation("expiration date is required")
	}
	in.expirationDate = domain.DateOf(req.ExpirationDate.Time)
	if in.categoryID == "" {
		return in, apperrors.Validation("category id is required")
	}
	if in.bankAccountID == "" {
		return in, apperrors.Validation("bank account id is required")
	}
	direction, err := domain.ParseDirection(req.Direction)
	if err != nil {
		return in, err
	}
	in.direction = direction
	return in, nil
}

func (s *obligationService) ensureFutureDate(date time.Time) error {
	today := domain.DateOf(s.Now())
	if !date.After(today) {
		return apperrors.Validation("expiration date %s must be after today (%s)",
			date.Format(dto.DateLayout), today.Format(dto.DateLayout))
	}
	return nil
}

// lockReferences loads and locks the category then the bank account, both of which must be active.
func lockReferences(ctx context.Context, repos portsrepo.TxRepositories, categoryID, bankAccountID string) error {
	category, err := repos.Categories.FindCategoryByIDForUpdate(ctx, categoryID)
	if err != nil {
		return err
	}
	if !category.IsActive {
		return apperrors.BusinessRule("category %q is inactive", category.Name)
	}
	account, err := repos.BankAccounts.FindBankAccountByIDForUpdate(ctx, bankAccountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return apperrors.BusinessRule("bank account %q is inactive", account.Name)
	}
	return nil
}

func (s *obligationService) CreateObligation(ctx context.Context, req dto.CreateObligationRequest, userID string) (*domain.Obligation, error) {
	in, err := parseObligationInput(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFutureDate(in.expirationDate); err != nil {
		return nil, err
	}

	obligation := domain.Obligation{
		ObligationID:   uuid.NewString(),
		Description:    in.description,
		Amount:         in.amount,
		ExpirationDate: in.expirationDate,
		Status:         domain.Pending,
		Direction:      in.direction,
		CategoryID:     in.categoryID,
		BankAccountID:  in.bankAccountID,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}

	var created *domain.Obligation
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := lockReferences(ctx, repos, in.categoryID, in.bankAccountID); err != nil {
			return err
		}
		if err := repos.Obligations.SaveObligation(ctx, obligation); err != nil {
			return err
		}
		created, err = repos.Obligations.FindObligationByID(ctx, obligation.ObligationID)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create obligation", slog.String("description", in.description))
		return nil, err
	}

	s.LogInfo(ctx, "Obligation created",
		slog.String("obligation_id", created.ObligationID),
		slog.String("direction", string(created.Direction)),
		slog.String("amount", created.Amount.StringFixed(domain.MoneyScale)))
	return created, nil
}

func (s *obligationService) UpdateObligation(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, userID string) (*domain.Obligation, error) {
	in, err := parseObligationInput(dto.CreateObligationRequest(req))
	if err != nil {
		return nil, err
	}

	var updated *domain.Obligation
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		obligation, err := repos.Obligations.FindObligationByIDForUpdate(ctx, obligationID)
		if err != nil {
			return err
		}
		if obligation.IsPaid() {
			return apperrors.BusinessRule("obligation %s is already paid and cannot be modified", obligationID)
		}
		if !in.expirationDate.Equal(domain.DateOf(obligation.ExpirationDate)) {
			if err := s.ensureFutureDate(in.expirationDate); err != nil {
				return err
			}
		}
		if err := lockReferences(ctx, repos, in.categoryID, in.bankAccountID); err != nil {
			return err
		}

		obligation.Description = in.description
		obligation.Amount = in.amount
		obligation.ExpirationDate = in.expirationDate
		obligation.CategoryID = in.categoryID
		obligation.BankAccountID = in.bankAccountID
		obligation.Direction = in.direction
		obligation.Touch(userID, s.Now())
		if err := repos.Obligations.UpdateObligation(ctx, *obligation); err != nil {
			return err
		}
		updated, err = repos.Obligations.FindObligationByID(ctx, obligationID)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update obligation", slog.String("obligation_id", obligationID))
		return nil, err
	}

	s.LogInfo(ctx, "Obligation updated", slog.String("obligation_id", obligationID))
	return updated, nil
}

func (s *obligationService) DeleteObligation(ctx context.Context, obligationID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if _, err := repos.Obligations.FindObligationByIDForUpdate(ctx, obligationID); err != nil {
			return err
		}
		return repos.Obligations.DeleteObligation(ctx, obligationID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete obligation", slog.String("obligation_id", obligationID))
		return err
	}

	s.LogInfo(ctx, "Obligation deleted", slog.String("obligation_id", obligationID))
	return nil
}

func (s *obligationService) GetObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get obligation", slog.String("obligation_id", obligationID))
		return nil, err
	}
	return obligation, nil
}

func (s *obligationService) list(ctx context.Context, filter portsrepo.ObligationFilter, page pagination.PageRequest) (pagination.Page[domain.Obligation], error) {
	page = page.Normalize(portsrepo.ObligationSort)
	items, total, err := s.obligationRepo.ListObligations(ctx, filter, page)
	if err != nil {
		s.LogError(ctx, err, "Failed to list obligations")
		return pagination.Page[domain.Obligation]{}, err
	}
	return pagination.NewPage(items, page, total), nil
}

func (s *obligationService) ListObligations(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.Obligation], error) {
	return s.list(ctx, portsrepo.ObligationFilter{}, page)
}

func (s *obligationService) ListObligationsByStatus(ctx context.Context, status domain.ObligationStatus, page pagination.PageRequest) (pagination.Page[domain.Obligation], error) {
	return s.list(ctx, portsrepo.ObligationFilter{Status: &status}, page)
}

func (s *obligationService) ListOverdueObligations(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.Obligation], error) {
	pending := domain.Pending
	today := domain.DateOf(s.Now())
	return s.list(ctx, portsrepo.ObligationFilter{Status: &pending, ExpiresBefore: &today}, page)
}

func (s *obligationService) ListObligationsDueBetween(ctx context.Context, start, end time.Time, direction *domain.Direction, page pagination.PageRequest) (pagination.Page[domain.Obligation], error) {
	start, end = domain.DateOf(start), domain.DateOf(end)
	if start.After(end) {
		return pagination.Page[domain.Obligation]{}, apperrors.Validation("start date %s is after end date %s",
			start.Format(dto.DateLayout), end.Format(dto.DateLayout))
	}
	return s.list(ctx, portsrepo.ObligationFilter{Direction: direction, ExpiresFrom: &start, ExpiresTo: &end}, page)
}

func (s *obligationService) GetTotalAmountByDirection(ctx context.Context, direction domain.Direction) (decimal.Decimal, error) {
	if !direction.Valid() {
		return decimal.Zero, apperrors.Validation("unknown direction %q", direction)
	}
	total, err := s.obligationRepo.SumAmountByDirection(ctx, direction)
	if err != nil {
		s.LogError(ctx, err, "Failed to total obligations", slog.String("direction", string(direction)))
		return decimal.Zero, err
	}
	return total, nil
}
