package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/payables_ledger/internal/core/ports/services"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

func (m *MockCategoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) ListCategories(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.Category], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(pagination.Page[domain.Category]), args.Error(1)
}
func (m *MockCategoryService) ListActiveCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryService) SearchCategories(ctx context.Context, fragment string) ([]domain.Category, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryService) GetMostUsedCategory(ctx context.Context) (*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) GetCategoryTotals(ctx context.Context) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}
func (m *MockCategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) ToggleCategoryActive(ctx context.Context, categoryID string, userID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// --- Mock BankAccountService ---
type MockBankAccountService struct {
	mock.Mock
}

var _ portssvc.BankAccountSvcFacade = (*MockBankAccountService)(nil)

func (m *MockBankAccountService) GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) ListBankAccounts(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.BankAccount], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(pagination.Page[domain.BankAccount]), args.Error(1)
}
func (m *MockBankAccountService) ListActiveBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) SearchBankAccountsByBank(ctx context.Context, fragment string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) GetTotalActiveBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBankAccountService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) UpdateBankAccount(ctx context.Context, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) SetBalance(ctx context.Context, bankAccountID string, balance decimal.Decimal, userID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID, balance, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) ToggleBankAccountActive(ctx context.Context, bankAccountID string, userID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) DeleteBankAccount(ctx context.Context, bankAccountID string) error {
	args := m.Called(ctx, bankAccountID)
	return args.Error(0)
}

// --- Mock ObligationService ---
type MockObligationService struct {
	mock.Mock
}

var _ portssvc.ObligationSvcFacade = (*MockObligationService)(nil)

func (m *MockObligationService) GetObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}
func (m *MockObligationService) ListObligations(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.Obligation], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(pagination.Page[domain.Obligation]), args.Error(1)
}
func (m *MockObligationService) ListObligationsByStatus(ctx context.Context, status domain.ObligationStatus, page pagination.PageRequest) (pagination.Page[domain.Obligation], error) {
	args := m.Called(ctx, status, page)
	return args.Get(0).(pagination.Page[domain.Obligation]), args.Error(1)
}
func (m *MockObligationService) ListOverdueObligations(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.Obligation], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(pagination.Page[domain.Obligation]), args.Error(1)
}
func (m *MockObligationService) ListObligationsDueBetween(ctx context.Context, start, end time.Time, direction *domain.Direction, page pagination.PageRequest) (pagination.Page[domain.Obligation], error) {
	args := m.Called(ctx, start, end, direction, page)
	return args.Get(0).(pagination.Page[domain.Obligation]), args.Error(1)
}
func (m *MockObligationService) GetTotalAmountByDirection(ctx context.Context, direction domain.Direction) (decimal.Decimal, error) {
	args := m.Called(ctx, direction)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockObligationService) CreateObligation(ctx context.Context, req dto.CreateObligationRequest, userID string) (*domain.Obligation, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}
func (m *MockObligationService) UpdateObligation(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, userID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}
func (m *MockObligationService) DeleteObligation(ctx context.Context, obligationID string) error {
	args := m.Called(ctx, obligationID)
	return args.Error(0)
}

// --- Mock SettlementService ---
type MockSettlementService struct {
	mock.Mock
}

var _ portssvc.SettlementSvc = (*MockSettlementService)(nil)

func (m *MockSettlementService) PayObligation(ctx context.Context, req dto.PayObligationRequest, userID string) (*domain.Obligation, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntries(ctx context.Context, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(pagination.Page[domain.JournalEntry]), args.Error(1)
}
func (m *MockJournalService) ListEntriesByBankAccount(ctx context.Context, bankAccountID string, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error) {
	args := m.Called(ctx, bankAccountID, page)
	return args.Get(0).(pagination.Page[domain.JournalEntry]), args.Error(1)
}
func (m *MockJournalService) ListEntriesByDirection(ctx context.Context, direction domain.Direction, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error) {
	args := m.Called(ctx, direction, page)
	return args.Get(0).(pagination.Page[domain.JournalEntry]), args.Error(1)
}
func (m *MockJournalService) ListEntriesByPeriod(ctx context.Context, start, end time.Time, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error) {
	args := m.Called(ctx, start, end, page)
	return args.Get(0).(pagination.Page[domain.JournalEntry]), args.Error(1)
}
func (m *MockJournalService) ListEntriesByObligation(ctx context.Context, obligationID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, obligationID)
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}
