package services_test

import (
	"context"
	"errors"
	"sync"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/core/ports/events"
	"github.com/SscSPs/payables_ledger/internal/core/services"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *ServicesTestSuite) TestPayObligation_DebitsBalanceAndAppendsEntry() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)

	paid, err := suite.pay(obligation.ObligationID, account.BankAccountID)

	suite.Require().NoError(err)
	suite.Equal(domain.Paid, paid.Status)
	suite.Require().NotNil(paid.PaymentDate)
	suite.Equal(domain.DateOf(suite.now), *paid.PaymentDate)
	suite.Equal(suite.userID, paid.LastUpdatedBy)
	suite.assertMoney("350.00", suite.balanceOf(account.BankAccountID))

	entries, err := suite.journal.ListEntriesByObligation(suite.ctx, obligation.ObligationID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	entry := entries[0]
	suite.Equal(account.BankAccountID, entry.BankAccountID)
	suite.Equal(domain.Payable, entry.Direction)
	suite.Equal("Payment for: Electricity", entry.Description)
	suite.assertMoney("150.00", entry.Amount)
	suite.assertMoney("500.00", entry.PreviousBalance)
	suite.assertMoney("350.00", entry.CurrentBalance)
	suite.Equal(suite.now, entry.TransactionDate)

	suite.publisher.AssertCalled(suite.T(), "PublishObligationSettled", mock.Anything, mock.MatchedBy(func(e events.ObligationSettled) bool {
		return e.Type == events.ObligationSettledType &&
			e.ObligationID == obligation.ObligationID &&
			e.JournalEntryID == entry.EntryID &&
			e.CurrentBalance.Equal(decimal.RequireFromString("350.00"))
	}))
}

func (suite *ServicesTestSuite) TestPayObligation_SecondPaymentRejected() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)

	_, err := suite.pay(obligation.ObligationID, account.BankAccountID)
	suite.Require().NoError(err)

	_, err = suite.pay(obligation.ObligationID, account.BankAccountID)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)

	suite.assertMoney("350.00", suite.balanceOf(account.BankAccountID))
	entries, err := suite.journal.ListEntriesByObligation(suite.ctx, obligation.ObligationID)
	suite.Require().NoError(err)
	suite.Len(entries, 1)
	suite.publisher.AssertNumberOfCalls(suite.T(), "PublishObligationSettled", 1)
}

func (suite *ServicesTestSuite) TestPayObligation_ReceivableIsDebitedToo() {
	category := suite.createCategory("Sales")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Invoice 42", "100.00", category.CategoryID, account.BankAccountID, domain.Receivable)

	_, err := suite.pay(obligation.ObligationID, account.BankAccountID)

	suite.Require().NoError(err)
	suite.assertMoney("400.00", suite.balanceOf(account.BankAccountID))
}

func (suite *ServicesTestSuite) TestPayObligation_RequestDirectionOverridesEntryDirection() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Water", "20.00", category.CategoryID, account.BankAccountID, domain.Payable)

	_, err := suite.settlement.PayObligation(suite.ctx, dto.PayObligationRequest{
		ObligationID:  obligation.ObligationID,
		BankAccountID: account.BankAccountID,
		Direction:     "receivable",
	}, suite.userID)
	suite.Require().NoError(err)

	entries, err := suite.journal.ListEntriesByObligation(suite.ctx, obligation.ObligationID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(domain.Receivable, entries[0].Direction)
}

func (suite *ServicesTestSuite) TestPayObligation_AllowsNegativeBalanceByDefault() {
	category := suite.createCategory("Rent")
	account := suite.createBankAccount("Checking", "100.00")
	obligation := suite.createObligation("March rent", "150.50", category.CategoryID, account.BankAccountID, domain.Payable)

	_, err := suite.pay(obligation.ObligationID, account.BankAccountID)

	suite.Require().NoError(err)
	suite.assertMoney("-50.50", suite.balanceOf(account.BankAccountID))
}

func (suite *ServicesTestSuite) TestPayObligation_BalanceFloorRejectsAndLeavesStateUntouched() {
	settlement := services.NewSettlementService(suite.repos,
		services.WithServiceOptions(services.WithClock(suite.clock)),
		services.WithBalanceFloor(decimal.Zero))
	category := suite.createCategory("Rent")
	account := suite.createBankAccount("Checking", "100.00")
	obligation := suite.createObligation("March rent", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)

	_, err := settlement.PayObligation(suite.ctx, dto.PayObligationRequest{
		ObligationID:  obligation.ObligationID,
		BankAccountID: account.BankAccountID,
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.assertMoney("100.00", suite.balanceOf(account.BankAccountID))
	reloaded, err := suite.obligations.GetObligationByID(suite.ctx, obligation.ObligationID)
	suite.Require().NoError(err)
	suite.Equal(domain.Pending, reloaded.Status)
	suite.Nil(reloaded.PaymentDate)
}

func (suite *ServicesTestSuite) TestPayObligation_RejectsBalanceOutsideStorableRange() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "0")
	first := suite.createObligation("Building", "99999999999999999.99", category.CategoryID, account.BankAccountID, domain.Payable)
	second := suite.createObligation("Land", "1.00", category.CategoryID, account.BankAccountID, domain.Payable)

	_, err := suite.pay(first.ObligationID, account.BankAccountID)
	suite.Require().NoError(err)
	suite.assertMoney("-99999999999999999.99", suite.balanceOf(account.BankAccountID))

	_, err = suite.pay(second.ObligationID, account.BankAccountID)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.assertMoney("-99999999999999999.99", suite.balanceOf(account.BankAccountID))
	pending, err := suite.obligations.GetObligationByID(suite.ctx, second.ObligationID)
	suite.Require().NoError(err)
	suite.Equal(domain.Pending, pending.Status)
}

func (suite *ServicesTestSuite) TestPayObligation_NotFound() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)

	_, err := suite.pay("missing", account.BankAccountID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.pay(obligation.ObligationID, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	reloaded, err := suite.obligations.GetObligationByID(suite.ctx, obligation.ObligationID)
	suite.Require().NoError(err)
	suite.Equal(domain.Pending, reloaded.Status)
}

func (suite *ServicesTestSuite) TestPayObligation_InvalidRequest() {
	_, err := suite.settlement.PayObligation(suite.ctx, dto.PayObligationRequest{
		ObligationID:  "obl",
		BankAccountID: "bank",
		Direction:     "PASSIVO",
	}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.pay("", "bank")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ServicesTestSuite) TestPayObligation_RollsBackWhenJournalAppendFails() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)

	appendErr := errors.New("disk full")
	repos := suite.repos
	repos.TxManager = failingJournalTx{inner: suite.repos.TxManager, err: appendErr}
	settlement := services.NewSettlementService(repos, services.WithServiceOptions(services.WithClock(suite.clock)))

	_, err := settlement.PayObligation(suite.ctx, dto.PayObligationRequest{
		ObligationID:  obligation.ObligationID,
		BankAccountID: account.BankAccountID,
	}, suite.userID)

	suite.ErrorIs(err, appendErr)
	suite.assertMoney("500.00", suite.balanceOf(account.BankAccountID))
	reloaded, err := suite.obligations.GetObligationByID(suite.ctx, obligation.ObligationID)
	suite.Require().NoError(err)
	suite.Equal(domain.Pending, reloaded.Status)
	page, err := suite.journal.ListEntries(suite.ctx, pagination.PageRequest{})
	suite.Require().NoError(err)
	suite.Zero(page.TotalItems)
}

func (suite *ServicesTestSuite) TestPayObligation_PublishFailureKeepsSettlement() {
	publisher := new(MockPublisher)
	publisher.On("PublishObligationSettled", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
	settlement := services.NewSettlementService(suite.repos,
		services.WithServiceOptions(services.WithClock(suite.clock)),
		services.WithEventPublisher(publisher))
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)

	paid, err := settlement.PayObligation(suite.ctx, dto.PayObligationRequest{
		ObligationID:  obligation.ObligationID,
		BankAccountID: account.BankAccountID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Paid, paid.Status)
	suite.assertMoney("350.00", suite.balanceOf(account.BankAccountID))
	publisher.AssertExpectations(suite.T())
}

func (suite *ServicesTestSuite) TestPayObligation_PublishIgnoresRequestCancellation() {
	publisher := new(MockPublisher)
	publisher.On("PublishObligationSettled", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Done() == nil
	}), mock.Anything).Return(nil).Once()
	settlement := services.NewSettlementService(suite.repos,
		services.WithServiceOptions(services.WithClock(suite.clock)),
		services.WithEventPublisher(publisher))
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)

	ctx, cancel := context.WithCancel(suite.ctx)
	defer cancel()
	_, err := settlement.PayObligation(ctx, dto.PayObligationRequest{
		ObligationID:  obligation.ObligationID,
		BankAccountID: account.BankAccountID,
	}, suite.userID)

	suite.Require().NoError(err)
	publisher.AssertExpectations(suite.T())
}

func (suite *ServicesTestSuite) TestPayObligation_ConcurrentPaymentsSettleOnce() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.pay(obligation.ObligationID, account.BankAccountID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if errors.Is(err, apperrors.ErrBusinessRule) {
				rejected++
			}
		}()
	}
	wg.Wait()

	suite.Equal(1, successes)
	suite.Equal(workers-1, rejected)
	suite.assertMoney("350.00", suite.balanceOf(account.BankAccountID))
}
