package services_test

import (
	"time"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

func (suite *ServicesTestSuite) TestCreateObligation_Success() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")

	obligation := suite.createObligation(" Electricity ", "150", category.CategoryID, account.BankAccountID, domain.Payable)

	suite.NotEmpty(obligation.ObligationID)
	suite.Equal("Electricity", obligation.Description)
	suite.assertMoney("150.00", obligation.Amount)
	suite.Equal(domain.Pending, obligation.Status)
	suite.Nil(obligation.PaymentDate)
	suite.Equal(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), obligation.ExpirationDate)
	suite.Equal("Utilities", obligation.CategoryName)
	suite.Equal("Checking", obligation.BankAccountName)
	suite.Equal("First Bank", obligation.BankName)
}

func (suite *ServicesTestSuite) TestCreateObligation_Validation() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")

	tests := []struct {
		name   string
		mutate func(r *dto.CreateObligationRequest)
	}{
		{name: "zero amount", mutate: func(r *dto.CreateObligationRequest) { r.Amount = decimal.Zero }},
		{name: "negative amount", mutate: func(r *dto.CreateObligationRequest) { r.Amount = decimal.RequireFromString("-1") }},
		{name: "expires today", mutate: func(r *dto.CreateObligationRequest) { r.ExpirationDate = dto.NewDate(suite.now) }},
		{name: "expired yesterday", mutate: func(r *dto.CreateObligationRequest) { r.ExpirationDate = dto.NewDate(suite.now.AddDate(0, 0, -1)) }},
		{name: "missing expiration", mutate: func(r *dto.CreateObligationRequest) { r.ExpirationDate = dto.Date{} }},
		{name: "blank description", mutate: func(r *dto.CreateObligationRequest) { r.Description = "  " }},
		{name: "unknown direction", mutate: func(r *dto.CreateObligationRequest) { r.Direction = "ATIVO" }},
		{name: "amount above column range", mutate: func(r *dto.CreateObligationRequest) { r.Amount = decimal.RequireFromString("1e20") }},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			req := suite.obligationRequest("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)
			tt.mutate(&req)

			_, err := suite.obligations.CreateObligation(suite.ctx, req, suite.userID)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (suite *ServicesTestSuite) TestCreateObligation_References() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")

	_, err := suite.obligations.CreateObligation(suite.ctx,
		suite.obligationRequest("x", "1.00", "missing", account.BankAccountID, domain.Payable), suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.obligations.CreateObligation(suite.ctx,
		suite.obligationRequest("x", "1.00", category.CategoryID, "missing", domain.Payable), suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.categories.ToggleCategoryActive(suite.ctx, category.CategoryID, suite.userID)
	suite.Require().NoError(err)
	_, err = suite.obligations.CreateObligation(suite.ctx,
		suite.obligationRequest("x", "1.00", category.CategoryID, account.BankAccountID, domain.Payable), suite.userID)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)

	active := suite.createCategory("Rent")
	_, err = suite.bankAccounts.ToggleBankAccountActive(suite.ctx, account.BankAccountID, suite.userID)
	suite.Require().NoError(err)
	_, err = suite.obligations.CreateObligation(suite.ctx,
		suite.obligationRequest("x", "1.00", active.CategoryID, account.BankAccountID, domain.Payable), suite.userID)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
}

func (suite *ServicesTestSuite) TestUpdateObligation() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	savings := suite.createBankAccount("Savings", "100.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)

	req := dto.UpdateObligationRequest(suite.obligationRequest("Electricity (March)", "175.00", category.CategoryID, savings.BankAccountID, domain.Receivable))
	updated, err := suite.obligations.UpdateObligation(suite.ctx, obligation.ObligationID, req, "user_2")

	suite.Require().NoError(err)
	suite.Equal("Electricity (March)", updated.Description)
	suite.assertMoney("175.00", updated.Amount)
	suite.Equal(domain.Receivable, updated.Direction)
	suite.Equal(savings.BankAccountID, updated.BankAccountID)
	suite.Equal("Savings", updated.BankAccountName)
	suite.Equal("user_2", updated.LastUpdatedBy)

	_, err = suite.obligations.UpdateObligation(suite.ctx, "missing", req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ServicesTestSuite) TestUpdateObligation_KeepsPastExpirationWhenUnchanged() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)
	req := dto.UpdateObligationRequest(suite.obligationRequest("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable))

	suite.now = suite.now.AddDate(0, 1, 0)

	req.Description = "Electricity, late"
	_, err := suite.obligations.UpdateObligation(suite.ctx, obligation.ObligationID, req, suite.userID)
	suite.Require().NoError(err)

	req.ExpirationDate = dto.NewDate(suite.now.AddDate(0, 0, -1))
	_, err = suite.obligations.UpdateObligation(suite.ctx, obligation.ObligationID, req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ServicesTestSuite) TestUpdateObligation_PaidIsImmutable() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)
	_, err := suite.pay(obligation.ObligationID, account.BankAccountID)
	suite.Require().NoError(err)

	req := dto.UpdateObligationRequest(suite.obligationRequest("Changed", "1.00", category.CategoryID, account.BankAccountID, domain.Payable))
	_, err = suite.obligations.UpdateObligation(suite.ctx, obligation.ObligationID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	reloaded, err := suite.obligations.GetObligationByID(suite.ctx, obligation.ObligationID)
	suite.Require().NoError(err)
	suite.Equal("Electricity", reloaded.Description)
	suite.Equal(domain.Paid, reloaded.Status)
}

func (suite *ServicesTestSuite) TestDeleteObligation_KeepsJournalEntries() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)
	_, err := suite.pay(obligation.ObligationID, account.BankAccountID)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.obligations.DeleteObligation(suite.ctx, obligation.ObligationID))

	_, err = suite.obligations.GetObligationByID(suite.ctx, obligation.ObligationID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.ErrorIs(suite.obligations.DeleteObligation(suite.ctx, obligation.ObligationID), apperrors.ErrNotFound)

	page, err := suite.journal.ListEntriesByBankAccount(suite.ctx, account.BankAccountID, pagination.PageRequest{})
	suite.Require().NoError(err)
	suite.Require().Len(page.Items, 1)
	suite.Nil(page.Items[0].ObligationID)
	suite.assertMoney("350.00", page.Items[0].CurrentBalance)
}

func (suite *ServicesTestSuite) TestObligationListings() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	electricity := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)
	water := suite.createObligation("Water", "30.00", category.CategoryID, account.BankAccountID, domain.Payable)
	invoice := suite.createObligation("Invoice", "200.00", category.CategoryID, account.BankAccountID, domain.Receivable)

	_, err := suite.pay(water.ObligationID, account.BankAccountID)
	suite.Require().NoError(err)

	pending, err := suite.obligations.ListObligationsByStatus(suite.ctx, domain.Pending, pagination.PageRequest{})
	suite.Require().NoError(err)
	suite.Equal(int64(2), pending.TotalItems)

	overdue, err := suite.obligations.ListOverdueObligations(suite.ctx, pagination.PageRequest{})
	suite.Require().NoError(err)
	suite.Empty(overdue.Items)

	suite.now = suite.now.AddDate(0, 0, 11)
	overdue, err = suite.obligations.ListOverdueObligations(suite.ctx, pagination.PageRequest{SortField: "amount", Direction: pagination.Asc})
	suite.Require().NoError(err)
	suite.Require().Len(overdue.Items, 2)
	suite.Equal(electricity.ObligationID, overdue.Items[0].ObligationID)
	suite.Equal(invoice.ObligationID, overdue.Items[1].ObligationID)

	start := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	receivable := domain.Receivable
	due, err := suite.obligations.ListObligationsDueBetween(suite.ctx, start, start, &receivable, pagination.PageRequest{})
	suite.Require().NoError(err)
	suite.Require().Len(due.Items, 1)
	suite.Equal(invoice.ObligationID, due.Items[0].ObligationID)

	due, err = suite.obligations.ListObligationsDueBetween(suite.ctx, start, start, nil, pagination.PageRequest{})
	suite.Require().NoError(err)
	suite.Equal(int64(3), due.TotalItems)

	_, err = suite.obligations.ListObligationsDueBetween(suite.ctx, start.AddDate(0, 0, 1), start, nil, pagination.PageRequest{})
	suite.ErrorIs(err, apperrors.ErrValidation)

	all, err := suite.obligations.ListObligations(suite.ctx, pagination.PageRequest{Size: 2})
	suite.Require().NoError(err)
	suite.Equal(int64(3), all.TotalItems)
	suite.Len(all.Items, 2)
}

func (suite *ServicesTestSuite) TestGetTotalAmountByDirection() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)
	suite.createObligation("Water", "30.50", category.CategoryID, account.BankAccountID, domain.Payable)
	suite.createObligation("Invoice", "200.00", category.CategoryID, account.BankAccountID, domain.Receivable)

	payable, err := suite.obligations.GetTotalAmountByDirection(suite.ctx, domain.Payable)
	suite.Require().NoError(err)
	suite.assertMoney("180.50", payable)

	receivable, err := suite.obligations.GetTotalAmountByDirection(suite.ctx, domain.Receivable)
	suite.Require().NoError(err)
	suite.assertMoney("200.00", receivable)

	_, err = suite.obligations.GetTotalAmountByDirection(suite.ctx, domain.Direction("OTHER"))
	suite.ErrorIs(err, apperrors.ErrValidation)
}
