package services_test

import (
	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

func (suite *ServicesTestSuite) TestCreateBankAccount_Validation() {
	account := suite.createBankAccount("Checking", "10.005")
	suite.True(account.IsActive)
	suite.assertMoney("10.01", account.CurrentBalance)

	_, err := suite.bankAccounts.CreateBankAccount(suite.ctx, dto.CreateBankAccountRequest{
		Name: "Savings", Bank: "First Bank", CurrentBalance: decimal.RequireFromString("-0.01"),
	}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.bankAccounts.CreateBankAccount(suite.ctx, dto.CreateBankAccountRequest{
		Name: "Checking", Bank: "Other Bank",
	}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = suite.bankAccounts.CreateBankAccount(suite.ctx, dto.CreateBankAccountRequest{
		Name: "Vault", Bank: "First Bank", CurrentBalance: decimal.RequireFromString("100000000000000000000"),
	}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ServicesTestSuite) TestBalanceUpperBound() {
	account := suite.createBankAccount("Checking", "99999999999999999.99")
	suite.assertMoney("99999999999999999.99", account.CurrentBalance)

	_, err := suite.bankAccounts.SetBalance(suite.ctx, account.BankAccountID, decimal.RequireFromString("99999999999999999.999"), suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation, "rounds up past the column range")
	suite.assertMoney("99999999999999999.99", suite.balanceOf(account.BankAccountID))
}

func (suite *ServicesTestSuite) TestUpdateBankAccount() {
	account := suite.createBankAccount("Checking", "100.00")
	suite.createBankAccount("Savings", "0")

	updated, err := suite.bankAccounts.UpdateBankAccount(suite.ctx, account.BankAccountID, dto.UpdateBankAccountRequest{
		Name: "Main checking", Bank: "Second Bank", CurrentBalance: decimal.RequireFromString("250"),
	}, suite.userID)
	suite.Require().NoError(err)
	suite.Equal("Main checking", updated.Name)
	suite.Equal("Second Bank", updated.Bank)
	suite.assertMoney("250.00", updated.CurrentBalance)

	_, err = suite.bankAccounts.UpdateBankAccount(suite.ctx, account.BankAccountID, dto.UpdateBankAccountRequest{
		Name: "Savings", Bank: "Second Bank",
	}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = suite.bankAccounts.UpdateBankAccount(suite.ctx, account.BankAccountID, dto.UpdateBankAccountRequest{
		Name: "Main checking", Bank: "Second Bank", CurrentBalance: decimal.RequireFromString("-1"),
	}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.bankAccounts.UpdateBankAccount(suite.ctx, "missing", dto.UpdateBankAccountRequest{
		Name: "x", Bank: "y",
	}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ServicesTestSuite) TestSetBalance() {
	account := suite.createBankAccount("Checking", "100.00")

	updated, err := suite.bankAccounts.SetBalance(suite.ctx, account.BankAccountID, decimal.RequireFromString("42.5"), suite.userID)
	suite.Require().NoError(err)
	suite.assertMoney("42.50", updated.CurrentBalance)

	_, err = suite.bankAccounts.SetBalance(suite.ctx, account.BankAccountID, decimal.RequireFromString("-5"), suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.assertMoney("42.50", suite.balanceOf(account.BankAccountID))
}

func (suite *ServicesTestSuite) TestToggleBankAccountActive_BlockedByPendingObligation() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)

	_, err := suite.bankAccounts.ToggleBankAccountActive(suite.ctx, account.BankAccountID, suite.userID)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)

	_, err = suite.pay(obligation.ObligationID, account.BankAccountID)
	suite.Require().NoError(err)

	toggled, err := suite.bankAccounts.ToggleBankAccountActive(suite.ctx, account.BankAccountID, suite.userID)
	suite.Require().NoError(err)
	suite.False(toggled.IsActive)
}

func (suite *ServicesTestSuite) TestDeleteBankAccount_BlockedByObligationsAndJournal() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)

	err := suite.bankAccounts.DeleteBankAccount(suite.ctx, account.BankAccountID)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)

	_, err = suite.pay(obligation.ObligationID, account.BankAccountID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.obligations.DeleteObligation(suite.ctx, obligation.ObligationID))

	err = suite.bankAccounts.DeleteBankAccount(suite.ctx, account.BankAccountID)
	suite.ErrorIs(err, apperrors.ErrBusinessRule, "journal entries still reference the account")

	unused := suite.createBankAccount("Unused", "0")
	suite.Require().NoError(suite.bankAccounts.DeleteBankAccount(suite.ctx, unused.BankAccountID))
	_, err = suite.bankAccounts.GetBankAccountByID(suite.ctx, unused.BankAccountID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ServicesTestSuite) TestGetTotalActiveBalance() {
	total, err := suite.bankAccounts.GetTotalActiveBalance(suite.ctx)
	suite.Require().NoError(err)
	suite.True(total.IsZero())

	suite.createBankAccount("Checking", "100.10")
	suite.createBankAccount("Savings", "200.20")
	closed := suite.createBankAccount("Closed", "999.00")
	_, err = suite.bankAccounts.ToggleBankAccountActive(suite.ctx, closed.BankAccountID, suite.userID)
	suite.Require().NoError(err)

	total, err = suite.bankAccounts.GetTotalActiveBalance(suite.ctx)
	suite.Require().NoError(err)
	suite.assertMoney("300.30", total)

	active, err := suite.bankAccounts.ListActiveBankAccounts(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(active, 2)

	found, err := suite.bankAccounts.SearchBankAccountsByBank(suite.ctx, "first")
	suite.Require().NoError(err)
	suite.Len(found, 3)
}
