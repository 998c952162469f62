package services_test

import (
	"time"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
)

// settleTwo pays a payable and a receivable one day apart and returns their obligation IDs.
func (suite *ServicesTestSuite) settleTwo() (accountID, first, second string) {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	electricity := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)
	invoice := suite.createObligation("Invoice", "100.00", category.CategoryID, account.BankAccountID, domain.Receivable)

	_, err := suite.pay(electricity.ObligationID, account.BankAccountID)
	suite.Require().NoError(err)
	suite.now = suite.now.Add(24 * time.Hour)
	_, err = suite.pay(invoice.ObligationID, account.BankAccountID)
	suite.Require().NoError(err)

	return account.BankAccountID, electricity.ObligationID, invoice.ObligationID
}

func (suite *ServicesTestSuite) TestListEntriesByBankAccount_NewestFirst() {
	accountID, first, second := suite.settleTwo()

	page, err := suite.journal.ListEntriesByBankAccount(suite.ctx, accountID, pagination.PageRequest{})
	suite.Require().NoError(err)
	suite.Require().Len(page.Items, 2)
	suite.Equal(second, *page.Items[0].ObligationID)
	suite.Equal(first, *page.Items[1].ObligationID)
	suite.assertMoney("350.00", page.Items[0].PreviousBalance)
	suite.assertMoney("250.00", page.Items[0].CurrentBalance)
	suite.Equal("Checking", page.Items[0].BankAccountName)

	_, err = suite.journal.ListEntriesByBankAccount(suite.ctx, "missing", pagination.PageRequest{})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ServicesTestSuite) TestListEntriesByDirectionAndPeriod() {
	_, first, second := suite.settleTwo()

	payables, err := suite.journal.ListEntriesByDirection(suite.ctx, domain.Payable, pagination.PageRequest{})
	suite.Require().NoError(err)
	suite.Require().Len(payables.Items, 1)
	suite.Equal(first, *payables.Items[0].ObligationID)

	_, err = suite.journal.ListEntriesByDirection(suite.ctx, domain.Direction("x"), pagination.PageRequest{})
	suite.ErrorIs(err, apperrors.ErrValidation)

	day := domain.DateOf(suite.now)
	period, err := suite.journal.ListEntriesByPeriod(suite.ctx, day, day.Add(24*time.Hour-time.Nanosecond), pagination.PageRequest{})
	suite.Require().NoError(err)
	suite.Require().Len(period.Items, 1)
	suite.Equal(second, *period.Items[0].ObligationID)

	_, err = suite.journal.ListEntriesByPeriod(suite.ctx, suite.now, suite.now.Add(-time.Second), pagination.PageRequest{})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ServicesTestSuite) TestJournalLookups() {
	_, first, _ := suite.settleTwo()

	entries, err := suite.journal.ListEntriesByObligation(suite.ctx, first)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)

	entry, err := suite.journal.GetEntryByID(suite.ctx, entries[0].EntryID)
	suite.Require().NoError(err)
	suite.Equal("Payment for: Electricity", entry.Description)
	suite.Equal("Electricity", entry.ObligationDescription)

	_, err = suite.journal.GetEntryByID(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	none, err := suite.journal.ListEntriesByObligation(suite.ctx, "missing")
	suite.Require().NoError(err)
	suite.Empty(none)

	all, err := suite.journal.ListEntries(suite.ctx, pagination.PageRequest{Size: 1})
	suite.Require().NoError(err)
	suite.Equal(int64(2), all.TotalItems)
	suite.Equal(2, all.TotalPages)
}
