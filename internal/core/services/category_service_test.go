package services_test

import (
	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
)

func (suite *ServicesTestSuite) TestCreateCategory_DuplicateNameIgnoresCase() {
	created := suite.createCategory("Utilities")
	suite.True(created.IsActive)
	suite.Equal(suite.userID, created.CreatedBy)

	_, err := suite.categories.CreateCategory(suite.ctx, dto.CreateCategoryRequest{Name: "  UTILITIES "}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = suite.categories.CreateCategory(suite.ctx, dto.CreateCategoryRequest{Name: "   "}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ServicesTestSuite) TestUpdateCategory() {
	utilities := suite.createCategory("Utilities")
	suite.createCategory("Rent")

	updated, err := suite.categories.UpdateCategory(suite.ctx, utilities.CategoryID,
		dto.UpdateCategoryRequest{Name: "UTILITIES", Description: "power and water"}, "user_2")
	suite.Require().NoError(err)
	suite.Equal("UTILITIES", updated.Name)
	suite.Equal("power and water", updated.Description)
	suite.Equal("user_2", updated.LastUpdatedBy)

	_, err = suite.categories.UpdateCategory(suite.ctx, utilities.CategoryID, dto.UpdateCategoryRequest{Name: "rent"}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = suite.categories.UpdateCategory(suite.ctx, "missing", dto.UpdateCategoryRequest{Name: "Other"}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ServicesTestSuite) TestToggleCategoryActive_BlockedByPendingObligation() {
	category := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)

	_, err := suite.categories.ToggleCategoryActive(suite.ctx, category.CategoryID, suite.userID)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)

	_, err = suite.pay(obligation.ObligationID, account.BankAccountID)
	suite.Require().NoError(err)

	toggled, err := suite.categories.ToggleCategoryActive(suite.ctx, category.CategoryID, suite.userID)
	suite.Require().NoError(err)
	suite.False(toggled.IsActive)

	toggled, err = suite.categories.ToggleCategoryActive(suite.ctx, category.CategoryID, suite.userID)
	suite.Require().NoError(err)
	suite.True(toggled.IsActive)
}

func (suite *ServicesTestSuite) TestDeleteCategory_BlockedByAnyObligation() {
	category := suite.createCategory("Utilities")
	unused := suite.createCategory("Unused")
	account := suite.createBankAccount("Checking", "500.00")
	obligation := suite.createObligation("Electricity", "150.00", category.CategoryID, account.BankAccountID, domain.Payable)
	_, err := suite.pay(obligation.ObligationID, account.BankAccountID)
	suite.Require().NoError(err)

	err = suite.categories.DeleteCategory(suite.ctx, category.CategoryID)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)

	suite.Require().NoError(suite.categories.DeleteCategory(suite.ctx, unused.CategoryID))
	_, err = suite.categories.GetCategoryByID(suite.ctx, unused.CategoryID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	err = suite.categories.DeleteCategory(suite.ctx, unused.CategoryID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ServicesTestSuite) TestGetMostUsedCategory() {
	_, err := suite.categories.GetMostUsedCategory(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	first := suite.createCategory("First")
	second := suite.createCategory("Second")
	account := suite.createBankAccount("Checking", "500.00")

	suite.createObligation("a", "1.00", second.CategoryID, account.BankAccountID, domain.Payable)
	suite.createObligation("b", "1.00", first.CategoryID, account.BankAccountID, domain.Payable)

	tie, err := suite.categories.GetMostUsedCategory(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(first.CategoryID, tie.CategoryID, "ties go to the category created first")

	suite.createObligation("c", "1.00", second.CategoryID, account.BankAccountID, domain.Receivable)
	most, err := suite.categories.GetMostUsedCategory(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(second.CategoryID, most.CategoryID)
}

func (suite *ServicesTestSuite) TestGetCategoryTotals_SumsPayablesOfActiveCategories() {
	rent := suite.createCategory("Rent")
	utilities := suite.createCategory("Utilities")
	account := suite.createBankAccount("Checking", "500.00")

	suite.createObligation("March rent", "1000.00", rent.CategoryID, account.BankAccountID, domain.Payable)
	suite.createObligation("Electricity", "80.25", utilities.CategoryID, account.BankAccountID, domain.Payable)
	suite.createObligation("Water", "19.75", utilities.CategoryID, account.BankAccountID, domain.Payable)
	suite.createObligation("Refund", "500.00", utilities.CategoryID, account.BankAccountID, domain.Receivable)

	totals, err := suite.categories.GetCategoryTotals(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(totals, 2)
	suite.Equal("Rent", totals[0].Name)
	suite.assertMoney("1000.00", totals[0].TotalAmount)
	suite.Equal("Utilities", totals[1].Name)
	suite.assertMoney("100.00", totals[1].TotalAmount)
}

func (suite *ServicesTestSuite) TestCategoryReads() {
	suite.createCategory("Groceries")
	suite.createCategory("Utilities")
	inactive := suite.createCategory("Old utilities")
	_, err := suite.categories.ToggleCategoryActive(suite.ctx, inactive.CategoryID, suite.userID)
	suite.Require().NoError(err)

	page, err := suite.categories.ListCategories(suite.ctx, pagination.PageRequest{Size: 2})
	suite.Require().NoError(err)
	suite.Equal(int64(3), page.TotalItems)
	suite.Equal(2, page.TotalPages)
	suite.Require().Len(page.Items, 2)
	suite.Equal("Groceries", page.Items[0].Name)

	active, err := suite.categories.ListActiveCategories(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(active, 2)

	found, err := suite.categories.SearchCategories(suite.ctx, "UTIL")
	suite.Require().NoError(err)
	suite.Len(found, 2)

	_, err = suite.categories.SearchCategories(suite.ctx, " ")
	suite.ErrorIs(err, apperrors.ErrValidation)
}
