package handlers

import (
	"net/http"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payables_ledger/internal/core/ports/services"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// bankAccountHandler handles HTTP requests related to bank accounts.
type bankAccountHandler struct {
	bankAccountService portssvc.BankAccountSvcFacade
	limits             pagination.Limits
}

// registerBankAccountRoutes registers routes related to bank accounts.
func registerBankAccountRoutes(rg *gin.RouterGroup, bankAccountService portssvc.BankAccountSvcFacade, limits pagination.Limits) {
	h := &bankAccountHandler{bankAccountService: bankAccountService, limits: limits}

	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("", h.createBankAccount)
		accounts.GET("", h.listBankAccounts)
		accounts.GET("/active", h.listActiveBankAccounts)
		accounts.GET("/search", h.searchBankAccounts)
		accounts.GET("/total-balance", h.getTotalBalance)
		accounts.GET("/:id", h.getBankAccount)
		accounts.PUT("/:id", h.updateBankAccount)
		accounts.DELETE("/:id", h.deleteBankAccount)
		accounts.PATCH("/:id/balance", h.setBalance)
		accounts.PATCH("/:id/toggle-active", h.toggleBankAccountActive)
	}
}

// createBankAccount godoc
// @Summary Create a bank account
// @Tags bank-accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid input or negative balance"
// @Failure 409 {object} map[string]string "Name already in use"
// @Security BearerAuth
// @Router /bank-accounts [post]
func (h *bankAccountHandler) createBankAccount(c *gin.Context) {
	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.bankAccountService.CreateBankAccount(c.Request.Context(), req, actor(c))
	if err != nil {
		respondError(c, err, "Failed to create bank account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Tags bank-accounts
// @Produce  json
// @Param   page query int false "Zero-based page index"
// @Param   size query int false "Page size"
// @Param   sort query string false "Sort field (name, bank, currentBalance, createdAt)"
// @Param   order query string false "ASC or DESC"
// @Success 200 {object} pagination.Page[dto.BankAccountResponse]
// @Failure 400 {object} map[string]string "Invalid paging parameters"
// @Security BearerAuth
// @Router /bank-accounts [get]
func (h *bankAccountHandler) listBankAccounts(c *gin.Context) {
	page, err := pageRequest(c, portsrepo.BankAccountSort, h.limits)
	if err != nil {
		respondError(c, err, "Failed to list bank accounts")
		return
	}

	result, err := h.bankAccountService.ListBankAccounts(c.Request.Context(), page)
	if err != nil {
		respondError(c, err, "Failed to list bank accounts")
		return
	}
	c.JSON(http.StatusOK, pagination.MapPage(result, func(b domain.BankAccount) dto.BankAccountResponse {
		return dto.ToBankAccountResponse(&b)
	}))
}

// listActiveBankAccounts godoc
// @Summary List active bank accounts
// @Tags bank-accounts
// @Produce  json
// @Success 200 {array} dto.BankAccountResponse
// @Security BearerAuth
// @Router /bank-accounts/active [get]
func (h *bankAccountHandler) listActiveBankAccounts(c *gin.Context) {
	accounts, err := h.bankAccountService.ListActiveBankAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list bank accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBankAccountResponse(accounts))
}

// searchBankAccounts godoc
// @Summary Search bank accounts by bank
// @Tags bank-accounts
// @Produce  json
// @Param   bank query string true "Bank label fragment"
// @Success 200 {array} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Missing search term"
// @Security BearerAuth
// @Router /bank-accounts/search [get]
func (h *bankAccountHandler) searchBankAccounts(c *gin.Context) {
	accounts, err := h.bankAccountService.SearchBankAccountsByBank(c.Request.Context(), c.Query("bank"))
	if err != nil {
		respondError(c, err, "Failed to search bank accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBankAccountResponse(accounts))
}

// getTotalBalance godoc
// @Summary Total balance of active accounts
// @Tags bank-accounts
// @Produce  json
// @Success 200 {object} dto.TotalBalanceResponse
// @Security BearerAuth
// @Router /bank-accounts/total-balance [get]
func (h *bankAccountHandler) getTotalBalance(c *gin.Context) {
	total, err := h.bankAccountService.GetTotalActiveBalance(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to total balances")
		return
	}
	c.JSON(http.StatusOK, dto.TotalBalanceResponse{TotalBalance: total})
}

// getBankAccount godoc
// @Summary Get a bank account by ID
// @Tags bank-accounts
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /bank-accounts/{id} [get]
func (h *bankAccountHandler) getBankAccount(c *gin.Context) {
	account, err := h.bankAccountService.GetBankAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve bank account")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// updateBankAccount godoc
// @Summary Update a bank account
// @Description Overwrites name, bank and balance
// @Tags bank-accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Param   account body dto.UpdateBankAccountRequest true "Bank account details"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Failure 409 {object} map[string]string "Name already in use"
// @Security BearerAuth
// @Router /bank-accounts/{id} [put]
func (h *bankAccountHandler) updateBankAccount(c *gin.Context) {
	var req dto.UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.bankAccountService.UpdateBankAccount(c.Request.Context(), c.Param("id"), req, actor(c))
	if err != nil {
		respondError(c, err, "Failed to update bank account")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// setBalance godoc
// @Summary Set a bank account balance
// @Tags bank-accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Param   balance body dto.UpdateBalanceRequest true "New balance"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Negative balance"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /bank-accounts/{id}/balance [patch]
func (h *bankAccountHandler) setBalance(c *gin.Context) {
	var req dto.UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.bankAccountService.SetBalance(c.Request.Context(), c.Param("id"), req.Balance, actor(c))
	if err != nil {
		respondError(c, err, "Failed to set balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// toggleBankAccountActive godoc
// @Summary Activate or deactivate a bank account
// @Tags bank-accounts
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]string "Bank account not found"
// @Failure 409 {object} map[string]string "Pending obligations reference the account"
// @Security BearerAuth
// @Router /bank-accounts/{id}/toggle-active [patch]
func (h *bankAccountHandler) toggleBankAccountActive(c *gin.Context) {
	account, err := h.bankAccountService.ToggleBankAccountActive(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		respondError(c, err, "Failed to toggle bank account")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// deleteBankAccount godoc
// @Summary Delete a bank account
// @Description Refused while obligations or journal entries reference the account
// @Tags bank-accounts
// @Param   id path string true "Bank account ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Bank account not found"
// @Failure 409 {object} map[string]string "Bank account in use"
// @Security BearerAuth
// @Router /bank-accounts/{id} [delete]
func (h *bankAccountHandler) deleteBankAccount(c *gin.Context) {
	if err := h.bankAccountService.DeleteBankAccount(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete bank account")
		return
	}
	c.Status(http.StatusNoContent)
}
