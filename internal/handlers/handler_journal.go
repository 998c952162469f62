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

// journalHandler serves the read-only transaction journal.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	limits         pagination.Limits
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, limits pagination.Limits) {
	h := &journalHandler{journalService: journalService, limits: limits}

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listEntries)
		transactions.GET("/bank-account/:id", h.listEntriesByBankAccount)
		transactions.GET("/direction/:direction", h.listEntriesByDirection)
		transactions.GET("/period", h.listEntriesByPeriod)
		transactions.GET("/obligation/:id", h.listEntriesByObligation)
		transactions.GET("/:id", h.getEntry)
	}
}

func (h *journalHandler) respondPage(c *gin.Context, result pagination.Page[domain.JournalEntry]) {
	c.JSON(http.StatusOK, pagination.MapPage(result, func(e domain.JournalEntry) dto.JournalEntryResponse {
		return dto.ToJournalEntryResponse(&e)
	}))
}

// listEntries godoc
// @Summary List journal entries
// @Tags transactions
// @Produce  json
// @Param   page query int false "Zero-based page index"
// @Param   size query int false "Page size"
// @Param   sort query string false "Sort field (transactionDate, amount)"
// @Param   order query string false "ASC or DESC"
// @Success 200 {object} pagination.Page[dto.JournalEntryResponse]
// @Security BearerAuth
// @Router /transactions [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	page, err := pageRequest(c, portsrepo.JournalSort, h.limits)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	result, err := h.journalService.ListEntries(c.Request.Context(), page)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	h.respondPage(c, result)
}

// listEntriesByBankAccount godoc
// @Summary List journal entries of a bank account
// @Description Newest first by default
// @Tags transactions
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Success 200 {object} pagination.Page[dto.JournalEntryResponse]
// @Failure 404 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /transactions/bank-account/{id} [get]
func (h *journalHandler) listEntriesByBankAccount(c *gin.Context) {
	page, err := pageRequest(c, portsrepo.JournalSort, h.limits)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	result, err := h.journalService.ListEntriesByBankAccount(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	h.respondPage(c, result)
}

// listEntriesByDirection godoc
// @Summary List journal entries of a direction
// @Tags transactions
// @Produce  json
// @Param   direction path string true "PAYABLE or RECEIVABLE"
// @Success 200 {object} pagination.Page[dto.JournalEntryResponse]
// @Failure 400 {object} map[string]string "Unknown direction"
// @Security BearerAuth
// @Router /transactions/direction/{direction} [get]
func (h *journalHandler) listEntriesByDirection(c *gin.Context) {
	direction, err := domain.ParseDirection(c.Param("direction"))
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	page, err := pageRequest(c, portsrepo.JournalSort, h.limits)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	result, err := h.journalService.ListEntriesByDirection(c.Request.Context(), direction, page)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	h.respondPage(c, result)
}

// listEntriesByPeriod godoc
// @Summary List journal entries in a period
// @Description Bounds are inclusive. A bare end date covers the whole day.
// @Tags transactions
// @Produce  json
// @Param   start query string true "YYYY-MM-DD or RFC 3339"
// @Param   end query string true "YYYY-MM-DD or RFC 3339"
// @Success 200 {object} pagination.Page[dto.JournalEntryResponse]
// @Failure 400 {object} map[string]string "Invalid period"
// @Security BearerAuth
// @Router /transactions/period [get]
func (h *journalHandler) listEntriesByPeriod(c *gin.Context) {
	start, err := requiredInstant(c, "start", false)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	end, err := requiredInstant(c, "end", true)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	page, err := pageRequest(c, portsrepo.JournalSort, h.limits)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	result, err := h.journalService.ListEntriesByPeriod(c.Request.Context(), start, end, page)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	h.respondPage(c, result)
}

// listEntriesByObligation godoc
// @Summary List journal entries of an obligation
// @Tags transactions
// @Produce  json
// @Param   id path string true "Obligation ID"
// @Success 200 {array} dto.JournalEntryResponse
// @Security BearerAuth
// @Router /transactions/obligation/{id} [get]
func (h *journalHandler) listEntriesByObligation(c *gin.Context) {
	entries, err := h.journalService.ListEntriesByObligation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Tags transactions
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.journalService.GetEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
