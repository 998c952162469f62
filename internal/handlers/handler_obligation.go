package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payables_ledger/internal/core/ports/services"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/SscSPs/payables_ledger/internal/middleware"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// obligationHandler handles HTTP requests related to obligations and their settlement.
type obligationHandler struct {
	obligationService portssvc.ObligationSvcFacade
	settlementService portssvc.SettlementSvc
	limits            pagination.Limits
	now               func() time.Time
}

// registerObligationRoutes registers routes related to obligations.
func registerObligationRoutes(rg *gin.RouterGroup, obligationService portssvc.ObligationSvcFacade, settlementService portssvc.SettlementSvc, limits pagination.Limits) {
	h := &obligationHandler{
		obligationService: obligationService,
		settlementService: settlementService,
		limits:            limits,
		now:               utcNow,
	}

	obligations := rg.Group("/obligations")
	{
		obligations.POST("", h.createObligation)
		obligations.GET("", h.listObligations)
		obligations.GET("/status/:status", h.listObligationsByStatus)
		obligations.GET("/overdue", h.listOverdueObligations)
		obligations.GET("/due", h.listObligationsDueBetween)
		obligations.GET("/totals/:direction", h.getTotalByDirection)
		obligations.POST("/pay", h.payObligation)
		obligations.GET("/:id", h.getObligation)
		obligations.PUT("/:id", h.updateObligation)
		obligations.DELETE("/:id", h.deleteObligation)
	}
}

func (h *obligationHandler) respond(c *gin.Context, status int, o *domain.Obligation) {
	c.JSON(status, dto.ToObligationResponse(o, h.now()))
}

func (h *obligationHandler) respondPage(c *gin.Context, result pagination.Page[domain.Obligation]) {
	asOf := h.now()
	c.JSON(http.StatusOK, pagination.MapPage(result, func(o domain.Obligation) dto.ObligationResponse {
		return dto.ToObligationResponse(&o, asOf)
	}))
}

// createObligation godoc
// @Summary Register an obligation
// @Description Creates a pending payable or receivable. The expiration date must be after today.
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   obligation body dto.CreateObligationRequest true "Obligation details"
// @Success 201 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Category or bank account not found"
// @Failure 409 {object} map[string]string "Category or bank account inactive"
// @Security BearerAuth
// @Router /obligations [post]
func (h *obligationHandler) createObligation(c *gin.Context) {
	var req dto.CreateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	obligation, err := h.obligationService.CreateObligation(c.Request.Context(), req, actor(c))
	if err != nil {
		respondError(c, err, "Failed to create obligation")
		return
	}
	h.respond(c, http.StatusCreated, obligation)
}

// listObligations godoc
// @Summary List obligations
// @Tags obligations
// @Produce  json
// @Param   page query int false "Zero-based page index"
// @Param   size query int false "Page size"
// @Param   sort query string false "Sort field (expirationDate, amount, description, status, createdAt)"
// @Param   order query string false "ASC or DESC"
// @Success 200 {object} pagination.Page[dto.ObligationResponse]
// @Failure 400 {object} map[string]string "Invalid paging parameters"
// @Security BearerAuth
// @Router /obligations [get]
func (h *obligationHandler) listObligations(c *gin.Context) {
	page, err := pageRequest(c, portsrepo.ObligationSort, h.limits)
	if err != nil {
		respondError(c, err, "Failed to list obligations")
		return
	}

	result, err := h.obligationService.ListObligations(c.Request.Context(), page)
	if err != nil {
		respondError(c, err, "Failed to list obligations")
		return
	}
	h.respondPage(c, result)
}

// listObligationsByStatus godoc
// @Summary List obligations by status
// @Tags obligations
// @Produce  json
// @Param   status path string true "PENDING or PAID"
// @Success 200 {object} pagination.Page[dto.ObligationResponse]
// @Failure 400 {object} map[string]string "Unknown status"
// @Security BearerAuth
// @Router /obligations/status/{status} [get]
func (h *obligationHandler) listObligationsByStatus(c *gin.Context) {
	status, err := domain.ParseStatus(c.Param("status"))
	if err != nil {
		respondError(c, err, "Failed to list obligations")
		return
	}
	page, err := pageRequest(c, portsrepo.ObligationSort, h.limits)
	if err != nil {
		respondError(c, err, "Failed to list obligations")
		return
	}

	result, err := h.obligationService.ListObligationsByStatus(c.Request.Context(), status, page)
	if err != nil {
		respondError(c, err, "Failed to list obligations")
		return
	}
	h.respondPage(c, result)
}

// listOverdueObligations godoc
// @Summary List overdue obligations
// @Description Pending obligations whose expiration date is before today
// @Tags obligations
// @Produce  json
// @Success 200 {object} pagination.Page[dto.ObligationResponse]
// @Security BearerAuth
// @Router /obligations/overdue [get]
func (h *obligationHandler) listOverdueObligations(c *gin.Context) {
	page, err := pageRequest(c, portsrepo.ObligationSort, h.limits)
	if err != nil {
		respondError(c, err, "Failed to list overdue obligations")
		return
	}

	result, err := h.obligationService.ListOverdueObligations(c.Request.Context(), page)
	if err != nil {
		respondError(c, err, "Failed to list overdue obligations")
		return
	}
	h.respondPage(c, result)
}

// listObligationsDueBetween godoc
// @Summary List obligations expiring in a date range
// @Tags obligations
// @Produce  json
// @Param   start query string true "First date, YYYY-MM-DD"
// @Param   end query string true "Last date, YYYY-MM-DD"
// @Param   direction query string false "PAYABLE or RECEIVABLE"
// @Success 200 {object} pagination.Page[dto.ObligationResponse]
// @Failure 400 {object} map[string]string "Invalid dates or direction"
// @Security BearerAuth
// @Router /obligations/due [get]
func (h *obligationHandler) listObligationsDueBetween(c *gin.Context) {
	start, err := requiredDate(c, "start")
	if err != nil {
		respondError(c, err, "Failed to list obligations")
		return
	}
	end, err := requiredDate(c, "end")
	if err != nil {
		respondError(c, err, "Failed to list obligations")
		return
	}
	direction, err := optionalDirection(c, "direction")
	if err != nil {
		respondError(c, err, "Failed to list obligations")
		return
	}
	page, err := pageRequest(c, portsrepo.ObligationSort, h.limits)
	if err != nil {
		respondError(c, err, "Failed to list obligations")
		return
	}

	result, err := h.obligationService.ListObligationsDueBetween(c.Request.Context(), start, end, direction, page)
	if err != nil {
		respondError(c, err, "Failed to list obligations")
		return
	}
	h.respondPage(c, result)
}

// getTotalByDirection godoc
// @Summary Total obligation amount for a direction
// @Tags obligations
// @Produce  json
// @Param   direction path string true "PAYABLE or RECEIVABLE"
// @Success 200 {object} dto.DirectionTotalResponse
// @Failure 400 {object} map[string]string "Unknown direction"
// @Security BearerAuth
// @Router /obligations/totals/{direction} [get]
func (h *obligationHandler) getTotalByDirection(c *gin.Context) {
	direction, err := domain.ParseDirection(c.Param("direction"))
	if err != nil {
		respondError(c, err, "Failed to total obligations")
		return
	}

	total, err := h.obligationService.GetTotalAmountByDirection(c.Request.Context(), direction)
	if err != nil {
		respondError(c, err, "Failed to total obligations")
		return
	}
	c.JSON(http.StatusOK, dto.DirectionTotalResponse{Direction: direction, TotalAmount: total})
}

// payObligation godoc
// @Summary Settle an obligation
// @Description Marks the obligation paid, debits the bank account by its amount and records a journal entry, atomically.
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   payment body dto.PayObligationRequest true "Settlement request"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Obligation or bank account not found"
// @Failure 409 {object} map[string]string "Obligation already paid"
// @Security BearerAuth
// @Router /obligations/pay [post]
func (h *obligationHandler) payObligation(c *gin.Context) {
	var req dto.PayObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	obligation, err := h.settlementService.PayObligation(c.Request.Context(), req, actor(c))
	if err != nil {
		respondError(c, err, "Failed to pay obligation")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Obligation paid",
		slog.String("obligation_id", obligation.ObligationID),
		slog.String("bank_account_id", req.BankAccountID))
	h.respond(c, http.StatusOK, obligation)
}

// getObligation godoc
// @Summary Get an obligation by ID
// @Tags obligations
// @Produce  json
// @Param   id path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 404 {object} map[string]string "Obligation not found"
// @Security BearerAuth
// @Router /obligations/{id} [get]
func (h *obligationHandler) getObligation(c *gin.Context) {
	obligation, err := h.obligationService.GetObligationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve obligation")
		return
	}
	h.respond(c, http.StatusOK, obligation)
}

// updateObligation godoc
// @Summary Update a pending obligation
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   id path string true "Obligation ID"
// @Param   obligation body dto.UpdateObligationRequest true "Obligation details"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 409 {object} map[string]string "Obligation already paid"
// @Security BearerAuth
// @Router /obligations/{id} [put]
func (h *obligationHandler) updateObligation(c *gin.Context) {
	var req dto.UpdateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	obligation, err := h.obligationService.UpdateObligation(c.Request.Context(), c.Param("id"), req, actor(c))
	if err != nil {
		respondError(c, err, "Failed to update obligation")
		return
	}
	h.respond(c, http.StatusOK, obligation)
}

// deleteObligation godoc
// @Summary Delete an obligation
// @Description Journal entries produced by its settlement are kept
// @Tags obligations
// @Param   id path string true "Obligation ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Obligation not found"
// @Security BearerAuth
// @Router /obligations/{id} [delete]
func (h *obligationHandler) deleteObligation(c *gin.Context) {
	if err := h.obligationService.DeleteObligation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete obligation")
		return
	}
	c.Status(http.StatusNoContent)
}
