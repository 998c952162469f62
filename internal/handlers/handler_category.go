package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payables_ledger/internal/core/ports/services"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/SscSPs/payables_ledger/internal/middleware"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// categoryHandler handles HTTP requests related to categories.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
	limits          pagination.Limits
}

// registerCategoryRoutes registers routes related to categories.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade, limits pagination.Limits) {
	h := &categoryHandler{categoryService: categoryService, limits: limits}

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.GET("/active", h.listActiveCategories)
		categories.GET("/search", h.searchCategories)
		categories.GET("/most-used", h.getMostUsedCategory)
		categories.GET("/totals", h.getCategoryTotals)
		categories.GET("/:id", h.getCategory)
		categories.PUT("/:id", h.updateCategory)
		categories.DELETE("/:id", h.deleteCategory)
		categories.PATCH("/:id/toggle-active", h.toggleCategoryActive)
	}
}

// createCategory godoc
// @Summary Create a category
// @Description Creates a category. Names are unique ignoring case.
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Name already in use"
// @Failure 500 {object} map[string]string "Failed to create category"
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req, actor(c))
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// listCategories godoc
// @Summary List categories
// @Description Lists categories a page at a time
// @Tags categories
// @Produce  json
// @Param   page query int false "Zero-based page index"
// @Param   size query int false "Page size"
// @Param   sort query string false "Sort field (name, createdAt)"
// @Param   order query string false "ASC or DESC"
// @Success 200 {object} pagination.Page[dto.CategoryResponse]
// @Failure 400 {object} map[string]string "Invalid paging parameters"
// @Failure 500 {object} map[string]string "Failed to list categories"
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	page, err := pageRequest(c, portsrepo.CategorySort, h.limits)
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}

	result, err := h.categoryService.ListCategories(c.Request.Context(), page)
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}

	c.JSON(http.StatusOK, pagination.MapPage(result, func(cat domain.Category) dto.CategoryResponse {
		return dto.ToCategoryResponse(&cat)
	}))
}

// listActiveCategories godoc
// @Summary List active categories
// @Tags categories
// @Produce  json
// @Success 200 {array} dto.CategoryResponse
// @Failure 500 {object} map[string]string "Failed to list categories"
// @Security BearerAuth
// @Router /categories/active [get]
func (h *categoryHandler) listActiveCategories(c *gin.Context) {
	categories, err := h.categoryService.ListActiveCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}

// searchCategories godoc
// @Summary Search categories by name
// @Description Case-insensitive substring match on the category name
// @Tags categories
// @Produce  json
// @Param   name query string true "Name fragment"
// @Success 200 {array} dto.CategoryResponse
// @Failure 400 {object} map[string]string "Missing search term"
// @Security BearerAuth
// @Router /categories/search [get]
func (h *categoryHandler) searchCategories(c *gin.Context) {
	categories, err := h.categoryService.SearchCategories(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err, "Failed to search categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}

// getMostUsedCategory godoc
// @Summary Get the most used category
// @Description Returns the category referenced by the most obligations
// @Tags categories
// @Produce  json
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} map[string]string "No obligations yet"
// @Security BearerAuth
// @Router /categories/most-used [get]
func (h *categoryHandler) getMostUsedCategory(c *gin.Context) {
	category, err := h.categoryService.GetMostUsedCategory(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get most used category")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// getCategoryTotals godoc
// @Summary Payable totals per category
// @Description Sums payable obligation amounts for every active category
// @Tags categories
// @Produce  json
// @Success 200 {array} dto.CategoryTotalResponse
// @Security BearerAuth
// @Router /categories/totals [get]
func (h *categoryHandler) getCategoryTotals(c *gin.Context) {
	totals, err := h.categoryService.GetCategoryTotals(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to total categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryTotalResponses(totals))
}

// getCategory godoc
// @Summary Get a category by ID
// @Tags categories
// @Produce  json
// @Param   id path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} map[string]string "Category not found"
// @Security BearerAuth
// @Router /categories/{id} [get]
func (h *categoryHandler) getCategory(c *gin.Context) {
	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve category")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// updateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   id path string true "Category ID"
// @Param   category body dto.UpdateCategoryRequest true "Category details"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 409 {object} map[string]string "Name already in use"
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("id"), req, actor(c))
	if err != nil {
		respondError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// toggleCategoryActive godoc
// @Summary Activate or deactivate a category
// @Description Flips the active flag. Deactivation is refused while pending obligations use the category.
// @Tags categories
// @Produce  json
// @Param   id path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 409 {object} map[string]string "Pending obligations reference the category"
// @Security BearerAuth
// @Router /categories/{id}/toggle-active [patch]
func (h *categoryHandler) toggleCategoryActive(c *gin.Context) {
	category, err := h.categoryService.ToggleCategoryActive(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		respondError(c, err, "Failed to toggle category")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Refused while any obligation references the category
// @Tags categories
// @Param   id path string true "Category ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 409 {object} map[string]string "Category in use"
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	categoryID := c.Param("id")
	if err := h.categoryService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Category deleted", slog.String("category_id", categoryID))
	c.Status(http.StatusNoContent)
}
