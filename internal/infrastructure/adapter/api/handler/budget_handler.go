package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "fintrack/internal/domain/error"
	coreport "fintrack/internal/domain/port/core"
	budgetUseCase "fintrack/internal/domain/usecase/budget"
	"fintrack/internal/infrastructure/adapter/api/dto"
	"fintrack/internal/infrastructure/adapter/api/middleware"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *budgetUseCase.UseCase
	logger        coreport.Logger
}

// NewBudgetHandler creates a new budget handler instance
func NewBudgetHandler(budgetService *budgetUseCase.UseCase, logger coreport.Logger) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, logger: logger}
}

// List handles GET /api/budgets
func (h *BudgetHandler) List(c *gin.Context) {
	budgets, err := h.budgetService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBudgetListResponse(budgets))
}

// Create handles POST /api/budgets
func (h *BudgetHandler) Create(c *gin.Context) {
	var req dto.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	b, err := h.budgetService.Create(c.Request.Context(), middleware.UserID(c), req.Category, req.Limit, req.Period)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewBudgetResponse(&budgetUseCase.BudgetWithSpend{Budget: *b}))
}

// Update handles PUT /api/budgets/:id
func (h *BudgetHandler) Update(c *gin.Context) {
	budgetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid budget ID format",
		})
		return
	}

	var req dto.BudgetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	b, err := h.budgetService.Update(c.Request.Context(), middleware.UserID(c), budgetID, budgetUseCase.UpdateRequest{
		Category: req.Category,
		Limit:    req.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBudgetResponse(&budgetUseCase.BudgetWithSpend{Budget: *b}))
}

// Delete handles DELETE /api/budgets/:id
func (h *BudgetHandler) Delete(c *gin.Context) {
	budgetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid budget ID format",
		})
		return
	}

	if err := h.budgetService.Delete(c.Request.Context(), middleware.UserID(c), budgetID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
