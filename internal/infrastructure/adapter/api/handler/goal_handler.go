package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainerr "fintrack/internal/domain/error"
	coreport "fintrack/internal/domain/port/core"
	goalUseCase "fintrack/internal/domain/usecase/goal"
	"fintrack/internal/infrastructure/adapter/api/dto"
	"fintrack/internal/infrastructure/adapter/api/middleware"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService *goalUseCase.UseCase
	logger      coreport.Logger
}

// NewGoalHandler creates a new goal handler instance
func NewGoalHandler(goalService *goalUseCase.UseCase, logger coreport.Logger) *GoalHandler {
	return &GoalHandler{goalService: goalService, logger: logger}
}

func parseGoalID(c *gin.Context) (uint64, bool) {
	goalID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid goal ID format",
		})
		return 0, false
	}
	return goalID, true
}

// List handles GET /api/goals
func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.goalService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGoalListResponse(goals))
}

// Create handles POST /api/goals
func (h *GoalHandler) Create(c *gin.Context) {
	var req dto.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	var deadline *time.Time
	if req.Deadline != "" {
		t, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrValidation),
				Message: "deadline must be RFC3339",
			})
			return
		}
		deadline = &t
	}

	g, err := h.goalService.Create(c.Request.Context(), middleware.UserID(c), req.Title, req.Target, deadline)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewGoalResponse(&goalUseCase.GoalWithProgress{Goal: *g}))
}

// Update handles PUT /api/goals/:id
func (h *GoalHandler) Update(c *gin.Context) {
	goalID, ok := parseGoalID(c)
	if !ok {
		return
	}

	var req dto.GoalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	update := goalUseCase.UpdateRequest{
		Title:         req.Title,
		Target:        req.Target,
		ClearDeadline: req.ClearDeadline,
	}
	if req.Deadline != nil && *req.Deadline != "" {
		t, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrValidation),
				Message: "deadline must be RFC3339",
			})
			return
		}
		update.Deadline = &t
	}

	g, err := h.goalService.Update(c.Request.Context(), middleware.UserID(c), goalID, update)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGoalResponse(&goalUseCase.GoalWithProgress{Goal: *g}))
}

// Contribute handles POST /api/goals/:id/contribute
func (h *GoalHandler) Contribute(c *gin.Context) {
	goalID, ok := parseGoalID(c)
	if !ok {
		return
	}

	var req dto.ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	contribution, err := h.goalService.Contribute(c.Request.Context(), middleware.UserID(c), goalID, goalUseCase.ContributeRequest{
		Amount:      req.Amount,
		CreateTx:    req.CreateTx,
		CardUID:     req.CardUID,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewContributionResponse(contribution))
}

// Delete handles DELETE /api/goals/:id. Contributions and their linked
// transactions are reversed in the same unit of work.
func (h *GoalHandler) Delete(c *gin.Context) {
	goalID, ok := parseGoalID(c)
	if !ok {
		return
	}

	if err := h.goalService.Delete(c.Request.Context(), middleware.UserID(c), goalID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteContribution handles DELETE /api/goals/:id/contributions/:contributionId
func (h *GoalHandler) DeleteContribution(c *gin.Context) {
	goalID, ok := parseGoalID(c)
	if !ok {
		return
	}

	contributionID, err := strconv.ParseUint(c.Param("contributionId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid contribution ID format",
		})
		return
	}

	if err := h.goalService.DeleteContribution(c.Request.Context(), middleware.UserID(c), goalID, contributionID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
