package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainerr "fintrack/internal/domain/error"
	coreport "fintrack/internal/domain/port/core"
	"fintrack/internal/domain/port/persistence"
	"fintrack/internal/domain/usecase/ledger"
	"fintrack/internal/infrastructure/adapter/api/dto"
	"fintrack/internal/infrastructure/adapter/api/middleware"
)

// TransactionHandler handles ledger-related HTTP requests
type TransactionHandler struct {
	pipeline *ledger.Pipeline
	queries  *ledger.Queries
	balances *ledger.BalanceCalculator
	logger   coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(
	pipeline *ledger.Pipeline,
	queries *ledger.Queries,
	balances *ledger.BalanceCalculator,
	logger coreport.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		pipeline: pipeline,
		queries:  queries,
		balances: balances,
		logger:   logger,
	}
}

// Create handles POST /api/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	var occurredAt *time.Time
	if req.OccurredAt != "" {
		t, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrValidation),
				Message: "occurredAt must be RFC3339",
			})
			return
		}
		occurredAt = &t
	}

	txn, err := h.pipeline.Admit(c.Request.Context(), middleware.UserID(c), ledger.AdmitRequest{
		CardUID:     req.CardUID,
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		OccurredAt:  occurredAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTransactionResponse(txn, req.CardUID, ""))
}

// List handles GET /api/transactions with optional type, category, from,
// to and limit filters
func (h *TransactionHandler) List(c *gin.Context) {
	filter := persistence.ListFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrValidation),
				Message: "from must be RFC3339",
			})
			return
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrValidation),
				Message: "to must be RFC3339",
			})
			return
		}
		filter.To = &t
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))

	views, err := h.queries.List(c.Request.Context(), middleware.UserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionListResponse(views))
}

// Delete handles DELETE /api/transactions/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	txID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid transaction ID format",
		})
		return
	}

	if err := h.queries.Delete(c.Request.Context(), middleware.UserID(c), txID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// BalanceSummary handles GET /api/balance-summary
func (h *TransactionHandler) BalanceSummary(c *gin.Context) {
	summary, err := h.balances.Summary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBalanceSummaryResponse(summary))
}
