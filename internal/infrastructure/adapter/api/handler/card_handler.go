package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "fintrack/internal/domain/error"
	coreport "fintrack/internal/domain/port/core"
	cardUseCase "fintrack/internal/domain/usecase/card"
	"fintrack/internal/infrastructure/adapter/api/dto"
	"fintrack/internal/infrastructure/adapter/api/middleware"
)

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cardService *cardUseCase.UseCase
	logger      coreport.Logger
}

// NewCardHandler creates a new card handler instance
func NewCardHandler(cardService *cardUseCase.UseCase, logger coreport.Logger) *CardHandler {
	return &CardHandler{cardService: cardService, logger: logger}
}

// List handles GET /api/cards
func (h *CardHandler) List(c *gin.Context) {
	cards, err := h.cardService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCardListResponse(cards))
}

// MockLink handles POST /api/cards/mock-link
func (h *CardHandler) MockLink(c *gin.Context) {
	var req dto.MockLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	card, err := h.cardService.MockLink(c.Request.Context(), middleware.UserID(c), cardUseCase.MockLinkRequest{
		Last4:       req.Last4,
		Nickname:    req.Nickname,
		Currency:    req.Currency,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCardResponse(card, "0.00"))
}

// Delete handles DELETE /api/cards/:cardUid. The force query flag also
// removes the card's transactions; without it a card with history is
// refused.
func (h *CardHandler) Delete(c *gin.Context) {
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))

	err := h.cardService.Delete(c.Request.Context(), middleware.UserID(c), c.Param("cardUid"), force)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Transactions handles GET /api/cards/:cardUid/transactions
func (h *CardHandler) Transactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	txs, err := h.cardService.Transactions(c.Request.Context(), middleware.UserID(c), c.Param("cardUid"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, dto.NewTransactionResponse(&txs[i], c.Param("cardUid"), ""))
	}
	c.JSON(http.StatusOK, out)
}
