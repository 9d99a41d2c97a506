package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "fintrack/internal/domain/error"
	"fintrack/internal/infrastructure/adapter/api/dto"
)

// respondError maps a domain error to its HTTP status and writes the
// standardized error body. Rejections carry their detail message; store
// failures are masked behind a generic 500.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// statusFor chooses the HTTP status for a domain error
func statusFor(err error) int {
	switch {
	case domainerr.IsValidationError(err),
		domainerr.IsInsufficientFundsError(err),
		errors.Is(err, domainerr.ErrCardHasTransactions):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case domainerr.IsConflictError(err), errors.Is(err, domainerr.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
