package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerr "fintrack/internal/domain/error"
	"fintrack/internal/domain/usecase/auth"
	"fintrack/internal/infrastructure/adapter/api/dto"
)

// UserIDKey is the gin context key the authenticated user id is stored
// under
const UserIDKey = "userID"

// Auth middleware validates the Bearer token and stores the user id in
// the request context. Handlers never see the token itself.
func Auth(authUseCase *auth.UseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		claims, err := authUseCase.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID extracts the authenticated user id set by the Auth middleware
func UserID(c *gin.Context) uint64 {
	id, _ := c.Get(UserIDKey)
	userID, _ := id.(uint64)
	return userID
}
