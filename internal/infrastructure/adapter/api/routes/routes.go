package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "fintrack/internal/domain/port/core"
	"fintrack/internal/domain/usecase/auth"
	"fintrack/internal/infrastructure/adapter/api/handler"
	"fintrack/internal/infrastructure/adapter/api/middleware"
)

// Handlers bundles all API handlers for route registration
type Handlers struct {
	Auth        *handler.AuthHandler
	Card        *handler.CardHandler
	Transaction *handler.TransactionHandler
	Budget      *handler.BudgetHandler
	Goal        *handler.GoalHandler
	Template    *handler.TemplateHandler
	Report      *handler.ReportHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, authUseCase *auth.UseCase, h Handlers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.Auth.Register)
		authRoutes.POST("/login", h.Auth.Login)
		authRoutes.GET("/me", middleware.Auth(authUseCase), h.Auth.Me)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(authUseCase))
	{
		protected.GET("/cards", h.Card.List)
		protected.POST("/cards/mock-link", h.Card.MockLink)
		protected.DELETE("/cards/:cardUid", h.Card.Delete)
		protected.GET("/cards/:cardUid/transactions", h.Card.Transactions)

		protected.GET("/balance-summary", h.Transaction.BalanceSummary)
		protected.POST("/transactions", h.Transaction.Create)
		protected.GET("/transactions", h.Transaction.List)
		protected.DELETE("/transactions/:id", h.Transaction.Delete)

		protected.GET("/budgets", h.Budget.List)
		protected.POST("/budgets", h.Budget.Create)
		protected.PATCH("/budgets/:id", h.Budget.Update)
		protected.DELETE("/budgets/:id", h.Budget.Delete)

		protected.GET("/goals", h.Goal.List)
		protected.POST("/goals", h.Goal.Create)
		protected.PATCH("/goals/:id", h.Goal.Update)
		protected.DELETE("/goals/:id", h.Goal.Delete)
		protected.POST("/goals/:id/contribute", h.Goal.Contribute)
		protected.DELETE("/goals/:id/contributions/:contributionId", h.Goal.DeleteContribution)

		protected.GET("/tx-templates", h.Template.List)
		protected.POST("/tx-templates", h.Template.Create)
		protected.POST("/tx-templates/:id/use", h.Template.Use)
		protected.DELETE("/tx-templates/:id", h.Template.Delete)

		protected.GET("/alerts", h.Report.Alerts)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
