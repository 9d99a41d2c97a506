package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"fintrack/internal/domain/usecase/auth"
	budgetUseCase "fintrack/internal/domain/usecase/budget"
	cardUseCase "fintrack/internal/domain/usecase/card"
	goalUseCase "fintrack/internal/domain/usecase/goal"
	"fintrack/internal/domain/usecase/ledger"
	reportUseCase "fintrack/internal/domain/usecase/report"
	templateUseCase "fintrack/internal/domain/usecase/template"

	"fintrack/internal/infrastructure/adapter/api/handler"
	"fintrack/internal/infrastructure/adapter/api/routes"
	"fintrack/internal/infrastructure/adapter/database"
	"fintrack/internal/infrastructure/adapter/logger"
	timeProvider "fintrack/internal/infrastructure/adapter/time"
	"fintrack/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Logger, cfg.Environment == config.Production)
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	dbConfig := database.FromAppConfig(cfg)
	if err := dbConfig.Validate(); err != nil {
		appLogger.Error("Invalid database configuration", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer func() { _ = dbManager.Close() }()

	if err := dbManager.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	uow := dbManager.CreateUnitOfWork()

	pipeline := ledger.NewPipeline(uow, tp, appLogger)
	queries := ledger.NewQueries(uow, appLogger)
	balances := ledger.NewBalanceCalculator(uow)

	authService := auth.NewUseCase(uow.Users(context.Background()), tp, appLogger, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	cardService := cardUseCase.NewUseCase(uow, tp, appLogger)
	budgetService := budgetUseCase.NewUseCase(uow, tp, appLogger)
	goalService := goalUseCase.NewUseCase(uow, pipeline, tp, appLogger)
	templateService := templateUseCase.NewUseCase(uow, pipeline, tp, appLogger)
	reportService := reportUseCase.NewUseCase(uow, balances, tp, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, authService, routes.Handlers{
		Auth:        handler.NewAuthHandler(authService, appLogger),
		Card:        handler.NewCardHandler(cardService, appLogger),
		Transaction: handler.NewTransactionHandler(pipeline, queries, balances, appLogger),
		Budget:      handler.NewBudgetHandler(budgetService, appLogger),
		Goal:        handler.NewGoalHandler(goalService, appLogger),
		Template:    handler.NewTemplateHandler(templateService, appLogger),
		Report:      handler.NewReportHandler(reportService, appLogger),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
}
