package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	coreport "fintrack/internal/domain/port/core"
	"fintrack/internal/domain/port/persistence"
	"fintrack/internal/infrastructure/adapter/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern over a GORM connection.
// Begin stores the transaction handle in the context; the repository
// getters bind to it, or to the base connection when the context carries
// none. Row locks taken inside the transaction (the pool anchors) are
// held until Commit or Rollback.
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Begin starts a new database transaction
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	u.logger.Debug("Beginning database transaction", nil)

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the current transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Committing database transaction", nil)
	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Rollback rolls back the current transaction. A transaction that was
// already finished is treated as a no-op so deferred rollbacks stay safe.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Rolling back database transaction", nil)

	err := tx.Rollback().Error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		return nil
	}
	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// Users returns a user repository bound to the current transaction
func (u *UnitOfWork) Users(ctx context.Context) persistence.UserRepository {
	return repository.NewUserRepository(u.dbFromContext(ctx), u.logger)
}

// Cards returns a card repository bound to the current transaction
func (u *UnitOfWork) Cards(ctx context.Context) persistence.CardRepository {
	return repository.NewCardRepository(u.dbFromContext(ctx), u.logger)
}

// Ledger returns a ledger repository bound to the current transaction
func (u *UnitOfWork) Ledger(ctx context.Context) persistence.LedgerRepository {
	return repository.NewLedgerRepository(u.dbFromContext(ctx), u.logger)
}

// Budgets returns a budget repository bound to the current transaction
func (u *UnitOfWork) Budgets(ctx context.Context) persistence.BudgetRepository {
	return repository.NewBudgetRepository(u.dbFromContext(ctx), u.logger)
}

// Goals returns a goal repository bound to the current transaction
func (u *UnitOfWork) Goals(ctx context.Context) persistence.GoalRepository {
	return repository.NewGoalRepository(u.dbFromContext(ctx), u.logger)
}

// Templates returns a template repository bound to the current transaction
func (u *UnitOfWork) Templates(ctx context.Context) persistence.TemplateRepository {
	return repository.NewTemplateRepository(u.dbFromContext(ctx), u.logger)
}

// dbFromContext retrieves the transaction from context, falling back to
// the base connection
func (u *UnitOfWork) dbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
