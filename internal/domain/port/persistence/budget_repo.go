package persistence

import (
	"context"

	"fintrack/internal/domain/entity"
)

// BudgetRepository provides owner-scoped access to budget rows
type BudgetRepository interface {
	// Create inserts a new budget and sets its ID
	//
	// Possible errors:
	// - ErrDuplicateBudget: a budget for (user, category, period) exists
	Create(ctx context.Context, budget *entity.Budget) error

	// GetByID retrieves an owner-scoped budget
	//
	// Possible errors:
	// - ErrBudgetNotFound
	GetByID(ctx context.Context, userID, budgetID uint64) (*entity.Budget, error)

	// GetByCategory retrieves the budget configured for a category, if any
	//
	// Possible errors:
	// - ErrBudgetNotFound: no budget configured, enforcement is skipped
	GetByCategory(ctx context.Context, userID uint64, category string, period entity.BudgetPeriod) (*entity.Budget, error)

	// ListByUser returns the user's budgets, newest first
	ListByUser(ctx context.Context, userID uint64) ([]entity.Budget, error)

	// Update replaces the mutable fields of a budget
	//
	// Possible errors:
	// - ErrBudgetNotFound
	// - ErrDuplicateBudget: the new category collides with another budget
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete removes an owner-scoped budget
	//
	// Possible errors:
	// - ErrBudgetNotFound
	Delete(ctx context.Context, userID, budgetID uint64) error
}
