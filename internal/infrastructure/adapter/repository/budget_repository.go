package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fintrack/internal/domain/entity"
	errs "fintrack/internal/domain/error"
	coreport "fintrack/internal/domain/port/core"
	"fintrack/internal/infrastructure/adapter/model"
)

// BudgetRepository implements the BudgetRepository port using GORM. The
// unique index on (user_id, category, period) backs the one-budget rule;
// duplicate inserts surface as ErrDuplicateBudget.
type BudgetRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewBudgetRepository creates a new BudgetRepository instance
func NewBudgetRepository(db *gorm.DB, logger coreport.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func budgetModelToEntity(m *model.Budget) *entity.Budget {
	return &entity.Budget{
		ID:         m.ID,
		UserID:     m.UserID,
		Category:   m.Category,
		LimitCents: m.LimitCents,
		Period:     entity.BudgetPeriod(m.Period),
		CreatedAt:  m.CreatedAt,
	}
}

func budgetEntityToModel(b *entity.Budget) *model.Budget {
	return &model.Budget{
		ID:         b.ID,
		UserID:     b.UserID,
		Category:   b.Category,
		LimitCents: b.LimitCents,
		Period:     string(b.Period),
		CreatedAt:  b.CreatedAt,
	}
}

func (r *BudgetRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrBudgetNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateBudget
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create inserts a new budget and sets its ID
func (r *BudgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	m := budgetEntityToModel(budget)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleDatabaseError("creating budget", err, budget.UserID)
	}
	budget.ID = m.ID
	return nil
}

// GetByID retrieves an owner-scoped budget
func (r *BudgetRepository) GetByID(ctx context.Context, userID, budgetID uint64) (*entity.Budget, error) {
	var m model.Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, budgetID).
		First(&m).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting budget", err, userID)
	}
	return budgetModelToEntity(&m), nil
}

// GetByCategory retrieves the budget configured for a category, if any
func (r *BudgetRepository) GetByCategory(ctx context.Context, userID uint64, category string, period entity.BudgetPeriod) (*entity.Budget, error) {
	var m model.Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND category = ? AND period = ?", userID, category, string(period)).
		First(&m).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting budget by category", err, userID)
	}
	return budgetModelToEntity(&m), nil
}

// ListByUser returns the user's budgets, newest first
func (r *BudgetRepository) ListByUser(ctx context.Context, userID uint64) ([]entity.Budget, error) {
	var rows []model.Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing budgets", err, userID)
	}

	out := make([]entity.Budget, 0, len(rows))
	for i := range rows {
		out = append(out, *budgetModelToEntity(&rows[i]))
	}
	return out, nil
}

// Update replaces the mutable fields of a budget
func (r *BudgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	result := r.db.WithContext(ctx).
		Model(&model.Budget{}).
		Where("user_id = ? AND id = ?", budget.UserID, budget.ID).
		Updates(map[string]any{
			"category":    budget.Category,
			"limit_cents": budget.LimitCents,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating budget", result.Error, budget.UserID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrBudgetNotFound
	}
	return nil
}

// Delete removes an owner-scoped budget
func (r *BudgetRepository) Delete(ctx context.Context, userID, budgetID uint64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, budgetID).
		Delete(&model.Budget{})
	if result.Error != nil {
		return r.handleDatabaseError("deleting budget", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrBudgetNotFound
	}
	return nil
}
