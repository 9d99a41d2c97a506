package budget

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/domain/entity"
	errs "fintrack/internal/domain/error"
	"fintrack/internal/domain/port/core"
	"fintrack/internal/domain/port/persistence"
	"fintrack/internal/domain/usecase/ledger"
)

// UseCase implements budget management. The listing enriches each budget
// with month-to-date spend recomputed from the ledger over the same UTC
// month window the enforcer uses.
type UseCase struct {
	uow          persistence.UnitOfWork
	timeProvider core.TimeProvider
	logger       core.Logger
}

// NewUseCase creates a new budget use case
func NewUseCase(uow persistence.UnitOfWork, timeProvider core.TimeProvider, logger core.Logger) *UseCase {
	return &UseCase{uow: uow, timeProvider: timeProvider, logger: logger}
}

// BudgetWithSpend is a budget joined with its derived month-to-date spend
type BudgetWithSpend struct {
	entity.Budget
	SpentCents int64
}

// Spent returns the month-to-date spend formatted with two decimal places
func (b BudgetWithSpend) Spent() string {
	return entity.CentsToString(b.SpentCents)
}

// List returns the user's budgets with current-month spend, newest first
func (u *UseCase) List(ctx context.Context, userID uint64) ([]BudgetWithSpend, error) {
	budgets, err := u.uow.Budgets(ctx).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, to := ledger.MonthWindowUTC(u.timeProvider.Now())
	spent, err := u.uow.Ledger(ctx).ExpensesByCategoryInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]BudgetWithSpend, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, BudgetWithSpend{Budget: b, SpentCents: spent[b.Category]})
	}
	return out, nil
}

// Create validates and stores a new budget; one per (category, period)
func (u *UseCase) Create(ctx context.Context, userID uint64, category, limit, period string) (*entity.Budget, error) {
	b, err := entity.NewBudget(userID, category, limit, period, u.timeProvider.Now())
	if err != nil {
		return nil, err
	}
	if err := u.uow.Budgets(ctx).Create(ctx, b); err != nil {
		return nil, err
	}

	u.logger.Info("Budget created", map[string]any{
		"user_id":     userID,
		"budget_id":   b.ID,
		"category":    b.Category,
		"limit_cents": b.LimitCents,
	})
	return b, nil
}

// UpdateRequest carries a partial budget update; nil fields stay unchanged
type UpdateRequest struct {
	Category *string
	Limit    *string
}

// Update applies a partial update to an owned budget
func (u *UseCase) Update(ctx context.Context, userID, budgetID uint64, req UpdateRequest) (*entity.Budget, error) {
	if req.Category == nil && req.Limit == nil {
		return nil, fmt.Errorf("%w: nothing to update", errs.ErrValidation)
	}

	b, err := u.uow.Budgets(ctx).GetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return nil, fmt.Errorf("%w: category is required", errs.ErrValidation)
		}
		b.Category = category
	}
	if req.Limit != nil {
		cents, err := entity.ParseAmountToCents(*req.Limit)
		if err != nil {
			return nil, err
		}
		b.LimitCents = cents
	}

	if err := u.uow.Budgets(ctx).Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes an owned budget
func (u *UseCase) Delete(ctx context.Context, userID, budgetID uint64) error {
	return u.uow.Budgets(ctx).Delete(ctx, userID, budgetID)
}
