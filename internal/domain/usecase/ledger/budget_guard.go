package ledger

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/domain/entity"
	errs "fintrack/internal/domain/error"
	"fintrack/internal/domain/port/core"
	"fintrack/internal/domain/port/persistence"
)

// MonthWindowUTC returns the half-open interval
// [start of current month, start of next month) in UTC. All month-boundary
// logic in budget listing and enforcement uses this single reference.
func MonthWindowUTC(now time.Time) (time.Time, time.Time) {
	y, m, _ := now.UTC().Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// BudgetEnforcer decides whether a candidate expense would break the
// user's monthly budget for its category. No budget row means no limit.
type BudgetEnforcer struct {
	logger core.Logger
}

// NewBudgetEnforcer creates a new budget enforcer
func NewBudgetEnforcer(logger core.Logger) *BudgetEnforcer {
	return &BudgetEnforcer{logger: logger}
}

// Check recomputes month-to-date category spend from the ledger and
// rejects when spent + candidate strictly exceeds the configured limit.
// The repositories must be bound to the admission pipeline's open unit of
// work so the read happens inside the serialized section.
func (e *BudgetEnforcer) Check(
	ctx context.Context,
	budgets persistence.BudgetRepository,
	ledger persistence.LedgerRepository,
	userID uint64,
	category string,
	candidateCents int64,
	now time.Time,
) error {
	budget, err := budgets.GetByCategory(ctx, userID, category, entity.PeriodMonth)
	if err != nil {
		if errors.Is(err, errs.ErrBudgetNotFound) {
			return nil
		}
		return err
	}

	from, to := MonthWindowUTC(now)
	spent, err := ledger.CategoryExpenseInRange(ctx, userID, category, from, to)
	if err != nil {
		return err
	}

	if spent+candidateCents > budget.LimitCents {
		e.logger.Warn("Expense rejected by budget limit", map[string]any{
			"user_id":         userID,
			"category":        category,
			"limit_cents":     budget.LimitCents,
			"spent_cents":     spent,
			"candidate_cents": candidateCents,
		})
		return errs.NewBudgetExceededError(userID, category, budget.LimitCents, spent, candidateCents)
	}

	return nil
}
