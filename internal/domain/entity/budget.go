package entity

import (
	"fmt"
	"strings"
	"time"

	errs "fintrack/internal/domain/error"
)

// BudgetPeriod is the window a budget limit applies to
type BudgetPeriod string

// PeriodMonth is the only supported budget period
const PeriodMonth BudgetPeriod = "MONTH"

// Budget is a per-category monthly spending cap. Spend against it is never
// stored; it is recomputed from the ledger for the current calendar month.
type Budget struct {
	ID         uint64
	UserID     uint64
	Category   string
	LimitCents int64
	Period     BudgetPeriod
	CreatedAt  time.Time
}

// NewBudget validates and builds a budget. Uniqueness per
// (user, category, period) is enforced by the store.
func NewBudget(userID uint64, category, limit, period string, createdAt time.Time) (*Budget, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", errs.ErrValidation)
	}

	if period == "" {
		period = string(PeriodMonth)
	}
	if BudgetPeriod(period) != PeriodMonth {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidPeriod, period)
	}

	limitCents, err := ParseAmountToCents(limit)
	if err != nil {
		return nil, err
	}

	return &Budget{
		UserID:     userID,
		Category:   category,
		LimitCents: limitCents,
		Period:     PeriodMonth,
		CreatedAt:  createdAt,
	}, nil
}

// Limit returns the cap formatted with two decimal places
func (b *Budget) Limit() string {
	return CentsToString(b.LimitCents)
}
