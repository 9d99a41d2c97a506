package report

import (
	"context"

	"fintrack/internal/domain/entity"
	"fintrack/internal/domain/port/core"
	"fintrack/internal/domain/port/persistence"
	"fintrack/internal/domain/usecase/ledger"
)

// Alert severities and types
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"

	AlertBudgetWarning  = "budget_warning"
	AlertBudgetExceeded = "budget_exceeded"
	AlertCardNegative   = "card_negative"
)

// BudgetWarnRatio is the spend/limit ratio that triggers a warning alert
const BudgetWarnRatio = 0.9

// Alert is an advisory condition derived from the ledger: a budget close
// to or over its limit, or a card pool in the negative.
type Alert struct {
	Type     string
	Title    string
	Message  string
	Severity string
	Category string
	CardMask string
}

// UseCase derives alerts and balance summaries. It only reads; no
// enforcement happens here.
type UseCase struct {
	uow          persistence.UnitOfWork
	balances     *ledger.BalanceCalculator
	timeProvider core.TimeProvider
	logger       core.Logger
}

// NewUseCase creates a new report use case
func NewUseCase(uow persistence.UnitOfWork, balances *ledger.BalanceCalculator, timeProvider core.TimeProvider, logger core.Logger) *UseCase {
	return &UseCase{
		uow:          uow,
		balances:     balances,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Summary returns the derived cards/cash/total balance overview
func (u *UseCase) Summary(ctx context.Context, userID uint64) (*ledger.Summary, error) {
	return u.balances.Summary(ctx, userID)
}

// Alerts computes budget and card alerts for the user's dashboard
func (u *UseCase) Alerts(ctx context.Context, userID uint64) ([]Alert, error) {
	alerts := make([]Alert, 0)

	budgets, err := u.uow.Budgets(ctx).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	from, to := ledger.MonthWindowUTC(u.timeProvider.Now())
	spent, err := u.uow.Ledger(ctx).ExpensesByCategoryInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	for _, b := range budgets {
		if b.LimitCents <= 0 {
			continue
		}
		s := spent[b.Category]
		ratio := float64(s) / float64(b.LimitCents)
		switch {
		case ratio >= 1:
			alerts = append(alerts, Alert{
				Type:     AlertBudgetExceeded,
				Title:    "Budget exceeded: " + b.Category,
				Message:  entity.CentsToString(s) + " > " + b.Limit(),
				Severity: SeverityCritical,
				Category: b.Category,
			})
		case ratio >= BudgetWarnRatio:
			alerts = append(alerts, Alert{
				Type:     AlertBudgetWarning,
				Title:    "Budget almost reached: " + b.Category,
				Message:  entity.CentsToString(s) + " of " + b.Limit(),
				Severity: SeverityWarning,
				Category: b.Category,
			})
		}
	}

	cards, err := u.uow.Cards(ctx).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	balances, err := u.uow.Ledger(ctx).BalancesByCard(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, c := range cards {
		if bal := balances[c.ID]; bal < 0 {
			alerts = append(alerts, Alert{
				Type:     AlertCardNegative,
				Title:    "Negative balance",
				Message:  c.Nickname + " " + c.Mask + ": " + entity.CentsToString(bal),
				Severity: SeverityWarning,
				CardMask: c.Mask,
			})
		}
	}

	return alerts, nil
}
