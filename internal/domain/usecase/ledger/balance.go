package ledger

import (
	"context"

	"fintrack/internal/domain/entity"
	"fintrack/internal/domain/port/persistence"
)

// BalanceCalculator derives pool balances from the ledger. There is no
// stored balance anywhere; every figure is a sum over transaction rows at
// read time.
type BalanceCalculator struct {
	uow persistence.UnitOfWork
}

// NewBalanceCalculator creates a new balance calculator
func NewBalanceCalculator(uow persistence.UnitOfWork) *BalanceCalculator {
	return &BalanceCalculator{uow: uow}
}

// PoolBalance returns the signed cents balance of a card pool, or of the
// cash pool when cardID is nil
func (c *BalanceCalculator) PoolBalance(ctx context.Context, userID uint64, cardID *uint64) (int64, error) {
	return c.uow.Ledger(ctx).PoolBalance(ctx, userID, cardID)
}

// Summary holds the derived totals for the balance overview
type Summary struct {
	CardsCents int64
	CashCents  int64
	TotalCents int64
}

// Cards returns the cards total formatted with two decimal places
func (s *Summary) Cards() string { return entity.CentsToString(s.CardsCents) }

// Cash returns the cash total formatted with two decimal places
func (s *Summary) Cash() string { return entity.CentsToString(s.CashCents) }

// Total returns the overall total formatted with two decimal places
func (s *Summary) Total() string { return entity.CentsToString(s.TotalCents) }

// Summary computes the cards/cash/total balance overview for a user
func (c *BalanceCalculator) Summary(ctx context.Context, userID uint64) (*Summary, error) {
	ledger := c.uow.Ledger(ctx)

	cards, err := ledger.CardsTotal(ctx, userID)
	if err != nil {
		return nil, err
	}
	cash, err := ledger.PoolBalance(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	return &Summary{
		CardsCents: cards,
		CashCents:  cash,
		TotalCents: cards + cash,
	}, nil
}
