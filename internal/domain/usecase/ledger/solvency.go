package ledger

import (
	"context"

	errs "fintrack/internal/domain/error"
	"fintrack/internal/domain/port/core"
	"fintrack/internal/domain/port/persistence"
)

// SolvencyGuard rejects expenses that would drive a pool negative. The
// caller must hold the pool anchor lock (card row, or user row for cash)
// before the balance read; Postgres does not allow FOR UPDATE on
// aggregates, so the anchor lock is what serializes concurrent decisions
// against the same pool.
type SolvencyGuard struct {
	logger core.Logger
}

// NewSolvencyGuard creates a new solvency guard
func NewSolvencyGuard(logger core.Logger) *SolvencyGuard {
	return &SolvencyGuard{logger: logger}
}

// Check computes the pool's derived balance and rejects when the required
// magnitude exceeds it
func (g *SolvencyGuard) Check(
	ctx context.Context,
	ledger persistence.LedgerRepository,
	userID uint64,
	cardID *uint64,
	requiredCents int64,
) error {
	balance, err := ledger.PoolBalance(ctx, userID, cardID)
	if err != nil {
		return err
	}

	if requiredCents > balance {
		g.logger.Warn("Expense rejected for insufficient funds", map[string]any{
			"user_id":         userID,
			"required_cents":  requiredCents,
			"available_cents": balance,
		})
		return errs.NewInsufficientFundsError(userID, cardID, requiredCents, balance)
	}

	return nil
}
