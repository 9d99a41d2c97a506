package ledger

import (
	"context"

	"fintrack/internal/domain/entity"
	"fintrack/internal/domain/port/core"
	"fintrack/internal/domain/port/persistence"
)

// Listing limits, matching the API behavior: a missing limit falls back to
// the default, anything above the cap is clamped.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Queries covers the read and delete side of the ledger. No enforcement
// happens here; dashboards and reports read the same rows the pipelines
// write.
type Queries struct {
	uow    persistence.UnitOfWork
	logger core.Logger
}

// NewQueries creates a new ledger query service
func NewQueries(uow persistence.UnitOfWork, logger core.Logger) *Queries {
	return &Queries{uow: uow, logger: logger}
}

// List returns the user's transactions, newest first, with card tokens
// joined in for display
func (q *Queries) List(ctx context.Context, userID uint64, filter persistence.ListFilter) ([]entity.TransactionView, error) {
	filter.Limit = clampLimit(filter.Limit, DefaultListLimit)
	return q.uow.Ledger(ctx).List(ctx, userID, filter)
}

// Delete removes a single owner-scoped transaction
func (q *Queries) Delete(ctx context.Context, userID, txID uint64) error {
	if err := q.uow.Ledger(ctx).Delete(ctx, userID, txID); err != nil {
		return err
	}
	q.logger.Info("Transaction deleted", map[string]any{
		"user_id": userID,
		"tx_id":   txID,
	})
	return nil
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
