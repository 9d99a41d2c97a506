package persistence

import (
	"context"
	"time"

	"fintrack/internal/domain/entity"
)

// ListFilter narrows a transaction listing. Zero values mean "no filter";
// Limit is capped by the repository.
type ListFilter struct {
	Type     string
	Category string
	From     *time.Time
	To       *time.Time
	Limit    int
}

// LedgerRepository is the append-only source of truth for all balances.
// Rows are inserted and deleted, never updated, and every figure derived
// from them (balance, month spend) is recomputed on read.
type LedgerRepository interface {
	// Insert appends a transaction row and sets its ID
	Insert(ctx context.Context, tx *entity.Transaction) error

	// Delete removes a single owner-scoped transaction
	//
	// Possible errors:
	// - ErrTransactionNotFound
	Delete(ctx context.Context, userID, txID uint64) error

	// DeleteByIDs removes the given owner-scoped transactions, used by
	// compensating goal deletion
	DeleteByIDs(ctx context.Context, userID uint64, txIDs []uint64) error

	// DeleteByCard removes all of a card's transactions (forced card delete)
	DeleteByCard(ctx context.Context, userID, cardID uint64) error

	// CountByCard reports how many transactions reference the card
	CountByCard(ctx context.Context, userID, cardID uint64) (int64, error)

	// List returns the user's transactions joined with card tokens,
	// newest first (occurred_at DESC, id DESC)
	List(ctx context.Context, userID uint64, filter ListFilter) ([]entity.TransactionView, error)

	// ListByCard returns a single card's transactions, newest first
	ListByCard(ctx context.Context, userID, cardID uint64, limit int) ([]entity.Transaction, error)

	// PoolBalance sums signed amounts for one pool: a specific card, or
	// the cash pool when cardID is nil. Callers needing a decision-grade
	// read take the pool anchor lock first (see CardRepository.LockByID
	// and UserRepository.LockByID).
	PoolBalance(ctx context.Context, userID uint64, cardID *uint64) (int64, error)

	// BalancesByCard returns derived balances grouped by card id
	BalancesByCard(ctx context.Context, userID uint64) (map[uint64]int64, error)

	// CardsTotal sums signed amounts across all card pools
	CardsTotal(ctx context.Context, userID uint64) (int64, error)

	// CategoryExpenseInRange sums expense magnitudes for one category with
	// occurred_at in [from, to)
	CategoryExpenseInRange(ctx context.Context, userID uint64, category string, from, to time.Time) (int64, error)

	// ExpensesByCategoryInRange sums expense magnitudes grouped by
	// category with occurred_at in [from, to)
	ExpensesByCategoryInRange(ctx context.Context, userID uint64, from, to time.Time) (map[string]int64, error)
}
