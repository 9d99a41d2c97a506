package persistence

import (
	"context"
)

// UnitOfWork coordinates reads and writes across repositories inside one
// database transaction. Begin returns a context carrying the transaction;
// the repository getters return instances bound to it, or to the base
// connection when the context carries none. Commit on success, Rollback on
// every failure branch - the admission pipelines rely on the pool anchor
// lock being held until one of the two is called.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// Users returns a user repository bound to the current transaction
	Users(ctx context.Context) UserRepository

	// Cards returns a card repository bound to the current transaction
	Cards(ctx context.Context) CardRepository

	// Ledger returns a ledger repository bound to the current transaction
	Ledger(ctx context.Context) LedgerRepository

	// Budgets returns a budget repository bound to the current transaction
	Budgets(ctx context.Context) BudgetRepository

	// Goals returns a goal repository bound to the current transaction
	Goals(ctx context.Context) GoalRepository

	// Templates returns a template repository bound to the current transaction
	Templates(ctx context.Context) TemplateRepository
}
