package ledger

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/domain/entity"
	errs "fintrack/internal/domain/error"
	"fintrack/internal/domain/port/core"
	"fintrack/internal/domain/port/persistence"
)

// Pipeline is the transaction admission pipeline: it orchestrates card
// token resolution, the budget enforcer, the solvency guard and the ledger
// insert as one atomic unit. Any failure before commit leaves no partial
// state.
type Pipeline struct {
	uow          persistence.UnitOfWork
	timeProvider core.TimeProvider
	logger       core.Logger
	budgets      *BudgetEnforcer
	solvency     *SolvencyGuard
}

// NewPipeline creates a new admission pipeline
func NewPipeline(uow persistence.UnitOfWork, timeProvider core.TimeProvider, logger core.Logger) *Pipeline {
	return &Pipeline{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		budgets:      NewBudgetEnforcer(logger),
		solvency:     NewSolvencyGuard(logger),
	}
}

// AdmitRequest carries the client input for creating a transaction. The
// amount is an unsigned magnitude; the sign is derived from Type.
type AdmitRequest struct {
	CardUID     string // empty means the cash pool
	Type        string
	Amount      string
	Category    string
	Description string
	OccurredAt  *time.Time
}

// Admit validates, checks and persists a transaction for the user.
//
// Steps, inside one unit of work: resolve the card token if present, lock
// the pool anchor for expenses, apply the budget enforcer (EXPENSE with a
// category only), apply the solvency guard (EXPENSE only), insert, commit.
func (p *Pipeline) Admit(ctx context.Context, userID uint64, req AdmitRequest) (*entity.Transaction, error) {
	txn, err := entity.NewTransaction(
		userID, nil,
		req.Type, req.Amount, req.Category, req.Description,
		req.OccurredAt, p.timeProvider.Now(),
	)
	if err != nil {
		return nil, err
	}

	tctx, err := p.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = p.uow.Rollback(tctx)
		}
	}()

	if req.CardUID != "" {
		card, err := p.uow.Cards(tctx).GetByUID(tctx, userID, req.CardUID)
		if err != nil {
			return nil, err
		}
		txn.CardID = &card.ID
	}

	if txn.IsExpense() {
		if err := p.lockPool(tctx, userID, txn.CardID); err != nil {
			return nil, err
		}

		if txn.Category != "" {
			err := p.budgets.Check(tctx,
				p.uow.Budgets(tctx), p.uow.Ledger(tctx),
				userID, txn.Category, txn.Magnitude(), p.timeProvider.Now())
			if err != nil {
				return nil, err
			}
		}

		if err := p.solvency.Check(tctx, p.uow.Ledger(tctx), userID, txn.CardID, txn.Magnitude()); err != nil {
			return nil, err
		}
	}

	if err := p.uow.Ledger(tctx).Insert(tctx, txn); err != nil {
		return nil, err
	}

	if err := p.uow.Commit(tctx); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	committed = true

	p.logger.Info("Transaction admitted", map[string]any{
		"user_id":      userID,
		"tx_id":        txn.ID,
		"type":         txn.Type,
		"amount_cents": txn.AmountCents,
		"category":     txn.Category,
	})

	return txn, nil
}

// AdmitLinkedExpense runs the solvency-guarded insert of a goal
// contribution's EXPENSE row inside the caller's already-open unit of
// work. Budget enforcement is skipped: contributions use the reserved
// savings category. The caller commits or rolls back.
func (p *Pipeline) AdmitLinkedExpense(
	tctx context.Context,
	userID uint64,
	cardID *uint64,
	amount string,
	description string,
) (*entity.Transaction, error) {
	if description == "" {
		description = entity.DefaultContributionDescription
	}

	txn, err := entity.NewTransaction(
		userID, cardID,
		string(entity.TypeExpense), amount, entity.SavingsCategory, description,
		nil, p.timeProvider.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := p.lockPool(tctx, userID, cardID); err != nil {
		return nil, err
	}
	if err := p.solvency.Check(tctx, p.uow.Ledger(tctx), userID, cardID, txn.Magnitude()); err != nil {
		return nil, err
	}
	if err := p.uow.Ledger(tctx).Insert(tctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// lockPool takes the exclusive anchor lock for a pool: the card row for
// card pools, the user row for the cash pool. Held until commit/rollback.
func (p *Pipeline) lockPool(tctx context.Context, userID uint64, cardID *uint64) error {
	if cardID != nil {
		return p.uow.Cards(tctx).LockByID(tctx, userID, *cardID)
	}
	return p.uow.Users(tctx).LockByID(tctx, userID)
}
