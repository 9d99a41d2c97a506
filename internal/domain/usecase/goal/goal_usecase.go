package goal

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/domain/entity"
	errs "fintrack/internal/domain/error"
	"fintrack/internal/domain/port/core"
	"fintrack/internal/domain/port/persistence"
	"fintrack/internal/domain/usecase/ledger"
)

// UseCase implements savings goal management: CRUD, the contribution
// pipeline and the compensating goal deletion that reverses linked
// transactions.
type UseCase struct {
	uow          persistence.UnitOfWork
	pipeline     *ledger.Pipeline
	timeProvider core.TimeProvider
	logger       core.Logger
}

// NewUseCase creates a new goal use case
func NewUseCase(uow persistence.UnitOfWork, pipeline *ledger.Pipeline, timeProvider core.TimeProvider, logger core.Logger) *UseCase {
	return &UseCase{
		uow:          uow,
		pipeline:     pipeline,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GoalWithProgress is a goal joined with its derived saved sum
type GoalWithProgress struct {
	entity.Goal
	SavedCents int64
}

// Saved returns the contribution sum formatted with two decimal places
func (g *GoalWithProgress) Saved() string {
	return entity.CentsToString(g.SavedCents)
}

// List returns the user's goals with saved sums, newest first
func (u *UseCase) List(ctx context.Context, userID uint64) ([]GoalWithProgress, error) {
	goals, err := u.uow.Goals(ctx).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	saved, err := u.uow.Goals(ctx).SavedByGoal(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalWithProgress{Goal: g, SavedCents: saved[g.ID]})
	}
	return out, nil
}

// Create validates and stores a new goal
func (u *UseCase) Create(ctx context.Context, userID uint64, title, target string, deadline *time.Time) (*entity.Goal, error) {
	g, err := entity.NewGoal(userID, title, target, deadline, u.timeProvider.Now())
	if err != nil {
		return nil, err
	}
	if err := u.uow.Goals(ctx).Create(ctx, g); err != nil {
		return nil, err
	}

	u.logger.Info("Goal created", map[string]any{
		"user_id":      userID,
		"goal_id":      g.ID,
		"target_cents": g.TargetCents,
	})
	return g, nil
}

// UpdateRequest carries a partial goal update; nil fields stay unchanged
type UpdateRequest struct {
	Title    *string
	Target   *string
	Deadline *time.Time
	// ClearDeadline removes the deadline when true
	ClearDeadline bool
}

// Update applies a partial update to an owned goal
func (u *UseCase) Update(ctx context.Context, userID, goalID uint64, req UpdateRequest) (*entity.Goal, error) {
	if req.Title == nil && req.Target == nil && req.Deadline == nil && !req.ClearDeadline {
		return nil, fmt.Errorf("%w: nothing to update", errs.ErrValidation)
	}

	g, err := u.uow.Goals(ctx).GetByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: title is required", errs.ErrValidation)
		}
		g.Title = *req.Title
	}
	if req.Target != nil {
		cents, err := entity.ParseAmountToCents(*req.Target)
		if err != nil {
			return nil, err
		}
		g.TargetCents = cents
	}
	if req.ClearDeadline {
		g.Deadline = nil
	} else if req.Deadline != nil {
		g.Deadline = req.Deadline
	}

	if err := u.uow.Goals(ctx).Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ContributeRequest carries the input for a goal contribution
type ContributeRequest struct {
	Amount      string
	CreateTx    bool   // debit a pool through a linked EXPENSE transaction
	CardUID     string // empty means the cash pool, only read when CreateTx
	Description string
}

// Contribute records a deposit toward a goal. When CreateTx is set, the
// funding pool is debited by a linked EXPENSE under the reserved savings
// category, guarded by the same solvency check as manual entry; budget
// enforcement does not apply. Everything happens in one unit of work.
func (u *UseCase) Contribute(ctx context.Context, userID, goalID uint64, req ContributeRequest) (*entity.GoalContribution, error) {
	amountCents, err := entity.ParseAmountToCents(req.Amount)
	if err != nil {
		return nil, err
	}

	tctx, err := u.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = u.uow.Rollback(tctx)
		}
	}()

	if _, err := u.uow.Goals(tctx).GetByID(tctx, userID, goalID); err != nil {
		return nil, err
	}

	var txID *uint64
	if req.CreateTx {
		var cardID *uint64
		if req.CardUID != "" {
			card, err := u.uow.Cards(tctx).GetByUID(tctx, userID, req.CardUID)
			if err != nil {
				return nil, err
			}
			cardID = &card.ID
		}

		txn, err := u.pipeline.AdmitLinkedExpense(tctx, userID, cardID, req.Amount, req.Description)
		if err != nil {
			return nil, err
		}
		txID = &txn.ID
	}

	contribution := &entity.GoalContribution{
		UserID:      userID,
		GoalID:      goalID,
		AmountCents: amountCents,
		OccurredAt:  u.timeProvider.Now(),
		TxID:        txID,
	}
	if err := u.uow.Goals(tctx).AddContribution(tctx, contribution); err != nil {
		return nil, err
	}

	if err := u.uow.Commit(tctx); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	committed = true

	u.logger.Info("Goal contribution recorded", map[string]any{
		"user_id":      userID,
		"goal_id":      goalID,
		"amount_cents": amountCents,
		"linked_tx":    txID != nil,
	})
	return contribution, nil
}

// Delete removes a goal and reverses its contributions: the contribution
// rows and every transaction they link are deleted in the same unit of
// work, restoring the funding pools by removal. Partial failure rolls
// back entirely.
func (u *UseCase) Delete(ctx context.Context, userID, goalID uint64) error {
	tctx, err := u.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = u.uow.Rollback(tctx)
		}
	}()

	goals := u.uow.Goals(tctx)

	txIDs, err := goals.ContributionTxIDs(tctx, userID, goalID)
	if err != nil {
		return err
	}
	if err := goals.DeleteContributions(tctx, userID, goalID); err != nil {
		return err
	}
	if len(txIDs) > 0 {
		if err := u.uow.Ledger(tctx).DeleteByIDs(tctx, userID, txIDs); err != nil {
			return err
		}
	}
	if err := goals.Delete(tctx, userID, goalID); err != nil {
		return err
	}

	if err := u.uow.Commit(tctx); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	committed = true

	u.logger.Info("Goal deleted with linked transactions", map[string]any{
		"user_id":     userID,
		"goal_id":     goalID,
		"reversed_tx": len(txIDs),
	})
	return nil
}

// DeleteContribution removes a single contribution row. Its linked
// transaction, if any, is kept: only full goal deletion reverses pools.
func (u *UseCase) DeleteContribution(ctx context.Context, userID, goalID, contributionID uint64) error {
	return u.uow.Goals(ctx).DeleteContribution(ctx, userID, goalID, contributionID)
}
