package goal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/domain/entity"
	errs "fintrack/internal/domain/error"
	"fintrack/internal/domain/port/persistence"
	"fintrack/internal/domain/usecase/ledger"
	"fintrack/internal/domain/usecase/usecasetest"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store    *usecasetest.Store
	goals    *UseCase
	pipeline *ledger.Pipeline
	userID   uint64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := usecasetest.NewStore()
	ctx := context.Background()

	user, err := entity.NewUser("Alice", "alice@example.com", "hash", testNow)
	require.NoError(t, err)
	require.NoError(t, store.Users(ctx).Create(ctx, user))

	clock := usecasetest.NewClock(testNow)
	logger := usecasetest.NewNopLogger()
	pipeline := ledger.NewPipeline(store, clock, logger)

	return &fixture{
		store:    store,
		goals:    NewUseCase(store, pipeline, clock, logger),
		pipeline: pipeline,
		userID:   user.ID,
	}
}

func (f *fixture) seedCard(t *testing.T, balance string) *entity.Card {
	t.Helper()
	ctx := context.Background()
	card, err := entity.NewMockCard(f.userID, "card-uid-1", "1234", "Main", "USD", nil, nil, testNow)
	require.NoError(t, err)
	require.NoError(t, f.store.Cards(ctx).Create(ctx, card))
	if balance != "" {
		_, err = f.pipeline.Admit(ctx, f.userID, ledger.AdmitRequest{
			Type: "INCOME", Amount: balance, CardUID: card.CardUID,
		})
		require.NoError(t, err)
	}
	return card
}

func (f *fixture) cardBalance(t *testing.T, cardID uint64) int64 {
	t.Helper()
	balance, err := f.store.Ledger(context.Background()).PoolBalance(context.Background(), f.userID, &cardID)
	require.NoError(t, err)
	return balance
}

func TestGoalCreateAndList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	deadline := testNow.AddDate(1, 0, 0)
	g, err := f.goals.Create(ctx, f.userID, "Vacation", "2500.00", &deadline)
	require.NoError(t, err)
	assert.Equal(t, int64(250000), g.TargetCents)

	_, err = f.goals.Create(ctx, f.userID, "", "100", nil)
	assert.ErrorIs(t, err, errs.ErrValidation)

	list, err := f.goals.List(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(0), list[0].SavedCents)
	assert.Equal(t, "0.00", list[0].Saved())
}

func TestGoalUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	deadline := testNow.AddDate(1, 0, 0)
	g, err := f.goals.Create(ctx, f.userID, "Vacation", "2500.00", &deadline)
	require.NoError(t, err)

	t.Run("Partial update keeps other fields", func(t *testing.T) {
		target := "3000.00"
		updated, err := f.goals.Update(ctx, f.userID, g.ID, UpdateRequest{Target: &target})
		require.NoError(t, err)
		assert.Equal(t, "Vacation", updated.Title)
		assert.Equal(t, int64(300000), updated.TargetCents)
		require.NotNil(t, updated.Deadline)
	})

	t.Run("ClearDeadline removes the deadline", func(t *testing.T) {
		updated, err := f.goals.Update(ctx, f.userID, g.ID, UpdateRequest{ClearDeadline: true})
		require.NoError(t, err)
		assert.Nil(t, updated.Deadline)
	})

	t.Run("Empty update is rejected", func(t *testing.T) {
		_, err := f.goals.Update(ctx, f.userID, g.ID, UpdateRequest{})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Owner scoping", func(t *testing.T) {
		title := "Other"
		_, err := f.goals.Update(ctx, f.userID+1, g.ID, UpdateRequest{Title: &title})
		assert.ErrorIs(t, err, errs.ErrGoalNotFound)
	})
}

func TestGoalContribute(t *testing.T) {
	ctx := context.Background()

	t.Run("Linked contribution debits the card", func(t *testing.T) {
		f := newFixture(t)
		card := f.seedCard(t, "500.00")
		g, err := f.goals.Create(ctx, f.userID, "Vacation", "2500.00", nil)
		require.NoError(t, err)

		c, err := f.goals.Contribute(ctx, f.userID, g.ID, ContributeRequest{
			Amount: "200.00", CreateTx: true, CardUID: card.CardUID,
		})
		require.NoError(t, err)
		require.NotNil(t, c.TxID)
		assert.Equal(t, int64(30000), f.cardBalance(t, card.ID))

		// The linked row uses the reserved savings category
		rows, err := f.store.Ledger(ctx).List(ctx, f.userID, persistence.ListFilter{Category: entity.SavingsCategory})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, entity.DefaultContributionDescription, rows[0].Description)

		list, err := f.goals.List(ctx, f.userID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, int64(20000), list[0].SavedCents)
	})

	t.Run("Plain contribution leaves pools untouched", func(t *testing.T) {
		f := newFixture(t)
		g, err := f.goals.Create(ctx, f.userID, "Vacation", "2500.00", nil)
		require.NoError(t, err)

		c, err := f.goals.Contribute(ctx, f.userID, g.ID, ContributeRequest{Amount: "50.00"})
		require.NoError(t, err)
		assert.Nil(t, c.TxID)

		rows, err := f.store.Ledger(ctx).List(ctx, f.userID, persistence.ListFilter{})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("Insolvent contribution rolls back entirely", func(t *testing.T) {
		f := newFixture(t)
		card := f.seedCard(t, "100.00")
		g, err := f.goals.Create(ctx, f.userID, "Vacation", "2500.00", nil)
		require.NoError(t, err)

		_, err = f.goals.Contribute(ctx, f.userID, g.ID, ContributeRequest{
			Amount: "200.00", CreateTx: true, CardUID: card.CardUID,
		})
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, int64(10000), f.cardBalance(t, card.ID))

		list, err := f.goals.List(ctx, f.userID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), list[0].SavedCents)
	})

	t.Run("Unknown goal", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.goals.Contribute(ctx, f.userID, 999, ContributeRequest{Amount: "10"})
		assert.ErrorIs(t, err, errs.ErrGoalNotFound)
	})

	t.Run("Budgets never apply to contributions", func(t *testing.T) {
		f := newFixture(t)
		card := f.seedCard(t, "500.00")
		b, err := entity.NewBudget(f.userID, entity.SavingsCategory, "0.01", "MONTH", testNow)
		require.NoError(t, err)
		require.NoError(t, f.store.Budgets(ctx).Create(ctx, b))

		g, err := f.goals.Create(ctx, f.userID, "Vacation", "2500.00", nil)
		require.NoError(t, err)

		_, err = f.goals.Contribute(ctx, f.userID, g.ID, ContributeRequest{
			Amount: "200.00", CreateTx: true, CardUID: card.CardUID,
		})
		assert.NoError(t, err)
	})
}

func TestGoalDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Deleting reverses linked transactions", func(t *testing.T) {
		f := newFixture(t)
		card := f.seedCard(t, "500.00")
		g, err := f.goals.Create(ctx, f.userID, "Vacation", "2500.00", nil)
		require.NoError(t, err)

		_, err = f.goals.Contribute(ctx, f.userID, g.ID, ContributeRequest{
			Amount: "200.00", CreateTx: true, CardUID: card.CardUID,
		})
		require.NoError(t, err)
		require.Equal(t, int64(30000), f.cardBalance(t, card.ID))

		require.NoError(t, f.goals.Delete(ctx, f.userID, g.ID))

		// Pool refunded by row removal
		assert.Equal(t, int64(50000), f.cardBalance(t, card.ID))

		list, err := f.goals.List(ctx, f.userID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Owner scoping", func(t *testing.T) {
		f := newFixture(t)
		g, err := f.goals.Create(ctx, f.userID, "Vacation", "2500.00", nil)
		require.NoError(t, err)
		assert.ErrorIs(t, f.goals.Delete(ctx, f.userID+1, g.ID), errs.ErrGoalNotFound)
	})
}

func TestDeleteContribution(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	card := f.seedCard(t, "500.00")
	g, err := f.goals.Create(ctx, f.userID, "Vacation", "2500.00", nil)
	require.NoError(t, err)

	c, err := f.goals.Contribute(ctx, f.userID, g.ID, ContributeRequest{
		Amount: "200.00", CreateTx: true, CardUID: card.CardUID,
	})
	require.NoError(t, err)

	require.NoError(t, f.goals.DeleteContribution(ctx, f.userID, g.ID, c.ID))

	// The linked transaction stays; only full goal deletion reverses pools
	assert.Equal(t, int64(30000), f.cardBalance(t, card.ID))

	list, err := f.goals.List(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), list[0].SavedCents)

	err = f.goals.DeleteContribution(ctx, f.userID, g.ID, c.ID)
	assert.ErrorIs(t, err, errs.ErrContributionNotFound)
}
