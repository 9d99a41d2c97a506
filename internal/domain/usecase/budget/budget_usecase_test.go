package budget

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/domain/entity"
	errs "fintrack/internal/domain/error"
	"fintrack/internal/domain/usecase/ledger"
	"fintrack/internal/domain/usecase/usecasetest"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) (*UseCase, *ledger.Pipeline, uint64) {
	t.Helper()
	store := usecasetest.NewStore()
	ctx := context.Background()

	user, err := entity.NewUser("Alice", "alice@example.com", "hash", testNow)
	require.NoError(t, err)
	require.NoError(t, store.Users(ctx).Create(ctx, user))

	clock := usecasetest.NewClock(testNow)
	logger := usecasetest.NewNopLogger()
	return NewUseCase(store, clock, logger), ledger.NewPipeline(store, clock, logger), user.ID
}

func TestBudgetCreate(t *testing.T) {
	ctx := context.Background()
	budgets, _, userID := newFixture(t)

	b, err := budgets.Create(ctx, userID, "Taxi", "1000.00", "")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), b.LimitCents)
	assert.Equal(t, entity.PeriodMonth, b.Period)

	t.Run("One budget per category and period", func(t *testing.T) {
		_, err := budgets.Create(ctx, userID, "Taxi", "500.00", "MONTH")
		assert.ErrorIs(t, err, errs.ErrDuplicateBudget)
	})

	t.Run("Unsupported period", func(t *testing.T) {
		_, err := budgets.Create(ctx, userID, "Food", "500.00", "WEEK")
		assert.ErrorIs(t, err, errs.ErrInvalidPeriod)
	})

	t.Run("Category is required", func(t *testing.T) {
		_, err := budgets.Create(ctx, userID, "  ", "500.00", "")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestBudgetList(t *testing.T) {
	ctx := context.Background()
	budgets, pipeline, userID := newFixture(t)

	_, err := budgets.Create(ctx, userID, "Taxi", "1000.00", "")
	require.NoError(t, err)
	_, err = budgets.Create(ctx, userID, "Food", "2000.00", "")
	require.NoError(t, err)

	_, err = pipeline.Admit(ctx, userID, ledger.AdmitRequest{Type: "INCOME", Amount: "5000.00"})
	require.NoError(t, err)
	_, err = pipeline.Admit(ctx, userID, ledger.AdmitRequest{Type: "EXPENSE", Amount: "150.00", Category: "Taxi"})
	require.NoError(t, err)
	_, err = pipeline.Admit(ctx, userID, ledger.AdmitRequest{Type: "EXPENSE", Amount: "250.00", Category: "Taxi"})
	require.NoError(t, err)

	// Spend from a previous month is out of the window
	lastMonth := testNow.AddDate(0, -1, 0)
	_, err = pipeline.Admit(ctx, userID, ledger.AdmitRequest{
		Type: "EXPENSE", Amount: "999.00", Category: "Taxi", OccurredAt: &lastMonth,
	})
	require.NoError(t, err)

	list, err := budgets.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byCategory := make(map[string]BudgetWithSpend, len(list))
	for _, b := range list {
		byCategory[b.Category] = b
	}
	assert.Equal(t, int64(40000), byCategory["Taxi"].SpentCents)
	assert.Equal(t, "400.00", byCategory["Taxi"].Spent())
	assert.Equal(t, int64(0), byCategory["Food"].SpentCents)
}

func TestBudgetUpdate(t *testing.T) {
	ctx := context.Background()
	budgets, _, userID := newFixture(t)

	b, err := budgets.Create(ctx, userID, "Taxi", "1000.00", "")
	require.NoError(t, err)
	_, err = budgets.Create(ctx, userID, "Food", "2000.00", "")
	require.NoError(t, err)

	t.Run("Limit change", func(t *testing.T) {
		limit := "1500.00"
		updated, err := budgets.Update(ctx, userID, b.ID, UpdateRequest{Limit: &limit})
		require.NoError(t, err)
		assert.Equal(t, int64(150000), updated.LimitCents)
		assert.Equal(t, "Taxi", updated.Category)
	})

	t.Run("Renaming onto an existing category conflicts", func(t *testing.T) {
		category := "Food"
		_, err := budgets.Update(ctx, userID, b.ID, UpdateRequest{Category: &category})
		assert.ErrorIs(t, err, errs.ErrDuplicateBudget)
	})

	t.Run("Empty update is rejected", func(t *testing.T) {
		_, err := budgets.Update(ctx, userID, b.ID, UpdateRequest{})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Owner scoping", func(t *testing.T) {
		limit := "10.00"
		_, err := budgets.Update(ctx, userID+1, b.ID, UpdateRequest{Limit: &limit})
		assert.ErrorIs(t, err, errs.ErrBudgetNotFound)
	})
}

func TestBudgetDelete(t *testing.T) {
	ctx := context.Background()
	budgets, _, userID := newFixture(t)

	b, err := budgets.Create(ctx, userID, "Taxi", "1000.00", "")
	require.NoError(t, err)

	assert.ErrorIs(t, budgets.Delete(ctx, userID+1, b.ID), errs.ErrBudgetNotFound)
	require.NoError(t, budgets.Delete(ctx, userID, b.ID))

	list, err := budgets.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
