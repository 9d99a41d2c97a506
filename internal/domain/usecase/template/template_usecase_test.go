package template

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

func newFixture(t *testing.T) (*UseCase, *usecasetest.Store, *ledger.Pipeline, uint64) {
	t.Helper()
	store := usecasetest.NewStore()
	ctx := context.Background()

	user, err := entity.NewUser("Alice", "alice@example.com", "hash", testNow)
	require.NoError(t, err)
	require.NoError(t, store.Users(ctx).Create(ctx, user))

	clock := usecasetest.NewClock(testNow)
	logger := usecasetest.NewNopLogger()
	pipeline := ledger.NewPipeline(store, clock, logger)
	return NewUseCase(store, pipeline, clock, logger), store, pipeline, user.ID
}

func TestTemplateCreate(t *testing.T) {
	ctx := context.Background()
	templates, _, _, userID := newFixture(t)

	tpl, err := templates.Create(ctx, userID, CreateRequest{
		Title: "Morning coffee", Type: "EXPENSE", Amount: "4.50", Category: "Food",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(450), tpl.AmountCents)
	assert.Equal(t, entity.TypeExpense, tpl.Type)

	_, err = templates.Create(ctx, userID, CreateRequest{Title: "", Type: "EXPENSE", Amount: "1"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = templates.Create(ctx, userID, CreateRequest{Title: "Bad", Type: "TRANSFER", Amount: "1"})
	assert.ErrorIs(t, err, errs.ErrInvalidTransactionType)

	list, err := templates.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTemplateUse(t *testing.T) {
	ctx := context.Background()

	t.Run("Instantiation copies the blueprint", func(t *testing.T) {
		templates, _, pipeline, userID := newFixture(t)
		_, err := pipeline.Admit(ctx, userID, ledger.AdmitRequest{Type: "INCOME", Amount: "100.00"})
		require.NoError(t, err)

		tpl, err := templates.Create(ctx, userID, CreateRequest{
			Title: "Morning coffee", Type: "EXPENSE", Amount: "4.50", Category: "Food", Description: "latte",
		})
		require.NoError(t, err)

		txn, err := templates.Use(ctx, userID, tpl.ID, UseOverrides{})
		require.NoError(t, err)
		assert.Equal(t, int64(-450), txn.AmountCents)
		assert.Equal(t, "Food", txn.Category)
		assert.Equal(t, "latte", txn.Description)
	})

	t.Run("Overrides replace stored fields", func(t *testing.T) {
		templates, _, pipeline, userID := newFixture(t)
		_, err := pipeline.Admit(ctx, userID, ledger.AdmitRequest{Type: "INCOME", Amount: "100.00"})
		require.NoError(t, err)

		tpl, err := templates.Create(ctx, userID, CreateRequest{
			Title: "Morning coffee", Type: "EXPENSE", Amount: "4.50", Category: "Food",
		})
		require.NoError(t, err)

		amount := "6.00"
		category := "Treats"
		txn, err := templates.Use(ctx, userID, tpl.ID, UseOverrides{Amount: &amount, Category: &category})
		require.NoError(t, err)
		assert.Equal(t, int64(-600), txn.AmountCents)
		assert.Equal(t, "Treats", txn.Category)
	})

	t.Run("Admission checks still apply", func(t *testing.T) {
		templates, store, pipeline, userID := newFixture(t)

		tpl, err := templates.Create(ctx, userID, CreateRequest{
			Title: "Rent", Type: "EXPENSE", Amount: "500.00", Category: "Housing",
		})
		require.NoError(t, err)

		// Empty pool: the solvency guard rejects
		_, err = templates.Use(ctx, userID, tpl.ID, UseOverrides{})
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)

		// Funded but over budget: the enforcer rejects
		_, err = pipeline.Admit(ctx, userID, ledger.AdmitRequest{Type: "INCOME", Amount: "1000.00"})
		require.NoError(t, err)
		b, err := entity.NewBudget(userID, "Housing", "100.00", "MONTH", testNow)
		require.NoError(t, err)
		require.NoError(t, store.Budgets(ctx).Create(ctx, b))

		_, err = templates.Use(ctx, userID, tpl.ID, UseOverrides{})
		assert.ErrorIs(t, err, errs.ErrBudgetExceeded)
	})

	t.Run("Unknown template", func(t *testing.T) {
		templates, _, _, userID := newFixture(t)
		_, err := templates.Use(ctx, userID, 999, UseOverrides{})
		assert.ErrorIs(t, err, errs.ErrTemplateNotFound)
	})
}

func TestTemplateDelete(t *testing.T) {
	ctx := context.Background()
	templates, _, _, userID := newFixture(t)

	tpl, err := templates.Create(ctx, userID, CreateRequest{Title: "Rent", Type: "EXPENSE", Amount: "500.00"})
	require.NoError(t, err)

	assert.ErrorIs(t, templates.Delete(ctx, userID+1, tpl.ID), errs.ErrTemplateNotFound)
	require.NoError(t, templates.Delete(ctx, userID, tpl.ID))

	list, err := templates.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
