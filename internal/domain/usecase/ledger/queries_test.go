package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "fintrack/internal/domain/error"
	"fintrack/internal/domain/port/persistence"
	"fintrack/internal/domain/usecase/usecasetest"
)

func TestQueriesList(t *testing.T) {
	ctx := context.Background()
	pipeline, store, userID := newTestPipeline(t)
	card := seedCard(t, store, userID)
	queries := NewQueries(store, usecasetest.NewNopLogger())

	_, err := pipeline.Admit(ctx, userID, AdmitRequest{Type: "INCOME", Amount: "500.00", Category: "Salary"})
	require.NoError(t, err)
	_, err = pipeline.Admit(ctx, userID, AdmitRequest{Type: "INCOME", Amount: "100.00", CardUID: card.CardUID})
	require.NoError(t, err)
	_, err = pipeline.Admit(ctx, userID, AdmitRequest{Type: "EXPENSE", Amount: "20.00", Category: "Food"})
	require.NoError(t, err)

	t.Run("Newest first with card tokens joined", func(t *testing.T) {
		rows, err := queries.List(ctx, userID, persistence.ListFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 3)

		// Same instant, so insertion order breaks the tie
		assert.Equal(t, "Food", rows[0].Category)
		assert.Equal(t, card.CardUID, rows[1].CardUID)
		assert.Equal(t, card.Mask, rows[1].CardMask)
		assert.Empty(t, rows[2].CardUID)
	})

	t.Run("Type filter", func(t *testing.T) {
		rows, err := queries.List(ctx, userID, persistence.ListFilter{Type: "EXPENSE"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Food", rows[0].Category)
	})

	t.Run("Category filter", func(t *testing.T) {
		rows, err := queries.List(ctx, userID, persistence.ListFilter{Category: "Salary"})
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("Limit is clamped", func(t *testing.T) {
		rows, err := queries.List(ctx, userID, persistence.ListFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("Other users see nothing", func(t *testing.T) {
		rows, err := queries.List(ctx, userID+1, persistence.ListFilter{})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestQueriesDelete(t *testing.T) {
	ctx := context.Background()
	pipeline, store, userID := newTestPipeline(t)
	queries := NewQueries(store, usecasetest.NewNopLogger())

	txn, err := pipeline.Admit(ctx, userID, AdmitRequest{Type: "INCOME", Amount: "100.00"})
	require.NoError(t, err)

	t.Run("Owner scoping", func(t *testing.T) {
		err := queries.Delete(ctx, userID+1, txn.ID)
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("Deleting shifts the derived balance", func(t *testing.T) {
		require.NoError(t, queries.Delete(ctx, userID, txn.ID))
		assert.Equal(t, int64(0), cashBalance(t, store, userID))

		err := queries.Delete(ctx, userID, txn.ID)
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}

func TestClampLimit(t *testing.T) {
	testCases := []struct {
		name     string
		limit    int
		expected int
	}{
		{"Zero falls back to default", 0, DefaultListLimit},
		{"Negative falls back to default", -5, DefaultListLimit},
		{"In range passes through", 42, 42},
		{"Above cap is clamped", 500, MaxListLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, clampLimit(tc.limit, DefaultListLimit))
		})
	}
}
