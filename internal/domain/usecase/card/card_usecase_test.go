package card

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

func newFixture(t *testing.T) (*UseCase, *ledger.Pipeline, *usecasetest.Store, uint64) {
	t.Helper()
	store := usecasetest.NewStore()
	ctx := context.Background()

	user, err := entity.NewUser("Alice", "alice@example.com", "hash", testNow)
	require.NoError(t, err)
	require.NoError(t, store.Users(ctx).Create(ctx, user))

	clock := usecasetest.NewClock(testNow)
	logger := usecasetest.NewNopLogger()
	return NewUseCase(store, clock, logger), ledger.NewPipeline(store, clock, logger), store, user.ID
}

func TestMockLink(t *testing.T) {
	ctx := context.Background()
	cards, _, _, userID := newFixture(t)

	t.Run("Token is generated and unique", func(t *testing.T) {
		first, err := cards.MockLink(ctx, userID, MockLinkRequest{Last4: "1234"})
		require.NoError(t, err)
		second, err := cards.MockLink(ctx, userID, MockLinkRequest{Last4: "5678"})
		require.NoError(t, err)

		assert.NotEmpty(t, first.CardUID)
		assert.NotEqual(t, first.CardUID, second.CardUID)
		assert.Equal(t, "**** **** **** 1234", first.Mask)
	})

	t.Run("Validation errors propagate", func(t *testing.T) {
		_, err := cards.MockLink(ctx, userID, MockLinkRequest{Last4: "12"})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestCardList(t *testing.T) {
	ctx := context.Background()
	cards, pipeline, _, userID := newFixture(t)

	card, err := cards.MockLink(ctx, userID, MockLinkRequest{Last4: "1234"})
	require.NoError(t, err)

	_, err = pipeline.Admit(ctx, userID, ledger.AdmitRequest{Type: "INCOME", Amount: "120.00", CardUID: card.CardUID})
	require.NoError(t, err)
	_, err = pipeline.Admit(ctx, userID, ledger.AdmitRequest{Type: "EXPENSE", Amount: "20.00", CardUID: card.CardUID})
	require.NoError(t, err)

	list, err := cards.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(10000), list[0].BalanceCents)
	assert.Equal(t, "100.00", list[0].Balance())

	other, err := cards.List(ctx, userID+1)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCardDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Card with transactions is refused", func(t *testing.T) {
		cards, pipeline, store, userID := newFixture(t)
		card, err := cards.MockLink(ctx, userID, MockLinkRequest{Last4: "1234"})
		require.NoError(t, err)
		_, err = pipeline.Admit(ctx, userID, ledger.AdmitRequest{Type: "INCOME", Amount: "10.00", CardUID: card.CardUID})
		require.NoError(t, err)

		err = cards.Delete(ctx, userID, card.CardUID, false)
		assert.ErrorIs(t, err, errs.ErrCardHasTransactions)

		// Refusal leaves everything in place
		_, err = store.Cards(ctx).GetByUID(ctx, userID, card.CardUID)
		assert.NoError(t, err)
	})

	t.Run("Force deletes the transactions too", func(t *testing.T) {
		cards, pipeline, store, userID := newFixture(t)
		card, err := cards.MockLink(ctx, userID, MockLinkRequest{Last4: "1234"})
		require.NoError(t, err)
		_, err = pipeline.Admit(ctx, userID, ledger.AdmitRequest{Type: "INCOME", Amount: "10.00", CardUID: card.CardUID})
		require.NoError(t, err)

		require.NoError(t, cards.Delete(ctx, userID, card.CardUID, true))

		_, err = store.Cards(ctx).GetByUID(ctx, userID, card.CardUID)
		assert.ErrorIs(t, err, errs.ErrCardNotFound)

		rows, err := store.Ledger(ctx).List(ctx, userID, persistence.ListFilter{})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("Empty card deletes without force", func(t *testing.T) {
		cards, _, _, userID := newFixture(t)
		card, err := cards.MockLink(ctx, userID, MockLinkRequest{Last4: "1234"})
		require.NoError(t, err)

		assert.NoError(t, cards.Delete(ctx, userID, card.CardUID, false))
	})

	t.Run("Owner scoping", func(t *testing.T) {
		cards, _, _, userID := newFixture(t)
		card, err := cards.MockLink(ctx, userID, MockLinkRequest{Last4: "1234"})
		require.NoError(t, err)

		err = cards.Delete(ctx, userID+1, card.CardUID, false)
		assert.ErrorIs(t, err, errs.ErrCardNotFound)
	})
}

func TestCardTransactions(t *testing.T) {
	ctx := context.Background()
	cards, pipeline, _, userID := newFixture(t)

	card, err := cards.MockLink(ctx, userID, MockLinkRequest{Last4: "1234"})
	require.NoError(t, err)

	_, err = pipeline.Admit(ctx, userID, ledger.AdmitRequest{Type: "INCOME", Amount: "100.00", CardUID: card.CardUID})
	require.NoError(t, err)
	_, err = pipeline.Admit(ctx, userID, ledger.AdmitRequest{Type: "EXPENSE", Amount: "5.00", CardUID: card.CardUID})
	require.NoError(t, err)
	_, err = pipeline.Admit(ctx, userID, ledger.AdmitRequest{Type: "INCOME", Amount: "7.00"})
	require.NoError(t, err)

	rows, err := cards.Transactions(ctx, userID, card.CardUID, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Cash rows never show up in a card listing
	for _, row := range rows {
		require.NotNil(t, row.CardID)
		assert.Equal(t, card.ID, *row.CardID)
	}

	rows, err = cards.Transactions(ctx, userID, card.CardUID, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = cards.Transactions(ctx, userID, "no-such-card", 0)
	assert.ErrorIs(t, err, errs.ErrCardNotFound)
}
