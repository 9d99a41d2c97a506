package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "fintrack/internal/domain/error"
)

func TestNewTransaction(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Income carries a positive amount", func(t *testing.T) {
		txn, err := NewTransaction(1, nil, "INCOME", "150.00", "Salary", "March", nil, now)
		assert.NoError(t, err)
		assert.Equal(t, TypeIncome, txn.Type)
		assert.Equal(t, int64(15000), txn.AmountCents)
		assert.Equal(t, int64(15000), txn.Magnitude())
		assert.False(t, txn.IsExpense())
	})

	t.Run("Expense carries a negative amount", func(t *testing.T) {
		txn, err := NewTransaction(1, nil, "EXPENSE", "100.00", "Food", "", nil, now)
		assert.NoError(t, err)
		assert.Equal(t, TypeExpense, txn.Type)
		assert.Equal(t, int64(-10000), txn.AmountCents)
		assert.Equal(t, int64(10000), txn.Magnitude())
		assert.True(t, txn.IsExpense())
	})

	t.Run("Type is case insensitive", func(t *testing.T) {
		txn, err := NewTransaction(1, nil, "expense", "10", "", "", nil, now)
		assert.NoError(t, err)
		assert.Equal(t, TypeExpense, txn.Type)
	})

	t.Run("Unknown type is rejected", func(t *testing.T) {
		_, err := NewTransaction(1, nil, "TRANSFER", "10", "", "", nil, now)
		assert.ErrorIs(t, err, errs.ErrInvalidTransactionType)
	})

	t.Run("Amount errors propagate", func(t *testing.T) {
		_, err := NewTransaction(1, nil, "INCOME", "-5", "", "", nil, now)
		assert.ErrorIs(t, err, errs.ErrNonPositiveAmount)
	})

	t.Run("OccurredAt falls back to now", func(t *testing.T) {
		txn, err := NewTransaction(1, nil, "INCOME", "10", "", "", nil, now)
		assert.NoError(t, err)
		assert.Equal(t, now, txn.OccurredAt)
	})

	t.Run("Explicit occurredAt is kept", func(t *testing.T) {
		when := now.AddDate(0, 0, -3)
		txn, err := NewTransaction(1, nil, "INCOME", "10", "", "", &when, now)
		assert.NoError(t, err)
		assert.Equal(t, when, txn.OccurredAt)
		assert.Equal(t, now, txn.CreatedAt)
	})

	t.Run("Category and description are trimmed", func(t *testing.T) {
		txn, err := NewTransaction(1, nil, "INCOME", "10", "  Salary ", " bonus ", nil, now)
		assert.NoError(t, err)
		assert.Equal(t, "Salary", txn.Category)
		assert.Equal(t, "bonus", txn.Description)
	})
}

func TestTransactionAmount(t *testing.T) {
	now := time.Now()
	txn, err := NewTransaction(1, nil, "EXPENSE", "10.15", "", "", nil, now)
	assert.NoError(t, err)
	assert.Equal(t, "-10.15", txn.Amount())
}
