package entity

import (
	"fmt"
	"strings"
	"time"

	errs "fintrack/internal/domain/error"
)

// TransactionType classifies a ledger row as money in or money out
type TransactionType string

// Transaction types
const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// Transaction is an immutable signed monetary event. AmountCents carries the
// sign derived from the type: positive for INCOME, negative for EXPENSE.
// Rows are only ever inserted or deleted, never updated.
type Transaction struct {
	ID          uint64
	UserID      uint64
	CardID      *uint64 // nil means the cash pool
	AmountCents int64
	Type        TransactionType
	Category    string
	Description string
	OccurredAt  time.Time
	IsMock      bool
	CreatedAt   time.Time
}

// NewTransaction validates the input and builds a transaction with the
// signed amount derived from the type. The caller resolves the card token
// to an internal id before or after construction; occurredAt falls back to
// now when nil.
func NewTransaction(
	userID uint64,
	cardID *uint64,
	txType string,
	amount string,
	category string,
	description string,
	occurredAt *time.Time,
	now time.Time,
) (*Transaction, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(txType)))
	if t != TypeIncome && t != TypeExpense {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidTransactionType, txType)
	}

	cents, err := ParseAmountToCents(amount)
	if err != nil {
		return nil, err
	}

	signed := cents
	if t == TypeExpense {
		signed = -cents
	}

	when := now
	if occurredAt != nil && !occurredAt.IsZero() {
		when = *occurredAt
	}

	return &Transaction{
		UserID:      userID,
		CardID:      cardID,
		AmountCents: signed,
		Type:        t,
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
		OccurredAt:  when,
		IsMock:      true,
		CreatedAt:   now,
	}, nil
}

// Magnitude returns the unsigned amount in cents
func (t *Transaction) Magnitude() int64 {
	return AbsCents(t.AmountCents)
}

// Amount returns the signed amount formatted with two decimal places
func (t *Transaction) Amount() string {
	return CentsToString(t.AmountCents)
}

// IsExpense reports whether this row debits its pool
func (t *Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// TransactionView is a read model for listings: a ledger row joined with
// the display token of the card it belongs to, if any.
type TransactionView struct {
	Transaction
	CardUID  string
	CardMask string
}
