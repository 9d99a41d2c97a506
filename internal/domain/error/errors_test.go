package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"Validation", ErrValidation, CodeValidation},
		{"Wrapped validation", fmt.Errorf("%w: name is required", ErrValidation), CodeValidation},
		{"Invalid transaction type", ErrInvalidTransactionType, CodeValidation},
		{"Invalid period", ErrInvalidPeriod, CodeValidation},
		{"Invalid amount", ErrInvalidAmount, CodeInvalidAmount},
		{"Non-positive amount", ErrNonPositiveAmount, CodeInvalidAmount},
		{"Amount overflow", ErrAmountOverflow, CodeInvalidAmount},
		{"Invalid credentials", ErrInvalidCredentials, CodeInvalidCredentials},
		{"Email taken", ErrEmailTaken, CodeEmailTaken},
		{"Duplicate budget", ErrDuplicateBudget, CodeDuplicateBudget},
		{"Budget exceeded", ErrBudgetExceeded, CodeBudgetExceeded},
		{"Structured budget exceeded", NewBudgetExceededError(1, "Taxi", 100000, 80000, 40000), CodeBudgetExceeded},
		{"Insufficient funds", ErrInsufficientFunds, CodeInsufficientFunds},
		{"Structured insufficient funds", NewInsufficientFundsError(1, nil, 10000, 0), CodeInsufficientFunds},
		{"Card has transactions", ErrCardHasTransactions, CodeCardHasTransactions},
		{"Constraint violation", ErrConstraintViolation, CodeConstraintViolation},
		{"User not found", ErrUserNotFound, CodeNotFound},
		{"Card not found", ErrCardNotFound, CodeNotFound},
		{"Goal not found", ErrGoalNotFound, CodeNotFound},
		{"Budget not found", ErrBudgetNotFound, CodeNotFound},
		{"Template not found", ErrTemplateNotFound, CodeNotFound},
		{"Transaction not found", ErrTransactionNotFound, CodeNotFound},
		{"Contribution not found", ErrContributionNotFound, CodeNotFound},
		{"Pool locked", ErrPoolLocked, CodePoolLocked},
		{"Database connection", ErrDatabaseConnection, CodeInternalServer},
		{"Unknown error", errors.New("boom"), CodeInternalServer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if code := ErrorCode(tc.err); code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestInsufficientFundsError(t *testing.T) {
	cardID := uint64(7)
	err := NewInsufficientFundsError(42, &cardID, 10000, 2500)

	if !errors.Is(err, ErrInsufficientFunds) {
		t.Error("expected errors.Is to match ErrInsufficientFunds")
	}

	var detailed *InsufficientFundsError
	if !errors.As(err, &detailed) {
		t.Fatal("expected errors.As to extract *InsufficientFundsError")
	}
	if detailed.RequiredCents != 10000 || detailed.AvailableCents != 2500 {
		t.Errorf("unexpected amounts: required %d, available %d", detailed.RequiredCents, detailed.AvailableCents)
	}

	fields := detailed.LogFields()
	if fields["card_id"] != cardID {
		t.Errorf("expected card_id %d in log fields, got %v", cardID, fields["card_id"])
	}

	cashErr := NewInsufficientFundsError(42, nil, 100, 0)
	var cash *InsufficientFundsError
	if !errors.As(cashErr, &cash) {
		t.Fatal("expected errors.As to extract *InsufficientFundsError")
	}
	if _, ok := cash.LogFields()["card_id"]; ok {
		t.Error("cash pool error should not carry card_id")
	}
}

func TestBudgetExceededError(t *testing.T) {
	err := NewBudgetExceededError(42, "Taxi", 100000, 80000, 40000)

	if !errors.Is(err, ErrBudgetExceeded) {
		t.Error("expected errors.Is to match ErrBudgetExceeded")
	}

	var detailed *BudgetExceededError
	if !errors.As(err, &detailed) {
		t.Fatal("expected errors.As to extract *BudgetExceededError")
	}
	if detailed.Category != "Taxi" {
		t.Errorf("expected category Taxi, got %s", detailed.Category)
	}
	if detailed.LogFields()["limit_cents"] != int64(100000) {
		t.Error("expected limit_cents in log fields")
	}
}

func TestPredicates(t *testing.T) {
	testCases := []struct {
		name      string
		predicate func(error) bool
		match     []error
		noMatch   []error
	}{
		{
			name:      "IsValidationError",
			predicate: IsValidationError,
			match:     []error{ErrValidation, ErrInvalidAmount, ErrNonPositiveAmount, ErrAmountOverflow, ErrInvalidTransactionType, ErrInvalidPeriod},
			noMatch:   []error{ErrUserNotFound, ErrInsufficientFunds},
		},
		{
			name:      "IsNotFoundError",
			predicate: IsNotFoundError,
			match:     []error{ErrNotFound, ErrUserNotFound, ErrCardNotFound, ErrGoalNotFound, ErrBudgetNotFound, ErrTemplateNotFound, ErrTransactionNotFound, ErrContributionNotFound},
			noMatch:   []error{ErrValidation, ErrPoolLocked},
		},
		{
			name:      "IsConflictError",
			predicate: IsConflictError,
			match:     []error{ErrDuplicateBudget, ErrBudgetExceeded, ErrPoolLocked, NewBudgetExceededError(1, "Food", 100, 90, 20)},
			noMatch:   []error{ErrValidation, ErrUserNotFound},
		},
		{
			name:      "IsInsufficientFundsError",
			predicate: IsInsufficientFundsError,
			match:     []error{ErrInsufficientFunds, NewInsufficientFundsError(1, nil, 100, 0)},
			noMatch:   []error{ErrBudgetExceeded},
		},
		{
			name:      "IsPoolLockedError",
			predicate: IsPoolLockedError,
			match:     []error{ErrPoolLocked, fmt.Errorf("%w: retry", ErrPoolLocked)},
			noMatch:   []error{ErrInsufficientFunds},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, err := range tc.match {
				if !tc.predicate(err) {
					t.Errorf("expected %s to match %v", tc.name, err)
				}
			}
			for _, err := range tc.noMatch {
				if tc.predicate(err) {
					t.Errorf("expected %s not to match %v", tc.name, err)
				}
			}
		})
	}
}
