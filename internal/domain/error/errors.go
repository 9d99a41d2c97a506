package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation          = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidCredentials  = 4003
	CodeEmailTaken          = 4004
	CodeDuplicateBudget     = 4005
	CodeBudgetExceeded      = 4006
	CodeInsufficientFunds   = 4007
	CodeCardHasTransactions = 4008
	CodeConstraintViolation = 4009
	CodeNotFound            = 4040
	CodePoolLocked          = 4230

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrValidation is returned for malformed or out-of-range input
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when an amount cannot be parsed as money
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNonPositiveAmount is returned when an amount is zero or negative
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrAmountOverflow is returned when an amount does not fit in cents
	ErrAmountOverflow = errors.New("amount is too large")

	// ErrInvalidTransactionType is returned when type is not INCOME or EXPENSE
	ErrInvalidTransactionType = errors.New("transaction type must be INCOME or EXPENSE")

	// ErrInvalidPeriod is returned for unsupported budget periods
	ErrInvalidPeriod = errors.New("only MONTH period is supported")

	// ErrInvalidCredentials is returned when email or password do not match
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering an already used email
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInsufficientFunds is returned when an expense exceeds the pool balance
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBudgetExceeded is returned when an expense would break a monthly budget
	ErrBudgetExceeded = errors.New("budget limit exceeded")

	// ErrDuplicateBudget is returned when a budget for the category already exists
	ErrDuplicateBudget = errors.New("budget for this category already exists")

	// ErrCardHasTransactions is returned when deleting a card that still has rows
	ErrCardHasTransactions = errors.New("card has transactions")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrCardNotFound is returned when a card doesn't exist or belongs to another user
	ErrCardNotFound = errors.New("card not found")

	// ErrGoalNotFound is returned when a goal doesn't exist or belongs to another user
	ErrGoalNotFound = errors.New("goal not found")

	// ErrBudgetNotFound is returned when a budget doesn't exist or belongs to another user
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrTemplateNotFound is returned when a template doesn't exist or belongs to another user
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTransactionNotFound is returned when a transaction doesn't exist or belongs to another user
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrContributionNotFound is returned when a goal contribution doesn't exist
	ErrContributionNotFound = errors.New("contribution not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrPoolLocked is returned when a pool is locked by a concurrent operation
	ErrPoolLocked = errors.New("pool is locked by another operation")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem reaching the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrNonPositiveAmount),
		errors.Is(err, ErrAmountOverflow):
		return CodeInvalidAmount
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidTransactionType),
		errors.Is(err, ErrInvalidPeriod):
		return CodeValidation
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrEmailTaken):
		return CodeEmailTaken
	case errors.Is(err, ErrDuplicateBudget):
		return CodeDuplicateBudget
	case errors.Is(err, ErrBudgetExceeded):
		return CodeBudgetExceeded
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrCardHasTransactions):
		return CodeCardHasTransactions
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case IsNotFoundError(err):
		return CodeNotFound
	case errors.Is(err, ErrPoolLocked):
		return CodePoolLocked
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError provides detailed error information for a rejected expense
type InsufficientFundsError struct {
	UserID         uint64
	CardID         *uint64 // nil means the cash pool
	RequiredCents  int64
	AvailableCents int64
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	pool := "cash"
	if e.CardID != nil {
		pool = fmt.Sprintf("card %d", *e.CardID)
	}
	return fmt.Sprintf("insufficient funds in %s for user %d: required %d, available %d cents",
		pool, e.UserID, e.RequiredCents, e.AvailableCents)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":      "insufficient_funds",
		"user_id":         e.UserID,
		"required_cents":  e.RequiredCents,
		"available_cents": e.AvailableCents,
		"error_code":      CodeInsufficientFunds,
	}
	if e.CardID != nil {
		fields["card_id"] = *e.CardID
	}
	return fields
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(userID uint64, cardID *uint64, requiredCents, availableCents int64) error {
	return &InsufficientFundsError{
		UserID:         userID,
		CardID:         cardID,
		RequiredCents:  requiredCents,
		AvailableCents: availableCents,
	}
}

// BudgetExceededError provides detailed error information for a budget rejection
type BudgetExceededError struct {
	UserID         uint64
	Category       string
	LimitCents     int64
	SpentCents     int64
	CandidateCents int64
}

// Error implements the error interface
func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("budget for category %q exceeded: %d + %d > %d cents",
		e.Category, e.SpentCents, e.CandidateCents, e.LimitCents)
}

// Is checks if the target error is an ErrBudgetExceeded
func (e *BudgetExceededError) Is(target error) bool {
	return target == ErrBudgetExceeded
}

// LogFields returns a map of fields for structured logging
func (e *BudgetExceededError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "budget_exceeded",
		"user_id":         e.UserID,
		"category":        e.Category,
		"limit_cents":     e.LimitCents,
		"spent_cents":     e.SpentCents,
		"candidate_cents": e.CandidateCents,
		"error_code":      CodeBudgetExceeded,
	}
}

// NewBudgetExceededError creates a new detailed budget exceeded error
func NewBudgetExceededError(userID uint64, category string, limitCents, spentCents, candidateCents int64) error {
	return &BudgetExceededError{
		UserID:         userID,
		Category:       category,
		LimitCents:     limitCents,
		SpentCents:     spentCents,
		CandidateCents: candidateCents,
	}
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsBudgetExceededError checks if the error is a budget rejection
func IsBudgetExceededError(err error) bool {
	return errors.Is(err, ErrBudgetExceeded)
}

// IsValidationError checks if the error is any malformed-input error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNonPositiveAmount) ||
		errors.Is(err, ErrAmountOverflow) ||
		errors.Is(err, ErrInvalidTransactionType) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCardNotFound) ||
		errors.Is(err, ErrGoalNotFound) ||
		errors.Is(err, ErrBudgetNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrContributionNotFound)
}

// IsConflictError checks if the error should surface as a conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDuplicateBudget) ||
		errors.Is(err, ErrBudgetExceeded) ||
		errors.Is(err, ErrPoolLocked)
}

// IsPoolLockedError checks if the error is related to a locked pool
func IsPoolLockedError(err error) bool {
	return errors.Is(err, ErrPoolLocked)
}
