package entity

import (
	"fmt"
	"strings"
	"time"

	errs "fintrack/internal/domain/error"
)

// SavingsCategory is the reserved category stamped on transactions created
// by goal contributions. Budget enforcement never applies to it.
const SavingsCategory = "Savings"

// DefaultContributionDescription is used when a contribution request
// carries no description for its linked transaction
const DefaultContributionDescription = "Goal contribution"

// Goal is a savings target. The saved amount is always the sum of its
// contributions, never stored.
type Goal struct {
	ID          uint64
	UserID      uint64
	Title       string
	TargetCents int64
	Deadline    *time.Time
	CreatedAt   time.Time
}

// NewGoal validates and builds a savings goal
func NewGoal(userID uint64, title, target string, deadline *time.Time, createdAt time.Time) (*Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrValidation)
	}

	targetCents, err := ParseAmountToCents(target)
	if err != nil {
		return nil, err
	}

	return &Goal{
		UserID:      userID,
		Title:       title,
		TargetCents: targetCents,
		Deadline:    deadline,
		CreatedAt:   createdAt,
	}, nil
}

// Target returns the target amount formatted with two decimal places
func (g *Goal) Target() string {
	return CentsToString(g.TargetCents)
}

// GoalContribution is a deposit toward a goal. TxID links the EXPENSE row
// that debited the funding pool, when one was created; deleting the goal
// deletes those rows too, refunding the pool by removal.
type GoalContribution struct {
	ID          uint64
	UserID      uint64
	GoalID      uint64
	AmountCents int64
	OccurredAt  time.Time
	TxID        *uint64
}
