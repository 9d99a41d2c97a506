package persistence

import (
	"context"

	"fintrack/internal/domain/entity"
)

// GoalRepository provides owner-scoped access to goals and their
// contributions
type GoalRepository interface {
	// Create inserts a new goal and sets its ID
	Create(ctx context.Context, goal *entity.Goal) error

	// GetByID retrieves an owner-scoped goal
	//
	// Possible errors:
	// - ErrGoalNotFound
	GetByID(ctx context.Context, userID, goalID uint64) (*entity.Goal, error)

	// ListByUser returns the user's goals, newest first
	ListByUser(ctx context.Context, userID uint64) ([]entity.Goal, error)

	// Update replaces the mutable fields of a goal
	//
	// Possible errors:
	// - ErrGoalNotFound
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete removes the goal row only; the compensating cascade over
	// contributions and linked transactions is driven by the usecase
	//
	// Possible errors:
	// - ErrGoalNotFound
	Delete(ctx context.Context, userID, goalID uint64) error

	// AddContribution inserts a contribution row and sets its ID
	AddContribution(ctx context.Context, c *entity.GoalContribution) error

	// DeleteContribution removes a single contribution
	//
	// Possible errors:
	// - ErrContributionNotFound
	DeleteContribution(ctx context.Context, userID, goalID, contributionID uint64) error

	// DeleteContributions removes all contributions of a goal
	DeleteContributions(ctx context.Context, userID, goalID uint64) error

	// ContributionTxIDs collects the linked transaction ids of a goal's
	// contributions, for the compensating delete
	ContributionTxIDs(ctx context.Context, userID, goalID uint64) ([]uint64, error)

	// SavedByGoal returns contribution sums grouped by goal id
	SavedByGoal(ctx context.Context, userID uint64) (map[uint64]int64, error)
}
