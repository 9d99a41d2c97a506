package dto

import (
	"time"

	"fintrack/internal/domain/entity"
	"fintrack/internal/domain/usecase/goal"
)

// GoalRequest represents the API request for creating a goal
type GoalRequest struct {
	Title    string `json:"title" binding:"required"`
	Target   string `json:"target" binding:"required"`
	Deadline string `json:"deadline"` // RFC3339, optional
}

// GoalUpdateRequest represents a partial goal update. An explicit null
// deadline clears it; an absent field keeps it.
type GoalUpdateRequest struct {
	Title         *string `json:"title"`
	Target        *string `json:"target"`
	Deadline      *string `json:"deadline"`
	ClearDeadline bool    `json:"clearDeadline"`
}

// ContributeRequest represents the API request for a goal contribution
type ContributeRequest struct {
	Amount      string `json:"amount" binding:"required"`
	CreateTx    bool   `json:"createTx"`
	CardUID     string `json:"cardUid"`
	Description string `json:"description"`
}

// GoalResponse represents a goal with its derived saved sum
type GoalResponse struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Target    string `json:"target"`
	Saved     string `json:"saved"`
	Deadline  string `json:"deadline,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// NewGoalResponse maps a goal with progress to its API shape
func NewGoalResponse(g *goal.GoalWithProgress) GoalResponse {
	out := GoalResponse{
		ID:        g.ID,
		Title:     g.Title,
		Target:    g.Target(),
		Saved:     g.Saved(),
		CreatedAt: g.CreatedAt.UTC().Format(time.RFC3339),
	}
	if g.Deadline != nil {
		out.Deadline = g.Deadline.UTC().Format(time.RFC3339)
	}
	return out
}

// NewGoalListResponse maps goals with progress to their API shape
func NewGoalListResponse(goals []goal.GoalWithProgress) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for i := range goals {
		out = append(out, NewGoalResponse(&goals[i]))
	}
	return out
}

// ContributionResponse represents a recorded goal contribution
type ContributionResponse struct {
	ID         uint64  `json:"id"`
	GoalID     uint64  `json:"goalId"`
	Amount     string  `json:"amount"`
	TxID       *uint64 `json:"txId,omitempty"`
	OccurredAt string  `json:"occurredAt"`
}

// NewContributionResponse maps a contribution entity to its API shape
func NewContributionResponse(c *entity.GoalContribution) ContributionResponse {
	return ContributionResponse{
		ID:         c.ID,
		GoalID:     c.GoalID,
		Amount:     entity.CentsToString(c.AmountCents),
		TxID:       c.TxID,
		OccurredAt: c.OccurredAt.UTC().Format(time.RFC3339),
	}
}
