package dto

import (
	"time"

	"fintrack/internal/domain/usecase/budget"
)

// BudgetRequest represents the API request for creating a budget
type BudgetRequest struct {
	Category string `json:"category" binding:"required"`
	Limit    string `json:"limit" binding:"required"`
	Period   string `json:"period"`
}

// BudgetUpdateRequest represents a partial budget update
type BudgetUpdateRequest struct {
	Category *string `json:"category"`
	Limit    *string `json:"limit"`
}

// BudgetResponse represents a budget with its derived month-to-date spend
type BudgetResponse struct {
	ID        uint64 `json:"id"`
	Category  string `json:"category"`
	Limit     string `json:"limit"`
	Period    string `json:"period"`
	Spent     string `json:"spent"`
	CreatedAt string `json:"createdAt"`
}

// NewBudgetResponse maps a budget with spend to its API shape
func NewBudgetResponse(b *budget.BudgetWithSpend) BudgetResponse {
	return BudgetResponse{
		ID:        b.ID,
		Category:  b.Category,
		Limit:     b.Limit(),
		Period:    string(b.Period),
		Spent:     b.Spent(),
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewBudgetListResponse maps budgets with spends to their API shape
func NewBudgetListResponse(budgets []budget.BudgetWithSpend) []BudgetResponse {
	out := make([]BudgetResponse, 0, len(budgets))
	for i := range budgets {
		out = append(out, NewBudgetResponse(&budgets[i]))
	}
	return out
}
