package dto

import (
	"time"

	"fintrack/internal/domain/entity"
	"fintrack/internal/domain/usecase/ledger"
)

// TransactionRequest represents the API request for creating a transaction.
// Amount is an unsigned magnitude string; the sign is derived from Type.
type TransactionRequest struct {
	Type        string `json:"type" binding:"required,oneof=INCOME EXPENSE income expense"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	CardUID     string `json:"cardUid"`
	OccurredAt  string `json:"occurredAt"` // RFC3339, defaults to now
}

// TransactionResponse represents a ledger row in API form
type TransactionResponse struct {
	ID          uint64 `json:"id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"` // signed, two decimal places
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	CardUID     string `json:"cardUid,omitempty"`
	CardMask    string `json:"cardMask,omitempty"`
	IsMock      bool   `json:"isMock"`
	OccurredAt  string `json:"occurredAt"`
	CreatedAt   string `json:"createdAt"`
}

// NewTransactionResponse maps a transaction entity to its API shape
func NewTransactionResponse(t *entity.Transaction, cardUID, cardMask string) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      t.Amount(),
		Category:    t.Category,
		Description: t.Description,
		CardUID:     cardUID,
		CardMask:    cardMask,
		IsMock:      t.IsMock,
		OccurredAt:  t.OccurredAt.UTC().Format(time.RFC3339),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewTransactionListResponse maps joined listing rows to their API shape
func NewTransactionListResponse(views []entity.TransactionView) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(views))
	for i := range views {
		out = append(out, NewTransactionResponse(&views[i].Transaction, views[i].CardUID, views[i].CardMask))
	}
	return out
}

// BalanceSummaryResponse represents the derived balance overview
type BalanceSummaryResponse struct {
	Cards string `json:"cards"`
	Cash  string `json:"cash"`
	Total string `json:"total"`
}

// NewBalanceSummaryResponse maps the summary to its API shape
func NewBalanceSummaryResponse(s *ledger.Summary) BalanceSummaryResponse {
	return BalanceSummaryResponse{
		Cards: s.Cards(),
		Cash:  s.Cash(),
		Total: s.Total(),
	}
}
