package dto

import (
	"time"

	"fintrack/internal/domain/entity"
	"fintrack/internal/domain/usecase/card"
)

// MockLinkRequest represents the API request for linking a mock card
type MockLinkRequest struct {
	Last4       string `json:"last4" binding:"required"`
	Nickname    string `json:"nickname"`
	Currency    string `json:"currency"`
	ExpiryMonth *int   `json:"expiryMonth"`
	ExpiryYear  *int   `json:"expiryYear"`
}

// CardResponse represents a card with its derived balance
type CardResponse struct {
	CardUID     string `json:"cardUid"`
	Mask        string `json:"mask"`
	Last4       string `json:"last4"`
	ExpiryMonth *int   `json:"expiryMonth,omitempty"`
	ExpiryYear  *int   `json:"expiryYear,omitempty"`
	Nickname    string `json:"nickname"`
	Currency    string `json:"currency"`
	IsMock      bool   `json:"isMock"`
	Balance     string `json:"balance"`
	CreatedAt   string `json:"createdAt"`
}

// NewCardResponse maps a card entity to its API shape. The internal row
// id never leaves the server; cardUid is the only card identifier.
func NewCardResponse(c *entity.Card, balance string) CardResponse {
	return CardResponse{
		CardUID:     c.CardUID,
		Mask:        c.Mask,
		Last4:       c.Last4,
		ExpiryMonth: c.ExpiryMonth,
		ExpiryYear:  c.ExpiryYear,
		Nickname:    c.Nickname,
		Currency:    c.Currency,
		IsMock:      c.IsMock,
		Balance:     balance,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewCardListResponse maps cards with balances to their API shape
func NewCardListResponse(cards []card.CardWithBalance) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for i := range cards {
		out = append(out, NewCardResponse(&cards[i].Card, cards[i].Balance()))
	}
	return out
}
