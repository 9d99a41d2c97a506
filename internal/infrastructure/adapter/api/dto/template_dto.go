package dto

import (
	"time"

	"fintrack/internal/domain/entity"
)

// TemplateRequest represents the API request for creating a template
type TemplateRequest struct {
	Title       string `json:"title" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=INCOME EXPENSE income expense"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	CardUID     string `json:"cardUid"`
}

// TemplateUseRequest carries optional overrides applied at instantiation
type TemplateUseRequest struct {
	Type        *string `json:"type"`
	Amount      *string `json:"amount"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	CardUID     *string `json:"cardUid"`
}

// TemplateResponse represents a template in API form
type TemplateResponse struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	CardUID     string `json:"cardUid,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// NewTemplateResponse maps a template entity to its API shape
func NewTemplateResponse(t *entity.TxTemplate) TemplateResponse {
	return TemplateResponse{
		ID:          t.ID,
		Title:       t.Title,
		Type:        string(t.Type),
		Amount:      t.Amount(),
		Category:    t.Category,
		Description: t.Description,
		CardUID:     t.CardUID,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewTemplateListResponse maps templates to their API shape
func NewTemplateListResponse(templates []entity.TxTemplate) []TemplateResponse {
	out := make([]TemplateResponse, 0, len(templates))
	for i := range templates {
		out = append(out, NewTemplateResponse(&templates[i]))
	}
	return out
}
