package dto

import (
	"fintrack/internal/domain/usecase/report"
)

// AlertResponse represents an advisory alert for the dashboard
type AlertResponse struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Category string `json:"category,omitempty"`
	CardMask string `json:"cardMask,omitempty"`
}

// NewAlertListResponse maps alerts to their API shape
func NewAlertListResponse(alerts []report.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, AlertResponse{
			Type:     a.Type,
			Title:    a.Title,
			Message:  a.Message,
			Severity: a.Severity,
			Category: a.Category,
			CardMask: a.CardMask,
		})
	}
	return out
}
