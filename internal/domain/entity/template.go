package entity

import (
	"fmt"
	"strings"
	"time"

	errs "fintrack/internal/domain/error"
)

// TxTemplate is a reusable transaction blueprint. Instantiating one copies
// its fields into a fresh transaction that goes through the same admission
// checks as manual entry.
type TxTemplate struct {
	ID          uint64
	UserID      uint64
	Title       string
	Type        TransactionType
	AmountCents int64
	Category    string
	Description string
	CardUID     string
	CreatedAt   time.Time
}

// NewTxTemplate validates and builds a template
func NewTxTemplate(userID uint64, title, txType, amount, category, description, cardUID string, createdAt time.Time) (*TxTemplate, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrValidation)
	}

	t := TransactionType(strings.ToUpper(strings.TrimSpace(txType)))
	if t != TypeIncome && t != TypeExpense {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidTransactionType, txType)
	}

	cents, err := ParseAmountToCents(amount)
	if err != nil {
		return nil, err
	}

	return &TxTemplate{
		UserID:      userID,
		Title:       title,
		Type:        t,
		AmountCents: cents,
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
		CardUID:     strings.TrimSpace(cardUID),
		CreatedAt:   createdAt,
	}, nil
}

// Amount returns the template amount formatted with two decimal places
func (t *TxTemplate) Amount() string {
	return CentsToString(t.AmountCents)
}
