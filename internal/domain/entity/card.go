package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	errs "fintrack/internal/domain/error"
)

// Default values for mock-linked cards
const (
	DefaultCardNickname = "Mock card"
	DefaultCardCurrency = "KGS"
)

// Card is a named money container. It stores no balance; the balance of a
// card is always the sum of its ledger rows.
type Card struct {
	ID          uint64
	UserID      uint64
	CardUID     string // externally exposed token, never the row id
	Mask        string
	Last4       string
	ExpiryMonth *int
	ExpiryYear  *int
	Nickname    string
	Currency    string
	IsMock      bool
	CreatedAt   time.Time
}

// NewMockCard creates a mock card for linking. cardUID is generated by the
// caller so the entity stays free of randomness.
func NewMockCard(userID uint64, cardUID, last4, nickname, currency string, expiryMonth, expiryYear *int, createdAt time.Time) (*Card, error) {
	last4 = cleanDigits(last4)
	if len(last4) != 4 {
		return nil, fmt.Errorf("%w: last4 must be exactly 4 digits", errs.ErrValidation)
	}
	if expiryMonth != nil && (*expiryMonth < 1 || *expiryMonth > 12) {
		return nil, fmt.Errorf("%w: expiry month out of range", errs.ErrValidation)
	}

	if strings.TrimSpace(nickname) == "" {
		nickname = DefaultCardNickname
	}
	if strings.TrimSpace(currency) == "" {
		currency = DefaultCardCurrency
	}

	return &Card{
		UserID:      userID,
		CardUID:     cardUID,
		Mask:        "**** **** **** " + last4,
		Last4:       last4,
		ExpiryMonth: expiryMonth,
		ExpiryYear:  expiryYear,
		Nickname:    nickname,
		Currency:    currency,
		IsMock:      true,
		CreatedAt:   createdAt,
	}, nil
}

func cleanDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
