package entity

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	errs "fintrack/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// ParseAmountToCents parses a client-supplied amount string ("10", "10.5",
// "10.50") into integer cents. The value must be strictly positive; signs
// are always derived from the transaction type, never from the input.
func ParseAmountToCents(amount string) (int64, error) {
	amount = strings.TrimSpace(strings.ReplaceAll(amount, ",", "."))
	if amount == "" {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, amount)
	}
	if d.Exponent() < -MaxDecimalPlaces {
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}
	if !d.IsPositive() {
		return 0, errs.ErrNonPositiveAmount
	}

	cents := d.Shift(MaxDecimalPlaces)
	if !cents.BigInt().IsInt64() || cents.IntPart() > math.MaxInt64/2 {
		return 0, errs.ErrAmountOverflow
	}
	return cents.IntPart(), nil
}

// CentsToString converts integer cents to a decimal string with two places.
// 1015 becomes "10.15", -50 becomes "-0.50".
func CentsToString(cents int64) string {
	return decimal.NewFromInt(cents).Shift(-MaxDecimalPlaces).StringFixed(MaxDecimalPlaces)
}

// AbsCents returns the magnitude of a signed cents value
func AbsCents(cents int64) int64 {
	if cents < 0 {
		return -cents
	}
	return cents
}
