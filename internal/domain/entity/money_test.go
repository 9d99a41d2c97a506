package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "fintrack/internal/domain/error"
)

func TestParseAmountToCents(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected int64
		}{
			{"100.00", 10000},
			{"0.01", 1},
			{"0.10", 10},
			{"1", 100},
			{"1.5", 150},
			{"10.15", 1015},
			{"1234567.89", 123456789},
			{"100,50", 10050}, // comma decimal separator
			{"  42  ", 4200},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				cents, err := ParseAmountToCents(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, cents)
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			errorType   error
			description string
		}{
			{"", errs.ErrInvalidAmount, "Empty string"},
			{"   ", errs.ErrInvalidAmount, "Whitespace only"},
			{"abc", errs.ErrInvalidAmount, "Non-numeric"},
			{"$100", errs.ErrInvalidAmount, "Currency symbol"},
			{"1.234", errs.ErrInvalidAmount, "Too many decimal places"},
			{"1.00.00", errs.ErrInvalidAmount, "Multiple decimal points"},
			{"0", errs.ErrNonPositiveAmount, "Zero"},
			{"0.00", errs.ErrNonPositiveAmount, "Zero with decimals"},
			{"-1.00", errs.ErrNonPositiveAmount, "Negative amount"},
			{"99999999999999999999", errs.ErrAmountOverflow, "Overflow"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseAmountToCents(tc.input)
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.errorType)
			})
		}
	})
}

func TestCentsToString(t *testing.T) {
	testCases := []struct {
		cents    int64
		expected string
	}{
		{10000, "100.00"},
		{1015, "10.15"},
		{1, "0.01"},
		{10, "0.10"},
		{100, "1.00"},
		{0, "0.00"},
		{-50, "-0.50"},
		{-10000, "-100.00"},
		{123456789, "1234567.89"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, CentsToString(tc.cents))
		})
	}
}

func TestAbsCents(t *testing.T) {
	assert.Equal(t, int64(100), AbsCents(100))
	assert.Equal(t, int64(100), AbsCents(-100))
	assert.Equal(t, int64(0), AbsCents(0))
}

func TestRoundTrip(t *testing.T) {
	// string -> cents -> string
	testCases := []string{"100.00", "0.01", "1.50", "1234567.89"}
	for _, tc := range testCases {
		t.Run(tc, func(t *testing.T) {
			cents, err := ParseAmountToCents(tc)
			assert.NoError(t, err)
			assert.Equal(t, tc, CentsToString(cents))
		})
	}
}
