package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount parses a client-supplied money string into a fixed-point value
// with 2 fraction digits. Negative amounts are rejected.
func Amount(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", value)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative")
	}
	return d.Round(2), nil
}

// FormatAmount renders a money value with exactly 2 fraction digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
