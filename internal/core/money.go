// Package core holds the transaction model, amount parsing, and the monthly
// aggregation used by every frontend.
//
// Amounts are exact decimals (github.com/shopspring/decimal). Binary floating
// point is never used as an intermediate representation: monetary sums must
// not drift from rounding error.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user-entered text into an exact decimal value.
//
// Both dot (120.50) and comma (120,50) decimal separators are accepted; the
// comma is normalized to a dot before parsing. An optional leading sign is
// allowed. Empty input, multiple separators, or any non-digit character yield
// ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("120.50") -> 120.50, nil
//	ParseAmount("120,50") -> 120.50, nil
//	ParseAmount("1.2.3")  -> ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot.
	s = strings.ReplaceAll(s, ",", ".")

	digits := s
	if strings.HasPrefix(digits, "+") || strings.HasPrefix(digits, "-") {
		digits = digits[1:]
	}
	parts := strings.Split(digits, ".")
	if len(parts) > 2 {
		return decimal.Zero, ErrInvalidAmount
	}
	if parts[0] == "" && (len(parts) == 1 || parts[1] == "") {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, part := range parts {
		for _, r := range part {
			if !unicode.IsDigit(r) {
				return decimal.Zero, ErrInvalidAmount
			}
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders an amount with two decimal places for display,
// e.g. "954.10".
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
