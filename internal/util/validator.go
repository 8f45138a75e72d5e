package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// amount column is decimal(12,2): at most ten integer digits.
var maxAmount = decimal.New(1, 10) // 10^10

// ParseAmount parses a monetary amount into an exact decimal with two
// fractional digits. More precision than cents is rejected rather than
// rounded.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount: %w", err)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("amount has more than 2 decimal places")
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, fmt.Errorf("amount out of range")
	}
	return d.Round(2), nil
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}

// SplitFullName splits a display name into first name (first token)
// and last name (the remainder, possibly empty).
func SplitFullName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	parts := strings.SplitN(full, " ", 2)
	first = parts[0]
	if len(parts) == 2 {
		last = strings.TrimSpace(parts[1])
	}
	return first, last
}
