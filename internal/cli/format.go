// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatAmount formats a currency amount with comma separators and two decimals.
// e.g., 1234567.891 -> "1,234,567.89", -5000 -> "-5,000.00"
func FormatAmount(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		// Beyond int64; skip grouping rather than lose digits.
		return signed(d, s)
	}
	return signed(d, FormatNumber(n)+"."+frac)
}

func signed(d decimal.Decimal, s string) string {
	if d.Round(2).IsNegative() {
		return "-" + s
	}
	return s
}

// FormatSignedAmount is FormatAmount with an explicit "+" for non-negative values.
func FormatSignedAmount(d decimal.Decimal) string {
	if d.Round(2).IsNegative() {
		return FormatAmount(d)
	}
	return "+" + FormatAmount(d)
}

// FormatTenThousands formats a currency amount in units of ten thousand.
// e.g., 195000 -> "19.50"
func FormatTenThousands(d decimal.Decimal) string {
	return d.Div(decimal.NewFromInt(10_000)).StringFixed(2)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatMonth returns a short month label.
// e.g., 2 -> "Feb (2)", 14 -> "Month 14"
func FormatMonth(m int) string {
	if m >= 1 && m <= 12 {
		return fmt.Sprintf("%s (%d)", time.Month(m).String()[:3], m)
	}
	return fmt.Sprintf("Month %d", m)
}

// Input bounds for ParseTenThousands. The exponent is checked before any
// arithmetic: rescaling a value like 1e50000000 is itself the slow part.
const (
	maxInputScale    = 6
	maxInputExponent = 9
)

var maxTenThousands = decimal.NewFromInt(1_000_000_000)

// ParseTenThousands parses a profit entered in units of ten thousand.
// Negative values are losses. Magnitudes above one billion ten-thousands and
// more than six decimal places are rejected.
func ParseTenThousands(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", s)
	}
	if exp := d.Exponent(); exp < -maxInputScale || exp > maxInputExponent {
		return decimal.Zero, fmt.Errorf("amount out of range: %q", s)
	}
	if d.Abs().GreaterThan(maxTenThousands) {
		return decimal.Zero, fmt.Errorf("amount out of range: %q", s)
	}
	return d, nil
}
