// Package money wraps shopspring/decimal for the one place this module
// needs exact, comma-grouped US-dollar output: rendering a
// GridPointResult to a human. The simulation kernel itself stays on
// float64 throughout for the ensemble arithmetic — see SPEC_FULL.md
// section 4.1 for why decimal is confined to this boundary.
package money

import "github.com/shopspring/decimal"

// Money represents a monetary amount with exact decimal precision.
type Money struct {
	decimal.Decimal
}

// FromFloat64 converts a float64 dollar amount from the engine or the
// scenario into a Money value for display; Format rounds it to whole dollars.
func FromFloat64(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// Add adds another Money amount.
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount.
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// GreaterThan reports whether m is greater than other.
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

// LessThan reports whether m is less than other.
func (m Money) LessThan(other Money) bool {
	return m.Decimal.LessThan(other.Decimal)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Decimal.IsZero()
}

// Min returns the smaller of two Money amounts.
func Min(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two Money amounts.
func Max(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Format renders the amount as a whole-dollar currency string, e.g.
// "$1,477,000". Retirement-planning outputs are never sub-dollar precise
// enough to warrant cents.
func (m Money) Format() string {
	rounded := m.Decimal.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	digits := rounded.StringFixed(0)
	return sign + "$" + groupThousands(digits)
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var out []byte
	lead := n % 3
	if lead == 0 {
		lead = 3
	}
	out = append(out, digits[:lead]...)
	for i := lead; i < n; i += 3 {
		out = append(out, ',')
		out = append(out, digits[i:i+3]...)
	}
	return string(out)
}
