// Package money formats monetary values for reports and chat responses.
// The engine keeps amounts as signed float64; formatting renders the
// absolute value with the fixed currency prefix and thousands grouping.
package money

import (
	"math"
	"strconv"
	"strings"
)

// Currency is the fixed display currency for all formatted output.
const Currency = "PKR"

// Format renders an amount as e.g. "PKR 1,234". The sign is dropped;
// callers that care about direction say so in the surrounding text.
func Format(amount float64) string {
	return Currency + " " + Group(math.Abs(amount))
}

// Group renders a value rounded to the nearest whole unit with comma
// thousands separators.
func Group(v float64) string {
	s := strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Percent renders a percentage with one decimal place, e.g. "42.5".
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
