// Package numparse is the single decimal-normalization routine shared by
// every extraction path. Documents in the observed locale print amounts as
// "1.434,89" (period thousands, comma decimals); every field that looks like
// a number goes through Normalize before any arithmetic.
package numparse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var reKeep = regexp.MustCompile(`[^0-9.,-]`)

// Normalize converts a document-locale numeric string to a canonical
// decimal. It never returns an error: unparseable input yields the zero
// value and ok=false so callers can treat the field as absent.
//
// Rules:
//   - strip everything except digits, comma, period and a leading minus;
//   - both separators present: period is the thousands separator (removed),
//     comma is the decimal separator (becomes a period);
//   - only comma present: comma is the decimal separator;
//   - only period present: already canonical.
//
// Normalize is idempotent: feeding a canonical value back in returns the
// same value.
func Normalize(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	neg := strings.HasPrefix(s, "-")
	s = reKeep.ReplaceAllString(s, "")
	s = strings.TrimLeft(s, "-")
	if s == "" {
		return decimal.Zero, false
	}

	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")
	switch {
	case commas > 0 && dots > 0:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case commas == 1:
		s = strings.ReplaceAll(s, ",", ".")
	case commas > 1:
		// repeated commas can only be grouping
		s = strings.ReplaceAll(s, ",", "")
	case dots > 1:
		// likewise "10.044.230" is grouped, not fractional
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

// NormalizeOrZero is Normalize with the sentinel folded in: parsing failures
// come back as zero.
func NormalizeOrZero(s string) decimal.Decimal {
	d, _ := Normalize(s)
	return d
}
