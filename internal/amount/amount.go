// Package amount converts between external amount text and exact decimals.
//
// Only plain numeric text is accepted: an optional sign, digits with an optional
// fractional part (or a bare fractional part) and an optional exponent. Thousands
// separators, whitespace and locale variants are rejected rather than reinterpreted.
package amount

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var ErrMalformed = errors.New("malformed amount")

// maxExponent bounds the scale of accepted text so formatting stays small.
const maxExponent = 1000

var canonical = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Parse returns the exact decimal value of text.
func Parse(text string) (decimal.Decimal, error) {
	if !canonical.MatchString(text) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformed, text)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrMalformed, text, err)
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, fmt.Errorf("%w: %q: exponent out of range", ErrMalformed, text)
	}
	return d, nil
}

// Format renders d keeping its scale, so 10.50 stays "10.50" and 10 stays "10".
func Format(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
