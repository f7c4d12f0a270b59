package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits carried by BRL amounts.
const Scale = 2

var (
	// ErrInvalidAmount is returned for amounts that are negative,
	// non-numeric, or carry more than Scale fractional digits.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount is a more specific ErrInvalidAmount for signed input.
	ErrNegativeAmount = fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
)

// Parse converts an amount string from the backend ("150.00", "0.01")
// into an exact decimal. Sign is carried by the transaction kind, never
// by the amount, so any negative input is rejected rather than coerced.
func Parse(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}

	return Validate(d)
}

// Validate checks an already-decoded decimal against the amount
// contract: non-negative, at most Scale fractional digits.
func Validate(d decimal.Decimal) (decimal.Decimal, error) {
	if d.Sign() < 0 {
		return decimal.Zero, ErrNegativeAmount
	}
	if d.Exponent() < -Scale {
		return decimal.Zero, fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, Scale)
	}
	return d, nil
}

// FormatBRL renders an amount for display: 1234.5 → "R$ 1.234,50".
func FormatBRL(d decimal.Decimal) string {
	fixed := d.StringFixed(Scale)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, decPart := parts[0], parts[1]

	// Insert thousands separators right-to-left
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), decPart)
}
