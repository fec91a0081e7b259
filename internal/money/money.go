// Package money converts between Brazilian real strings and integer
// centavos. All stored amounts are int64 centavos.
package money

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmpty is returned when the input holds no digits at all.
	ErrEmpty = errors.New("money: empty value")
	// ErrMalformed is returned when the input is not a number after cleanup.
	ErrMalformed = errors.New("money: malformed value")
	// ErrNegative is returned for amounts below zero.
	ErrNegative = errors.New("money: negative value")
	// ErrOutOfRange is returned when the amount does not fit in int64 centavos.
	ErrOutOfRange = errors.New("money: value out of range")
)

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// ParseBRL parses a locale-formatted amount such as "R$ 1.000,00" and
// returns it in centavos. The currency symbol and whitespace are dropped,
// dots are treated as thousands separators and the comma as the decimal
// separator. Fractions beyond two places are rounded half away from zero.
// Negative amounts, exponent notation and values beyond int64 centavos are
// rejected.
func ParseBRL(s string) (int64, error) {
	cleaned := strings.NewReplacer("R$", "", " ", "", "\u00a0", "", "\t", "").Replace(s)
	if cleaned == "" {
		return 0, ErrEmpty
	}
	if strings.ContainsAny(cleaned, "eE") {
		return 0, ErrMalformed
	}
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, ErrMalformed
	}
	if d.IsNegative() {
		return 0, ErrNegative
	}
	cents := d.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) {
		return 0, ErrOutOfRange
	}
	return cents.IntPart(), nil
}

// ToCents converts a decimal amount of reais into centavos.
func ToCents(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// FromCents converts centavos into a decimal amount of reais.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatBRL renders centavos as "R$ 1.234,56".
func FormatBRL(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}

	fixed := FromCents(cents).StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("R$ ")
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}
