package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MinorUnits is the number of decimal places every rounded amount carries.
const MinorUnits int32 = 2

// Money represents a monetary value with exact decimal arithmetic.
// The zero value is a valid amount of 0.00.
type Money struct {
	d decimal.Decimal
}

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// MoneyFromInt creates a Money value from whole currency units.
func MoneyFromInt(units int64) Money {
	return Money{d: decimal.NewFromInt(units)}
}

// ParseMoney parses a decimal string such as "1499.50".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{d: d}, nil
}

// MustParseMoney is ParseMoney for literals known to be valid. It panics otherwise.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MoneyFromDecimal wraps a decimal value.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// Round rounds to MinorUnits places, half away from zero.
// All pricing stages go through this helper so the rounding order stays reproducible.
func (m Money) Round() Money {
	return Money{d: m.d.Round(MinorUnits)}
}

// Add adds two Money values.
func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d)}
}

// Subtract subtracts another Money value from this one.
func (m Money) Subtract(other Money) Money {
	return Money{d: m.d.Sub(other.d)}
}

// MultiplyByInt multiplies by a whole quantity, e.g. a seat count.
func (m Money) MultiplyByInt(n int64) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(n))}
}

// MultiplyByRate multiplies by a decimal factor such as a VAT rate.
func (m Money) MultiplyByRate(rate decimal.Decimal) Money {
	return Money{d: m.d.Mul(rate)}
}

// DivideBy divides by a non-zero decimal.
func (m Money) DivideBy(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, fmt.Errorf("cannot divide by zero")
	}
	return Money{d: m.d.Div(divisor)}, nil
}

// IsWholeMinorUnits reports whether the value has at most MinorUnits decimal places.
func (m Money) IsWholeMinorUnits() bool {
	return m.d.Equal(m.d.Round(MinorUnits))
}

// ClampZero returns the value, or zero when it is negative.
func (m Money) ClampZero() Money {
	if m.d.IsNegative() {
		return Money{}
	}
	return m
}

// IsZero returns true if the money value is zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// IsNegative returns true if the money value is negative.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// IsPositive returns true if the money value is positive.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// LessThan returns true if this Money value is less than another.
func (m Money) LessThan(other Money) bool {
	return m.d.LessThan(other.d)
}

// GreaterThan returns true if this Money value is greater than another.
func (m Money) GreaterThan(other Money) bool {
	return m.d.GreaterThan(other.d)
}

// Equals returns true if this Money value equals another.
func (m Money) Equals(other Money) bool {
	return m.d.Equal(other.d)
}

// Cmp compares two values and returns -1, 0 or +1.
func (m Money) Cmp(other Money) int {
	return m.d.Cmp(other.d)
}

// String returns the value with exactly two decimals.
func (m Money) String() string {
	return m.d.StringFixed(MinorUnits)
}

// MarshalJSON renders the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// Ratio returns part/whole*100 rounded to places, or 0 when whole is zero.
func Ratio(part, whole Money, places int32) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.d.Div(whole.d).Mul(hundred).Round(places).InexactFloat64()
}
