// Package money provides an exact fixed-point currency value.
//
// A Money counts minor units of 1/10000 of a currency unit ("cents of a
// cent"). All arithmetic is integer arithmetic; the only place a value is
// rounded for humans is when it is rendered with String or StringFixed.
//
// Division truncates toward zero. That is the one rounding rule used
// anywhere in the engine, so rounding error is always a loss of less than
// one minor unit per division.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of minor units in one currency unit.
const Scale = 10000

// scaleExp is log10(Scale), used when converting to and from decimal.Decimal.
const scaleExp = 4

// Zero is the zero amount.
const Zero Money = 0

// ErrInvalidAmount is returned when a textual or decimal amount cannot be
// represented as Money.
var ErrInvalidAmount = errors.New("invalid amount")

// Money is an amount in minor units. Negative values are allowed for
// intermediate balance arithmetic.
type Money int64

// FromUnits returns the Money holding exactly n minor units.
func FromUnits(n int64) Money {
	return Money(n)
}

// FromCents converts hundredths of a currency unit to Money.
func FromCents(cents int64) Money {
	return Money(cents * (Scale / 100))
}

// maxIntDigits is the number of integer digits a value may have and still
// fit in an int64 once scaled to minor units.
const maxIntDigits = 19 - scaleExp

// FromDecimal converts d to Money, truncating digits beyond the minor unit.
func FromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsZero() {
		return 0, nil
	}

	// Magnitude is decided from digit count and exponent alone, so a huge or
	// tiny exponent never expands into a big integer.
	intDigits := int64(d.NumDigits()) + int64(d.Exponent())
	if intDigits > maxIntDigits {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	if intDigits+scaleExp <= 0 {
		return 0, nil
	}

	bi := d.Shift(scaleExp).Truncate(0).BigInt()
	if !bi.IsInt64() {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	return Money(bi.Int64()), nil
}

// Parse reads a decimal string such as "12.5" or "-3.0001".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	m, err := FromDecimal(d)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, s)
	}
	return m, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(o Money) Money {
	return m + o
}

func (m Money) Sub(o Money) Money {
	return m - o
}

// Mul scales m by an integer factor.
func (m Money) Mul(n int64) Money {
	return m * Money(n)
}

// Div divides m by a positive integer, truncating toward zero.
// It panics when n <= 0.
func (m Money) Div(n int64) Money {
	if n <= 0 {
		panic(fmt.Sprintf("money: division by non-positive integer %d", n))
	}
	return m / Money(n)
}

// Neg returns -m.
func (m Money) Neg() Money {
	return -m
}

// Abs returns the magnitude of m.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// Cmp returns -1, 0 or +1 as m is less than, equal to, or greater than o.
func (m Money) Cmp(o Money) int {
	switch {
	case m < o:
		return -1
	case m > o:
		return 1
	default:
		return 0
	}
}

func (m Money) IsZero() bool { return m == 0 }
func (m Money) IsNegative() bool { return m < 0 }
func (m Money) IsPositive() bool { return m > 0 }

// Min returns the smaller of a and b.
func Min(a, b Money) Money {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Money) Money {
	if a > b {
		return a
	}
	return b
}

// Decimal returns the exact decimal value of m.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -scaleExp)
}

// StringFixed renders m with the given number of decimal places.
func (m Money) StringFixed(places int32) string {
	return m.Decimal().StringFixed(places)
}

// String renders m with two decimal places.
func (m Money) String() string {
	return m.StringFixed(2)
}
