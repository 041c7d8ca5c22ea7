// Package money implements fixed-precision currency amounts.
//
// A Money value counts minor units (cents). Amounts never pass through a
// binary floating point representation once constructed; parsing and
// proportional arithmetic go through shopspring/decimal.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal digits carried by a Money value.
const Places = 2

var (
	// ErrInvalidAmount is returned when input cannot be read as an amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidWeights is returned by Distribute for negative or all-zero weights.
	ErrInvalidWeights = errors.New("invalid weights")
)

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

const (
	// maxInputLen bounds the text Parse accepts.
	maxInputLen = 64

	// maxExponent is the largest power of ten that can still fit in int64 cents.
	maxExponent = 18

	// minExponent is the finest precision FromDecimal scales directly.
	minExponent = -32
)

// Money is an amount of currency in cents.
type Money int64

// Zero is the zero amount.
const Zero Money = 0

// FromCents returns the amount holding exactly c cents.
func FromCents(c int64) Money {
	return Money(c)
}

// Parse reads a plain decimal string such as "12.5" or "-0.015".
// Input with more than two decimals is rounded half away from zero.
// Empty or overlong input, exponent notation, grouping separators, currency
// symbols and values that do not fit in int64 cents are rejected with
// ErrInvalidAmount.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidAmount)
	}
	if len(s) > maxInputLen {
		return 0, fmt.Errorf("%w: input longer than %d characters", ErrInvalidAmount, maxInputLen)
	}
	if strings.ContainsAny(s, "eE") {
		return 0, fmt.Errorf("%w: %q uses exponent notation", ErrInvalidAmount, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	m, err := FromDecimal(d)
	if err != nil {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}
	return m, nil
}

// FromFloat converts a float, rounding half away from zero to cents.
// NaN and infinities are rejected.
func FromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, f)
	}

	return FromDecimal(decimal.NewFromFloat(f))
}

// FromDecimal converts d to cents, rounding half away from zero.
// The exponent is checked before scaling so that values such as 1e10000000
// are rejected without being expanded.
func FromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsZero() {
		return 0, nil
	}
	if d.Exponent() > maxExponent {
		return 0, fmt.Errorf("%w: exponent %d out of range", ErrInvalidAmount, d.Exponent())
	}
	if d.Exponent() < minExponent {
		// |d| < 10^(digits+exp); anything under a tenth of a cent rounds to zero.
		if d.NumDigits()+int(d.Exponent()) <= -(Places + 1) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, -minExponent)
	}

	cents := d.Shift(Places).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}

	return Money(cents.IntPart()), nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return m
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return int64(m)
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -Places)
}

// Float64 returns the amount in major units. For display and advisory use only.
func (m Money) Float64() float64 {
	return m.Decimal().InexactFloat64()
}

func (m Money) Add(o Money) Money { return m + o }

func (m Money) Sub(o Money) Money { return m - o }

func (m Money) Neg() Money { return -m }

// Cmp returns -1, 0 or +1.
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

func (m Money) IsZero() bool     { return m == 0 }
func (m Money) IsPositive() bool { return m > 0 }
func (m Money) IsNegative() bool { return m < 0 }

// Abs returns the absolute amount.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// MulFrac returns m * num / den rounded half away from zero to the cent.
// den must be non-zero.
func (m Money) MulFrac(num, den int64) Money {
	if den == 0 {
		panic("money: MulFrac with zero denominator")
	}

	q := decimal.NewFromInt(int64(m)).
		Mul(decimal.NewFromInt(num)).
		DivRound(decimal.NewFromInt(den), 0)

	return Money(q.IntPart())
}

// Sum adds up amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}

// Distribute splits total across weights so the parts add up to total exactly.
//
// Each part starts at floor(|total| * w / sum(w)). The leftover cents, fewer
// than the number of positive weights, go one each to the positive-weight
// entries in input order. The sign of total is applied to every part.
func Distribute(total Money, weights []decimal.Decimal) ([]Money, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no weights", ErrInvalidWeights)
	}

	sum := decimal.Zero
	for i, w := range weights {
		if w.IsNegative() {
			return nil, fmt.Errorf("%w: weight %d is negative", ErrInvalidWeights, i)
		}
		sum = sum.Add(w)
	}
	if sum.IsZero() {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidWeights)
	}

	abs := decimal.NewFromInt(int64(total.Abs()))
	parts := make([]Money, len(weights))

	var assigned int64
	for i, w := range weights {
		q, _ := abs.Mul(w).QuoRem(sum, 0)
		parts[i] = Money(q.IntPart())
		assigned += q.IntPart()
	}

	remainder := int64(total.Abs()) - assigned
	for i := 0; remainder > 0 && i < len(parts); i++ {
		if weights[i].IsPositive() {
			parts[i]++
			remainder--
		}
	}

	if total < 0 {
		for i := range parts {
			parts[i] = -parts[i]
		}
	}

	return parts, nil
}

// String formats the amount with two decimals, e.g. "-12.05".
func (m Money) String() string {
	return m.Decimal().StringFixed(Places)
}

// Display formats the amount for people, e.g. "$12.05" or "-$0.50".
func (m Money) Display() string {
	if m < 0 {
		return "-$" + m.Abs().String()
	}
	return "$" + m.String()
}
