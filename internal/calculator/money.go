package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// ToCents converts a decimal currency amount to integer minor units.
// The float is read through its shortest decimal representation and rounded
// half away from zero, so 0.615 becomes 62 and -0.005 becomes -1.
// ok is false for NaN, infinities and amounts whose cents do not fit in an int64.
func ToCents(value float64) (cents int64, ok bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	d := decimal.NewFromFloat(value).Mul(hundred).Round(0)
	if d.GreaterThan(maxCents) || d.LessThan(minCents) {
		return 0, false
	}
	return d.IntPart(), true
}

// mustCents converts an amount that validate has already accepted.
func mustCents(value float64) int64 {
	cents, _ := ToCents(value)
	return cents
}

// addCents returns a+b, or ok == false when the sum overflows.
func addCents(a, b int64) (sum int64, ok bool) {
	sum = a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// FromCents converts minor units back to a decimal amount for display.
func FromCents(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

// percentOf returns part/whole as a percentage rounded to two decimals.
func percentOf(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(part).
		Mul(hundred).
		DivRound(decimal.NewFromInt(whole), 2).
		InexactFloat64()
}
