// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/loan-amortisation/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Halves round away from zero using the shortest decimal representation of
// val, so 1.005 rounds to 1.01 even though its binary value is just below.
func Round(val float64) float64 {
	return RoundDecimal(val).InexactFloat64()
}

// RoundDecimal is Round returning the exact decimal value.
func RoundDecimal(val float64) decimal.Decimal {
	return decimal.NewFromFloat(val).Round(constants.DecimalPlaces)
}

// Sum adds already-rounded currency values exactly and returns the total
// rounded to two decimals. Floating point addition of many cent values drifts;
// this does not.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(constants.DecimalPlaces).InexactFloat64()
}

// Sub returns a - b computed exactly on the two-decimal representations.
func Sub(a, b float64) float64 {
	return RoundDecimal(a).Sub(RoundDecimal(b)).InexactFloat64()
}

// FormatFixed renders val with exactly two decimals and no separators.
func FormatFixed(val float64) string {
	return RoundDecimal(val).StringFixed(constants.DecimalPlaces)
}

// IsZero reports whether val rounds to zero cents.
func IsZero(val float64) bool {
	return math.Abs(val) < constants.CurrencyTolerance/2
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}
