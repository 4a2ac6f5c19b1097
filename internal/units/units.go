// Package units holds the small numeric helpers every dimension calculation
// builds on: half-up decimal rounding, clamping and tolerance comparison.
package units

import (
	"math"

	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places used for all drawer and
// dimension math (0.1 mm).
const Precision = 1

// RoundToDecimal rounds value half-up (away from zero) to the given number of
// decimal places. Going through a decimal avoids the binary representation
// error that makes math.Round(2.45*10)/10 return 2.4.
func RoundToDecimal(value float64, places int) float64 {
	return decimal.NewFromFloat(value).Round(int32(places)).InexactFloat64()
}

// Round1 rounds value to Precision decimal places.
func Round1(value float64) float64 {
	return RoundToDecimal(value, Precision)
}

// Clamp limits value to the closed interval [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// epsilon absorbs binary floating point noise in tolerance checks.
const epsilon = 1e-9

// ApproxEqual reports whether a and b differ by no more than tol.
func ApproxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol+epsilon
}

// Sum returns the total of all values.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
