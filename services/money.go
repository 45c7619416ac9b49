// Package services holds the service order cost and margin engine together
// with the document generators that render it.
package services

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds to two decimal places, half away from zero. It is applied at
// the presentation and serialization boundary only; the engine keeps full
// precision internally. Non-finite input yields 0.
func Round2(x float64) float64 {
	if !isFinite(x) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

// SafeDiv returns n/d, or fallback when d is zero or the quotient is not finite.
func SafeDiv(n, d, fallback float64) float64 {
	if d == 0 || !isFinite(d) || !isFinite(n) {
		return fallback
	}
	q := n / d
	if !isFinite(q) {
		return fallback
	}
	return q
}

// Percent returns part as a percentage of whole, 0 when whole is zero.
func Percent(part, whole float64) float64 {
	return SafeDiv(part, whole, 0) * 100
}

// MaxAmount bounds every number accepted from input. Products and sums of
// values within it stay finite.
const MaxAmount = 1e12

// inRange reports whether x is finite and within ±MaxAmount.
func inRange(x float64) bool {
	return isFinite(x) && math.Abs(x) <= MaxAmount
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
