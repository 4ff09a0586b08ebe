// Package analytics contains the pure computation core of the churn
// dashboard: window aggregation, ratio normalization, the report derivers
// and the recommendation rule engine. Nothing in this package performs I/O.
package analytics

import "math"

// NormalizePercent converts an ambiguous risk value into a percentage in
// [0, 100]. Upstream writers persist either a 0-1 fraction or a 0-100
// percentage without a format flag, so values <= 1.0 are interpreted as
// fractions and scaled. A true boundary value (exactly 1.0 meaning 1%)
// is misclassified as 100%; that matches the stored data's existing
// consumers and stays until a unit flag is persisted upstream.
func NormalizePercent(x float64) float64 {
	if x <= 1.0 {
		x *= 100
	}
	if x < 0 {
		return 0
	}
	if x > 100 {
		return 100
	}
	return x
}

// SafeDivide divides num by den with the store's zero-denominator policy:
// 0 when den <= 0, and denominators between 0 and 1 are raised to 1 so
// count-like divisors never inflate a ratio.
func SafeDivide(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	if den < 1 {
		den = 1
	}
	return num / den
}

// Round2 rounds to 2 decimal places. Currency and percentage outputs are
// rounded here at the response edge; intermediate math keeps full precision.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Round0 rounds to the nearest integer. Count-like outputs (frequency,
// customers at risk) use this.
func Round0(x float64) float64 {
	return math.Round(x)
}
