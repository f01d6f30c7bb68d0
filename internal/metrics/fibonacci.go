package metrics

import "math"

// DefaultFibTolerance is the relative error at which a Fibonacci accuracy
// score reaches zero.
const DefaultFibTolerance = 0.03

// FibonacciRetracement returns the price at the given retracement level of
// the high-low move: low + (high-low)*(1-level).
func FibonacciRetracement(high, low, level float64) float64 {
	return low + (high-low)*(1-level)
}

// FibonacciAccuracy scores how closely an actual ratio matches a target
// ratio: 1.0 at an exact match, decaying linearly to 0 once the relative
// error reaches the tolerance. Degenerate targets or tolerances score 0
// rather than erroring.
func FibonacciAccuracy(actual, target, tolerance float64) float64 {
	if tolerance <= 0 || target == 0 {
		return 0
	}

	if math.IsNaN(actual) || math.IsInf(actual, 0) {
		return 0
	}

	relErr := math.Abs(actual-target) / math.Abs(target)
	if relErr >= tolerance {
		return 0
	}

	return 1 - relErr/tolerance
}
