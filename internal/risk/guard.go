// Package risk implements the invariant guard every detector must pass
// before it may emit a signal: direction-consistent stop and target
// placement, a per-strategy minimum reward:risk floor, and the ATR buffer
// convention for pattern-derived levels.
package risk

import (
	"math"

	"patternbot/pkg/errors"
)

const (
	// StopATRBuffer widens the pattern stop by one ATR so the stop forgives
	// ordinary noise around the pattern level.
	StopATRBuffer = 1.0
	// TargetATRBuffer pulls the pattern target in by a fifth of an ATR so the
	// target stays achievable.
	TargetATRBuffer = 0.2
	// DefaultMinRR is the guard's reward:risk floor for strategies without a
	// table entry.
	DefaultMinRR = 1.0
	// DefaultPatternMinRR is the floor applied when lifting a
	// geometry-derived target, see EnsureMinRRLong.
	DefaultPatternMinRR = 1.5

	// rrEpsilon absorbs float rounding when a target sits exactly on the
	// reward:risk floor.
	rrEpsilon = 1e-9
)

// minRRByStrategy is the fixed per-strategy reward:risk floor table.
// Strategies not listed fall back to DefaultMinRR.
var minRRByStrategy = map[string]float64{
	"morning_star":               1.2,
	"inverted_hammer":            1.0,
	"squirrel":                   1.0,
	"bullish_divergence":         1.5,
	"harmonic":                   1.5,
	"leading_diagonal":           1.2,
	"shooting_star":              1.0,
	"evening_star":               1.2,
	"bearish_engulfing":          1.0,
	"bearish_divergence":         1.5,
	"leading_diagonal_breakdown": 1.2,
}

// MinRR returns the reward:risk floor for a strategy name.
func MinRR(strategyName string) float64 {
	if rr, ok := minRRByStrategy[strategyName]; ok {
		return rr
	}

	return DefaultMinRR
}

// ValidateLong checks a candidate long (entry, stop, target) triple against
// the direction rules and the strategy's reward:risk floor. On acceptance it
// returns the risk, the distance from entry down to the stop. Rejections are
// the expected common case and carry ErrCodeRiskInvariantViolation.
func ValidateLong(entry, stopLoss, takeProfit float64, strategyName string) (float64, error) {
	if err := checkFinite(entry, stopLoss, takeProfit); err != nil {
		return 0, err
	}

	if stopLoss >= entry {
		return 0, errors.Newf(errors.ErrCodeRiskInvariantViolation,
			"%s: LONG SL %.8f >= entry %.8f", strategyName, stopLoss, entry)
	}

	if takeProfit <= entry {
		return 0, errors.Newf(errors.ErrCodeRiskInvariantViolation,
			"%s: LONG TP %.8f <= entry %.8f", strategyName, takeProfit, entry)
	}

	riskAmount := entry - stopLoss
	if riskAmount <= 0 {
		return 0, errors.Newf(errors.ErrCodeRiskInvariantViolation,
			"%s: non-positive risk %.8f", strategyName, riskAmount)
	}

	minRR := MinRR(strategyName)

	reward := takeProfit - entry
	if reward < riskAmount*minRR-rrEpsilon {
		return 0, errors.Newf(errors.ErrCodeRiskInvariantViolation,
			"%s: R:R 1:%.2f < 1:%.2f", strategyName, reward/riskAmount, minRR)
	}

	return riskAmount, nil
}

// ValidateShort is the mirror of ValidateLong: the stop sits above entry, the
// target below, risk is the distance from entry up to the stop.
func ValidateShort(entry, stopLoss, takeProfit float64, strategyName string) (float64, error) {
	if err := checkFinite(entry, stopLoss, takeProfit); err != nil {
		return 0, err
	}

	if stopLoss <= entry {
		return 0, errors.Newf(errors.ErrCodeRiskInvariantViolation,
			"%s: SHORT SL %.8f <= entry %.8f", strategyName, stopLoss, entry)
	}

	if takeProfit >= entry {
		return 0, errors.Newf(errors.ErrCodeRiskInvariantViolation,
			"%s: SHORT TP %.8f >= entry %.8f", strategyName, takeProfit, entry)
	}

	riskAmount := stopLoss - entry
	if riskAmount <= 0 {
		return 0, errors.Newf(errors.ErrCodeRiskInvariantViolation,
			"%s: non-positive risk %.8f", strategyName, riskAmount)
	}

	minRR := MinRR(strategyName)

	reward := entry - takeProfit
	if reward < riskAmount*minRR-rrEpsilon {
		return 0, errors.Newf(errors.ErrCodeRiskInvariantViolation,
			"%s: R:R 1:%.2f < 1:%.2f", strategyName, reward/riskAmount, minRR)
	}

	return riskAmount, nil
}

// EnsureMinRRLong reconciles a geometry-derived take profit with the minimum
// reward:risk floor. It returns the farther of the pattern target and the
// floor-implied target entry + risk*minRR, so the more profitable of the two
// always wins.
func EnsureMinRRLong(entry, stopLoss, patternTP, minRR float64) float64 {
	riskAmount := entry - stopLoss
	if riskAmount <= 0 {
		return patternTP
	}

	floorTP := entry + riskAmount*minRR

	return math.Max(patternTP, floorTP)
}

// EnsureMinRRShort mirrors EnsureMinRRLong: the lower (more profitable for a
// short) of the pattern target and the floor-implied target wins.
func EnsureMinRRShort(entry, stopLoss, patternTP, minRR float64) float64 {
	riskAmount := stopLoss - entry
	if riskAmount <= 0 {
		return patternTP
	}

	floorTP := entry - riskAmount*minRR

	return math.Min(patternTP, floorTP)
}

// BufferedStopLong places a long stop one ATR below the pattern level.
func BufferedStopLong(patternStop, atr float64) float64 {
	return patternStop - atr*StopATRBuffer
}

// BufferedTargetLong pulls a long target 0.2 ATR below the pattern level.
func BufferedTargetLong(patternTarget, atr float64) float64 {
	return patternTarget - atr*TargetATRBuffer
}

// BufferedStopShort places a short stop one ATR above the pattern level.
func BufferedStopShort(patternStop, atr float64) float64 {
	return patternStop + atr*StopATRBuffer
}

// BufferedTargetShort pushes a short target 0.2 ATR above the pattern level.
func BufferedTargetShort(patternTarget, atr float64) float64 {
	return patternTarget + atr*TargetATRBuffer
}

func checkFinite(values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return errors.Newf(errors.ErrCodeInvalidParameter, "non-finite or non-positive price %v", v)
		}
	}

	return nil
}
