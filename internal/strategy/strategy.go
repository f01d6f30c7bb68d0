// Package strategy contains the chart-pattern detectors and their registry.
// Every detector is a pure evaluation of a closed-candle window: the ordered
// predicates of its pattern either all pass, producing a guard-validated
// signal, or the first failure is reported as a diagnostic reason with no
// signal. Detectors only return errors for malformed input; callers treat
// such errors as "no signal" for the tick and continue.
package strategy

import (
	"fmt"
	"time"

	"github.com/moznion/go-optional"

	"patternbot/internal/metrics"
	"patternbot/internal/risk"
	"patternbot/internal/types"
	"patternbot/pkg/errors"
)

// Strategy names as registered in the default registry.
const (
	NameMorningStar              = "morning_star"
	NameInvertedHammer           = "inverted_hammer"
	NameSquirrel                 = "squirrel"
	NameBullishDivergence        = "bullish_divergence"
	NameHarmonic                 = "harmonic"
	NameLeadingDiagonal          = "leading_diagonal"
	NameShootingStar             = "shooting_star"
	NameEveningStar              = "evening_star"
	NameBearishEngulfing         = "bearish_engulfing"
	NameBearishDivergence        = "bearish_divergence"
	NameLeadingDiagonalBreakdown = "leading_diagonal_breakdown"
)

// Result is the outcome of one detector evaluation.
type Result struct {
	// Signal is present only when every required predicate passed and the
	// risk guard accepted the candidate levels.
	Signal optional.Option[types.Signal]
	// Reason names the first failing predicate, or describes the matched
	// pattern when a signal is present.
	Reason string
}

// Detector is a pure function from an OHLCV window of closed candles to an
// optional signal, plus static metadata the scheduler uses to size windows
// and partition strategies by side.
type Detector interface {
	// Name returns the registry name of the detector.
	Name() string
	// Direction returns the side of the signals this detector produces.
	Direction() types.Direction
	// MinWindow returns the minimum number of closed candles Analyze needs.
	MinWindow() int
	// Analyze evaluates the pattern on the window, oldest candle first. The
	// caller must have dropped any unclosed trailing candle.
	Analyze(candles []types.Candle) (Result, error)
}

// noSignal builds a signal-less result with a formatted diagnostic reason.
func noSignal(format string, args ...any) Result {
	return Result{
		Signal: optional.None[types.Signal](),
		Reason: fmt.Sprintf(format, args...),
	}
}

// analyzePreamble performs the shared entry checks: window length and candle
// sanity. It returns proceed=false with a diagnostic result for a short
// window, and a non-nil error for malformed candles.
func analyzePreamble(candles []types.Candle, minWindow int) (Result, bool, error) {
	if len(candles) < minWindow {
		insufficient := errors.NewInsufficientDataErrorf(minWindow, len(candles), "",
			"insufficient data: need %d candles, got %d", minWindow, len(candles))

		return Result{
			Signal: optional.None[types.Signal](),
			Reason: insufficient.Error(),
		}, false, nil
	}

	for i := range candles {
		if err := candles[i].Validate(); err != nil {
			return Result{}, false, errors.Wrapf(errors.ErrCodeInvalidCandle, err,
				"malformed candle at index %d", i)
		}
	}

	return Result{}, true, nil
}

// finishLong applies the shared exit convention to a long candidate: buffer
// the pattern stop and target by ATR, lift the target to the reward:risk
// floor, then run the guard. A guard rejection is returned as a no-signal
// result, never as an error.
func finishLong(name string, candles []types.Candle, entry, patternStop, patternTP float64, refs map[string]float64, reason string, at time.Time) (Result, error) {
	atr := metrics.ATR(types.Highs(candles), types.Lows(candles), types.Closes(candles), metrics.DefaultATRPeriod)

	stop := risk.BufferedStopLong(patternStop, atr)
	target := risk.BufferedTargetLong(patternTP, atr)
	target = risk.EnsureMinRRLong(entry, stop, target, risk.DefaultPatternMinRR)

	riskAmount, err := risk.ValidateLong(entry, stop, target, name)
	if err != nil {
		return noSignal("guard rejected: %v", err), nil
	}

	return Result{
		Signal: optional.Some(types.Signal{
			StrategyName: name,
			Direction:    types.DirectionLong,
			Confidence:   1.0,
			EntryPrice:   entry,
			StopLoss:     stop,
			TakeProfit:   target,
			ATR:          atr,
			Risk:         riskAmount,
			Reason:       reason,
			Time:         at,
			RefLevels:    refs,
		}),
		Reason: reason,
	}, nil
}

// finishShort mirrors finishLong for short candidates.
func finishShort(name string, candles []types.Candle, entry, patternStop, patternTP float64, refs map[string]float64, reason string, at time.Time) (Result, error) {
	atr := metrics.ATR(types.Highs(candles), types.Lows(candles), types.Closes(candles), metrics.DefaultATRPeriod)

	stop := risk.BufferedStopShort(patternStop, atr)
	target := risk.BufferedTargetShort(patternTP, atr)
	target = risk.EnsureMinRRShort(entry, stop, target, risk.DefaultPatternMinRR)

	riskAmount, err := risk.ValidateShort(entry, stop, target, name)
	if err != nil {
		return noSignal("guard rejected: %v", err), nil
	}

	return Result{
		Signal: optional.Some(types.Signal{
			StrategyName: name,
			Direction:    types.DirectionShort,
			Confidence:   1.0,
			EntryPrice:   entry,
			StopLoss:     stop,
			TakeProfit:   target,
			ATR:          atr,
			Risk:         riskAmount,
			Reason:       reason,
			Time:         at,
			RefLevels:    refs,
		}),
		Reason: reason,
	}, nil
}

// DropUnclosed removes the trailing candle from a window fetched from a live
// gateway, where the most recent candle is still forming. Pattern evaluation
// must only ever see closed candles.
func DropUnclosed(candles []types.Candle) []types.Candle {
	if len(candles) == 0 {
		return candles
	}

	return candles[:len(candles)-1]
}
