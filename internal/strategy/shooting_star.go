package strategy

import (
	"patternbot/internal/metrics"
	"patternbot/internal/types"
)

// ShootingStar is the bearish mirror of the inverted hammer: a long upper
// wick in an uptrend with a bearish confirmation candle.
type ShootingStar struct {
	maPeriod        int
	upperWickRatio  float64
	lowerWickRatio  float64
	rangeProjection float64
}

// NewShootingStar creates the detector with default configuration.
func NewShootingStar() Detector {
	return &ShootingStar{
		maPeriod:        20,
		upperWickRatio:  2.0,
		lowerWickRatio:  0.5,
		rangeProjection: 2.0,
	}
}

// Name returns the registry name of the detector.
func (s *ShootingStar) Name() string {
	return NameShootingStar
}

// Direction returns the side of the signals this detector produces.
func (s *ShootingStar) Direction() types.Direction {
	return types.DirectionShort
}

// MinWindow returns the minimum number of closed candles Analyze needs.
func (s *ShootingStar) MinWindow() int {
	return 22
}

// Analyze evaluates the shooting star predicates on the window.
func (s *ShootingStar) Analyze(candles []types.Candle) (Result, error) {
	if result, proceed, err := analyzePreamble(candles, s.MinWindow()); !proceed {
		return result, err
	}

	n := len(candles)
	pattern := candles[n-2]
	confirmation := candles[n-1]

	body := pattern.Body()
	if body <= 0 {
		return noSignal("pattern candle has zero body"), nil
	}

	sma := metrics.SMA(types.Closes(candles), s.maPeriod)

	maAtPattern := sma[n-2]
	if maAtPattern <= 0 || pattern.Close <= maAtPattern {
		return noSignal("no uptrend: pattern close %.4f not above MA%d %.4f",
			pattern.Close, s.maPeriod, maAtPattern), nil
	}

	if pattern.UpperWick() < s.upperWickRatio*body {
		return noSignal("upper wick %.4f shorter than %.1fx body %.4f",
			pattern.UpperWick(), s.upperWickRatio, body), nil
	}

	if pattern.LowerWick() >= s.lowerWickRatio*body {
		return noSignal("lower wick %.4f not shorter than %.1fx body %.4f",
			pattern.LowerWick(), s.lowerWickRatio, body), nil
	}

	if !confirmation.IsBearish() && confirmation.Close >= pattern.Low {
		return noSignal("confirmation candle neither bearish nor breaking pattern low %.4f", pattern.Low), nil
	}

	entry := confirmation.Close
	patternStop := pattern.High
	patternTarget := entry - s.rangeProjection*pattern.Range()

	refs := map[string]float64{
		"pattern_high": pattern.High,
		"pattern_low":  pattern.Low,
	}

	return finishShort(s.Name(), candles, entry, patternStop, patternTarget, refs,
		"shooting star above MA20 with bearish confirmation", confirmation.Time)
}
