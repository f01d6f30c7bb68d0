package strategy

import (
	"math"

	"patternbot/internal/metrics"
	"patternbot/internal/types"
)

// Squirrel detects a bullish pin bar: a long lower wick rejecting prices
// below the 20-period moving average, with a confirmation close above the
// pattern close and RSI below the midline.
type Squirrel struct {
	maPeriod        int
	rsiPeriod       int
	lowerWickRatio  float64
	rangeProjection float64
}

// NewSquirrel creates the detector with default configuration.
func NewSquirrel() Detector {
	return &Squirrel{
		maPeriod:        20,
		rsiPeriod:       metrics.DefaultRSIPeriod,
		lowerWickRatio:  2.0,
		rangeProjection: 1.5,
	}
}

// Name returns the registry name of the detector.
func (s *Squirrel) Name() string {
	return NameSquirrel
}

// Direction returns the side of the signals this detector produces.
func (s *Squirrel) Direction() types.Direction {
	return types.DirectionLong
}

// MinWindow returns the minimum number of closed candles Analyze needs.
func (s *Squirrel) MinWindow() int {
	return 22
}

// Analyze evaluates the pin bar predicates on the window.
func (s *Squirrel) Analyze(candles []types.Candle) (Result, error) {
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

	if pattern.LowerWick() < s.lowerWickRatio*body {
		return noSignal("lower wick %.4f shorter than %.1fx body %.4f",
			pattern.LowerWick(), s.lowerWickRatio, body), nil
	}

	if pattern.UpperWick() >= pattern.LowerWick() {
		return noSignal("upper wick %.4f not shorter than lower wick %.4f",
			pattern.UpperWick(), pattern.LowerWick()), nil
	}

	if confirmation.Close <= pattern.Close {
		return noSignal("confirmation close %.4f not above pattern close %.4f",
			confirmation.Close, pattern.Close), nil
	}

	rsi := metrics.RSI(types.Closes(candles), s.rsiPeriod)

	rsiAtPattern := rsi[n-2]
	if math.IsNaN(rsiAtPattern) || rsiAtPattern >= 50 {
		return noSignal("RSI at pattern candle %.2f not below 50", rsiAtPattern), nil
	}

	sma := metrics.SMA(types.Closes(candles), s.maPeriod)

	maAtPattern := sma[n-2]
	if maAtPattern <= 0 || pattern.Low >= maAtPattern {
		return noSignal("pattern low %.4f not below MA%d %.4f", pattern.Low, s.maPeriod, maAtPattern), nil
	}

	entry := confirmation.Close
	patternStop := pattern.Low
	patternTarget := entry + s.rangeProjection*pattern.Range()

	refs := map[string]float64{
		"pattern_low": pattern.Low,
	}

	return finishLong(s.Name(), candles, entry, patternStop, patternTarget, refs,
		"pin bar rejection below MA20 with bullish confirmation", confirmation.Time)
}
