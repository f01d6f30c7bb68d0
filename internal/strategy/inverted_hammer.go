package strategy

import (
	"patternbot/internal/metrics"
	"patternbot/internal/types"
)

// InvertedHammer detects an inverted hammer in a downtrend with a bullish
// confirmation candle: a small body near the low of the candle with a long
// upper wick, below the 20-period moving average.
type InvertedHammer struct {
	maPeriod        int
	upperWickRatio  float64 // upper wick as a multiple of the body
	lowerWickRatio  float64 // maximum lower wick as a multiple of the body
	rangeProjection float64
}

// NewInvertedHammer creates the detector with default configuration.
func NewInvertedHammer() Detector {
	return &InvertedHammer{
		maPeriod:        20,
		upperWickRatio:  2.0,
		lowerWickRatio:  0.5,
		rangeProjection: 2.0,
	}
}

// Name returns the registry name of the detector.
func (h *InvertedHammer) Name() string {
	return NameInvertedHammer
}

// Direction returns the side of the signals this detector produces.
func (h *InvertedHammer) Direction() types.Direction {
	return types.DirectionLong
}

// MinWindow returns the minimum number of closed candles Analyze needs:
// a full MA20 at the pattern candle plus the confirmation candle.
func (h *InvertedHammer) MinWindow() int {
	return 22
}

// Analyze evaluates the inverted hammer predicates on the window.
func (h *InvertedHammer) Analyze(candles []types.Candle) (Result, error) {
	if result, proceed, err := analyzePreamble(candles, h.MinWindow()); !proceed {
		return result, err
	}

	n := len(candles)
	pattern := candles[n-2]
	confirmation := candles[n-1]

	body := pattern.Body()
	if body <= 0 {
		return noSignal("pattern candle has zero body"), nil
	}

	sma := metrics.SMA(types.Closes(candles), h.maPeriod)

	maAtPattern := sma[n-2]
	if maAtPattern <= 0 || pattern.Close >= maAtPattern {
		return noSignal("no downtrend: pattern close %.4f not below MA%d %.4f",
			pattern.Close, h.maPeriod, maAtPattern), nil
	}

	if pattern.UpperWick() < h.upperWickRatio*body {
		return noSignal("upper wick %.4f shorter than %.1fx body %.4f",
			pattern.UpperWick(), h.upperWickRatio, body), nil
	}

	if pattern.LowerWick() >= h.lowerWickRatio*body {
		return noSignal("lower wick %.4f not shorter than %.1fx body %.4f",
			pattern.LowerWick(), h.lowerWickRatio, body), nil
	}

	if !confirmation.IsBullish() && confirmation.Close <= pattern.High {
		return noSignal("confirmation candle neither bullish nor breaking pattern high %.4f", pattern.High), nil
	}

	entry := confirmation.Close
	patternStop := pattern.Low
	patternTarget := entry + h.rangeProjection*pattern.Range()

	refs := map[string]float64{
		"pattern_high": pattern.High,
		"pattern_low":  pattern.Low,
	}

	return finishLong(h.Name(), candles, entry, patternStop, patternTarget, refs,
		"inverted hammer below MA20 with bullish confirmation", confirmation.Time)
}
