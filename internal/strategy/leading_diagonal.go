package strategy

import (
	"patternbot/internal/metrics"
	"patternbot/internal/types"
)

// LeadingDiagonal detects a falling wedge followed by a bullish closing
// breakout above the wedge's resistance line within a few candles.
type LeadingDiagonal struct {
	lookback       int
	breakoutWindow int
}

// NewLeadingDiagonal creates the detector with default configuration.
func NewLeadingDiagonal() Detector {
	return &LeadingDiagonal{
		lookback:       metrics.DefaultWedgeLookback,
		breakoutWindow: 3,
	}
}

// Name returns the registry name of the detector.
func (l *LeadingDiagonal) Name() string {
	return NameLeadingDiagonal
}

// Direction returns the side of the signals this detector produces.
func (l *LeadingDiagonal) Direction() types.Direction {
	return types.DirectionLong
}

// MinWindow returns the minimum number of closed candles Analyze needs:
// the wedge lookback plus the breakout window.
func (l *LeadingDiagonal) MinWindow() int {
	return metrics.DefaultWedgeLookback + 4
}

// Analyze evaluates the wedge breakout predicates on the window.
func (l *LeadingDiagonal) Analyze(candles []types.Candle) (Result, error) {
	if result, proceed, err := analyzePreamble(candles, l.MinWindow()); !proceed {
		return result, err
	}

	n := len(candles)
	breakout := candles[n-1]

	// Look for the wedge ending up to breakoutWindow candles back, so a
	// breakout that took a couple of candles to develop still counts.
	for offset := 1; offset <= l.breakoutWindow; offset++ {
		wedge, found := metrics.DetectFallingWedge(candles[:n-offset], l.lookback)
		if !found {
			continue
		}

		// Project both trendlines forward to the breakout candle.
		projectedResistance := wedge.Resistance + wedge.HighSlope*float64(offset)
		projectedSupport := wedge.Support + wedge.LowSlope*float64(offset)

		if breakout.Close <= projectedResistance {
			return noSignal("close %.4f not above projected resistance %.4f", breakout.Close, projectedResistance), nil
		}

		if !breakout.IsBullish() {
			return noSignal("breakout candle not bullish"), nil
		}

		entry := breakout.Close
		patternStop := projectedSupport
		// Measured move: the wedge width projected from the breakout.
		patternTarget := entry + wedge.Width

		refs := map[string]float64{
			"wedge_resistance": projectedResistance,
			"wedge_support":    projectedSupport,
			"wedge_width":      wedge.Width,
		}

		return finishLong(l.Name(), candles, entry, patternStop, patternTarget, refs,
			"falling wedge breakout above resistance", breakout.Time)
	}

	return noSignal("no falling wedge within %d candles of the breakout", l.breakoutWindow), nil
}
