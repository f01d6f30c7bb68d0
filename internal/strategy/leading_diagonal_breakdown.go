package strategy

import (
	"patternbot/internal/metrics"
	"patternbot/internal/types"
)

// LeadingDiagonalBreakdown detects a rising wedge whose support line breaks
// down on above-average volume.
type LeadingDiagonalBreakdown struct {
	lookback     int
	volumeWindow int
}

// NewLeadingDiagonalBreakdown creates the detector with default configuration.
func NewLeadingDiagonalBreakdown() Detector {
	return &LeadingDiagonalBreakdown{
		lookback:     metrics.DefaultWedgeLookback,
		volumeWindow: 10,
	}
}

// Name returns the registry name of the detector.
func (l *LeadingDiagonalBreakdown) Name() string {
	return NameLeadingDiagonalBreakdown
}

// Direction returns the side of the signals this detector produces.
func (l *LeadingDiagonalBreakdown) Direction() types.Direction {
	return types.DirectionShort
}

// MinWindow returns the minimum number of closed candles Analyze needs.
func (l *LeadingDiagonalBreakdown) MinWindow() int {
	return metrics.DefaultWedgeLookback + 4
}

// Analyze evaluates the wedge breakdown predicates on the window.
func (l *LeadingDiagonalBreakdown) Analyze(candles []types.Candle) (Result, error) {
	if result, proceed, err := analyzePreamble(candles, l.MinWindow()); !proceed {
		return result, err
	}

	n := len(candles)
	breakdown := candles[n-1]

	wedge, found := metrics.DetectRisingWedgeBreakdown(candles, l.lookback)
	if !found {
		return noSignal("no rising wedge breakdown in trailing %d candles", l.lookback), nil
	}

	// Breakdown conviction: volume above the trailing average.
	var volumeSum float64
	for i := n - 1 - l.volumeWindow; i < n-1; i++ {
		volumeSum += candles[i].Volume
	}

	averageVolume := volumeSum / float64(l.volumeWindow)
	if breakdown.Volume <= averageVolume {
		return noSignal("breakdown volume %.2f not above %d-candle average %.2f",
			breakdown.Volume, l.volumeWindow, averageVolume), nil
	}

	entry := breakdown.Close
	patternStop := wedge.Resistance
	patternTarget := entry - wedge.Width

	refs := map[string]float64{
		"wedge_resistance": wedge.Resistance,
		"wedge_support":    wedge.Support,
		"wedge_width":      wedge.Width,
	}

	return finishShort(l.Name(), candles, entry, patternStop, patternTarget, refs,
		"rising wedge support breakdown on rising volume", breakdown.Time)
}
