package strategy

import (
	"fmt"

	"patternbot/internal/metrics"
	"patternbot/internal/types"
)

// harmonicRatios holds the target leg ratios of one harmonic pattern family.
type harmonicRatios struct {
	name string
	ab   float64 // AB retracement of XA
	bc   float64 // BC retracement of AB
	ad   float64 // AD retracement of XA
}

// The Gartley and Bat ratio tables the detector scores against. The Bat AB
// target is the midpoint of its 0.382-0.5 range.
var harmonicTables = []harmonicRatios{
	{name: "gartley", ab: 0.618, bc: 0.618, ad: 0.786},
	{name: "bat", ab: 0.45, bc: 0.618, ad: 0.886},
}

// Harmonic detects a bullish 5-point X-A-B-C-D structure whose leg ratios
// approximate the Gartley or Bat Fibonacci tables.
type Harmonic struct {
	extremaWindow int
	minLegGap     int     // minimum candles between consecutive points
	maxDAge       int     // D must be within this many candles of the window end
	legTolerance  float64 // relative error where a leg's accuracy reaches 0
	minScore      float64
}

// NewHarmonic creates the detector with default configuration.
func NewHarmonic() Detector {
	return &Harmonic{
		extremaWindow: 3,
		minLegGap:     3,
		maxDAge:       3,
		legTolerance:  0.15,
		minScore:      0.8,
	}
}

// Name returns the registry name of the detector.
func (h *Harmonic) Name() string {
	return NameHarmonic
}

// Direction returns the side of the signals this detector produces.
func (h *Harmonic) Direction() types.Direction {
	return types.DirectionLong
}

// MinWindow returns the minimum number of closed candles Analyze needs:
// room for five alternating swing points with their leg gaps.
func (h *Harmonic) MinWindow() int {
	return 50
}

// Analyze evaluates the harmonic structure on the window.
func (h *Harmonic) Analyze(candles []types.Candle) (Result, error) {
	if result, proceed, err := analyzePreamble(candles, h.MinWindow()); !proceed {
		return result, err
	}

	n := len(candles)
	highs := types.Highs(candles)
	lows := types.Lows(candles)

	swingLows := metrics.LocalMinima(lows, h.extremaWindow)
	swingHighs := metrics.LocalMaxima(highs, h.extremaWindow)

	if len(swingLows) < 3 || len(swingHighs) < 2 {
		return noSignal("not enough alternating swing points for XABCD"), nil
	}

	// Walk backwards: D is the last swing low, C the last swing high before
	// D, then B, A, X alternating before that.
	dIdx := swingLows[len(swingLows)-1]
	if n-1-dIdx > h.maxDAge {
		return noSignal("last swing low is %d candles old, structure stale", n-1-dIdx), nil
	}

	cIdx, ok := latestBefore(swingHighs, dIdx, h.minLegGap)
	if !ok {
		return noSignal("no C point before D"), nil
	}

	bIdx, ok := latestBefore(swingLows, cIdx, h.minLegGap)
	if !ok {
		return noSignal("no B point before C"), nil
	}

	aIdx, ok := latestBefore(swingHighs, bIdx, h.minLegGap)
	if !ok {
		return noSignal("no A point before B"), nil
	}

	xIdx, ok := latestBefore(swingLows, aIdx, h.minLegGap)
	if !ok {
		return noSignal("no X point before A"), nil
	}

	x, a, b, c, dPoint := lows[xIdx], highs[aIdx], lows[bIdx], highs[cIdx], lows[dIdx]

	xa := a - x
	if xa <= 0 {
		return noSignal("degenerate XA leg (%.4f)", xa), nil
	}

	ab := a - b
	bc := c - b
	ad := a - dPoint

	if ab <= 0 || bc <= 0 || ad <= 0 {
		return noSignal("non-alternating XABCD structure"), nil
	}

	bestScore := 0.0
	bestName := ""

	for _, table := range harmonicTables {
		score := (metrics.FibonacciAccuracy(ab/xa, table.ab, h.legTolerance) +
			metrics.FibonacciAccuracy(bc/ab, table.bc, h.legTolerance) +
			metrics.FibonacciAccuracy(ad/xa, table.ad, h.legTolerance)) / 3

		if score > bestScore {
			bestScore = score
			bestName = table.name
		}
	}

	if bestScore < h.minScore {
		return noSignal("fibonacci accuracy %.2f below %.2f for all tables", bestScore, h.minScore), nil
	}

	if !candles[dIdx].IsBullish() {
		return noSignal("D-point candle not bullish"), nil
	}

	confirmation := candles[n-1]
	entry := confirmation.Close
	patternStop := dPoint
	patternTarget := c

	refs := map[string]float64{
		"x": x, "a": a, "b": b, "c": c, "d": dPoint,
		"score": bestScore,
	}

	return finishLong(h.Name(), candles, entry, patternStop, patternTarget, refs,
		fmt.Sprintf("harmonic %s structure, accuracy %.2f", bestName, bestScore), confirmation.Time)
}

// latestBefore returns the largest index in sorted indices that is at least
// gap candles before limit.
func latestBefore(indices []int, limit, gap int) (int, bool) {
	for i := len(indices) - 1; i >= 0; i-- {
		if indices[i] <= limit-gap {
			return indices[i], true
		}
	}

	return 0, false
}
