package strategy

import (
	"math"

	"patternbot/internal/metrics"
	"patternbot/internal/types"
)

// BearishDivergence mirrors BullishDivergence: price making a higher high
// while RSI makes a lower high out of overbought territory, with a bearish
// confirmation candle and falling RSI.
type BearishDivergence struct {
	rsiPeriod     int
	segmentLength int
	extremaWindow int
	overboughtRSI float64 // RSI floor at the first swing high
}

// NewBearishDivergence creates the detector with default configuration.
func NewBearishDivergence() Detector {
	return &BearishDivergence{
		rsiPeriod:     metrics.DefaultRSIPeriod,
		segmentLength: 30,
		extremaWindow: 7,
		overboughtRSI: 65,
	}
}

// Name returns the registry name of the detector.
func (d *BearishDivergence) Name() string {
	return NameBearishDivergence
}

// Direction returns the side of the signals this detector produces.
func (d *BearishDivergence) Direction() types.Direction {
	return types.DirectionShort
}

// MinWindow returns the minimum number of closed candles Analyze needs.
func (d *BearishDivergence) MinWindow() int {
	return 50
}

// Analyze evaluates the divergence predicates on the window.
func (d *BearishDivergence) Analyze(candles []types.Candle) (Result, error) {
	if result, proceed, err := analyzePreamble(candles, d.MinWindow()); !proceed {
		return result, err
	}

	n := len(candles)
	highs := types.Highs(candles)
	segmentStart := n - d.segmentLength

	swingHighs := metrics.LocalMaxima(highs[segmentStart:], d.extremaWindow)
	if len(swingHighs) < 2 {
		return noSignal("fewer than 2 swing highs in trailing %d candles", d.segmentLength), nil
	}

	firstHigh := segmentStart + swingHighs[len(swingHighs)-2]
	secondHigh := segmentStart + swingHighs[len(swingHighs)-1]

	if highs[secondHigh] <= highs[firstHigh] {
		return noSignal("price not making a higher high (%.4f <= %.4f)", highs[secondHigh], highs[firstHigh]), nil
	}

	rsi := metrics.RSI(types.Closes(candles), d.rsiPeriod)

	rsiFirst := rsi[firstHigh]
	rsiSecond := rsi[secondHigh]

	if math.IsNaN(rsiFirst) || math.IsNaN(rsiSecond) {
		return noSignal("RSI undefined at a swing high"), nil
	}

	if rsiFirst < d.overboughtRSI {
		return noSignal("RSI at first swing high %.2f below %.0f", rsiFirst, d.overboughtRSI), nil
	}

	if rsiSecond >= rsiFirst {
		return noSignal("RSI not making a lower high (%.2f >= %.2f)", rsiSecond, rsiFirst), nil
	}

	confirmation := candles[n-1]
	if confirmation.Close >= highs[secondHigh] {
		return noSignal("price %.4f not below the second swing high %.4f", confirmation.Close, highs[secondHigh]), nil
	}

	if !confirmation.IsBearish() {
		return noSignal("confirmation candle not bearish"), nil
	}

	if rsi[n-1] >= rsi[n-2] {
		return noSignal("RSI not falling into confirmation (%.2f >= %.2f)", rsi[n-1], rsi[n-2]), nil
	}

	entry := confirmation.Close
	patternStop := highs[secondHigh]

	patternTarget := math.Inf(1)
	for i := firstHigh; i < n; i++ {
		patternTarget = math.Min(patternTarget, candles[i].Low)
	}

	refs := map[string]float64{
		"divergence_high":      highs[secondHigh],
		"divergence_prev_high": highs[firstHigh],
		"divergence_rsi":       rsiSecond,
		"divergence_prev_rsi":  rsiFirst,
	}

	return finishShort(d.Name(), candles, entry, patternStop, patternTarget, refs,
		"bearish divergence: higher high in price, lower high in RSI", confirmation.Time)
}
