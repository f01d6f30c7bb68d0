package strategy

import (
	"math"

	"patternbot/internal/metrics"
	"patternbot/internal/types"
)

// BullishDivergence detects price making a lower low while RSI makes a
// higher low across the last two swing lows of the trailing segment, with a
// bullish confirmation candle and rising RSI.
type BullishDivergence struct {
	rsiPeriod     int
	segmentLength int // trailing candles scanned for swing lows
	extremaWindow int
}

// NewBullishDivergence creates the detector with default configuration.
func NewBullishDivergence() Detector {
	return &BullishDivergence{
		rsiPeriod:     metrics.DefaultRSIPeriod,
		segmentLength: 30,
		extremaWindow: 7,
	}
}

// Name returns the registry name of the detector.
func (d *BullishDivergence) Name() string {
	return NameBullishDivergence
}

// Direction returns the side of the signals this detector produces.
func (d *BullishDivergence) Direction() types.Direction {
	return types.DirectionLong
}

// MinWindow returns the minimum number of closed candles Analyze needs:
// the swing segment plus RSI warmup so both swing lows have defined RSI.
func (d *BullishDivergence) MinWindow() int {
	return 50
}

// Analyze evaluates the divergence predicates on the window.
func (d *BullishDivergence) Analyze(candles []types.Candle) (Result, error) {
	if result, proceed, err := analyzePreamble(candles, d.MinWindow()); !proceed {
		return result, err
	}

	n := len(candles)
	lows := types.Lows(candles)
	segmentStart := n - d.segmentLength

	swingLows := metrics.LocalMinima(lows[segmentStart:], d.extremaWindow)
	if len(swingLows) < 2 {
		return noSignal("fewer than 2 swing lows in trailing %d candles", d.segmentLength), nil
	}

	firstLow := segmentStart + swingLows[len(swingLows)-2]
	secondLow := segmentStart + swingLows[len(swingLows)-1]

	if lows[secondLow] >= lows[firstLow] {
		return noSignal("price not making a lower low (%.4f >= %.4f)", lows[secondLow], lows[firstLow]), nil
	}

	rsi := metrics.RSI(types.Closes(candles), d.rsiPeriod)

	rsiFirst := rsi[firstLow]
	rsiSecond := rsi[secondLow]

	if math.IsNaN(rsiFirst) || math.IsNaN(rsiSecond) {
		return noSignal("RSI undefined at a swing low"), nil
	}

	if rsiSecond <= rsiFirst {
		return noSignal("RSI not making a higher low (%.2f <= %.2f)", rsiSecond, rsiFirst), nil
	}

	confirmation := candles[n-1]
	if confirmation.Close <= lows[secondLow] {
		return noSignal("price %.4f not above the second swing low %.4f", confirmation.Close, lows[secondLow]), nil
	}

	if !confirmation.IsBullish() {
		return noSignal("confirmation candle not bullish"), nil
	}

	if rsi[n-1] <= rsi[n-2] {
		return noSignal("RSI not rising into confirmation (%.2f <= %.2f)", rsi[n-1], rsi[n-2]), nil
	}

	entry := confirmation.Close
	patternStop := lows[secondLow]

	// The swing high between the two lows is the natural divergence target.
	patternTarget := 0.0
	for i := firstLow; i < n; i++ {
		patternTarget = math.Max(patternTarget, candles[i].High)
	}

	refs := map[string]float64{
		"divergence_low":      lows[secondLow],
		"divergence_prev_low": lows[firstLow],
		"divergence_rsi":      rsiSecond,
		"divergence_prev_rsi": rsiFirst,
	}

	return finishLong(d.Name(), candles, entry, patternStop, patternTarget, refs,
		"bullish divergence: lower low in price, higher low in RSI", confirmation.Time)
}
