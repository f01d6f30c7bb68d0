package strategy

import (
	"math"

	"patternbot/internal/metrics"
	"patternbot/internal/types"
)

// BearishEngulfing detects a bearish candle that fully engulfs the prior
// bullish body at an extended level, with increasing volume.
type BearishEngulfing struct {
	maPeriod        int
	rsiPeriod       int
	rangeProjection float64
}

// NewBearishEngulfing creates the detector with default configuration.
func NewBearishEngulfing() Detector {
	return &BearishEngulfing{
		maPeriod:        20,
		rsiPeriod:       metrics.DefaultRSIPeriod,
		rangeProjection: 1.5,
	}
}

// Name returns the registry name of the detector.
func (b *BearishEngulfing) Name() string {
	return NameBearishEngulfing
}

// Direction returns the side of the signals this detector produces.
func (b *BearishEngulfing) Direction() types.Direction {
	return types.DirectionShort
}

// MinWindow returns the minimum number of closed candles Analyze needs.
func (b *BearishEngulfing) MinWindow() int {
	return 22
}

// Analyze evaluates the engulfing predicates on the window.
func (b *BearishEngulfing) Analyze(candles []types.Candle) (Result, error) {
	if result, proceed, err := analyzePreamble(candles, b.MinWindow()); !proceed {
		return result, err
	}

	n := len(candles)
	prior := candles[n-2]
	current := candles[n-1]

	if !prior.IsBullish() {
		return noSignal("prior candle not bullish"), nil
	}

	if !current.IsBearish() {
		return noSignal("current candle not bearish"), nil
	}

	if current.Open < prior.Close {
		return noSignal("current open %.4f below prior close %.4f, body not engulfed",
			current.Open, prior.Close), nil
	}

	if current.Close >= prior.Open {
		return noSignal("current close %.4f not below prior open %.4f, body not engulfed",
			current.Close, prior.Open), nil
	}

	sma := metrics.SMA(types.Closes(candles), b.maPeriod)
	rsi := metrics.RSI(types.Closes(candles), b.rsiPeriod)

	maAtCurrent := sma[n-1]
	rsiAtCurrent := rsi[n-1]
	aboveMA := maAtCurrent > 0 && current.Close > maAtCurrent
	overbought := !math.IsNaN(rsiAtCurrent) && rsiAtCurrent >= 60

	if !aboveMA && !overbought {
		return noSignal("neither above MA%d (%.4f) nor RSI >= 60 (%.2f)",
			b.maPeriod, maAtCurrent, rsiAtCurrent), nil
	}

	if current.Volume <= prior.Volume {
		return noSignal("volume %.2f not increasing over prior %.2f", current.Volume, prior.Volume), nil
	}

	entry := current.Close
	patternStop := current.High
	patternTarget := entry - b.rangeProjection*current.Range()

	refs := map[string]float64{
		"engulfing_high": current.High,
		"prior_open":     prior.Open,
	}

	return finishShort(b.Name(), candles, entry, patternStop, patternTarget, refs,
		"bearish engulfing at extended level with rising volume", current.Time)
}
