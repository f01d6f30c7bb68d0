package strategy

import (
	"math"

	"patternbot/internal/metrics"
	"patternbot/internal/types"
)

// EveningStar detects the bearish mirror of the morning star: a long bullish
// candle, a doji, and a bearish candle retracing at least half of the first
// candle's body, in overbought RSI territory.
type EveningStar struct {
	rsiPeriod    int
	minBodyRatio float64
	dojiRatio    float64
}

// NewEveningStar creates the detector with default configuration.
func NewEveningStar() Detector {
	return &EveningStar{
		rsiPeriod:    metrics.DefaultRSIPeriod,
		minBodyRatio: 0.01,
		dojiRatio:    0.01,
	}
}

// Name returns the registry name of the detector.
func (e *EveningStar) Name() string {
	return NameEveningStar
}

// Direction returns the side of the signals this detector produces.
func (e *EveningStar) Direction() types.Direction {
	return types.DirectionShort
}

// MinWindow returns the minimum number of closed candles Analyze needs.
func (e *EveningStar) MinWindow() int {
	return 20
}

// Analyze evaluates the evening star predicates on the window.
func (e *EveningStar) Analyze(candles []types.Candle) (Result, error) {
	if result, proceed, err := analyzePreamble(candles, e.MinWindow()); !proceed {
		return result, err
	}

	n := len(candles)
	first := candles[n-3]
	star := candles[n-2]
	confirmation := candles[n-1]

	if !first.IsBullish() || first.Close-first.Open < e.minBodyRatio*first.Open {
		return noSignal("first candle is not a long bullish body (body %.4f < %.2f%% of open)",
			first.Body(), e.minBodyRatio*100), nil
	}

	if star.Body() > e.dojiRatio*star.Open {
		return noSignal("middle candle is not a doji (body %.4f > %.2f%% of open)",
			star.Body(), e.dojiRatio*100), nil
	}

	retracement := first.Close - 0.5*(first.Close-first.Open)
	if !confirmation.IsBearish() || confirmation.Close > retracement {
		return noSignal("third candle does not retrace half of the first body (close %.4f > %.4f)",
			confirmation.Close, retracement), nil
	}

	rsi := metrics.RSI(types.Closes(candles), e.rsiPeriod)

	rsiAtStar := rsi[n-2]
	if math.IsNaN(rsiAtStar) || rsiAtStar <= 60 {
		return noSignal("RSI at star candle %.2f not overbought (> 60)", rsiAtStar), nil
	}

	entry := confirmation.Close
	patternStop := confirmation.High
	// Full retracement of the bullish candle; the floor pushes the target
	// lower when the retracement is too close.
	patternTarget := first.Open

	refs := map[string]float64{
		"pattern_high": math.Max(star.High, confirmation.High),
		"star_high":    star.High,
	}

	return finishShort(e.Name(), candles, entry, patternStop, patternTarget, refs,
		"evening star: bullish body, doji, bearish retracement with overbought RSI", confirmation.Time)
}
