package strategy

import (
	"math"

	"patternbot/internal/metrics"
	"patternbot/internal/types"
)

// MorningStar detects the three-candle bullish reversal: a long bearish
// candle, a doji, and a bullish candle recovering at least half of the first
// candle's body, in oversold RSI territory.
type MorningStar struct {
	rsiPeriod    int
	minBodyRatio float64 // first candle body as a fraction of its open
	dojiRatio    float64 // doji body as a fraction of its open
}

// NewMorningStar creates the detector with default configuration.
func NewMorningStar() Detector {
	return &MorningStar{
		rsiPeriod:    metrics.DefaultRSIPeriod,
		minBodyRatio: 0.01,
		dojiRatio:    0.01,
	}
}

// Name returns the registry name of the detector.
func (m *MorningStar) Name() string {
	return NameMorningStar
}

// Direction returns the side of the signals this detector produces.
func (m *MorningStar) Direction() types.Direction {
	return types.DirectionLong
}

// MinWindow returns the minimum number of closed candles Analyze needs.
// RSI must be defined at the doji candle, plus headroom for the ATR buffer.
func (m *MorningStar) MinWindow() int {
	return 20
}

// Analyze evaluates the morning star predicates on the window.
func (m *MorningStar) Analyze(candles []types.Candle) (Result, error) {
	if result, proceed, err := analyzePreamble(candles, m.MinWindow()); !proceed {
		return result, err
	}

	n := len(candles)
	first := candles[n-3]
	star := candles[n-2]
	confirmation := candles[n-1]

	if !first.IsBearish() || first.Open-first.Close < m.minBodyRatio*first.Open {
		return noSignal("first candle is not a long bearish body (body %.4f < %.2f%% of open)",
			first.Body(), m.minBodyRatio*100), nil
	}

	if star.Body() > m.dojiRatio*star.Open {
		return noSignal("middle candle is not a doji (body %.4f > %.2f%% of open)",
			star.Body(), m.dojiRatio*100), nil
	}

	recovery := first.Close + 0.5*(first.Open-first.Close)
	if !confirmation.IsBullish() || confirmation.Close < recovery {
		return noSignal("third candle does not recover half of the first body (close %.4f < %.4f)",
			confirmation.Close, recovery), nil
	}

	rsi := metrics.RSI(types.Closes(candles), m.rsiPeriod)

	rsiAtStar := rsi[n-2]
	if math.IsNaN(rsiAtStar) || rsiAtStar >= 40 {
		return noSignal("RSI at star candle %.2f not oversold (< 40)", rsiAtStar), nil
	}

	entry := confirmation.Close
	patternStop := confirmation.Low
	// Full retracement of the bearish candle is the pattern target; the
	// reward:risk floor lifts it when the retracement is too close.
	patternTarget := first.Open

	refs := map[string]float64{
		"pattern_low": math.Min(star.Low, confirmation.Low),
		"star_low":    star.Low,
	}

	return finishLong(m.Name(), candles, entry, patternStop, patternTarget, refs,
		"morning star: bearish body, doji, bullish recovery with oversold RSI", confirmation.Time)
}
