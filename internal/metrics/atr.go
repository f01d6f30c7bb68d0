package metrics

import "math"

// DefaultATRPeriod is the conventional ATR lookback.
const DefaultATRPeriod = 14

// TrueRange returns the true range of a candle given the previous close:
// the largest of high-low, |high-prevClose| and |low-prevClose|.
func TrueRange(high, low, prevClose float64) float64 {
	return math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
}

// ATR returns the average true range over the last period candles, computed
// as the plain mean of per-candle true ranges. Returns 0 when the series is
// too short for a single full period.
func ATR(highs, lows, closes []float64, period int) float64 {
	if period <= 0 || len(highs) < period+1 || len(lows) < period+1 || len(closes) < period+1 {
		return 0
	}

	n := len(closes)

	var sum float64

	for i := n - period; i < n; i++ {
		sum += TrueRange(highs[i], lows[i], closes[i-1])
	}

	return sum / float64(period)
}
