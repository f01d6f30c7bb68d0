package metrics

import "math"

// DefaultRSIPeriod is the conventional Wilder RSI lookback.
const DefaultRSIPeriod = 14

// RSI computes a Wilder-smoothed relative strength index series aligned with
// the input closes. The first period values are NaN and must be skipped by
// callers; values are defined from index period onward.
func RSI(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}

	if period <= 0 || len(closes) < period+1 {
		return out
	}

	// Seed with the simple average of the first period changes.
	var avgGain, avgLoss float64

	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += -change
		}
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiFromAverages(avgGain, avgLoss)

	// Subsequent values use Wilder's smoothing method.
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]

		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}

	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}

// LastRSI returns the most recent defined RSI value, or NaN when the series
// is too short.
func LastRSI(closes []float64, period int) float64 {
	series := RSI(closes, period)
	if len(series) == 0 {
		return math.NaN()
	}

	return series[len(series)-1]
}
