package metrics

import "math"

// Default MACD parameters.
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// EMASeries computes an exponential moving average seeded with the simple
// average of the first period values. Indices before period-1 are NaN.
func EMASeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}

	if period <= 0 || len(values) < period {
		return out
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += values[i]
	}

	out[period-1] = sum / float64(period)
	multiplier := 2.0 / (float64(period) + 1.0)

	for i := period; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*multiplier + out[i-1]
	}

	return out
}

// MACD computes the moving average convergence divergence line, its signal
// line and the histogram. Indices where a value is not yet defined are NaN:
// the MACD line from slow-1, the signal and histogram from
// slow+signalPeriod-2.
func MACD(closes []float64, fast, slow, signalPeriod int) (macdLine, signalLine, histogram []float64) {
	n := len(closes)
	macdLine = make([]float64, n)
	signalLine = make([]float64, n)
	histogram = make([]float64, n)

	for i := 0; i < n; i++ {
		macdLine[i] = math.NaN()
		signalLine[i] = math.NaN()
		histogram[i] = math.NaN()
	}

	if fast <= 0 || slow <= fast || signalPeriod <= 0 || n < slow {
		return macdLine, signalLine, histogram
	}

	fastEMA := EMASeries(closes, fast)
	slowEMA := EMASeries(closes, slow)

	for i := slow - 1; i < n; i++ {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}

	// The signal line is an EMA over the defined tail of the MACD line.
	defined := macdLine[slow-1:]

	signalTail := EMASeries(defined, signalPeriod)
	for i, v := range signalTail {
		signalLine[slow-1+i] = v
		if !math.IsNaN(v) {
			histogram[slow-1+i] = defined[i] - v
		}
	}

	return macdLine, signalLine, histogram
}
