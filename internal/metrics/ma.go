package metrics

import "github.com/markcheno/go-talib"

// SMA returns the simple moving average series, aligned with the input.
// Leading values before the first full period are zero, following talib's
// convention. A series shorter than the period yields all zeros.
func SMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return make([]float64, len(values))
	}

	return talib.Sma(values, period)
}

// EMA returns the talib exponential moving average series, aligned with the
// input. A series shorter than the period yields all zeros.
func EMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return make([]float64, len(values))
	}

	return talib.Ema(values, period)
}

// LastSMA returns the most recent simple moving average value, 0 when the
// series is too short.
func LastSMA(values []float64, period int) float64 {
	series := SMA(values, period)
	if len(series) == 0 {
		return 0
	}

	return series[len(series)-1]
}
