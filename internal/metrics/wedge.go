package metrics

import (
	"math"

	"patternbot/internal/types"
)

// DefaultWedgeLookback is the regression window for wedge detection.
const DefaultWedgeLookback = 20

// Wedge describes a converging trendline structure projected to the most
// recent candle of the lookback window.
type Wedge struct {
	// Resistance is the projected upper trendline value at the current index.
	Resistance float64
	// Support is the projected lower trendline value at the current index.
	Support float64
	// Width is the distance between the trendlines at the current index.
	Width float64
	// HighSlope and LowSlope are the per-candle regression slopes.
	HighSlope float64
	LowSlope  float64
}

// LinearRegression fits y = slope*x + intercept over values by least squares,
// with x running 0..len-1. Fewer than two points yield a flat fit.
func LinearRegression(values []float64) (slope, intercept float64) {
	n := float64(len(values))
	if len(values) < 2 {
		if len(values) == 1 {
			return 0, values[0]
		}

		return 0, 0
	}

	var sumX, sumY, sumXY, sumXX float64

	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n

	return slope, intercept
}

// DetectFallingWedge looks for a falling wedge over the trailing lookback
// candles: both trendlines sloping down, the lower one flatter than the upper
// one (convergence), with the current close within 95% of the projected
// resistance line. Returns the wedge projected to the current index.
func DetectFallingWedge(candles []types.Candle, lookback int) (Wedge, bool) {
	if lookback < 2 || len(candles) < lookback {
		return Wedge{}, false
	}

	window := candles[len(candles)-lookback:]
	highSlope, highIntercept := LinearRegression(types.Highs(window))
	lowSlope, lowIntercept := LinearRegression(types.Lows(window))

	if highSlope >= 0 || lowSlope >= 0 {
		return Wedge{}, false
	}

	// Convergence: the support line falls slower than the resistance line.
	if math.Abs(lowSlope) >= math.Abs(highSlope) {
		return Wedge{}, false
	}

	x := float64(lookback - 1)
	resistance := highSlope*x + highIntercept
	support := lowSlope*x + lowIntercept

	if resistance <= 0 || support <= 0 {
		return Wedge{}, false
	}

	// Price has to be pressing against the resistance line.
	if window[len(window)-1].Close < resistance*0.95 {
		return Wedge{}, false
	}

	return Wedge{
		Resistance: resistance,
		Support:    support,
		Width:      resistance - support,
		HighSlope:  highSlope,
		LowSlope:   lowSlope,
	}, true
}

// DetectRisingWedgeBreakdown looks for a rising wedge whose support line has
// just been broken: both trendlines sloping up, converging
// (lowSlope > highSlope*0.8), with the current close below the projected
// support line.
func DetectRisingWedgeBreakdown(candles []types.Candle, lookback int) (Wedge, bool) {
	if lookback < 2 || len(candles) < lookback {
		return Wedge{}, false
	}

	window := candles[len(candles)-lookback:]
	highSlope, highIntercept := LinearRegression(types.Highs(window))
	lowSlope, lowIntercept := LinearRegression(types.Lows(window))

	if highSlope <= 0 || lowSlope <= 0 {
		return Wedge{}, false
	}

	// Convergence: support rises faster than resistance.
	if lowSlope <= highSlope*0.8 {
		return Wedge{}, false
	}

	x := float64(lookback - 1)
	resistance := highSlope*x + highIntercept
	support := lowSlope*x + lowIntercept

	if resistance <= 0 || support <= 0 {
		return Wedge{}, false
	}

	if window[len(window)-1].Close >= support {
		return Wedge{}, false
	}

	return Wedge{
		Resistance: resistance,
		Support:    support,
		Width:      resistance - support,
		HighSlope:  highSlope,
		LowSlope:   lowSlope,
	}, true
}
