// Package types holds the shared market data structures of the bot: candles,
// signals, positions and trade results.
package types

import (
	"math"
	"time"

	"patternbot/pkg/errors"
)

// Candle is one closed OHLCV bar. Time is the bar's open time; series are
// always ordered oldest first.
type Candle struct {
	Time   time.Time `yaml:"time" json:"time" csv:"time"`
	Open   float64   `yaml:"open" json:"open" csv:"open"`
	High   float64   `yaml:"high" json:"high" csv:"high"`
	Low    float64   `yaml:"low" json:"low" csv:"low"`
	Close  float64   `yaml:"close" json:"close" csv:"close"`
	Volume float64   `yaml:"volume" json:"volume" csv:"volume"`
}

// Body returns the absolute open-to-close distance.
func (c Candle) Body() float64 {
	return math.Abs(c.Close - c.Open)
}

// Range returns the full high-to-low extent of the bar.
func (c Candle) Range() float64 {
	return c.High - c.Low
}

// UpperWick returns the distance from the top of the body to the high.
func (c Candle) UpperWick() float64 {
	return c.High - math.Max(c.Open, c.Close)
}

// LowerWick returns the distance from the bottom of the body to the low.
func (c Candle) LowerWick() float64 {
	return math.Min(c.Open, c.Close) - c.Low
}

// IsBullish reports whether the bar closed above its open.
func (c Candle) IsBullish() bool {
	return c.Close > c.Open
}

// IsBearish reports whether the bar closed below its open.
func (c Candle) IsBearish() bool {
	return c.Close < c.Open
}

// Validate checks the basic OHLCV geometry: finite positive prices, a high
// that covers the body, a low that holds it, and a non-negative volume.
func (c Candle) Validate() error {
	for _, v := range []float64{c.Open, c.High, c.Low, c.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return errors.Newf(errors.ErrCodeInvalidCandle,
				"candle at %s has non-finite or non-positive price", c.Time.Format(time.RFC3339))
		}
	}

	if c.High < math.Max(c.Open, c.Close) {
		return errors.Newf(errors.ErrCodeInvalidCandle,
			"candle at %s has high %.8f below body", c.Time.Format(time.RFC3339), c.High)
	}

	if c.Low > math.Min(c.Open, c.Close) {
		return errors.Newf(errors.ErrCodeInvalidCandle,
			"candle at %s has low %.8f above body", c.Time.Format(time.RFC3339), c.Low)
	}

	if math.IsNaN(c.Volume) || c.Volume < 0 {
		return errors.Newf(errors.ErrCodeInvalidCandle,
			"candle at %s has negative volume %.8f", c.Time.Format(time.RFC3339), c.Volume)
	}

	return nil
}

// Closes extracts the close series of a candle window.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}

	return out
}

// Highs extracts the high series of a candle window.
func Highs(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.High
	}

	return out
}

// Lows extracts the low series of a candle window.
func Lows(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Low
	}

	return out
}

// Volumes extracts the volume series of a candle window.
func Volumes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Volume
	}

	return out
}
