package mocks

import (
	"math"
	"math/rand"
	"time"

	"patternbot/internal/types"
)

// CandleGenerator produces synthetic OHLCV series for tests and benchmarks.
// Prices follow a geometric Brownian motion so indicator code sees plausible
// shapes rather than straight lines.
type CandleGenerator struct {
	rng *rand.Rand
}

// NewCandleGenerator creates a generator. Use a fixed seed for reproducible
// test runs.
func NewCandleGenerator(seed int64) *CandleGenerator {
	return &CandleGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig controls the shape of the generated series.
type GeneratorConfig struct {
	// StartTime is the open time of the first candle.
	StartTime time.Time
	// Interval is the duration between candles.
	Interval time.Duration
	// Count is the number of candles to generate.
	Count int
	// InitialPrice is the first candle's open.
	InitialPrice float64
	// Volatility is the per-candle standard deviation of returns
	// (0.002 = 0.2% per candle).
	Volatility float64
	// Trend is the total drift spread across the series, negative for a
	// falling market.
	Trend float64
	// VolumeBase is the average volume per candle.
	VolumeBase float64
	// VolumeVariance scales volume noise, 0.0 to 1.0.
	VolumeVariance float64
}

// DefaultGeneratorConfig returns settings that resemble a quiet hourly
// crypto market.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		StartTime:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:       time.Hour,
		Count:          500,
		InitialPrice:   100.0,
		Volatility:     0.002,
		Trend:          0.0,
		VolumeBase:     10000,
		VolumeVariance: 0.3,
	}
}

// Generate builds the candle series described by the config.
func (g *CandleGenerator) Generate(config GeneratorConfig) []types.Candle {
	candles := make([]types.Candle, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		// Box-Muller transform for normally distributed returns.
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Count)

		closePrice := open * (1 + priceChange + drift)
		if closePrice <= 0 {
			closePrice = open * 0.99
		}

		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, closePrice) + highExtension

		low := math.Min(open, closePrice) - lowExtension
		if low <= 0 {
			low = math.Min(open, closePrice) * 0.99
		}

		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance

		volume := config.VolumeBase * volumeVariation
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		candles[i] = types.Candle{
			Time:   currentTime,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(closePrice, 4),
			Volume: roundToDecimals(volume, 2),
		}

		currentPrice = closePrice
		currentTime = currentTime.Add(config.Interval)
	}

	return candles
}

// GenerateTrending is a convenience wrapper for a series with a known total
// drift, used by divergence and wedge tests that need a directional market.
func (g *CandleGenerator) GenerateTrending(count int, initialPrice float64, trend float64) []types.Candle {
	config := DefaultGeneratorConfig()
	config.Count = count
	config.InitialPrice = initialPrice
	config.Trend = trend

	return g.Generate(config)
}

// roundToDecimals rounds a float64 to the given number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
