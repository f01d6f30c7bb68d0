package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"patternbot/internal/types"
)

var fixtureStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// chain builds a candle series where each candle opens at the previous close
// and closes at the given value, with symmetric wicks of the given size.
// Detector fixtures then override individual candles to shape a pattern.
func chain(start float64, closes []float64, wick float64) []types.Candle {
	candles := make([]types.Candle, len(closes))
	prev := start

	for i, c := range closes {
		high := c
		if prev > c {
			high = prev
		}

		low := c
		if prev < c {
			low = prev
		}

		candles[i] = types.Candle{
			Time:   fixtureStart.Add(time.Duration(i) * time.Hour),
			Open:   prev,
			High:   high + wick,
			Low:    low - wick,
			Close:  c,
			Volume: 100,
		}
		prev = c
	}

	return candles
}

// steps appends count closes advancing by delta from the last element, or
// from start when the slice is empty.
func steps(closes []float64, start float64, delta float64, count int) []float64 {
	prev := start
	if len(closes) > 0 {
		prev = closes[len(closes)-1]
	}

	for i := 0; i < count; i++ {
		prev += delta
		closes = append(closes, prev)
	}

	return closes
}

type StrategyCommonTestSuite struct {
	suite.Suite
}

func TestStrategyCommonSuite(t *testing.T) {
	suite.Run(t, new(StrategyCommonTestSuite))
}

func (suite *StrategyCommonTestSuite) TestShortWindowIsNoSignalForEveryDetector() {
	for _, detector := range NewDefaultRegistry().ListDetectors() {
		window := chain(100, steps(nil, 100, 0.1, detector.MinWindow()-1), 0.1)

		result, err := detector.Analyze(window)
		suite.NoError(err, detector.Name())
		suite.True(result.Signal.IsNone(), detector.Name())
		suite.Contains(result.Reason, "insufficient data", detector.Name())
	}
}

func (suite *StrategyCommonTestSuite) TestMalformedCandleIsAnError() {
	for _, detector := range NewDefaultRegistry().ListDetectors() {
		window := chain(100, steps(nil, 100, 0.1, detector.MinWindow()), 0.1)
		window[3].High = window[3].Low - 1

		_, err := detector.Analyze(window)
		suite.Error(err, detector.Name())
	}
}

func (suite *StrategyCommonTestSuite) TestQuietWindowProducesNoSignal() {
	// A gently drifting market must not trigger any pattern
	for _, detector := range NewDefaultRegistry().ListDetectors() {
		window := chain(100, steps(nil, 100, 0.05, detector.MinWindow()+10), 0.1)

		result, err := detector.Analyze(window)
		suite.NoError(err, detector.Name())
		suite.True(result.Signal.IsNone(), "%s fired on a quiet window: %s", detector.Name(), result.Reason)
	}
}

func (suite *StrategyCommonTestSuite) TestDropUnclosed() {
	window := chain(100, steps(nil, 100, 0.1, 5), 0.1)

	trimmed := DropUnclosed(window)
	suite.Len(trimmed, 4)
	suite.Equal(window[3], trimmed[3])

	suite.Empty(DropUnclosed(nil))
}

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) TestDefaultRegistryCatalog() {
	registry := NewDefaultRegistry()
	detectors := registry.ListDetectors()

	suite.Len(detectors, 11)

	longs, shorts := 0, 0

	for _, d := range detectors {
		switch d.Direction() {
		case types.DirectionLong:
			longs++
		case types.DirectionShort:
			shorts++
		}
	}

	suite.Equal(6, longs)
	suite.Equal(5, shorts)
}

func (suite *RegistryTestSuite) TestListDetectorsSortedByName() {
	detectors := NewDefaultRegistry().ListDetectors()
	for i := 1; i < len(detectors); i++ {
		suite.Less(detectors[i-1].Name(), detectors[i].Name())
	}
}

func (suite *RegistryTestSuite) TestGetDetector() {
	registry := NewDefaultRegistry()

	detector, err := registry.GetDetector(NameMorningStar)
	suite.NoError(err)
	suite.Equal(NameMorningStar, detector.Name())

	_, err = registry.GetDetector("nope")
	suite.Error(err)
}

func (suite *RegistryTestSuite) TestRegisterDuplicate() {
	registry := NewRegistry()

	suite.NoError(registry.RegisterDetector(NewMorningStar()))
	suite.Error(registry.RegisterDetector(NewMorningStar()))
}

func (suite *RegistryTestSuite) TestRemoveDetector() {
	registry := NewDefaultRegistry()

	suite.NoError(registry.RemoveDetector(NameSquirrel))
	suite.Len(registry.ListDetectors(), 10)
	suite.Error(registry.RemoveDetector(NameSquirrel))
}
