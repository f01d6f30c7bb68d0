package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"patternbot/internal/types"
)

type ShootingStarTestSuite struct {
	suite.Suite

	detector Detector
}

func TestShootingStarSuite(t *testing.T) {
	suite.Run(t, new(ShootingStarTestSuite))
}

func (suite *ShootingStarTestSuite) SetupTest() {
	suite.detector = NewShootingStar()
}

// uptrendWithStar builds 20 rising candles, a shooting star with a long upper
// wick, and a bearish confirmation candle.
func (suite *ShootingStarTestSuite) uptrendWithStar() []types.Candle {
	closes := steps(nil, 89.5, 0.5, 20) // drift up to 99.5
	closes = append(closes, 99.8)       // star body
	closes = append(closes, 99.0)       // bearish confirmation

	candles := chain(89.5, closes, 0.1)
	candles[20].High = 101.5 // long upper wick rejecting higher prices

	return candles
}

func (suite *ShootingStarTestSuite) TestDetectsPattern() {
	result, err := suite.detector.Analyze(suite.uptrendWithStar())
	suite.NoError(err)
	suite.True(result.Signal.IsSome(), result.Reason)

	signal := result.Signal.Unwrap()
	suite.Equal(NameShootingStar, signal.StrategyName)
	suite.Equal(types.DirectionShort, signal.Direction)
	suite.InDelta(99.0, signal.EntryPrice, 1e-9)
	suite.Greater(signal.StopLoss, signal.EntryPrice)
	suite.Less(signal.TakeProfit, signal.EntryPrice)
	suite.InDelta(101.5, signal.RefLevels["pattern_high"], 1e-9)
}

func (suite *ShootingStarTestSuite) TestRejectsShortUpperWick() {
	candles := suite.uptrendWithStar()
	candles[20].High = 99.9 // wick shrinks below twice the body

	result, err := suite.detector.Analyze(candles)
	suite.NoError(err)
	suite.True(result.Signal.IsNone())
	suite.Contains(result.Reason, "upper wick")
}

func (suite *ShootingStarTestSuite) TestRejectsWithoutUptrend() {
	closes := steps(nil, 110.5, -0.5, 20) // decline down to 100.5
	closes = append(closes, 100.8)
	closes = append(closes, 100.0)

	candles := chain(110.5, closes, 0.1)
	candles[20].High = 102.5

	result, err := suite.detector.Analyze(candles)
	suite.NoError(err)
	suite.True(result.Signal.IsNone())
	suite.Contains(result.Reason, "no uptrend")
}

func (suite *ShootingStarTestSuite) TestMetadata() {
	suite.Equal(NameShootingStar, suite.detector.Name())
	suite.Equal(types.DirectionShort, suite.detector.Direction())
	suite.Equal(22, suite.detector.MinWindow())
}
