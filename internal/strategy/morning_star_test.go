package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"patternbot/internal/types"
)

type MorningStarTestSuite struct {
	suite.Suite

	detector Detector
}

func TestMorningStarSuite(t *testing.T) {
	suite.Run(t, new(MorningStarTestSuite))
}

func (suite *MorningStarTestSuite) SetupTest() {
	suite.detector = NewMorningStar()
}

// downtrendWithStar builds 17 falling candles, a long bearish candle, a doji
// and a bullish recovery candle.
func (suite *MorningStarTestSuite) downtrendWithStar() []types.Candle {
	closes := steps(nil, 100.8, -0.8, 17) // drift down to 87.2
	closes = append(closes, 84.0)         // long bearish body
	closes = append(closes, 84.05)        // doji
	closes = append(closes, 86.0)         // bullish recovery past half the body

	return chain(100.8, closes, 0.1)
}

func (suite *MorningStarTestSuite) TestDetectsPattern() {
	result, err := suite.detector.Analyze(suite.downtrendWithStar())
	suite.NoError(err)
	suite.True(result.Signal.IsSome(), result.Reason)

	signal := result.Signal.Unwrap()
	suite.Equal(NameMorningStar, signal.StrategyName)
	suite.Equal(types.DirectionLong, signal.Direction)
	suite.Equal(1.0, signal.Confidence)
	suite.InDelta(86.0, signal.EntryPrice, 1e-9)
	suite.Less(signal.StopLoss, signal.EntryPrice)
	suite.Greater(signal.TakeProfit, signal.EntryPrice)
	suite.Greater(signal.ATR, 0.0)
	suite.InDelta(83.9, signal.RefLevels["star_low"], 1e-9)
}

func (suite *MorningStarTestSuite) TestTargetRespectsRewardRiskFloor() {
	result, err := suite.detector.Analyze(suite.downtrendWithStar())
	suite.NoError(err)
	suite.True(result.Signal.IsSome())

	signal := result.Signal.Unwrap()
	reward := signal.TakeProfit - signal.EntryPrice
	suite.GreaterOrEqual(reward, signal.Risk*1.5-1e-6)
}

func (suite *MorningStarTestSuite) TestRejectsFatStar() {
	candles := suite.downtrendWithStar()
	candles[18].Close = 85.5 // star body far beyond the doji threshold
	candles[18].High = 85.6
	candles[19].Open = 85.5

	result, err := suite.detector.Analyze(candles)
	suite.NoError(err)
	suite.True(result.Signal.IsNone())
	suite.Contains(result.Reason, "doji")
}

func (suite *MorningStarTestSuite) TestRejectsWeakRecovery() {
	candles := suite.downtrendWithStar()
	candles[19].Close = 85.0 // under half of the first candle's body

	result, err := suite.detector.Analyze(candles)
	suite.NoError(err)
	suite.True(result.Signal.IsNone())
	suite.Contains(result.Reason, "recover")
}

func (suite *MorningStarTestSuite) TestRejectsWithoutOversoldRSI() {
	// Same three-candle shape at the top of a rally
	closes := steps(nil, 86.4, 0.8, 17) // rally up to 100
	closes = append(closes, 96.8)       // bearish body
	closes = append(closes, 96.85)      // doji
	closes = append(closes, 99.0)       // bullish recovery

	result, err := suite.detector.Analyze(chain(86.4, closes, 0.1))
	suite.NoError(err)
	suite.True(result.Signal.IsNone())
	suite.Contains(result.Reason, "not oversold")
}

func (suite *MorningStarTestSuite) TestMetadata() {
	suite.Equal(NameMorningStar, suite.detector.Name())
	suite.Equal(types.DirectionLong, suite.detector.Direction())
	suite.Equal(20, suite.detector.MinWindow())
}
