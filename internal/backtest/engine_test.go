package backtest

import (
	"context"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"patternbot/internal/gateway"
	"patternbot/internal/logger"
	"patternbot/internal/strategy"
	"patternbot/internal/types"
	"patternbot/mocks"
	"patternbot/pkg/errors"
)

var engineStart = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func tickCandle(i int, open, high, low, closePrice float64) types.Candle {
	return types.Candle{
		Time:   engineStart.Add(time.Duration(i) * time.Hour),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: 100,
	}
}

func someSignal(signal types.Signal) strategy.Result {
	return strategy.Result{Signal: optional.Some(signal), Reason: signal.Reason}
}

func noneSignal() strategy.Result {
	return strategy.Result{Signal: optional.None[types.Signal](), Reason: "no pattern"}
}

type EngineTestSuite struct {
	suite.Suite

	ctx      context.Context
	ctrl     *gomock.Controller
	registry *mocks.MockRegistry
	detector *mocks.MockDetector
	state    *BacktestState
	config   Config
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.ctrl = gomock.NewController(suite.T())
	suite.registry = mocks.NewMockRegistry(suite.ctrl)
	suite.detector = mocks.NewMockDetector(suite.ctrl)

	state, err := NewBacktestState(logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.Require().NoError(state.Initialize())
	suite.state = state

	suite.config = Config{
		InitialCapital:  10000,
		BalanceFraction: 0.1,
		Leverage:        1,
		WindowSize:      DefaultWindowSize,
	}
}

func (suite *EngineTestSuite) TearDownTest() {
	suite.NoError(suite.state.Close())
}

func (suite *EngineTestSuite) newEngine(executor gateway.ExecutionGateway) *Engine {
	engine, err := NewEngine(suite.config, logger.NewNopLogger(), suite.registry, executor, suite.state)
	suite.Require().NoError(err)

	return engine
}

func (suite *EngineTestSuite) expectDetector() {
	suite.detector.EXPECT().Name().Return(strategy.NameMorningStar).AnyTimes()
	suite.registry.EXPECT().ListDetectors().Return([]strategy.Detector{suite.detector}).AnyTimes()
}

func longSignal() types.Signal {
	return types.Signal{
		StrategyName: strategy.NameMorningStar,
		Direction:    types.DirectionLong,
		Confidence:   1,
		EntryPrice:   100,
		StopLoss:     95,
		TakeProfit:   106,
		Risk:         5,
		Reason:       "test pattern",
		Time:         engineStart,
	}
}

func (suite *EngineTestSuite) TestNewEngineRequiresCollaborators() {
	_, err := NewEngine(suite.config, nil, suite.registry, gateway.NewSimulatedExecutor(1000, 0.1, 1, 0), suite.state)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *EngineTestSuite) TestNoSignalOpensNothing() {
	suite.expectDetector()
	suite.detector.EXPECT().Analyze(gomock.Any()).Return(noneSignal(), nil)

	engine := suite.newEngine(gateway.NewSimulatedExecutor(10000, 0.1, 1, 0))
	suite.NoError(engine.ProcessTick(suite.ctx, "BTCUSDT", []types.Candle{tickCandle(0, 100, 101, 99, 100)}, 0))

	_, open := engine.GetPosition("BTCUSDT")
	suite.False(open)
}

func (suite *EngineTestSuite) TestDetectorErrorIsNoSignal() {
	suite.expectDetector()
	suite.detector.EXPECT().Analyze(gomock.Any()).
		Return(strategy.Result{}, errors.New(errors.ErrCodeInvalidCandle, "malformed candle"))

	engine := suite.newEngine(gateway.NewSimulatedExecutor(10000, 0.1, 1, 0))
	suite.NoError(engine.ProcessTick(suite.ctx, "BTCUSDT", []types.Candle{tickCandle(0, 100, 101, 99, 100)}, 0))

	_, open := engine.GetPosition("BTCUSDT")
	suite.False(open)
}

func (suite *EngineTestSuite) TestOpensAndTakesProfit() {
	suite.expectDetector()
	suite.detector.EXPECT().Analyze(gomock.Any()).Return(someSignal(longSignal()), nil).Times(1)

	engine := suite.newEngine(gateway.NewSimulatedExecutor(10000, 0.1, 1, 0))

	suite.NoError(engine.ProcessTick(suite.ctx, "BTCUSDT", []types.Candle{tickCandle(0, 100, 101, 99, 100)}, 0))

	position, open := engine.GetPosition("BTCUSDT")
	suite.True(open)
	suite.InDelta(100, position.EntryPrice, 1e-9)
	suite.InDelta(10, position.Quantity, 1e-9) // 10000 x 0.1 x 1 at price 100

	// The target is crossed; no detector runs on an exit tick.
	suite.NoError(engine.ProcessTick(suite.ctx, "BTCUSDT",
		[]types.Candle{tickCandle(0, 100, 101, 99, 100), tickCandle(1, 100, 106.5, 99.5, 104)}, 1))

	_, open = engine.GetPosition("BTCUSDT")
	suite.False(open)

	trades, err := suite.state.GetTradeResults()
	suite.NoError(err)
	suite.Require().Len(trades, 1)
	suite.Equal(types.ExitReasonTakeProfit, trades[0].ExitReason)
	suite.InDelta(106, trades[0].ExitPrice, 1e-9)
	suite.InDelta(6, trades[0].PnLPercent, 1e-9)
	suite.Equal(0, trades[0].EntryTick)
	suite.Equal(1, trades[0].ExitTick)
}

// A single candle spanning both levels is resolved as a loss: the intrabar
// path is unknown, so the stop is assumed to have been hit first.
func (suite *EngineTestSuite) TestStopWinsWhenCandleTouchesBothLevels() {
	suite.expectDetector()
	suite.detector.EXPECT().Analyze(gomock.Any()).Return(someSignal(longSignal()), nil).Times(1)

	engine := suite.newEngine(gateway.NewSimulatedExecutor(10000, 0.1, 1, 0))

	suite.NoError(engine.ProcessTick(suite.ctx, "BTCUSDT", []types.Candle{tickCandle(0, 100, 101, 99, 100)}, 0))
	suite.NoError(engine.ProcessTick(suite.ctx, "BTCUSDT",
		[]types.Candle{tickCandle(0, 100, 101, 99, 100), tickCandle(1, 100, 107, 94, 100)}, 1))

	trades, err := suite.state.GetTradeResults()
	suite.NoError(err)
	suite.Require().Len(trades, 1)
	suite.Equal(types.ExitReasonStopLoss, trades[0].ExitReason)
	suite.InDelta(95, trades[0].ExitPrice, 1e-9)
	suite.InDelta(-5, trades[0].PnLPercent, 1e-9)
}

func (suite *EngineTestSuite) TestShortStopsOutAtLevel() {
	signal := types.Signal{
		StrategyName: strategy.NameEveningStar,
		Direction:    types.DirectionShort,
		Confidence:   1,
		EntryPrice:   100,
		StopLoss:     105,
		TakeProfit:   94,
		Risk:         5,
		Reason:       "test pattern",
		Time:         engineStart,
	}

	suite.detector.EXPECT().Name().Return(strategy.NameEveningStar).AnyTimes()
	suite.registry.EXPECT().ListDetectors().Return([]strategy.Detector{suite.detector}).AnyTimes()
	suite.detector.EXPECT().Analyze(gomock.Any()).Return(someSignal(signal), nil).Times(1)

	engine := suite.newEngine(gateway.NewSimulatedExecutor(10000, 0.1, 1, 0))

	suite.NoError(engine.ProcessTick(suite.ctx, "ETHUSDT", []types.Candle{tickCandle(0, 100, 101, 99, 100)}, 0))
	suite.NoError(engine.ProcessTick(suite.ctx, "ETHUSDT",
		[]types.Candle{tickCandle(0, 100, 101, 99, 100), tickCandle(1, 100, 105.5, 99, 101)}, 1))

	trades, err := suite.state.GetTradeResults()
	suite.NoError(err)
	suite.Require().Len(trades, 1)
	suite.Equal(types.ExitReasonStopLoss, trades[0].ExitReason)
	suite.InDelta(105, trades[0].ExitPrice, 1e-9)
	suite.InDelta(-5, trades[0].PnLPercent, 1e-9)
}

// Slippage moves the fill far enough from the detected entry that the
// reward:risk floor no longer holds, so the entry is unwound.
func (suite *EngineTestSuite) TestEntryCancelledWhenGuardFailsAtFill() {
	suite.expectDetector()
	suite.detector.EXPECT().Analyze(gomock.Any()).Return(someSignal(longSignal()), nil).Times(1)

	engine := suite.newEngine(gateway.NewSimulatedExecutor(10000, 0.1, 1, 0.05))

	suite.NoError(engine.ProcessTick(suite.ctx, "BTCUSDT", []types.Candle{tickCandle(0, 100, 101, 99, 100)}, 0))

	_, open := engine.GetPosition("BTCUSDT")
	suite.False(open)

	trades, err := suite.state.GetTradeResults()
	suite.NoError(err)
	suite.Empty(trades)
}

func (suite *EngineTestSuite) TestOpenFailureSkipsTickWithoutStateChange() {
	suite.expectDetector()
	suite.detector.EXPECT().Analyze(gomock.Any()).Return(someSignal(longSignal()), nil).Times(1)

	executor := mocks.NewMockExecutionGateway(suite.ctrl)
	executor.EXPECT().Open(gomock.Any(), "BTCUSDT", types.DirectionLong, 0.0).
		Return(gateway.Fill{}, errors.New(errors.ErrCodeGatewayFailure, "exchange unavailable"))

	engine := suite.newEngine(executor)

	err := engine.ProcessTick(suite.ctx, "BTCUSDT", []types.Candle{tickCandle(0, 100, 101, 99, 100)}, 0)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeGatewayFailure))

	_, open := engine.GetPosition("BTCUSDT")
	suite.False(open)
}

func (suite *EngineTestSuite) TestRunClosesPositionAtEndOfData() {
	suite.expectDetector()
	suite.detector.EXPECT().Analyze(gomock.Any()).Return(someSignal(longSignal()), nil).Times(1)

	engine := suite.newEngine(gateway.NewSimulatedExecutor(10000, 0.1, 1, 0))

	source := NewSliceSource([]types.Candle{
		tickCandle(0, 100, 100.4, 99.6, 100),
		tickCandle(1, 100, 101.4, 100.6, 101),
		tickCandle(2, 101, 102.4, 101.6, 102),
	})

	var progress [][2]int

	callback := OnTickCallback(func(current, total int) {
		progress = append(progress, [2]int{current, total})
	})

	suite.NoError(engine.Run(suite.ctx, "BTCUSDT", source, optional.Some(callback)))

	_, open := engine.GetPosition("BTCUSDT")
	suite.False(open)

	trades, err := suite.state.GetTradeResults()
	suite.NoError(err)
	suite.Require().Len(trades, 1)
	suite.Equal(types.ExitReasonEndOfData, trades[0].ExitReason)
	suite.InDelta(102, trades[0].ExitPrice, 1e-9)
	suite.InDelta(2, trades[0].PnLPercent, 1e-9)
	suite.Equal(0, trades[0].EntryTick)
	suite.Equal(2, trades[0].ExitTick)

	suite.Equal([][2]int{{1, 3}, {2, 3}, {3, 3}}, progress)
}

func (suite *EngineTestSuite) TestRunSkipsFailedTicksAndContinues() {
	suite.expectDetector()
	suite.detector.EXPECT().Analyze(gomock.Any()).Return(someSignal(longSignal()), nil).AnyTimes()

	executor := mocks.NewMockExecutionGateway(suite.ctrl)
	executor.EXPECT().Open(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(gateway.Fill{}, errors.New(errors.ErrCodeGatewayFailure, "exchange unavailable")).
		AnyTimes()

	engine := suite.newEngine(executor)

	source := NewSliceSource([]types.Candle{
		tickCandle(0, 100, 100.4, 99.6, 100),
		tickCandle(1, 100, 101.4, 100.6, 101),
	})

	suite.NoError(engine.Run(suite.ctx, "BTCUSDT", source, optional.None[OnTickCallback]()))

	trades, err := suite.state.GetTradeResults()
	suite.NoError(err)
	suite.Empty(trades)
}

func (suite *EngineTestSuite) TestRunCapsWindowSize() {
	suite.config.WindowSize = 2

	suite.expectDetector()

	var windowSizes []int

	suite.detector.EXPECT().Analyze(gomock.Any()).
		DoAndReturn(func(window []types.Candle) (strategy.Result, error) {
			windowSizes = append(windowSizes, len(window))

			return noneSignal(), nil
		}).
		AnyTimes()

	engine := suite.newEngine(gateway.NewSimulatedExecutor(10000, 0.1, 1, 0))

	source := NewSliceSource([]types.Candle{
		tickCandle(0, 100, 100.4, 99.6, 100),
		tickCandle(1, 100, 101.4, 100.6, 101),
		tickCandle(2, 101, 102.4, 101.6, 102),
		tickCandle(3, 102, 103.4, 102.6, 103),
	})

	suite.NoError(engine.Run(suite.ctx, "BTCUSDT", source, optional.None[OnTickCallback]()))
	suite.Equal([]int{1, 2, 2, 2}, windowSizes)
}

func (suite *EngineTestSuite) TestStrategyFilterSkipsDetector() {
	suite.config.Strategies = []string{strategy.NameHarmonic}

	suite.expectDetector() // named morning_star, excluded by the filter

	engine := suite.newEngine(gateway.NewSimulatedExecutor(10000, 0.1, 1, 0))
	suite.NoError(engine.ProcessTick(suite.ctx, "BTCUSDT", []types.Candle{tickCandle(0, 100, 101, 99, 100)}, 0))

	_, open := engine.GetPosition("BTCUSDT")
	suite.False(open)
}
