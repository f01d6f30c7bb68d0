// Package backtest drives the strategy registry over replayed candles and
// owns the position lifecycle: Flat until a validated signal opens a
// position, Open while the stop and target are live, Closed when an exit
// condition fires or the data runs out. Within a tick, exit checks always
// run before entry checks and at most one position is opened per instrument.
package backtest

import (
	"context"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"patternbot/internal/gateway"
	"patternbot/internal/logger"
	"patternbot/internal/risk"
	"patternbot/internal/strategy"
	"patternbot/internal/types"
	"patternbot/pkg/errors"
)

// OnTickCallback reports replay progress after each processed tick.
type OnTickCallback func(current int, total int)

// Engine is the tick scheduler and position state machine. Positions for
// different symbols are independent; a single symbol is processed strictly
// sequentially.
type Engine struct {
	config    Config
	log       *logger.Logger
	registry  strategy.Registry
	executor  gateway.ExecutionGateway
	state     *BacktestState
	positions map[string]types.Position
}

// NewEngine creates the engine with its collaborators injected.
func NewEngine(config Config, log *logger.Logger, registry strategy.Registry, executor gateway.ExecutionGateway, state *BacktestState) (*Engine, error) {
	if log == nil || registry == nil || executor == nil || state == nil {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "engine requires logger, registry, executor and state")
	}

	return &Engine{
		config:    config,
		log:       log,
		registry:  registry,
		executor:  executor,
		state:     state,
		positions: make(map[string]types.Position),
	}, nil
}

// GetPosition returns the open position for a symbol, if any.
func (e *Engine) GetPosition(symbol string) (types.Position, bool) {
	position, ok := e.positions[symbol]

	return position, ok
}

// ProcessTick advances the state machine by one closed candle. The window is
// the trailing closed candles ending with the current tick's candle, oldest
// first. Exit checks run before any entry evaluation; a tick that closed a
// position never opens a new one. A returned error means the tick was
// skipped with no state change and may be retried by the caller.
func (e *Engine) ProcessTick(ctx context.Context, symbol string, window []types.Candle, tick int) error {
	if len(window) == 0 {
		return nil
	}

	current := window[len(window)-1]

	if simulated, ok := e.executor.(*gateway.SimulatedExecutor); ok {
		simulated.UpdateMarketPrice(symbol, current.Close)
	}

	exited, err := e.checkExit(ctx, symbol, current, tick)
	if err != nil {
		return err
	}

	if exited {
		return nil
	}

	if _, open := e.positions[symbol]; open {
		// One position per instrument, no pyramiding.
		return nil
	}

	return e.checkEntry(ctx, symbol, window, current, tick)
}

// checkEntry evaluates every detector of the run on the window and opens a
// position from the first accepted signal.
func (e *Engine) checkEntry(ctx context.Context, symbol string, window []types.Candle, current types.Candle, tick int) error {
	for _, detector := range e.registry.ListDetectors() {
		if !e.config.wantsStrategy(detector.Name()) {
			continue
		}

		result, err := detector.Analyze(window)
		if err != nil {
			// Malformed input is a no-signal for this tick, never a crash.
			e.log.Warn("Detector error treated as no signal",
				zap.String("strategy", detector.Name()),
				zap.String("symbol", symbol),
				zap.Error(err),
			)

			continue
		}

		if result.Signal.IsNone() {
			continue
		}

		signal := result.Signal.Unwrap()

		return e.openPosition(ctx, symbol, signal, current, tick)
	}

	return nil
}

// openPosition fills the entry through the execution gateway and re-runs the
// risk guard against the actual fill price: execution lags detection, and a
// gap can invalidate levels that were sound at the pattern close. An entry
// whose invariant no longer holds at fill is cancelled, not opened.
func (e *Engine) openPosition(ctx context.Context, symbol string, signal types.Signal, current types.Candle, tick int) error {
	fill, err := e.executor.Open(ctx, symbol, signal.Direction, 0)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeGatewayFailure, err, "entry fill failed for %s", symbol)
	}

	var guardErr error
	if signal.Direction == types.DirectionShort {
		_, guardErr = risk.ValidateShort(fill.Price, signal.StopLoss, signal.TakeProfit, signal.StrategyName)
	} else {
		_, guardErr = risk.ValidateLong(fill.Price, signal.StopLoss, signal.TakeProfit, signal.StrategyName)
	}

	if guardErr != nil {
		if _, closeErr := e.executor.Close(ctx, symbol, fill.Quantity); closeErr != nil {
			return errors.Wrapf(errors.ErrCodeGatewayFailure, closeErr, "failed to unwind cancelled entry for %s", symbol)
		}

		e.log.Info("Entry cancelled, invariant no longer holds at fill",
			zap.String("strategy", signal.StrategyName),
			zap.String("symbol", symbol),
			zap.Float64("fill_price", fill.Price),
			zap.Error(guardErr),
		)

		return nil
	}

	position := types.Position{
		ID:           uuid.New().String(),
		Symbol:       symbol,
		Direction:    signal.Direction,
		EntryPrice:   fill.Price,
		Quantity:     fill.Quantity,
		StopLoss:     signal.StopLoss,
		TakeProfit:   signal.TakeProfit,
		EntryTime:    current.Time,
		EntryTick:    tick,
		StrategyName: signal.StrategyName,
		Leverage:     e.config.Leverage,
	}

	if err := position.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestState, "constructed position violates invariant", err)
	}

	e.positions[symbol] = position

	e.log.Info("Position opened",
		zap.String("strategy", signal.StrategyName),
		zap.String("symbol", symbol),
		zap.String("direction", string(signal.Direction)),
		zap.Float64("entry", fill.Price),
		zap.Float64("stop_loss", signal.StopLoss),
		zap.Float64("take_profit", signal.TakeProfit),
		zap.String("reason", signal.Reason),
	)

	return nil
}

// checkExit tests the current candle against the open position's levels.
// The stop-loss is checked first: when a single candle touches both levels
// the real intrabar path is unknown, so the loss is assumed. Exit fills are
// recorded at the crossed level.
func (e *Engine) checkExit(ctx context.Context, symbol string, candle types.Candle, tick int) (bool, error) {
	position, ok := e.positions[symbol]
	if !ok {
		return false, nil
	}

	var (
		exitPrice float64
		reason    types.ExitReason
	)

	if position.Direction == types.DirectionLong {
		switch {
		case candle.Low <= position.StopLoss:
			exitPrice, reason = position.StopLoss, types.ExitReasonStopLoss
		case candle.High >= position.TakeProfit:
			exitPrice, reason = position.TakeProfit, types.ExitReasonTakeProfit
		default:
			return false, nil
		}
	} else {
		switch {
		case candle.High >= position.StopLoss:
			exitPrice, reason = position.StopLoss, types.ExitReasonStopLoss
		case candle.Low <= position.TakeProfit:
			exitPrice, reason = position.TakeProfit, types.ExitReasonTakeProfit
		default:
			return false, nil
		}
	}

	return true, e.closePosition(ctx, position, exitPrice, reason, candle, tick)
}

// closePosition flattens the position through the gateway and appends the
// immutable trade result.
func (e *Engine) closePosition(ctx context.Context, position types.Position, exitPrice float64, reason types.ExitReason, candle types.Candle, tick int) error {
	if _, err := e.executor.Close(ctx, position.Symbol, position.Quantity); err != nil {
		return errors.Wrapf(errors.ErrCodeGatewayFailure, err, "exit fill failed for %s", position.Symbol)
	}

	result := types.TradeResult{
		ID:           uuid.New().String(),
		Symbol:       position.Symbol,
		StrategyName: position.StrategyName,
		Direction:    position.Direction,
		EntryPrice:   position.EntryPrice,
		ExitPrice:    exitPrice,
		Quantity:     position.Quantity,
		EntryTick:    position.EntryTick,
		ExitTick:     tick,
		EntryTime:    position.EntryTime,
		ExitTime:     candle.Time,
		PnLPercent:   types.PnLPercent(position.Direction, position.EntryPrice, exitPrice, position.Leverage),
		ExitReason:   reason,
	}

	if err := e.state.RecordTrade(result); err != nil {
		return err
	}

	delete(e.positions, position.Symbol)

	e.log.Info("Position closed",
		zap.String("strategy", position.StrategyName),
		zap.String("symbol", position.Symbol),
		zap.String("exit_reason", string(reason)),
		zap.Float64("exit_price", exitPrice),
		zap.Float64("pnl_percent", result.PnLPercent),
	)

	return nil
}

// Run replays a candle source for one symbol through the state machine. A
// failed tick is logged and skipped without partial state, matching the
// scheduler contract for gateway failures. When the source is exhausted
// while a position is still open, the position is force-closed at the last
// available close with the end_of_data reason.
func (e *Engine) Run(ctx context.Context, symbol string, source CandleSource, onProgress optional.Option[OnTickCallback]) error {
	total, err := source.Count()
	if err != nil {
		return err
	}

	window := make([]types.Candle, 0, e.config.WindowSize)
	tick := 0

	var last types.Candle

	seen := false

	for candle, err := range source.ReadAll() {
		if err != nil {
			return err
		}

		window = append(window, candle)
		if len(window) > e.config.WindowSize {
			window = window[1:]
		}

		if tickErr := e.ProcessTick(ctx, symbol, window, tick); tickErr != nil {
			e.log.Warn("Tick skipped",
				zap.String("symbol", symbol),
				zap.Int("tick", tick),
				zap.Error(tickErr),
			)
		}

		last = candle
		seen = true
		tick++

		if onProgress.IsSome() {
			onProgress.Unwrap()(tick, total)
		}
	}

	if !seen {
		return nil
	}

	if position, open := e.positions[symbol]; open {
		if err := e.closePosition(ctx, position, last.Close, types.ExitReasonEndOfData, last, tick-1); err != nil {
			return err
		}
	}

	return nil
}
