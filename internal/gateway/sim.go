package gateway

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"patternbot/internal/types"
	"patternbot/pkg/errors"
)

// SimulatedExecutor implements ExecutionGateway with immediate fills at the
// last observed market price. Sizing policy lives here, not in the engine:
// orders are sized as balance x fraction x leverage at the fill price.
type SimulatedExecutor struct {
	mu       sync.Mutex
	balance  decimal.Decimal
	fraction decimal.Decimal
	leverage decimal.Decimal
	slippage float64
	prices   map[string]float64
}

// NewSimulatedExecutor creates a simulated executor. fraction is the share
// of the balance committed per position, leverage the futures multiplier
// (1 for spot), slippage the relative fill penalty applied on entry.
func NewSimulatedExecutor(initialBalance, fraction, leverage, slippage float64) *SimulatedExecutor {
	if leverage <= 0 {
		leverage = 1
	}

	return &SimulatedExecutor{
		balance:  decimal.NewFromFloat(initialBalance),
		fraction: decimal.NewFromFloat(fraction),
		leverage: decimal.NewFromFloat(leverage),
		slippage: slippage,
		prices:   make(map[string]float64),
	}
}

// UpdateMarketPrice records the latest price for a symbol. The engine calls
// this once per tick before placing any order.
func (s *SimulatedExecutor) UpdateMarketPrice(symbol string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prices[symbol] = price
}

// Open implements ExecutionGateway. A zero quantity is sized from the
// balance policy.
func (s *SimulatedExecutor) Open(ctx context.Context, symbol string, direction types.Direction, quantity float64) (Fill, error) {
	if err := ctx.Err(); err != nil {
		return Fill{}, errors.Wrap(errors.ErrCodeGatewayFailure, "open cancelled", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	price, ok := s.prices[symbol]
	if !ok || price <= 0 {
		return Fill{}, errors.Newf(errors.ErrCodeGatewayFailure, "no market price for %s", symbol)
	}

	// Entries pay the spread: longs fill above the mark, shorts below.
	if direction == types.DirectionShort {
		price *= 1 - s.slippage
	} else {
		price *= 1 + s.slippage
	}

	if quantity <= 0 {
		notional := s.balance.Mul(s.fraction).Mul(s.leverage)
		quantity, _ = notional.Div(decimal.NewFromFloat(price)).Float64()
	}

	if quantity <= 0 {
		return Fill{}, errors.Newf(errors.ErrCodeOrderRejected, "zero quantity for %s at %.8f", symbol, price)
	}

	return Fill{Price: price, Quantity: quantity}, nil
}

// Close implements ExecutionGateway, filling at the last observed price.
func (s *SimulatedExecutor) Close(ctx context.Context, symbol string, quantity float64) (Fill, error) {
	if err := ctx.Err(); err != nil {
		return Fill{}, errors.Wrap(errors.ErrCodeGatewayFailure, "close cancelled", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	price, ok := s.prices[symbol]
	if !ok || price <= 0 {
		return Fill{}, errors.Newf(errors.ErrCodeGatewayFailure, "no market price for %s", symbol)
	}

	if quantity <= 0 {
		return Fill{}, errors.Newf(errors.ErrCodeOrderRejected, "zero close quantity for %s", symbol)
	}

	return Fill{Price: price, Quantity: quantity}, nil
}

// Balance returns the executor's configured balance.
func (s *SimulatedExecutor) Balance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance, _ := s.balance.Float64()

	return balance
}
