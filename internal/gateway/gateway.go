// Package gateway defines the two narrow collaborator interfaces the core
// consumes: market data in, order execution out. All network access of the
// bot lives behind these interfaces; the engine itself never performs I/O.
package gateway

import (
	"context"

	"patternbot/internal/types"
)

// Fill reports the executed price and quantity of an order.
type Fill struct {
	Price    float64
	Quantity float64
}

// MarketDataGateway supplies OHLCV windows and current prices.
type MarketDataGateway interface {
	// GetCandles returns up to limit candles ordered oldest to newest. The
	// trailing candle may still be forming; callers must drop it before
	// pattern evaluation.
	GetCandles(ctx context.Context, symbol string, interval string, limit int) ([]types.Candle, error)
	// GetCurrentPrice returns the latest traded price for the symbol.
	GetCurrentPrice(ctx context.Context, symbol string) (float64, error)
}

// ExecutionGateway places and closes orders. Position sizing is the
// gateway's policy, not the core's: a zero quantity on Open lets the gateway
// size the order from its balance policy, and the returned fill carries the
// actual quantity.
type ExecutionGateway interface {
	Open(ctx context.Context, symbol string, direction types.Direction, quantity float64) (Fill, error)
	Close(ctx context.Context, symbol string, quantity float64) (Fill, error)
}
