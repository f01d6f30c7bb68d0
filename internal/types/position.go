package types

import (
	"time"

	"patternbot/pkg/errors"
)

// Position represents one open holding for an instrument. The engine keeps at
// most one position per symbol per mode; pyramiding is not supported.
type Position struct {
	ID           string    `yaml:"id" json:"id" csv:"id"`
	Symbol       string    `yaml:"symbol" json:"symbol" csv:"symbol" validate:"required"`
	Direction    Direction `yaml:"direction" json:"direction" csv:"direction" validate:"required,oneof=long short"`
	EntryPrice   float64   `yaml:"entry_price" json:"entry_price" csv:"entry_price" validate:"required,gt=0"`
	Quantity     float64   `yaml:"quantity" json:"quantity" csv:"quantity" validate:"required,gt=0"`
	StopLoss     float64   `yaml:"stop_loss" json:"stop_loss" csv:"stop_loss" validate:"required,gt=0"`
	TakeProfit   float64   `yaml:"take_profit" json:"take_profit" csv:"take_profit" validate:"required,gt=0"`
	EntryTime    time.Time `yaml:"entry_time" json:"entry_time" csv:"entry_time"`
	EntryTick    int       `yaml:"entry_tick" json:"entry_tick" csv:"entry_tick"`
	StrategyName string    `yaml:"strategy_name" json:"strategy_name" csv:"strategy_name"`
	// Leverage scales realized PnL for futures instruments. 1 for spot.
	Leverage float64 `yaml:"leverage" json:"leverage" csv:"leverage"`
}

// Validate checks the open-position invariant: for long positions the stop is
// below entry and the target above; mirrored for short positions.
func (p Position) Validate() error {
	switch p.Direction {
	case DirectionLong:
		if !(p.StopLoss < p.EntryPrice && p.EntryPrice < p.TakeProfit) {
			return errors.Newf(errors.ErrCodeRiskInvariantViolation,
				"long position %s violates SL %.8f < entry %.8f < TP %.8f",
				p.Symbol, p.StopLoss, p.EntryPrice, p.TakeProfit)
		}
	case DirectionShort:
		if !(p.TakeProfit < p.EntryPrice && p.EntryPrice < p.StopLoss) {
			return errors.Newf(errors.ErrCodeRiskInvariantViolation,
				"short position %s violates TP %.8f < entry %.8f < SL %.8f",
				p.Symbol, p.TakeProfit, p.EntryPrice, p.StopLoss)
		}
	default:
		return errors.Newf(errors.ErrCodeInvalidParameter, "unknown direction %q", p.Direction)
	}

	return nil
}
