package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExitReason names the condition that closed a position.
type ExitReason string

const (
	ExitReasonTakeProfit ExitReason = "take_profit"
	ExitReasonStopLoss   ExitReason = "stop_loss"
	// ExitReasonEndOfData marks a forced close when replay data ran out while
	// the position was still open.
	ExitReasonEndOfData ExitReason = "end_of_data"
)

// TradeResult is the immutable record of one closed position. Results are
// append-only; they are never mutated after creation.
type TradeResult struct {
	ID           string     `yaml:"id" json:"id" csv:"id"`
	Symbol       string     `yaml:"symbol" json:"symbol" csv:"symbol"`
	StrategyName string     `yaml:"strategy_name" json:"strategy_name" csv:"strategy_name"`
	Direction    Direction  `yaml:"direction" json:"direction" csv:"direction"`
	EntryPrice   float64    `yaml:"entry_price" json:"entry_price" csv:"entry_price"`
	ExitPrice    float64    `yaml:"exit_price" json:"exit_price" csv:"exit_price"`
	Quantity     float64    `yaml:"quantity" json:"quantity" csv:"quantity"`
	EntryTick    int        `yaml:"entry_tick" json:"entry_tick" csv:"entry_tick"`
	ExitTick     int        `yaml:"exit_tick" json:"exit_tick" csv:"exit_tick"`
	EntryTime    time.Time  `yaml:"entry_time" json:"entry_time" csv:"entry_time"`
	ExitTime     time.Time  `yaml:"exit_time" json:"exit_time" csv:"exit_time"`
	PnLPercent   float64    `yaml:"pnl_percent" json:"pnl_percent" csv:"pnl_percent"`
	ExitReason   ExitReason `yaml:"exit_reason" json:"exit_reason" csv:"exit_reason"`
}

// PnLPercent computes the realized profit of a closed trade as a percentage of
// the entry price, scaled by leverage. Long trades gain when exit is above
// entry, short trades when exit is below.
func PnLPercent(direction Direction, entry, exit, leverage float64) float64 {
	if entry == 0 {
		return 0
	}

	if leverage <= 0 {
		leverage = 1
	}

	entryDec := decimal.NewFromFloat(entry)
	exitDec := decimal.NewFromFloat(exit)

	var moveDec decimal.Decimal
	if direction == DirectionShort {
		moveDec = entryDec.Sub(exitDec)
	} else {
		moveDec = exitDec.Sub(entryDec)
	}

	pnl := moveDec.
		Div(entryDec).
		Mul(decimal.NewFromInt(100)).
		Mul(decimal.NewFromFloat(leverage))

	result, _ := pnl.Float64()

	return result
}
