package types

import "time"

// Direction is the side of a signal or position.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Signal is the output of a single detector evaluation that has already
// passed the risk guard. Detectors never surface a signal that violates the
// direction or reward:risk invariants.
type Signal struct {
	// StrategyName is the registry name of the detector that produced the signal.
	StrategyName string `yaml:"strategy_name" json:"strategy_name" csv:"strategy_name"`
	// Direction is the trade side.
	Direction Direction `yaml:"direction" json:"direction" csv:"direction"`
	// Confidence is 1.0 when all required conditions hold. Entries are gated
	// on the full predicate list, not on a graded score.
	Confidence float64 `yaml:"confidence" json:"confidence" csv:"confidence"`
	// EntryPrice is the reference price the stop and target were derived from,
	// usually the close of the confirmation candle. The actual fill may differ.
	EntryPrice float64 `yaml:"entry_price" json:"entry_price" csv:"entry_price"`
	// StopLoss is the buffered, guard-validated stop level.
	StopLoss float64 `yaml:"stop_loss" json:"stop_loss" csv:"stop_loss"`
	// TakeProfit is the buffered, guard-validated target level.
	TakeProfit float64 `yaml:"take_profit" json:"take_profit" csv:"take_profit"`
	// ATR is the average true range used for the stop/target buffers.
	ATR float64 `yaml:"atr" json:"atr" csv:"atr"`
	// Risk is the distance from entry to stop, positive once validated.
	Risk float64 `yaml:"risk" json:"risk" csv:"risk"`
	// Reason is a human-readable description of the matched pattern.
	Reason string `yaml:"reason" json:"reason" csv:"reason"`
	// Time is the open time of the last closed candle in the analysis window.
	Time time.Time `yaml:"time" json:"time" csv:"time"`
	// RefLevels carries pattern-specific reference data, e.g. divergence_low,
	// wedge_support or the XABCD points of a harmonic structure.
	RefLevels map[string]float64 `yaml:"ref_levels" json:"ref_levels" csv:"-"`
}
