package backtest

import (
	"database/sql"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"patternbot/internal/logger"
	"patternbot/internal/types"
	"patternbot/pkg/errors"
)

// BacktestState is the append-only trade log of a run, backed by an
// in-memory DuckDB instance. Trade results are immutable once recorded.
type BacktestState struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// ResultStats summarizes the recorded trades of a run.
type ResultStats struct {
	TotalTrades          int
	Wins                 int
	Losses               int
	WinRate              float64
	CumulativePnLPercent float64
}

// NewBacktestState opens the in-memory trade database.
func NewBacktestState(log *logger.Logger) (*BacktestState, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestState, "failed to open trade database", err)
	}

	return &BacktestState{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the trades table.
func (b *BacktestState) Initialize() error {
	_, err := b.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			id TEXT PRIMARY KEY,
			symbol TEXT,
			strategy_name TEXT,
			direction TEXT,
			entry_price DOUBLE,
			exit_price DOUBLE,
			quantity DOUBLE,
			entry_tick INTEGER,
			exit_tick INTEGER,
			entry_time TIMESTAMP,
			exit_time TIMESTAMP,
			pnl_percent DOUBLE,
			exit_reason TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestState, "failed to create trades table", err)
	}

	return nil
}

// RecordTrade appends one closed trade to the log, assigning it an id when
// the result carries none.
func (b *BacktestState) RecordTrade(result types.TradeResult) error {
	if result.ID == "" {
		result.ID = uuid.New().String()
	}

	insert := b.sq.
		Insert("trades").
		Columns(
			"id", "symbol", "strategy_name", "direction", "entry_price", "exit_price",
			"quantity", "entry_tick", "exit_tick", "entry_time", "exit_time",
			"pnl_percent", "exit_reason",
		).
		Values(
			result.ID, result.Symbol, result.StrategyName, string(result.Direction),
			result.EntryPrice, result.ExitPrice, result.Quantity, result.EntryTick,
			result.ExitTick, result.EntryTime, result.ExitTime, result.PnLPercent,
			string(result.ExitReason),
		).
		RunWith(b.db)

	if _, err := insert.Exec(); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestState, "failed to record trade", err)
	}

	b.logger.Debug("Trade recorded",
		zap.String("symbol", result.Symbol),
		zap.String("strategy", result.StrategyName),
		zap.String("exit_reason", string(result.ExitReason)),
		zap.Float64("pnl_percent", result.PnLPercent),
	)

	return nil
}

// GetTradeResults returns every recorded trade in close order.
func (b *BacktestState) GetTradeResults() ([]types.TradeResult, error) {
	query := b.sq.
		Select(
			"id", "symbol", "strategy_name", "direction", "entry_price", "exit_price",
			"quantity", "entry_tick", "exit_tick", "entry_time", "exit_time",
			"pnl_percent", "exit_reason",
		).
		From("trades").
		OrderBy("exit_tick ASC").
		RunWith(b.db)

	rows, err := query.Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query trades", err)
	}
	defer rows.Close()

	var results []types.TradeResult

	for rows.Next() {
		var result types.TradeResult

		var direction, exitReason string

		if err := rows.Scan(
			&result.ID, &result.Symbol, &result.StrategyName, &direction,
			&result.EntryPrice, &result.ExitPrice, &result.Quantity,
			&result.EntryTick, &result.ExitTick, &result.EntryTime, &result.ExitTime,
			&result.PnLPercent, &exitReason,
		); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan trade row", err)
		}

		result.Direction = types.Direction(direction)
		result.ExitReason = types.ExitReason(exitReason)
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "trade row iteration failed", err)
	}

	return results, nil
}

// Stats aggregates the recorded trades. Cumulative PnL percent is a plain
// sum of per-trade percent results, computed with decimal arithmetic.
func (b *BacktestState) Stats() (ResultStats, error) {
	results, err := b.GetTradeResults()
	if err != nil {
		return ResultStats{}, err
	}

	stats := ResultStats{TotalTrades: len(results)}
	cumulative := decimal.Zero

	for _, result := range results {
		if result.PnLPercent > 0 {
			stats.Wins++
		} else {
			stats.Losses++
		}

		cumulative = cumulative.Add(decimal.NewFromFloat(result.PnLPercent))
	}

	if stats.TotalTrades > 0 {
		stats.WinRate = float64(stats.Wins) / float64(stats.TotalTrades)
	}

	stats.CumulativePnLPercent, _ = cumulative.Float64()

	return stats, nil
}

// ExportTrades writes the trade log to a CSV file through DuckDB.
func (b *BacktestState) ExportTrades(path string) error {
	query := "COPY (SELECT * FROM trades ORDER BY exit_tick ASC) TO '" +
		strings.ReplaceAll(path, "'", "''") + "' (HEADER, DELIMITER ',')"

	if _, err := b.db.Exec(query); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestState, "failed to export trades", err)
	}

	return nil
}

// Cleanup drops the trade log so the state can be reused for another run.
func (b *BacktestState) Cleanup() error {
	if _, err := b.db.Exec(`DROP TABLE IF EXISTS trades`); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestState, "failed to drop trades table", err)
	}

	return nil
}

// Close releases the underlying database.
func (b *BacktestState) Close() error {
	return b.db.Close()
}
