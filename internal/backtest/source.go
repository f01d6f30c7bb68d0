package backtest

import (
	"database/sql"
	"strings"

	_ "github.com/marcboeker/go-duckdb"

	"patternbot/internal/types"
	"patternbot/pkg/errors"
)

// CandleSource yields closed candles in replay order, oldest first. One tick
// of the engine corresponds to one candle from the source.
type CandleSource interface {
	// ReadAll yields every candle in order.
	ReadAll() func(yield func(types.Candle, error) bool)
	// Count returns the number of candles the source will yield.
	Count() (int, error)
	// Close releases any resources held by the source.
	Close() error
}

// SliceSource replays an in-memory candle slice. Used by tests and by the
// CLI when candles were fetched from a live gateway first.
type SliceSource struct {
	Candles []types.Candle
}

// NewSliceSource creates a source over the given candles.
func NewSliceSource(candles []types.Candle) *SliceSource {
	return &SliceSource{Candles: candles}
}

// ReadAll implements CandleSource.
func (s *SliceSource) ReadAll() func(yield func(types.Candle, error) bool) {
	return func(yield func(types.Candle, error) bool) {
		for _, candle := range s.Candles {
			if !yield(candle, nil) {
				return
			}
		}
	}
}

// Count implements CandleSource.
func (s *SliceSource) Count() (int, error) {
	return len(s.Candles), nil
}

// Close implements CandleSource.
func (s *SliceSource) Close() error {
	return nil
}

// DuckDBSource replays candles from a CSV file through an in-memory DuckDB
// instance, letting DuckDB handle header detection, type inference and
// ordering. The file needs time, open, high, low, close and volume columns.
type DuckDBSource struct {
	db   *sql.DB
	path string
}

// NewDuckDBSource opens an in-memory DuckDB over the given CSV file.
func NewDuckDBSource(path string) (*DuckDBSource, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to open duckdb", err)
	}

	return &DuckDBSource{db: db, path: path}, nil
}

// ReadAll implements CandleSource.
func (d *DuckDBSource) ReadAll() func(yield func(types.Candle, error) bool) {
	return func(yield func(types.Candle, error) bool) {
		query := "SELECT time, open, high, low, close, volume FROM read_csv_auto('" +
			escapeSQLString(d.path) + "') ORDER BY time"

		rows, err := d.db.Query(query)
		if err != nil {
			yield(types.Candle{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read candle csv", err))

			return
		}
		defer rows.Close()

		for rows.Next() {
			var candle types.Candle

			if err := rows.Scan(&candle.Time, &candle.Open, &candle.High, &candle.Low, &candle.Close, &candle.Volume); err != nil {
				yield(types.Candle{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan candle row", err))

				return
			}

			if !yield(candle, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(types.Candle{}, errors.Wrap(errors.ErrCodeQueryFailed, "candle row iteration failed", err))
		}
	}
}

// Count implements CandleSource.
func (d *DuckDBSource) Count() (int, error) {
	query := "SELECT COUNT(*) FROM read_csv_auto('" + escapeSQLString(d.path) + "')"

	var count int
	if err := d.db.QueryRow(query).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count candles", err)
	}

	return count, nil
}

// Close implements CandleSource.
func (d *DuckDBSource) Close() error {
	return d.db.Close()
}

func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
