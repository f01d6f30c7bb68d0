package backtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"patternbot/internal/types"
)

type SourceTestSuite struct {
	suite.Suite
}

func TestSourceSuite(t *testing.T) {
	suite.Run(t, new(SourceTestSuite))
}

func (suite *SourceTestSuite) TestSliceSourceReplaysInOrder() {
	candles := []types.Candle{
		tickCandle(0, 100, 101, 99, 100.5),
		tickCandle(1, 100.5, 102, 100, 101.5),
		tickCandle(2, 101.5, 103, 101, 102.5),
	}

	source := NewSliceSource(candles)

	count, err := source.Count()
	suite.NoError(err)
	suite.Equal(3, count)

	var seen []types.Candle

	for candle, err := range source.ReadAll() {
		suite.NoError(err)
		seen = append(seen, candle)
	}

	suite.Equal(candles, seen)
	suite.NoError(source.Close())
}

func (suite *SourceTestSuite) TestSliceSourceStopsWhenYieldReturnsFalse() {
	source := NewSliceSource([]types.Candle{
		tickCandle(0, 100, 101, 99, 100.5),
		tickCandle(1, 100.5, 102, 100, 101.5),
	})

	var seen int

	for range source.ReadAll() {
		seen++

		break
	}

	suite.Equal(1, seen)
}

func (suite *SourceTestSuite) TestDuckDBSourceReadsCSVOrderedByTime() {
	path := filepath.Join(suite.T().TempDir(), "candles.csv")

	// Rows deliberately out of order; the source must sort by time.
	csv := "time,open,high,low,close,volume\n" +
		"2024-01-01 02:00:00,102,103,101,102.5,12\n" +
		"2024-01-01 00:00:00,100,101,99,100.5,10\n" +
		"2024-01-01 01:00:00,100.5,102,100,101.5,11\n"

	suite.Require().NoError(os.WriteFile(path, []byte(csv), 0o644))

	source, err := NewDuckDBSource(path)
	suite.Require().NoError(err)

	defer func() {
		suite.NoError(source.Close())
	}()

	count, err := source.Count()
	suite.NoError(err)
	suite.Equal(3, count)

	var closes []float64

	for candle, err := range source.ReadAll() {
		suite.NoError(err)
		closes = append(closes, candle.Close)
	}

	suite.Equal([]float64{100.5, 101.5, 102.5}, closes)
}

func (suite *SourceTestSuite) TestDuckDBSourceMissingFile() {
	source, err := NewDuckDBSource(filepath.Join(suite.T().TempDir(), "missing.csv"))
	suite.Require().NoError(err)

	defer func() {
		suite.NoError(source.Close())
	}()

	_, err = source.Count()
	suite.Error(err)
}

func TestEscapeSQLString(t *testing.T) {
	if got := escapeSQLString("it's.csv"); got != "it''s.csv" {
		t.Fatalf("unexpected escape %q", got)
	}
}
