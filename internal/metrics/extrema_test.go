package metrics

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ExtremaTestSuite struct {
	suite.Suite
}

func TestExtremaSuite(t *testing.T) {
	suite.Run(t, new(ExtremaTestSuite))
}

func (suite *ExtremaTestSuite) TestLocalMinima() {
	series := []float64{5, 3, 4, 2, 5, 6}

	suite.Equal([]int{1, 3}, LocalMinima(series, 1))
}

func (suite *ExtremaTestSuite) TestLocalMaxima() {
	series := []float64{5, 3, 4, 2, 5, 6}

	suite.Equal([]int{2}, LocalMaxima(series, 1))
}

func (suite *ExtremaTestSuite) TestEdgesNeverQualify() {
	// The global minimum sits at the first index and must not be reported
	series := []float64{1, 2, 3, 4, 5}

	suite.Empty(LocalMinima(series, 1))
	// Same for the global maximum at the last index
	suite.Empty(LocalMaxima(series, 1))
}

func (suite *ExtremaTestSuite) TestPlateausAreNotStrictExtrema() {
	series := []float64{1, 2, 2, 1}

	suite.Empty(LocalMaxima(series, 1))
	suite.Empty(LocalMinima(series, 1))
}

func (suite *ExtremaTestSuite) TestWiderWindowFiltersNoise() {
	// A small dip inside a larger valley only counts for the narrow window
	series := []float64{9, 5, 6, 4, 6, 5, 9}

	suite.Equal([]int{1, 3, 5}, LocalMinima(series, 1))
	suite.Equal([]int{3}, LocalMinima(series, 3))
}

func (suite *ExtremaTestSuite) TestShortSeries() {
	suite.Empty(LocalMinima([]float64{1, 2}, 1))
	suite.Empty(LocalMaxima(nil, 1))
}

func (suite *ExtremaTestSuite) TestNonPositiveWindow() {
	series := []float64{5, 3, 4}

	suite.Empty(LocalMinima(series, 0))
	suite.Empty(LocalMaxima(series, -1))
}

func (suite *ExtremaTestSuite) TestIndicesAscending() {
	series := []float64{9, 1, 8, 2, 7, 3, 9, 4, 8}

	minima := LocalMinima(series, 1)
	for i := 1; i < len(minima); i++ {
		suite.Less(minima[i-1], minima[i])
	}
}
