package risk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"patternbot/pkg/errors"
)

type GuardTestSuite struct {
	suite.Suite
}

func TestGuardSuite(t *testing.T) {
	suite.Run(t, new(GuardTestSuite))
}

func (suite *GuardTestSuite) TestMinRRTable() {
	suite.Equal(1.2, MinRR("morning_star"))
	suite.Equal(1.5, MinRR("bullish_divergence"))
	suite.Equal(1.5, MinRR("harmonic"))
	suite.Equal(1.0, MinRR("bearish_engulfing"))
	suite.Equal(1.2, MinRR("leading_diagonal_breakdown"))
	suite.Equal(DefaultMinRR, MinRR("something_unlisted"))
}

func (suite *GuardTestSuite) TestValidateLongAccepts() {
	risk, err := ValidateLong(100, 95, 110, "inverted_hammer")
	suite.NoError(err)
	suite.InDelta(5.0, risk, 1e-9)
}

func (suite *GuardTestSuite) TestValidateLongStopAboveEntry() {
	_, err := ValidateLong(100, 101, 110, "inverted_hammer")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeRiskInvariantViolation))
}

func (suite *GuardTestSuite) TestValidateLongTargetBelowEntry() {
	_, err := ValidateLong(100, 95, 99, "inverted_hammer")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeRiskInvariantViolation))
}

func (suite *GuardTestSuite) TestValidateLongRewardRiskFloor() {
	// morning_star requires 1:1.2; risk 5 so the target must reach 106
	_, err := ValidateLong(100, 95, 105.9, "morning_star")
	suite.Error(err)

	risk, err := ValidateLong(100, 95, 106, "morning_star")
	suite.NoError(err)
	suite.InDelta(5.0, risk, 1e-9)
}

func (suite *GuardTestSuite) TestValidateShortAccepts() {
	risk, err := ValidateShort(100, 105, 90, "shooting_star")
	suite.NoError(err)
	suite.InDelta(5.0, risk, 1e-9)
}

func (suite *GuardTestSuite) TestValidateShortStopBelowEntry() {
	_, err := ValidateShort(100, 99, 90, "shooting_star")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeRiskInvariantViolation))
}

func (suite *GuardTestSuite) TestValidateShortTargetAboveEntry() {
	_, err := ValidateShort(100, 105, 101, "shooting_star")
	suite.Error(err)
}

func (suite *GuardTestSuite) TestValidateShortRewardRiskFloor() {
	// evening_star requires 1:1.2; risk 5 so the target must reach 94
	_, err := ValidateShort(100, 105, 94.1, "evening_star")
	suite.Error(err)

	_, err = ValidateShort(100, 105, 94, "evening_star")
	suite.NoError(err)
}

func (suite *GuardTestSuite) TestValidateRejectsDegenerateLevels() {
	_, err := ValidateLong(100, 100, 110, "inverted_hammer")
	suite.Error(err)

	_, err = ValidateShort(100, 100, 90, "shooting_star")
	suite.Error(err)
}

func (suite *GuardTestSuite) TestValidateRejectsNonFinite() {
	_, err := ValidateLong(math.NaN(), 95, 110, "inverted_hammer")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	_, err = ValidateShort(100, math.Inf(1), 90, "shooting_star")
	suite.Error(err)

	_, err = ValidateLong(100, -5, 110, "inverted_hammer")
	suite.Error(err)
}

func (suite *GuardTestSuite) TestRandomTriplesNeverAcceptedInvalid() {
	// Whatever the guard accepts must satisfy the invariant by construction
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 5000; i++ {
		entry := 50 + rng.Float64()*100
		stop := 50 + rng.Float64()*100
		target := 50 + rng.Float64()*100

		if risk, err := ValidateLong(entry, stop, target, "inverted_hammer"); err == nil {
			suite.Less(stop, entry)
			suite.Greater(target, entry)
			suite.GreaterOrEqual(target-entry, risk*MinRR("inverted_hammer")-1e-9)
		}

		if risk, err := ValidateShort(entry, stop, target, "shooting_star"); err == nil {
			suite.Greater(stop, entry)
			suite.Less(target, entry)
			suite.GreaterOrEqual(entry-target, risk*MinRR("shooting_star")-1e-9)
		}
	}
}

func (suite *GuardTestSuite) TestEnsureMinRRLongKeepsBetterTarget() {
	// Pattern target above the floor target: geometry wins
	suite.InDelta(120, EnsureMinRRLong(100, 95, 120, 1.5), 1e-9)

	// Pattern target below the floor target: the floor lifts it
	suite.InDelta(107.5, EnsureMinRRLong(100, 95, 103, 1.5), 1e-9)
}

func (suite *GuardTestSuite) TestEnsureMinRRShortKeepsBetterTarget() {
	suite.InDelta(80, EnsureMinRRShort(100, 105, 80, 1.5), 1e-9)
	suite.InDelta(92.5, EnsureMinRRShort(100, 105, 97, 1.5), 1e-9)
}

func (suite *GuardTestSuite) TestEnsureMinRRDegenerateRisk() {
	// Non-positive risk leaves the pattern target untouched; the validators
	// will reject the triple afterwards
	suite.InDelta(110, EnsureMinRRLong(100, 100, 110, 1.5), 1e-9)
	suite.InDelta(90, EnsureMinRRShort(100, 100, 90, 1.5), 1e-9)
}

func (suite *GuardTestSuite) TestBufferedLevels() {
	suite.InDelta(93, BufferedStopLong(95, 2), 1e-9)
	suite.InDelta(109.6, BufferedTargetLong(110, 2), 1e-9)
	suite.InDelta(107, BufferedStopShort(105, 2), 1e-9)
	suite.InDelta(90.4, BufferedTargetShort(90, 2), 1e-9)
}

func (suite *GuardTestSuite) TestBufferedLevelsZeroATR() {
	// With no volatility estimate the pattern levels pass through unchanged
	suite.InDelta(95, BufferedStopLong(95, 0), 1e-9)
	suite.InDelta(110, BufferedTargetLong(110, 0), 1e-9)
}
