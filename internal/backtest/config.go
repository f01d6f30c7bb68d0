package backtest

import (
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"patternbot/pkg/errors"
)

// Default engine parameters, applied when the config omits a field.
const (
	DefaultWindowSize      = 120
	DefaultBalanceFraction = 0.1
	DefaultLeverage        = 1.0
)

// Config drives one backtest run.
type Config struct {
	// InitialCapital is the simulated account balance.
	InitialCapital float64 `yaml:"initial_capital" validate:"required,gt=0"`
	// BalanceFraction is the share of the balance committed per position.
	BalanceFraction float64 `yaml:"balance_fraction" validate:"gte=0,lte=1"`
	// Leverage scales position size and realized PnL, 1 for spot.
	Leverage float64 `yaml:"leverage" validate:"gte=0"`
	// Slippage is the relative entry fill penalty of the simulated executor.
	Slippage float64 `yaml:"slippage" validate:"gte=0,lt=1"`
	// WindowSize is the number of trailing closed candles fed to detectors.
	WindowSize int `yaml:"window_size" validate:"gte=0"`
	// Strategies restricts the run to the named detectors; empty runs all.
	Strategies []string `yaml:"strategies"`
}

// EmptyConfig returns a zero config, to be filled by ParseConfig.
func EmptyConfig() Config {
	return Config{}
}

// ParseConfig parses and validates a yaml engine config, applying defaults
// for omitted optional fields.
func ParseConfig(content string) (Config, error) {
	config := EmptyConfig()

	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse engine config", err)
	}

	config.applyDefaults()

	if err := validator.New().Struct(&config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid engine config", err)
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.WindowSize == 0 {
		c.WindowSize = DefaultWindowSize
	}

	if c.BalanceFraction == 0 {
		c.BalanceFraction = DefaultBalanceFraction
	}

	if c.Leverage == 0 {
		c.Leverage = DefaultLeverage
	}
}

// wantsStrategy reports whether the run includes the named detector.
func (c *Config) wantsStrategy(name string) bool {
	if len(c.Strategies) == 0 {
		return true
	}

	for _, s := range c.Strategies {
		if s == name {
			return true
		}
	}

	return false
}
