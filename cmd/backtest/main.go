package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"patternbot/internal/backtest"
	"patternbot/internal/gateway"
	"patternbot/internal/logger"
	"patternbot/internal/strategy"
)

// loadConfig reads the YAML run configuration, falling back to defaults when
// no path is given. Strategy names passed on the command line override the
// file's selection.
func loadConfig(path string, strategies []string) (backtest.Config, error) {
	content := "initial_capital: 10000"

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return backtest.Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		content = string(raw)
	}

	config, err := backtest.ParseConfig(content)
	if err != nil {
		return backtest.Config{}, err
	}

	if len(strategies) > 0 {
		config.Strategies = strategies
	}

	return config, nil
}

// openSource builds the candle source for the run. CSV files are replayed
// through DuckDB; the binance source fetches a recent window over the REST
// API and replays it in memory.
func openSource(ctx context.Context, cmd *cli.Command) (backtest.CandleSource, error) {
	switch cmd.String("source") {
	case "csv":
		dataPath := cmd.String("data")
		if dataPath == "" {
			return nil, fmt.Errorf("--data is required with the csv source")
		}

		return backtest.NewDuckDBSource(dataPath)
	case "binance":
		data := gateway.NewBinanceSpotData(os.Getenv("BINANCE_API_KEY"), os.Getenv("BINANCE_SECRET_KEY"))

		candles, err := data.GetCandles(ctx, cmd.String("symbol"), cmd.String("interval"), int(cmd.Int("limit")))
		if err != nil {
			return nil, err
		}

		// The trailing candle is still forming and must not reach the
		// detectors.
		return backtest.NewSliceSource(strategy.DropUnclosed(candles)), nil
	default:
		return nil, fmt.Errorf("unknown source %q, want csv or binance", cmd.String("source"))
	}
}

// backtestAction wires the registry, simulated executor, trade log and
// engine together and replays the requested candle source.
func backtestAction(ctx context.Context, cmd *cli.Command) error {
	symbol := cmd.String("symbol")

	config, err := loadConfig(cmd.String("config"), cmd.StringSlice("strategy"))
	if err != nil {
		return err
	}

	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	source, err := openSource(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	state, err := backtest.NewBacktestState(log)
	if err != nil {
		return err
	}
	defer func() { _ = state.Close() }()

	if err := state.Initialize(); err != nil {
		return err
	}

	executor := gateway.NewSimulatedExecutor(config.InitialCapital, config.BalanceFraction, config.Leverage, config.Slippage)

	engine, err := backtest.NewEngine(config, log, strategy.NewDefaultRegistry(), executor, state)
	if err != nil {
		return err
	}

	total, err := source.Count()
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(fmt.Sprintf("Backtesting %s", symbol)),
		progressbar.OptionShowCount(),
	)

	onProgress := optional.Some[backtest.OnTickCallback](func(current, total int) {
		_ = bar.Set(current)
	})

	if err := engine.Run(ctx, symbol, source, onProgress); err != nil {
		return err
	}

	_ = bar.Finish()
	fmt.Println()

	stats, err := state.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Trades:         %d (%d wins, %d losses)\n", stats.TotalTrades, stats.Wins, stats.Losses)
	fmt.Printf("Win rate:       %.2f%%\n", stats.WinRate*100)
	fmt.Printf("Cumulative PnL: %.2f%%\n", stats.CumulativePnLPercent)
	fmt.Printf("Final balance:  %.2f\n", executor.Balance())

	output := cmd.String("output")
	if output == "" {
		return nil
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder %s: %w", output, err)
	}

	exportPath := filepath.Join(output, fmt.Sprintf("trades_%s_%s.csv", symbol, time.Now().Format("20060102_150405")))
	if err := state.ExportTrades(exportPath); err != nil {
		return err
	}

	fmt.Printf("Trades written to %s\n", exportPath)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Replay candles through the pattern detectors and report trades",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "symbol",
				Aliases:  []string{"s"},
				Usage:    "Instrument symbol (e.g. BTCUSDT)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML run configuration",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "Candle source, csv or binance",
				Value: "csv",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to a CSV candle file (csv source)",
			},
			&cli.StringFlag{
				Name:  "interval",
				Usage: "Kline interval for the binance source",
				Value: "1h",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Number of candles to fetch from the binance source",
				Value: 1000,
			},
			&cli.StringSliceFlag{
				Name:  "strategy",
				Usage: "Restrict the run to the named strategies (repeatable)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Folder for the exported trade CSV",
			},
		},
		Action: backtestAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
