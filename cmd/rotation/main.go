package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rotation/internal/config"
	"rotation/internal/engine"
	"rotation/internal/marketdata"
	"rotation/internal/repository"
	"rotation/strategies/rotation"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	setupLogging(cfg.LogLevel)

	ctx := context.Background()
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(-cfg.PeriodYears, 0, 0)
	symbols := cfg.BaseWeights.Symbols()

	db, err := repository.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to price store")
	}
	defer db.Close()

	if err := refreshPrices(ctx, &db, cfg, symbols, start, end); err != nil {
		log.Fatal().Err(err).Msg("refreshing price history")
	}

	policy := buildPolicy(cfg)
	eng := engine.NewEngine(
		&db,
		engine.NewDataConfig(symbols, start, end),
		engine.NewStrategyConfig(cfg.BaseWeights, cfg.TrendAdj, cfg.RelAdj, cfg.Benchmark),
		policy,
		true,
	)

	var result *engine.RunResult
	if cfg.Mode == config.ModeFixed {
		result, err = eng.RunFixed(ctx, cfg.Frequency)
	} else {
		result, err = eng.Run(ctx)
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", cfg.Mode).Msg("running engine")
	}

	fmt.Println()
	if cfg.Mode == config.ModeRotation {
		printTargetWeights(result)
	}
	engine.PrintReport(engine.BuildReport(result.Backtest, result.Metrics))

	if cfg.OutputDir != "" {
		if err := writeExports(cfg.OutputDir, result.Backtest); err != nil {
			log.Fatal().Err(err).Msg("writing CSV exports")
		}
		log.Info().Str("dir", cfg.OutputDir).Msg("wrote backtest exports")
	}
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func buildPolicy(cfg *config.Config) engine.WeightPolicy {
	if cfg.Relaxed {
		return rotation.NewRelaxed(cfg.Benchmark, cfg.TrendAdj, cfg.RelAdj)
	}
	return rotation.NewStrict(cfg.Benchmark, cfg.TrendAdj, cfg.RelAdj)
}

// refreshPrices fills the price store from Twelve Data when the cache has no
// rows for the requested range. The store is the single writer here.
func refreshPrices(ctx context.Context, db *repository.Database, cfg *config.Config, symbols []string, start, end time.Time) error {
	_, err := db.GetDailyCloses(ctx, symbols, start, end)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNoPrices) {
		return err
	}

	log.Info().Strs("symbols", symbols).Msg("price cache empty, fetching from Twelve Data")
	client := marketdata.NewClient(marketdata.ClientOptions{APIKey: cfg.TwelveAPIKey})
	prices, err := client.GetDailyCloses(ctx, symbols, start, end)
	if err != nil {
		return err
	}
	return db.SaveDailyCloses(ctx, prices)
}

func printTargetWeights(result *engine.RunResult) {
	fmt.Println("===== Target Weights (today) =====")
	for _, symbol := range result.Target.Symbols() {
		price := result.Today.Signals.Prices[symbol]
		ma := result.Today.Signals.MovingAvg[symbol]
		ret := result.Today.Signals.Returns[symbol]
		fmt.Printf("%-6s %6s%%   close %10s   50d MA %10s   3mo %7s%%\n",
			symbol,
			result.Target[symbol].Mul(hundred).StringFixed(0),
			price.StringFixed(2),
			ma.StringFixed(2),
			ret.Mul(hundred).StringFixed(2),
		)
	}
	fmt.Println()
}

func writeExports(dir string, backtest engine.BacktestResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := engine.WriteValueSeriesCSVFile(filepath.Join(dir, "portfolio_values.csv"), backtest.Values); err != nil {
		return err
	}
	return engine.WriteWeightsHistoryCSVFile(filepath.Join(dir, "weights_history.csv"), backtest.Weights)
}
