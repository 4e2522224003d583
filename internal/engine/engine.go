package engine

import (
	"context"
	"errors"
	"fmt"

	"rotation/types"
)

var ErrNoPriceHistory = errors.New("no price history for requested symbols")

// Engine wires the data store, weight policy and strategy parameters into
// one run: load prices, compute indicators, produce the today snapshot, walk
// the rotation backtest and reduce the value series to metrics. The engine
// holds no state across runs; concurrent callers each build their own.
type Engine struct {
	db             dataStore
	dataConfig     *DataConfig
	strategyConfig *StrategyConfig
	policy         WeightPolicy
	progress       bool
}

// RunResult is everything a caller (CLI, web layer) needs from one run.
type RunResult struct {
	Today    SignalResult
	Target   types.Weights
	Backtest BacktestResult
	Metrics  types.Metrics
}

func NewEngine(db dataStore, dataConfig *DataConfig, strategyConfig *StrategyConfig, policy WeightPolicy, progress bool) *Engine {
	return &Engine{
		db:             db,
		dataConfig:     dataConfig,
		strategyConfig: strategyConfig,
		policy:         policy,
		progress:       progress,
	}
}

func (e *Engine) Run(ctx context.Context) (*RunResult, error) {
	prices, err := e.loadData(ctx)
	if err != nil {
		return nil, err
	}

	indicators := ComputeIndicators(prices)
	base := e.strategyConfig.BaseWeights()

	today := GetSignals(prices, indicators, e.policy, base, e.dataConfig.end)
	backtest := newRotationBacktester(prices, indicators, e.policy, base, e.progress).run()

	return &RunResult{
		Today:    today,
		Target:   Discretize(today.Weights, e.policy),
		Backtest: backtest,
		Metrics:  CalculateMetrics(backtest.Values),
	}, nil
}

// RunFixed loads the same price history but rebalances back to the static
// base weights at each period end, with no indicators and no warm-up. The
// result carries no today snapshot.
func (e *Engine) RunFixed(ctx context.Context, frequency types.Frequency) (*RunResult, error) {
	prices, err := e.loadData(ctx)
	if err != nil {
		return nil, err
	}

	backtest := RunFixedBacktest(prices, e.strategyConfig.BaseWeights(), frequency)
	return &RunResult{
		Target:   e.strategyConfig.BaseWeights().Normalized(),
		Backtest: backtest,
		Metrics:  CalculateMetrics(backtest.Values),
	}, nil
}

func (e *Engine) loadData(ctx context.Context) (*types.PriceTable, error) {
	// Resolve every symbol to a listed asset before touching price history,
	// so a typo in the configured weights fails loudly.
	for _, symbol := range e.dataConfig.symbols {
		if _, err := e.db.GetAsset(ctx, symbol); err != nil {
			return nil, fmt.Errorf("resolving asset %s: %w", symbol, err)
		}
	}

	prices, err := e.db.GetDailyCloses(ctx, e.dataConfig.symbols, e.dataConfig.start, e.dataConfig.end)
	if err != nil {
		return nil, err
	}
	if prices.Len() == 0 {
		return nil, ErrNoPriceHistory
	}
	return prices, nil
}
