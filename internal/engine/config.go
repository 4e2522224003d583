package engine

import (
	"time"

	"rotation/types"

	"github.com/shopspring/decimal"
)

// StrategyConfig carries the rotation parameters shared by the today
// snapshot and the rotation backtest.
type StrategyConfig struct {
	baseWeights types.Weights
	trendAdj    decimal.Decimal
	relAdj      decimal.Decimal
	benchmark   string
}

func NewStrategyConfig(baseWeights types.Weights, trendAdj, relAdj decimal.Decimal, benchmark string) *StrategyConfig {
	return &StrategyConfig{
		baseWeights: baseWeights,
		trendAdj:    trendAdj,
		relAdj:      relAdj,
		benchmark:   benchmark,
	}
}

func (c *StrategyConfig) BaseWeights() types.Weights { return c.baseWeights }
func (c *StrategyConfig) TrendAdj() decimal.Decimal  { return c.trendAdj }
func (c *StrategyConfig) RelAdj() decimal.Decimal    { return c.relAdj }
func (c *StrategyConfig) Benchmark() string          { return c.benchmark }

// DataConfig selects the price history to load for a run.
type DataConfig struct {
	symbols []string
	start   time.Time
	end     time.Time
}

func NewDataConfig(symbols []string, start, end time.Time) *DataConfig {
	return &DataConfig{
		symbols: symbols,
		start:   start,
		end:     end,
	}
}
