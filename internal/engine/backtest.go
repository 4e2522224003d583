package engine

import (
	"time"

	"rotation/types"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

// InitialCapital is the notional starting value of every backtest.
var InitialCapital = decimal.NewFromInt(10000)

// BacktestResult pairs the daily value series with the sparse history of
// weights applied at each rebalancing event.
type BacktestResult struct {
	Values  types.ValueSeries
	Weights types.WeightsHistory
}

type rotationBacktester struct {
	prices     *types.PriceTable
	indicators *IndicatorSet
	policy     WeightPolicy
	base       types.Weights
	capital    decimal.Decimal
	progress   bool
}

func newRotationBacktester(prices *types.PriceTable, indicators *IndicatorSet, policy WeightPolicy, base types.Weights, progress bool) *rotationBacktester {
	return &rotationBacktester{
		prices:     prices,
		indicators: indicators,
		policy:     policy,
		base:       base,
		capital:    InitialCapital,
		progress:   progress,
	}
}

// RunRotationBacktest walks the price history day by day, rebalancing at the
// last trading day of each calendar month with freshly computed signals. The
// first ReturnWindow rows are skipped as indicator warm-up; a table shorter
// than that yields an empty result instead of an error.
func RunRotationBacktest(prices *types.PriceTable, indicators *IndicatorSet, policy WeightPolicy, base types.Weights) BacktestResult {
	return newRotationBacktester(prices, indicators, policy, base, false).run()
}

func (b *rotationBacktester) run() BacktestResult {
	var result BacktestResult

	n := b.prices.Len()
	start := ReturnWindow
	if n <= start {
		return result
	}

	monthEnds := periodEndIndexes(b.prices.Dates(), types.Monthly)

	var bar *progressbar.ProgressBar
	if b.progress {
		bar = initProgressBar(n - start)
	}

	// Initial allocation: fully invest the notional capital at the weights
	// for the first post-warm-up day. Cash is zero from here on.
	initial := Discretize(GetSignals(b.prices, b.indicators, b.policy, b.base, b.prices.Date(start)).Weights, b.policy)
	units := allocateUnits(b.prices, initial, b.capital, start)
	result.Weights.Append(b.prices.Date(start), initial)

	for i := start; i < n; i++ {
		value := holdingsValue(b.prices, units, i)
		result.Values.Append(b.prices.Date(i), value)

		if monthEnds[i] && i > start {
			target := Discretize(GetSignals(b.prices, b.indicators, b.policy, b.base, b.prices.Date(i)).Weights, b.policy)
			units = allocateUnits(b.prices, target, value, i)
			result.Weights.Append(b.prices.Date(i), target)
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	return result
}

// allocateUnits converts a portfolio value into instrument units at row i's
// closing prices. A zero or missing price leaves that symbol at zero units
// rather than propagating an error.
func allocateUnits(prices *types.PriceTable, weights types.Weights, value decimal.Decimal, i int) map[string]decimal.Decimal {
	units := make(map[string]decimal.Decimal, len(weights))
	for _, symbol := range weights.Symbols() {
		if !prices.HasClose(symbol, i) {
			units[symbol] = decimal.Zero
			continue
		}
		units[symbol] = value.Mul(weights[symbol]).Div(prices.Close(symbol, i))
	}
	return units
}

func holdingsValue(prices *types.PriceTable, units map[string]decimal.Decimal, i int) decimal.Decimal {
	value := decimal.Zero
	for symbol, qty := range units {
		value = value.Add(qty.Mul(prices.Close(symbol, i)))
	}
	return value
}

// periodEndIndexes marks the last trading day of each calendar period: row i
// is a period end when the next row falls in a different bucket, and the
// final row always is.
func periodEndIndexes(dates []time.Time, freq types.Frequency) map[int]bool {
	ends := make(map[int]bool, len(dates))
	for i := range dates {
		if i == len(dates)-1 || freq.Bucket(dates[i+1]) != freq.Bucket(dates[i]) {
			ends[i] = true
		}
	}
	return ends
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Backtesting in progress..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
