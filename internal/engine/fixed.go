package engine

import (
	"rotation/types"

	"github.com/shopspring/decimal"
)

type fixedBacktester struct {
	prices    *types.PriceTable
	weights   types.Weights
	frequency types.Frequency
	capital   decimal.Decimal
}

func newFixedBacktester(prices *types.PriceTable, weights types.Weights, frequency types.Frequency) *fixedBacktester {
	return &fixedBacktester{
		prices:    prices,
		weights:   weights,
		frequency: frequency,
		capital:   InitialCapital,
	}
}

// RunFixedBacktest rebalances back to a static weight set at the last
// trading day of each calendar period. No indicators are involved, so the
// run starts on the first trading day with no warm-up. An empty table or a
// zero-sum weight set yields an empty result.
func RunFixedBacktest(prices *types.PriceTable, weights types.Weights, frequency types.Frequency) BacktestResult {
	return newFixedBacktester(prices, weights, frequency).run()
}

func (b *fixedBacktester) run() BacktestResult {
	var result BacktestResult

	n := b.prices.Len()
	if n == 0 || !b.weights.Sum().IsPositive() {
		return result
	}

	target := b.weights.Normalized()
	periodEnds := periodEndIndexes(b.prices.Dates(), b.frequency)
	units := allocateUnits(b.prices, target, b.capital, 0)

	for i := 0; i < n; i++ {
		value := holdingsValue(b.prices, units, i)
		result.Values.Append(b.prices.Date(i), value)

		if periodEnds[i] {
			units = allocateUnits(b.prices, target, value, i)
			result.Weights.Append(b.prices.Date(i), target)
		}
	}
	return result
}
