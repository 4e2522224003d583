// Package rotation implements the two weight policies of the rotation
// strategy: strict mode pins the benchmark to its base weight and rotates
// only the other instruments around it, relaxed mode adjusts and
// renormalizes the whole set including the benchmark.
package rotation

import (
	"rotation/internal/engine"

	"github.com/shopspring/decimal"
)

// adjust applies the trend and relative-strength terms to one symbol's base
// weight and clamps the result at zero. An unknown moving average or return
// counts as a downtrend / underperformance (price == MA does too: the
// comparison is strict).
func adjust(base decimal.Decimal, symbol string, sig engine.WeightSignals, trendAdj, relAdj decimal.Decimal, benchmark string) decimal.Decimal {
	weight := base

	if sig.MAKnown[symbol] && sig.Prices[symbol].GreaterThan(sig.MovingAvg[symbol]) {
		weight = weight.Add(trendAdj)
	} else {
		weight = weight.Sub(trendAdj)
	}

	// The benchmark compared to itself carries no relative-strength term.
	if symbol != benchmark {
		if sig.ReturnsKnown[symbol] && sig.ReturnsKnown[benchmark] &&
			sig.Returns[symbol].GreaterThan(sig.Returns[benchmark]) {
			weight = weight.Add(relAdj)
		} else {
			weight = weight.Sub(relAdj)
		}
	}

	if weight.IsNegative() {
		return decimal.Zero
	}
	return weight
}
