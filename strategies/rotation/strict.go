package rotation

import (
	"rotation/internal/engine"
	"rotation/types"

	"github.com/shopspring/decimal"
)

// Strict is the default rotation mode: the benchmark weight is invariant and
// exempt from adjustment, and the remaining symbols are adjusted then
// rescaled to share exactly (1 - benchmark weight).
type Strict struct {
	benchmark string
	trendAdj  decimal.Decimal
	relAdj    decimal.Decimal
}

func NewStrict(benchmark string, trendAdj, relAdj decimal.Decimal) *Strict {
	return &Strict{
		benchmark: benchmark,
		trendAdj:  trendAdj,
		relAdj:    relAdj,
	}
}

func (p *Strict) TargetWeights(base types.Weights, sig engine.WeightSignals) types.Weights {
	benchmarkWeight := base[p.benchmark]
	target := make(types.Weights, len(base))

	raw := make(types.Weights, len(base))
	for _, symbol := range base.Symbols() {
		if symbol == p.benchmark {
			continue
		}
		raw[symbol] = adjust(base[symbol], symbol, sig, p.trendAdj, p.relAdj, p.benchmark)
	}

	otherTarget := decimal.NewFromInt(1).Sub(benchmarkWeight)
	rawSum := raw.Sum()

	if rawSum.IsPositive() {
		for _, symbol := range raw.Symbols() {
			target[symbol] = raw[symbol].Div(rawSum).Mul(otherTarget)
		}
	} else {
		// Every adjusted weight clamped to zero: redistribute in proportion
		// to the base weights instead.
		baseSum := decimal.Zero
		for symbol := range raw {
			baseSum = baseSum.Add(base[symbol])
		}
		for _, symbol := range raw.Symbols() {
			if baseSum.IsPositive() {
				target[symbol] = base[symbol].Div(baseSum).Mul(otherTarget)
			} else {
				target[symbol] = decimal.Zero
			}
		}
	}

	target[p.benchmark] = benchmarkWeight
	return target
}

// RepairCandidates shields the pinned benchmark from the rounding-drift
// correction whenever any other symbol exists.
func (p *Strict) RepairCandidates(weights types.Weights) []string {
	symbols := weights.Symbols()
	if len(symbols) <= 1 {
		return symbols
	}
	out := symbols[:0]
	for _, symbol := range symbols {
		if symbol != p.benchmark {
			out = append(out, symbol)
		}
	}
	return out
}
