package rotation

import (
	"rotation/internal/engine"
	"rotation/types"

	"github.com/shopspring/decimal"
)

// Relaxed treats every symbol alike: the benchmark receives the same trend
// adjustment as the rest (but no relative-strength term, being its own
// comparison point) and the whole set is renormalized to sum to one.
type Relaxed struct {
	benchmark string
	trendAdj  decimal.Decimal
	relAdj    decimal.Decimal
}

func NewRelaxed(benchmark string, trendAdj, relAdj decimal.Decimal) *Relaxed {
	return &Relaxed{
		benchmark: benchmark,
		trendAdj:  trendAdj,
		relAdj:    relAdj,
	}
}

func (p *Relaxed) TargetWeights(base types.Weights, sig engine.WeightSignals) types.Weights {
	raw := make(types.Weights, len(base))
	for _, symbol := range base.Symbols() {
		raw[symbol] = adjust(base[symbol], symbol, sig, p.trendAdj, p.relAdj, p.benchmark)
	}

	total := raw.Sum()
	if !total.IsPositive() {
		// Everything clamped to zero: fall back to the base weights.
		return base.Copy()
	}

	target := make(types.Weights, len(raw))
	for _, symbol := range raw.Symbols() {
		target[symbol] = raw[symbol].Div(total)
	}
	return target
}

// RepairCandidates allows any symbol to absorb the rounding drift.
func (p *Relaxed) RepairCandidates(weights types.Weights) []string {
	return weights.Symbols()
}

var _ engine.WeightPolicy = (*Relaxed)(nil)
var _ engine.WeightPolicy = (*Strict)(nil)
