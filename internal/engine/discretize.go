package engine

import (
	"rotation/types"

	"github.com/shopspring/decimal"
)

var (
	one      = decimal.NewFromInt(1)
	gridStep = decimal.RequireFromString("0.05")
)

// Discretize snaps continuous weights onto the 5% grid and repairs rounding
// drift so the set sums to exactly one. The residual is applied in full to a
// single candidate: the eligible symbol with the largest (weight, symbol)
// tuple, alphabetically-last on equal weights. Candidate eligibility comes
// from the policy, so strict mode shields the pinned benchmark whenever
// another symbol exists.
func Discretize(weights types.Weights, policy WeightPolicy) types.Weights {
	out := make(types.Weights, len(weights))
	for _, symbol := range weights.Symbols() {
		out[symbol] = snapToGrid(weights[symbol])
	}

	diff := one.Sub(out.Sum()).Round(2)
	if diff.IsZero() {
		return out
	}

	candidates := policy.RepairCandidates(out)
	if len(candidates) == 0 {
		candidates = out.Symbols()
	}
	target := candidates[0]
	for _, symbol := range candidates[1:] {
		w, best := out[symbol], out[target]
		if w.GreaterThan(best) || (w.Equal(best) && symbol > target) {
			target = symbol
		}
	}
	out[target] = out[target].Add(diff).Round(2)
	return out
}

// snapToGrid rounds to the nearest multiple of 0.05, then cleans the result
// to two decimals. A weight exactly halfway between two grid steps rounds
// up (decimal rounds halves away from zero, and weights are non-negative).
func snapToGrid(w decimal.Decimal) decimal.Decimal {
	return w.Div(gridStep).Round(0).Mul(gridStep).Round(2)
}
