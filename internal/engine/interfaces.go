package engine

import (
	"context"
	"time"

	"rotation/types"

	"github.com/shopspring/decimal"
)

type dataStore interface {
	GetAsset(ctx context.Context, symbol string) (*types.Asset, error)
	GetDailyCloses(ctx context.Context, symbols []string, start, end time.Time) (*types.PriceTable, error)
}

// WeightSignals is the per-date snapshot a weight policy works from. Known
// flags are false inside the indicator warm-up; an unknown indicator always
// lands in the subtract branch of the corresponding adjustment.
type WeightSignals struct {
	Prices       map[string]decimal.Decimal
	MovingAvg    map[string]decimal.Decimal
	MAKnown      map[string]bool
	Returns      map[string]decimal.Decimal
	ReturnsKnown map[string]bool
}

// WeightPolicy turns base weights plus a signal snapshot into continuous
// (not yet discretized) target weights. The two implementations live in
// strategies/rotation: strict pins the benchmark to its base weight, relaxed
// adjusts every symbol and renormalizes the whole set.
type WeightPolicy interface {
	// TargetWeights must iterate symbols in lexicographic order so that
	// rescaling is bit-for-bit reproducible, and must return weights that
	// are non-negative and sum to one.
	TargetWeights(base types.Weights, sig WeightSignals) types.Weights

	// RepairCandidates returns the symbols eligible to absorb the rounding
	// residual left by discretization.
	RepairCandidates(weights types.Weights) []string
}
