package engine

import (
	"time"

	"rotation/types"

	"github.com/shopspring/decimal"
)

// SignalResult is the continuous target-weight snapshot for one query date,
// together with the raw values it was derived from so callers can display
// the reasoning. Weights are not yet discretized.
type SignalResult struct {
	Date    time.Time
	Weights types.Weights
	Signals WeightSignals
}

// GetSignals computes continuous target weights for date. A date that is not
// a trading day resolves to the most recent prior trading day; if no such
// day exists the normalized base weights are returned unchanged. Base
// weights are normalized before any adjustment, so callers may pass
// unnormalized allocations.
func GetSignals(
	prices *types.PriceTable,
	indicators *IndicatorSet,
	policy WeightPolicy,
	base types.Weights,
	date time.Time,
) SignalResult {
	normalized := base.Normalized()

	idx, ok := prices.IndexOnOrBefore(date)
	if !ok || prices.Len() == 0 {
		return SignalResult{Date: date, Weights: normalized}
	}

	sig := snapshotSignals(prices, indicators, normalized, idx)
	return SignalResult{
		Date:    prices.Date(idx),
		Weights: policy.TargetWeights(normalized, sig),
		Signals: sig,
	}
}

func snapshotSignals(prices *types.PriceTable, indicators *IndicatorSet, base types.Weights, idx int) WeightSignals {
	sig := WeightSignals{
		Prices:       make(map[string]decimal.Decimal),
		MovingAvg:    make(map[string]decimal.Decimal),
		MAKnown:      make(map[string]bool),
		Returns:      make(map[string]decimal.Decimal),
		ReturnsKnown: make(map[string]bool),
	}
	for _, symbol := range base.Symbols() {
		sig.Prices[symbol] = prices.Close(symbol, idx)
		sig.MovingAvg[symbol], sig.MAKnown[symbol] = indicators.MovingAverage(symbol, idx)
		sig.Returns[symbol], sig.ReturnsKnown[symbol] = indicators.PeriodReturn(symbol, idx)
	}
	return sig
}
