package engine

import (
	"testing"
	"time"

	"rotation/types"

	"github.com/shopspring/decimal"
)

// stubPolicy returns the base weights untouched and lets any symbol absorb
// rounding drift. It keeps backtest mechanics tests independent of the real
// rotation policies.
type stubPolicy struct{}

func (stubPolicy) TargetWeights(base types.Weights, _ WeightSignals) types.Weights {
	return base.Normalized()
}

func (stubPolicy) RepairCandidates(weights types.Weights) []string {
	return weights.Symbols()
}

// pinnedPolicy mimics strict-mode candidate shielding for discretizer tests.
type pinnedPolicy struct {
	benchmark string
}

func (pinnedPolicy) TargetWeights(base types.Weights, _ WeightSignals) types.Weights {
	return base.Normalized()
}

func (p pinnedPolicy) RepairCandidates(weights types.Weights) []string {
	symbols := weights.Symbols()
	if len(symbols) <= 1 {
		return symbols
	}
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s != p.benchmark {
			out = append(out, s)
		}
	}
	return out
}

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// tradingDays generates n consecutive weekdays starting at start.
func tradingDays(start time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	cur := start
	for len(out) < n {
		if wd := cur.Weekday(); wd != time.Saturday && wd != time.Sunday {
			out = append(out, cur)
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return out
}

// constPriceTable builds a table with the same close for every row of each
// column.
func constPriceTable(t *testing.T, dates []time.Time, closes map[string]string) *types.PriceTable {
	t.Helper()
	symbols := make([]string, 0, len(closes))
	row := make(map[string]decimal.Decimal, len(closes))
	for s, c := range closes {
		symbols = append(symbols, s)
		row[s] = d(t, c)
	}
	table := types.NewPriceTable(symbols)
	for _, date := range dates {
		if err := table.AddRow(date, row); err != nil {
			t.Fatalf("AddRow(%v) error: %v", date, err)
		}
	}
	return table
}

func wantWeight(t *testing.T, w types.Weights, symbol, want string) {
	t.Helper()
	if !w[symbol].Equal(d(t, want)) {
		t.Errorf("weight[%s] = %s, want %s", symbol, w[symbol], want)
	}
}
