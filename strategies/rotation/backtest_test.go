package rotation

import (
	"testing"
	"time"

	"rotation/internal/engine"
	"rotation/types"

	"github.com/shopspring/decimal"
)

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

// TestRotationBacktestEndToEnd runs the full pipeline with the strict
// policy over a synthetic uptrending/downtrending pair.
func TestRotationBacktestEndToEnd(t *testing.T) {
	dates := tradingDays(time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC), 150)
	table := types.NewPriceTable([]string{"QQQM", "VOO"})
	for i, date := range dates {
		// VOO drifts up slowly, QQQM faster: QQQM should be overweighted.
		err := table.AddRow(date, map[string]decimal.Decimal{
			"VOO":  decimal.NewFromInt(1000).Add(decimal.NewFromInt(int64(i))),
			"QQQM": decimal.NewFromInt(500).Add(decimal.NewFromInt(int64(3 * i))),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	ind := engine.ComputeIndicators(table)
	base := types.Weights{"VOO": d(t, "0.4"), "QQQM": d(t, "0.6")}
	policy := NewStrict("VOO", d(t, "0.10"), d(t, "0.05"))

	got := engine.RunRotationBacktest(table, ind, policy, base)

	if got.Values.Len() != len(dates)-engine.ReturnWindow {
		t.Fatalf("Values.Len() = %d, want %d", got.Values.Len(), len(dates)-engine.ReturnWindow)
	}
	if got.Weights.Len() == 0 {
		t.Fatal("no weights history recorded")
	}
	for i, row := range got.Weights.Rows {
		if !row.Sum().Equal(d(t, "1")) {
			t.Errorf("weights row %d sums to %s, want 1", i, row.Sum())
		}
		if !row["VOO"].Equal(d(t, "0.4")) {
			t.Errorf("weights row %d benchmark = %s, want pinned 0.4", i, row["VOO"])
		}
	}

	metrics := engine.CalculateMetrics(got.Values)
	if metrics.MaxDrawdown.IsPositive() {
		t.Errorf("MaxDrawdown = %s, must be <= 0", metrics.MaxDrawdown)
	}
	// Monotonic rising prices: the strategy cannot lose money here.
	if metrics.TotalReturn.IsNegative() {
		t.Errorf("TotalReturn = %s, want >= 0 on rising prices", metrics.TotalReturn)
	}
}
