package types

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Weights maps a symbol to its portfolio fraction. Base weights supplied by
// callers need not sum to one; target weights produced by the engine always
// do.
type Weights map[string]decimal.Decimal

func (w Weights) Copy() Weights {
	out := make(Weights, len(w))
	for s, v := range w {
		out[s] = v
	}
	return out
}

// Symbols returns the symbols in lexicographic order so that iteration and
// floating-point rescaling are reproducible.
func (w Weights) Symbols() []string {
	out := make([]string, 0, len(w))
	for s := range w {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (w Weights) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range w {
		sum = sum.Add(v)
	}
	return sum
}

// Normalized returns a copy scaled to sum to one. A zero-sum set is returned
// unchanged.
func (w Weights) Normalized() Weights {
	sum := w.Sum()
	if !sum.IsPositive() {
		return w.Copy()
	}
	out := make(Weights, len(w))
	for _, s := range w.Symbols() {
		out[s] = w[s].Div(sum)
	}
	return out
}

// WeightsHistory records the target weights applied at each rebalancing
// event. It is sparse: one row per rebalance, not per trading day.
type WeightsHistory struct {
	Dates []time.Time
	Rows  []Weights
}

func (h *WeightsHistory) Append(date time.Time, w Weights) {
	h.Dates = append(h.Dates, date)
	h.Rows = append(h.Rows, w.Copy())
}

func (h *WeightsHistory) Len() int {
	return len(h.Dates)
}

// ValueSeries is a date-indexed series of total portfolio market value, one
// entry per trading day from the first fully-allocated day onward.
type ValueSeries struct {
	Dates  []time.Time
	Values []decimal.Decimal
}

func (s *ValueSeries) Append(date time.Time, v decimal.Decimal) {
	s.Dates = append(s.Dates, date)
	s.Values = append(s.Values, v)
}

func (s *ValueSeries) Len() int {
	return len(s.Dates)
}
