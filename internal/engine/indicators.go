package engine

import (
	"rotation/types"

	"github.com/shopspring/decimal"
)

const (
	// Trailing window of the simple moving average, in trading days.
	MAWindow = 50
	// Lookback of the momentum return, roughly 3 calendar months.
	ReturnWindow = 63
)

// IndicatorSet holds the derived trend and momentum columns of a price
// table. Both are computed once up front and sliced by row index afterwards;
// a rebalance at row i only ever reads values at row i, so no look-ahead is
// introduced. Rows inside the warm-up window, or whose input window contains
// a missing close, are undefined and reported through the ok return of the
// accessors.
type IndicatorSet struct {
	movingAvg    map[string][]decimal.Decimal
	maKnown      map[string][]bool
	periodReturn map[string][]decimal.Decimal
	returnKnown  map[string][]bool
}

// ComputeIndicators derives the 50-day SMA and the 63-day percentage return
// for every column of prices. Pure function of the input table.
func ComputeIndicators(prices *types.PriceTable) *IndicatorSet {
	n := prices.Len()
	set := &IndicatorSet{
		movingAvg:    make(map[string][]decimal.Decimal),
		maKnown:      make(map[string][]bool),
		periodReturn: make(map[string][]decimal.Decimal),
		returnKnown:  make(map[string][]bool),
	}
	window := decimal.NewFromInt(MAWindow)

	for _, symbol := range prices.Symbols() {
		ma := make([]decimal.Decimal, n)
		maOK := make([]bool, n)
		ret := make([]decimal.Decimal, n)
		known := make([]bool, n)

		rolling := decimal.Zero
		valid := 0
		for i := 0; i < n; i++ {
			cur := prices.Close(symbol, i)
			rolling = rolling.Add(cur)
			if cur.IsPositive() {
				valid++
			}
			if i >= MAWindow {
				old := prices.Close(symbol, i-MAWindow)
				rolling = rolling.Sub(old)
				if old.IsPositive() {
					valid--
				}
			}
			// A missing close anywhere in the window leaves the average
			// undefined, it does not drag it toward zero.
			if i >= MAWindow-1 && valid == MAWindow {
				ma[i] = rolling.Div(window)
				maOK[i] = true
			}

			if i >= ReturnWindow {
				prev := prices.Close(symbol, i-ReturnWindow)
				if prev.IsPositive() && cur.IsPositive() {
					ret[i] = cur.Div(prev).Sub(decimal.NewFromInt(1))
					known[i] = true
				}
			}
		}
		set.movingAvg[symbol] = ma
		set.maKnown[symbol] = maOK
		set.periodReturn[symbol] = ret
		set.returnKnown[symbol] = known
	}
	return set
}

// MovingAverage returns the 50-day SMA of symbol at row i. ok is false
// inside the warm-up window, for an unknown symbol, or when any close in the
// window was missing.
func (s *IndicatorSet) MovingAverage(symbol string, i int) (decimal.Decimal, bool) {
	col, exists := s.movingAvg[symbol]
	if !exists || i < MAWindow-1 || i >= len(col) || !s.maKnown[symbol][i] {
		return decimal.Zero, false
	}
	return col[i], true
}

// PeriodReturn returns the 63-day return of symbol at row i. ok is false
// inside the warm-up window, for an unknown symbol, or when the lookback
// price was missing.
func (s *IndicatorSet) PeriodReturn(symbol string, i int) (decimal.Decimal, bool) {
	col, exists := s.periodReturn[symbol]
	if !exists || i < ReturnWindow || i >= len(col) || !s.returnKnown[symbol][i] {
		return decimal.Zero, false
	}
	return col[i], true
}
