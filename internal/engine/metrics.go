package engine

import (
	"math"

	"rotation/types"

	"github.com/shopspring/decimal"
)

// CalculateMetrics reduces a value series to its summary statistics. Pure
// function: an empty series gives all-zero metrics, and a series whose first
// value is not positive is treated the same way.
func CalculateMetrics(series types.ValueSeries) types.Metrics {
	var m types.Metrics
	if series.Len() == 0 {
		return m
	}

	first := series.Values[0]
	last := series.Values[series.Len()-1]
	if !first.IsPositive() {
		return m
	}

	m.TotalReturn = last.Div(first).Sub(one)
	m.CAGR = calcCAGR(m.TotalReturn, series)
	m.MaxDrawdown = calcMaxDrawdown(series)
	m.WinningStreak, m.LosingStreak = calcMonthlyStreaks(series)
	return m
}

// calcCAGR annualizes the total return over the literal calendar-day span of
// the series: (1+r)^(365/days) - 1, zero when the span is zero days. The
// exponentiation goes through float64, as a fractional decimal power is not
// representable exactly anyway.
func calcCAGR(totalReturn decimal.Decimal, series types.ValueSeries) decimal.Decimal {
	days := series.Dates[series.Len()-1].Sub(series.Dates[0]).Hours() / 24.0
	if days <= 0 {
		return decimal.Zero
	}
	growth := 1.0 + totalReturn.InexactFloat64()
	if growth <= 0 {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromFloat(math.Pow(growth, 365.0/days) - 1.0)
}

// calcMaxDrawdown returns the most negative (value - peak) / peak over the
// series, where peak is the running maximum. Always <= 0.
func calcMaxDrawdown(series types.ValueSeries) decimal.Decimal {
	peak := series.Values[0]
	maxDD := decimal.Zero

	for _, v := range series.Values {
		if v.GreaterThan(peak) {
			peak = v
		}
		if !peak.IsPositive() {
			continue
		}
		dd := v.Sub(peak).Div(peak)
		if dd.LessThan(maxDD) {
			maxDD = dd
		}
	}
	return maxDD
}

// calcMonthlyStreaks resamples the series to month-end values and scans the
// month-over-month changes chronologically, keeping the longest run of
// positive months and the longest run of negative months. A month with
// exactly zero change resets both counters.
func calcMonthlyStreaks(series types.ValueSeries) (int, int) {
	monthEnds := periodEndIndexes(series.Dates, types.Monthly)

	var values []decimal.Decimal
	for i := 0; i < series.Len(); i++ {
		if monthEnds[i] {
			values = append(values, series.Values[i])
		}
	}
	if len(values) < 2 {
		return 0, 0
	}

	maxWin, maxLose := 0, 0
	curWin, curLose := 0, 0
	for i := 1; i < len(values); i++ {
		change := values[i].Cmp(values[i-1])
		switch {
		case change > 0:
			curWin++
			curLose = 0
		case change < 0:
			curLose++
			curWin = 0
		default:
			curWin, curLose = 0, 0
		}
		if curWin > maxWin {
			maxWin = curWin
		}
		if curLose > maxLose {
			maxLose = curLose
		}
	}
	return maxWin, maxLose
}
