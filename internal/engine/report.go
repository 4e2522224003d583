package engine

import (
	"fmt"
	"time"

	"rotation/types"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Report struct {
	StartDate   time.Time
	EndDate     time.Time
	TradingDays int
	Rebalances  int
	FinalValue  string
	Metrics     types.Metrics
}

func BuildReport(result BacktestResult, metrics types.Metrics) *Report {
	report := &Report{
		TradingDays: result.Values.Len(),
		Rebalances:  result.Weights.Len(),
		Metrics:     metrics,
	}
	if n := result.Values.Len(); n > 0 {
		report.StartDate = result.Values.Dates[0]
		report.EndDate = result.Values.Dates[n-1]
		report.FinalValue = result.Values.Values[n-1].StringFixed(2)
	}
	return report
}

func PrintReport(report *Report) {
	fmt.Println("===== Rotation Backtest Report =====")
	fmt.Printf("Start Date:       %s\n", report.StartDate.Format("2006-01-02"))
	fmt.Printf("End Date:         %s\n", report.EndDate.Format("2006-01-02"))
	fmt.Printf("Trading Days:     %d\n", report.TradingDays)
	fmt.Printf("Rebalances:       %d\n", report.Rebalances)
	fmt.Printf("Final Value:      %s\n", report.FinalValue)

	fmt.Println("\n-- Performance --")
	fmt.Printf("Total Return:     %s%%\n", report.Metrics.TotalReturn.Mul(hundred).StringFixed(2))
	fmt.Printf("CAGR:             %s%%\n", report.Metrics.CAGR.Mul(hundred).StringFixed(2))
	fmt.Printf("Max Drawdown:     %s%%\n", report.Metrics.MaxDrawdown.Mul(hundred).StringFixed(2))
	fmt.Printf("Winning Streak:   %d mo\n", report.Metrics.WinningStreak)
	fmt.Printf("Losing Streak:    %d mo\n", report.Metrics.LosingStreak)
	fmt.Println("====================================")
}
