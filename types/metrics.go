package types

import "github.com/shopspring/decimal"

// Metrics summarizes a portfolio value series. Streak lengths are counted in
// calendar months. All fields are zero for an empty series.
type Metrics struct {
	TotalReturn   decimal.Decimal `json:"totalReturn"`
	CAGR          decimal.Decimal `json:"cagr"`
	MaxDrawdown   decimal.Decimal `json:"maxDrawdown"`
	WinningStreak int             `json:"winningStreak"`
	LosingStreak  int             `json:"losingStreak"`
}
