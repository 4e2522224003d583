package types

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var ErrDateOrder = errors.New("price rows must be added in strictly increasing date order")

// PriceTable is a date-ordered table of daily adjusted closes, one column per
// symbol. A zero value in a column means the symbol had no price that day.
// Dates are strictly increasing; the table is append-only and never mutated
// by the engine.
type PriceTable struct {
	dates  []time.Time
	closes map[string][]decimal.Decimal
}

func NewPriceTable(symbols []string) *PriceTable {
	closes := make(map[string][]decimal.Decimal, len(symbols))
	for _, s := range symbols {
		closes[s] = nil
	}
	return &PriceTable{closes: closes}
}

// AddRow appends one trading day. Symbols missing from row get a zero close.
func (p *PriceTable) AddRow(date time.Time, row map[string]decimal.Decimal) error {
	if len(p.dates) > 0 && !date.After(p.dates[len(p.dates)-1]) {
		return ErrDateOrder
	}
	p.dates = append(p.dates, date)
	for s := range p.closes {
		p.closes[s] = append(p.closes[s], row[s])
	}
	return nil
}

func (p *PriceTable) Len() int {
	return len(p.dates)
}

func (p *PriceTable) Date(i int) time.Time {
	return p.dates[i]
}

func (p *PriceTable) Dates() []time.Time {
	return p.dates
}

// Symbols returns the tracked symbols in lexicographic order.
func (p *PriceTable) Symbols() []string {
	out := make([]string, 0, len(p.closes))
	for s := range p.closes {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (p *PriceTable) Close(symbol string, i int) decimal.Decimal {
	col, ok := p.closes[symbol]
	if !ok || i < 0 || i >= len(col) {
		return decimal.Zero
	}
	return col[i]
}

// HasClose reports whether symbol has a usable (positive) price at row i.
func (p *PriceTable) HasClose(symbol string, i int) bool {
	return p.Close(symbol, i).IsPositive()
}

// IndexOnOrBefore returns the index of date, or of the most recent trading
// day before it. The second return is false when every row is after date.
func (p *PriceTable) IndexOnOrBefore(date time.Time) (int, bool) {
	n := sort.Search(len(p.dates), func(i int) bool {
		return p.dates[i].After(date)
	})
	if n == 0 {
		return 0, false
	}
	return n - 1, true
}
