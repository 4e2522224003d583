package types

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPriceTableAddRowRejectsOutOfOrderDates(t *testing.T) {
	table := NewPriceTable([]string{"VOO"})
	if err := table.AddRow(day(2024, time.January, 3), map[string]decimal.Decimal{"VOO": decimal.NewFromInt(100)}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		date time.Time
	}{
		{"same date", day(2024, time.January, 3)},
		{"earlier date", day(2024, time.January, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := table.AddRow(tt.date, map[string]decimal.Decimal{"VOO": decimal.NewFromInt(100)})
			if !errors.Is(err, ErrDateOrder) {
				t.Errorf("error = %v, want ErrDateOrder", err)
			}
		})
	}
}

func TestPriceTableMissingSymbolGetsZeroClose(t *testing.T) {
	table := NewPriceTable([]string{"QQQM", "VOO"})
	err := table.AddRow(day(2024, time.January, 2), map[string]decimal.Decimal{
		"VOO": decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatal(err)
	}

	if table.HasClose("QQQM", 0) {
		t.Error("QQQM should have no usable close")
	}
	if !table.Close("QQQM", 0).IsZero() {
		t.Errorf("QQQM close = %s, want 0", table.Close("QQQM", 0))
	}
	if !table.HasClose("VOO", 0) {
		t.Error("VOO close should be usable")
	}
}

func TestPriceTableIndexOnOrBefore(t *testing.T) {
	table := NewPriceTable([]string{"VOO"})
	dates := []time.Time{
		day(2024, time.January, 2),
		day(2024, time.January, 3),
		day(2024, time.January, 5),
	}
	for _, date := range dates {
		if err := table.AddRow(date, map[string]decimal.Decimal{"VOO": decimal.NewFromInt(100)}); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		date    time.Time
		wantIdx int
		wantOK  bool
	}{
		{"exact match", day(2024, time.January, 3), 1, true},
		{"gap resolves backward", day(2024, time.January, 4), 1, true},
		{"after last row", day(2024, time.February, 1), 2, true},
		{"before first row", day(2023, time.December, 29), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := table.IndexOnOrBefore(tt.date)
			if idx != tt.wantIdx || ok != tt.wantOK {
				t.Errorf("IndexOnOrBefore(%v) = (%d, %t), want (%d, %t)", tt.date, idx, ok, tt.wantIdx, tt.wantOK)
			}
		})
	}
}

func TestFrequencyBucket(t *testing.T) {
	tests := []struct {
		name     string
		freq     Frequency
		a, b     time.Time
		samePart bool
	}{
		{"same quarter", Quarterly, day(2024, time.January, 15), day(2024, time.March, 29), true},
		{"quarter boundary", Quarterly, day(2024, time.March, 29), day(2024, time.April, 1), false},
		{"same half", Semiannual, day(2024, time.January, 2), day(2024, time.June, 28), true},
		{"half boundary", Semiannual, day(2024, time.June, 28), day(2024, time.July, 1), false},
		{"year boundary", Annual, day(2024, time.December, 31), day(2025, time.January, 2), false},
		{"month boundary", Monthly, day(2024, time.January, 31), day(2024, time.February, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.freq.Bucket(tt.a) == tt.freq.Bucket(tt.b)
			if got != tt.samePart {
				t.Errorf("Bucket(%v) == Bucket(%v) is %t, want %t", tt.a, tt.b, got, tt.samePart)
			}
		})
	}
}

func TestWeightsNormalized(t *testing.T) {
	w := Weights{
		"QQQM": decimal.NewFromInt(1),
		"VOO":  decimal.NewFromInt(3),
	}
	got := w.Normalized()
	if !got["VOO"].Equal(decimal.RequireFromString("0.75")) {
		t.Errorf("VOO = %s, want 0.75", got["VOO"])
	}
	if !got.Sum().Equal(decimal.NewFromInt(1)) {
		t.Errorf("sum = %s, want 1", got.Sum())
	}

	// Degenerate zero-sum weights come back unchanged.
	zero := Weights{"VOO": decimal.Zero}
	if !zero.Normalized()["VOO"].IsZero() {
		t.Error("zero-sum weights must normalize to themselves")
	}
}
