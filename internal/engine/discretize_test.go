package engine

import (
	"testing"

	"rotation/types"
)

func TestSnapToGrid(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.20", "0.2"},
		{"0.18461538", "0.2"},
		{"0.12", "0.1"},
		{"0.125", "0.15"}, // halfway rounds up
		{"0.025", "0.05"}, // halfway rounds up
		{"0.30000000004", "0.3"},
		{"0", "0"},
		{"1", "1"},
	}
	for _, tt := range tests {
		got := snapToGrid(d(t, tt.in))
		if !got.Equal(d(t, tt.want)) {
			t.Errorf("snapToGrid(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDiscretizeSumsToOne(t *testing.T) {
	tests := []struct {
		name    string
		weights types.Weights
		want    map[string]string
	}{
		{
			name: "already on grid",
			weights: types.Weights{
				"BRK-B": d(t, "0.30"),
				"QQQM":  d(t, "0.20"),
				"VOO":   d(t, "0.50"),
			},
			want: map[string]string{"BRK-B": "0.3", "QQQM": "0.2", "VOO": "0.5"},
		},
		{
			name: "drift repaired on largest weight",
			weights: types.Weights{
				"BRK-B": d(t, "0.33"),
				"QQQM":  d(t, "0.33"),
				"VOO":   d(t, "0.34"),
			},
			// All three snap to 0.35, sum 1.05; VOO and QQQM tie with BRK-B,
			// the alphabetically-last largest symbol absorbs the -0.05.
			want: map[string]string{"BRK-B": "0.35", "QQQM": "0.35", "VOO": "0.3"},
		},
		{
			name: "positive drift",
			weights: types.Weights{
				"A": d(t, "0.52"),
				"B": d(t, "0.42"),
			},
			// 0.50 + 0.40 leaves +0.10 for the largest symbol, A.
			want: map[string]string{"A": "0.6", "B": "0.4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discretize(tt.weights, stubPolicy{})
			if !got.Sum().Equal(one) {
				t.Errorf("sum = %s, want 1", got.Sum())
			}
			for symbol, want := range tt.want {
				wantWeight(t, got, symbol, want)
			}
		})
	}
}

func TestDiscretizeShieldsPinnedBenchmark(t *testing.T) {
	weights := types.Weights{
		"QQQM": d(t, "0.33"),
		"SPMO": d(t, "0.33"),
		"VOO":  d(t, "0.40"),
	}
	// Others snap to 0.35 each leaving -0.10; the residual must land on a
	// non-benchmark symbol even though VOO has the largest weight, and the
	// tie between the others breaks to the alphabetically-last one.
	got := Discretize(weights, pinnedPolicy{benchmark: "VOO"})

	wantWeight(t, got, "VOO", "0.4")
	wantWeight(t, got, "SPMO", "0.25")
	wantWeight(t, got, "QQQM", "0.35")
	if !got.Sum().Equal(one) {
		t.Errorf("sum = %s, want 1", got.Sum())
	}
}

func TestDiscretizeBenchmarkOnly(t *testing.T) {
	weights := types.Weights{"VOO": d(t, "0.97")}
	got := Discretize(weights, pinnedPolicy{benchmark: "VOO"})
	// With no other symbol the benchmark itself takes the correction.
	wantWeight(t, got, "VOO", "1")
}
