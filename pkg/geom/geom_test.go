package geom

import (
	"math"
	"testing"
)

func TestPx(t *testing.T) {
	tests := []struct {
		meters, scale, want float64
	}{
		{1, 20, 20},
		{18, 20, 360},
		{0.5, 20, 10},
		{2, 0, 40},  // zero scale falls back to default
		{2, -5, 40}, // negative scale falls back to default
	}

	for _, tt := range tests {
		if got := Px(tt.meters, tt.scale); got != tt.want {
			t.Errorf("Px(%g, %g) = %g, want %g", tt.meters, tt.scale, got, tt.want)
		}
	}
}

func TestApproxEqual(t *testing.T) {
	if !ApproxEqual(10.0, 10.0+Tolerance/2) {
		t.Error("values within tolerance should compare equal")
	}
	if ApproxEqual(10.0, 10.0+Tolerance*2) {
		t.Error("values beyond tolerance should not compare equal")
	}
}

func TestRowWidth(t *testing.T) {
	tests := []struct {
		name        string
		n           int
		seatWidth   float64
		seatSpacing float64
		numAisles   int
		aisleWidth  float64
		want        float64
	}{
		{"single seat", 1, 10, 2, 0, 0, 10},
		{"two seats no aisle", 2, 10, 2, 0, 0, 22},
		{"ten seats one aisle", 10, 10, 0, 1, 24, 124},
		{"zero seats", 0, 10, 2, 0, 0, 0},
	}

	for _, tt := range tests {
		got := RowWidth(tt.n, tt.seatWidth, tt.seatSpacing, tt.numAisles, tt.aisleWidth)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: RowWidth = %g, want %g", tt.name, got, tt.want)
		}
	}
}

func TestBlocksFor(t *testing.T) {
	tests := []struct {
		n, maxContinuous, want int
	}{
		{10, 10, 1},
		{11, 10, 2},
		{20, 10, 2},
		{21, 10, 3},
		{1, 1, 1},
		{0, 10, 0},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := BlocksFor(tt.n, tt.maxContinuous); got != tt.want {
			t.Errorf("BlocksFor(%d, %d) = %d, want %d", tt.n, tt.maxContinuous, got, tt.want)
		}
	}
}
