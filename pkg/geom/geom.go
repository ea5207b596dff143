// Package geom provides the scalar geometry helpers shared by the layout
// engine: metric-to-pixel conversion and row-width arithmetic.
//
// All venue configuration is expressed in meters. The layout engine works in
// user units (pixels) so downstream renderers can consume coordinates
// directly; DefaultScale fixes the conversion at 20 px per meter before any
// viewport scaling is applied.
package geom

import "math"

// DefaultScale is the number of pixels per meter used when converting venue
// configuration into layout coordinates.
const DefaultScale = 20.0

// Tolerance is the float comparison tolerance in user units. Row widths that
// match the section width within Tolerance are treated as exact fills.
const Tolerance = 0.01

// Px converts a metric length to pixels at the given scale.
// A scale of zero or below falls back to DefaultScale.
func Px(meters, scale float64) float64 {
	if scale <= 0 {
		scale = DefaultScale
	}
	return meters * scale
}

// ApproxEqual reports whether a and b are equal within Tolerance.
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// RowWidth returns the width consumed by n seats of seatWidth separated by
// seatSpacing, plus numAisles aisles of aisleWidth. The trailing seat has no
// spacing after it, so n seats contribute n*(seatWidth+seatSpacing)-seatSpacing.
func RowWidth(n int, seatWidth, seatSpacing float64, numAisles int, aisleWidth float64) float64 {
	if n <= 0 {
		return 0
	}
	unit := seatWidth + seatSpacing
	return float64(n)*unit - seatSpacing + float64(numAisles)*aisleWidth
}

// BlocksFor returns the number of contiguous blocks needed to hold n seats
// with at most maxContinuous seats per block.
func BlocksFor(n, maxContinuous int) int {
	if n <= 0 || maxContinuous <= 0 {
		return 0
	}
	return (n + maxContinuous - 1) / maxContinuous
}
