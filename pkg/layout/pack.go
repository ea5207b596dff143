package layout

import (
	"github.com/seatlab/seatplan/pkg/geom"
)

// probeBudget caps the number of candidate seat counts the downward scan
// will try before falling back to a single seat.
const probeBudget = 50

// fastScanThreshold is the starting candidate count above which the scan
// uses a coarser step to bound cost on very wide rows.
const fastScanThreshold = 100

// RowPlan is the result of packing one row: how many seats fit and the final
// width of each aisle separating consecutive blocks. Leftover row width is
// already redistributed evenly across the aisles; a plan with no aisles
// leaves the leftover to the layout builder's spacing adjustment.
type RowPlan struct {
	Seats       int
	AisleWidths []float64
}

// Blocks returns the number of contiguous seat blocks in the plan.
func (p RowPlan) Blocks() int {
	return len(p.AisleWidths) + 1
}

// PackRow computes how many seats fit into a row of sectionWidth, grouped
// into blocks of at most maxContinuous seats with aisles of at least
// aisleWidth between blocks. All widths are in the same unit (pixels).
//
// The scan starts at the count that would fit with zero aisles and walks
// downward, accepting the first candidate whose required width (seats,
// inter-seat spacing, and the aisles its block split demands) fits the row.
// This prefers maximizing occupancy over minimizing wasted space. Whatever
// width remains is spread evenly across the aisles.
//
// Rows wider than fastScanThreshold seats scan with a proportionally larger
// step, and the scan never probes more than probeBudget candidates. If the
// budget runs out without a fit, the row falls back to a single seat when
// one fits, and to zero seats otherwise.
//
// PackRow is a pure function: identical inputs always produce identical
// plans.
func PackRow(sectionWidth, seatWidth, seatSpacing, aisleWidth float64, maxContinuous int) RowPlan {
	if sectionWidth <= 0 || seatWidth <= 0 || maxContinuous <= 0 {
		return RowPlan{}
	}

	unit := seatWidth + seatSpacing
	maxNoAisle := int((sectionWidth + seatSpacing) / unit)
	if maxNoAisle < 1 {
		// Not even a single seat fits.
		return RowPlan{}
	}

	step := 1
	if maxNoAisle > fastScanThreshold {
		step = maxNoAisle / probeBudget
		if step < 1 {
			step = 1
		}
	}

	probes := 0
	for n := maxNoAisle; n >= 1 && probes < probeBudget; n -= step {
		probes++
		numAisles := geom.BlocksFor(n, maxContinuous) - 1
		required := geom.RowWidth(n, seatWidth, seatSpacing, numAisles, aisleWidth)
		if required <= sectionWidth+geom.Tolerance {
			return acceptPlan(n, numAisles, aisleWidth, sectionWidth-required)
		}
	}

	// Probe budget exhausted without a fit: one seat still fits by the
	// maxNoAisle check above.
	return RowPlan{Seats: 1}
}

// acceptPlan finalizes an accepted candidate, widening each aisle by an even
// share of the leftover width. Plans without aisles carry no widths; the
// builder resolves their residual via spacing adjustment.
func acceptPlan(seats, numAisles int, aisleWidth, leftover float64) RowPlan {
	plan := RowPlan{Seats: seats}
	if numAisles <= 0 {
		return plan
	}
	if leftover < 0 {
		leftover = 0
	}
	w := aisleWidth + leftover/float64(numAisles)
	plan.AisleWidths = make([]float64, numAisles)
	for i := range plan.AisleWidths {
		plan.AisleWidths[i] = w
	}
	return plan
}
