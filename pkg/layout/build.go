package layout

import (
	"math"

	"github.com/seatlab/seatplan/pkg/geom"
	"github.com/seatlab/seatplan/pkg/venue"
)

// Build generates the full seat layout for a venue. Sections stack top to
// bottom in configuration order; rows stack within each section. All output
// coordinates are in pixels at the venue's scale.
//
// The stage consumes room space at one boundary: a north stage pushes the
// first section down by its length, an east or west stage narrows every row
// by its width from the respective wall, and a south stage sits behind the
// last row and leaves the seating origin alone.
//
// Rows or sections too narrow for a single seat contribute no seats but
// still occupy their vertical slot, so later sections keep their positions.
func Build(v *venue.Venue) []*Seat {
	scale := v.Scale
	px := func(m float64) float64 { return geom.Px(m, scale) }

	left := 0.0
	right := px(v.Room.Width)
	y := 0.0

	if v.Stage.Exists {
		switch v.Stage.Direction {
		case venue.DirectionNorth:
			y += px(v.Stage.Length)
		case venue.DirectionWest:
			left += px(v.Stage.Width)
		case venue.DirectionEast:
			right -= px(v.Stage.Width)
		}
	}

	var seats []*Seat
	for i := range v.Sections {
		sec := &v.Sections[i]
		y += px(sec.PreviousSectionDistance)

		rowLeft := left + px(sec.LeftWallDistance)
		rowRight := right - px(sec.RightWallDistance)
		rowWidth := rowRight - rowLeft

		seatW := px(sec.SeatWidth)
		seatH := px(sec.SeatLength)
		spacing := px(sec.SeatLeftRightGap)
		aisle := px(sec.AisleWidth)
		rowGap := px(sec.SeatFrontBackGap)

		for r := 0; r < sec.Rows; r++ {
			if rowWidth <= 0 {
				continue
			}
			plan := PackRow(rowWidth, seatW, spacing, aisle, sec.MaxContinuousSeats)
			if plan.Seats == 0 {
				continue
			}
			rowY := y + float64(r)*(seatH+rowGap)
			seats = append(seats, buildRow(plan, rowSpec{
				sectionIndex:  i + 1,
				sectionName:   sec.Name,
				row:           r + 1,
				left:          rowLeft,
				width:         rowWidth,
				y:             rowY,
				seatWidth:     seatW,
				seatHeight:    seatH,
				spacing:       spacing,
				maxContinuous: sec.MaxContinuousSeats,
			})...)
		}

		// Skipped rows still occupy their slot in the vertical stacking.
		y += float64(sec.Rows)*seatH + float64(sec.Rows-1)*rowGap
	}
	return seats
}

// rowSpec carries the per-row constants buildRow needs.
type rowSpec struct {
	sectionIndex  int
	sectionName   string
	row           int
	left          float64
	width         float64
	y             float64
	seatWidth     float64
	seatHeight    float64
	spacing       float64
	maxContinuous int
}

// buildRow places one packed row into final seat positions. The row is
// assembled in a local buffer and appended wholesale, so no in-place
// reindexing of the output collection ever happens.
//
// Residual width is resolved by topology:
//   - multiple blocks: the packer already spread the residual across aisles
//   - one block with more than one seat: the residual is spread evenly
//     across the inter-seat spacing, centering the seats over the full width
//   - one block with exactly one seat: left-aligned, no adjustment
func buildRow(plan RowPlan, spec rowSpec) []*Seat {
	n := plan.Seats
	spacing := spec.spacing

	if plan.Blocks() == 1 && n > 1 {
		used := float64(n)*spec.seatWidth + float64(n-1)*spacing
		if residual := spec.width - used; math.Abs(residual) >= geom.Tolerance {
			spacing += residual / float64(n-1)
		}
	}

	row := make([]*Seat, 0, n)
	x := spec.left
	col := 0
	remaining := n
	for b := 0; remaining > 0; b++ {
		size := spec.maxContinuous
		if size > remaining {
			size = remaining
		}
		for k := 0; k < size; k++ {
			col++
			row = append(row, &Seat{
				ID:           SeatID(spec.sectionIndex, spec.row, col),
				X:            x,
				Y:            spec.y,
				Width:        spec.seatWidth,
				Height:       spec.seatHeight,
				Row:          spec.row,
				Col:          col,
				Section:      spec.sectionName,
				SectionIndex: spec.sectionIndex,
			})
			x += spec.seatWidth
			if col < n {
				x += spacing
			}
		}
		remaining -= size
		if remaining > 0 && b < len(plan.AisleWidths) {
			x += plan.AisleWidths[b]
		}
	}
	return row
}
