// Package assign places an imported guest roster onto a generated seat
// layout and exposes the interaction operations (swap, select, clear,
// occupancy seeding) used by gesture handling.
//
// The seat collection is the single source of truth for who sits where; the
// guest collection is a secondary index (guest → seat id). Every operation
// in this package preserves that bidirectional consistency: a seat's guest
// link and the linked guest's SeatID always agree.
package assign

import (
	"github.com/seatlab/seatplan/pkg/layout"
	"github.com/seatlab/seatplan/pkg/roster"
)

// Result reports the outcome of an assignment run.
type Result struct {
	// Placed is the number of guests linked to seats.
	Placed int `json:"placed"`

	// Unplaced lists guests that did not fit anywhere, in roster order.
	Unplaced []*roster.Guest `json:"unplaced,omitempty"`
}

// Assign fills seats with guests, section by section, mutating both
// collections in place.
//
// All existing guest linkage is cleared first. Guests form a single pending
// pool processed in roster order. For each section in sectionOrder, the pool
// guests targeting that section (in order) become candidates; if none match
// but the pool is non-empty, the single next pending guest is taken instead,
// so mislabeled rosters drain into whichever section runs out of matches
// first rather than wasting seats. Up to the section's seat count of
// candidates are placed into its seats in row-major order.
//
// A placed guest keeps the color of its original target section, not the
// section it physically landed in. Guests still pending after the last
// section are reported as unplaced.
func Assign(guests []*roster.Guest, seats []*layout.Seat, sectionOrder []string) Result {
	clearLinks(seats, guests)

	colors := SectionColors(guests)
	bySection := layout.BySection(seats)

	pending := make([]*roster.Guest, len(guests))
	copy(pending, guests)

	placed := 0
	for _, name := range sectionOrder {
		secSeats := bySection[name]
		if len(secSeats) == 0 || len(pending) == 0 {
			continue
		}

		var candidates []*roster.Guest
		for _, g := range pending {
			if g.AssignedSection == name {
				candidates = append(candidates, g)
			}
		}
		if len(candidates) == 0 {
			// Overflow policy: force-drain the next pending guest here.
			candidates = pending[:1]
		}

		n := len(secSeats)
		if len(candidates) < n {
			n = len(candidates)
		}
		for i := 0; i < n; i++ {
			link(secSeats[i], candidates[i], colors)
			pending = removeGuest(pending, candidates[i])
			placed++
		}
	}

	return Result{Placed: placed, Unplaced: pending}
}

// link attaches a guest to a seat bidirectionally.
func link(s *layout.Seat, g *roster.Guest, colors map[string]RGB) {
	s.Guest = &layout.GuestLink{
		GuestID: g.ID,
		Number:  g.Number,
		Name:    g.Name,
		Unit:    g.Unit,
		Section: g.AssignedSection,
		Color:   colors[g.AssignedSection].Hex(),
	}
	s.Occupied = true
	g.SeatID = s.ID
}

// clearLinks removes all guest linkage from seats and guests.
func clearLinks(seats []*layout.Seat, guests []*roster.Guest) {
	for _, s := range seats {
		if s.Guest != nil {
			s.Guest = nil
			s.Occupied = false
		}
	}
	for _, g := range guests {
		g.SeatID = ""
	}
}

// removeGuest drops g from pool preserving order.
func removeGuest(pool []*roster.Guest, g *roster.Guest) []*roster.Guest {
	out := pool[:0]
	for _, p := range pool {
		if p != g {
			out = append(out, p)
		}
	}
	return out
}
