package assign

import (
	"github.com/seatlab/seatplan/pkg/layout"
	"github.com/seatlab/seatplan/pkg/roster"
)

// SwapSeats exchanges the full guest-linkage field set between two seats and
// updates both linked guests' SeatID. A seat with no guest swaps its empty
// state too; the exchange is always symmetric so the seat↔guest invariant
// cannot be corrupted by a partial swap.
//
// Unknown or identical seat ids make the call a no-op. Returns true when a
// swap happened.
func SwapSeats(seats []*layout.Seat, guests []*roster.Guest, idA, idB string) bool {
	if idA == idB {
		return false
	}
	a := layout.Find(seats, idA)
	b := layout.Find(seats, idB)
	if a == nil || b == nil {
		return false
	}

	a.Guest, b.Guest = b.Guest, a.Guest
	a.Occupied, b.Occupied = b.Occupied, a.Occupied

	relink(guests, a)
	relink(guests, b)
	return true
}

// relink points the guest sitting on s (if any) back at s.
func relink(guests []*roster.Guest, s *layout.Seat) {
	if s.Guest == nil {
		return
	}
	if g := roster.Find(guests, s.Guest.GuestID); g != nil {
		g.SeatID = s.ID
	}
}

// SelectSeat marks the seat with the given id as the single selected seat,
// clearing any previous selection, and returns it. Returns nil for unknown
// ids without touching the current selection.
func SelectSeat(seats []*layout.Seat, id string) *layout.Seat {
	target := layout.Find(seats, id)
	if target == nil {
		return nil
	}
	for _, s := range seats {
		s.Selected = false
	}
	target.Selected = true
	return target
}

// ClearAssignments removes every guest linkage and occupancy flag from the
// seats and every SeatID from the guests.
func ClearAssignments(seats []*layout.Seat, guests []*roster.Guest) {
	for _, s := range seats {
		s.Guest = nil
		s.Occupied = false
	}
	for _, g := range guests {
		g.SeatID = ""
	}
}

// RandomizeOccupancy seeds demo occupancy on seats without guest linkage
// using the injected random source (rng() > 0.7 marks a seat occupied).
// Seats holding a guest are never touched.
func RandomizeOccupancy(seats []*layout.Seat, rng layout.RandSource) {
	if rng == nil {
		return
	}
	for _, s := range seats {
		if s.Guest == nil {
			s.Occupied = rng() > 0.7
		}
	}
}

// ResetOccupancy clears occupancy on all seats without guest linkage.
func ResetOccupancy(seats []*layout.Seat) {
	for _, s := range seats {
		if s.Guest == nil {
			s.Occupied = false
		}
	}
}
