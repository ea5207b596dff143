package assign

import (
	"testing"

	"github.com/seatlab/seatplan/pkg/layout"
	"github.com/seatlab/seatplan/pkg/roster"
)

// grid builds a minimal seat collection: per section name, the given number
// of seats in row-major order.
func grid(sections map[string]int, order []string) []*layout.Seat {
	var seats []*layout.Seat
	for si, name := range order {
		for c := 0; c < sections[name]; c++ {
			seats = append(seats, &layout.Seat{
				ID:           layout.SeatID(si+1, 1, c+1),
				Row:          1,
				Col:          c + 1,
				Section:      name,
				SectionIndex: si + 1,
			})
		}
	}
	return seats
}

func guestList(specs ...[2]string) []*roster.Guest {
	guests := make([]*roster.Guest, len(specs))
	for i, s := range specs {
		guests[i] = &roster.Guest{Number: s[0], AssignedSection: s[1]}
	}
	return roster.New(guests).Guests
}

func TestAssignFillsInRosterOrder(t *testing.T) {
	order := []string{"A", "B"}
	seats := grid(map[string]int{"A": 3, "B": 2}, order)
	guests := guestList([2]string{"1", "A"}, [2]string{"2", "B"}, [2]string{"3", "A"})

	res := Assign(guests, seats, order)

	if res.Placed != 3 || len(res.Unplaced) != 0 {
		t.Fatalf("placed %d unplaced %d, want 3/0", res.Placed, len(res.Unplaced))
	}
	// Section A gets guests 1 and 3 in roster order; B gets guest 2.
	if seats[0].Guest.Number != "1" || seats[1].Guest.Number != "3" {
		t.Errorf("section A order wrong: %v %v", seats[0].Guest, seats[1].Guest)
	}
	if seats[3].Guest.Number != "2" {
		t.Errorf("section B guest = %v", seats[3].Guest)
	}
	// Bidirectional consistency.
	for _, s := range seats {
		if s.Guest == nil {
			continue
		}
		g := roster.Find(guests, s.Guest.GuestID)
		if g == nil || g.SeatID != s.ID {
			t.Errorf("seat %s and guest disagree: %+v", s.ID, g)
		}
	}
}

func TestAssignShortfall(t *testing.T) {
	// 3 guests targeting 分区1, which has only 2 seats and is the only
	// section: 2 placed, 1 unplaced.
	order := []string{"分区1"}
	seats := grid(map[string]int{"分区1": 2}, order)
	guests := guestList([2]string{"1", "分区1"}, [2]string{"2", "分区1"}, [2]string{"3", "分区1"})

	res := Assign(guests, seats, order)

	if res.Placed != 2 {
		t.Errorf("placed = %d, want 2", res.Placed)
	}
	if len(res.Unplaced) != 1 || res.Unplaced[0].Number != "3" {
		t.Errorf("unplaced = %+v, want guest 3", res.Unplaced)
	}
}

func TestAssignSpilloverAbsentSection(t *testing.T) {
	// A guest targeting a section absent from the order is force-drained
	// into the first section with no matches left.
	order := []string{"A"}
	seats := grid(map[string]int{"A": 2}, order)
	guests := guestList([2]string{"1", "Ghost"})

	res := Assign(guests, seats, order)

	if res.Placed != 1 || len(res.Unplaced) != 0 {
		t.Fatalf("placed %d unplaced %d, want 1/0", res.Placed, len(res.Unplaced))
	}
	if seats[0].Guest == nil || seats[0].Guest.Number != "1" {
		t.Fatalf("guest not drained into section A: %+v", seats[0].Guest)
	}
	// The guest keeps its original target section and that section's color.
	if seats[0].Guest.Section != "Ghost" {
		t.Errorf("link section = %q, want original target Ghost", seats[0].Guest.Section)
	}
	if seats[0].Guest.Color != Palette[0].Hex() {
		t.Errorf("color = %q, want first palette color", seats[0].Guest.Color)
	}
}

func TestAssignDrainsOneGuestPerUnmatchedSection(t *testing.T) {
	// With no matches anywhere, each section takes exactly one pending
	// guest per pass, in order.
	order := []string{"A", "B", "C"}
	seats := grid(map[string]int{"A": 5, "B": 5, "C": 5}, order)
	guests := guestList([2]string{"1", "X"}, [2]string{"2", "X"}, [2]string{"3", "X"})

	res := Assign(guests, seats, order)

	if res.Placed != 3 {
		t.Fatalf("placed = %d, want 3", res.Placed)
	}
	for i, name := range order {
		sec := layout.BySection(seats)[name]
		if sec[0].Guest == nil || sec[0].Guest.Number != guests[i].Number {
			t.Errorf("section %s first seat = %+v, want guest %s", name, sec[0].Guest, guests[i].Number)
		}
		if sec[1].Guest != nil {
			t.Errorf("section %s should take only one drained guest", name)
		}
	}
}

func TestAssignClearsPreviousLinkage(t *testing.T) {
	order := []string{"A"}
	seats := grid(map[string]int{"A": 2}, order)
	guests := guestList([2]string{"1", "A"}, [2]string{"2", "A"})

	Assign(guests, seats, order)
	first := seats[0].Guest.GuestID

	// Re-running starts from a clean slate, not on top of stale links.
	res := Assign(guests, seats, order)
	if res.Placed != 2 {
		t.Fatalf("placed = %d, want 2", res.Placed)
	}
	if seats[0].Guest.GuestID != first {
		t.Errorf("re-assignment should be deterministic")
	}
}

func TestAssignColorByOriginalSection(t *testing.T) {
	// Guest 2 targets C, spills into B, but keeps C's color.
	order := []string{"A", "B"}
	seats := grid(map[string]int{"A": 1, "B": 1}, order)
	guests := guestList([2]string{"1", "A"}, [2]string{"2", "C"})

	Assign(guests, seats, order)

	if seats[0].Guest.Color != Palette[0].Hex() {
		t.Errorf("guest 1 color = %q", seats[0].Guest.Color)
	}
	if seats[1].Guest == nil || seats[1].Guest.Number != "2" {
		t.Fatalf("guest 2 should spill into B: %+v", seats[1].Guest)
	}
	if seats[1].Guest.Section != "C" {
		t.Errorf("link section = %q, want original target C", seats[1].Guest.Section)
	}
	if seats[1].Guest.Color != Palette[1].Hex() {
		t.Errorf("spilled guest color = %q, want C's palette color", seats[1].Guest.Color)
	}
}

func TestAssignRoundTripClear(t *testing.T) {
	order := []string{"A"}
	seats := grid(map[string]int{"A": 3}, order)
	guests := guestList([2]string{"1", "A"}, [2]string{"2", "A"})

	Assign(guests, seats, order)
	ClearAssignments(seats, guests)

	for _, s := range seats {
		if s.Guest != nil || s.Occupied {
			t.Errorf("seat %s not cleared: %+v", s.ID, s)
		}
	}
	for _, g := range guests {
		if g.SeatID != "" {
			t.Errorf("guest %s still linked to %q", g.ID, g.SeatID)
		}
	}
}
