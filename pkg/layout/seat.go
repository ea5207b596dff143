package layout

import "fmt"

// GuestLink holds the guest fields attached to an occupied seat. A nil
// GuestLink on a Seat means no guest is assigned.
type GuestLink struct {
	GuestID string `json:"guest_id"`
	Number  string `json:"number"`
	Name    string `json:"name,omitempty"`
	Unit    string `json:"unit,omitempty"`

	// Section is the guest's original target section, which may differ from
	// the section the seat belongs to after spillover.
	Section string `json:"section"`

	// Color is the hex color assigned to the guest's target section.
	Color string `json:"color,omitempty"`
}

// Seat is one seat in the generated layout. Position and size are in user
// units (pixels). ID is stable across rebuilds as long as the seat's
// section/row/column coordinates survive the configuration change.
type Seat struct {
	ID string `json:"id"`

	// Geometry
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Grid position, 1-based. Col resets per row.
	Row int `json:"row"`
	Col int `json:"col"`

	// Section display name and 1-based configuration index.
	Section      string `json:"section"`
	SectionIndex int    `json:"section_index"`

	// Mutable state carried across rebuilds by Reconcile.
	Occupied bool       `json:"occupied"`
	VIP      bool       `json:"vip,omitempty"`
	Selected bool       `json:"selected,omitempty"`
	Guest    *GuestLink `json:"guest,omitempty"`
}

// SeatID builds the stable seat identifier from 1-based coordinates.
func SeatID(section, row, col int) string {
	return fmt.Sprintf("S%d-R%d-%d", section, row, col)
}

// Find returns the seat with the given id, or nil if absent.
func Find(seats []*Seat, id string) *Seat {
	for _, s := range seats {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// BySection groups seats by section name, preserving the row-major order
// produced by Build.
func BySection(seats []*Seat) map[string][]*Seat {
	out := make(map[string][]*Seat)
	for _, s := range seats {
		out[s.Section] = append(out[s.Section], s)
	}
	return out
}
