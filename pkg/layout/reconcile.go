package layout

// RandSource produces values in [0, 1). Reconcile uses it to seed the demo
// occupancy of seats that did not exist in the previous layout; tests supply
// a deterministic source.
type RandSource func() float64

// reconcileState captures the mutable fields carried across a rebuild.
type reconcileState struct {
	occupied bool
	vip      bool
	selected bool
	guest    *GuestLink
}

// Reconcile merges a newly built layout with the previous seat collection.
// Seats whose id exists in both collections keep their occupancy, VIP flag,
// guest linkage, and selection; brand-new ids get a pseudo-random occupancy
// seed (rng() > 0.7) and otherwise default state.
//
// Seat ids present only in the previous collection are dropped together with
// their state. A guest linked to a dropped seat is not re-queued as
// unplaced; that loss is intentional and relied upon by callers.
//
// Reconcile mutates and returns next. It must run on every layout rebuild so
// a configuration edit in one section does not destroy occupancy work done
// in another.
func Reconcile(prev, next []*Seat, rng RandSource) []*Seat {
	lookup := make(map[string]reconcileState, len(prev))
	for _, s := range prev {
		lookup[s.ID] = reconcileState{
			occupied: s.Occupied,
			vip:      s.VIP,
			selected: s.Selected,
			guest:    s.Guest,
		}
	}

	for _, s := range next {
		old, ok := lookup[s.ID]
		if !ok {
			if rng != nil {
				s.Occupied = rng() > 0.7
			}
			continue
		}
		s.Occupied = old.occupied
		s.VIP = old.vip
		s.Selected = old.selected
		if old.guest != nil {
			g := *old.guest
			s.Guest = &g
		} else {
			s.Guest = nil
		}
	}
	return next
}
