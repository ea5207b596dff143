// Package venue defines the declarative venue configuration consumed by the
// layout engine: a rectangular room, an optional stage, and an ordered list
// of rectangular seating sections.
//
// All dimensions are in meters. Configuration is typically loaded from a
// TOML file:
//
//	[room]
//	width = 20.0
//	length = 15.0
//
//	[stage]
//	exists = true
//	width = 6.0
//	length = 3.0
//	direction = "north"
//
//	[[sections]]
//	name = "Orchestra"
//	rows = 5
//	max_continuous_seats = 10
//	seat_width = 0.5
//	seat_length = 0.5
//	aisle_width = 1.2
//	left_wall_distance = 1.0
//	right_wall_distance = 1.0
//
// Venue.ValidateAndSetDefaults applies defaults and checks the structural
// invariants before the configuration reaches the layout builder.
package venue

import (
	"github.com/seatlab/seatplan/pkg/errors"
	"github.com/seatlab/seatplan/pkg/geom"
)

// Stage directions. A stage consumes vertical (north/south) or horizontal
// (east/west) space at the room boundary.
const (
	DirectionNorth = "north"
	DirectionSouth = "south"
	DirectionEast  = "east"
	DirectionWest  = "west"
)

// ValidDirections is the set of supported stage directions.
var ValidDirections = map[string]bool{
	DirectionNorth: true,
	DirectionSouth: true,
	DirectionEast:  true,
	DirectionWest:  true,
}

// RoomConfig describes the rectangular room footprint.
type RoomConfig struct {
	Width  float64 `toml:"width" json:"width"`
	Length float64 `toml:"length" json:"length"`
}

// StageConfig describes the optional stage. Width and Length are only
// meaningful when Exists is true.
type StageConfig struct {
	Exists    bool    `toml:"exists" json:"exists"`
	Width     float64 `toml:"width" json:"width,omitempty"`
	Length    float64 `toml:"length" json:"length,omitempty"`
	Direction string  `toml:"direction" json:"direction,omitempty"`
}

// SectionConfig describes one rectangular seating section. Sections stack
// along the room's length axis in configuration order.
type SectionConfig struct {
	Name string `toml:"name" json:"name"`

	// Placement
	LeftWallDistance        float64 `toml:"left_wall_distance" json:"left_wall_distance"`
	RightWallDistance       float64 `toml:"right_wall_distance" json:"right_wall_distance"`
	PreviousSectionDistance float64 `toml:"previous_section_distance" json:"previous_section_distance"`

	// Seat grid
	Rows               int     `toml:"rows" json:"rows"`
	MaxContinuousSeats int     `toml:"max_continuous_seats" json:"max_continuous_seats"`
	SeatWidth          float64 `toml:"seat_width" json:"seat_width"`
	SeatLength         float64 `toml:"seat_length" json:"seat_length"`
	SeatLeftRightGap   float64 `toml:"seat_left_right_spacing" json:"seat_left_right_spacing"`
	SeatFrontBackGap   float64 `toml:"seat_front_back_spacing" json:"seat_front_back_spacing"`
	AisleWidth         float64 `toml:"aisle_width" json:"aisle_width"`
}

// UsableWidth returns the section's available row width inside a room of the
// given width, in meters.
func (s *SectionConfig) UsableWidth(roomWidth float64) float64 {
	return roomWidth - s.LeftWallDistance - s.RightWallDistance
}

// Venue bundles the full configuration consumed on every rebuild.
type Venue struct {
	Room     RoomConfig      `toml:"room" json:"room"`
	Stage    StageConfig     `toml:"stage" json:"stage"`
	Sections []SectionConfig `toml:"sections" json:"sections"`

	// Scale is the pixel-per-meter conversion applied by the layout builder.
	// Zero means geom.DefaultScale.
	Scale float64 `toml:"scale" json:"scale,omitempty"`
}

// Default values applied by ValidateAndSetDefaults.
const (
	DefaultMaxContinuousSeats = 10
	DefaultAisleWidth         = 1.2
	DefaultSeatWidth          = 0.5
	DefaultSeatLength         = 0.5
)

// SectionOrder returns the configured section names in display order.
func (v *Venue) SectionOrder() []string {
	names := make([]string, len(v.Sections))
	for i, s := range v.Sections {
		names[i] = s.Name
	}
	return names
}

// ValidateAndSetDefaults checks structural invariants and fills defaults.
// It returns a coded error describing the first violation found.
func (v *Venue) ValidateAndSetDefaults() error {
	if v.Room.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "room width must be positive, got %g", v.Room.Width)
	}
	if v.Room.Length <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "room length must be positive, got %g", v.Room.Length)
	}
	if v.Scale == 0 {
		v.Scale = geom.DefaultScale
	}
	if v.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %g", v.Scale)
	}

	if v.Stage.Exists {
		if v.Stage.Width <= 0 || v.Stage.Length <= 0 {
			return errors.New(errors.ErrCodeInvalidStage, "stage dimensions must be positive, got %gx%g", v.Stage.Width, v.Stage.Length)
		}
		if v.Stage.Direction == "" {
			v.Stage.Direction = DirectionNorth
		}
		if !ValidDirections[v.Stage.Direction] {
			return errors.New(errors.ErrCodeInvalidStage, "invalid stage direction: %q (must be one of: north, south, east, west)", v.Stage.Direction)
		}
	}

	if len(v.Sections) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one section is required")
	}

	seen := make(map[string]bool, len(v.Sections))
	for i := range v.Sections {
		s := &v.Sections[i]
		if err := v.validateSection(i, s); err != nil {
			return err
		}
		if seen[s.Name] {
			return errors.New(errors.ErrCodeInvalidSection, "duplicate section name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

func (v *Venue) validateSection(i int, s *SectionConfig) error {
	if s.Name == "" {
		return errors.New(errors.ErrCodeInvalidSection, "section %d has no name", i+1)
	}
	if s.Rows <= 0 {
		return errors.New(errors.ErrCodeInvalidSection, "section %q: rows must be positive, got %d", s.Name, s.Rows)
	}

	// Defaults
	if s.MaxContinuousSeats == 0 {
		s.MaxContinuousSeats = DefaultMaxContinuousSeats
	}
	if s.SeatWidth == 0 {
		s.SeatWidth = DefaultSeatWidth
	}
	if s.SeatLength == 0 {
		s.SeatLength = DefaultSeatLength
	}
	if s.AisleWidth == 0 {
		s.AisleWidth = DefaultAisleWidth
	}

	if s.MaxContinuousSeats < 0 {
		return errors.New(errors.ErrCodeInvalidSection, "section %q: max continuous seats must be positive, got %d", s.Name, s.MaxContinuousSeats)
	}
	if s.SeatWidth <= 0 || s.SeatLength <= 0 {
		return errors.New(errors.ErrCodeInvalidSection, "section %q: seat dimensions must be positive", s.Name)
	}
	if s.SeatLeftRightGap < 0 || s.SeatFrontBackGap < 0 {
		return errors.New(errors.ErrCodeInvalidSection, "section %q: seat spacing cannot be negative", s.Name)
	}
	if s.AisleWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidSection, "section %q: aisle width must be positive, got %g", s.Name, s.AisleWidth)
	}
	if s.LeftWallDistance < 0 || s.RightWallDistance < 0 {
		return errors.New(errors.ErrCodeInvalidSection, "section %q: wall distances cannot be negative", s.Name)
	}
	if s.UsableWidth(v.Room.Width) <= 0 {
		return errors.New(errors.ErrCodeInvalidSection,
			"section %q: wall distances %g+%g leave no usable width in a %gm room",
			s.Name, s.LeftWallDistance, s.RightWallDistance, v.Room.Width)
	}
	return nil
}
