package venue

import (
	"strings"
	"testing"

	"github.com/seatlab/seatplan/pkg/errors"
	"github.com/seatlab/seatplan/pkg/geom"
)

func validVenue() Venue {
	return Venue{
		Room: RoomConfig{Width: 20, Length: 15},
		Sections: []SectionConfig{{
			Name:               "Orchestra",
			Rows:               5,
			MaxContinuousSeats: 10,
			SeatWidth:          0.5,
			SeatLength:         0.5,
			AisleWidth:         1.2,
			LeftWallDistance:   1,
			RightWallDistance:  1,
		}},
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	v := validVenue()
	if err := v.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("valid venue should pass: %v", err)
	}
	if v.Scale != geom.DefaultScale {
		t.Errorf("Scale default = %g, want %g", v.Scale, geom.DefaultScale)
	}
}

func TestValidateSectionDefaults(t *testing.T) {
	v := validVenue()
	v.Sections[0].MaxContinuousSeats = 0
	v.Sections[0].SeatWidth = 0
	v.Sections[0].SeatLength = 0
	v.Sections[0].AisleWidth = 0

	if err := v.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults should be applied, got error: %v", err)
	}

	s := v.Sections[0]
	if s.MaxContinuousSeats != DefaultMaxContinuousSeats {
		t.Errorf("MaxContinuousSeats = %d, want %d", s.MaxContinuousSeats, DefaultMaxContinuousSeats)
	}
	if s.SeatWidth != DefaultSeatWidth || s.SeatLength != DefaultSeatLength {
		t.Errorf("seat size defaults not applied: %gx%g", s.SeatWidth, s.SeatLength)
	}
	if s.AisleWidth != DefaultAisleWidth {
		t.Errorf("AisleWidth = %g, want %g", s.AisleWidth, DefaultAisleWidth)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Venue)
		wantCode errors.Code
	}{
		{"zero room width", func(v *Venue) { v.Room.Width = 0 }, errors.ErrCodeInvalidConfig},
		{"negative room length", func(v *Venue) { v.Room.Length = -3 }, errors.ErrCodeInvalidConfig},
		{"no sections", func(v *Venue) { v.Sections = nil }, errors.ErrCodeInvalidConfig},
		{"unnamed section", func(v *Venue) { v.Sections[0].Name = "" }, errors.ErrCodeInvalidSection},
		{"zero rows", func(v *Venue) { v.Sections[0].Rows = 0 }, errors.ErrCodeInvalidSection},
		{"walls swallow room", func(v *Venue) {
			v.Sections[0].LeftWallDistance = 12
			v.Sections[0].RightWallDistance = 9
		}, errors.ErrCodeInvalidSection},
		{"duplicate names", func(v *Venue) {
			v.Sections = append(v.Sections, v.Sections[0])
		}, errors.ErrCodeInvalidSection},
		{"bad stage direction", func(v *Venue) {
			v.Stage = StageConfig{Exists: true, Width: 4, Length: 2, Direction: "up"}
		}, errors.ErrCodeInvalidStage},
		{"stage without size", func(v *Venue) {
			v.Stage = StageConfig{Exists: true, Direction: DirectionNorth}
		}, errors.ErrCodeInvalidStage},
	}

	for _, tt := range tests {
		v := validVenue()
		tt.mutate(&v)
		err := v.ValidateAndSetDefaults()
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !errors.Is(err, tt.wantCode) {
			t.Errorf("%s: code = %q, want %q", tt.name, errors.GetCode(err), tt.wantCode)
		}
	}
}

func TestStageDirectionDefault(t *testing.T) {
	v := validVenue()
	v.Stage = StageConfig{Exists: true, Width: 6, Length: 3}
	if err := v.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("stage without direction should default: %v", err)
	}
	if v.Stage.Direction != DirectionNorth {
		t.Errorf("Direction = %q, want %q", v.Stage.Direction, DirectionNorth)
	}
}

func TestSectionOrder(t *testing.T) {
	v := validVenue()
	v.Sections = append(v.Sections, SectionConfig{Name: "Balcony", Rows: 2})
	order := v.SectionOrder()
	if len(order) != 2 || order[0] != "Orchestra" || order[1] != "Balcony" {
		t.Errorf("SectionOrder = %v", order)
	}
}

const sampleTOML = `
[room]
width = 20.0
length = 15.0

[stage]
exists = true
width = 6.0
length = 3.0
direction = "north"

[[sections]]
name = "Orchestra"
rows = 5
max_continuous_seats = 10
seat_width = 0.5
seat_length = 0.5
seat_front_back_spacing = 1.0
aisle_width = 1.2
left_wall_distance = 1.0
right_wall_distance = 1.0

[[sections]]
name = "Balcony"
rows = 3
previous_section_distance = 2.0
`

func TestRead(t *testing.T) {
	v, err := Read(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(v.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(v.Sections))
	}
	if v.Sections[1].PreviousSectionDistance != 2.0 {
		t.Errorf("PreviousSectionDistance = %g, want 2", v.Sections[1].PreviousSectionDistance)
	}
	if !v.Stage.Exists || v.Stage.Direction != "north" {
		t.Errorf("stage not decoded: %+v", v.Stage)
	}
	// Balcony relies on defaults
	if v.Sections[1].MaxContinuousSeats != DefaultMaxContinuousSeats {
		t.Errorf("default MaxContinuousSeats not applied to second section")
	}
}

func TestReadMalformed(t *testing.T) {
	_, err := Read(strings.NewReader("[room\nwidth = oops"))
	if err == nil {
		t.Fatal("malformed TOML should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("code = %q, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestUsableWidth(t *testing.T) {
	s := SectionConfig{LeftWallDistance: 1, RightWallDistance: 1}
	if got := s.UsableWidth(20); got != 18 {
		t.Errorf("UsableWidth = %g, want 18", got)
	}
}
