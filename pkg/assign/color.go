package assign

import (
	"fmt"

	"github.com/seatlab/seatplan/pkg/errors"
	"github.com/seatlab/seatplan/pkg/roster"
)

// RGB is a structured color triple. Shade variants are derived by channel
// arithmetic, never by slicing hex strings.
type RGB struct {
	R, G, B uint8
}

// Hex renders the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb" into an RGB triple.
func ParseHex(s string) (RGB, error) {
	var c RGB
	if len(s) != 7 || s[0] != '#' {
		return c, errors.New(errors.ErrCodeInvalidFormat, "invalid hex color %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid hex color %q", s)
	}
	return c, nil
}

// Lighten moves each channel toward white by fraction f in [0, 1].
func (c RGB) Lighten(f float64) RGB {
	return RGB{
		R: blend(c.R, 255, f),
		G: blend(c.G, 255, f),
		B: blend(c.B, 255, f),
	}
}

// Darken moves each channel toward black by fraction f in [0, 1].
func (c RGB) Darken(f float64) RGB {
	return RGB{
		R: blend(c.R, 0, f),
		G: blend(c.G, 0, f),
		B: blend(c.B, 0, f),
	}
}

func blend(from, to uint8, f float64) uint8 {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return uint8(float64(from) + (float64(to)-float64(from))*f + 0.5)
}

// Palette is the fixed cycle of section colors.
var Palette = []RGB{
	{0x4e, 0x79, 0xa7}, // blue
	{0xf2, 0x8e, 0x2b}, // orange
	{0x59, 0xa1, 0x4f}, // green
	{0xe1, 0x57, 0x59}, // red
	{0x76, 0xb7, 0xb2}, // teal
	{0xed, 0xc9, 0x48}, // yellow
	{0xb0, 0x7a, 0xa1}, // purple
	{0xff, 0x9d, 0xa7}, // pink
	{0x9c, 0x75, 0x5f}, // brown
	{0xba, 0xb0, 0xac}, // gray
}

// SectionColors builds the per-import color map: distinct target section
// names in first-seen roster order, colored from Palette cyclically. The map
// is stable for the life of one import; a re-import rebuilds it.
func SectionColors(guests []*roster.Guest) map[string]RGB {
	colors := make(map[string]RGB)
	next := 0
	for _, g := range guests {
		if _, ok := colors[g.AssignedSection]; ok {
			continue
		}
		colors[g.AssignedSection] = Palette[next%len(Palette)]
		next++
	}
	return colors
}
