package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Palette holds the display color of each surface kind.
type Palette struct {
	RoomWall tcell.Color
	Wall     tcell.Color
	Portal   tcell.Color
}

// DefaultPalette is used for surfaces a document leaves uncolored.
var DefaultPalette = Palette{
	RoomWall: MustParseHexColor("#8899AA"),
	Wall:     MustParseHexColor("#CC6644"),
	Portal:   MustParseHexColor("#44CCCC"),
}

// PaletteDef is the palette section of a template document.
type PaletteDef struct {
	RoomWall string `json:"room_wall"`
	Wall     string `json:"wall"`
	Portal   string `json:"portal"`
}

// Resolve parses every color, falling back to DefaultPalette for empty ones.
func (p PaletteDef) Resolve() (Palette, error) {
	out := DefaultPalette
	fields := []struct {
		name string
		hex  string
		dst  *tcell.Color
	}{
		{"room_wall", p.RoomWall, &out.RoomWall},
		{"wall", p.Wall, &out.Wall},
		{"portal", p.Portal, &out.Portal},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		c, err := ParseHexColor(f.hex)
		if err != nil {
			return DefaultPalette, fmt.Errorf("palette %s: %w", f.name, err)
		}
		*f.dst = c
	}
	return out, nil
}

// ParseHexColor converts "#RRGGBB" or "RRGGBB" to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	var rgb [3]int32
	for i, name := range []string{"red", "green", "blue"} {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid %s component in %s: %w", name, hex, err)
		}
		rgb[i] = int32(v)
	}
	return tcell.NewRGBColor(rgb[0], rgb[1], rgb[2]), nil
}

// MustParseHexColor is ParseHexColor for constants; it panics on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}
