package tile

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a tint packed as 0xRRGGBBAA.
type Color uint32

// White is the fully opaque white tint, meaning "no recoloring".
const White Color = 0xFFFFFFFF

// RGBA packs the four channels into a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Components returns the individual channels.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// String returns the color as "#RRGGBBAA".
func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// ParseHex converts "RRGGBB" or "RRGGBBAA" (with an optional leading '#') to a Color.
// Six-digit colors are fully opaque.
func ParseHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	switch len(hex) {
	case 6:
		hex += "FF"
	case 8:
	default:
		return 0, fmt.Errorf("invalid hex color length: %q", hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return Color(v), nil
}

// MustParseHex converts a hex color string to a Color, panicking on error.
func MustParseHex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}
