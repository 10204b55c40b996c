package tileset

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tilegrid/internal/tile"
)

// ToTCell converts a tile color to a tcell color, dropping alpha.
func ToTCell(c tile.Color) tcell.Color {
	r, g, b, _ := c.Components()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
