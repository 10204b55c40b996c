package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/tilegrid/internal/grid"
	"github.com/samdwyer/tilegrid/internal/tile"
	"github.com/samdwyer/tilegrid/internal/tileset"
)

// Text tiles use code-point ids in this range and draw as themselves.
const (
	firstPrintable = 0x20
	lastPrintable  = 0x7E
)

// Renderer draws grid views to the screen.
type Renderer struct {
	screen     *Screen
	tiles      *tileset.Tileset
	background colorful.Color
	text       colorful.Color
}

// NewRenderer creates a renderer for the given screen and tileset.
func NewRenderer(screen *Screen, tiles *tileset.Tileset) *Renderer {
	return &Renderer{
		screen:     screen,
		tiles:      tiles,
		background: colorful.Color{},
		text:       colorful.Color{R: 1, G: 1, B: 1},
	}
}

// Render draws the stack's view with the cursor highlighted. For each cell
// the top-most non-empty layer wins.
func (r *Renderer) Render(stack *grid.Stack, cursor grid.Point) {
	r.screen.Clear()

	view := stack.View()
	layers := stack.Layers()
	bundles := make([][]uint64, len(layers))
	for i, g := range layers {
		bundles[i] = g.ExtractView().Bundle()
	}

	for y := 0; y < view.Height; y++ {
		for x := 0; x < view.Width; x++ {
			idx := y*view.Width + x
			for i := len(bundles) - 1; i >= 0; i-- {
				t := grid.Unpack(bundles[i][idx])
				if t.IsEmpty() {
					continue
				}
				glyph, style := r.cell(t)
				r.screen.SetContent(x, y, glyph, style)
				break
			}
		}
	}

	cx, cy := cursor.X-view.X, cursor.Y-view.Y
	if cx >= 0 && cx < view.Width && cy >= 0 && cy < view.Height {
		tiles := stack.TilesAt(cursor)
		glyph := ' '
		for i := len(tiles) - 1; i >= 0; i-- {
			if !tiles[i].IsEmpty() {
				glyph, _ = r.cell(tiles[i])
				break
			}
		}
		r.screen.SetContent(cx, cy, glyph, tcell.StyleDefault.Reverse(true))
	}
}

// cell returns the glyph and style used to draw t.
func (r *Renderer) cell(t tile.Tile) (rune, tcell.Style) {
	if def := r.tiles.GetByID(t.ID); def != nil {
		return def.GlyphRune(t.Pose), r.style(toColorful(def.Foreground()), t.Tint)
	}
	if t.ID >= firstPrintable && t.ID <= lastPrintable {
		return rune(t.ID), r.style(r.text, t.Tint)
	}
	return '?', tcell.StyleDefault.Foreground(tcell.ColorRed)
}

// style multiplies base by the tint and blends the result over the
// background by the tint's alpha.
func (r *Renderer) style(base colorful.Color, tint tile.Color) tcell.Style {
	fg := Shade(base, tint, r.background)
	cr, cg, cb := fg.RGB255()
	return tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tileset.ToTCell(tile.RGBA(cr, cg, cb, 0xFF)))
}

// toColorful converts a packed color, ignoring alpha.
func toColorful(c tile.Color) colorful.Color {
	r, g, b, _ := c.Components()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Shade applies a tile tint to a base color: channels are multiplied and the
// result is blended over background by the tint alpha.
func Shade(base colorful.Color, tint tile.Color, background colorful.Color) colorful.Color {
	tr, tg, tb, ta := tint.Components()
	tinted := colorful.Color{
		R: base.R * float64(tr) / 255,
		G: base.G * float64(tg) / 255,
		B: base.B * float64(tb) / 255,
	}
	return background.BlendRgb(tinted, float64(ta)/255).Clamped()
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	x := 0
	for _, ch := range msg {
		r.screen.SetContent(x, y, ch, style)
		x++
	}
}

// Show flushes the frame to the terminal.
func (r *Renderer) Show() {
	r.screen.Show()
}
