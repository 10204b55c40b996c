package grid

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/samdwyer/tilegrid/internal/tile"
)

// ErrSizeMismatch is returned when a layer's size differs from its stack's.
var ErrSizeMismatch = errors.New("layer size does not match stack")

// Stack is an ordered set of equally sized grids sharing one view.
// Layer 0 is the bottom layer.
type Stack struct {
	width  int
	height int
	layers []*TileGrid
	view   Region
}

// NewStack creates a stack with the given number of empty layers.
func NewStack(width, height, layers int) *Stack {
	width = max(width, 1)
	height = max(height, 1)

	s := &Stack{
		width:  width,
		height: height,
		view:   Rect(0, 0, width, height),
	}
	for range layers {
		s.NewLayer()
	}
	return s
}

// NewLayer appends an empty layer on top and returns it.
func (s *Stack) NewLayer() *TileGrid {
	g := New(s.width, s.height)
	g.SetView(s.view)
	s.layers = append(s.layers, g)
	return g
}

// AddLayer appends g on top of the stack. g must have the stack's size.
func (s *Stack) AddLayer(g *TileGrid) error {
	w, h := g.Size()
	if w != s.width || h != s.height {
		Logger().Debug("rejecting stack layer",
			slog.String("grid_id", g.ID().String()),
			slog.Int("width", w), slog.Int("height", h))
		return fmt.Errorf("%w: layer is %dx%d, stack is %dx%d", ErrSizeMismatch, w, h, s.width, s.height)
	}
	g.SetView(s.view)
	s.layers = append(s.layers, g)
	return nil
}

// Layer returns layer i with the shared view applied, or nil if i is out of range.
func (s *Stack) Layer(i int) *TileGrid {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	s.layers[i].SetView(s.view)
	return s.layers[i]
}

// Layers returns all layers, bottom first, with the shared view applied.
func (s *Stack) Layers() []*TileGrid {
	for _, g := range s.layers {
		g.SetView(s.view)
	}
	return s.layers
}

// Len returns the number of layers.
func (s *Stack) Len() int {
	return len(s.layers)
}

// Size returns the shared layer dimensions.
func (s *Stack) Size() (width, height int) {
	return s.width, s.height
}

// View returns the shared view.
func (s *Stack) View() Region {
	return s.view
}

// SetView sets the shared view on the stack and every layer.
func (s *Stack) SetView(r Region) {
	s.view = clampView(r)
	for _, g := range s.layers {
		g.SetView(s.view)
	}
}

// TilesAt returns the tile at p on each layer, bottom first.
func (s *Stack) TilesAt(p Point) []tile.Tile {
	out := make([]tile.Tile, len(s.layers))
	for i, g := range s.layers {
		out[i] = g.TileAt(p)
	}
	return out
}

// Flush clears every layer.
func (s *Stack) Flush() {
	for _, g := range s.layers {
		g.Flush()
	}
}

// ConfigureText assigns a symbol range on every layer.
func (s *Stack) ConfigureText(firstID int, chars string) {
	for _, g := range s.layers {
		g.ConfigureText(firstID, chars)
	}
}

// SetSeed sets the same seed state on every layer.
func (s *Stack) SetSeed(seed Seed) {
	for _, g := range s.layers {
		g.SetSeed(seed)
	}
}
