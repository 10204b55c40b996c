package editor

import (
	"github.com/samdwyer/tilegrid/internal/grid"
	"github.com/samdwyer/tilegrid/internal/tile"
)

// maxHistory bounds the number of undo steps kept.
const maxHistory = 64

// snapshot is the content of a layer region before an edit.
type snapshot struct {
	layer  int
	region grid.Region
	tiles  [][]tile.Tile
}

// History is a bounded undo stack of layer snapshots.
type History struct {
	entries []snapshot
}

// Record captures region of layer g so it can be restored later.
func (h *History) Record(layer int, g *grid.TileGrid, region grid.Region) {
	region = region.Canon()
	h.entries = append(h.entries, snapshot{
		layer:  layer,
		region: region,
		tiles:  g.TilesIn(region),
	})
	if len(h.entries) > maxHistory {
		h.entries = h.entries[len(h.entries)-maxHistory:]
	}
}

// Undo restores the most recent snapshot into stack. It returns false when
// there is nothing to undo.
func (h *History) Undo(stack *grid.Stack) bool {
	if len(h.entries) == 0 {
		return false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]

	g := stack.Layer(last.layer)
	if g == nil {
		return false
	}
	g.SetGroup(grid.Pt(last.region.X, last.region.Y), last.tiles, nil)
	return true
}

// Len returns the number of undo steps available.
func (h *History) Len() int {
	return len(h.entries)
}
