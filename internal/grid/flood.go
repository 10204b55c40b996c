package grid

import "github.com/samdwyer/tilegrid/internal/tile"

// Flood paints the 4-connected area around seed that matches the seed's
// original tile. With exact set, tiles match on id, tint and pose;
// otherwise on id alone. Expansion stops at a cell that no longer matches
// the original, or that already equals the candidate picked for it.
// It returns the number of cells painted.
func (g *TileGrid) Flood(seed Point, exact bool, mask *Region, candidates ...tile.Tile) int {
	if len(candidates) == 0 || !g.inBounds(seed) {
		return 0
	}

	same := func(a, b tile.Tile) bool { return a.ID == b.ID }
	if exact {
		same = func(a, b tile.Tile) bool { return a == b }
	}

	original := g.TileAt(seed)
	painted := 0

	stack := []Point{seed}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !g.writable(p, mask) {
			continue
		}
		current := g.TileAt(p)
		if !same(current, original) {
			continue
		}
		next := g.cfg.Seed.Pick(p.X, p.Y, candidates)
		if same(current, next) {
			continue
		}

		g.put(p, next, mask)
		painted++

		stack = append(stack,
			Point{X: p.X + 1, Y: p.Y},
			Point{X: p.X - 1, Y: p.Y},
			Point{X: p.X, Y: p.Y + 1},
			Point{X: p.X, Y: p.Y - 1},
		)
	}
	return painted
}
