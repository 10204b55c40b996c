package grid

import "github.com/samdwyer/tilegrid/internal/tile"

// SetLine writes a seeded candidate pick into every cell of the Bresenham
// line from a to b, both ends included.
func (g *TileGrid) SetLine(a, b Point, mask *Region, candidates ...tile.Tile) {
	if len(candidates) == 0 {
		return
	}

	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy

	p := a
	for {
		g.putSeeded(p, mask, candidates)
		if p == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += sx
		}
		if e2 <= dx {
			e += dx
			p.Y += sy
		}
	}
}

// SetEllipse rasterizes an axis-aligned ellipse with the midpoint algorithm.
// Outline mode writes the four symmetric boundary points for every step;
// filled mode writes the horizontal span between them on each scanline.
func (g *TileGrid) SetEllipse(center, radius Point, filled bool, mask *Region, candidates ...tile.Tile) {
	if len(candidates) == 0 {
		return
	}
	rx, ry := abs(radius.X), abs(radius.Y)

	span := func(x0, x1, y int) {
		for x := x0; x <= x1; x++ {
			g.putSeeded(Point{X: x, Y: y}, mask, candidates)
		}
	}
	plot := func(x, y int) {
		if filled {
			span(center.X-x, center.X+x, center.Y+y)
			span(center.X-x, center.X+x, center.Y-y)
			return
		}
		g.putSeeded(Point{X: center.X + x, Y: center.Y + y}, mask, candidates)
		g.putSeeded(Point{X: center.X - x, Y: center.Y + y}, mask, candidates)
		g.putSeeded(Point{X: center.X + x, Y: center.Y - y}, mask, candidates)
		g.putSeeded(Point{X: center.X - x, Y: center.Y - y}, mask, candidates)
	}

	// A flat ellipse collapses to a horizontal span.
	if ry == 0 {
		span(center.X-rx, center.X+rx, center.Y)
		return
	}

	rx2, ry2 := rx*rx, ry*ry
	x, y := 0, ry
	dx, dy := 0, 2*rx2*y

	// Region 1: slope shallower than -1, step x every iteration.
	d1 := float64(ry2) - float64(rx2*ry) + 0.25*float64(rx2)
	for dx < dy {
		plot(x, y)
		x++
		dx += 2 * ry2
		if d1 < 0 {
			d1 += float64(dx + ry2)
		} else {
			y--
			dy -= 2 * rx2
			d1 += float64(dx - dy + ry2)
		}
	}

	// Region 2: step y every iteration.
	fx := float64(x) + 0.5
	d2 := float64(ry2)*fx*fx + float64(rx2*(y-1)*(y-1)) - float64(rx2*ry2)
	for y >= 0 {
		plot(x, y)
		y--
		dy -= 2 * rx2
		if d2 > 0 {
			d2 += float64(rx2 - dy)
		} else {
			x++
			dx += 2 * ry2
			d2 += float64(dx - dy + rx2)
		}
	}
}

// SetBox draws a framed rectangle. corner is drawn as the top-left corner
// and edge as the top edge; both are rotated clockwise for the other sides.
// A box one cell wide or tall degenerates to a solid rectangle of fill.
func (g *TileGrid) SetBox(region Region, fill, corner, edge tile.Tile, mask *Region) {
	r := region.Canon()
	if r.Empty() {
		return
	}
	if r.Width == 1 || r.Height == 1 {
		for p := range r.Points() {
			g.put(p, fill, mask)
		}
		return
	}

	right, bottom := r.X+r.Width-1, r.Y+r.Height-1
	for p := range r.Points() {
		top, bot := p.Y == r.Y, p.Y == bottom
		left, rgt := p.X == r.X, p.X == right

		var t tile.Tile
		switch {
		case top && left:
			t = corner
		case top && rgt:
			t = corner.Rotated(1)
		case bot && rgt:
			t = corner.Rotated(2)
		case bot && left:
			t = corner.Rotated(3)
		case top:
			t = edge
		case rgt:
			t = edge.Rotated(1)
		case bot:
			t = edge.Rotated(2)
		case left:
			t = edge.Rotated(3)
		default:
			t = fill
		}
		g.put(p, t, mask)
	}
}

// Patch slots, row-major across the 3x3 source.
const (
	PatchTopLeft = iota
	PatchTop
	PatchTopRight
	PatchLeft
	PatchCenter
	PatchRight
	PatchBottomLeft
	PatchBottom
	PatchBottomRight
)

// SetPatch performs a 9-slice expansion of tiles over region. Corners stay
// single cells, edges stretch along their side and the center fills the
// interior. A single-cell region takes the center; a single column takes
// top, center and bottom; a single row takes left, center and right.
// With an extent of 2 there is no interior, so only the border is drawn.
func (g *TileGrid) SetPatch(region Region, tiles [9]tile.Tile, mask *Region) {
	r := region.Canon()
	if r.Empty() {
		return
	}

	// slot maps a position along an axis to 0 (start), 1 (middle) or 2 (end).
	slot := func(i, n int) int {
		switch {
		case i == 0:
			return 0
		case i == n-1:
			return 2
		default:
			return 1
		}
	}

	switch {
	case r.Width == 1 && r.Height == 1:
		g.put(Point{X: r.X, Y: r.Y}, tiles[PatchCenter], mask)
	case r.Width == 1:
		column := [3]tile.Tile{tiles[PatchTop], tiles[PatchCenter], tiles[PatchBottom]}
		for j := 0; j < r.Height; j++ {
			g.put(Point{X: r.X, Y: r.Y + j}, column[slot(j, r.Height)], mask)
		}
	case r.Height == 1:
		row := [3]tile.Tile{tiles[PatchLeft], tiles[PatchCenter], tiles[PatchRight]}
		for i := 0; i < r.Width; i++ {
			g.put(Point{X: r.X + i, Y: r.Y}, row[slot(i, r.Width)], mask)
		}
	default:
		for j := 0; j < r.Height; j++ {
			for i := 0; i < r.Width; i++ {
				t := tiles[slot(j, r.Height)*3+slot(i, r.Width)]
				g.put(Point{X: r.X + i, Y: r.Y + j}, t, mask)
			}
		}
	}
}

// SetBar draws a straight bar of length cells starting at p: an end cap on
// each side and fill in between. edge is drawn as the left cap.
func (g *TileGrid) SetBar(p Point, edge, fill tile.Tile, length int, vertical bool, mask *Region) {
	if length <= 0 {
		return
	}

	step := Point{X: 1}
	startCap, endCap := edge, edge.Rotated(2)
	if vertical {
		step = Point{Y: 1}
		startCap, endCap = edge.Rotated(1), edge.Rotated(3)
		fill = fill.Rotated(1)
	}

	g.put(p, startCap, mask)
	if length == 1 {
		return
	}
	cur := p
	for i := 1; i < length-1; i++ {
		cur = cur.Add(step)
		g.put(cur, fill, mask)
	}
	g.put(cur.Add(step), endCap, mask)
}
