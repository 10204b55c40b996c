package grid

import (
	"iter"

	"github.com/samdwyer/tilegrid/internal/tile"
)

// Point is an integer cell coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Region is an integer rectangle anchored at (X, Y).
//
// A negative Width or Height extends the rectangle from the anchor in the
// opposite direction: Width -3 at X=5 covers columns 5, 4 and 3.
// Regions double as write masks, in which case Tint is ignored.
type Region struct {
	X, Y          int
	Width, Height int
	Tint          tile.Color // Zero means no tint
}

// Rect returns an untinted region.
func Rect(x, y, width, height int) Region {
	return Region{X: x, Y: y, Width: width, Height: height}
}

// Canon returns the equivalent region with non-negative extents.
func (r Region) Canon() Region {
	if r.Width < 0 {
		r.X += r.Width + 1
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height + 1
		r.Height = -r.Height
	}
	return r
}

// Empty returns true if the region covers no cells.
func (r Region) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Area returns the number of cells covered.
func (r Region) Area() int {
	return abs(r.Width * r.Height)
}

// Contains returns true if the point is inside the region.
func (r Region) Contains(p Point) bool {
	c := r.Canon()
	return p.X >= c.X && p.X < c.X+c.Width && p.Y >= c.Y && p.Y < c.Y+c.Height
}

// Intersects returns true if this region overlaps another.
func (r Region) Intersects(other Region) bool {
	a, b := r.Canon(), other.Canon()
	return a.X < b.X+b.Width &&
		a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height &&
		a.Y+a.Height > b.Y
}

// Center returns the center cell of the region.
func (r Region) Center() Point {
	c := r.Canon()
	return Point{X: c.X + c.Width/2, Y: c.Y + c.Height/2}
}

// Points iterates the region's cells starting at the anchor. Rows step by
// sign(Height), and columns within a row step by sign(Width). Exactly Area()
// points are yielded.
func (r Region) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		sx, sy := sign(r.Width), sign(r.Height)
		w, h := abs(r.Width), abs(r.Height)
		for j := 0; j < h; j++ {
			for i := 0; i < w; i++ {
				if !yield(Point{X: r.X + i*sx, Y: r.Y + j*sy}) {
					return
				}
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
