// Package tile provides the tile value type and its orientation algebra.
package tile

// Tile is a cell's renderable identity. Tiles are compared with ==.
//
// The zero Tile is the empty tile: it is what out-of-bounds reads return and
// what a flushed grid contains. An ID of 0 is never drawn.
type Tile struct {
	ID   int         // Atlas lookup index, 0 means empty
	Tint Color       // Recolor applied when drawing, White means none
	Pose Orientation // Rotation/mirror state
}

// New returns an untinted tile with the given id in the identity pose.
func New(id int) Tile {
	return Tile{ID: id, Tint: White}
}

// IsEmpty returns true if the tile should not be drawn.
func (t Tile) IsEmpty() bool {
	return t.ID == 0
}

// Rotated returns the tile turned by steps quarter turns clockwise.
func (t Tile) Rotated(steps int) Tile {
	t.Pose = t.Pose.Rotate(steps)
	return t
}

// FlippedH returns the tile mirrored horizontally.
func (t Tile) FlippedH() Tile {
	t.Pose = t.Pose.FlipHorizontal()
	return t
}

// FlippedV returns the tile mirrored vertically.
func (t Tile) FlippedV() Tile {
	t.Pose = t.Pose.FlipVertical()
	return t
}

// WithTint returns a copy of the tile with a different tint.
func (t Tile) WithTint(c Color) Tile {
	t.Tint = c
	return t
}

// WithPose returns a copy of the tile with a different pose.
func (t Tile) WithPose(o Orientation) Tile {
	t.Pose = o
	return t
}
