package grid

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/samdwyer/tilegrid/internal/tile"
)

// Seed holds the deterministic-selection parameters of a grid. The offsets
// shift the coordinate space so a grid extracted from a larger one keeps
// making the same choices.
type Seed struct {
	OffsetX, OffsetY int
	Base             uint64
}

// At returns the avalanche-mixed seed for a cell. It is a pure function of
// the seed state and the coordinates.
func (s Seed) At(x, y int) uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], s.Base)
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(s.OffsetX+x)))
	binary.LittleEndian.PutUint64(buf[16:], uint64(int64(s.OffsetY+y)))
	return xxhash.Sum64(buf[:])
}

// Pick selects one of the candidates for the cell at (x, y).
// It panics if candidates is empty; callers check first.
func (s Seed) Pick(x, y int, candidates []tile.Tile) tile.Tile {
	if len(candidates) == 1 {
		return candidates[0]
	}
	return candidates[s.At(x, y)%uint64(len(candidates))]
}
