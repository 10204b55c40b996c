// Package grid provides the tile grid, its drawing operations, auto-tiling
// rules and layered grid stacks.
//
// A TileGrid is a single-owner data structure: all operations are
// synchronous and must not be called concurrently on the same grid.
// Coordinates outside the grid are ignored on write and read back as the
// empty tile, so shapes may be drawn partially off-grid.
package grid

import (
	"maps"

	"github.com/google/uuid"

	"github.com/samdwyer/tilegrid/internal/tile"
)

// Config is the per-grid configuration consulted by every write.
type Config struct {
	Seed Seed
	// Mask, when set, restricts every write in addition to any per-call mask.
	Mask *Region
}

// TileGrid is a fixed-size dense grid of tiles.
type TileGrid struct {
	id      uuid.UUID
	width   int
	height  int
	tiles   []tile.Tile // row-major
	view    Region
	cfg     Config
	symbols map[rune]int
	rules   *RuleSet

	// Derived caches, rebuilt lazily after any mutation.
	dirty  bool
	bundle []uint64
	ids    []int
}

// New creates an empty grid. Dimensions below 1 are clamped to 1.
func New(width, height int) *TileGrid {
	width = max(width, 1)
	height = max(height, 1)

	g := &TileGrid{
		id:      uuid.New(),
		width:   width,
		height:  height,
		tiles:   make([]tile.Tile, width*height),
		view:    Rect(0, 0, width, height),
		symbols: make(map[rune]int),
		dirty:   true,
	}
	g.ResetText()
	return g
}

// FromTiles creates a grid holding a deep copy of rows, indexed [y][x].
// The width is the longest row; shorter rows are padded with empty tiles.
func FromTiles(rows [][]tile.Tile) *TileGrid {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	g := New(width, len(rows))
	for y, row := range rows {
		copy(g.tiles[y*g.width:], row)
	}
	return g
}

// ID returns the grid's instance id.
func (g *TileGrid) ID() uuid.UUID {
	return g.id
}

// Size returns the grid dimensions.
func (g *TileGrid) Size() (width, height int) {
	return g.width, g.height
}

// Bounds returns the whole grid as a region.
func (g *TileGrid) Bounds() Region {
	return Rect(0, 0, g.width, g.height)
}

// View returns the currently exposed sub-rectangle.
func (g *TileGrid) View() Region {
	return g.view
}

// SetView sets the exposed sub-rectangle. Each extent is clamped to at least 1.
func (g *TileGrid) SetView(r Region) {
	g.view = clampView(r)
}

func clampView(r Region) Region {
	r = r.Canon()
	r.Width = max(r.Width, 1)
	r.Height = max(r.Height, 1)
	return r
}

// Config returns the grid configuration.
func (g *TileGrid) Config() Config {
	return g.cfg
}

// SetConfig replaces the grid configuration.
func (g *TileGrid) SetConfig(c Config) {
	g.cfg = c
}

// SetSeed replaces the seed state used for candidate selection.
func (g *TileGrid) SetSeed(s Seed) {
	g.cfg.Seed = s
}

// TileAt returns the tile at p, or the empty tile if p is outside the grid.
func (g *TileGrid) TileAt(p Point) tile.Tile {
	if !g.inBounds(p) {
		return tile.Tile{}
	}
	return g.tiles[p.Y*g.width+p.X]
}

// TilesIn returns a copy of the tiles covered by r, indexed [row][column] in
// the region's scan order. Negative extents therefore yield mirrored blocks.
func (g *TileGrid) TilesIn(r Region) [][]tile.Tile {
	w, h := abs(r.Width), abs(r.Height)
	sx, sy := sign(r.Width), sign(r.Height)

	block := make([][]tile.Tile, h)
	for j := range block {
		block[j] = make([]tile.Tile, w)
		for i := range block[j] {
			block[j][i] = g.TileAt(Point{X: r.X + i*sx, Y: r.Y + j*sy})
		}
	}
	return block
}

// MaxID is the largest tile id Pack can encode. Larger ids lose their high
// bits in Bundle and Unpack; the grid itself stores them unchanged.
const MaxID = 1<<29 - 1

// Pack encodes a tile as id<<35 | pose<<32 | tint. Ids above MaxID do not
// round-trip.
func Pack(t tile.Tile) uint64 {
	return uint64(t.ID)<<35 | uint64(t.Pose&7)<<32 | uint64(t.Tint)
}

// Unpack decodes a value produced by Pack.
func Unpack(v uint64) tile.Tile {
	return tile.Tile{
		ID:   int(v >> 35),
		Tint: tile.Color(uint32(v)),
		Pose: tile.Orientation((v >> 32) & 7),
	}
}

// Bundle returns the packed per-cell state (see Pack and MaxID), row-major. The slice
// is owned by the grid and must not be modified; it stays valid until the
// next mutation.
func (g *TileGrid) Bundle() []uint64 {
	g.rebuild()
	return g.bundle
}

// IDs returns the per-cell tile ids, row-major. The same ownership rules as
// Bundle apply.
func (g *TileGrid) IDs() []int {
	g.rebuild()
	return g.ids
}

func (g *TileGrid) rebuild() {
	if !g.dirty {
		return
	}
	if g.bundle == nil {
		g.bundle = make([]uint64, len(g.tiles))
		g.ids = make([]int, len(g.tiles))
	}
	for i, t := range g.tiles {
		g.bundle[i] = Pack(t)
		g.ids[i] = t.ID
	}
	g.dirty = false
}

func (g *TileGrid) invalidate() {
	g.dirty = true
}

func (g *TileGrid) inBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// writable is the single gate every write passes through.
func (g *TileGrid) writable(p Point, mask *Region) bool {
	if !g.inBounds(p) {
		return false
	}
	if mask != nil && !mask.Contains(p) {
		return false
	}
	if g.cfg.Mask != nil && !g.cfg.Mask.Contains(p) {
		return false
	}
	return true
}

func (g *TileGrid) put(p Point, t tile.Tile, mask *Region) bool {
	if !g.writable(p, mask) {
		return false
	}
	g.tiles[p.Y*g.width+p.X] = t
	g.invalidate()
	return true
}

// putSeeded writes one seeded candidate pick at p.
func (g *TileGrid) putSeeded(p Point, mask *Region, candidates []tile.Tile) bool {
	if !g.writable(p, mask) {
		return false
	}
	return g.put(p, g.cfg.Seed.Pick(p.X, p.Y, candidates), mask)
}

// SetTile writes t at p. Out-of-bounds or masked cells are silently skipped.
func (g *TileGrid) SetTile(p Point, t tile.Tile, mask *Region) {
	g.put(p, t, mask)
}

// Flush clears every cell to the empty tile.
func (g *TileGrid) Flush() {
	clear(g.tiles)
	g.invalidate()
}

// Fill writes a seeded candidate pick into every cell allowed by mask.
// With no candidates Fill behaves as Flush.
func (g *TileGrid) Fill(mask *Region, candidates ...tile.Tile) int {
	if len(candidates) == 0 {
		g.Flush()
		return 0
	}

	written := 0
	for p := range g.Bounds().Points() {
		if g.putSeeded(p, mask, candidates) {
			written++
		}
	}
	return written
}

// SetArea writes a seeded candidate pick into every cell of region. A
// non-zero region tint overrides the candidates' tint.
func (g *TileGrid) SetArea(region Region, mask *Region, candidates ...tile.Tile) int {
	if len(candidates) == 0 {
		return 0
	}
	if region.Tint != 0 {
		tinted := make([]tile.Tile, len(candidates))
		for i, c := range candidates {
			tinted[i] = c.WithTint(region.Tint)
		}
		candidates = tinted
	}

	written := 0
	for p := range region.Points() {
		if g.putSeeded(p, mask, candidates) {
			written++
		}
	}
	return written
}

// SetGroup blits block, indexed [row][column], with its first cell at origin.
func (g *TileGrid) SetGroup(origin Point, block [][]tile.Tile, mask *Region) {
	for j, row := range block {
		for i, t := range row {
			g.put(Point{X: origin.X + i, Y: origin.Y + j}, t, mask)
		}
	}
}

// Replace rewrites the cells of region whose id equals targetID, each with an
// independent seeded pick. Cells are visited in the region's scan order.
func (g *TileGrid) Replace(region Region, targetID int, mask *Region, candidates ...tile.Tile) int {
	if len(candidates) == 0 {
		return 0
	}

	written := 0
	for p := range region.Points() {
		if !g.inBounds(p) || g.TileAt(p).ID != targetID {
			continue
		}
		if g.putSeeded(p, mask, candidates) {
			written++
		}
	}
	return written
}

// Clone returns a deep copy of the grid with a new instance id.
func (g *TileGrid) Clone() *TileGrid {
	c := &TileGrid{
		id:      uuid.New(),
		width:   g.width,
		height:  g.height,
		tiles:   append([]tile.Tile(nil), g.tiles...),
		view:    g.view,
		cfg:     g.cfg,
		symbols: maps.Clone(g.symbols),
		dirty:   true,
	}
	if g.cfg.Mask != nil {
		m := *g.cfg.Mask
		c.cfg.Mask = &m
	}
	if g.rules != nil {
		c.rules = g.rules.clone()
	}
	return c
}

// ExtractView returns a new grid sized to the view and holding its tiles.
// The seed offsets are shifted by the view anchor so seeded picks made in
// the extracted grid match the ones the source grid would make.
func (g *TileGrid) ExtractView() *TileGrid {
	v := g.view.Canon()

	out := New(v.Width, v.Height)
	for j := 0; j < v.Height; j++ {
		for i := 0; i < v.Width; i++ {
			out.tiles[j*out.width+i] = g.TileAt(Point{X: v.X + i, Y: v.Y + j})
		}
	}

	out.cfg.Seed = g.cfg.Seed
	out.cfg.Seed.OffsetX += v.X
	out.cfg.Seed.OffsetY += v.Y
	out.symbols = maps.Clone(g.symbols)
	return out
}
