// Package world provides deterministic map generation on top of tile grids.
package world

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tilegrid/internal/grid"
	"github.com/samdwyer/tilegrid/internal/telemetry"
	"github.com/samdwyer/tilegrid/internal/tile"
	"github.com/samdwyer/tilegrid/internal/tileset"
)

const (
	// Default map dimensions
	DefaultWidth  = 80
	DefaultHeight = 24

	// BSP parameters
	minRoomSize = 6  // Minimum room interior dimension
	maxRoomSize = 14 // Maximum room interior dimension
	minLeafSize = 10 // Minimum BSP leaf size before stopping split
)

// Brushes are the tiles the generator draws with.
type Brushes struct {
	Floor  []tile.Tile // Seeded variants for room and corridor floors
	Wall   []tile.Tile // Solid rock
	Water  []tile.Tile
	Corner tile.Tile // Top-left room corner
	Edge   tile.Tile // Top room edge
}

// BrushesFrom reads the generator brushes from a tileset.
func BrushesFrom(ts *tileset.Tileset) (Brushes, error) {
	var b Brushes
	var err error

	if b.Floor, err = ts.Brush("floor"); err != nil {
		return b, err
	}
	if b.Wall, err = ts.Brush("wall"); err != nil {
		return b, err
	}
	if b.Water, err = ts.Brush("water"); err != nil {
		return b, err
	}

	corner, edge := ts.GetByName("wall_corner"), ts.GetByName("wall_edge")
	if corner == nil || edge == nil {
		return b, fmt.Errorf("tileset %s has no wall_corner/wall_edge tiles", ts.Name())
	}
	b.Corner, b.Edge = corner.Tile(), edge.Tile()
	return b, nil
}

// Dungeon is a generated room-and-corridor map drawn into a grid.
type Dungeon struct {
	Width   int
	Height  int
	Grid    *grid.TileGrid
	Rooms   []grid.Region // Room interiors
	brushes Brushes
	rng     *rand.Rand
}

// NewDungeon creates a dungeon whose grid is filled with wall.
func NewDungeon(width, height int, brushes Brushes, rng *rand.Rand) *Dungeon {
	g := grid.New(width, height)
	width, height = g.Size()

	return &Dungeon{
		Width:   width,
		Height:  height,
		Grid:    g,
		Rooms:   make([]grid.Region, 0),
		brushes: brushes,
		rng:     rng,
	}
}

// Generate lays out the dungeon using BSP. The result depends only on the
// rng state, so equal seeds give equal maps.
func (d *Dungeon) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()

	d.Grid.SetSeed(grid.Seed{Base: d.rng.Uint64()})
	d.Grid.Fill(nil, d.brushes.Wall...)

	root := &bspNode{
		x:      1,
		y:      1,
		width:  d.Width - 2,
		height: d.Height - 2,
	}

	d.splitNode(root)
	d.createRooms(root)
	d.connectRooms(root)
	pond := d.addPond()

	span.SetAttributes(
		attribute.String("grid.id", d.Grid.ID().String()),
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int("dungeon.pond_room", pond),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// IsPassable returns true if the given position holds a floor tile.
func (d *Dungeon) IsPassable(x, y int) bool {
	id := d.Grid.TileAt(grid.Pt(x, y)).ID
	return slices.ContainsFunc(d.brushes.Floor, func(t tile.Tile) bool { return t.ID == id })
}

// RoomIndexAt returns the index of the room containing the position, or -1 if not in a room.
func (d *Dungeon) RoomIndexAt(x, y int) int {
	for i, room := range d.Rooms {
		if room.Contains(grid.Pt(x, y)) {
			return i
		}
	}
	return -1
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *grid.Region
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func (d *Dungeon) splitNode(node *bspNode) {
	if node.width < minLeafSize*2 && node.height < minLeafSize*2 {
		return
	}

	var splitHorizontally bool
	if node.width > node.height && node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else if node.height >= minLeafSize*2 {
		splitHorizontally = true
	} else if node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else {
		return
	}

	extent := node.width
	if splitHorizontally {
		extent = node.height
	}
	lo, hi := minLeafSize, extent-minLeafSize
	if hi <= lo {
		return
	}
	splitPos := lo + d.rng.Intn(hi-lo+1)

	if splitHorizontally {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height}
	}

	d.splitNode(node.left)
	d.splitNode(node.right)
}

// createRooms places a framed room in every leaf large enough to hold one.
func (d *Dungeon) createRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		d.createRooms(node.left)
		d.createRooms(node.right)
		return
	}

	// Interior plus a one-cell frame must fit inside the leaf.
	maxW, maxH := min(maxRoomSize, node.width-2), min(maxRoomSize, node.height-2)
	if maxW < minRoomSize || maxH < minRoomSize {
		return
	}
	roomWidth := minRoomSize + d.rng.Intn(maxW-minRoomSize+1)
	roomHeight := minRoomSize + d.rng.Intn(maxH-minRoomSize+1)
	roomX := node.x + 1 + d.rng.Intn(node.width-roomWidth-1)
	roomY := node.y + 1 + d.rng.Intn(node.height-roomHeight-1)

	room := grid.Rect(roomX, roomY, roomWidth, roomHeight)
	node.room = &room
	d.Rooms = append(d.Rooms, room)

	frame := grid.Rect(roomX-1, roomY-1, roomWidth+2, roomHeight+2)
	d.Grid.SetBox(frame, d.brushes.Floor[0], d.brushes.Corner, d.brushes.Edge, nil)
	d.Grid.SetArea(room, nil, d.brushes.Floor...)
}

// connectRooms joins sibling subtrees with L-shaped corridors.
func (d *Dungeon) connectRooms(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}

	d.connectRooms(node.left)
	d.connectRooms(node.right)

	leftRoom := d.getRoom(node.left)
	rightRoom := d.getRoom(node.right)
	if leftRoom != nil && rightRoom != nil {
		d.carveCorridor(*leftRoom, *rightRoom)
	}
}

// getRoom returns a room from a subtree (any room will do).
func (d *Dungeon) getRoom(node *bspNode) *grid.Region {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := d.getRoom(node.left); room != nil {
		return room
	}
	return d.getRoom(node.right)
}

// carveCorridor draws two floor lines between room centers, keeping the
// outer map border intact.
func (d *Dungeon) carveCorridor(room1, room2 grid.Region) {
	a, b := room1.Center(), room2.Center()
	inner := grid.Rect(1, 1, d.Width-2, d.Height-2)

	bend := grid.Pt(b.X, a.Y)
	if d.rng.Intn(2) == 1 {
		bend = grid.Pt(a.X, b.Y)
	}
	d.Grid.SetLine(a, bend, &inner, d.brushes.Floor...)
	d.Grid.SetLine(bend, b, &inner, d.brushes.Floor...)
}

// addPond floods a filled ellipse of water into one room, clipped to its
// interior, and returns the room index or -1.
func (d *Dungeon) addPond() int {
	if len(d.Rooms) == 0 || len(d.brushes.Water) == 0 {
		return -1
	}
	i := d.rng.Intn(len(d.Rooms))
	room := d.Rooms[i]

	radius := grid.Pt(room.Width/4, room.Height/4)
	d.Grid.SetEllipse(room.Center(), radius, true, &room, d.brushes.Water...)
	return i
}
