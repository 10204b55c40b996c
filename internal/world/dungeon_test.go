package world

import (
	"context"
	"math/rand"
	"testing"

	"github.com/samdwyer/tilegrid/internal/grid"
	"github.com/samdwyer/tilegrid/internal/tileset"
)

func testBrushes(t *testing.T) Brushes {
	t.Helper()
	b, err := BrushesFrom(tileset.MustLoadDefault())
	if err != nil {
		t.Fatalf("BrushesFrom: %v", err)
	}
	return b
}

func TestDungeonReproducibility(t *testing.T) {
	seed := int64(12345)
	brushes := testBrushes(t)

	d1 := NewDungeon(DefaultWidth, DefaultHeight, brushes, rand.New(rand.NewSource(seed)))
	d2 := NewDungeon(DefaultWidth, DefaultHeight, brushes, rand.New(rand.NewSource(seed)))

	ctx := context.Background()
	d1.Generate(ctx)
	d2.Generate(ctx)

	if len(d1.Rooms) != len(d2.Rooms) {
		t.Fatalf("Room count mismatch: %d != %d", len(d1.Rooms), len(d2.Rooms))
	}
	for i := range d1.Rooms {
		if d1.Rooms[i] != d2.Rooms[i] {
			t.Errorf("Room %d mismatch: %+v != %+v", i, d1.Rooms[i], d2.Rooms[i])
		}
	}

	b1, b2 := d1.Grid.Bundle(), d2.Grid.Bundle()
	for i := range b1 {
		if b1[i] != b2[i] {
			t.Fatalf("Tile mismatch at index %d: %x != %x", i, b1[i], b2[i])
		}
	}
}

func TestDungeonDifferentSeeds(t *testing.T) {
	brushes := testBrushes(t)
	d1 := NewDungeon(DefaultWidth, DefaultHeight, brushes, rand.New(rand.NewSource(12345)))
	d2 := NewDungeon(DefaultWidth, DefaultHeight, brushes, rand.New(rand.NewSource(54321)))

	ctx := context.Background()
	d1.Generate(ctx)
	d2.Generate(ctx)

	identical := len(d1.Rooms) == len(d2.Rooms)
	for i := 0; identical && i < len(d1.Rooms); i++ {
		if d1.Rooms[i] != d2.Rooms[i] {
			identical = false
		}
	}
	if identical {
		t.Error("Dungeons with different seeds should not be identical")
	}
}

func TestDungeonRoomsAreFramedAndPassable(t *testing.T) {
	brushes := testBrushes(t)
	d := NewDungeon(DefaultWidth, DefaultHeight, brushes, rand.New(rand.NewSource(7)))
	d.Generate(context.Background())

	if len(d.Rooms) == 0 {
		t.Fatal("no rooms generated")
	}

	for i, room := range d.Rooms {
		// The frame's top-left corner is either the corner tile or a corridor.
		tl := d.Grid.TileAt(grid.Pt(room.X-1, room.Y-1))
		if tl != brushes.Corner && !d.IsPassable(room.X-1, room.Y-1) {
			t.Errorf("room %d top-left frame = %+v", i, tl)
		}

		c := room.Center()
		if got := d.RoomIndexAt(c.X, c.Y); got != i {
			t.Errorf("RoomIndexAt(center of room %d) = %d", i, got)
		}
	}

	// The map border is never carved.
	for x := 0; x < d.Width; x++ {
		if d.IsPassable(x, 0) || d.IsPassable(x, d.Height-1) {
			t.Fatalf("border carved at column %d", x)
		}
	}
}

func TestDungeonRoomsConnected(t *testing.T) {
	brushes := testBrushes(t)
	d := NewDungeon(DefaultWidth, DefaultHeight, brushes, rand.New(rand.NewSource(99)))
	d.Generate(context.Background())

	// Walk passable cells from the first room's corner; water may block a
	// center, so start from a floor cell guaranteed by the frame layout.
	start := grid.Pt(d.Rooms[0].X, d.Rooms[0].Y)
	if !d.IsPassable(start.X, start.Y) {
		t.Skip("first room corner is not floor")
	}

	seen := map[grid.Point]bool{start: true}
	queue := []grid.Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, n := range []grid.Point{{X: p.X + 1, Y: p.Y}, {X: p.X - 1, Y: p.Y}, {X: p.X, Y: p.Y + 1}, {X: p.X, Y: p.Y - 1}} {
			if !seen[n] && d.IsPassable(n.X, n.Y) {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}

	reached := 0
	for _, room := range d.Rooms {
		for p := range room.Points() {
			if seen[p] {
				reached++
				break
			}
		}
	}
	if reached != len(d.Rooms) {
		t.Errorf("reached %d of %d rooms", reached, len(d.Rooms))
	}
}
