package editor

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/tilegrid/internal/grid"
	"github.com/samdwyer/tilegrid/internal/tile"
	"github.com/samdwyer/tilegrid/internal/tileset"
	"github.com/samdwyer/tilegrid/internal/world"
)

// LayerTerrain is the layer drawing tools write to.
const LayerTerrain = 0

// textTag delimits inline color tags in typed labels, e.g. "#FF0000#Danger".
const textTag = '#'

// brushNames are the tileset brushes the editor cycles through.
var brushNames = []string{"floor", "wall", "water", "grass", "door"}

// Session is the editing state of one map. It owns its grids and is driven
// from a single goroutine.
type Session struct {
	ID uuid.UUID

	cfg     Config
	tiles   *tileset.Tileset
	tracer  trace.Tracer
	stack   *grid.Stack
	dungeon *world.Dungeon
	history History

	cursor grid.Point
	anchor *grid.Point
	tool   Tool
	brush  int
	filled bool
	exact  bool

	typing bool
	text   []rune

	message string
}

// NewSession generates a map from cfg and returns a session editing it.
func NewSession(ctx context.Context, cfg Config, ts *tileset.Tileset, tracer trace.Tracer) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		ID:     uuid.New(),
		cfg:    cfg,
		tiles:  ts,
		tracer: tracer,
		filled: true,
	}
	if err := s.generate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// generate builds the layer stack from a fresh dungeon.
func (s *Session) generate(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "editor.init")
	defer span.End()

	brushes, err := world.BrushesFrom(s.tiles)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("tileset %s: %w", s.tiles.Name(), err)
	}

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	d := world.NewDungeon(s.cfg.Width, s.cfg.Height, brushes, rand.New(rand.NewSource(seed)))
	d.Generate(ctx)

	stack := grid.NewStack(d.Width, d.Height, 0)
	if err := stack.AddLayer(d.Grid); err != nil {
		span.RecordError(err)
		return err
	}
	for stack.Len() < s.cfg.Layers {
		stack.NewLayer()
	}

	names := s.tiles.RuleSetNames()
	slices.Sort(names)
	for _, name := range names {
		if err := s.tiles.BuildRules(name, d.Grid.Rules()); err != nil {
			span.RecordError(err)
			return err
		}
	}
	autotiled := d.Grid.ApplyRules(nil, nil)

	overlay := stack.Layer(stack.Len() - 1)
	overlay.SetText(grid.Pt(2, 0), "#FFD700#TILEGRID", tile.White, textTag, nil)

	s.stack = stack
	s.dungeon = d
	s.history = History{}
	s.anchor = nil
	s.cursor = grid.Pt(d.Width/2, d.Height/2)
	if len(d.Rooms) > 0 {
		s.cursor = d.Rooms[0].Center()
	}
	s.follow()

	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.Int64("map.seed", seed),
		attribute.Int("map.rooms", len(d.Rooms)),
		attribute.Int("map.layers", stack.Len()),
		attribute.Int("map.autotiled_cells", autotiled),
	)
	return nil
}

// Regenerate replaces the map with a new one built from seed.
func (s *Session) Regenerate(ctx context.Context, seed int64) error {
	s.cfg.Seed = seed
	return s.generate(ctx)
}

// Stack returns the layers being edited.
func (s *Session) Stack() *grid.Stack { return s.stack }

// Cursor returns the cursor position in map coordinates.
func (s *Session) Cursor() grid.Point { return s.cursor }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// Typing returns true while a text label is being entered.
func (s *Session) Typing() bool { return s.typing }

// Message returns the last status message.
func (s *Session) Message() string { return s.message }

// NextTool switches to the following tool and drops any pending anchor.
func (s *Session) NextTool() {
	s.tool = s.tool.Next()
	s.anchor = nil
	s.message = ""
}

// NextBrush switches to the following brush.
func (s *Session) NextBrush() {
	s.brush = (s.brush + 1) % len(brushNames)
}

// ToggleFilled switches ellipses between outline and filled.
func (s *Session) ToggleFilled() {
	s.filled = !s.filled
}

// ToggleExact switches flood matching between id-only and exact tiles.
func (s *Session) ToggleExact() {
	s.exact = !s.exact
}

// Cancel drops a pending anchor or text entry.
func (s *Session) Cancel() {
	s.anchor = nil
	s.typing = false
	s.text = s.text[:0]
	s.message = ""
}

// Move shifts the cursor, keeping it on the map, and scrolls the view.
func (s *Session) Move(dx, dy int) {
	w, h := s.stack.Size()
	s.cursor.X = min(max(s.cursor.X+dx, 0), w-1)
	s.cursor.Y = min(max(s.cursor.Y+dy, 0), h-1)
	s.follow()
}

// Resize sets the view to the given screen size.
func (s *Session) Resize(width, height int) {
	w, h := s.stack.Size()
	v := s.stack.View()
	v.Width, v.Height = min(width, w), min(height, h)
	s.stack.SetView(v)
	s.follow()
}

// follow scrolls the view so the cursor stays visible.
func (s *Session) follow() {
	w, h := s.stack.Size()
	v := s.stack.View()

	if s.cursor.X < v.X {
		v.X = s.cursor.X
	} else if s.cursor.X >= v.X+v.Width {
		v.X = s.cursor.X - v.Width + 1
	}
	if s.cursor.Y < v.Y {
		v.Y = s.cursor.Y
	} else if s.cursor.Y >= v.Y+v.Height {
		v.Y = s.cursor.Y - v.Height + 1
	}
	v.X = min(max(v.X, 0), max(w-v.Width, 0))
	v.Y = min(max(v.Y, 0), max(h-v.Height, 0))
	s.stack.SetView(v)
}

func (s *Session) terrain() *grid.TileGrid {
	return s.stack.Layer(LayerTerrain)
}

func (s *Session) overlay() (int, *grid.TileGrid) {
	i := s.stack.Len() - 1
	return i, s.stack.Layer(i)
}

// ErrNoBrush is returned when the tileset lacks the selected brush.
var ErrNoBrush = errors.New("brush not available")

func (s *Session) currentBrush() (string, []tile.Tile, error) {
	name := brushNames[s.brush]
	b, err := s.tiles.Brush(name)
	if err != nil {
		return name, nil, fmt.Errorf("%w: %w", ErrNoBrush, err)
	}
	return name, b, nil
}

// Apply uses the active tool at the cursor. Two-point tools set the anchor
// on the first call and draw on the second.
func (s *Session) Apply(ctx context.Context) error {
	if s.tool == ToolText {
		s.typing = true
		s.text = s.text[:0]
		s.message = "type a label, enter to place"
		return nil
	}
	if s.tool.needsAnchor() && s.anchor == nil {
		a := s.cursor
		s.anchor = &a
		s.message = fmt.Sprintf("anchor at %d,%d", a.X, a.Y)
		return nil
	}

	_, span := s.tracer.Start(ctx, "editor.apply_tool")
	defer span.End()

	name, brush, err := s.currentBrush()
	if err != nil {
		span.RecordError(err)
		s.message = err.Error()
		return err
	}

	var corner, edge *tileset.TileDef
	if s.tool == ToolBox {
		corner, edge = s.tiles.GetByName("wall_corner"), s.tiles.GetByName("wall_edge")
		if corner == nil || edge == nil {
			err := fmt.Errorf("%w: tileset has no wall_corner/wall_edge", ErrNoBrush)
			span.RecordError(err)
			s.message = err.Error()
			return err
		}
	}

	g := s.terrain()
	s.history.Record(LayerTerrain, g, g.Bounds())

	cells := 0
	switch s.tool {
	case ToolPaint:
		cells = g.SetArea(grid.Rect(s.cursor.X, s.cursor.Y, 1, 1), nil, brush...)
	case ToolLine:
		g.SetLine(*s.anchor, s.cursor, nil, brush...)
	case ToolBox:
		g.SetBox(spanRegion(*s.anchor, s.cursor), brush[0], corner.Tile(), edge.Tile(), nil)
	case ToolEllipse:
		radius := grid.Pt(s.cursor.X-s.anchor.X, s.cursor.Y-s.anchor.Y)
		g.SetEllipse(*s.anchor, radius, s.filled, nil, brush...)
	case ToolFlood:
		cells = g.Flood(s.cursor, s.exact, nil, brush...)
	case ToolReplace:
		target := g.TileAt(s.cursor).ID
		cells = g.Replace(s.stack.View(), target, nil, brush...)
	}
	s.anchor = nil
	s.message = fmt.Sprintf("%s with %s", s.tool, name)

	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.String("editor.tool", s.tool.String()),
		attribute.String("editor.brush", name),
		attribute.Int("editor.cells", cells),
	)
	return nil
}

// spanRegion returns the region with corners a and b, anchored at a. It has
// negative extents when b is left of or above a.
func spanRegion(a, b grid.Point) grid.Region {
	extent := func(from, to int) int {
		switch {
		case to > from:
			return to - from + 1
		case to < from:
			return to - from - 1
		default:
			return 1
		}
	}
	return grid.Rect(a.X, a.Y, extent(a.X, b.X), extent(a.Y, b.Y))
}

// TypeRune appends r to the label being typed.
func (s *Session) TypeRune(r rune) {
	if s.typing {
		s.text = append(s.text, r)
	}
}

// Backspace removes the last typed rune.
func (s *Session) Backspace() {
	if s.typing && len(s.text) > 0 {
		s.text = s.text[:len(s.text)-1]
	}
}

// CommitText places the typed label on the overlay layer at the cursor.
func (s *Session) CommitText() {
	if !s.typing {
		return
	}
	i, g := s.overlay()
	s.history.Record(i, g, g.Bounds())
	g.SetText(s.cursor, string(s.text), tile.White, textTag, nil)
	s.typing = false
	s.message = "label placed"
	s.text = s.text[:0]
}

// AutoTile runs the terrain layer's rules over the whole map.
func (s *Session) AutoTile(ctx context.Context) int {
	_, span := s.tracer.Start(ctx, "editor.autotile")
	defer span.End()

	g := s.terrain()
	s.history.Record(LayerTerrain, g, g.Bounds())
	n := g.ApplyRules(nil, nil)
	s.message = fmt.Sprintf("auto-tiled %d cells", n)

	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.Int("grid.rules", g.Rules().Len()),
		attribute.Int("grid.cells", n),
	)
	return n
}

// Undo reverts the last edit.
func (s *Session) Undo() bool {
	ok := s.history.Undo(s.stack)
	if ok {
		s.message = "undone"
	} else {
		s.message = "nothing to undo"
	}
	return ok
}

// Status returns the status line text.
func (s *Session) Status() string {
	if s.typing {
		return "label: " + string(s.text) + "_"
	}

	mode := ""
	switch s.tool {
	case ToolEllipse:
		mode = " outline"
		if s.filled {
			mode = " filled"
		}
	case ToolFlood:
		mode = " by-id"
		if s.exact {
			mode = " exact"
		}
	}

	room := ""
	if i := s.dungeon.RoomIndexAt(s.cursor.X, s.cursor.Y); i >= 0 {
		room = fmt.Sprintf(" room %d", i)
	}
	return fmt.Sprintf("[%s%s] brush:%s %d,%d%s  %s",
		s.tool, mode, brushNames[s.brush], s.cursor.X, s.cursor.Y, room, s.message)
}
