package editor

import (
	"context"
	"strings"
	"testing"

	"github.com/samdwyer/tilegrid/internal/grid"
	"github.com/samdwyer/tilegrid/internal/telemetry"
	"github.com/samdwyer/tilegrid/internal/tileset"
)

func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed

	s, err := NewSession(context.Background(), cfg, tileset.MustLoadDefault(), telemetry.NoopTracer())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// selectTool advances the session to the given tool.
func selectTool(s *Session, tool Tool) {
	for s.Tool() != tool {
		s.NextTool()
	}
}

func TestSessionGenerationIsReproducible(t *testing.T) {
	a := newTestSession(t, 42)
	b := newTestSession(t, 42)

	if a.Stack().Len() != 3 {
		t.Fatalf("layers = %d, want 3", a.Stack().Len())
	}
	ba, bb := a.Stack().Layer(LayerTerrain).Bundle(), b.Stack().Layer(LayerTerrain).Bundle()
	for i := range ba {
		if ba[i] != bb[i] {
			t.Fatalf("terrain differs at %d", i)
		}
	}
	if a.Cursor() != b.Cursor() {
		t.Errorf("cursor %v != %v", a.Cursor(), b.Cursor())
	}

	overlay := a.Stack().Layer(a.Stack().Len() - 1)
	if got := overlay.TileAt(grid.Pt(2, 0)).ID; got != 'T' {
		t.Errorf("title first letter = %d, want 'T'", got)
	}
}

func TestPaintAndUndo(t *testing.T) {
	s := newTestSession(t, 7)
	ctx := context.Background()
	terrain := s.Stack().Layer(LayerTerrain)
	before := terrain.TileAt(s.Cursor())

	s.NextBrush() // wall
	if err := s.Apply(ctx); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := terrain.TileAt(s.Cursor()).ID; got != 259 {
		t.Errorf("painted id = %d, want 259", got)
	}

	if !s.Undo() {
		t.Fatal("Undo returned false")
	}
	if got := terrain.TileAt(s.Cursor()); got != before {
		t.Errorf("after undo = %+v, want %+v", got, before)
	}
	if s.Undo() {
		t.Error("second Undo should have nothing to revert")
	}
}

func TestLineToolUsesAnchor(t *testing.T) {
	s := newTestSession(t, 7)
	ctx := context.Background()
	terrain := s.Stack().Layer(LayerTerrain)

	selectTool(s, ToolLine)
	s.NextBrush() // wall
	start := s.Cursor()

	if err := s.Apply(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(s.Message(), "anchor") {
		t.Errorf("first Apply message = %q, want anchor", s.Message())
	}
	s.Move(3, 0)
	if err := s.Apply(ctx); err != nil {
		t.Fatal(err)
	}

	for x := start.X; x <= start.X+3; x++ {
		if got := terrain.TileAt(grid.Pt(x, start.Y)).ID; got != 259 {
			t.Errorf("(%d,%d) = %d, want wall", x, start.Y, got)
		}
	}
}

func TestTextToolPlacesLabel(t *testing.T) {
	s := newTestSession(t, 3)
	selectTool(s, ToolText)

	if err := s.Apply(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !s.Typing() {
		t.Fatal("text tool should start typing")
	}
	for _, r := range "Hix" {
		s.TypeRune(r)
	}
	s.Backspace()
	s.CommitText()

	overlay := s.Stack().Layer(s.Stack().Len() - 1)
	c := s.Cursor()
	if overlay.TileAt(c).ID != 'H' || overlay.TileAt(grid.Pt(c.X+1, c.Y)).ID != 'i' {
		t.Errorf("label not placed at cursor")
	}
	if !overlay.TileAt(grid.Pt(c.X+2, c.Y)).IsEmpty() {
		t.Error("backspaced rune was placed")
	}

	s.Undo()
	if !overlay.TileAt(c).IsEmpty() {
		t.Error("undo did not remove label")
	}
}

func TestMoveClampsAndViewFollows(t *testing.T) {
	s := newTestSession(t, 5)
	s.Resize(10, 5)

	v := s.Stack().View()
	if v.Width != 10 || v.Height != 5 {
		t.Fatalf("view = %+v", v)
	}
	if !v.Contains(s.Cursor()) {
		t.Errorf("cursor %v outside view %+v", s.Cursor(), v)
	}

	s.Move(-1000, -1000)
	if s.Cursor() != grid.Pt(0, 0) {
		t.Errorf("cursor = %v, want 0,0", s.Cursor())
	}
	if v := s.Stack().View(); v.X != 0 || v.Y != 0 {
		t.Errorf("view did not follow: %+v", v)
	}

	s.Move(1000, 1000)
	w, h := s.Stack().Size()
	if s.Cursor() != grid.Pt(w-1, h-1) {
		t.Errorf("cursor = %v, want %d,%d", s.Cursor(), w-1, h-1)
	}
	if v := s.Stack().View(); v.X != w-10 || v.Y != h-5 {
		t.Errorf("view = %+v at bottom-right", v)
	}
}

func TestSpanRegion(t *testing.T) {
	tests := []struct {
		a, b grid.Point
		want grid.Region
	}{
		{grid.Pt(2, 2), grid.Pt(5, 4), grid.Rect(2, 2, 4, 3)},
		{grid.Pt(5, 4), grid.Pt(2, 2), grid.Rect(5, 4, -4, -3)},
		{grid.Pt(3, 3), grid.Pt(3, 3), grid.Rect(3, 3, 1, 1)},
	}
	for _, tt := range tests {
		if got := spanRegion(tt.a, tt.b); got != tt.want {
			t.Errorf("spanRegion(%v,%v) = %+v, want %+v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAutoTileIsUndoable(t *testing.T) {
	s := newTestSession(t, 11)
	terrain := s.Stack().Layer(LayerTerrain)
	before := append([]uint64(nil), terrain.Bundle()...)

	s.AutoTile(context.Background())
	s.Undo()

	after := terrain.Bundle()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("cell %d not restored", i)
		}
	}
}

func TestToolCycle(t *testing.T) {
	tool := ToolPaint
	for i := 0; i < int(toolCount); i++ {
		tool = tool.Next()
	}
	if tool != ToolPaint {
		t.Errorf("tool cycle ended at %v", tool)
	}
	if !ToolBox.needsAnchor() || ToolFlood.needsAnchor() {
		t.Error("needsAnchor misclassifies tools")
	}
}

func TestHistoryIsBounded(t *testing.T) {
	g := grid.New(2, 2)
	stack := grid.NewStack(2, 2, 0)
	if err := stack.AddLayer(g); err != nil {
		t.Fatal(err)
	}

	var h History
	for i := 0; i < maxHistory+10; i++ {
		h.Record(0, g, g.Bounds())
	}
	if h.Len() != maxHistory {
		t.Errorf("Len() = %d, want %d", h.Len(), maxHistory)
	}
	if !h.Undo(stack) {
		t.Error("Undo failed")
	}
}
