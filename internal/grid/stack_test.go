package grid

import (
	"errors"
	"testing"
)

func TestStackSharedView(t *testing.T) {
	s := NewStack(20, 10, 3)
	s.SetView(Rect(2, 3, 5, 4))

	for i, g := range s.Layers() {
		if g.View() != s.View() {
			t.Errorf("layer %d view = %+v, want %+v", i, g.View(), s.View())
		}
	}

	// A view set directly on a layer is overridden on the next read.
	s.Layer(1).SetView(Rect(0, 0, 1, 1))
	if got := s.Layer(1).View(); got != s.View() {
		t.Errorf("Layer(1) view = %+v, want shared view", got)
	}
}

func TestStackTilesAt(t *testing.T) {
	s := NewStack(4, 4, 2)
	s.Layer(0).Fill(nil, grass)
	s.Layer(1).SetTile(Pt(1, 1), stone, nil)

	got := s.TilesAt(Pt(1, 1))
	if len(got) != 2 || got[0] != grass || got[1] != stone {
		t.Errorf("TilesAt(1,1) = %+v", got)
	}
	got = s.TilesAt(Pt(0, 0))
	if got[0] != grass || !got[1].IsEmpty() {
		t.Errorf("TilesAt(0,0) = %+v", got)
	}
}

func TestStackAddLayer(t *testing.T) {
	s := NewStack(4, 4, 0)
	if err := s.AddLayer(New(4, 4)); err != nil {
		t.Fatalf("AddLayer same size: %v", err)
	}

	err := s.AddLayer(New(5, 4))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("AddLayer wrong size error = %v, want ErrSizeMismatch", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if s.Layer(5) != nil {
		t.Error("Layer(5) should be nil")
	}
}

func TestStackBulkOperations(t *testing.T) {
	s := NewStack(3, 3, 2)
	for _, g := range s.Layers() {
		g.Fill(nil, grass)
	}
	s.Flush()
	for i, g := range s.Layers() {
		if countID(g, 0) != 9 {
			t.Errorf("layer %d not flushed", i)
		}
	}

	s.ConfigureText(100, "xy")
	for i, g := range s.Layers() {
		if id, _ := g.SymbolID('y'); id != 101 {
			t.Errorf("layer %d SymbolID('y') = %d, want 101", i, id)
		}
	}

	s.SetSeed(Seed{Base: 11})
	for i, g := range s.Layers() {
		if g.Config().Seed.Base != 11 {
			t.Errorf("layer %d seed not set", i)
		}
	}
}

func TestStackViewClamp(t *testing.T) {
	s := NewStack(4, 4, 0)
	s.SetView(Rect(3, 3, 0, -2))
	if v := s.View(); v.Width != 1 || v.Height != 2 || v.Y != 2 {
		t.Errorf("empty stack view = %+v", v)
	}
}
