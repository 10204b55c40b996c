package tileset

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samdwyer/tilegrid/internal/grid"
	"github.com/samdwyer/tilegrid/internal/tile"
)

// DefaultFile is the embedded tileset used when no override is configured.
const DefaultFile = "default.json"

// TileDef defines how a tile id is drawn.
type TileDef struct {
	ID      int    `json:"id"`                // Atlas index used in grids
	Name    string `json:"name"`              // Unique name (e.g., "wall")
	Glyph   string `json:"glyph"`             // Character for the identity pose
	Rotated string `json:"rotated,omitempty"` // Optional glyphs for 0/90/180/270 degrees
	Color   string `json:"color"`             // Hex foreground color, RRGGBB or RRGGBBAA

	fg tile.Color // parsed Color
}

// GlyphRune returns the glyph for the given pose. Rotated glyphs are used
// when defined; mirroring is not representable and falls back to rotation.
func (d *TileDef) GlyphRune(pose tile.Orientation) rune {
	if rot := []rune(d.Rotated); len(rot) == 4 {
		return rot[pose.Degrees()/90]
	}
	if g := []rune(d.Glyph); len(g) > 0 {
		return g[0]
	}
	return '?'
}

// Foreground returns the parsed foreground color. Definitions without a
// valid color draw white.
func (d *TileDef) Foreground() tile.Color {
	if d.fg == 0 {
		return tile.White
	}
	return d.fg
}

// Tile returns an untinted tile for this definition.
func (d *TileDef) Tile() tile.Tile {
	return tile.New(d.ID)
}

// RuleDef defines one auto-tile rule. Pattern holds nine tile ids in
// row-major order; -1 matches any tile.
type RuleDef struct {
	Mode    string `json:"mode"` // "id" or "exact"
	Pattern [9]int `json:"pattern"`
	Replace int    `json:"replace"`
	Pose    string `json:"pose,omitempty"`
}

// File represents the structure of a tileset JSON file.
type File struct {
	Name    string               `json:"name"`
	Tiles   []TileDef            `json:"tiles"`
	Brushes map[string][]int     `json:"brushes"`
	Rules   map[string][]RuleDef `json:"rules"`
}

// Tileset holds loaded tile definitions and provides lookup utilities.
type Tileset struct {
	name    string
	byID    map[int]*TileDef
	byName  map[string]*TileDef
	all     []TileDef
	brushes map[string][]int
	rules   map[string][]RuleDef
}

// New creates a tileset from a parsed file.
func New(f File) *Tileset {
	ts := &Tileset{
		name:    f.Name,
		byID:    make(map[int]*TileDef),
		byName:  make(map[string]*TileDef),
		all:     slices.Clone(f.Tiles),
		brushes: f.Brushes,
		rules:   f.Rules,
	}
	for i := range ts.all {
		if c, err := tile.ParseHex(ts.all[i].Color); err == nil {
			ts.all[i].fg = c
		}
		ts.byID[ts.all[i].ID] = &ts.all[i]
		ts.byName[ts.all[i].Name] = &ts.all[i]
	}
	return ts
}

// LoadDefault loads the embedded default tileset.
func LoadDefault() (*Tileset, error) {
	f, err := Load[File](DefaultFile)
	if err != nil {
		return nil, err
	}
	return fromFile(f, DefaultFile)
}

// LoadPath loads a tileset from disk.
func LoadPath(path string) (*Tileset, error) {
	f, err := LoadFile[File](path)
	if err != nil {
		return nil, err
	}
	return fromFile(f, path)
}

// MustLoadDefault loads the embedded tileset, panicking on error.
func MustLoadDefault() *Tileset {
	ts, err := LoadDefault()
	if err != nil {
		panic(err)
	}
	return ts
}

func fromFile(f File, source string) (*Tileset, error) {
	if len(f.Tiles) == 0 {
		return nil, fmt.Errorf("no tiles defined in %s", source)
	}
	seen := make(map[int]bool, len(f.Tiles))
	for _, d := range f.Tiles {
		if d.ID <= 0 {
			return nil, fmt.Errorf("tile %q in %s has non-positive id %d", d.Name, source, d.ID)
		}
		if d.ID > grid.MaxID {
			return nil, fmt.Errorf("tile %q in %s has id %d above %d", d.Name, source, d.ID, grid.MaxID)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("duplicate tile id %d in %s", d.ID, source)
		}
		seen[d.ID] = true
		if d.Color == "" {
			continue
		}
		if _, err := tile.ParseHex(d.Color); err != nil {
			return nil, fmt.Errorf("tile %q in %s: %w", d.Name, source, err)
		}
	}
	return New(f), nil
}

// Name returns the tileset name.
func (ts *Tileset) Name() string {
	return ts.name
}

// GetByID returns the definition for id, or nil if not found.
func (ts *Tileset) GetByID(id int) *TileDef {
	return ts.byID[id]
}

// GetByName returns the definition with the given name, or nil if not found.
func (ts *Tileset) GetByName(name string) *TileDef {
	return ts.byName[name]
}

// Count returns the number of tile definitions.
func (ts *Tileset) Count() int {
	return len(ts.all)
}

// ErrUnknownBrush is returned for brush names missing from the tileset.
var ErrUnknownBrush = errors.New("unknown brush")

// Brush returns the candidate tiles of a named brush.
func (ts *Tileset) Brush(name string) ([]tile.Tile, error) {
	ids, ok := ts.brushes[name]
	if !ok || len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBrush, name)
	}
	out := make([]tile.Tile, len(ids))
	for i, id := range ids {
		out[i] = tile.New(id)
	}
	return out, nil
}

// RuleSetNames returns the names of the defined rule sets.
func (ts *Tileset) RuleSetNames() []string {
	names := make([]string, 0, len(ts.rules))
	for name := range ts.rules {
		names = append(names, name)
	}
	return names
}

// BuildRules adds the named rule set's rules to rs in definition order.
func (ts *Tileset) BuildRules(name string, rs *grid.RuleSet) error {
	defs, ok := ts.rules[name]
	if !ok {
		return fmt.Errorf("unknown rule set: %s", name)
	}

	for i, def := range defs {
		mode, err := parseMode(def.Mode)
		if err != nil {
			return fmt.Errorf("rule %d of %s: %w", i, name, err)
		}
		pose, err := parsePose(def.Pose)
		if err != nil {
			return fmt.Errorf("rule %d of %s: %w", i, name, err)
		}

		pattern := make([]grid.Predicate, len(def.Pattern))
		for j, id := range def.Pattern {
			if id < 0 {
				pattern[j] = grid.AnyTile()
				continue
			}
			pattern[j] = grid.Is(tile.New(id))
		}
		rs.AddRule(mode, tile.New(def.Replace).WithPose(pose), pattern...)
	}
	return nil
}

func parseMode(s string) (grid.MatchMode, error) {
	switch s {
	case "", "id":
		return grid.MatchByID, nil
	case "exact":
		return grid.MatchExactTile, nil
	default:
		return 0, fmt.Errorf("unknown match mode %q", s)
	}
}

func parsePose(s string) (tile.Orientation, error) {
	if s == "" {
		return tile.Identity, nil
	}
	for o := tile.Identity; o <= tile.MirrorRot270; o++ {
		if o.String() == s {
			return o, nil
		}
	}
	return tile.Identity, fmt.Errorf("unknown pose %q", s)
}
