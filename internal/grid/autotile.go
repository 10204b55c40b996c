package grid

import (
	"encoding/binary"
	"log/slog"

	"github.com/cespare/xxhash/v2"

	"github.com/samdwyer/tilegrid/internal/tile"
)

// patternSize is the number of cells in a rule's 3x3 neighborhood.
const patternSize = 9

// MatchMode selects how a rule's predicates compare against cells.
type MatchMode uint8

const (
	// MatchByID compares tile ids only.
	MatchByID MatchMode = iota
	// MatchExactTile compares id, tint and pose.
	MatchExactTile
)

// String returns a human-readable mode name.
func (m MatchMode) String() string {
	switch m {
	case MatchByID:
		return "id"
	case MatchExactTile:
		return "exact"
	default:
		return "unknown"
	}
}

// Predicate tests a single neighborhood cell.
type Predicate struct {
	Any  bool      // Matches every cell
	Tile tile.Tile // Expected tile when Any is false
}

// AnyTile returns a predicate that matches every cell.
func AnyTile() Predicate {
	return Predicate{Any: true}
}

// Is returns a predicate matching t.
func Is(t tile.Tile) Predicate {
	return Predicate{Tile: t}
}

// IsID returns a predicate matching tiles with the given id. It is meant for
// MatchByID rules.
func IsID(id int) Predicate {
	return Predicate{Tile: tile.Tile{ID: id}}
}

func (p Predicate) matches(mode MatchMode, t tile.Tile) bool {
	if p.Any {
		return true
	}
	if mode == MatchExactTile {
		return p.Tile == t
	}
	return p.Tile.ID == t.ID
}

// Rule replaces the center of a matching 3x3 neighborhood. Pattern is
// indexed row-major; index 4 is the cell itself.
type Rule struct {
	Mode        MatchMode
	Pattern     []Predicate
	Replacement tile.Tile
}

func (r Rule) hash() uint64 {
	d := xxhash.New()
	var buf [8]byte

	writeInt := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	writeTile := func(t tile.Tile) {
		writeInt(uint64(t.ID))
		writeInt(uint64(t.Tint))
		writeInt(uint64(t.Pose))
	}

	writeInt(uint64(r.Mode))
	writeInt(uint64(len(r.Pattern)))
	for _, p := range r.Pattern {
		if p.Any {
			writeInt(1)
			continue
		}
		writeInt(0)
		writeTile(p.Tile)
	}
	writeTile(r.Replacement)
	return d.Sum64()
}

func (r Rule) matchAt(g *TileGrid, p Point) bool {
	for i, pred := range r.Pattern {
		n := Point{X: p.X + i%3 - 1, Y: p.Y + i/3 - 1}
		if !pred.matches(r.Mode, g.TileAt(n)) {
			return false
		}
	}
	return true
}

// RuleSet is an ordered, append-only list of auto-tile rules.
type RuleSet struct {
	rules []Rule
	seen  map[uint64]struct{}
}

// NewRuleSet creates an empty rule set. The zero value is also ready to use.
func NewRuleSet() *RuleSet {
	return &RuleSet{seen: make(map[uint64]struct{})}
}

// AddRule appends a rule unless a structurally identical one already exists.
// It returns false for duplicates. Patterns of the wrong length are accepted
// here and skipped by Apply.
func (s *RuleSet) AddRule(mode MatchMode, replacement tile.Tile, pattern ...Predicate) bool {
	r := Rule{
		Mode:        mode,
		Pattern:     append([]Predicate(nil), pattern...),
		Replacement: replacement,
	}
	h := r.hash()
	if s.seen == nil {
		s.seen = make(map[uint64]struct{})
	}
	if _, ok := s.seen[h]; ok {
		return false
	}
	s.seen[h] = struct{}{}
	s.rules = append(s.rules, r)
	return true
}

// Len returns the number of rules.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Rules returns the rules in insertion order.
func (s *RuleSet) Rules() []Rule {
	return s.rules
}

// Clear removes every rule.
func (s *RuleSet) Clear() {
	s.rules = nil
	clear(s.seen)
}

func (s *RuleSet) clone() *RuleSet {
	c := NewRuleSet()
	for _, r := range s.rules {
		c.AddRule(r.Mode, r.Replacement, r.Pattern...)
	}
	return c
}

// Apply evaluates the rules against every cell of region (the whole grid
// when nil) and writes the replacements through mask. Matching runs against
// a snapshot: no cell observes a replacement made by the same call. When
// several rules match a cell, the last one added wins. It returns the
// number of cells written.
func (s *RuleSet) Apply(g *TileGrid, region *Region, mask *Region) int {
	scan := g.Bounds()
	if region != nil {
		scan = *region
	}

	valid := make([]Rule, 0, len(s.rules))
	for _, r := range s.rules {
		if len(r.Pattern) != patternSize {
			Logger().Debug("skipping malformed auto-tile rule",
				slog.Int("pattern_len", len(r.Pattern)),
				slog.Int("replacement_id", r.Replacement.ID))
			continue
		}
		valid = append(valid, r)
	}

	matches := make(map[Point]tile.Tile)
	for p := range scan.Points() {
		if !g.inBounds(p) {
			continue
		}
		for _, r := range valid {
			if r.matchAt(g, p) {
				matches[p] = r.Replacement
			}
		}
	}

	written := 0
	for p, t := range matches {
		if g.put(p, t, mask) {
			written++
		}
	}
	return written
}

// Rules returns the rule set attached to the grid, creating it on first use.
func (g *TileGrid) Rules() *RuleSet {
	if g.rules == nil {
		g.rules = NewRuleSet()
	}
	return g.rules
}

// AddRule adds a rule to the grid's attached rule set.
func (g *TileGrid) AddRule(mode MatchMode, replacement tile.Tile, pattern ...Predicate) bool {
	return g.Rules().AddRule(mode, replacement, pattern...)
}

// ApplyRules runs the grid's attached rule set over region.
func (g *TileGrid) ApplyRules(region *Region, mask *Region) int {
	if g.rules == nil {
		return 0
	}
	return g.rules.Apply(g, region, mask)
}
