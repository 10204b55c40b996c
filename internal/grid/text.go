package grid

import (
	"github.com/samdwyer/tilegrid/internal/tile"
)

// Default symbol ranges. Characters map to their ASCII code point, which is
// where they sit in a 16x16 code-page font atlas.
const (
	Lowercase   = "abcdefghijklmnopqrstuvwxyz"
	Uppercase   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits      = "0123456789"
	Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

const tabWidth = 4

// ConfigureText assigns ids firstID, firstID+1, ... to the characters of chars.
func (g *TileGrid) ConfigureText(firstID int, chars string) {
	id := firstID
	for _, r := range chars {
		g.symbols[r] = id
		id++
	}
}

// ConfigureLowercase maps a-z to a contiguous range starting at firstID.
func (g *TileGrid) ConfigureLowercase(firstID int) { g.ConfigureText(firstID, Lowercase) }

// ConfigureUppercase maps A-Z to a contiguous range starting at firstID.
func (g *TileGrid) ConfigureUppercase(firstID int) { g.ConfigureText(firstID, Uppercase) }

// ConfigureDigits maps 0-9 to a contiguous range starting at firstID.
func (g *TileGrid) ConfigureDigits(firstID int) { g.ConfigureText(firstID, Digits) }

// ConfigurePunctuation maps the printable ASCII symbols to a contiguous range
// starting at firstID.
func (g *TileGrid) ConfigurePunctuation(firstID int) { g.ConfigureText(firstID, Punctuation) }

// ResetText restores the default code-point mappings.
func (g *TileGrid) ResetText() {
	clear(g.symbols)
	g.ConfigureLowercase('a')
	g.ConfigureUppercase('A')
	g.ConfigureDigits('0')
	for _, r := range Punctuation {
		g.symbols[r] = int(r)
	}
}

// SymbolID returns the tile id mapped to r.
func (g *TileGrid) SymbolID(r rune) (int, bool) {
	id, ok := g.symbols[r]
	return id, ok
}

// colorTag is an inline tint change found in text, measured in runes.
type colorTag struct {
	start  int
	length int
	tint   tile.Color
}

// scanTags finds every tagChar-delimited hex color in text.
func scanTags(text []rune, tagChar rune) []colorTag {
	var tags []colorTag
	for i := 0; i < len(text); i++ {
		if text[i] != tagChar {
			continue
		}
		end := -1
		for j := i + 1; j < len(text) && j <= i+9; j++ {
			if text[j] == tagChar {
				end = j
				break
			}
		}
		if end < 0 {
			continue
		}
		tint, err := tile.ParseHex(string(text[i+1 : end]))
		if err != nil {
			continue
		}
		tags = append(tags, colorTag{start: i, length: end - i + 1, tint: tint})
		i = end
	}
	return tags
}

// SetText lays out text as tiles starting at p using the symbol table.
// A tab advances four cells, '\n' and '\r' return to p.X on the next row and
// a space advances without writing. Characters without a mapping are
// skipped the same way.
//
// Inline tags of the form <tagChar>RRGGBB[AA]<tagChar> change the tint of
// every following character and occupy no cell. Pass 0 as tagChar to
// disable tags.
func (g *TileGrid) SetText(p Point, text string, tint tile.Color, tagChar rune, mask *Region) {
	runes := []rune(text)

	var tags []colorTag
	if tagChar != 0 {
		tags = scanTags(runes, tagChar)
	}

	cur := p
	for i := 0; i < len(runes); {
		if len(tags) > 0 && tags[0].start == i {
			tag := tags[0]
			tags = tags[1:]
			runes = append(runes[:tag.start], runes[tag.start+tag.length:]...)
			for k := range tags {
				tags[k].start -= tag.length
			}
			tint = tag.tint
			continue
		}

		switch r := runes[i]; r {
		case '\t':
			cur.X += tabWidth
		case '\n', '\r':
			cur.X = p.X
			cur.Y++
		case ' ':
			cur.X++
		default:
			if id, ok := g.symbols[r]; ok {
				g.put(cur, tile.Tile{ID: id, Tint: tint}, mask)
			}
			cur.X++
		}
		i++
	}
}
