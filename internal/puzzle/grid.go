package puzzle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-gravity/internal/core"
)

// Terrain codes. Codes at or above SpawnBias are spawn markers: the object kind is
// code-SpawnBias, and the cell reads as TileEmpty once the level is loaded.
const (
	TileEmpty  = 0
	TileWall   = 1
	TileBridge = 2
	SpawnBias  = 3

	maxDimension = 31
	base32Digits = "0123456789ABCDEFGHIJKLMNOPQRSTUV"
)

// ErrMalformedLevel is returned for level data that cannot be parsed.
var ErrMalformedLevel = errors.New("malformed level")

// Spawn is an object seeded from a spawn marker.
type Spawn struct {
	Cell core.Coord
	Kind Kind
}

// Grid is the immutable static terrain of a level.
type Grid struct {
	width  int
	height int
	tiles  []int
	spawns []Spawn
}

// NewGrid creates a grid from terrain codes in row-major order.
// Spawn codes are split off into spawns and replaced by TileEmpty.
func NewGrid(width, height int, codes []int) (*Grid, error) {
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return nil, fmt.Errorf("puzzle: size %dx%d: %w", width, height, ErrMalformedLevel)
	}
	if len(codes) != width*height {
		return nil, fmt.Errorf("puzzle: expected %d tiles, got %d: %w", width*height, len(codes), ErrMalformedLevel)
	}

	g := &Grid{
		width:  width,
		height: height,
		tiles:  make([]int, len(codes)),
	}
	for i, code := range codes {
		if code < SpawnBias {
			g.tiles[i] = code
			continue
		}

		kind := Kind(code - SpawnBias)
		if !kind.Valid() {
			return nil, fmt.Errorf("puzzle: tile %d: unknown code %d: %w", i, code, ErrMalformedLevel)
		}
		g.tiles[i] = TileEmpty
		g.spawns = append(g.spawns, Spawn{Cell: core.C(i%width, i/width), Kind: kind})
	}
	return g, nil
}

// ParseLevel decodes a level string: two base-32 digits for width and height,
// followed by width*height base-32 terrain codes.
func ParseLevel(data string) (*Grid, error) {
	data = strings.TrimSpace(data)
	if len(data) < 2 {
		return nil, fmt.Errorf("puzzle: level header too short: %w", ErrMalformedLevel)
	}

	width, err := digit(data[0])
	if err != nil {
		return nil, err
	}
	height, err := digit(data[1])
	if err != nil {
		return nil, err
	}

	body := data[2:]
	codes := make([]int, len(body))
	for i := range len(body) {
		codes[i], err = digit(body[i])
		if err != nil {
			return nil, err
		}
	}
	return NewGrid(width, height, codes)
}

func digit(ch byte) (int, error) {
	i := strings.IndexByte(base32Digits, upper(ch))
	if i < 0 {
		return 0, fmt.Errorf("puzzle: invalid base-32 digit %q: %w", ch, ErrMalformedLevel)
	}
	return i, nil
}

func upper(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - 'a' + 'A'
	}
	return ch
}

// EncodeLevel is the inverse of ParseLevel: it writes the terrain of g with the
// entries of s as spawn markers.
func EncodeLevel(g *Grid, s Snapshot) string {
	codes := make([]int, len(g.tiles))
	copy(codes, g.tiles)
	for _, e := range s.Entries {
		if g.InBounds(e.Cell) {
			codes[g.index(e.Cell)] = int(e.Kind) + SpawnBias
		}
	}

	var sb strings.Builder
	sb.Grow(len(codes) + 2)
	sb.WriteByte(base32Digits[g.width])
	sb.WriteByte(base32Digits[g.height])
	for _, c := range codes {
		sb.WriteByte(base32Digits[core.Clamp(c, 0, len(base32Digits)-1)])
	}
	return sb.String()
}

// Width returns the grid width in cells.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in cells.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c core.Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

func (g *Grid) index(c core.Coord) int {
	return c.Y*g.width + c.X
}

// Tile returns the terrain code at c. Out-of-bounds cells read as walls.
func (g *Grid) Tile(c core.Coord) int {
	if !g.InBounds(c) {
		return TileWall
	}
	return g.tiles[g.index(c)]
}

// IsWall reports whether c is a wall or outside the grid.
func (g *Grid) IsWall(c core.Coord) bool {
	return g.Tile(c) == TileWall
}

// Spawns returns the objects seeded by the level, in row-major order.
func (g *Grid) Spawns() []Spawn {
	out := make([]Spawn, len(g.spawns))
	copy(out, g.spawns)
	return out
}

// InitialSnapshot converts the spawn markers into a snapshot.
func (g *Grid) InitialSnapshot() Snapshot {
	entries := make([]Entry, len(g.spawns))
	for i, sp := range g.spawns {
		entries[i] = Entry{Cell: sp.Cell, Orientation: core.DirNone, Kind: sp.Kind}
	}
	return Snapshot{Entries: entries}
}

// Glyphs used by ParseRows and FormatRows.
const (
	GlyphEmpty  = '.'
	GlyphWall   = '#'
	GlyphBridge = '='
)

var kindGlyphs = [kindCount]byte{
	KindPlayer:  '@',
	KindCrate:   'c',
	KindHuman:   'h',
	KindGem:     '*',
	KindBoulder: 'O',
	KindRubble:  '%',
	KindFire:    '^',
}

// Glyph returns the ASCII map character for the kind.
func (k Kind) Glyph() byte {
	if !k.Valid() {
		return '?'
	}
	return kindGlyphs[k]
}

// ParseRows builds a grid from an ASCII map, one string per row. All rows must
// have the same width.
func ParseRows(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("puzzle: empty map: %w", ErrMalformedLevel)
	}

	width := len(rows[0])
	codes := make([]int, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("puzzle: row %d has width %d, want %d: %w", y, len(row), width, ErrMalformedLevel)
		}
		for x := range len(row) {
			code, ok := glyphCode(row[x])
			if !ok {
				return nil, fmt.Errorf("puzzle: row %d col %d: unknown glyph %q: %w", y, x, row[x], ErrMalformedLevel)
			}
			codes = append(codes, code)
		}
	}
	return NewGrid(width, len(rows), codes)
}

func glyphCode(ch byte) (int, bool) {
	switch ch {
	case GlyphEmpty, ' ':
		return TileEmpty, true
	case GlyphWall:
		return TileWall, true
	case GlyphBridge:
		return TileBridge, true
	}
	for k, g := range kindGlyphs {
		if g == ch {
			return k + SpawnBias, true
		}
	}
	return 0, false
}

// FormatRows renders the terrain of g with the entries of s as an ASCII map.
func FormatRows(g *Grid, s Snapshot) []string {
	cells := make([][]byte, g.height)
	for y := range g.height {
		cells[y] = make([]byte, g.width)
		for x := range g.width {
			switch g.tiles[y*g.width+x] {
			case TileWall:
				cells[y][x] = GlyphWall
			case TileBridge:
				cells[y][x] = GlyphBridge
			default:
				cells[y][x] = GlyphEmpty
			}
		}
	}
	for _, e := range s.Entries {
		if g.InBounds(e.Cell) {
			cells[e.Cell.Y][e.Cell.X] = e.Kind.Glyph()
		}
	}

	rows := make([]string, g.height)
	for y := range cells {
		rows[y] = string(cells[y])
	}
	return rows
}
