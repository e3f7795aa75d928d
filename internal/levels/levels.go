// Package levels loads level packs: named, ordered lists of puzzle levels
// stored as YAML.
package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-gravity/internal/config"
	"github.com/vovakirdan/tui-gravity/internal/core"
	"github.com/vovakirdan/tui-gravity/internal/puzzle"
)

//go:embed packs/classic.yaml
var classicYAML []byte

// ErrLevelNotFound is returned when a level index or id does not exist.
var ErrLevelNotFound = errors.New("level not found")

// Level is a single puzzle of a pack.
type Level struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Data     string   `yaml:"data,omitempty"`     // Base-32 level string
	Rows     []string `yaml:"rows,omitempty"`     // ASCII map, used when Data is empty
	Solution string   `yaml:"solution,omitempty"` // Optional R/U/L/D move list

	grid *puzzle.Grid
}

// Grid returns the parsed terrain and spawns.
func (l Level) Grid() *puzzle.Grid {
	return l.grid
}

// Encoded returns the level in base-32 form.
func (l Level) Encoded() string {
	return puzzle.EncodeLevel(l.grid, l.grid.InitialSnapshot())
}

// Pack is an ordered list of levels.
type Pack struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Levels []Level `yaml:"levels"`
}

// Parse decodes and validates a YAML pack. Every level must parse.
func Parse(data []byte) (*Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("levels: parse pack: %w", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("levels: pack has no id")
	}
	if len(p.Levels) == 0 {
		return nil, fmt.Errorf("levels: pack %s has no levels", p.ID)
	}

	seen := make(map[string]bool, len(p.Levels))
	for i := range p.Levels {
		l := &p.Levels[i]
		if l.ID == "" {
			l.ID = strconv.Itoa(i + 1)
		}
		if seen[l.ID] {
			return nil, fmt.Errorf("levels: pack %s: duplicate level id %q", p.ID, l.ID)
		}
		seen[l.ID] = true
		if l.Name == "" {
			l.Name = l.ID
		}

		grid, err := parseGrid(*l)
		if err != nil {
			return nil, fmt.Errorf("levels: pack %s level %d (%s): %w", p.ID, i+1, l.ID, err)
		}
		l.grid = grid
	}
	return &p, nil
}

// NewLevel builds a standalone level from a base-32 level string.
func NewLevel(id, data string) (Level, error) {
	l := Level{ID: id, Name: id, Data: strings.TrimSpace(data)}
	grid, err := parseGrid(l)
	if err != nil {
		return Level{}, fmt.Errorf("levels: %s: %w", id, err)
	}
	l.grid = grid
	return l, nil
}

func parseGrid(l Level) (*puzzle.Grid, error) {
	if l.Data != "" {
		return puzzle.ParseLevel(l.Data)
	}
	return puzzle.ParseRows(l.Rows)
}

// Default returns the embedded classic pack.
func Default() (*Pack, error) {
	return Parse(classicYAML)
}

// Load loads a level pack.
// Search order: customPath -> ~/.gravity/levels/classic.yaml -> embedded classic pack
func Load(customPath string) (*Pack, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", customPath, err)
		}
		return Parse(data)
	}

	if dir := config.UserDir(); dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, "levels", "classic.yaml")); err == nil {
			if p, err := Parse(data); err == nil {
				return p, nil
			}
		}
	}

	return Default()
}

// Count returns the number of levels.
func (p *Pack) Count() int {
	return len(p.Levels)
}

// Level returns the level at zero-based index i.
func (p *Pack) Level(i int) (Level, error) {
	if i < 0 || i >= len(p.Levels) {
		return Level{}, fmt.Errorf("levels: index %d of %d: %w", i, len(p.Levels), ErrLevelNotFound)
	}
	return p.Levels[i], nil
}

// Find resolves a one-based level number or a level id to a zero-based index.
func (p *Pack) Find(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(p.Levels) {
			return 0, fmt.Errorf("levels: number %d of %d: %w", n, len(p.Levels), ErrLevelNotFound)
		}
		return n - 1, nil
	}
	for i, l := range p.Levels {
		if strings.EqualFold(l.ID, ref) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("levels: %q: %w", ref, ErrLevelNotFound)
}

// ParseMoves decodes a move list such as "RDLU". Spaces are ignored.
func ParseMoves(s string) ([]core.Dir, error) {
	var moves []core.Dir
	for i, ch := range strings.ToUpper(s) {
		switch ch {
		case 'R':
			moves = append(moves, core.DirRight)
		case 'U':
			moves = append(moves, core.DirUp)
		case 'L':
			moves = append(moves, core.DirLeft)
		case 'D':
			moves = append(moves, core.DirDown)
		case ' ', ',':
		default:
			return nil, fmt.Errorf("levels: move %d: unknown direction %q", i+1, ch)
		}
	}
	return moves, nil
}
