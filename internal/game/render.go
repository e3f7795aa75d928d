package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-gravity/internal/core"
	"github.com/vovakirdan/tui-gravity/internal/particles"
	"github.com/vovakirdan/tui-gravity/internal/puzzle"
)

// Each tile is drawn two columns wide so the grid looks square in a terminal.
const tileW = 2

// Visual characters for rendering
const (
	WallChar   = '█'
	BridgeChar = '═'
)

var kindGlyphs = map[puzzle.Kind]rune{
	puzzle.KindPlayer:  '@',
	puzzle.KindCrate:   '#',
	puzzle.KindHuman:   'h',
	puzzle.KindGem:     '*',
	puzzle.KindBoulder: 'O',
	puzzle.KindRubble:  '%',
	puzzle.KindFire:    '^',
}

var kindColors = map[puzzle.Kind]core.Color{
	puzzle.KindPlayer:  core.ColorBrightCyan,
	puzzle.KindCrate:   core.ColorBrown,
	puzzle.KindHuman:   core.ColorBrightMagenta,
	puzzle.KindGem:     core.ColorBrightYellow,
	puzzle.KindBoulder: core.ColorWhite,
	puzzle.KindRubble:  core.ColorGray,
	puzzle.KindFire:    core.ColorOrange,
}

// decay is the glyph sequence of a dying object after its own glyph.
var decay = []rune{'+', '·'}

var particleGlyphs = map[particles.Style]rune{
	particles.StyleBlood:    '.',
	particles.StyleSplinter: '\'',
	particles.StyleSmoke:    '~',
}

// Render draws the session to the screen.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	grid := s.engine.Grid()
	ox, oy := s.origin(dst, grid)

	s.drawTerrain(dst, grid, ox, oy)
	s.drawParticles(dst, ox, oy)
	s.drawObjects(dst, ox, oy)
	s.drawHUD(dst)

	switch s.phase {
	case PhasePaused:
		s.drawPauseMenu(dst)
	case PhaseClearing, PhaseCleared:
		sub := fmt.Sprintf("Moves: %d", s.engine.Moves())
		if s.improved {
			sub += "  (new best)"
		}
		drawCenteredMessage(dst, "LEVEL CLEAR", sub)
	}
}

// origin returns the screen position of the top-left tile, centering the grid
// below the HUD line.
func (s *Session) origin(dst *core.Screen, grid *puzzle.Grid) (int, int) {
	ox := (dst.Width() - grid.Width()*tileW) / 2
	oy := (dst.Height() - grid.Height()) / 2
	return max(ox, 0), max(oy, 2)
}

func (s *Session) drawTerrain(dst *core.Screen, grid *puzzle.Grid, ox, oy int) {
	for y := range grid.Height() {
		for x := range grid.Width() {
			var r rune
			var c core.Color
			switch grid.Tile(core.C(x, y)) {
			case puzzle.TileWall:
				r, c = WallChar, core.ColorDarkGray
			case puzzle.TileBridge:
				r, c = BridgeChar, core.ColorBrown
			default:
				continue
			}
			for i := range tileW {
				dst.SetColored(ox+x*tileW+i, oy+y, r, c)
			}
		}
	}
}

func (s *Session) drawParticles(dst *core.Screen, ox, oy int) {
	for _, p := range s.particles.Live() {
		x := ox + int(math.Floor(p.Pos.X*tileW))
		y := oy + int(math.Floor(p.Pos.Y))
		if dst.Get(x, y) != ' ' {
			continue
		}
		dst.SetColored(x, y, particleGlyphs[p.Style], p.Color)
	}
}

func (s *Session) drawObjects(dst *core.Screen, ox, oy int) {
	views := s.engine.Objects()

	// Passable objects first so movers are drawn on top
	for _, pass := range []bool{true, false} {
		for _, v := range views {
			if v.Kind.Caps().Passable != pass {
				continue
			}
			drawObject(dst, v, ox, oy)
		}
	}
}

func drawObject(dst *core.Screen, v puzzle.ObjectView, ox, oy int) {
	x := ox + int(math.Floor(v.Position.X*tileW+0.5))
	y := oy + int(math.Floor(v.Position.Y+0.5))
	glyph := kindGlyphs[v.Kind]
	color := kindColors[v.Kind]

	if v.Dying {
		step := int(v.DeathProgress * float64(len(decay)+1))
		if step > 0 {
			glyph = decay[min(step-1, len(decay)-1)]
		}
		if !v.Alive {
			color = core.ColorRed
		}
	}

	if v.Kind == puzzle.KindFire && v.AnimationPhase >= 0.5 {
		color = core.ColorBrightRed
	}

	// Sentient glyphs face their orientation: leftward ones sit in the right
	// column with a marker before them.
	if v.Kind.Sentient() && v.Alive {
		switch v.Orientation {
		case core.DirLeft:
			dst.SetColored(x, y, '‹', color)
			dst.SetColored(x+1, y, glyph, color)
			return
		case core.DirRight:
			dst.SetColored(x, y, glyph, color)
			dst.SetColored(x+1, y, '›', color)
			return
		}
	}
	dst.SetColored(x, y, glyph, color)
}

func (s *Session) drawHUD(dst *core.Screen) {
	title := fmt.Sprintf(" %d. %s ", s.index+1, s.level.Name)
	dst.DrawTextColored(1, 0, title, core.ColorBrightWhite)

	stats := fmt.Sprintf("Moves: %d", s.engine.Moves())
	if s.best > 0 {
		stats += fmt.Sprintf("  Best: %d", s.best)
	}
	dst.DrawText(dst.Width()-len(stats)-2, 0, stats)

	if s.engine.State() == puzzle.StateFailing {
		dst.DrawTextCentered(1, "OUCH", core.ColorBrightRed)
	}

	dst.DrawTextCentered(dst.Height()-1, "arrows: gravity  z: undo  r: restart  p: pause  q: levels", core.ColorGray)
}

func (s *Session) drawPauseMenu(dst *core.Screen) {
	boxW := 20
	boxH := len(PauseItems) + 4
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorWhite)
	dst.DrawTextColored(r.X+(boxW-6)/2, r.Y+1, "PAUSED", core.ColorBrightWhite)

	for i, item := range PauseItems {
		label := "  " + item.String()
		color := core.ColorDefault
		if i == s.pauseSel {
			label = "> " + item.String()
			color = core.ColorBrightYellow
		}
		dst.DrawTextColored(r.X+3, r.Y+3+i, label, color)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	r := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorBrightYellow)

	// Draw text
	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
