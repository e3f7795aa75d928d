package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-gravity/internal/core"
)

// ScreenRenderer turns a core.Screen into styled terminal output. Each SSH
// session has its own renderer so colors follow the client's terminal profile.
type ScreenRenderer struct {
	styles []lipgloss.Style
}

// NewScreenRenderer builds the styles of every core.Color on r. A nil renderer
// uses the lipgloss default (the local terminal).
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	colors := core.Colors()
	styles := make([]lipgloss.Style, len(colors))
	for i, c := range colors {
		styles[i] = r.NewStyle()
		if code := c.ANSI(); code != "" {
			styles[i] = styles[i].Foreground(lipgloss.Color(code))
		}
	}
	return &ScreenRenderer{styles: styles}
}

func (sr *ScreenRenderer) style(c core.Color) lipgloss.Style {
	if int(c) < len(sr.styles) {
		return sr.styles[c]
	}
	return sr.styles[core.ColorDefault]
}

// Render converts the screen buffer to a string. Runs of cells sharing a color
// are styled together.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(sr.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders with the default terminal renderer.
func RenderScreen(s *core.Screen) string {
	return NewScreenRenderer(nil).Render(s)
}
