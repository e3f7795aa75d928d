package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// menuColumns is the number of level tiles per row.
const menuColumns = 4

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuTileStyle     = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	menuClearedStyle  = menuTileStyle.Foreground(lipgloss.Color("10"))
	menuSelectedStyle = menuTileStyle.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	env          Env
	cursor       int
	width        int
	height       int
	keyMapper    *KeyMapper
	help         help.Model
	quitting     bool
	selected     int  // Selected level index, -1 while browsing
	openProgress bool // True if user pressed Tab for the progress table
}

// NewMenuModel creates a new menu model with the cursor on the given level.
func NewMenuModel(env Env, cursor int) MenuModel {
	h := help.New()
	h.Width = env.Runtime.ScreenW

	return MenuModel{
		env:       env,
		cursor:    max(0, min(cursor, env.Pack.Count()-1)),
		width:     env.Runtime.ScreenW,
		height:    env.Runtime.ScreenH,
		keyMapper: NewKeyMapper(),
		help:      h,
		selected:  -1,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.env.Pack.Count()

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true

	case MenuActionLeft:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionRight:
		if m.cursor < count-1 {
			m.cursor++
		}

	case MenuActionUp:
		if m.cursor >= menuColumns {
			m.cursor -= menuColumns
		}

	case MenuActionDown:
		if m.cursor+menuColumns < count {
			m.cursor += menuColumns
		}

	case MenuActionSelect:
		if count > 0 {
			m.selected = m.cursor
		}

	case MenuActionProgress:
		m.openProgress = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	tracker := m.env.Tracker

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("G R A V I T Y"), m.width))
	b.WriteString("\n\n")

	subtitle := fmt.Sprintf("%s  ·  %d/%d cleared", m.env.Pack.Name, tracker.ClearedCount(), m.env.Pack.Count())
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	// Level grid
	var row []string
	for i := range m.env.Pack.Count() {
		mark := " "
		style := menuTileStyle
		if tracker.Cleared(i) {
			mark = "✓"
			style = menuClearedStyle
		}
		if i == m.cursor {
			style = menuSelectedStyle
		}
		row = append(row, style.Render(fmt.Sprintf("%2d %s", i+1, mark)))

		if len(row) == menuColumns || i == m.env.Pack.Count()-1 {
			b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, row...), m.width))
			b.WriteString("\n")
			row = row[:0]
		}
	}

	// Selected level details
	if level, err := m.env.Pack.Level(m.cursor); err == nil {
		detail := level.Name
		if best := tracker.Best(m.cursor); best > 0 {
			detail += fmt.Sprintf("  ·  best %d moves", best)
		}
		b.WriteString("\n")
		b.WriteString(centerText(detail, m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	b.WriteString(centerText(menuHelpStyle.Render(m.help.View(m.keyMapper.menu)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected level index, or -1 if none was selected.
func (m MenuModel) Selected() int {
	return m.selected
}

// Cursor returns the highlighted level index.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsProgress returns true if user requested the progress table.
func (m MenuModel) WantsProgress() bool {
	return m.openProgress
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
