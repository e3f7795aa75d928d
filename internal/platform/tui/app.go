package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenProgress
)

// AppModel manages the full play flow: level menu -> level -> menu, with the
// progress table reachable from the menu. It is the top-level model of both
// local and SSH sessions.
type AppModel struct {
	env      Env
	current  screen
	menu     MenuModel
	game     *GameModel
	progress ProgressModel
	gen      int
	quitting bool
	err      error
}

// NewAppModel creates the top-level model. A start level of -1 opens the menu;
// any other index starts that level directly.
func NewAppModel(env Env, start int) AppModel {
	if env.Logger == nil {
		env.Logger = log.New(io.Discard)
	}
	if env.Tracker == nil {
		env.Tracker = NewTracker(nil, env.Pack.ID, env.Pack.Count(), env.Logger)
	}

	m := AppModel{
		env:  env,
		menu: NewMenuModel(env, env.Tracker.FirstUncleared()),
	}
	if start >= 0 {
		m.menu = NewMenuModel(env, start)
		m.startLevel(start)
	}
	return m
}

// Init initializes the current screen.
func (m AppModel) Init() tea.Cmd {
	if m.current == screenGame && m.game != nil {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the current screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.env.Runtime.ScreenW = wsm.Width
		m.env.Runtime.ScreenH = wsm.Height
		m.menu, _ = m.menu.updateSelf(msg)
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenProgress:
		return m.updateProgress(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.updateSelf(msg)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsProgress():
		m.menu = NewMenuModel(m.env, m.menu.Cursor())
		m.progress = NewProgressModel(m.env)
		m.current = screenProgress
		return m, m.progress.Init()

	case m.menu.Selected() >= 0:
		cmd = m.startLevel(m.menu.Selected())
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	// Check if user quit entirely
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to the menu, moving on after a clear
	if m.game.Done() {
		index := m.game.Session().Index()
		if m.game.Session().State().Cleared && index+1 < m.env.Pack.Count() {
			index++
		}
		m.game = nil
		m.current = screenMenu
		m.menu = NewMenuModel(m.env, index)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateProgress handles updates when the progress table is open.
func (m AppModel) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.progress.Update(msg)
	if progressModel, ok := newModel.(ProgressModel); ok {
		m.progress = progressModel
	}

	switch {
	case m.progress.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.progress.Selected() >= 0:
		return m, m.startLevel(m.progress.Selected())

	case m.progress.IsGoingBack():
		m.current = screenMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// startLevel switches to the game screen for the given level.
func (m *AppModel) startLevel(index int) tea.Cmd {
	m.gen++
	gameModel, err := NewGameModel(m.env, index, m.gen)
	if err != nil {
		m.err = err
		m.env.Logger.Warn("cannot start level", "level", index+1, "error", err)
		m.menu = NewMenuModel(m.env, index)
		m.current = screenMenu
		return nil
	}

	m.game = &gameModel
	m.current = screenGame
	return m.game.Init()
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenProgress:
		return m.progress.View()
	default:
		return m.menu.View()
	}
}

// Err returns the last error that kept a level from starting.
func (m AppModel) Err() error {
	return m.err
}

// updateSelf is Update without the tea.Model conversion.
func (m MenuModel) updateSelf(msg tea.Msg) (MenuModel, tea.Cmd) {
	newModel, cmd := m.Update(msg)
	if menuModel, ok := newModel.(MenuModel); ok {
		return menuModel, cmd
	}
	return m, cmd
}

// Run starts the Bubble Tea program on the terminal. A start level of -1 opens
// the level menu.
func Run(env Env, start int) error {
	model := NewAppModel(env, start)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
