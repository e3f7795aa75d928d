package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-gravity/internal/config"
	"github.com/vovakirdan/tui-gravity/internal/core"
	"github.com/vovakirdan/tui-gravity/internal/game"
	"github.com/vovakirdan/tui-gravity/internal/levels"
	"github.com/vovakirdan/tui-gravity/internal/puzzle"
)

// Env bundles what every screen of a play session needs.
type Env struct {
	Pack    *levels.Pack
	Config  config.GravityConfig
	Runtime core.RuntimeConfig
	Tracker *Tracker
	Sound   puzzle.Effects // nil for silent sessions
	Logger  *log.Logger

	Renderer *lipgloss.Renderer // nil renders for the local terminal
}

// GameModel is the Bubble Tea model for playing one level.
type GameModel struct {
	session    *game.Session
	controller *core.Controller
	keyMapper  *KeyMapper
	screen     *core.Screen
	renderer   *ScreenRenderer
	env        Env
	gen        int
	recorded   bool // Whether the clear has been recorded
	done       bool // Level finished or left; return to the menu
	quitting   bool
}

// NewGameModel creates a model playing the level at index. gen tags its ticks.
func NewGameModel(env Env, index, gen int) (GameModel, error) {
	level, err := env.Pack.Level(index)
	if err != nil {
		return GameModel{}, err
	}

	cfg := env.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	session := game.New(level, index, env.Config, game.Options{
		Seed:      cfg.Seed,
		Sound:     env.Sound,
		Logger:    env.Logger,
		BestMoves: env.Tracker.Best(index),
	})

	return GameModel{
		session:    session,
		controller: core.NewController(nil, env.Config.Input.HoldTicks),
		keyMapper:  NewKeyMapper(),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:   NewScreenRenderer(env.Renderer),
		env:        env,
		gen:        gen,
	}, nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.env.Runtime.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.env.Runtime.ScreenW = msg.Width
		m.env.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen || m.done {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.keyMapper.IsHardQuit(msg):
		m.quitting = true
		return m, tea.Quit
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	m.keyMapper.Feed(msg, m.controller)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	m.controller.PreUpdate()
	result := m.session.Step(m.controller)
	m.controller.PostUpdate()

	// Record the clear once
	if result.State.Cleared && !m.recorded {
		m.env.Tracker.Record(m.session.Index(), result.State.Moves)
		m.recorded = true
		m.done = true
	}
	if result.State.Quit {
		m.done = true
	}
	if m.done {
		return m, nil
	}

	// Continue ticking
	return m, tickCmd(m.env.Runtime.TickRate, m.gen)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	// Render current state
	m.session.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(config.UserDir(), "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.session.Level().ID, timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	return m.renderer.Render(m.screen)
}

// Session returns the running game session.
func (m GameModel) Session() *game.Session {
	return m.session
}

// Done returns true when the level was cleared or left.
func (m GameModel) Done() bool {
	return m.done
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}
