// Package game runs one level of a pack: it owns the puzzle engine, the particle
// system and the pause and level-clear flow around them.
package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-gravity/internal/audio"
	"github.com/vovakirdan/tui-gravity/internal/config"
	"github.com/vovakirdan/tui-gravity/internal/core"
	"github.com/vovakirdan/tui-gravity/internal/levels"
	"github.com/vovakirdan/tui-gravity/internal/particles"
	"github.com/vovakirdan/tui-gravity/internal/puzzle"
)

// Phase is the coarse state of a session.
type Phase int

const (
	PhasePlaying  Phase = iota
	PhasePaused         // Pause menu is open; the simulation is frozen
	PhaseClearing       // Level-clear animation is running
	PhaseCleared        // Level is done; the platform should record it
	PhaseQuit           // Player left the level
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseClearing:
		return "clearing"
	case PhaseCleared:
		return "cleared"
	case PhaseQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Options are the optional collaborators of a session.
type Options struct {
	Seed      int64          // Particle RNG seed
	Sound     puzzle.Effects // Extra effects sink, usually an *audio.Manager
	Logger    *log.Logger    // Debug logger; nil discards
	BestMoves int            // Stored best move count, 0 if unknown
}

// eventLog collects the event tags emitted during one step.
type eventLog []puzzle.Event

func (l *eventLog) SpawnBlood(core.Vec, puzzle.Kind, core.Dir) {}
func (l *eventLog) SpawnSplinters(core.Coord, core.Dir)        {}
func (l *eventLog) SpawnSmoke(core.Vec)                        {}
func (l *eventLog) Emit(ev puzzle.Event)                       { *l = append(*l, ev) }

// Session plays a single level.
type Session struct {
	level     levels.Level
	index     int
	cfg       config.GravityConfig
	engine    *puzzle.Engine
	particles *particles.System
	fx        puzzle.Fanout
	events    eventLog
	logger    *log.Logger

	phase      Phase
	pauseSel   int
	clearTimer float64
	best       int
	improved   bool
	wasFailing bool
	ticks      int
}

// New creates a session for the level at index within its pack.
func New(level levels.Level, index int, cfg config.GravityConfig, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		level:     level,
		index:     index,
		cfg:       cfg,
		particles: particles.New(cfg.Particles, opts.Seed),
		logger:    logger,
		best:      opts.BestMoves,
	}

	s.fx = puzzle.Fanout{s.particles, &s.events}
	if opts.Sound != nil {
		s.fx = append(s.fx, opts.Sound)
	}
	s.engine = puzzle.New(level.Grid(), cfg.Tuning(), s.fx)

	s.logger.Debug("level started", "level", index+1, "id", level.ID)
	return s
}

// Step advances the session by one tick.
func (s *Session) Step(in core.InputSource) core.StepResult {
	s.events = s.events[:0]
	s.ticks++

	switch s.phase {
	case PhasePlaying:
		s.stepPlaying(in)
	case PhasePaused:
		s.stepPaused(in)
	case PhaseClearing:
		s.stepClearing()
	}

	if s.phase != PhasePaused {
		s.particles.Update(1)
	}

	events := make([]string, len(s.events))
	for i, ev := range s.events {
		events[i] = string(ev)
	}
	return core.StepResult{State: s.State(), Events: events}
}

func (s *Session) stepPlaying(in core.InputSource) {
	switch {
	case pressed(in, core.ActionQuit):
		s.phase = PhaseQuit
		return
	case pressed(in, core.ActionPause):
		s.phase = PhasePaused
		s.pauseSel = 0
		return
	case pressed(in, core.ActionRestart):
		s.restart()
	case pressed(in, core.ActionUndo):
		s.undo()
	}

	s.engine.Update(puzzle.TickContext{Input: in, Ticks: 1})
	s.particles.SetGravity(s.engine.ActiveDirection())

	failing := s.engine.State() == puzzle.StateFailing
	if failing && !s.wasFailing {
		s.logger.Debug("level failing", "level", s.index+1, "moves", s.engine.Moves())
	}
	s.wasFailing = failing

	if s.engine.HasCleared() {
		s.beginClear()
	}
}

func (s *Session) stepClearing() {
	s.engine.Update(puzzle.TickContext{Ticks: 1})
	s.clearTimer++
	if s.clearTimer >= float64(s.cfg.Clear.AnimationTicks) {
		s.phase = PhaseCleared
	}
}

func (s *Session) beginClear() {
	moves := s.engine.Moves()
	s.phase = PhaseClearing
	s.clearTimer = 0
	s.improved = moves > 0 && (s.best == 0 || moves < s.best)
	if s.improved {
		s.best = moves
	}
	s.fx.Emit(audio.EventClear)
	s.logger.Debug("level cleared", "level", s.index+1, "moves", moves, "best", s.best)
}

func (s *Session) restart() {
	s.engine.Restart(false)
	s.particles.Clear()
	s.wasFailing = false
}

func (s *Session) undo() {
	if s.engine.Undo() {
		s.wasFailing = false
	}
}

// pressed reports whether the action went down this tick.
func pressed(in core.InputSource, a core.Action) bool {
	return in != nil && in.Action(a).State == core.InputPressed
}

// State returns the platform view of the session.
func (s *Session) State() core.GameState {
	return core.GameState{
		Level:   s.index,
		Moves:   s.engine.Moves(),
		Cleared: s.phase == PhaseCleared,
		Failing: s.engine.State() == puzzle.StateFailing,
		Paused:  s.phase == PhasePaused,
		Quit:    s.phase == PhaseQuit,
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Level returns the level being played.
func (s *Session) Level() levels.Level { return s.level }

// Index returns the zero-based level index.
func (s *Session) Index() int { return s.index }

// Engine returns the underlying puzzle engine.
func (s *Session) Engine() *puzzle.Engine { return s.engine }

// Particles returns the particle system.
func (s *Session) Particles() *particles.System { return s.particles }

// BestMoves returns the best known move count, including the current clear.
func (s *Session) BestMoves() int { return s.best }

// Improved reports whether the current clear beat the stored best.
func (s *Session) Improved() bool { return s.improved }

// Ticks returns the number of steps taken.
func (s *Session) Ticks() int { return s.ticks }

// Snapshot returns the object set of the engine.
func (s *Session) Snapshot() puzzle.Snapshot { return s.engine.Snapshot() }
