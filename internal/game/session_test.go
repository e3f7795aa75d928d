package game

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-gravity/internal/audio"
	"github.com/vovakirdan/tui-gravity/internal/config"
	"github.com/vovakirdan/tui-gravity/internal/core"
	"github.com/vovakirdan/tui-gravity/internal/levels"
	"github.com/vovakirdan/tui-gravity/internal/puzzle"
)

// testLevel builds a one-level pack from ASCII rows.
func testLevel(t *testing.T, rows ...string) levels.Level {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("id: test\nlevels:\n  - id: t\n    name: Test Level\n    rows:\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "      - %q\n", r)
	}
	p, err := levels.Parse([]byte(sb.String()))
	require.NoError(t, err)
	return p.Levels[0]
}

func testConfig() config.GravityConfig {
	cfg := config.DefaultGravityConfig()
	cfg.Clear.AnimationTicks = 5
	return cfg
}

func newSession(t *testing.T, opts Options, rows ...string) *Session {
	t.Helper()
	return New(testLevel(t, rows...), 2, testConfig(), opts)
}

// run steps without input until cond holds, collecting the emitted events.
func run(t *testing.T, s *Session, cond func() bool) []string {
	t.Helper()
	var events []string
	for range 1000 {
		if cond() {
			return events
		}
		events = append(events, s.Step(core.StaticInput{}).Events...)
	}
	t.Fatalf("condition not reached, phase %v, engine %v", s.Phase(), s.Engine().State())
	return nil
}

func idle(s *Session) func() bool {
	return func() bool { return s.Engine().State() == puzzle.StateIdle }
}

func TestSessionClearFlow(t *testing.T) {
	sound := &puzzle.Recorder{}
	s := newSession(t, Options{Sound: sound}, "@*")

	res := s.Step(core.Press(core.ActionRight))
	assert.Equal(t, 1, res.State.Moves)
	assert.Equal(t, 2, res.State.Level)

	events := run(t, s, func() bool { return s.Phase() == PhaseClearing })
	assert.Contains(t, events, string(puzzle.EventCollect))
	assert.Contains(t, events, string(audio.EventClear))
	assert.True(t, s.Improved())
	assert.Equal(t, 1, s.BestMoves())

	// Input is ignored while the animation runs
	s.Step(core.Press(core.ActionRestart))
	assert.Equal(t, PhaseClearing, s.Phase())

	run(t, s, func() bool { return s.Phase() == PhaseCleared })
	assert.True(t, s.State().Cleared)
	assert.Equal(t, 1, sound.Count(audio.EventClear))
	assert.Equal(t, 1, sound.Count(puzzle.EventCollect))
}

func TestSessionKeepsBetterStoredBest(t *testing.T) {
	s := newSession(t, Options{BestMoves: 1}, "@.*")

	s.Step(core.Press(core.ActionRight))
	run(t, s, func() bool { return s.Phase() == PhaseClearing })

	assert.False(t, s.Improved())
	assert.Equal(t, 1, s.BestMoves())
}

func TestSessionRestartAndUndo(t *testing.T) {
	s := newSession(t, Options{}, "@..", "...", "..*")
	initial := s.Snapshot()

	s.Step(core.Press(core.ActionRight))
	run(t, s, idle(s))
	moved := s.Snapshot()
	require.False(t, moved.Equal(initial))

	res := s.Step(core.Press(core.ActionRestart))
	assert.Equal(t, 0, res.State.Moves)
	assert.Contains(t, res.Events, string(puzzle.EventRestart))
	assert.True(t, s.Snapshot().Equal(initial))

	res = s.Step(core.Press(core.ActionUndo))
	assert.Contains(t, res.Events, string(puzzle.EventUndo))
	assert.True(t, s.Snapshot().Equal(moved), "restart itself can be undone")
	assert.Equal(t, 1, res.State.Moves)
}

func TestSessionPauseMenu(t *testing.T) {
	s := newSession(t, Options{}, "@..", "..*")

	s.Step(core.Press(core.ActionRight))
	run(t, s, idle(s))

	res := s.Step(core.Press(core.ActionPause))
	require.True(t, res.State.Paused)
	assert.Equal(t, PauseResume, s.PauseSelection())

	// Frozen while paused
	before := s.Snapshot()
	s.Step(core.Press(core.ActionDown))
	assert.True(t, s.Snapshot().Equal(before))
	assert.Equal(t, PauseUndo, s.PauseSelection())

	s.Step(core.Press(core.ActionUp))
	s.Step(core.Press(core.ActionUp))
	assert.Equal(t, PauseQuit, s.PauseSelection(), "selection wraps")

	s.Step(core.Press(core.ActionDown))
	s.Step(core.Press(core.ActionDown))
	s.Step(core.Press(core.ActionDown))
	require.Equal(t, PauseRestart, s.PauseSelection())

	res = s.Step(core.Press(core.ActionSelect))
	assert.False(t, res.State.Paused)
	assert.Equal(t, PhasePlaying, s.Phase())
	assert.Equal(t, 0, res.State.Moves)
}

func TestSessionPauseResumeAndQuit(t *testing.T) {
	s := newSession(t, Options{}, "@.*")

	s.Step(core.Press(core.ActionPause))
	s.Step(core.Press(core.ActionBack))
	assert.Equal(t, PhasePlaying, s.Phase())

	s.Step(core.Press(core.ActionPause))
	s.Step(core.Press(core.ActionUp))
	require.Equal(t, PauseQuit, s.PauseSelection())
	res := s.Step(core.Press(core.ActionSelect))
	assert.True(t, res.State.Quit)

	q := newSession(t, Options{}, "@.*")
	assert.True(t, q.Step(core.Press(core.ActionQuit)).State.Quit)
	assert.Equal(t, "quit", q.Phase().String())
}

func TestSessionFailureRecovers(t *testing.T) {
	s := newSession(t, Options{}, "@^", "..", ".*")

	s.Step(core.Press(core.ActionRight))
	sawFailing := false
	blood := 0
	run(t, s, func() bool {
		sawFailing = sawFailing || s.State().Failing
		blood = max(blood, s.Particles().Len())
		return sawFailing && s.Engine().State() == puzzle.StateIdle
	})

	assert.Equal(t, 0, s.State().Moves, "the fatal move was undone")
	assert.NotZero(t, blood)
	assert.Equal(t, PhasePlaying, s.Phase())
}

func TestSessionDeterminism(t *testing.T) {
	play := func() *Session {
		s := New(testLevel(t, "O%", ".*", "@."), 0, testConfig(), Options{Seed: 99})
		s.Step(core.Press(core.ActionRight))
		for range 30 {
			s.Step(core.StaticInput{})
		}
		return s
	}

	a, b := play(), play()
	assert.True(t, a.Snapshot().Equal(b.Snapshot()))
	assert.Equal(t, a.Particles().Live(), b.Particles().Live())
	assert.Equal(t, a.Ticks(), b.Ticks())
}

func TestSessionRender(t *testing.T) {
	s := newSession(t, Options{BestMoves: 4}, "#@.*", "=c^h")
	screen := core.NewScreen(40, 12)

	s.Render(screen)
	out := screen.String()
	assert.Contains(t, screen.Row(0), "3. Test Level")
	assert.Contains(t, screen.Row(0), "Moves: 0  Best: 4")
	for _, want := range []string{"██", "══", "@", "*", "#", "^", "h"} {
		assert.Contains(t, out, want)
	}

	s.Step(core.Press(core.ActionPause))
	s.Render(screen)
	assert.Contains(t, screen.String(), "PAUSED")
	assert.Contains(t, screen.String(), "> Resume")
}

func TestSessionRenderFacing(t *testing.T) {
	s := newSession(t, Options{}, "...@", "...*")
	screen := core.NewScreen(20, 8)

	s.Step(core.Press(core.ActionLeft))
	run(t, s, idle(s))
	s.Render(screen)
	assert.Contains(t, screen.String(), "‹@")
}

func TestSessionRenderClear(t *testing.T) {
	s := newSession(t, Options{}, "@*")
	screen := core.NewScreen(40, 12)

	s.Step(core.Press(core.ActionRight))
	run(t, s, func() bool { return s.Phase() == PhaseClearing })
	s.Render(screen)
	assert.Contains(t, screen.String(), "LEVEL CLEAR")
	assert.Contains(t, screen.String(), "(new best)")
}
