package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-gravity/internal/core"
)

func newEngine(t *testing.T, rows ...string) (*Engine, *Recorder) {
	t.Helper()
	g, err := ParseRows(rows)
	require.NoError(t, err)
	rec := &Recorder{}
	return New(g, DefaultTuning(), rec), rec
}

// settle ticks the engine without input until it is idle again.
func settle(t *testing.T, e *Engine) {
	t.Helper()
	for range 10000 {
		if e.State() == StateIdle {
			return
		}
		e.Update(TickContext{Ticks: 1})
	}
	t.Fatalf("engine did not come to rest, state %v", e.State())
}

// tickUntil ticks until cond holds.
func tickUntil(t *testing.T, e *Engine, cond func() bool) {
	t.Helper()
	for range 10000 {
		if cond() {
			return
		}
		e.Update(TickContext{Ticks: 1})
	}
	t.Fatal("condition never reached")
}

func move(t *testing.T, e *Engine, dir core.Dir) {
	t.Helper()
	require.True(t, e.Move(dir), "move %v should change something", dir)
	settle(t, e)
}

func rows(e *Engine) []string {
	return FormatRows(e.Grid(), e.Snapshot())
}

func TestEngineBlockedWaveStaysIdle(t *testing.T) {
	e, _ := newEngine(t, "@#c")

	assert.False(t, e.InitiateWave(core.DirRight))
	assert.Equal(t, StateIdle, e.State())
	assert.False(t, e.Move(core.DirRight))
	assert.Equal(t, 0, e.HistoryLen())
	assert.Equal(t, 0, e.Moves())
}

func TestEngineNoPushing(t *testing.T) {
	e, _ := newEngine(t, "@c#")

	assert.False(t, e.Move(core.DirRight), "a player must not push a blocked crate")
	assert.Equal(t, []string{"@c#"}, rows(e))
}

func TestEngineChainFollowsInSameWave(t *testing.T) {
	e, _ := newEngine(t, "@c.")

	require.True(t, e.InitiateWave(core.DirRight))
	// The crate moved away on the first pass and the player followed on the next.
	assert.Equal(t, core.C(1, 0), e.objects[0].Cell())
	assert.Equal(t, core.C(2, 0), e.objects[1].Cell())
	for _, o := range e.objects {
		assert.True(t, o.Moving(), "%v should be moving", o.Kind())
	}
	settle(t, e)
	assert.Equal(t, []string{".@c"}, rows(e))
}

func TestEngineBoulderCrushesCrateAndPlayerFollows(t *testing.T) {
	e, rec := newEngine(t, "@Oc")

	move(t, e, core.DirRight)

	assert.Equal(t, []string{".@O"}, rows(e))
	assert.Equal(t, 0, e.CountActive(KindCrate))
	assert.Equal(t, 1, rec.Count(EventBreak))
	assert.Equal(t, []core.Coord{core.C(2, 0)}, rec.Splinters)
	assert.Equal(t, 1, e.HistoryLen())
}

func TestEngineBoulderCrushesRubble(t *testing.T) {
	e, rec := newEngine(t, "O%")

	move(t, e, core.DirRight)

	assert.Equal(t, []string{".O"}, rows(e))
	assert.Equal(t, 0, e.CountActive(KindRubble))
	assert.Equal(t, 1, e.CountActive(KindBoulder))
	assert.Equal(t, 1, rec.Count(EventBreak))
}

func TestEngineCrateBurnsOnFire(t *testing.T) {
	e, rec := newEngine(t, "c^.")

	move(t, e, core.DirRight)

	assert.Equal(t, 0, e.CountActive(KindCrate))
	assert.Equal(t, 0, e.CountActive(KindFire))
	assert.Equal(t, 1, rec.Count(EventBreak))
	assert.Equal(t, 1, rec.Smoke)
	assert.Equal(t, StateIdle, e.State())

	// The fire animates out, the crate is already gone.
	views := e.Objects()
	require.Len(t, views, 1)
	assert.Equal(t, KindFire, views[0].Kind)
	assert.True(t, views[0].Dying)

	for range int(e.Tuning().DeathTicks) + 1 {
		e.Update(TickContext{})
	}
	assert.Empty(t, e.Objects())
}

func TestEngineBoulderOnFireOnlyBurns(t *testing.T) {
	e, rec := newEngine(t, "O^.")

	move(t, e, core.DirRight)

	assert.Equal(t, []string{"..O"}, rows(e))
	assert.Equal(t, 0, e.CountActive(KindFire))
	assert.Equal(t, 1, rec.Count(EventBurn))
	assert.Equal(t, 0, rec.Count(EventBreak))
}

func TestEngineGemCollected(t *testing.T) {
	e, rec := newEngine(t, "@*")

	require.False(t, e.HasCleared())
	move(t, e, core.DirRight)

	assert.Equal(t, 1, rec.Count(EventCollect))
	assert.Equal(t, 0, e.CountActive(KindGem))
	assert.Equal(t, StateIdle, e.State())
	assert.True(t, e.HasCleared())
}

func TestEngineWithoutGemsNeverClears(t *testing.T) {
	e, _ := newEngine(t, "@..")

	move(t, e, core.DirRight)
	assert.False(t, e.HasCleared())
}

func TestEngineCrushedPlayerFailsThenUndoes(t *testing.T) {
	e, rec := newEngine(t, "c.@#")
	initial := e.Snapshot()

	require.True(t, e.Move(core.DirRight))
	tickUntil(t, e, func() bool { return e.State() == StateFailing })

	assert.Equal(t, []Kind{KindPlayer}, rec.Blood)
	assert.Equal(t, 1, rec.Count(EventKill))
	assert.False(t, e.Move(core.DirLeft), "input is ignored while failing")

	settle(t, e)

	assert.True(t, e.Snapshot().Equal(initial))
	assert.Equal(t, 0, e.HistoryLen())
	assert.Equal(t, 0, e.Moves())
	assert.Equal(t, 1, rec.Count(EventUndo))
	assert.Equal(t, 0, rec.Count(EventRestart))
}

func TestEngineFailureWithoutHistoryRestarts(t *testing.T) {
	e, rec := newEngine(t, "c.@#")

	require.True(t, e.InitiateWave(core.DirRight))
	settle(t, e)

	assert.True(t, e.Snapshot().Equal(e.InitialSnapshot()))
	assert.Equal(t, 0, e.HistoryLen(), "automatic restart must not push history")
	assert.Equal(t, 1, rec.Count(EventRestart))
}

func TestEngineFireKillsHuman(t *testing.T) {
	e, rec := newEngine(t, "h^#")

	require.True(t, e.Move(core.DirRight))
	tickUntil(t, e, func() bool { return e.State() == StateFailing })

	assert.Equal(t, []Kind{KindHuman}, rec.Blood)
	assert.Equal(t, 0, e.CountActive(KindFire))
}

func TestEngineFailingGraceRespectsTuning(t *testing.T) {
	e, _ := newEngine(t, "c.@#")

	require.True(t, e.Move(core.DirRight))
	tickUntil(t, e, func() bool { return e.State() == StateFailing })

	for e.FailTimer() < e.Tuning().FailGraceTicks-1 {
		e.Update(TickContext{})
		require.Equal(t, StateFailing, e.State())
	}
	e.Update(TickContext{})
	e.Update(TickContext{})
	assert.Equal(t, StateIdle, e.State())
}

func TestEngineContinuesFallingWithoutInput(t *testing.T) {
	e, _ := newEngine(t, "@....")

	require.True(t, e.Move(core.DirRight))
	base := e.SettleSpeed()

	tickUntil(t, e, func() bool { return e.objects[0].Cell().X >= 2 })
	assert.Equal(t, StateSettling, e.State())
	assert.Greater(t, e.SettleSpeed(), base, "continuation keeps accelerating")

	settle(t, e)
	assert.Equal(t, []string{"....@"}, rows(e))
	assert.Equal(t, 1, e.HistoryLen(), "continuation never commits a snapshot")
	assert.Equal(t, 1, e.Moves())
	assert.Equal(t, core.DirRight, e.objects[0].Orientation())
}

func TestEngineIgnoresMovesWhileSettling(t *testing.T) {
	e, _ := newEngine(t, "@..", "...")

	require.True(t, e.Move(core.DirRight))
	assert.False(t, e.Move(core.DirDown))
	settle(t, e)
	assert.Equal(t, []string{"..@", "..."}, rows(e))
}

func TestEngineUpdateReadsMostRecentDirection(t *testing.T) {
	e, _ := newEngine(t, "...", ".@.", "...")

	e.Update(TickContext{Input: core.Press(core.ActionLeft, core.ActionUp)})
	require.Equal(t, StateSettling, e.State())
	assert.Equal(t, core.DirUp, e.ActiveDirection())
	settle(t, e)
	assert.Equal(t, []string{".@.", "...", "..."}, rows(e))
}

func TestEngineUndoRoundTrip(t *testing.T) {
	e, _ := newEngine(t,
		"#######",
		"#@..c.#",
		"#..#..#",
		"#.c..*#",
		"#######",
	)

	var before []Snapshot
	for _, d := range []core.Dir{core.DirRight, core.DirDown, core.DirLeft, core.DirUp} {
		s := e.Snapshot()
		if !e.Move(d) {
			continue
		}
		before = append(before, s)
		settle(t, e)
	}
	require.NotEmpty(t, before)
	require.Equal(t, len(before), e.HistoryLen())

	for i := len(before) - 1; i >= 0; i-- {
		require.True(t, e.Undo())
		assert.True(t, e.Snapshot().Equal(before[i]), "undo %d", i)
		assert.Equal(t, i, e.Moves())
	}
	assert.False(t, e.Undo(), "cannot undo past the initial state")
	assert.True(t, e.Snapshot().Equal(e.InitialSnapshot()))
}

func TestEngineRestartIsIdempotent(t *testing.T) {
	e, rec := newEngine(t,
		"#####",
		"#@.c#",
		"#..*#",
		"#####",
	)

	move(t, e, core.DirDown)
	move(t, e, core.DirRight)
	afterMoves := e.Snapshot()

	e.Restart(false)
	assert.True(t, e.Snapshot().Equal(e.InitialSnapshot()))
	assert.Equal(t, 0, e.Moves())
	assert.Equal(t, 3, e.HistoryLen())

	e.Restart(false)
	assert.True(t, e.Snapshot().Equal(e.InitialSnapshot()))
	assert.Equal(t, 2, rec.Count(EventRestart))

	require.True(t, e.Undo())
	require.True(t, e.Undo())
	assert.True(t, e.Snapshot().Equal(afterMoves), "a restart can be undone")
	assert.Equal(t, 2, e.Moves())
}

func TestEngineUndoRecoversFreshObjects(t *testing.T) {
	e, _ := newEngine(t, "@.")

	move(t, e, core.DirRight)
	old := e.objects[0]
	require.True(t, e.Undo())

	assert.NotSame(t, old, e.objects[0])
	assert.Equal(t, core.C(1, 0), old.Cell(), "undo must not mutate discarded objects")
	assert.Equal(t, core.C(0, 0), e.objects[0].Cell())
}

func TestEngineNeverLeavesBlockingOverlap(t *testing.T) {
	levels := [][]string{
		{"@Oc", "h.%", "c^*"},
		{"O..c", "c@.h", ".%O.", "^c.@"},
		{"cOc.", "O.c@", "h.O.", "%..*"},
		{"@c.O.", ".h.c.", "O.%.c", ".c^h."},
	}
	for li, lv := range levels {
		for _, d := range core.Directions {
			e, _ := newEngine(t, lv...)
			if !e.Move(d) {
				continue
			}
			for e.State() != StateIdle {
				e.Update(TickContext{})
				if anyMoving(e) {
					continue
				}
				seen := map[core.Coord]Kind{}
				for _, o := range e.objects {
					if !o.Blocks() {
						continue
					}
					if k, dup := seen[o.Cell()]; dup {
						t.Fatalf("level %d dir %v: %v and %v share %v", li, d, k, o.Kind(), o.Cell())
					}
					seen[o.Cell()] = o.Kind()
				}
			}
		}
	}
}

// anyMoving reports whether a slide is still in progress.
func anyMoving(e *Engine) bool {
	for _, o := range e.objects {
		if o.Moving() {
			return true
		}
	}
	return false
}

func TestEngineRestingCrateSparesPlayer(t *testing.T) {
	e, rec := newEngine(t, "c", "@")

	assert.False(t, e.Move(core.DirDown), "neither can move")
	for range 40 {
		e.Update(TickContext{})
	}
	assert.Equal(t, StateIdle, e.State())
	assert.Empty(t, rec.Blood)
	assert.Equal(t, 0, e.HistoryLen())
}

func TestEngineLockstepCrateSparesPlayer(t *testing.T) {
	e, rec := newEngine(t, "..@c")

	move(t, e, core.DirLeft)

	assert.Equal(t, []string{"@c.."}, rows(e))
	assert.Empty(t, rec.Blood)
	assert.Equal(t, 0, rec.Count(EventUndo))
	assert.Equal(t, 1, e.HistoryLen())
}

func TestEngineFallingCrateCrushesRestingPlayer(t *testing.T) {
	e, rec := newEngine(t, "c", ".", ".", "@")

	require.True(t, e.Move(core.DirDown))
	tickUntil(t, e, func() bool { return e.State() == StateFailing })

	assert.Equal(t, []Kind{KindPlayer}, rec.Blood)
	assert.Equal(t, core.C(0, 3), e.objects[0].Cell())
}

func TestEngineBlockedObjectsTurnAndUndo(t *testing.T) {
	e, _ := newEngine(t, "@..", "h#.")
	before := e.Snapshot()

	move(t, e, core.DirRight)

	human := e.objects[1]
	require.Equal(t, KindHuman, human.Kind())
	assert.Equal(t, core.C(0, 1), human.Cell())
	assert.Equal(t, core.DirRight, human.Orientation(), "a blocked object faces the move")

	require.True(t, e.Undo())
	assert.True(t, e.Snapshot().Equal(before))
	assert.Equal(t, core.DirNone, e.objects[1].Orientation())
}

func TestEngineBlockedMoveOnlyTurns(t *testing.T) {
	e, _ := newEngine(t, "@#")

	assert.False(t, e.Move(core.DirRight))
	assert.Equal(t, core.DirRight, e.objects[0].Orientation())
	assert.Equal(t, 0, e.HistoryLen())
}

func TestEngineCrushNeedsMomentum(t *testing.T) {
	e, _ := newEngine(t, "@c", "O%")
	player, crate, boulder := e.objects[0], e.objects[1], e.objects[2]

	assert.True(t, e.IsTileFreeFor(core.C(1, 1), boulder), "rubble gives way to a boulder")
	assert.False(t, e.IsTileFreeFor(core.C(0, 0), crate), "a resting crate does not crush")

	crate.falling = true
	assert.True(t, e.IsTileFreeFor(core.C(0, 0), crate), "a falling crate crushes a resting player")

	player.falling = true
	assert.False(t, e.IsTileFreeFor(core.C(0, 0), crate), "objects falling together never crush")
}

func TestEngineOccupancy(t *testing.T) {
	e, _ := newEngine(t,
		"@c*",
		"#^=",
	)

	assert.False(t, e.IsTileFree(core.C(-1, 0)), "out of bounds")
	assert.False(t, e.IsTileFree(core.C(0, 1)), "wall")
	assert.False(t, e.IsTileFree(core.C(1, 0)), "crate")
	assert.True(t, e.IsTileFree(core.C(2, 0)), "gems are passable")
	assert.True(t, e.IsTileFree(core.C(1, 1)), "fire is passable")
	assert.True(t, e.IsTileFree(core.C(2, 1)), "bridges are floor")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "settling", StateSettling.String())
	assert.Equal(t, "failing", StateFailing.String())
	assert.Equal(t, "unknown", State(42).String())
}
