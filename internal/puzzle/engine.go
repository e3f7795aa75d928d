package puzzle

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-gravity/internal/core"
)

// State is the engine's top-level state.
type State int

const (
	StateIdle State = iota
	StateSettling
	StateFailing
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSettling:
		return "settling"
	case StateFailing:
		return "failing"
	default:
		return "unknown"
	}
}

// Tuning holds the timing constants of the simulation, in ticks.
type Tuning struct {
	SettleBaseSpeed    float64 // settle timer increment on the first tick of a move
	SettleAcceleration float64 // added to the increment every tick
	SettleMaxSpeed     float64 // increment clamp
	FailGraceTicks     float64 // delay between a death and automatic recovery
	DeathTicks         float64 // length of the death animation
	AnimationSpeed     float64 // idle animation cycles per tick
}

// DefaultTuning returns the standard timing.
func DefaultTuning() Tuning {
	return Tuning{
		SettleBaseSpeed:    1.0 / 10.0,
		SettleAcceleration: 1.0 / 120.0,
		SettleMaxSpeed:     1.0 / 2.0,
		FailGraceTicks:     60,
		DeathTicks:         20,
		AnimationSpeed:     1.0 / 30.0,
	}
}

// TickContext carries everything the engine reads during one tick.
type TickContext struct {
	Input core.InputSource
	Ticks float64 // elapsed ticks; zero means one
}

// Engine owns the grid, the live objects, wave resolution and the undo history.
// It is not safe for concurrent use; drive it from a single tick loop.
type Engine struct {
	grid   *Grid
	tuning Tuning
	fx     Effects

	objects   []*Object
	occupancy *intmap.Map[int, []*Object]

	initial Snapshot
	history History
	moves   int

	settling    bool
	activeDir   core.Dir
	settleTimer float64
	settleSpeed float64

	failing   bool
	failTimer float64
}

// New creates an engine for the grid, seeding objects from its spawn markers.
func New(grid *Grid, tuning Tuning, fx Effects) *Engine {
	if fx == nil {
		fx = NopEffects{}
	}
	e := &Engine{
		grid:      grid,
		tuning:    tuning,
		fx:        fx,
		occupancy: intmap.New[int, []*Object](grid.width * grid.height),
		initial:   grid.InitialSnapshot(),
	}
	e.recover(e.initial)
	return e
}

// IsTileFree reports whether c is inside the grid, not a wall, and not occupied
// by any active object that blocks.
func (e *Engine) IsTileFree(c core.Coord) bool {
	return e.IsTileFreeFor(c, nil)
}

// IsTileFreeFor is IsTileFree from the point of view of mover: objects mover
// may crush do not block it (see Object.canEnter).
func (e *Engine) IsTileFreeFor(c core.Coord, mover *Object) bool {
	if !e.grid.InBounds(c) || e.grid.IsWall(c) {
		return false
	}

	occupants, _ := e.occupancy.Get(e.grid.index(c))
	for _, o := range occupants {
		if o == mover || !o.Blocks() {
			continue
		}
		if mover != nil && mover.canEnter(o) {
			continue
		}
		return false
	}
	return true
}

// Move is a player-triggered move: it starts a wave in dir and, when anything
// moved, records the state from just before the wave for undo. Moves are
// ignored while a wave is settling or the engine is recovering from a failure.
func (e *Engine) Move(dir core.Dir) bool {
	if e.settling || e.failing {
		return false
	}

	// Blocked objects still turn, so the snapshot is taken before the wave.
	before := e.Snapshot()
	if !e.InitiateWave(dir) {
		return false
	}
	e.history.Push(before)
	e.moves++
	return true
}

// InitiateWave moves every eligible object one cell in dir, re-scanning until a
// full pass moves nothing, so objects freed by earlier movers follow in the same
// wave. It reports whether anything moved; if so the settle animation restarts.
func (e *Engine) InitiateWave(dir core.Dir) bool {
	e.clearFalling()
	if !e.wave(dir) {
		return false
	}
	e.settling = true
	e.activeDir = dir
	e.settleTimer = 0
	e.settleSpeed = e.tuning.SettleBaseSpeed
	return true
}

func (e *Engine) wave(dir core.Dir) bool {
	if dir == core.DirNone {
		return false
	}

	moved := false
	for {
		pass := false
		for _, o := range e.objects {
			from := o.cell
			if !o.Move(e, dir) {
				continue
			}
			e.relocate(o, from)
			pass = true
		}
		if !pass {
			return moved
		}
		moved = true
	}
}

// clearFalling forgets the momentum of the previous wave.
func (e *Engine) clearFalling() {
	for _, o := range e.objects {
		o.falling = false
	}
}

// CommitSnapshot pushes the current objects, with slides in progress backed out.
func (e *Engine) CommitSnapshot() {
	e.history.Push(Capture(e.objects, e.moves))
}

// Undo restores the most recent snapshot. It reports whether one existed.
func (e *Engine) Undo() bool {
	s, ok := e.history.Pop()
	if !ok {
		return false
	}
	e.recover(s)
	e.fx.Emit(EventUndo)
	return true
}

// Restart returns to the initial state. Unless suppressHistoryPush is set, the
// current state is pushed first so the restart itself can be undone.
func (e *Engine) Restart(suppressHistoryPush bool) {
	if !suppressHistoryPush {
		e.history.Push(Capture(e.objects, e.moves))
	}
	e.recover(e.initial)
	e.fx.Emit(EventRestart)
}

func (e *Engine) recover(s Snapshot) {
	e.objects = Recover(s)
	e.moves = s.Moves

	e.settling = false
	e.activeDir = core.DirNone
	e.settleTimer = 0
	e.settleSpeed = 0
	e.failing = false
	e.failTimer = 0

	e.rebuildOccupancy()
}

// HasCleared reports whether every gem of the level has been collected and the
// engine is at rest. Levels without gems never clear.
func (e *Engine) HasCleared() bool {
	if e.settling || e.failing || e.initial.Count(KindGem) == 0 {
		return false
	}
	for _, o := range e.objects {
		if o.kind == KindGem && o.Active() {
			return false
		}
	}
	return true
}

// State returns the current engine state. Failing takes precedence over settling.
func (e *Engine) State() State {
	switch {
	case e.failing:
		return StateFailing
	case e.settling:
		return StateSettling
	default:
		return StateIdle
	}
}

// Grid returns the static terrain.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// Tuning returns the timing constants.
func (e *Engine) Tuning() Tuning {
	return e.tuning
}

// Moves returns the number of player moves that changed something.
func (e *Engine) Moves() int {
	return e.moves
}

// HistoryLen returns the number of undoable snapshots.
func (e *Engine) HistoryLen() int {
	return e.history.Len()
}

// ActiveDirection returns the direction of the current or last wave.
func (e *Engine) ActiveDirection() core.Dir {
	return e.activeDir
}

// SettleTimer returns the progress of the current slide, from 0 to 1.
func (e *Engine) SettleTimer() float64 {
	return e.settleTimer
}

// SettleSpeed returns the settle timer increment per tick.
func (e *Engine) SettleSpeed() float64 {
	return e.settleSpeed
}

// FailTimer returns the ticks spent in the failure grace period.
func (e *Engine) FailTimer() float64 {
	return e.failTimer
}

// InitialSnapshot returns the object set the level starts with.
func (e *Engine) InitialSnapshot() Snapshot {
	return e.initial
}

// Snapshot captures the current object set and move counter.
func (e *Engine) Snapshot() Snapshot {
	return Capture(e.objects, e.moves)
}

// ObjectView is a read-only copy of an object for presentation.
type ObjectView struct {
	Kind           Kind
	Cell           core.Coord
	Position       core.Vec // interpolated slide position, in cells
	Orientation    core.Dir
	Moving         bool
	Alive          bool
	Dying          bool
	DeathProgress  float64
	AnimationPhase float64
}

// Objects returns views of every object that is still shown, including those
// playing their death animation.
func (e *Engine) Objects() []ObjectView {
	views := make([]ObjectView, 0, len(e.objects))
	for _, o := range e.objects {
		if o.Removed() {
			continue
		}
		views = append(views, ObjectView{
			Kind:           o.kind,
			Cell:           o.cell,
			Position:       o.RenderPosition(e.settleTimer),
			Orientation:    o.orientation,
			Moving:         o.moving,
			Alive:          o.alive,
			Dying:          o.dying,
			DeathProgress:  o.DeathProgress(e.tuning.DeathTicks),
			AnimationPhase: o.animTimer,
		})
	}
	return views
}

// CountActive returns the number of active objects of the given kind.
func (e *Engine) CountActive(kind Kind) int {
	n := 0
	for _, o := range e.objects {
		if o.kind == kind && o.Active() {
			n++
		}
	}
	return n
}

func (e *Engine) rebuildOccupancy() {
	e.occupancy.Clear()
	for _, o := range e.objects {
		if o.Blocks() {
			e.occupy(o)
		}
	}
}

func (e *Engine) occupy(o *Object) {
	k := e.grid.index(o.cell)
	list, _ := e.occupancy.Get(k)
	e.occupancy.Put(k, append(list, o))
}

func (e *Engine) relocate(o *Object, from core.Coord) {
	if !o.Blocks() {
		return
	}

	k := e.grid.index(from)
	if list, ok := e.occupancy.Get(k); ok {
		for i, x := range list {
			if x == o {
				list = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(list) == 0 {
			e.occupancy.Del(k)
		} else {
			e.occupancy.Put(k, list)
		}
	}
	e.occupy(o)
}
