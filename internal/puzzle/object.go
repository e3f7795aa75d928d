package puzzle

import "github.com/vovakirdan/tui-gravity/internal/core"

// Occupancy answers whether an object may enter a cell.
type Occupancy interface {
	IsTileFreeFor(c core.Coord, mover *Object) bool
}

// Object is a single puzzle entity.
//
// cell is authoritative and advances the moment a move is decided; the sliding
// position shown on screen is derived from cell, moveVector and the settle timer.
type Object struct {
	kind        Kind
	cell        core.Coord
	orientation core.Dir

	moving          bool
	moveVector      core.Coord
	prevOrientation core.Dir
	falling         bool // slid during the previous settle cycle of the current wave

	alive        bool
	dying        bool
	deathElapsed float64

	animTimer float64
}

// NewObject creates a live object at rest.
func NewObject(kind Kind, cell core.Coord, orientation core.Dir) *Object {
	o := &Object{
		kind:        kind,
		cell:        cell,
		orientation: orientation,
		alive:       true,
	}
	// Neighbouring objects animate out of phase.
	if cell.X%2 != cell.Y%2 {
		o.animTimer = 0.5
	}
	return o
}

// Kind returns the object's kind.
func (o *Object) Kind() Kind {
	return o.kind
}

// Cell returns the authoritative cell, already advanced during a slide.
func (o *Object) Cell() core.Coord {
	return o.cell
}

// Orientation returns the direction the object last faced.
func (o *Object) Orientation() core.Dir {
	return o.orientation
}

// Moving reports whether the object is mid-slide.
func (o *Object) Moving() bool {
	return o.moving
}

// MoveVector returns the offset of the current slide, zero at rest.
func (o *Object) MoveVector() core.Coord {
	return o.moveVector
}

// Falling reports whether the object slid during the previous settle cycle of
// the wave in progress.
func (o *Object) Falling() bool {
	return o.falling
}

// Alive reports whether the object has not been killed or destroyed.
func (o *Object) Alive() bool {
	return o.alive
}

// Dying reports whether the death animation is playing.
func (o *Object) Dying() bool {
	return o.dying
}

// DeathElapsed returns the ticks spent in the death animation.
func (o *Object) DeathElapsed() float64 {
	return o.deathElapsed
}

// AnimationPhase returns the idle animation phase in [0, 1).
func (o *Object) AnimationPhase() float64 {
	return o.animTimer
}

// Caps returns the capabilities of the object's kind.
func (o *Object) Caps() Capabilities {
	return o.kind.Caps()
}

// Active reports whether the object takes part in the puzzle.
func (o *Object) Active() bool {
	return o.alive && !o.dying
}

// Removed reports whether the object is gone, animation included.
func (o *Object) Removed() bool {
	return !o.alive && !o.dying
}

// Blocks reports whether the object keeps others out of its cell.
func (o *Object) Blocks() bool {
	return o.Active() && !o.Caps().Passable
}

// StartCell returns the cell the current slide started from.
func (o *Object) StartCell() core.Coord {
	return o.cell.Sub(o.moveVector)
}

// Center returns the center of the object's cell in cell units.
func (o *Object) Center() core.Vec {
	return cellCenter(o.cell)
}

// StartOrientation is the orientation the object had before its current slide.
func (o *Object) StartOrientation() core.Dir {
	if o.moving {
		return o.prevOrientation
	}
	return o.orientation
}

// Move tries to slide the object one cell in dir. It reports whether the object
// moved, which is how the engine detects that a wave changed anything. The
// object faces dir even when the target cell is blocked.
func (o *Object) Move(occ Occupancy, dir core.Dir) bool {
	if !o.Active() || o.moving || o.Caps().Immovable || dir == core.DirNone {
		return false
	}

	prev := o.orientation
	o.orientation = dir

	target := o.cell.Step(dir)
	if !occ.IsTileFreeFor(target, o) {
		return false
	}

	o.prevOrientation = prev
	o.moveVector = target.Sub(o.cell)
	o.cell = target
	o.moving = true
	o.animTimer = 0
	return true
}

// canEnter reports whether o may slide onto a cell held by victim. Debris gives
// way to a boulder at once. A player or human is only crushed by an object that
// was already falling while the victim was at rest.
func (o *Object) canEnter(victim *Object) bool {
	if !o.kind.CanCrush(victim.kind) {
		return false
	}
	if !victim.Caps().Smashable {
		return true
	}
	return o.falling && !victim.falling
}

// HaltMovement ends the current slide. Calling it on a resting object is a no-op.
func (o *Object) HaltMovement() {
	o.moving = false
	o.moveVector = core.Coord{}
}

// RenderPosition projects the on-screen cell position for a slide that is
// fraction t (0..1) complete.
func (o *Object) RenderPosition(t float64) core.Vec {
	pos := o.cell.Vec()
	if !o.moving {
		return pos
	}
	back := o.moveVector.Vec().Scale(1 - core.ClampF(t, 0, 1))
	return core.Vec{X: pos.X - back.X, Y: pos.Y - back.Y}
}

// CheckOverlay resolves the interaction of o with another object that slid onto
// o's cell during the wave being settled. It is evaluated for both orderings of
// every pair; the roles are not symmetric. A true result signals failure: a
// sentient object was crushed or burned.
func (o *Object) CheckOverlay(other *Object, fx Effects) bool {
	if o == other || !o.Active() || !other.Active() || !other.moving || o.cell != other.cell {
		return false
	}

	switch {
	case o.kind == KindGem && other.kind == KindPlayer:
		o.beginDying()
		fx.Emit(EventCollect)
		return false

	case (o.kind == KindCrate || o.kind == KindRubble) && other.kind == KindBoulder:
		o.destroy()
		fx.SpawnSplinters(o.cell, other.orientation)
		fx.Emit(EventBreak)
		return false

	case o.kind == KindFire:
		o.beginDying()
		switch other.kind {
		case KindCrate:
			other.destroy()
			fx.SpawnSplinters(other.cell, other.orientation)
			fx.SpawnSmoke(o.Center())
			fx.Emit(EventBreak)
		case KindBoulder:
			fx.SpawnSmoke(o.Center())
			fx.Emit(EventBurn)
		case KindPlayer, KindHuman:
			other.kill(fx, other.orientation)
			return true
		}
		return false

	case o.Caps().Smashable:
		o.kill(fx, other.orientation)
		return true
	}

	return false
}

// Update advances cosmetic timers and the death animation by ticks.
func (o *Object) Update(ticks, animationSpeed, deathDuration float64) {
	if o.Removed() {
		return
	}

	o.animTimer += animationSpeed * ticks
	o.animTimer -= float64(int(o.animTimer))

	if !o.dying {
		return
	}
	o.deathElapsed += ticks
	if o.deathElapsed >= deathDuration {
		o.alive = false
		o.dying = false
	}
}

// DeathProgress returns how far the death animation is, from 0 to 1.
func (o *Object) DeathProgress(deathDuration float64) float64 {
	if !o.dying || deathDuration <= 0 {
		return 0
	}
	return core.ClampF(o.deathElapsed/deathDuration, 0, 1)
}

// beginDying starts the decay animation; the object stops interacting at once.
func (o *Object) beginDying() {
	if o.dying {
		return
	}
	o.dying = true
	o.deathElapsed = 0
}

// kill marks a smashable object dead and lets its demise animate.
func (o *Object) kill(fx Effects, impact core.Dir) {
	o.alive = false
	o.dying = true
	o.deathElapsed = 0
	fx.SpawnBlood(o.Center(), o.kind, impact)
	fx.Emit(EventKill)
}

// destroy removes the object immediately, with no decay phase.
func (o *Object) destroy() {
	o.alive = false
	o.dying = false
}
