package puzzle

import "github.com/vovakirdan/tui-gravity/internal/core"

// Update advances the simulation by one tick.
//
// While a wave is settling, the settle timer accelerates toward 1; on reaching it
// overlaps are resolved, movement halts, and the wave continues in the same
// direction if anything can still move. Otherwise, when idle, the held direction
// from ctx.Input starts a new player move. A failure keeps the simulation running
// for a grace period and then undoes the fatal move.
func (e *Engine) Update(ctx TickContext) {
	ticks := ctx.Ticks
	if ticks <= 0 {
		ticks = 1
	}

	e.updateObjects(ticks)

	switch {
	case e.settling:
		e.advanceSettle(ticks)
	case !e.failing && ctx.Input != nil:
		e.Move(core.ResolveDirection(ctx.Input))
	}

	if !e.failing {
		return
	}
	e.failTimer += ticks
	if e.failTimer >= e.tuning.FailGraceTicks && !e.settling {
		if !e.Undo() {
			e.Restart(true)
		}
	}
}

func (e *Engine) updateObjects(ticks float64) {
	removed := false
	for _, o := range e.objects {
		o.Update(ticks, e.tuning.AnimationSpeed, e.tuning.DeathTicks)
		if o.Removed() {
			removed = true
		}
	}
	if removed {
		e.prune()
	}
}

func (e *Engine) advanceSettle(ticks float64) {
	e.settleSpeed = min(e.settleSpeed+e.tuning.SettleAcceleration*ticks, e.tuning.SettleMaxSpeed)
	e.settleTimer += e.settleSpeed * ticks
	if e.settleTimer < 1 {
		return
	}
	e.settleTimer = 1
	e.settle()
}

// settle runs the boundary of a slide: interactions first, then the halt, then
// the continuation of the wave.
func (e *Engine) settle() {
	if e.resolveOverlaps() && !e.failing {
		e.failing = true
		e.failTimer = 0
	}

	for _, o := range e.objects {
		o.falling = o.moving
		o.HaltMovement()
	}
	e.prune()

	// Continuation keeps the accumulated speed; only a player move resets it.
	if e.wave(e.activeDir) {
		e.settleTimer = 0
		return
	}

	e.clearFalling()
	e.settling = false
	e.settleTimer = 0
	e.settleSpeed = 0
}

// resolveOverlaps evaluates CheckOverlay for both orderings of every pair of
// objects and reports whether any interaction was fatal.
func (e *Engine) resolveOverlaps() bool {
	failed := false
	for i, a := range e.objects {
		for _, b := range e.objects[i+1:] {
			if a.CheckOverlay(b, e.fx) {
				failed = true
			}
			if b.CheckOverlay(a, e.fx) {
				failed = true
			}
		}
	}
	return failed
}

// prune drops removed objects and rebuilds the cell index.
func (e *Engine) prune() {
	kept := e.objects[:0]
	for _, o := range e.objects {
		if !o.Removed() {
			kept = append(kept, o)
		}
	}
	clear(e.objects[len(kept):])
	e.objects = kept
	e.rebuildOccupancy()
}
