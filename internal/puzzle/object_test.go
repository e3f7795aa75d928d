package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-gravity/internal/core"
)

// openField reports every in-bounds cell as free.
type openField struct{ w, h int }

func (f openField) IsTileFreeFor(c core.Coord, _ *Object) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < f.w && c.Y < f.h
}

func TestObjectMove(t *testing.T) {
	o := NewObject(KindCrate, core.C(1, 1), core.DirNone)

	require.True(t, o.Move(openField{3, 3}, core.DirUp))
	assert.Equal(t, core.C(1, 0), o.Cell())
	assert.Equal(t, core.C(0, -1), o.MoveVector())
	assert.Equal(t, core.C(1, 1), o.StartCell())
	assert.Equal(t, core.DirUp, o.Orientation())
	assert.Equal(t, core.DirNone, o.StartOrientation())
	assert.True(t, o.Moving())

	assert.False(t, o.Move(openField{3, 3}, core.DirLeft), "already moving")

	o.HaltMovement()
	o.HaltMovement()
	assert.False(t, o.Moving())
	assert.Equal(t, core.Coord{}, o.MoveVector())
	assert.Equal(t, core.DirUp, o.StartOrientation())

	assert.False(t, o.Move(openField{3, 3}, core.DirUp), "blocked by the edge")
	assert.Equal(t, core.DirUp, o.Orientation())
}

func TestObjectBlockedStillTurns(t *testing.T) {
	o := NewObject(KindPlayer, core.C(0, 0), core.DirDown)

	assert.False(t, o.Move(openField{1, 1}, core.DirRight))
	assert.Equal(t, core.DirRight, o.Orientation())
	assert.False(t, o.Moving())
	assert.Equal(t, core.DirRight, o.StartOrientation())
}

func TestObjectMoveRejects(t *testing.T) {
	field := openField{3, 3}

	assert.False(t, NewObject(KindGem, core.C(1, 1), core.DirNone).Move(field, core.DirLeft))
	assert.False(t, NewObject(KindRubble, core.C(1, 1), core.DirNone).Move(field, core.DirLeft))
	assert.False(t, NewObject(KindPlayer, core.C(1, 1), core.DirNone).Move(field, core.DirNone))

	dead := NewObject(KindPlayer, core.C(1, 1), core.DirNone)
	dead.kill(NopEffects{}, core.DirNone)
	assert.False(t, dead.Move(field, core.DirLeft))
}

func TestObjectRenderPosition(t *testing.T) {
	o := NewObject(KindPlayer, core.C(0, 0), core.DirNone)
	require.True(t, o.Move(openField{3, 1}, core.DirRight))

	assert.Equal(t, core.Vec{X: 0, Y: 0}, o.RenderPosition(0))
	assert.InDelta(t, 0.25, o.RenderPosition(0.25).X, 1e-9)
	assert.Equal(t, core.Vec{X: 1, Y: 0}, o.RenderPosition(1))
	assert.Equal(t, core.Vec{X: 1, Y: 0}, o.RenderPosition(3), "t is clamped")

	o.HaltMovement()
	assert.Equal(t, core.Vec{X: 1, Y: 0}, o.RenderPosition(0))
}

func TestObjectAnimationPhase(t *testing.T) {
	assert.Equal(t, 0.0, NewObject(KindPlayer, core.C(2, 4), core.DirNone).AnimationPhase())
	assert.Equal(t, 0.5, NewObject(KindPlayer, core.C(1, 2), core.DirNone).AnimationPhase())

	o := NewObject(KindPlayer, core.C(0, 0), core.DirNone)
	o.Update(45, 1.0/30.0, 20)
	assert.InDelta(t, 0.5, o.AnimationPhase(), 1e-9)
}

// landed returns an object that just slid onto cell c.
func landed(t *testing.T, kind Kind, c core.Coord, dir core.Dir) *Object {
	t.Helper()
	o := NewObject(kind, c.Sub(core.Coord{}.Step(dir)), core.DirNone)
	require.True(t, o.Move(openField{8, 8}, dir))
	require.Equal(t, c, o.Cell())
	return o
}

func TestCheckOverlayGemCollected(t *testing.T) {
	gem := NewObject(KindGem, core.C(2, 2), core.DirNone)
	player := landed(t, KindPlayer, core.C(2, 2), core.DirRight)
	rec := &Recorder{}

	assert.False(t, gem.CheckOverlay(player, rec))
	assert.True(t, gem.Dying())
	assert.True(t, gem.Alive())
	assert.False(t, player.CheckOverlay(gem, rec), "a resting gem never hurts")
	assert.Equal(t, []Event{EventCollect}, rec.Events)
}

func TestCheckOverlayHumanDoesNotCollect(t *testing.T) {
	gem := NewObject(KindGem, core.C(2, 2), core.DirNone)
	human := landed(t, KindHuman, core.C(2, 2), core.DirRight)

	assert.False(t, gem.CheckOverlay(human, NopEffects{}))
	assert.True(t, gem.Active())
}

func TestCheckOverlayBoulderSmashes(t *testing.T) {
	for _, kind := range []Kind{KindCrate, KindRubble} {
		victim := NewObject(kind, core.C(3, 3), core.DirNone)
		boulder := landed(t, KindBoulder, core.C(3, 3), core.DirDown)
		rec := &Recorder{}

		assert.False(t, victim.CheckOverlay(boulder, rec))
		assert.True(t, victim.Removed(), "%v is destroyed outright", kind)
		assert.True(t, boulder.Active())
		assert.Equal(t, []core.Coord{core.C(3, 3)}, rec.Splinters)
		assert.Equal(t, []Event{EventBreak}, rec.Events)
	}
}

func TestCheckOverlayFire(t *testing.T) {
	t.Run("crate", func(t *testing.T) {
		fire := NewObject(KindFire, core.C(1, 1), core.DirNone)
		crate := landed(t, KindCrate, core.C(1, 1), core.DirLeft)
		rec := &Recorder{}

		assert.False(t, fire.CheckOverlay(crate, rec))
		assert.True(t, fire.Dying())
		assert.True(t, crate.Removed())
		assert.Equal(t, 1, rec.Smoke)
		assert.Equal(t, []Event{EventBreak}, rec.Events)
	})

	t.Run("boulder", func(t *testing.T) {
		fire := NewObject(KindFire, core.C(1, 1), core.DirNone)
		boulder := landed(t, KindBoulder, core.C(1, 1), core.DirLeft)
		rec := &Recorder{}

		assert.False(t, fire.CheckOverlay(boulder, rec))
		assert.True(t, fire.Dying())
		assert.True(t, boulder.Active())
		assert.Equal(t, []Event{EventBurn}, rec.Events)
	})

	t.Run("player", func(t *testing.T) {
		fire := NewObject(KindFire, core.C(1, 1), core.DirNone)
		player := landed(t, KindPlayer, core.C(1, 1), core.DirLeft)
		rec := &Recorder{}

		assert.True(t, fire.CheckOverlay(player, rec))
		assert.True(t, fire.Dying())
		assert.False(t, player.Alive())
		assert.True(t, player.Dying())
		assert.Equal(t, []Kind{KindPlayer}, rec.Blood)
	})
}

func TestCheckOverlaySmashable(t *testing.T) {
	human := NewObject(KindHuman, core.C(0, 2), core.DirNone)
	crate := landed(t, KindCrate, core.C(0, 2), core.DirDown)
	rec := &Recorder{}

	assert.True(t, human.CheckOverlay(crate, rec))
	assert.False(t, human.Active())
	assert.Equal(t, []Kind{KindHuman}, rec.Blood)
	assert.Equal(t, []Event{EventKill}, rec.Events)

	assert.False(t, human.CheckOverlay(crate, rec), "a dead object interacts once")
}

func TestCheckOverlayRequiresMovingOther(t *testing.T) {
	player := NewObject(KindPlayer, core.C(0, 0), core.DirNone)
	crate := NewObject(KindCrate, core.C(0, 0), core.DirNone)

	assert.False(t, player.CheckOverlay(crate, NopEffects{}))
	assert.True(t, player.Active())
}

func TestObjectDeathTiming(t *testing.T) {
	gem := NewObject(KindGem, core.C(0, 0), core.DirNone)
	gem.beginDying()

	gem.Update(10, 0, 20)
	assert.InDelta(t, 0.5, gem.DeathProgress(20), 1e-9)
	assert.False(t, gem.Removed())

	gem.Update(10, 0, 20)
	assert.True(t, gem.Removed())
	assert.Equal(t, 0.0, gem.DeathProgress(20))
}
