package puzzle

import "github.com/vovakirdan/tui-gravity/internal/core"

// Event is a named notification for audio and presentation layers.
type Event string

const (
	EventCollect Event = "collect"
	EventBreak   Event = "break"
	EventKill    Event = "kill"
	EventBurn    Event = "burn"
	EventUndo    Event = "undo"
	EventRestart Event = "restart"
)

// Effects receives one-way cosmetic notifications from the engine.
// Implementations must not call back into the engine.
type Effects interface {
	SpawnBlood(center core.Vec, kind Kind, orientation core.Dir)
	SpawnSplinters(origin core.Coord, orientation core.Dir)
	SpawnSmoke(center core.Vec)
	Emit(ev Event)
}

// NopEffects discards every notification.
type NopEffects struct{}

func (NopEffects) SpawnBlood(core.Vec, Kind, core.Dir) {}
func (NopEffects) SpawnSplinters(core.Coord, core.Dir) {}
func (NopEffects) SpawnSmoke(core.Vec)                 {}
func (NopEffects) Emit(Event)                          {}

// Recorder collects notifications; used by tests and replays.
type Recorder struct {
	Events    []Event
	Blood     []Kind
	Splinters []core.Coord
	Smoke     int
}

func (r *Recorder) SpawnBlood(_ core.Vec, kind Kind, _ core.Dir) {
	r.Blood = append(r.Blood, kind)
}

func (r *Recorder) SpawnSplinters(origin core.Coord, _ core.Dir) {
	r.Splinters = append(r.Splinters, origin)
}

func (r *Recorder) SpawnSmoke(core.Vec) {
	r.Smoke++
}

func (r *Recorder) Emit(ev Event) {
	r.Events = append(r.Events, ev)
}

// Count returns how many times ev was emitted.
func (r *Recorder) Count(ev Event) int {
	n := 0
	for _, e := range r.Events {
		if e == ev {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	*r = Recorder{}
}

// Fanout forwards every notification to each of its members in order.
type Fanout []Effects

func (f Fanout) SpawnBlood(center core.Vec, kind Kind, orientation core.Dir) {
	for _, fx := range f {
		fx.SpawnBlood(center, kind, orientation)
	}
}

func (f Fanout) SpawnSplinters(origin core.Coord, orientation core.Dir) {
	for _, fx := range f {
		fx.SpawnSplinters(origin, orientation)
	}
}

func (f Fanout) SpawnSmoke(center core.Vec) {
	for _, fx := range f {
		fx.SpawnSmoke(center)
	}
}

func (f Fanout) Emit(ev Event) {
	for _, fx := range f {
		fx.Emit(ev)
	}
}

func cellCenter(c core.Coord) core.Vec {
	return core.Vec{X: float64(c.X) + 0.5, Y: float64(c.Y) + 0.5}
}
