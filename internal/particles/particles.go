// Package particles implements the cosmetic particle pool fed by puzzle
// interactions: blood when a sentient object dies, splinters when a crate or
// rubble breaks, and smoke when fire goes out.
package particles

import (
	"math/rand"

	"github.com/vovakirdan/tui-gravity/internal/config"
	"github.com/vovakirdan/tui-gravity/internal/core"
	"github.com/vovakirdan/tui-gravity/internal/puzzle"
)

// Style selects how a particle is drawn.
type Style int

const (
	StyleBlood Style = iota
	StyleSplinter
	StyleSmoke
)

// Particle is a single pooled particle. Positions and speeds are in cells.
type Particle struct {
	Pos   core.Vec
	Speed core.Vec
	Life  float64 // Ticks left; the particle is gone at zero
	Style Style
	Color core.Color

	buoyant bool // Rises against gravity
}

// Alive reports whether the particle is still shown.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// System is a fixed-capacity particle pool. When full, the oldest slot is
// overwritten. It implements puzzle.Effects; events are ignored.
type System struct {
	cfg     config.ParticlesConfig
	pool    []Particle
	next    int // Next slot to overwrite
	rng     *rand.Rand
	gravity core.Dir
}

// New creates a particle system with the given RNG seed.
func New(cfg config.ParticlesConfig, seed int64) *System {
	return &System{
		cfg:     cfg,
		pool:    make([]Particle, max(cfg.Max, 0)),
		rng:     rand.New(rand.NewSource(seed)),
		gravity: core.DirDown,
	}
}

var _ puzzle.Effects = (*System)(nil)

// SetGravity sets the direction particles fall in. DirNone keeps the previous one.
func (s *System) SetGravity(d core.Dir) {
	if d != core.DirNone {
		s.gravity = d
	}
}

// Gravity returns the current fall direction.
func (s *System) Gravity() core.Dir {
	return s.gravity
}

// Update advances every live particle by ticks.
func (s *System) Update(ticks float64) {
	target := s.gravity.Vec().Scale(s.cfg.BaseGravity)
	step := s.cfg.Friction * ticks

	for i := range s.pool {
		p := &s.pool[i]
		if !p.Alive() {
			continue
		}

		p.Life -= ticks
		if p.Life <= 0 {
			p.Life = 0
			continue
		}

		tx, ty := target.X, target.Y
		if p.buoyant {
			tx, ty = -tx*0.25, -ty*0.25
		}
		p.Speed.X = core.ApproachValue(p.Speed.X, tx, step)
		p.Speed.Y = core.ApproachValue(p.Speed.Y, ty, step)
		p.Pos = p.Pos.Add(p.Speed.Scale(ticks))
	}
}

// Live returns copies of the live particles.
func (s *System) Live() []Particle {
	out := make([]Particle, 0, s.Len())
	for _, p := range s.pool {
		if p.Alive() {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of live particles.
func (s *System) Len() int {
	n := 0
	for i := range s.pool {
		if s.pool[i].Alive() {
			n++
		}
	}
	return n
}

// Clear removes every particle.
func (s *System) Clear() {
	clear(s.pool)
	s.next = 0
}

// spawn writes a particle into the next slot, overwriting the oldest one.
func (s *System) spawn(p Particle) {
	if len(s.pool) == 0 {
		return
	}
	s.pool[s.next] = p
	s.next = (s.next + 1) % len(s.pool)
}

// jitter returns a random value in [-r, r).
func (s *System) jitter(r float64) float64 {
	return (s.rng.Float64()*2 - 1) * r
}

func (s *System) life() float64 {
	return s.cfg.LifeTicks * (0.75 + s.rng.Float64()*0.5)
}

// SpawnBlood sprays particles from center, away from the impact direction.
func (s *System) SpawnBlood(center core.Vec, kind puzzle.Kind, orientation core.Dir) {
	color := core.ColorRed
	if kind == puzzle.KindHuman {
		color = core.ColorMagenta
	}
	push := orientation.Vec().Scale(0.3)

	for range s.cfg.Blood {
		s.spawn(Particle{
			Pos:   center,
			Speed: core.Vec{X: push.X + s.jitter(0.35), Y: push.Y + s.jitter(0.35)},
			Life:  s.life(),
			Style: StyleBlood,
			Color: color,
		})
	}
}

// SpawnSplinters scatters wood fragments over the cell, biased along orientation.
func (s *System) SpawnSplinters(origin core.Coord, orientation core.Dir) {
	push := orientation.Vec().Scale(0.2)

	for range s.cfg.Splinters {
		s.spawn(Particle{
			Pos:   core.Vec{X: float64(origin.X) + s.rng.Float64(), Y: float64(origin.Y) + s.rng.Float64()},
			Speed: core.Vec{X: push.X + s.jitter(0.25), Y: push.Y + s.jitter(0.25)},
			Life:  s.life(),
			Style: StyleSplinter,
			Color: core.ColorBrown,
		})
	}
}

// SpawnSmoke releases slowly rising puffs at center.
func (s *System) SpawnSmoke(center core.Vec) {
	for range s.cfg.Smoke {
		s.spawn(Particle{
			Pos:     core.Vec{X: center.X + s.jitter(0.4), Y: center.Y + s.jitter(0.4)},
			Speed:   core.Vec{X: s.jitter(0.05), Y: s.jitter(0.05)},
			Life:    s.life() * 1.5,
			Style:   StyleSmoke,
			Color:   core.ColorDarkGray,
			buoyant: true,
		})
	}
}

// Emit ignores events; sounds are handled elsewhere.
func (s *System) Emit(puzzle.Event) {}
