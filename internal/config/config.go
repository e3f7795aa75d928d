// Package config provides YAML-based configuration loading and pace presets
// for the gravity puzzle.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-gravity/internal/puzzle"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// GravityConfig contains all tunable parameters of the game.
type GravityConfig struct {
	Settle    SettleConfig    `yaml:"settle"`
	Failure   FailureConfig   `yaml:"failure"`
	Objects   ObjectsConfig   `yaml:"objects"`
	Particles ParticlesConfig `yaml:"particles"`
	Input     InputConfig     `yaml:"input"`
	Clear     ClearConfig     `yaml:"clear"`
	Audio     AudioConfig     `yaml:"audio"`
}

// SettleConfig defines the slide animation timing. All values are settle timer
// increments per tick; one slide completes when the timer reaches 1.
type SettleConfig struct {
	BaseSpeed    float64 `yaml:"base_speed"`
	Acceleration float64 `yaml:"acceleration"`
	MaxSpeed     float64 `yaml:"max_speed"`
}

// FailureConfig defines recovery after a sentient object dies.
type FailureConfig struct {
	GraceTicks float64 `yaml:"grace_ticks"` // Delay before the fatal move is undone
}

// ObjectsConfig defines per-object animation timing.
type ObjectsConfig struct {
	DeathTicks         float64 `yaml:"death_ticks"`
	IdleAnimationSpeed float64 `yaml:"idle_animation_speed"` // Animation cycles per tick
}

// ParticlesConfig defines the cosmetic particle pool.
type ParticlesConfig struct {
	Max         int     `yaml:"max"`          // Pool capacity; oldest particles are overwritten
	BaseGravity float64 `yaml:"base_gravity"` // Terminal speed in cells per tick
	Friction    float64 `yaml:"friction"`     // Speed change per tick toward terminal speed
	LifeTicks   float64 `yaml:"life_ticks"`
	Blood       int     `yaml:"blood"` // Particles per spawn
	Splinters   int     `yaml:"splinters"`
	Smoke       int     `yaml:"smoke"`
}

// InputConfig defines terminal key handling.
type InputConfig struct {
	// Terminals report no key releases; a key counts as held for this many ticks
	// after its last press or autorepeat.
	HoldTicks int `yaml:"hold_ticks"`
}

// ClearConfig defines the level-clear sequence.
type ClearConfig struct {
	AnimationTicks float64 `yaml:"animation_ticks"`
}

// AudioConfig defines the procedural sound cues.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // Relative gain, 0 silences
}

// Tuning converts the timing sections into engine tuning.
func (c GravityConfig) Tuning() puzzle.Tuning {
	return puzzle.Tuning{
		SettleBaseSpeed:    c.Settle.BaseSpeed,
		SettleAcceleration: c.Settle.Acceleration,
		SettleMaxSpeed:     c.Settle.MaxSpeed,
		FailGraceTicks:     c.Failure.GraceTicks,
		DeathTicks:         c.Objects.DeathTicks,
		AnimationSpeed:     c.Objects.IdleAnimationSpeed,
	}
}

// Validate checks that the configuration describes a playable game.
func (c GravityConfig) Validate() error {
	switch {
	case c.Settle.BaseSpeed <= 0:
		return fmt.Errorf("config: settle.base_speed must be positive: %w", ErrInvalidConfig)
	case c.Settle.MaxSpeed < c.Settle.BaseSpeed:
		return fmt.Errorf("config: settle.max_speed below base_speed: %w", ErrInvalidConfig)
	case c.Settle.Acceleration < 0:
		return fmt.Errorf("config: settle.acceleration is negative: %w", ErrInvalidConfig)
	case c.Failure.GraceTicks < 0 || c.Objects.DeathTicks < 0:
		return fmt.Errorf("config: negative timer: %w", ErrInvalidConfig)
	case c.Particles.Max < 0:
		return fmt.Errorf("config: particles.max is negative: %w", ErrInvalidConfig)
	case c.Input.HoldTicks < 1:
		return fmt.Errorf("config: input.hold_ticks must be at least 1: %w", ErrInvalidConfig)
	}
	return nil
}
