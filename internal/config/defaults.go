package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-gravity/internal/puzzle"
)

//go:embed defaults/gravity.yaml
var defaultGravityYAML []byte

// DefaultGravityConfig returns the default configuration.
func DefaultGravityConfig() GravityConfig {
	t := puzzle.DefaultTuning()
	return GravityConfig{
		Settle: SettleConfig{
			BaseSpeed:    t.SettleBaseSpeed,
			Acceleration: t.SettleAcceleration,
			MaxSpeed:     t.SettleMaxSpeed,
		},
		Failure: FailureConfig{
			GraceTicks: t.FailGraceTicks,
		},
		Objects: ObjectsConfig{
			DeathTicks:         t.DeathTicks,
			IdleAnimationSpeed: t.AnimationSpeed,
		},
		Particles: ParticlesConfig{
			Max:         256,
			BaseGravity: 0.25,
			Friction:    1.0 / 128.0,
			LifeTicks:   30,
			Blood:       12,
			Splinters:   8,
			Smoke:       6,
		},
		Input: InputConfig{
			HoldTicks: 8,
		},
		Clear: ClearConfig{
			AnimationTicks: 120,
		},
		Audio: AudioConfig{
			Enabled:    false,
			SampleRate: 44100,
			Volume:     0.4,
		},
	}
}
