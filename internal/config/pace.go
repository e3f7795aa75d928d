package config

import (
	"fmt"
	"strings"
)

// PacePreset is a named animation pace.
type PacePreset string

const (
	PaceRelaxed PacePreset = "relaxed"
	PaceNormal  PacePreset = "normal"
	PaceBrisk   PacePreset = "brisk"
)

// PacePresets lists the presets in order of increasing speed.
var PacePresets = []PacePreset{PaceRelaxed, PaceNormal, PaceBrisk}

// ParsePace resolves a preset name. The empty string means normal.
func ParsePace(s string) (PacePreset, error) {
	p := PacePreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PaceNormal, nil
	}
	for _, known := range PacePresets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown pace %q (want relaxed, normal or brisk)", s)
}

// PaceScale returns the speed multiplier of a preset.
func PaceScale(preset PacePreset) float64 {
	switch preset {
	case PaceRelaxed:
		return 0.7
	case PaceBrisk:
		return 1.5
	default:
		return 1.0
	}
}

// ApplyPacePreset scales slide speeds by the preset and shortens or lengthens
// the failure grace period to match.
func ApplyPacePreset(cfg *GravityConfig, preset PacePreset) {
	scale := PaceScale(preset)
	if scale == 1.0 {
		return
	}

	cfg.Settle.BaseSpeed *= scale
	cfg.Settle.Acceleration *= scale
	cfg.Settle.MaxSpeed *= scale
	cfg.Failure.GraceTicks /= scale
	cfg.Clear.AnimationTicks /= scale

	// A slide never completes in less than one tick
	cfg.Settle.MaxSpeed = clampF(cfg.Settle.MaxSpeed, cfg.Settle.BaseSpeed, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, lo, hi float64) float64 {
	return max(lo, min(hi, val))
}
