// Package audio turns puzzle events into short procedural sound cues played
// through beep.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a single enveloped note: linear attack, sustain, then linear release.
type tone struct {
	rate    beep.SampleRate
	freq    float64
	wave    Wave
	phase   float64
	pos     int
	total   int
	attack  int
	release int
	rng     *rand.Rand
}

// newTone creates a note of the given length. Noise uses rng.
func newTone(rate beep.SampleRate, freq float64, wave Wave, length, attack, release time.Duration, rng *rand.Rand) *tone {
	total := rate.N(length)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &tone{
		rate:    rate,
		freq:    freq,
		wave:    wave,
		total:   total,
		attack:  att,
		release: rel,
		rng:     rng,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (t.phase - 0.5)
		case WaveNoise:
			val = t.rng.Float64()*2 - 1
		}
		val *= t.gain()

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// gain is the envelope level at the current sample.
func (t *tone) gain() float64 {
	switch {
	case t.attack > 0 && t.pos < t.attack:
		return float64(t.pos) / float64(t.attack)
	case t.release > 0 && t.pos >= t.total-t.release:
		return float64(t.total-t.pos) / float64(t.release)
	default:
		return 1
	}
}

// withVolume scales a streamer. math.Log2(0) is -Inf, so zero volume is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
