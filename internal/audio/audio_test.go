package audio

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-gravity/internal/config"
	"github.com/vovakirdan/tui-gravity/internal/puzzle"
)

const testRate = beep.SampleRate(44100)

// drain streams s to completion and returns every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for range 10000 {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never finished")
	return nil
}

func peak(samples [][2]float64) float64 {
	p := 0.0
	for _, s := range samples {
		p = max(p, math.Abs(s[0]), math.Abs(s[1]))
	}
	return p
}

func TestToneLengthAndRange(t *testing.T) {
	tn := newTone(testRate, 440, WaveSine, 100*time.Millisecond, 5*time.Millisecond, 50*time.Millisecond, nil)

	samples := drain(t, tn)
	if len(samples) != testRate.N(100*time.Millisecond) {
		t.Fatalf("got %d samples, expected %d", len(samples), testRate.N(100*time.Millisecond))
	}
	if p := peak(samples); p > 1.0 || p < 0.5 {
		t.Errorf("peak = %f, expected within (0.5, 1]", p)
	}
	if samples[0][0] != 0 {
		t.Errorf("attack should start from silence, got %f", samples[0][0])
	}
	if last := samples[len(samples)-1][0]; math.Abs(last) > 0.01 {
		t.Errorf("release should end near silence, got %f", last)
	}
	if tn.Err() != nil {
		t.Errorf("unexpected error: %v", tn.Err())
	}
}

func TestToneEnvelopeFitsShortNotes(t *testing.T) {
	tn := newTone(testRate, 220, WaveSquare, 10*time.Millisecond, 20*time.Millisecond, 20*time.Millisecond, nil)
	if tn.attack+tn.release > tn.total {
		t.Errorf("attack %d + release %d exceed total %d", tn.attack, tn.release, tn.total)
	}
}

func TestEveryCueIsFiniteAndAudible(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for c := CueCollect; c <= CueClear; c++ {
		samples := drain(t, Sound(c, testRate, rng))
		if len(samples) == 0 {
			t.Errorf("%v: no samples", c)
			continue
		}
		if len(samples) > testRate.N(time.Second) {
			t.Errorf("%v: %d samples, expected under a second", c, len(samples))
		}
		if p := peak(samples); p == 0 || p > 1.5 {
			t.Errorf("%v: peak %f out of range", c, p)
		}
	}
}

func TestCueFor(t *testing.T) {
	cases := map[puzzle.Event]Cue{
		puzzle.EventCollect: CueCollect,
		puzzle.EventBreak:   CueBreak,
		puzzle.EventKill:    CueKill,
		puzzle.EventBurn:    CueBurn,
		puzzle.EventUndo:    CueUndo,
		puzzle.EventRestart: CueRestart,
		EventClear:          CueClear,
	}
	for ev, want := range cases {
		got, ok := CueFor(ev)
		if !ok || got != want {
			t.Errorf("CueFor(%q) = %v, %v; expected %v", ev, got, ok, want)
		}
	}
	if _, ok := CueFor("nothing"); ok {
		t.Error("unknown events have no cue")
	}
}

func TestManagerDisabledDropsCues(t *testing.T) {
	m := NewManager(config.AudioConfig{Enabled: false, SampleRate: 44100, Volume: 1})
	m.Emit(puzzle.EventCollect)

	if m.Pending() != 0 || len(m.Played()) != 0 {
		t.Error("disabled manager should not queue cues")
	}
	if err := m.Initialize(); err != nil {
		t.Errorf("Initialize on a disabled manager should be a no-op, got %v", err)
	}
}

func TestManagerQueuesAndMixes(t *testing.T) {
	m := NewManager(config.AudioConfig{Enabled: true, SampleRate: 22050, Volume: 0.5})

	m.Emit(puzzle.EventBreak)
	m.Emit(puzzle.EventKill)
	m.Emit("unmapped")

	played := m.Played()
	if len(played) != 2 || played[0] != CueBreak || played[1] != CueKill {
		t.Fatalf("played = %v", played)
	}
	if m.Pending() != 2 {
		t.Fatalf("pending = %d, expected 2", m.Pending())
	}

	buf := make([][2]float64, 22050)
	m.Mixer().Stream(buf)
	if peak(buf) == 0 {
		t.Error("mixed output is silent")
	}
	if m.Pending() != 0 {
		t.Errorf("cues should drain within a second, %d pending", m.Pending())
	}

	m.Emit(EventClear)
	m.Close()
	if m.Pending() != 0 {
		t.Error("Close should clear the mixer")
	}
}

func TestManagerZeroVolumeIsSilent(t *testing.T) {
	m := NewManager(config.AudioConfig{Enabled: true, SampleRate: 8000, Volume: 0})
	m.Play(CueCollect)

	buf := make([][2]float64, 4000)
	m.Mixer().Stream(buf)
	if p := peak(buf); p != 0 {
		t.Errorf("peak = %f, expected silence", p)
	}
}

func TestManagerPlayedIsBounded(t *testing.T) {
	m := NewManager(config.AudioConfig{Enabled: true, SampleRate: 8000, Volume: 0.1})

	for range maxPlayed {
		m.Play(CueBreak)
	}
	m.Play(CueKill)

	played := m.Played()
	if len(played) != maxPlayed {
		t.Fatalf("len(played) = %d, expected %d", len(played), maxPlayed)
	}
	if played[0] != CueBreak || played[len(played)-1] != CueKill {
		t.Errorf("played should keep the newest cues, got first %v last %v", played[0], played[len(played)-1])
	}
}
