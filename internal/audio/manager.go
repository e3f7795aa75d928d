package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-gravity/internal/config"
	"github.com/vovakirdan/tui-gravity/internal/core"
	"github.com/vovakirdan/tui-gravity/internal/puzzle"
)

// Manager mixes sound cues for puzzle events. It implements puzzle.Effects;
// particle notifications are ignored.
//
// A disabled manager drops every cue. An enabled one queues cues on its mixer;
// they are heard once Initialize has attached the mixer to the speaker.
type Manager struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	rate        beep.SampleRate
	mixer       *beep.Mixer
	rng         *rand.Rand
	initialized bool
	played      []Cue
}

var _ puzzle.Effects = (*Manager)(nil)

// maxPlayed bounds the cue log kept for Played.
const maxPlayed = 64

// NewManager creates a sound manager.
func NewManager(cfg config.AudioConfig) *Manager {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = 44100
	}
	return &Manager{
		cfg:   cfg,
		rate:  rate,
		mixer: &beep.Mixer{},
		rng:   rand.New(rand.NewSource(1)),
	}
}

// Initialize opens the speaker and starts playing the mixer.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized || !m.cfg.Enabled {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(m.rate, m.rate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close silences everything queued.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Lock()
		m.mixer.Clear()
		speaker.Unlock()
		m.initialized = false
		return
	}
	m.mixer.Clear()
}

// Play queues a cue.
func (m *Manager) Play(c Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cfg.Enabled {
		return
	}

	s := withVolume(Sound(c, m.rate, m.rng), m.cfg.Volume)
	if m.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	m.mixer.Add(s)
	m.played = append(m.played, c)
	if n := len(m.played); n > maxPlayed {
		m.played = append(m.played[:0], m.played[n-maxPlayed:]...)
	}
}

// Played returns the most recent cues queued, oldest first. At most maxPlayed
// are kept.
func (m *Manager) Played() []Cue {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Cue, len(m.played))
	copy(out, m.played)
	return out
}

// Pending returns the number of cues still sounding on the mixer.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return m.mixer.Len()
}

// Mixer exposes the mixer for offline rendering.
func (m *Manager) Mixer() beep.Streamer {
	return m.mixer
}

// Emit plays the cue mapped to ev, if any.
func (m *Manager) Emit(ev puzzle.Event) {
	if c, ok := CueFor(ev); ok {
		m.Play(c)
	}
}

func (m *Manager) SpawnBlood(core.Vec, puzzle.Kind, core.Dir) {}
func (m *Manager) SpawnSplinters(core.Coord, core.Dir)        {}
func (m *Manager) SpawnSmoke(core.Vec)                        {}
