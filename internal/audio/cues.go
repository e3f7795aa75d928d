package audio

import (
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-gravity/internal/puzzle"
)

// Cue is a named sound effect.
type Cue int

const (
	CueCollect Cue = iota
	CueBreak
	CueKill
	CueBurn
	CueUndo
	CueRestart
	CueClear
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueCollect:
		return "collect"
	case CueBreak:
		return "break"
	case CueKill:
		return "kill"
	case CueBurn:
		return "burn"
	case CueUndo:
		return "undo"
	case CueRestart:
		return "restart"
	case CueClear:
		return "clear"
	default:
		return "unknown"
	}
}

// EventClear is emitted by the game session when a level is completed.
const EventClear puzzle.Event = "clear"

var eventCues = map[puzzle.Event]Cue{
	puzzle.EventCollect: CueCollect,
	puzzle.EventBreak:   CueBreak,
	puzzle.EventKill:    CueKill,
	puzzle.EventBurn:    CueBurn,
	puzzle.EventUndo:    CueUndo,
	puzzle.EventRestart: CueRestart,
	EventClear:          CueClear,
}

// CueFor maps an event tag to its cue.
func CueFor(ev puzzle.Event) (Cue, bool) {
	c, ok := eventCues[ev]
	return c, ok
}

const ms = time.Millisecond

// note is shorthand for a short enveloped tone.
func note(rate beep.SampleRate, freq float64, wave Wave, length time.Duration, rng *rand.Rand) beep.Streamer {
	return newTone(rate, freq, wave, length, 5*ms, length/2, rng)
}

// Sound builds the streamer for a cue. Every cue is finite.
func Sound(c Cue, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	switch c {
	case CueCollect:
		// Rising two-note chime (B5, E6)
		return beep.Seq(
			withVolume(note(rate, 987.77, WaveSquare, 60*ms, rng), 0.5),
			withVolume(note(rate, 1318.51, WaveSquare, 140*ms, rng), 0.5),
		)
	case CueBreak:
		// Short crack over a low knock
		return beep.Mix(
			withVolume(newTone(rate, 0, WaveNoise, 120*ms, 2*ms, 110*ms, rng), 0.6),
			withVolume(note(rate, 140, WaveSine, 90*ms, rng), 0.5),
		)
	case CueKill:
		return withVolume(newTone(rate, 110, WaveSaw, 280*ms, 5*ms, 200*ms, rng), 0.7)
	case CueBurn:
		return withVolume(newTone(rate, 0, WaveNoise, 220*ms, 40*ms, 160*ms, rng), 0.3)
	case CueUndo:
		return beep.Seq(
			withVolume(note(rate, 659.25, WaveSine, 50*ms, rng), 0.4),
			withVolume(note(rate, 440, WaveSine, 70*ms, rng), 0.4),
		)
	case CueRestart:
		return beep.Seq(
			withVolume(note(rate, 523.25, WaveSine, 60*ms, rng), 0.4),
			withVolume(note(rate, 392, WaveSine, 60*ms, rng), 0.4),
			withVolume(note(rate, 261.63, WaveSine, 90*ms, rng), 0.4),
		)
	case CueClear:
		// C major arpeggio
		return beep.Seq(
			withVolume(note(rate, 523.25, WaveSquare, 80*ms, rng), 0.4),
			withVolume(note(rate, 659.25, WaveSquare, 80*ms, rng), 0.4),
			withVolume(note(rate, 783.99, WaveSquare, 80*ms, rng), 0.4),
			withVolume(note(rate, 1046.5, WaveSquare, 240*ms, rng), 0.4),
		)
	default:
		return beep.Silence(0)
	}
}
