package levels

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-gravity/internal/core"
	"github.com/vovakirdan/tui-gravity/internal/puzzle"
)

// ErrNotCleared is returned by Replay when the moves run out before the level
// is cleared.
var ErrNotCleared = errors.New("level not cleared")

// maxSettleTicks bounds a single move; a slide across the largest grid
// settles well within it.
const maxSettleTicks = 100000

// Replay plays moves on a fresh engine for the level. It fails if a move is
// blocked, kills a sentient object, or the level is not cleared at the end.
func Replay(l Level, tuning puzzle.Tuning, moves []core.Dir) (*puzzle.Engine, error) {
	e := puzzle.New(l.Grid(), tuning, nil)

	for i, d := range moves {
		if !e.Move(d) {
			return e, fmt.Errorf("levels: %s move %d (%v) changes nothing", l.ID, i+1, d)
		}
		for range maxSettleTicks {
			if e.State() != puzzle.StateSettling {
				break
			}
			e.Update(puzzle.TickContext{})
		}
		if e.State() == puzzle.StateFailing {
			return e, fmt.Errorf("levels: %s move %d (%v) is fatal", l.ID, i+1, d)
		}
		if e.HasCleared() {
			if i != len(moves)-1 {
				return e, fmt.Errorf("levels: %s cleared after %d of %d moves", l.ID, i+1, len(moves))
			}
			return e, nil
		}
	}
	return e, fmt.Errorf("levels: %s: %w", l.ID, ErrNotCleared)
}

// VerifySolution replays the level's own solution, if it has one.
func VerifySolution(l Level, tuning puzzle.Tuning) error {
	if l.Solution == "" {
		return nil
	}
	moves, err := ParseMoves(l.Solution)
	if err != nil {
		return err
	}
	_, err = Replay(l, tuning, moves)
	return err
}
