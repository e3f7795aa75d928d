package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-gravity/internal/storage"
)

// Tracker keeps the progress of one pack in memory and mirrors clears to the
// store when one is available. A nil store keeps progress for the session only.
type Tracker struct {
	store   *storage.Store
	packID  string
	logger  *log.Logger
	cleared []bool
	best    []int
	updated []time.Time
}

// NewTracker loads the stored progress of packID for count levels.
func NewTracker(store *storage.Store, packID string, count int, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Tracker{
		store:   store,
		packID:  packID,
		logger:  logger,
		cleared: make([]bool, count),
		best:    make([]int, count),
		updated: make([]time.Time, count),
	}
	t.Reload()
	return t
}

// Reload re-reads progress from the store.
func (t *Tracker) Reload() {
	if t.store == nil {
		return
	}

	levels, err := t.store.Levels(t.packID)
	if err != nil {
		t.logger.Warn("could not load progress", "pack", t.packID, "error", err)
		return
	}

	clear(t.cleared)
	clear(t.best)
	clear(t.updated)
	for _, l := range levels {
		if l.Level < 0 || l.Level >= len(t.cleared) {
			continue
		}
		t.cleared[l.Level] = l.Cleared
		t.best[l.Level] = l.BestMoves
		t.updated[l.Level] = l.UpdatedAt
	}
}

// Record marks a level cleared in the given number of moves.
func (t *Tracker) Record(level, moves int) {
	if level < 0 || level >= len(t.cleared) {
		return
	}

	t.cleared[level] = true
	if moves > 0 && (t.best[level] == 0 || moves < t.best[level]) {
		t.best[level] = moves
	}
	t.updated[level] = time.Now()

	if t.store == nil {
		return
	}
	if _, err := t.store.MarkCleared(t.packID, level, moves); err != nil {
		t.logger.Warn("could not save progress", "pack", t.packID, "level", level+1, "error", err)
	}
}

// Cleared reports whether a level has been cleared.
func (t *Tracker) Cleared(level int) bool {
	return level >= 0 && level < len(t.cleared) && t.cleared[level]
}

// Best returns the best move count of a level, 0 if unknown.
func (t *Tracker) Best(level int) int {
	if level < 0 || level >= len(t.best) {
		return 0
	}
	return t.best[level]
}

// Updated returns when a level was last cleared.
func (t *Tracker) Updated(level int) time.Time {
	if level < 0 || level >= len(t.updated) {
		return time.Time{}
	}
	return t.updated[level]
}

// ClearedCount returns how many levels are cleared.
func (t *Tracker) ClearedCount() int {
	n := 0
	for _, c := range t.cleared {
		if c {
			n++
		}
	}
	return n
}

// FirstUncleared returns the lowest uncleared level, or 0 when all are done.
func (t *Tracker) FirstUncleared() int {
	for i, c := range t.cleared {
		if !c {
			return i
		}
	}
	return 0
}

// Stats returns the stored pack statistics, or nil without a store.
func (t *Tracker) Stats() *storage.PackStats {
	if t.store == nil {
		return nil
	}
	stats, err := t.store.Stats(t.packID)
	if err != nil {
		t.logger.Warn("could not load stats", "pack", t.packID, "error", err)
		return nil
	}
	return stats
}
