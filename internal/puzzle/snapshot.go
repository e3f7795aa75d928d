package puzzle

import "github.com/vovakirdan/tui-gravity/internal/core"

// Entry is the recorded state of one object.
type Entry struct {
	Cell        core.Coord
	Orientation core.Dir
	Kind        Kind
}

// Snapshot is an immutable record of every live object before a move.
type Snapshot struct {
	Entries []Entry
	Moves   int // player move count at capture time
}

// Capture records every active object. Objects mid-slide are recorded at the cell
// they started the slide from, with the orientation they had before it.
func Capture(objects []*Object, moves int) Snapshot {
	entries := make([]Entry, 0, len(objects))
	for _, o := range objects {
		if !o.Active() {
			continue
		}
		entries = append(entries, Entry{
			Cell:        o.StartCell(),
			Orientation: o.StartOrientation(),
			Kind:        o.kind,
		})
	}
	return Snapshot{Entries: entries, Moves: moves}
}

// Recover builds a fresh object set from a snapshot. The snapshot is not modified
// and no object is shared between calls.
func Recover(s Snapshot) []*Object {
	objects := make([]*Object, len(s.Entries))
	for i, e := range s.Entries {
		objects[i] = NewObject(e.Kind, e.Cell, e.Orientation)
	}
	return objects
}

// Count returns the number of entries of the given kind.
func (s Snapshot) Count(kind Kind) int {
	n := 0
	for _, e := range s.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Equal reports whether two snapshots hold the same entries in the same order.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s.Entries) != len(o.Entries) {
		return false
	}
	for i := range s.Entries {
		if s.Entries[i] != o.Entries[i] {
			return false
		}
	}
	return true
}

// History is the undo stack of snapshots.
type History struct {
	stack []Snapshot
}

// Push adds a snapshot on top of the stack.
func (h *History) Push(s Snapshot) {
	h.stack = append(h.stack, s)
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (Snapshot, bool) {
	if len(h.stack) == 0 {
		return Snapshot{}, false
	}
	s := h.stack[len(h.stack)-1]
	h.stack[len(h.stack)-1] = Snapshot{}
	h.stack = h.stack[:len(h.stack)-1]
	return s, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.stack)
}

// Clear drops every snapshot.
func (h *History) Clear() {
	h.stack = nil
}
