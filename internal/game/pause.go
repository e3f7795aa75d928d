package game

import "github.com/vovakirdan/tui-gravity/internal/core"

// PauseItem is an entry of the pause menu.
type PauseItem int

const (
	PauseResume PauseItem = iota
	PauseUndo
	PauseRestart
	PauseQuit
)

// PauseItems lists the pause menu in display order.
var PauseItems = []PauseItem{PauseResume, PauseUndo, PauseRestart, PauseQuit}

func (p PauseItem) String() string {
	switch p {
	case PauseResume:
		return "Resume"
	case PauseUndo:
		return "Undo"
	case PauseRestart:
		return "Restart"
	case PauseQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// PauseSelection returns the highlighted pause menu item.
func (s *Session) PauseSelection() PauseItem {
	return PauseItems[s.pauseSel]
}

func (s *Session) stepPaused(in core.InputSource) {
	switch {
	case pressed(in, core.ActionPause), pressed(in, core.ActionBack):
		s.phase = PhasePlaying
	case pressed(in, core.ActionQuit):
		s.phase = PhaseQuit
	case pressed(in, core.ActionUp):
		s.pauseSel = (s.pauseSel + len(PauseItems) - 1) % len(PauseItems)
	case pressed(in, core.ActionDown):
		s.pauseSel = (s.pauseSel + 1) % len(PauseItems)
	case pressed(in, core.ActionSelect):
		s.activate(PauseItems[s.pauseSel])
	}
}

// activate runs a pause menu item. Every item closes the menu.
func (s *Session) activate(item PauseItem) {
	s.phase = PhasePlaying
	switch item {
	case PauseUndo:
		s.undo()
	case PauseRestart:
		s.restart()
	case PauseQuit:
		s.phase = PhaseQuit
	}
}
