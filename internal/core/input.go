package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionRight          // Right arrow, D, L - gravity right
	ActionUp             // Up arrow, W, K - gravity up
	ActionLeft           // Left arrow, A, H - gravity left
	ActionDown           // Down arrow, S, J - gravity down
	ActionSelect         // Enter, Space - confirm selection in menus
	ActionRestart        // R - restart the level
	ActionUndo           // Z, U, Backspace - undo the last move
	ActionBack           // B, Escape - go back to menu
	ActionPause          // P, Escape - pause/unpause game
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionLeft:
		return "Left"
	case ActionDown:
		return "Down"
	case ActionSelect:
		return "Select"
	case ActionRestart:
		return "Restart"
	case ActionUndo:
		return "Undo"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// DirectionActions maps each gravity direction to the action that triggers it.
var DirectionActions = map[Dir]Action{
	DirRight: ActionRight,
	DirUp:    ActionUp,
	DirLeft:  ActionLeft,
	DirDown:  ActionDown,
}

// InputState is the debounced state of a key or action.
type InputState int

const (
	InputUp InputState = iota
	InputDown
	InputReleased
	InputPressed
)

// Held reports whether the state counts as held down (down or just pressed).
func (s InputState) Held() bool {
	return s == InputDown || s == InputPressed
}

// priority orders the states an action can take from several keys: a fresh press
// beats a hold, which beats a release.
func (s InputState) priority() int {
	switch s {
	case InputPressed:
		return 3
	case InputDown:
		return 2
	case InputReleased:
		return 1
	}
	return 0
}

// ActionState is the per-tick view of one action: its state and the tick of the most
// recent press among the keys bound to it.
type ActionState struct {
	State     InputState
	Timestamp float64
}

// InputSource is the read-only view of debounced input consumed by the simulation.
type InputSource interface {
	Action(a Action) ActionState
}

// DefaultBindings are the default key bindings, in Bubble Tea key string notation.
var DefaultBindings = map[Action][]string{
	ActionRight:   {"right", "d", "l"},
	ActionUp:      {"up", "w", "k"},
	ActionLeft:    {"left", "a", "h"},
	ActionDown:    {"down", "s", "j"},
	ActionSelect:  {"enter", " "},
	ActionRestart: {"r"},
	ActionUndo:    {"z", "u", "backspace"},
	ActionBack:    {"esc", "b"},
	ActionPause:   {"esc", "p"},
	ActionQuit:    {"q", "ctrl+c"},
}

type keyState struct {
	state     InputState
	timestamp float64
	lastSeen  float64
}

type binding struct {
	keys  []string
	state ActionState
}

// Controller turns raw key events into debounced per-action state.
//
// Terminals do not report key releases, so a key that has not been seen for
// holdTicks ticks is released automatically; terminal autorepeat keeps it held.
type Controller struct {
	keys      map[string]*keyState
	actions   map[Action]*binding
	holdTicks float64
	now       float64
}

// NewController creates a controller with the given bindings.
// A nil bindings map selects DefaultBindings.
func NewController(bindings map[Action][]string, holdTicks int) *Controller {
	if bindings == nil {
		bindings = DefaultBindings
	}
	if holdTicks <= 0 {
		holdTicks = 1
	}

	c := &Controller{
		keys:      make(map[string]*keyState),
		actions:   make(map[Action]*binding, len(bindings)),
		holdTicks: float64(holdTicks),
	}
	for a, keys := range bindings {
		c.actions[a] = &binding{keys: append([]string(nil), keys...)}
	}
	return c
}

// Now returns the controller clock in ticks.
func (c *Controller) Now() float64 {
	return c.now
}

// KeyEvent records a key press or release at the current tick.
func (c *Controller) KeyEvent(key string, pressed bool) {
	ks, ok := c.keys[key]
	if !ok {
		ks = &keyState{}
		c.keys[key] = ks
	}

	if pressed {
		ks.lastSeen = c.now
		if ks.state == InputDown || ks.state == InputPressed {
			return
		}
		ks.state = InputPressed
		ks.timestamp = c.now + 1 // strictly positive so "never pressed" stays zero
		return
	}

	if ks.state == InputUp {
		return
	}
	ks.state = InputReleased
	ks.timestamp = 0
}

// PreUpdate folds key states into action states. Call once per tick before the
// simulation reads input.
func (c *Controller) PreUpdate() {
	for _, b := range c.actions {
		b.state = ActionState{}
		for _, k := range b.keys {
			ks, ok := c.keys[k]
			if !ok || ks.state == InputUp {
				continue
			}
			if ks.state.priority() > b.state.State.priority() {
				b.state.State = ks.state
			}
			if ks.timestamp > b.state.Timestamp {
				b.state.Timestamp = ks.timestamp
			}
		}
	}
}

// PostUpdate advances key states after the simulation has consumed them:
// Pressed becomes Down, Released becomes Up, and stale held keys are released.
func (c *Controller) PostUpdate() {
	c.now++

	for _, ks := range c.keys {
		switch ks.state {
		case InputPressed:
			ks.state = InputDown
		case InputReleased:
			ks.state = InputUp
		}

		if ks.state == InputDown && c.now-ks.lastSeen > c.holdTicks {
			ks.state = InputReleased
		}

		if !ks.state.Held() {
			ks.timestamp = 0
		}
	}
}

// Action returns the current state of an action.
func (c *Controller) Action(a Action) ActionState {
	if b, ok := c.actions[a]; ok {
		return b.state
	}
	return ActionState{}
}

// Pressed reports whether the action was pressed this tick.
func (c *Controller) Pressed(a Action) bool {
	return c.Action(a).State == InputPressed
}

// Reset releases every key.
func (c *Controller) Reset() {
	for k := range c.keys {
		delete(c.keys, k)
	}
	for _, b := range c.actions {
		b.state = ActionState{}
	}
}

// ResolveDirection returns the direction whose action is held or pressed with the
// most recent activation timestamp, or DirNone when none is.
func ResolveDirection(in InputSource) Dir {
	best := DirNone
	var bestTS float64

	for _, d := range Directions {
		s := in.Action(DirectionActions[d])
		if !s.State.Held() {
			continue
		}
		if best == DirNone || s.Timestamp > bestTS {
			best = d
			bestTS = s.Timestamp
		}
	}
	return best
}

// StaticInput is a fixed InputSource, handy for tests and replays.
type StaticInput map[Action]ActionState

// Action implements InputSource.
func (s StaticInput) Action(a Action) ActionState {
	return s[a]
}

// Press returns a StaticInput where the given actions were pressed at increasing
// timestamps, in argument order.
func Press(actions ...Action) StaticInput {
	in := make(StaticInput, len(actions))
	for i, a := range actions {
		in[a] = ActionState{State: InputPressed, Timestamp: float64(i + 1)}
	}
	return in
}
