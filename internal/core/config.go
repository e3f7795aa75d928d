package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for particles
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a play session.
// Returned by the session to communicate status to the platform.
type GameState struct {
	Level   int  // 0-based level index within the pack
	Moves   int  // Player-triggered moves on this level
	Cleared bool // Level-clear animation finished; the platform should record it
	Failing bool // A sentient object died and the engine is recovering
	Paused  bool // Pause menu is open
	Quit    bool // The player asked to leave the level
}

// StepResult is returned after each simulation tick.
// Contains the updated state and the event tags emitted during the tick.
type StepResult struct {
	State  GameState
	Events []string
}
