package core

import "time"

// RuntimeConfig is passed to games at Reset.
// Games use it to lay out the board and to schedule the pursuer.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second (player input cadence)

	// PursuerPeriod overrides the game's configured pursuer timer when non-zero.
	PursuerPeriod time.Duration
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 10 frames
// per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 10,
	}
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score    int  // Score of the current run, 0 until it is won
	GameOver bool // Run has ended (won or lost)
	Won      bool // Run ended on the goal tile
	Paused   bool
}

// StepResult is returned after each frame or pursuer tick.
type StepResult struct {
	State GameState
}
