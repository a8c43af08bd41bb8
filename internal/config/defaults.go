package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/labyrinth.yaml
var defaultLabyrinthYAML []byte

// DefaultLabyrinthConfig returns the built-in configuration. It matches the
// embedded defaults/labyrinth.yaml and is used if that fails to parse.
func DefaultLabyrinthConfig() LabyrinthConfig {
	return LabyrinthConfig{
		Tiles: TilesConfig{
			Free:   []int{0, 2},
			Finish: 2,
		},
		FrameRate: 10,
		Pursuer: PursuerConfig{
			Enabled:    true,
			TickPeriod: 500 * time.Millisecond,
			MinPeriod:  150 * time.Millisecond,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "ticks",
				MaxAt: 240,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
			},
		},
		Scoring: ScoringConfig{
			Base:        1000,
			MovePenalty: 5,
			TickPenalty: 1,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultLabyrinthYAML
}
