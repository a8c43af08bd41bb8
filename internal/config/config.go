// Package config provides YAML-based configuration loading and difficulty
// management for the labyrinth.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth/core"
)

// LabyrinthConfig contains all configuration for a labyrinth session.
type LabyrinthConfig struct {
	Tiles      TilesConfig      `yaml:"tiles"`
	FrameRate  int              `yaml:"frame_rate"`
	Pursuer    PursuerConfig    `yaml:"pursuer"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Scoring    ScoringConfig    `yaml:"scoring"`
}

// TilesConfig defines which tile codes are walkable and which one wins.
type TilesConfig struct {
	Free   []int `yaml:"free"`
	Finish int   `yaml:"finish"`
}

// PursuerConfig defines the pursuer timer.
type PursuerConfig struct {
	Enabled    bool          `yaml:"enabled"`
	TickPeriod time.Duration `yaml:"tick_period"`
	MinPeriod  time.Duration `yaml:"min_period"` // Floor for difficulty progression
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "ticks", "moves" or "none"
	MaxAt int    `yaml:"max_at"` // Count at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Extra pursuer speed at max difficulty
}

// ScoringConfig defines how a won run is scored.
type ScoringConfig struct {
	Base        int `yaml:"base"`
	MovePenalty int `yaml:"move_penalty"`
	TickPenalty int `yaml:"tick_penalty"`
}

// TileConfig converts the tile section for the simulation core.
func (c LabyrinthConfig) TileConfig() core.TileConfig {
	free := make([]core.TileCode, len(c.Tiles.Free))
	for i, v := range c.Tiles.Free {
		free[i] = core.TileCode(v)
	}
	return core.TileConfig{Free: free, Finish: core.TileCode(c.Tiles.Finish)}
}

// Validate reports configuration values the game cannot run with.
func (c LabyrinthConfig) Validate() error {
	var errs []error

	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("frame_rate must be positive, got %d", c.FrameRate))
	}
	if len(c.Tiles.Free) == 0 {
		errs = append(errs, errors.New("tiles.free must list at least one code"))
	}
	for _, v := range c.Tiles.Free {
		if v < 0 {
			errs = append(errs, fmt.Errorf("tiles.free contains negative code %d", v))
		}
	}
	if !slices.Contains(c.Tiles.Free, c.Tiles.Finish) {
		errs = append(errs, fmt.Errorf("tiles.finish %d must also be a free code", c.Tiles.Finish))
	}
	if c.Pursuer.Enabled && c.Pursuer.TickPeriod <= 0 {
		errs = append(errs, fmt.Errorf("pursuer.tick_period must be positive, got %s", c.Pursuer.TickPeriod))
	}
	if c.Pursuer.MinPeriod < 0 {
		errs = append(errs, fmt.Errorf("pursuer.min_period must not be negative, got %s", c.Pursuer.MinPeriod))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
