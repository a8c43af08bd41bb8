package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads the labyrinth configuration.
// Search order: customPath -> ~/.labyrinth/configs/labyrinth.yaml ->
// ./configs/labyrinth.yaml -> embedded default.
// The result is validated. An explicit customPath that cannot be read is an
// error, and so is a file in the search path that exists but does not parse.
func Load(customPath string) (LabyrinthConfig, error) {
	if customPath != "" {
		cfg, err := readFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	for _, p := range searchPaths() {
		cfg, err := readFile(p)
		if err == nil {
			return cfg, cfg.Validate()
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	cfg := DefaultLabyrinthConfig()
	if err := yaml.Unmarshal(defaultLabyrinthYAML, &cfg); err != nil {
		return DefaultLabyrinthConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// readFile decodes a YAML file on top of the built-in defaults, so a file
// only needs the keys it changes.
func readFile(path string) (LabyrinthConfig, error) {
	cfg := DefaultLabyrinthConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// searchPaths lists the config files tried when no custom path is given.
func searchPaths() []string {
	var paths []string
	if p := userConfigPath("labyrinth.yaml"); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", "labyrinth.yaml"))
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".labyrinth", "configs", filename)
}

// ApplyPreset modifies the config for a difficulty preset.
// Fixed disables progression; the others set the starting level and the
// base pursuer period.
func ApplyPreset(cfg *LabyrinthConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Pursuer.TickPeriod = 800 * time.Millisecond
	case DifficultyHard:
		cfg.Pursuer.TickPeriod = 350 * time.Millisecond
	}
}
