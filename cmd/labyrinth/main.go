// labyrinth is a terminal maze game: walk to the goal, optionally while a
// pursuer hunts you down by shortest path.
//
// Usage:
//
//	labyrinth list              - List available games
//	labyrinth play <game>       - Play a game
//	labyrinth menu              - Pick a game and level interactively
//	labyrinth serve             - Start SSH server for remote play
//	labyrinth scores <game>     - Show high scores and recent runs
//
// Global flags:
//
//	--fps <rate>         - Set input frame rate (default: 10)
//	--db <path>          - Set database path (default: ~/.labyrinth/scores.db)
//	--config <path>      - Load a custom labyrinth config YAML
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--difficulty <name>  - easy, normal, hard or fixed
//	--levels <dir>       - Load levels from a directory
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-labyrinth/internal/config"
	"github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
	flagDiff      string
	flagLevelsDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "labyrinth",
	Short: "Labyrinth - escape the maze in your terminal",
	Long: `Labyrinth is a terminal maze game. Walk from the start to the goal;
in chase mode a pursuer follows the shortest path to you and the run is
lost if it catches you.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game and level picker
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs

Examples:
  labyrinth list
  labyrinth play chase --level 02-courtyard
  labyrinth menu
  labyrinth serve --ssh :2222
  labyrinth scores chase`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := parseLogLevel(flagLogLevel); err != nil {
			return err
		}
		if _, err := config.ParsePreset(flagDiff); err != nil {
			return err
		}
		labyrinth.SetConfigPath(flagConfig)
		labyrinth.SetDifficultyPreset(flagDiff)
		labyrinth.SetLevelsDir(flagLevelsDir)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 10, "Input frame rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.labyrinth/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom labyrinth config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format: text, json")
	rootCmd.PersistentFlags().StringVar(&flagDiff, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level YAML files (default: built-in levels)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
