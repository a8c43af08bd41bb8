package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth"
	"github.com/vovakirdan/tui-labyrinth/internal/platform/tui"
	"github.com/vovakirdan/tui-labyrinth/internal/registry"
	"github.com/vovakirdan/tui-labyrinth/internal/storage"
)

var (
	flagLevel         string
	flagMaze          string
	flagPursuerPeriod time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Games:
  labyrinth  - Walk to the goal at your own pace
  chase      - Reach the goal before the pursuer catches you

Controls:
  Arrows/WASD/hjkl  - Move one cell
  P                 - Pause
  R                 - Restart (after the run ends)
  B/Esc             - Leave (when paused or after the run ends)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Pursuer starts slow, speeds up to max
  normal - Pursuer starts at 30% speed-up, progresses to max
  hard   - Pursuer starts at 70% speed-up, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  labyrinth play labyrinth
  labyrinth play chase --level 03-corridors
  labyrinth play chase --difficulty hard
  labyrinth play chase --maze ./my-maze.txt
  labyrinth play chase --pursuer-period 300ms`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level ID (default: first level)")
	playCmd.Flags().StringVar(&flagMaze, "maze", "", "Play a plain text maze file instead of a level")
	playCmd.Flags().DurationVar(&flagPursuerPeriod, "pursuer-period", 0, "Override the pursuer tick period (e.g. 300ms)")
}

// terminalConfig builds the runtime config from the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'labyrinth list' to see available games.")
		os.Exit(1)
	}

	labyrinth.SetLevel(flagLevel)
	labyrinth.SetMazeFile(flagMaze)

	// Report config and level errors before taking over the terminal
	lcfg, err := labyrinth.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	lvl, err := labyrinth.LoadLevel(lcfg.TileConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading level: %v\n", err)
		os.Exit(1)
	}

	cfg := terminalConfig()
	cfg.PursuerPeriod = flagPursuerPeriod

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closer := newFileLogger()
	defer closer.Close()
	logger.Debug("level loaded", "game", gameID, "level", lvl.ID)

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closer.Close()
		os.Exit(1)
	}
}
