package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth"
	"github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth/levels"
	"github.com/vovakirdan/tui-labyrinth/internal/registry"
	"github.com/vovakirdan/tui-labyrinth/internal/storage"
)

var flagIDsOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games and levels",
	Long: `Shows the registered games with their score totals and the levels
they can be played on.

With --ids only the level IDs are printed, one per line.`,
	Run: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagIDsOnly, "ids", false, "Print only the level IDs, one per line")
}

func runList(_ *cobra.Command, _ []string) {
	cfg, err := labyrinth.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using default config: %v\n", err)
	}

	if flagIDsOnly {
		ids, err := labyrinth.LevelIDs(cfg.TileConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
			os.Exit(1)
		}
		writeLevelIDs(os.Stdout, ids)
		return
	}

	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, err = store.GetAllGamesStats()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not read scores: %v\n", err)
		}
		store.Close()
	}

	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}
	writeGames(os.Stdout, games, stats)

	lvls, err := labyrinth.Levels(cfg.TileConfig())
	if err != nil {
		fmt.Printf("\nCould not load levels: %v\n", err)
		return
	}
	writeLevels(os.Stdout, lvls)

	fmt.Println()
	fmt.Println("Run 'labyrinth play <id> --level <level>' to play.")
}

// writeGames prints the game table. Games missing from stats have not
// recorded a score yet.
func writeGames(w io.Writer, games []registry.GameInfo, stats map[string]*storage.GameStats) {
	fmt.Fprintln(w, "Available games:")
	fmt.Fprintln(w)

	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Fprintf(w, "  %-*s  %-*s  %-5s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Best", "Wins")
	fmt.Fprintf(w, "  %-*s  %-*s  %-5s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "----")
	for _, g := range games {
		best, wins := "-", "-"
		if st, ok := stats[g.ID]; ok {
			best = fmt.Sprint(st.HighScore)
			wins = fmt.Sprint(st.GamesCount)
		}
		fmt.Fprintf(w, "  %-*s  %-*s  %-5s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, best, wins)
	}
}

func writeLevels(w io.Writer, lvls []levels.Level) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Levels:")
	fmt.Fprintln(w)

	maxIDLen := 2
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Fprintf(w, "  %-*s  %-7s  %s\n", maxIDLen, "ID", "Size", "Name")
	fmt.Fprintf(w, "  %-*s  %-7s  %s\n", maxIDLen, "--", "----", "----")
	for _, l := range lvls {
		size := fmt.Sprintf("%dx%d", l.Maze.Width(), l.Maze.Height())
		fmt.Fprintf(w, "  %-*s  %-7s  %s\n", maxIDLen, l.ID, size, l.Name)
	}
}

func writeLevelIDs(w io.Writer, ids []string) {
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
}
