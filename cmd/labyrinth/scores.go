package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-labyrinth/internal/platform/tui"
	"github.com/vovakirdan/tui-labyrinth/internal/registry"
	"github.com/vovakirdan/tui-labyrinth/internal/storage"
)

var (
	flagBoard     bool
	flagRuns      bool
	flagLevelOnly string
	flagClear     bool
	flagRunID     string
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified game.

With --runs the most recent runs are listed instead, including losses
and abandoned runs. With --board the interactive scoreboard opens.
--run shows one run from the --runs list in detail, and --clear deletes
every score and run recorded for the game.

Examples:
  labyrinth scores chase
  labyrinth scores chase --level 01-classic
  labyrinth scores chase --runs
  labyrinth scores chase --run 3f2c9a1e-...
  labyrinth scores chase --clear
  labyrinth scores labyrinth --board`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBoard, "board", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "List recent runs instead of high scores")
	scoresCmd.Flags().StringVar(&flagLevelOnly, "level", "", "Only show scores for this level")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs for the game")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show the details of one run")
	scoresCmd.MarkFlagsMutuallyExclusive("clear", "run", "board")
	scoresCmd.MarkFlagsMutuallyExclusive("clear", "run", "runs")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'labyrinth list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all scores and runs for %s.\n", title)
		return
	}

	if flagRunID != "" {
		run, err := store.RunByID(flagRunID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
			os.Exit(1)
		}
		if run == nil || run.GameID != gameID {
			fmt.Fprintf(os.Stderr, "Error: no %s run with ID %q\n", gameID, flagRunID)
			os.Exit(1)
		}
		writeRun(os.Stdout, run)
		return
	}

	if flagBoard {
		cfg := terminalConfig()
		if _, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, gameID, flagRuns); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if flagRuns {
		printRuns(store, gameID, title)
		return
	}

	var scores []storage.ScoreEntry
	if flagLevelOnly != "" {
		scores, err = store.LevelTopScores(gameID, flagLevelOnly, 10)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'labyrinth play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-16s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-8s  %-16s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-16s  %s\n", i+1, entry.Score, entry.LevelID, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil && stats.Runs > 0 {
		fmt.Printf("Best: %d  Runs: %d  Won: %.0f%%\n", stats.HighScore, stats.Runs, stats.WinRate()*100)
	}
}

func printRuns(store *storage.Store, gameID, title string) {
	runs, err := store.RecentRuns(gameID, 20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Recent Runs - %s\n", title)
	fmt.Println()
	writeRuns(os.Stdout, runs)
}

func writeRuns(w io.Writer, runs []storage.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return
	}

	fmt.Fprintf(w, "  %-16s  %-9s  %-5s  %-7s  %-5s  %-8s  %-16s  %s\n", "Level", "Outcome", "Moves", "Pursuer", "Score", "Time", "Date", "ID")
	fmt.Fprintf(w, "  %-16s  %-9s  %-5s  %-7s  %-5s  %-8s  %-16s  %s\n", "-----", "-------", "-----", "-------", "-----", "----", "----", "--")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-16s  %-9s  %-5d  %-7d  %-5d  %-8s  %-16s  %s\n",
			r.LevelID, r.Outcome, r.Moves, r.PursuerSteps, r.Score,
			r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"), r.ID)
	}
}

// writeRun prints one run as a list of fields.
func writeRun(w io.Writer, r *storage.Run) {
	fmt.Fprintf(w, "Run %s\n\n", r.ID)
	fmt.Fprintf(w, "  Game:     %s\n", r.GameID)
	fmt.Fprintf(w, "  Level:    %s\n", r.LevelID)
	fmt.Fprintf(w, "  Outcome:  %s\n", r.Outcome)
	fmt.Fprintf(w, "  Moves:    %d\n", r.Moves)
	fmt.Fprintf(w, "  Pursuer:  %d steps\n", r.PursuerSteps)
	fmt.Fprintf(w, "  Score:    %d\n", r.Score)
	fmt.Fprintf(w, "  Time:     %s\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "  Played:   %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
}
