package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-labyrinth/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the labyrinth SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the game and level menu.
Scores are stored per-server (all users share the same leaderboard).

Settings are read from flags, then from the environment (a .env file in
the working directory is loaded if present):
  LABYRINTH_SSH_ADDR   - listen address
  LABYRINTH_HOST_KEY   - host key path
  LABYRINTH_DB         - scores database path

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.labyrinth/host_key

Examples:
  labyrinth serve                           # Listen on :23234 with auto-generated key
  labyrinth serve --ssh :2222               # Listen on port 2222
  labyrinth serve --host-key ./my_host_key  # Use specific host key
  labyrinth serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default :23234)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

// firstSet returns the first non-empty value.
func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "labyrinth-ssh")

	if err := godotenv.Load(); err != nil {
		logger.Debug(".env file not loaded", "error", err)
	}

	defaults := tui.DefaultSSHServerConfig()

	dbPath := flagDBPath
	if !cmd.Flags().Changed("db") {
		dbPath = firstSet(os.Getenv("LABYRINTH_DB"), flagDBPath)
	}

	cfg := tui.SSHServerConfig{
		Address:     firstSet(flagSSHAddr, os.Getenv("LABYRINTH_SSH_ADDR"), defaults.Address),
		HostKeyPath: firstSet(flagHostKey, os.Getenv("LABYRINTH_HOST_KEY")),
		DBPath:      dbPath,
		TickRate:    flagFPS,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting labyrinth SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
