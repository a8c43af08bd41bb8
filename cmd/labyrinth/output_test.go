package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth"
	sim "github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth/core"
	"github.com/vovakirdan/tui-labyrinth/internal/registry"
	"github.com/vovakirdan/tui-labyrinth/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestWriteGamesWithStats(t *testing.T) {
	store := openStore(t)
	for _, score := range []int{300, 700} {
		if _, err := store.SaveScore("chase", "01-classic", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	stats, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}

	var buf bytes.Buffer
	writeGames(&buf, registry.List(), stats)
	out := buf.String()

	var chase, explore string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "chase":
			chase = line
		case "labyrinth":
			explore = line
		}
	}
	if !strings.HasSuffix(chase, "700    2") {
		t.Errorf("chase row = %q, want best 700 and 2 wins", chase)
	}
	if !strings.HasSuffix(explore, "-      -") {
		t.Errorf("labyrinth row = %q, want no stats", explore)
	}
}

func TestWriteLevelIDs(t *testing.T) {
	ids, err := labyrinth.LevelIDs(sim.DefaultTiles())
	if err != nil {
		t.Fatalf("LevelIDs() failed: %v", err)
	}

	var buf bytes.Buffer
	writeLevelIDs(&buf, ids)
	if got, want := buf.String(), "01-classic\n02-courtyard\n03-corridors\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriteRunDetail(t *testing.T) {
	store := openStore(t)
	id, err := store.SaveRun(storage.Run{
		GameID:       "chase",
		LevelID:      "02-courtyard",
		Outcome:      storage.OutcomeWon,
		Moves:        31,
		PursuerSteps: 12,
		Score:        833,
		Duration:     4500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	run, err := store.RunByID(id)
	if err != nil || run == nil {
		t.Fatalf("RunByID() = %v, %v", run, err)
	}

	var buf bytes.Buffer
	writeRun(&buf, run)
	out := buf.String()
	for _, want := range []string{"Run " + id, "02-courtyard", "won", "Moves:    31", "Pursuer:  12 steps", "Score:    833", "4.5s"} {
		if !strings.Contains(out, want) {
			t.Errorf("run detail missing %q:\n%s", want, out)
		}
	}
}

func TestWriteRunsListsIDs(t *testing.T) {
	var buf bytes.Buffer
	writeRuns(&buf, nil)
	if !strings.Contains(buf.String(), "No runs recorded yet.") {
		t.Errorf("empty output = %q", buf.String())
	}

	buf.Reset()
	runs := []storage.Run{{ID: "run-1", GameID: "chase", LevelID: "01-classic", Outcome: storage.OutcomeLost, Moves: 3}}
	writeRuns(&buf, runs)
	if !strings.Contains(buf.String(), "run-1") {
		t.Errorf("runs table should show the run ID:\n%s", buf.String())
	}
}
