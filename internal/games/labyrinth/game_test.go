package labyrinth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-labyrinth/internal/config"
	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/registry"
)

const testConfig = `
pursuer:
  enabled: true
  tick_period: 100ms
  min_period: 50ms
difficulty:
  enabled: false
`

// One row: player at the left end, goal at the right end, pursuer between.
const corridorLevel = `
id: corridor
name: Corridor
player: {x: 0, y: 0}
pursuer: {x: 2, y: 0}
grid: |
  0 0 0 0 2
`

// setup points the package at a temp config and level directory and
// restores the selections when the test ends.
func setup(t *testing.T, level string) {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "labyrinth.yaml")
	if err := os.WriteFile(cfgPath, []byte(testConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	lvlDir := filepath.Join(dir, "levels")
	if err := os.Mkdir(lvlDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lvlDir, "level.yaml"), []byte(level), 0o600); err != nil {
		t.Fatal(err)
	}

	SetConfigPath(cfgPath)
	SetLevelsDir(lvlDir)
	t.Cleanup(func() {
		SetConfigPath("")
		SetLevelsDir("")
		SetLevel("")
		SetMazeFile("")
		SetDifficultyPreset("")
	})
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func newGame(t *testing.T, g *Game) *Game {
	t.Helper()
	g.Reset(core.DefaultConfig())
	if err := g.Err(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return g
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"labyrinth", "chase"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
	}
}

func TestExploreReachesGoal(t *testing.T) {
	setup(t, corridorLevel)
	g := newGame(t, New())

	if g.PursuerPeriod() != 0 {
		t.Errorf("explore mode should have no pursuer timer, got %v", g.PursuerPeriod())
	}

	for i := 0; i < 4; i++ {
		g.Step(input(core.ActionRight))
	}

	st := g.State()
	if !st.GameOver || !st.Won {
		t.Fatalf("expected a won run, got %+v", st)
	}
	if want := 1000 - 5*4; st.Score != want {
		t.Errorf("Score = %d, want %d", st.Score, want)
	}

	// Frozen after the end
	g.Step(input(core.ActionLeft))
	if snap := g.Snapshot(); snap.Moves != 4 || snap.PlayerX != 4 {
		t.Errorf("state changed after win: %+v", snap)
	}
}

func TestBlockedMoveIsRejected(t *testing.T) {
	setup(t, corridorLevel)
	g := newGame(t, New())

	g.Step(input(core.ActionUp))
	g.Step(input(core.ActionLeft))

	snap := g.Snapshot()
	if snap.Moves != 0 || snap.PlayerX != 0 || snap.PlayerY != 0 {
		t.Errorf("blocked moves changed state: %+v", snap)
	}
	if snap.Status != "active" {
		t.Errorf("Status = %q, want active", snap.Status)
	}
}

func TestChaseCaught(t *testing.T) {
	setup(t, corridorLevel)
	g := newGame(t, NewChase())

	g.TickPursuer()
	if snap := g.Snapshot(); snap.PursuerX != 1 {
		t.Fatalf("pursuer should step to x=1, got %d", snap.PursuerX)
	}

	g.TickPursuer()
	st := g.State()
	if !st.GameOver || st.Won {
		t.Fatalf("expected a lost run, got %+v", st)
	}
	if st.Score != 0 {
		t.Errorf("lost run scored %d", st.Score)
	}

	sum, err := g.Summary()
	if err != nil {
		t.Fatal(err)
	}
	if sum.GameID != "chase" || sum.LevelID != "corridor" || sum.PursuerSteps != 2 {
		t.Errorf("unexpected summary %+v", sum)
	}
}

func TestPauseFreezesBothTimers(t *testing.T) {
	setup(t, corridorLevel)
	g := newGame(t, NewChase())

	g.Step(input(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	g.Step(input(core.ActionRight))
	g.TickPursuer()

	snap := g.Snapshot()
	if snap.Moves != 0 || snap.PursuerTicks != 0 || snap.PursuerX != 2 {
		t.Errorf("paused game advanced: %+v", snap)
	}

	g.Step(input(core.ActionPause))
	if g.State().Paused {
		t.Error("expected unpaused")
	}
}

func TestRestartAfterLoss(t *testing.T) {
	setup(t, corridorLevel)
	g := newGame(t, NewChase())

	// Restart is ignored while the run is active
	g.Step(input(core.ActionRight))
	g.Step(input(core.ActionRestart))
	if g.Snapshot().Moves != 1 {
		t.Fatal("restart should not apply to an active run")
	}

	// Player at x=1 walks into the pursuer at x=2.
	g.Step(input(core.ActionRight))
	if !g.State().GameOver {
		t.Fatal("expected capture")
	}

	g.Step(input(core.ActionRestart))
	snap := g.Snapshot()
	if snap.Status != "active" || snap.Moves != 0 || snap.PlayerX != 0 || snap.PursuerX != 2 {
		t.Errorf("restart did not reset the run: %+v", snap)
	}
}

func TestWindowTooSmall(t *testing.T) {
	setup(t, corridorLevel)
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 6, ScreenH: 24, TickRate: 10})

	g.Step(input(core.ActionRight))
	if snap := g.Snapshot(); !snap.TooSmall || snap.Moves != 0 {
		t.Fatalf("expected a frozen too-small game, got %+v", snap)
	}

	screen := core.NewScreen(6, 24)
	g.Render(screen)

	g.Resize(80, 24)
	g.Step(input(core.ActionRight))
	if snap := g.Snapshot(); snap.TooSmall || snap.Moves != 1 {
		t.Errorf("expected play to resume after resize, got %+v", snap)
	}
}

func TestPursuerPeriod(t *testing.T) {
	setup(t, corridorLevel)
	g := newGame(t, NewChase())

	if got := g.PursuerPeriod(); got != 100*time.Millisecond {
		t.Errorf("PursuerPeriod() = %v, want 100ms", got)
	}

	rc := core.DefaultConfig()
	rc.PursuerPeriod = 40 * time.Millisecond
	g.Reset(rc)
	if got := g.PursuerPeriod(); got != 40*time.Millisecond {
		t.Errorf("PursuerPeriod() with override = %v, want 40ms", got)
	}
}

func TestDeterminism(t *testing.T) {
	setup(t, `
id: box
name: Box
player: {x: 1, y: 1}
pursuer: {x: 5, y: 3}
grid: |
  1 1 1 1 1 1 1
  1 0 0 0 0 0 1
  1 0 1 1 1 0 1
  1 0 0 0 0 2 1
  1 1 1 1 1 1 1
`)

	g1 := newGame(t, NewChase())
	g2 := newGame(t, NewChase())

	script := []core.Action{core.ActionDown, core.ActionDown, core.ActionRight, core.ActionNone, core.ActionRight}
	for i := 0; i < 20; i++ {
		a := script[i%len(script)]
		g1.Step(input(a))
		g2.Step(input(a))
		if i%3 == 0 {
			g1.TickPursuer()
			g2.TickPursuer()
		}
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestRender(t *testing.T) {
	setup(t, corridorLevel)
	g := newGame(t, NewChase())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	for _, want := range []string{"Corridor", "Moves: 0", "Pursuer: 2", "[active]"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}

	// Maze is 10 columns wide, centered on 80: x offset 35, below the HUD.
	if got := screen.Get(35, 2); got != '(' {
		t.Errorf("player glyph = %q, want '('", got)
	}
	if got := screen.Get(39, 2); got != '<' {
		t.Errorf("pursuer glyph = %q, want '<'", got)
	}
	if got := screen.GetCell(43, 2); got.Rune != '▒' || got.Color != core.ColorFinish {
		t.Errorf("finish cell = %+v", got)
	}
}

func TestLoadErrorIsReported(t *testing.T) {
	setup(t, corridorLevel)
	SetLevel("missing")

	g := New()
	g.Reset(core.DefaultConfig())
	if g.Err() == nil {
		t.Fatal("expected a load error")
	}

	// Must not panic without a level
	g.Step(input(core.ActionRight))
	g.TickPursuer()
	if _, err := g.Summary(); err != ErrNoRun {
		t.Errorf("Summary() error = %v, want ErrNoRun", err)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Could not load level") {
		t.Error("load error overlay not rendered")
	}
}

func TestBrokenConfigFallsBackToDefaults(t *testing.T) {
	setup(t, corridorLevel)
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(p, []byte("pursuer: [1"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(p)

	g := newGame(t, NewChase())
	if g.ConfigErr() == nil {
		t.Fatal("ConfigErr() = nil, want the parse error")
	}
	if g.cfg.Pursuer != config.DefaultLabyrinthConfig().Pursuer {
		t.Errorf("pursuer config = %+v, want the defaults", g.cfg.Pursuer)
	}
	if g.Err() != nil || g.state == nil {
		t.Errorf("level should still load, Err() = %v", g.Err())
	}

	SetConfigPath("")
	g.Reset(core.DefaultConfig())
	if g.ConfigErr() != nil {
		t.Errorf("ConfigErr() after a good load = %v", g.ConfigErr())
	}
}

func TestMazeFile(t *testing.T) {
	setup(t, corridorLevel)
	p := filepath.Join(t.TempDir(), "tiny.txt")
	if err := os.WriteFile(p, []byte("0 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetMazeFile(p)

	g := newGame(t, New())
	if g.Level().Name != "tiny" {
		t.Errorf("Level().Name = %q, want tiny", g.Level().Name)
	}
	g.Step(input(core.ActionRight))
	if !g.State().Won {
		t.Error("expected to win on a one-step maze")
	}
}

func TestScore(t *testing.T) {
	s := config.ScoringConfig{Base: 1000, MovePenalty: 5, TickPenalty: 1}

	tests := []struct {
		moves, steps, want int
	}{
		{0, 0, 1000},
		{10, 20, 930},
		{500, 0, 1},
		{1000, 1000, 1},
	}
	for _, tt := range tests {
		if got := Score(s, tt.moves, tt.steps); got != tt.want {
			t.Errorf("Score(%d, %d) = %d, want %d", tt.moves, tt.steps, got, tt.want)
		}
	}
}
