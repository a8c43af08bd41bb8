// Package labyrinth adapts the maze simulation to the platform's game
// interface. Two games are registered: "labyrinth" (reach the goal) and
// "chase" (reach the goal before the pursuer catches you).
package labyrinth

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-labyrinth/internal/config"
	"github.com/vovakirdan/tui-labyrinth/internal/core"
	sim "github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth/core"
	"github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth/levels"
	"github.com/vovakirdan/tui-labyrinth/internal/registry"
)

// Mode selects whether a pursuer takes part.
type Mode string

const (
	ModeExplore Mode = "explore"
	ModeChase   Mode = "chase"
)

// Each maze cell is drawn two characters wide so cells look square.
const (
	cellW     = 2
	hudHeight = 2
)

// Package-level selections set via CLI flags and the level menu, consumed
// at Reset.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	selectedLevel    string
	mazeFile         string
	levelsDir        string
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLevel selects a level by ID. Empty means the first level.
func SetLevel(id string) {
	selectedLevel = id
}

// SetMazeFile plays a single file instead of the level set: a YAML level or
// a bare text grid.
func SetMazeFile(path string) {
	mazeFile = path
}

// SetLevelsDir loads levels from a directory instead of the built-in set.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// LoadConfig loads the configuration with the selected preset applied.
// A config that fails to load falls back to the defaults.
func LoadConfig() (config.LabyrinthConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.DefaultLabyrinthConfig()
	}
	config.ApplyPreset(&cfg, difficultyPreset)
	return cfg, err
}

// Levels lists the levels available with the current selections.
func Levels(tiles sim.TileConfig) ([]levels.Level, error) {
	return loader(tiles).LoadAll()
}

// LevelIDs lists the IDs of the available levels in sorted order.
func LevelIDs(tiles sim.TileConfig) ([]string, error) {
	return loader(tiles).ListIDs()
}

// LoadLevel resolves the selected maze file or level.
func LoadLevel(tiles sim.TileConfig) (levels.Level, error) {
	return loadLevel(tiles, selectedLevel)
}

// loadLevel resolves the maze file if one is set, else the level with the
// given ID, else the first level.
func loadLevel(tiles sim.TileConfig, id string) (levels.Level, error) {
	if mazeFile != "" {
		return levels.LoadFile(mazeFile, tiles)
	}

	l := loader(tiles)
	if id != "" {
		return l.LoadByID(id)
	}

	lvls, err := l.LoadAll()
	if err != nil {
		return levels.Level{}, err
	}
	if len(lvls) == 0 {
		return levels.Level{}, fmt.Errorf("labyrinth: %w: no levels available", levels.ErrNotFound)
	}
	return lvls[0], nil
}

func loader(tiles sim.TileConfig) *levels.Loader {
	if levelsDir != "" {
		return levels.NewDirLoader(levelsDir, tiles)
	}
	return levels.NewLoader(tiles)
}

// Game runs one level of the labyrinth.
type Game struct {
	mode    Mode
	levelID string // Overrides the package-wide selection when set

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.LabyrinthConfig
	difficulty *config.DifficultyManager

	// Session
	level   levels.Level
	state   *sim.State
	loadErr error
	cfgErr  error // Defaults are in use when set
	score   int
	scored  bool

	// Counters
	tick         uint64 // Input frames
	pursuerTicks int    // Pursuer timer firings, moved or not

	// Layout
	offsetX  int
	offsetY  int
	paused   bool
	tooSmall bool
}

// New creates a labyrinth game without a pursuer.
func New() *Game {
	return &Game{mode: ModeExplore}
}

// NewChase creates a labyrinth game with a pursuer.
func NewChase() *Game {
	return &Game{mode: ModeChase}
}

func init() {
	registry.Register("labyrinth", func() registry.Game {
		return New()
	})
	registry.Register("chase", func() registry.Game {
		return NewChase()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeChase {
		return "chase"
	}
	return "labyrinth"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeChase {
		return "Labyrinth (Chase)"
	}
	return "Labyrinth"
}

// SelectLevel picks the level this instance plays, taking precedence over
// SetLevel. Used by SSH sessions, which share the package state.
func (g *Game) SelectLevel(id string) {
	g.levelID = id
}

// Reset loads the configuration and the selected level and starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := LoadConfig()
	g.cfg = cfg
	g.cfgErr = err
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.tick = 0
	g.pursuerTicks = 0
	g.score = 0
	g.scored = false
	g.paused = false
	g.state = nil

	id := g.levelID
	if id == "" {
		id = selectedLevel
	}
	lvl, err := loadLevel(cfg.TileConfig(), id)
	if err == nil {
		g.level = lvl
		g.state, err = lvl.NewState(g.withPursuer())
	}
	g.loadErr = err

	g.layout(runtime.ScreenW, runtime.ScreenH)
}

// Restart starts the same level again without reloading files.
func (g *Game) Restart() {
	if g.level.Maze == nil {
		g.Reset(g.runtime)
		return
	}

	state, err := g.level.NewState(g.withPursuer())
	g.state = state
	g.loadErr = err
	g.tick = 0
	g.pursuerTicks = 0
	g.score = 0
	g.scored = false
	g.paused = false
}

// Resize recomputes the layout without restarting the run.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.layout(w, h)
}

func (g *Game) withPursuer() bool {
	return g.mode == ModeChase && g.cfg.Pursuer.Enabled
}

// layout centers the maze below the HUD and flags screens that cannot fit it.
func (g *Game) layout(w, h int) {
	if g.level.Maze == nil {
		g.tooSmall = false
		return
	}

	mapW := g.level.Maze.Width() * cellW
	mapH := g.level.Maze.Height()

	g.tooSmall = w < mapW || h < mapH+hudHeight
	g.offsetX = max((w-mapW)/2, 0)
	g.offsetY = hudHeight
}

// Step handles one input frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.state == nil {
		return core.StepResult{State: g.State()}
	}

	ended := g.state.Status().Terminal()

	if in.Has(core.ActionRestart) && ended {
		g.Restart()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !ended {
		g.paused = !g.paused
	}

	if ended || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	dx, dy := in.Direction()
	g.state.AttemptPlayerMove(dx, dy)
	g.evaluate()

	return core.StepResult{State: g.State()}
}

// TickPursuer advances the pursuer one step toward the player.
func (g *Game) TickPursuer() core.StepResult {
	if g.state == nil || !g.state.HasPursuer() {
		return core.StepResult{State: g.State()}
	}
	if g.state.Status().Terminal() || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.pursuerTicks++
	g.state.TickPursuer()
	g.evaluate()

	return core.StepResult{State: g.State()}
}

// PursuerPeriod returns the delay until the next pursuer tick. It shrinks as
// the run goes on when difficulty progression is enabled.
func (g *Game) PursuerPeriod() time.Duration {
	if g.state == nil || !g.state.HasPursuer() {
		return 0
	}

	base := g.cfg.Pursuer.TickPeriod
	if g.runtime.PursuerPeriod > 0 {
		base = g.runtime.PursuerPeriod
	}
	floor := min(g.cfg.Pursuer.MinPeriod, base)

	return g.difficulty.Period(base, floor, g.pursuerTicks, g.state.Moves())
}

// evaluate checks for the end of the run and scores it once.
func (g *Game) evaluate() {
	status := g.state.Evaluate()
	if !status.Terminal() || g.scored {
		return
	}
	g.scored = true
	if status == sim.StatusWon {
		g.score = Score(g.cfg.Scoring, g.state.Moves(), g.state.PursuerSteps())
	}
}

// Score computes the score of a won run. It is never below 1.
func Score(s config.ScoringConfig, moves, pursuerSteps int) int {
	return max(s.Base-s.MovePenalty*moves-s.TickPenalty*pursuerSteps, 1)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:  g.score,
		Paused: g.paused,
	}
	if g.state != nil {
		status := g.state.Status()
		st.GameOver = status.Terminal()
		st.Won = status == sim.StatusWon
	}
	return st
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Err returns the error that prevented the level from loading, if any.
func (g *Game) Err() error {
	return g.loadErr
}

// ConfigErr returns the error from the last configuration load. The game
// runs on the default configuration when it is set.
func (g *Game) ConfigErr() error {
	return g.cfgErr
}

// RunSummary describes a finished or running session for storage.
type RunSummary struct {
	GameID       string
	LevelID      string
	Status       sim.Status
	Moves        int
	PursuerSteps int
	Score        int
}

// ErrNoRun is returned by Summary when no level is loaded.
var ErrNoRun = errors.New("labyrinth: no run in progress")

// Summary returns the run's outcome and counters.
func (g *Game) Summary() (RunSummary, error) {
	if g.state == nil {
		return RunSummary{}, ErrNoRun
	}
	return RunSummary{
		GameID:       g.ID(),
		LevelID:      g.level.ID,
		Status:       g.state.Status(),
		Moves:        g.state.Moves(),
		PursuerSteps: g.state.PursuerSteps(),
		Score:        g.score,
	}, nil
}
