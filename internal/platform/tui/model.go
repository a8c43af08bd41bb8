package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth"
	sim "github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth/core"
	"github.com/vovakirdan/tui-labyrinth/internal/registry"
	"github.com/vovakirdan/tui-labyrinth/internal/storage"
)

// Rows reserved below the game screen for the help footer.
const footerHeight = 1

// runSummarizer is implemented by games that report run outcomes.
type runSummarizer interface {
	Summary() (labyrinth.RunSummary, error)
}

// configReporter is implemented by games that fall back to defaults when
// their configuration cannot be loaded.
type configReporter interface {
	ConfigErr() error
}

// resizer is implemented by games that can relayout without restarting.
type resizer interface {
	Resize(w, h int)
}

// GameModel runs one game: it drives the frame and pursuer timers, maps
// keys to actions and saves the run when it ends.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState

	pursuerGen int // Bumped on restart so stale pursuer ticks are dropped
	startedAt  time.Time
	runSaved   bool

	standalone bool // Back quits instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model and starts the first run.
// A nil store disables persistence; a nil logger discards log output.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := GameModel{
		game:       game,
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		startedAt:  time.Now(),
	}
	m.help.Width = cfg.ScreenW

	gc := m.gameConfig()
	m.screen = core.NewScreen(gc.ScreenW, gc.ScreenH)
	m.game.Reset(gc)
	m.gameState = m.game.State()
	m.warnConfig()

	logger.Info("run started", "game", game.ID())
	return m
}

// warnConfig logs a configuration the game could not load.
func (m GameModel) warnConfig() {
	c, ok := m.game.(configReporter)
	if !ok {
		return
	}
	if err := c.ConfigErr(); err != nil {
		m.logger.Warn("config not loaded, using defaults", "game", m.game.ID(), "error", err)
	}
}

// gameConfig is the runtime config the game sees: the terminal minus the footer.
func (m GameModel) gameConfig() core.RuntimeConfig {
	gc := m.config
	gc.ScreenH = max(gc.ScreenH-footerHeight, 0)
	return gc
}

// Init starts both timers.
func (m GameModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.config.TickRate),
		pursuerTickCmd(m.game.PursuerPeriod(), m.pursuerGen),
	)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case PursuerTickMsg:
		return m.handlePursuerTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.abandonRun()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only when the run has ended or is paused
	if action == core.ActionBack {
		if !m.gameState.GameOver && !m.gameState.Paused {
			return m, nil
		}
		m.abandonRun()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	gc := m.gameConfig()
	m.screen.Resize(gc.ScreenW, gc.ScreenH)

	if r, ok := m.game.(resizer); ok {
		r.Resize(gc.ScreenW, gc.ScreenH)
		return m, nil
	}

	// Games without relayout support start over
	if m.gameState.GameOver {
		return m, nil
	}
	m.game.Reset(gc)
	m.gameState = m.game.State()
	return m, m.startRun()
}

// handleTick runs one input frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if wasOver && !m.gameState.GameOver {
		cmds = append(cmds, m.startRun())
	}
	m.recordRun()

	return m, tea.Batch(cmds...)
}

// handlePursuerTick advances the pursuer and schedules the next tick.
// The chain stops when the run ends; a restart starts a new one.
func (m GameModel) handlePursuerTick(msg PursuerTickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.pursuerGen || m.gameState.GameOver {
		return m, nil
	}

	result := m.game.TickPursuer()
	m.gameState = result.State
	m.recordRun()

	if m.gameState.GameOver {
		return m, nil
	}
	return m, pursuerTickCmd(m.game.PursuerPeriod(), m.pursuerGen)
}

// startRun resets the per-run bookkeeping and starts a new pursuer chain.
func (m *GameModel) startRun() tea.Cmd {
	m.pursuerGen++
	m.runSaved = false
	m.startedAt = time.Now()
	m.logger.Info("run started", "game", m.game.ID())
	return pursuerTickCmd(m.game.PursuerPeriod(), m.pursuerGen)
}

// recordRun saves the run once it has ended.
func (m *GameModel) recordRun() {
	if !m.gameState.GameOver || m.runSaved {
		return
	}
	m.runSaved = true
	m.saveRun()
}

// abandonRun saves an unfinished run the player walked away from, if they
// made any move at all.
func (m *GameModel) abandonRun() {
	if m.gameState.GameOver || m.runSaved {
		return
	}
	rs, ok := m.game.(runSummarizer)
	if !ok {
		return
	}
	if sum, err := rs.Summary(); err != nil || sum.Moves == 0 {
		return
	}
	m.runSaved = true
	m.saveRun()
}

// saveRun logs the outcome and persists it. Storage failures are logged
// and otherwise ignored.
func (m *GameModel) saveRun() {
	rs, ok := m.game.(runSummarizer)
	if !ok {
		return
	}
	sum, err := rs.Summary()
	if err != nil {
		return
	}

	outcome := outcomeFor(sum.Status)
	duration := time.Since(m.startedAt)
	m.logger.Info("run finished",
		"game", sum.GameID,
		"level", sum.LevelID,
		"outcome", outcome,
		"moves", sum.Moves,
		"pursuer_steps", sum.PursuerSteps,
		"score", sum.Score,
		"duration", duration.Round(time.Millisecond),
	)

	if m.store == nil {
		return
	}

	_, err = m.store.SaveRun(storage.Run{
		GameID:       sum.GameID,
		LevelID:      sum.LevelID,
		Outcome:      outcome,
		Moves:        sum.Moves,
		PursuerSteps: sum.PursuerSteps,
		Score:        sum.Score,
		Duration:     duration,
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
	}

	if outcome == storage.OutcomeWon && sum.Score > 0 {
		if _, err := m.store.SaveScore(sum.GameID, sum.LevelID, sum.Score); err != nil {
			m.logger.Warn("could not save score", "error", err)
		}
	}
}

func outcomeFor(s sim.Status) storage.Outcome {
	switch s {
	case sim.StatusWon:
		return storage.OutcomeWon
	case sim.StatusLost:
		return storage.OutcomeLost
	default:
		return storage.OutcomeAbandoned
	}
}

// saveScreenshot saves the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".labyrinth", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the game screen and the help footer.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the local terminal.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
