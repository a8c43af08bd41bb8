package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth"
	"github.com/vovakirdan/tui-labyrinth/internal/registry"
	"github.com/vovakirdan/tui-labyrinth/internal/storage"
)

const (
	maxScores = 100
	maxRuns   = 50
)

// boardView selects what the table lists.
type boardView int

const (
	viewScores boardView = iota
	viewRuns
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextGame  key.Binding
	PrevGame  key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Toggle    key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextGame, k.NextLevel, k.PrevLevel, k.Toggle, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.NextLevel, k.PrevLevel, k.Toggle, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		NextGame:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "game")),
		PrevGame:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev game")),
		NextLevel: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "level")),
		PrevLevel: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev level")),
		Toggle:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "scores/runs")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("b/esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
)

// ScoreboardModel shows the high scores or the run history of one game,
// optionally narrowed to one level.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	levels     []string // Level IDs; levelIdx -1 means all levels
	levelIdx   int
	store      *storage.Store
	view       boardView

	scores []storage.ScoreEntry
	runs   []storage.Run
	stats  *storage.GameStats

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model. With showRuns it opens
// on the run history instead of the high scores.
func NewScoreboardModel(store *storage.Store, width, height int, showRuns bool) ScoreboardModel {
	m := ScoreboardModel{
		games:    registry.List(),
		levelIdx: -1,
		store:    store,
		keys:     DefaultScoreboardKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	if showRuns {
		m.view = viewRuns
	}

	if cfg, err := labyrinth.LoadConfig(); err == nil {
		if ids, err := labyrinth.LevelIDs(cfg.TileConfig()); err == nil {
			m.levels = ids
		}
	}

	m.table = m.createTable()
	m.load()
	return m
}

// SelectGame moves the cursor to the given game ID if it is listed.
func (m *ScoreboardModel) SelectGame(id string) {
	for i, g := range m.games {
		if g.ID == id {
			m.gameCursor = i
			m.load()
			return
		}
	}
}

func (m *ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

func (m *ScoreboardModel) levelID() string {
	if m.levelIdx < 0 || m.levelIdx >= len(m.levels) {
		return ""
	}
	return m.levels[m.levelIdx]
}

// createTable sizes a table for the current view and window.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// columns returns the table columns for the current view.
func (m *ScoreboardModel) columns() []table.Column {
	if m.view == viewRuns {
		return []table.Column{
			{Title: "Outcome", Width: 10},
			{Title: "Level", Width: 14},
			{Title: "Moves", Width: 6},
			{Title: "Pursuer", Width: 8},
			{Title: "Time", Width: 8},
			{Title: "Date", Width: 12},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 14},
		{Title: "Date", Width: 12},
	}
}

// load reads scores, runs and stats for the selected game and level.
// Read errors leave the table empty.
func (m *ScoreboardModel) load() {
	m.scores, m.runs, m.stats = nil, nil, nil

	gameID, levelID := m.gameID(), m.levelID()
	if m.store != nil && gameID != "" {
		var scores []storage.ScoreEntry
		var err error
		if levelID != "" {
			scores, err = m.store.LevelTopScores(gameID, levelID, maxScores)
		} else {
			scores, err = m.store.TopScores(gameID, maxScores)
		}
		if err == nil {
			m.scores = scores
		}

		if runs, err := m.store.RecentRuns(gameID, maxRuns); err == nil {
			for _, r := range runs {
				if levelID == "" || r.LevelID == levelID {
					m.runs = append(m.runs, r)
				}
			}
		}

		if stats, err := m.store.GetGameStats(gameID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table with the current view's rows.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row

	if m.view == viewRuns {
		rows = make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			rows[i] = table.Row{
				string(r.Outcome),
				r.LevelID,
				fmt.Sprintf("%d", r.Moves),
				fmt.Sprintf("%d", r.PursuerSteps),
				r.Duration.Round(100 * time.Millisecond).String(),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	} else {
		rows = make([]table.Row, len(m.scores))
		for i, s := range m.scores {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				s.LevelID,
				s.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	}

	m.table.SetRows(rows)
	m.table.GotoTop()
}

// toggleView switches between scores and runs. The table is rebuilt
// because the two views have different columns.
func (m *ScoreboardModel) toggleView() {
	if m.view == viewScores {
		m.view = viewRuns
	} else {
		m.view = viewScores
	}
	m.table = m.createTable()
	m.updateTableRows()
}

// cycle moves a cursor by delta and wraps it into [lo, lo+n).
func cycle(cur, delta, lo, n int) int {
	if n <= 0 {
		return cur
	}
	return ((cur-lo+delta)%n+n)%n + lo
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			m.gameCursor = cycle(m.gameCursor, 1, 0, len(m.games))
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.gameCursor = cycle(m.gameCursor, -1, 0, len(m.games))
			m.load()
			return m, nil

		// The level filter runs over "all" (-1) and every level.
		case key.Matches(msg, m.keys.NextLevel):
			m.levelIdx = cycle(m.levelIdx, 1, -1, len(m.levels)+1)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			m.levelIdx = cycle(m.levelIdx, -1, -1, len(m.levels)+1)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			m.toggleView()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling is handled by the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if m.view == viewRuns {
		title = "RECENT RUNS"
	}
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.gameCursor {
			tabs[i] = boardActiveStyle.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n")

	level := m.levelID()
	if level == "" {
		level = "all levels"
	}
	b.WriteString(centerText(helpStyle.Render("< "+level+" >"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(boardFrameStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	empty := len(m.scores) == 0
	if m.view == viewRuns {
		empty = len(m.runs) == 0
	}
	if empty {
		return boardEmptyStyle.Render("Nothing recorded yet.\nFind the exit to set a high score!")
	}
	return m.table.View()
}

// statsLine summarizes the selected game's history.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil {
		return ""
	}
	st := m.stats
	line := fmt.Sprintf("runs %d  won %d  lost %d  win rate %.0f%%", st.Runs, st.Wins, st.Losses, st.WinRate()*100)
	if st.GamesCount > 0 {
		line += fmt.Sprintf("  best %d  avg %.0f", st.HighScore, st.AvgScore)
	}
	return line
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen, opened on gameID when it is
// set. Returns true if the user wants to go back to the menu.
func RunScoreboard(store *storage.Store, width, height int, gameID string, showRuns bool) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height, showRuns)
	if gameID != "" {
		model.SelectGame(gameID)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
