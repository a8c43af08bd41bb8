package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth"
	"github.com/vovakirdan/tui-labyrinth/internal/registry"
	"github.com/vovakirdan/tui-labyrinth/internal/storage"
)

// MenuItem is one selectable line of the menu.
type MenuItem struct {
	ID    string
	Title string
	Note  string // Dimmed text after the title
}

// MenuKeyMap is only used for the help footer; keys are matched by
// MapKeyToMenuAction.
type MenuKeyMap struct {
	Move       key.Binding
	Select     key.Binding
	Back       key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Select, k.Back, k.Scoreboard, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Move:       key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "navigate")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("b/esc", "back")),
		Scoreboard: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuNoteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// MenuModel picks a game, then a level.
type MenuModel struct {
	games  []MenuItem
	levels []MenuItem

	cursor       int
	inLevels     bool
	width        int
	height       int
	store        *storage.Store
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	keys         MenuKeyMap
	help         help.Model
	levelErr     error
	cfgErr       error // Defaults are in use when set
	selectedGame string
	selectedLvl  string

	quitting       bool
	done           bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{ID: g.ID, Title: g.Title}
		if store != nil {
			if high, err := store.HighScore(g.ID); err == nil && high > 0 {
				item.Note = fmt.Sprintf("best %d", high)
			}
		}
		items = append(items, item)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return MenuModel{
		games:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		keys:      defaultMenuKeyMap(),
		help:      h,
	}
}

// loadLevels fills the level list for the second stage.
func (m *MenuModel) loadLevels() {
	cfg, cfgErr := labyrinth.LoadConfig()
	m.cfgErr = cfgErr
	lvls, err := labyrinth.Levels(cfg.TileConfig())
	m.levelErr = err
	m.levels = m.levels[:0]
	for _, l := range lvls {
		m.levels = append(m.levels, MenuItem{
			ID:    l.ID,
			Title: l.Name,
			Note:  fmt.Sprintf("%dx%d", l.Maze.Width(), l.Maze.Height()),
		})
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m MenuModel) items() []MenuItem {
	if m.inLevels {
		return m.levels
	}
	return m.games
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.items()

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case MenuActionBack:
		if m.inLevels {
			m.inLevels = false
			m.cursor = m.gameIndex()
		}

	case MenuActionSelect:
		if len(items) == 0 {
			return m, nil
		}
		if !m.inLevels {
			m.selectedGame = items[m.cursor].ID
			m.inLevels = true
			m.loadLevels()
			m.cursor = 0
			return m, nil
		}
		m.selectedLvl = items[m.cursor].ID
		m.done = true
		return m, tea.Quit

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) gameIndex() int {
	for i, g := range m.games {
		if g.ID == m.selectedGame {
			return i
		}
	}
	return 0
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("L A B Y R I N T H"), m.width))
	b.WriteString("\n\n")

	subtitle := "Select a game"
	if m.inLevels {
		subtitle = "Select a level"
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	if m.inLevels && m.cfgErr != nil {
		b.WriteString(centerText(menuErrorStyle.Render("using default config: "+m.cfgErr.Error()), m.width))
		b.WriteString("\n")
	}
	if m.inLevels && m.levelErr != nil {
		b.WriteString(centerText(menuErrorStyle.Render(m.levelErr.Error()), m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items() {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + item.Title)
		}
		if item.Note != "" {
			line += "  " + menuNoteStyle.Render(item.Note)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen game and level, and whether a choice was made.
func (m MenuModel) Selected() (gameID, levelID string, ok bool) {
	return m.selectedGame, m.selectedLvl, m.done
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Styled text is measured
// without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	LevelID         string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}

	switch gameID, levelID, chosen := m.Selected(); {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case chosen:
		result.GameID = gameID
		result.LevelID = levelID
	default:
		result.Quit = true
	}

	return result, nil
}
