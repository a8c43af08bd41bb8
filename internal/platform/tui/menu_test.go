package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/storage"
)

func menuSend(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, want MenuModel", next)
	}
	return mm, cmd
}

func TestMenuListsGames(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	var ids []string
	for _, item := range m.games {
		ids = append(ids, item.ID)
	}
	if strings.Join(ids, ",") != "chase,labyrinth" {
		t.Errorf("games = %v, want [chase labyrinth]", ids)
	}
}

func TestMenuGameThenLevel(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	// First entry is "chase"
	m, cmd := menuSend(t, m, enter)
	if cmd != nil {
		t.Error("choosing a game should not quit the menu")
	}
	if !m.inLevels {
		t.Fatal("menu should move on to the level list")
	}
	if len(m.levels) == 0 {
		t.Fatalf("no levels listed (err: %v)", m.levelErr)
	}

	// Back returns to the game list with the cursor on the chosen game
	m, _ = menuSend(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.inLevels || m.cursor != 0 {
		t.Errorf("after back: inLevels=%v cursor=%d", m.inLevels, m.cursor)
	}

	// Pick labyrinth, then its second level
	m, _ = menuSend(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = menuSend(t, m, enter)
	m, _ = menuSend(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd = menuSend(t, m, enter)

	gameID, levelID, ok := m.Selected()
	if !ok {
		t.Fatal("Selected() should report a choice")
	}
	if gameID != "labyrinth" || levelID != "02-courtyard" {
		t.Errorf("Selected() = (%q, %q), want (labyrinth, 02-courtyard)", gameID, levelID)
	}
	if cmd == nil {
		t.Error("a completed selection should quit the menu program")
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	sb, _ := menuSend(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !sb.WantsScoreboard() {
		t.Error("tab should request the scoreboard")
	}

	q, _ := menuSend(t, m, runeKey("q"))
	if !q.IsQuitting() {
		t.Error("q should quit")
	}
	if q.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestMenuShowsBestScore(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("chase", "01-classic", 420); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	m := NewMenuModel(store, core.DefaultConfig())
	if m.games[0].Note != "best 420" {
		t.Errorf("chase note = %q, want %q", m.games[0].Note, "best 420")
	}
	if m.games[1].Note != "" {
		t.Errorf("labyrinth note = %q, want empty", m.games[1].Note)
	}
}

func TestMenuResize(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	m, _ = menuSend(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	cfg := m.Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %dx%d, want 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, want %q", got, "  ab")
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText should not trim wide text, got %q", got)
	}
}

func TestScoreboardToggleAndNavigate(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("chase", "01-classic", 900); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	run := storage.Run{GameID: "chase", LevelID: "01-classic", Outcome: storage.OutcomeLost, Moves: 7, Duration: time.Second}
	if _, err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30, false)
	if len(m.scores) != 1 || len(m.runs) != 1 {
		t.Fatalf("loaded %d scores and %d runs, want 1 and 1", len(m.scores), len(m.runs))
	}
	if len(m.table.Rows()) != 1 {
		t.Errorf("score rows = %d, want 1", len(m.table.Rows()))
	}

	next, _ := m.Update(runeKey("r"))
	m = next.(ScoreboardModel)
	if m.view != viewRuns {
		t.Fatal("r should switch to the run history")
	}
	if rows := m.table.Rows(); len(rows) != 1 || rows[0][0] != "lost" {
		t.Errorf("run rows = %v", rows)
	}

	// Next game is labyrinth, which has nothing recorded
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.games[m.gameCursor].ID != "labyrinth" || len(m.runs) != 0 {
		t.Errorf("after tab: game=%s runs=%d", m.games[m.gameCursor].ID, len(m.runs))
	}

	next, _ = m.Update(runeKey("b"))
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("b should go back without quitting")
	}
}

func TestScoreboardLevelFilter(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("chase", "01-classic", 900); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore("chase", "03-corridors", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30, false)
	if len(m.scores) != 2 {
		t.Fatalf("all levels: %d scores, want 2", len(m.scores))
	}

	right := tea.KeyMsg{Type: tea.KeyRight}
	next, _ := m.Update(right)
	m = next.(ScoreboardModel)
	if m.levelID() != "01-classic" || len(m.scores) != 1 || m.scores[0].Score != 900 {
		t.Errorf("level %q: scores = %+v", m.levelID(), m.scores)
	}

	next, _ = m.Update(right)
	m = next.(ScoreboardModel)
	if m.levelID() != "02-courtyard" || len(m.scores) != 0 {
		t.Errorf("level %q: scores = %+v", m.levelID(), m.scores)
	}

	// Left from the first level wraps back to all levels
	m.levelIdx = 0
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ScoreboardModel)
	if m.levelID() != "" || len(m.scores) != 2 {
		t.Errorf("after wrap: level %q, %d scores", m.levelID(), len(m.scores))
	}
}

func TestCycle(t *testing.T) {
	tests := []struct{ cur, delta, lo, n, want int }{
		{0, 1, 0, 2, 1},
		{1, 1, 0, 2, 0},
		{0, -1, 0, 2, 1},
		{-1, 1, -1, 4, 0},
		{-1, -1, -1, 4, 2},
		{2, 1, -1, 4, -1},
		{3, 1, 0, 0, 3},
	}
	for _, tt := range tests {
		if got := cycle(tt.cur, tt.delta, tt.lo, tt.n); got != tt.want {
			t.Errorf("cycle(%d,%d,%d,%d) = %d, want %d", tt.cur, tt.delta, tt.lo, tt.n, got, tt.want)
		}
	}
}
