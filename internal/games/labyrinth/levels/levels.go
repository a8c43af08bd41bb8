// Package levels loads labyrinth levels: YAML files that carry a maze grid
// together with the actors' starting cells, and bare text grids.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth/core"
)

//go:embed data/*.yaml
var builtin embed.FS

var (
	// ErrNotFound is returned by LoadByID for an unknown level ID.
	ErrNotFound = errors.New("level not found")

	// ErrSharedStart is returned when the pursuer would start on the
	// player's cell, which loses the run before the first move.
	ErrSharedStart = errors.New("pursuer starts on the player's cell")

	// ErrNoPursuerStart is returned when a level without a pursuer start has
	// no reachable cell to place one on.
	ErrNoPursuerStart = errors.New("no cell to start the pursuer on")

	// ErrUnsolvable is returned when no goal cell is reachable from the
	// player's start.
	ErrUnsolvable = errors.New("no goal reachable from the player's start")
)

// Level is a maze plus the starting cells of its actors.
type Level struct {
	ID       string
	Name     string
	Maze     *core.Maze
	Player   core.Position
	Pursuer  *core.Position // nil when the level defines no pursuer start
	FilePath string
}

// PursuerStart returns the pursuer's start, falling back to the reachable
// non-goal cell farthest from the player when the level does not define one.
func (l *Level) PursuerStart() (core.Position, error) {
	if l.Pursuer != nil {
		return *l.Pursuer, nil
	}
	p, ok := farthestFrom(l.Maze, l.Player)
	if !ok {
		return core.Position{}, fmt.Errorf("level %s: %w", l.ID, ErrNoPursuerStart)
	}
	return p, nil
}

// NewState starts a session on this level.
func (l *Level) NewState(withPursuer bool) (*core.State, error) {
	if !withPursuer {
		return core.NewState(l.Maze, l.Player)
	}
	start, err := l.PursuerStart()
	if err != nil {
		return nil, err
	}
	return core.NewState(l.Maze, l.Player, core.WithPursuer(start))
}

// yamlLevel is the on-disk level format.
type yamlLevel struct {
	ID      string        `yaml:"id"`
	Name    string        `yaml:"name"`
	Player  yamlPosition  `yaml:"player"`
	Pursuer *yamlPosition `yaml:"pursuer,omitempty"`
	Grid    string        `yaml:"grid"`
}

type yamlPosition struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (p yamlPosition) toPosition() core.Position {
	return core.P(p.X, p.Y)
}

// Loader reads level files from a filesystem.
type Loader struct {
	fsys  fs.FS
	root  string
	tiles core.TileConfig
}

// NewLoader creates a loader over the levels compiled into the binary.
func NewLoader(tiles core.TileConfig) *Loader {
	return &Loader{fsys: builtin, root: "data", tiles: tiles}
}

// NewDirLoader creates a loader over a directory on disk.
func NewDirLoader(dir string, tiles core.TileConfig) *Loader {
	return &Loader{fsys: os.DirFS(dir), root: ".", tiles: tiles}
}

// LoadAll loads every level file below the loader's root.
// Invalid files are skipped. Levels are sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var lvls []Level

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLevelFile(p) {
			return nil
		}

		lvl, err := l.load(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		lvls = append(lvls, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.root, err)
	}

	sort.Slice(lvls, func(i, j int) bool {
		return lvls[i].ID < lvls[j].ID
	})

	return lvls, nil
}

// LoadByID loads the level with the given ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	lvls, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range lvls {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("levels: %w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	lvls, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(lvls))
	for i, lvl := range lvls {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// load reads and validates one file from the loader's filesystem.
func (l *Loader) load(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}

	lvl, err := ParseYAML(data, l.tiles)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}
	lvl.FilePath = p
	return lvl, nil
}

// ParseYAML parses and validates a YAML level.
func ParseYAML(data []byte, tiles core.TileConfig) (Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, errors.New("missing id")
	}

	m, err := core.ParseString(yl.Grid, tiles)
	if err != nil {
		return Level{}, err
	}

	lvl := Level{
		ID:     yl.ID,
		Name:   yl.Name,
		Maze:   m,
		Player: yl.Player.toPosition(),
	}
	if lvl.Name == "" {
		lvl.Name = yl.ID
	}
	if yl.Pursuer != nil {
		p := yl.Pursuer.toPosition()
		lvl.Pursuer = &p
	}

	if err := validate(lvl); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

// LoadFile loads a single level file from disk. YAML files are parsed as
// levels; anything else is read as a bare text grid.
func LoadFile(filePath string, tiles core.TileConfig) (Level, error) {
	if !isLevelFile(filePath) {
		return LoadMazeFile(filePath, tiles)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", filePath, err)
	}
	lvl, err := ParseYAML(data, tiles)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", filePath, err)
	}
	lvl.FilePath = filePath
	return lvl, nil
}

// LoadMazeFile loads a bare text grid as a level. The player starts on the
// first free non-goal cell in reading order.
func LoadMazeFile(filePath string, tiles core.TileConfig) (Level, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return Level{}, fmt.Errorf("levels: opening %s: %w", filePath, err)
	}
	defer f.Close()

	m, err := core.Parse(f, tiles)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", filePath, err)
	}

	start, ok := firstOpenCell(m)
	if !ok {
		return Level{}, fmt.Errorf("levels: %s has no free cell to start on", filePath)
	}

	base := filepath.Base(filePath)
	lvl := Level{
		ID:       "custom",
		Name:     strings.TrimSuffix(base, filepath.Ext(base)),
		Maze:     m,
		Player:   start,
		FilePath: filePath,
	}
	if err := validate(lvl); err != nil {
		return Level{}, fmt.Errorf("levels: %s: %w", filePath, err)
	}
	return lvl, nil
}

// validate checks that both starts are free and distinct and that the
// player can reach a goal.
func validate(lvl Level) error {
	m := lvl.Maze
	if !m.IsFree(lvl.Player.X, lvl.Player.Y) {
		return fmt.Errorf("player start %s: %w", lvl.Player, core.ErrBlockedStart)
	}
	if lvl.Pursuer != nil {
		if !m.IsFree(lvl.Pursuer.X, lvl.Pursuer.Y) {
			return fmt.Errorf("pursuer start %s: %w", *lvl.Pursuer, core.ErrBlockedStart)
		}
		if *lvl.Pursuer == lvl.Player {
			return fmt.Errorf("pursuer start %s: %w", *lvl.Pursuer, ErrSharedStart)
		}
	}
	if len(m.FinishCells()) == 0 {
		return errors.New("maze has no goal cell")
	}

	for _, p := range core.Reachable(m, lvl.Player) {
		if m.IsFinish(p.X, p.Y) {
			return nil
		}
	}
	return ErrUnsolvable
}

func firstOpenCell(m *core.Maze) (core.Position, bool) {
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.IsFree(x, y) && !m.IsFinish(x, y) {
				return core.P(x, y), true
			}
		}
	}
	return core.Position{}, false
}

// farthestFrom returns the last non-goal cell in breadth-first order from
// from, excluding from itself.
func farthestFrom(m *core.Maze, from core.Position) (core.Position, bool) {
	cells := core.Reachable(m, from)
	for i := len(cells) - 1; i > 0; i-- {
		if !m.IsFinish(cells[i].X, cells[i].Y) {
			return cells[i], true
		}
	}
	return core.Position{}, false
}

// isLevelFile checks the file extension.
func isLevelFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
