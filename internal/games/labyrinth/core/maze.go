// Package core contains the labyrinth simulation: the immutable maze, the
// breadth-first pathfinder that drives the pursuer and the turn-by-turn game
// state machine. It performs no I/O, rendering or timing of its own.
package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrMalformedMap is returned when a maze source is empty, not
	// rectangular or contains a token that is not a non-negative integer.
	ErrMalformedMap = errors.New("malformed map")

	// ErrOutOfBounds is returned by TileAt for coordinates outside the grid.
	ErrOutOfBounds = errors.New("position out of bounds")
)

// TileCode identifies the terrain class of a single cell.
type TileCode int

// Tile codes used by the bundled levels.
const (
	TileFloor  TileCode = 0
	TileWall   TileCode = 1
	TileFinish TileCode = 2
)

// TileConfig tells a Maze which codes are traversable and which one is the goal.
type TileConfig struct {
	Free   []TileCode
	Finish TileCode
}

// DefaultTiles returns floor and goal as free, goal as finish.
func DefaultTiles() TileConfig {
	return TileConfig{
		Free:   []TileCode{TileFloor, TileFinish},
		Finish: TileFinish,
	}
}

// Maze is an immutable rectangular grid of tile codes.
// It is safe to share between sessions since nothing mutates it after construction.
type Maze struct {
	width  int
	height int
	tiles  []TileCode // row-major, index = y*width + x
	free   map[TileCode]struct{}
	finish TileCode
}

// NewMaze builds a maze from rows of tile codes. The rows are copied.
func NewMaze(rows [][]TileCode, tiles TileConfig) (*Maze, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrMalformedMap)
	}

	width := len(rows[0])
	m := &Maze{
		width:  width,
		height: len(rows),
		tiles:  make([]TileCode, 0, width*len(rows)),
		free:   make(map[TileCode]struct{}, len(tiles.Free)),
		finish: tiles.Finish,
	}

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrMalformedMap, y, len(row), width)
		}
		for x, code := range row {
			if code < 0 {
				return nil, fmt.Errorf("%w: negative tile code %d at (%d,%d)", ErrMalformedMap, code, x, y)
			}
		}
		m.tiles = append(m.tiles, row...)
	}

	for _, code := range tiles.Free {
		m.free[code] = struct{}{}
	}

	return m, nil
}

// maxRowBytes caps the length of one text row.
const maxRowBytes = 1 << 20

// Parse reads a maze in the text format: one line per row, each holding
// whitespace-separated non-negative integers. Blank lines are ignored.
// Rows longer than maxRowBytes are malformed.
func Parse(r io.Reader, tiles TileConfig) (*Maze, error) {
	var rows [][]TileCode

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxRowBytes)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		row := make([]TileCode, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("%w: line %d: invalid tile %q", ErrMalformedMap, line, f)
			}
			row[i] = TileCode(v)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d: row longer than %d bytes", ErrMalformedMap, line+1, maxRowBytes)
		}
		return nil, fmt.Errorf("reading maze: %w", err)
	}

	return NewMaze(rows, tiles)
}

// ParseString is Parse over an in-memory grid.
func ParseString(s string, tiles TileConfig) (*Maze, error) {
	return Parse(strings.NewReader(s), tiles)
}

// Width returns the number of columns.
func (m *Maze) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *Maze) Height() int {
	return m.height
}

// Contains reports whether p lies inside the grid.
func (m *Maze) Contains(p Position) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// TileAt returns the code at (x, y).
func (m *Maze) TileAt(x, y int) (TileCode, error) {
	if !m.Contains(Position{X: x, Y: y}) {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, m.width, m.height)
	}
	return m.tiles[y*m.width+x], nil
}

// IsFree reports whether an actor may stand on (x, y).
// Unlike TileAt it is defined for every coordinate: outside the grid is never free.
func (m *Maze) IsFree(x, y int) bool {
	code, err := m.TileAt(x, y)
	if err != nil {
		return false
	}
	_, ok := m.free[code]
	return ok
}

// IsFinish reports whether (x, y) is a goal cell.
func (m *Maze) IsFinish(x, y int) bool {
	code, err := m.TileAt(x, y)
	if err != nil {
		return false
	}
	return code == m.finish
}

// FinishCells lists every goal cell in row-major order.
func (m *Maze) FinishCells() []Position {
	var cells []Position
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.tiles[y*m.width+x] == m.finish {
				cells = append(cells, Position{X: x, Y: y})
			}
		}
	}
	return cells
}

// String renders the grid back into the text format.
func (m *Maze) String() string {
	var sb strings.Builder
	for y := 0; y < m.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < m.width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(int(m.tiles[y*m.width+x])))
		}
	}
	return sb.String()
}
