package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cornerMaze = `
0 0 0
1 1 0
0 0 2
`

func mustMaze(t *testing.T, grid string) *Maze {
	t.Helper()
	m, err := ParseString(grid, DefaultTiles())
	require.NoError(t, err)
	return m
}

func TestParseDimensions(t *testing.T) {
	m := mustMaze(t, cornerMaze)

	assert.Equal(t, 3, m.Width())
	assert.Equal(t, 3, m.Height())

	code, err := m.TileAt(0, 1)
	require.NoError(t, err)
	assert.Equal(t, TileWall, code)

	code, err = m.TileAt(2, 2)
	require.NoError(t, err)
	assert.Equal(t, TileFinish, code)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		grid string
	}{
		{"ragged rows", "0 0 0\n0 0"},
		{"empty", ""},
		{"only blank lines", "\n  \n\n"},
		{"not a number", "0 x 0\n0 0 0"},
		{"negative code", "0 -1\n0 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.grid, DefaultTiles())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedMap), "expected ErrMalformedMap, got %v", err)
		})
	}
}

func TestParseWideRows(t *testing.T) {
	// 40000 columns is wider than bufio's default token limit.
	row := strings.TrimSpace(strings.Repeat("0 ", 40000))
	m, err := ParseString(row+"\n"+row[:len(row)-1]+"2\n", DefaultTiles())
	require.NoError(t, err)
	assert.Equal(t, 40000, m.Width())
	assert.Equal(t, 2, m.Height())
	assert.Len(t, m.FinishCells(), 1)
}

func TestParseRowTooLong(t *testing.T) {
	row := strings.Repeat("0 ", maxRowBytes/2+1)
	_, err := ParseString(row+"\n", DefaultTiles())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedMap), "expected ErrMalformedMap, got %v", err)
}

func TestNewMazeCopiesRows(t *testing.T) {
	rows := [][]TileCode{{0, 0}, {0, 1}}
	m, err := NewMaze(rows, DefaultTiles())
	require.NoError(t, err)

	rows[1][1] = 0
	assert.False(t, m.IsFree(1, 1), "maze must not observe changes to the source rows")
}

func TestTileAtOutOfBounds(t *testing.T) {
	m := mustMaze(t, cornerMaze)

	for _, p := range []Position{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		_, err := m.TileAt(p.X, p.Y)
		assert.ErrorIs(t, err, ErrOutOfBounds, "TileAt%s", p)
	}
}

func TestIsFreeMatchesFreeSet(t *testing.T) {
	m := mustMaze(t, cornerMaze)
	tiles := DefaultTiles()

	for y := -2; y < m.Height()+2; y++ {
		for x := -2; x < m.Width()+2; x++ {
			code, err := m.TileAt(x, y)
			if err != nil {
				assert.False(t, m.IsFree(x, y), "out of bounds (%d,%d) must not be free", x, y)
				assert.False(t, m.IsFinish(x, y), "out of bounds (%d,%d) must not be finish", x, y)
				continue
			}
			assert.Equal(t, contains(tiles.Free, code), m.IsFree(x, y), "IsFree(%d,%d)", x, y)
		}
	}
}

func TestCustomTileConfig(t *testing.T) {
	// Only 5 is walkable and 7 is the goal, which is deliberately not free.
	m, err := ParseString("5 1\n7 5", TileConfig{Free: []TileCode{5}, Finish: 7})
	require.NoError(t, err)

	assert.True(t, m.IsFree(0, 0))
	assert.False(t, m.IsFree(1, 0))
	assert.False(t, m.IsFree(0, 1))
	assert.True(t, m.IsFinish(0, 1))
}

func TestFinishCells(t *testing.T) {
	m := mustMaze(t, "2 0\n0 2")
	assert.Equal(t, []Position{{0, 0}, {1, 1}}, m.FinishCells())
}

func TestMazeStringRoundTrip(t *testing.T) {
	m := mustMaze(t, cornerMaze)
	again := mustMaze(t, m.String())

	assert.Equal(t, strings.TrimSpace(cornerMaze), m.String())
	assert.Equal(t, m.String(), again.String())
}

func contains(codes []TileCode, c TileCode) bool {
	for _, v := range codes {
		if v == c {
			return true
		}
	}
	return false
}
