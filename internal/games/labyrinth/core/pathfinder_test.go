package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const splitMaze = `
0 0 1 0 0
0 0 1 0 0
0 0 1 0 2
`

const openMaze = `
0 0 0 0
0 0 0 0
0 0 0 0
0 0 0 0
`

func TestNextStepRoutesAroundWall(t *testing.T) {
	m := mustMaze(t, cornerMaze)

	// (0,0) -> (1,0) -> (2,0) -> (2,1) -> (2,2)
	assert.Equal(t, P(1, 0), NextStep(m, P(0, 0), P(2, 2)))
	assert.Equal(t, []Position{{1, 0}, {2, 0}, {2, 1}, {2, 2}}, Path(m, P(0, 0), P(2, 2)))
	assert.Equal(t, 4, Distance(m, P(0, 0), P(2, 2)))
}

func TestNextStepAlreadyAtTarget(t *testing.T) {
	m := mustMaze(t, openMaze)

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			p := P(x, y)
			assert.Equal(t, p, NextStep(m, p, p))
			assert.Equal(t, 0, Distance(m, p, p))
		}
	}
}

func TestNextStepAdjacentTarget(t *testing.T) {
	m := mustMaze(t, openMaze)
	assert.Equal(t, P(2, 1), NextStep(m, P(1, 1), P(2, 1)))
}

func TestNextStepUnreachable(t *testing.T) {
	m := mustMaze(t, splitMaze)

	start := P(0, 0)
	assert.Equal(t, start, NextStep(m, start, P(4, 2)))
	assert.Nil(t, Path(m, start, P(4, 2)))
	assert.Equal(t, -1, Distance(m, start, P(4, 2)))

	// A wall target is never reached either.
	assert.Equal(t, start, NextStep(m, start, P(2, 1)))
	// Nor is a target outside the grid.
	assert.Equal(t, start, NextStep(m, start, P(9, 9)))
}

func TestNextStepStartOutsideGrid(t *testing.T) {
	m := mustMaze(t, openMaze)
	assert.Equal(t, P(-1, 0), NextStep(m, P(-1, 0), P(3, 3)))
}

func TestNextStepTieBreakOrder(t *testing.T) {
	m := mustMaze(t, openMaze)

	// Both +x and +y lie on a shortest path; +x is expanded first.
	assert.Equal(t, P(1, 0), NextStep(m, P(0, 0), P(3, 3)))
	// Both -x and -y lie on a shortest path; -x is expanded before -y.
	assert.Equal(t, P(2, 3), NextStep(m, P(3, 3), P(0, 0)))
	// +y beats -x.
	assert.Equal(t, P(3, 1), NextStep(m, P(3, 0), P(0, 3)))
}

func TestNextStepNeverBlocked(t *testing.T) {
	m := mustMaze(t, `
0 0 0 1 0 0
1 1 0 1 0 1
0 0 0 0 0 0
0 1 1 1 1 0
0 0 0 0 1 2
`)

	for sy := 0; sy < m.Height(); sy++ {
		for sx := 0; sx < m.Width(); sx++ {
			start := P(sx, sy)
			if !m.IsFree(sx, sy) {
				continue
			}
			for ty := -1; ty <= m.Height(); ty++ {
				for tx := -1; tx <= m.Width(); tx++ {
					target := P(tx, ty)
					next := NextStep(m, start, target)

					assert.True(t, m.IsFree(next.X, next.Y), "NextStep(%s,%s) = %s is blocked", start, target, next)

					dx, dy := next.X-start.X, next.Y-start.Y
					assert.LessOrEqual(t, abs(dx)+abs(dy), 1, "NextStep(%s,%s) = %s is not a unit step", start, target, next)

					// Deterministic: a second call returns the same cell.
					assert.Equal(t, next, NextStep(m, start, target))
				}
			}
		}
	}
}

func TestPathIsShortest(t *testing.T) {
	m := mustMaze(t, `
0 0 0 0 0
0 1 1 1 0
0 0 0 1 0
1 1 0 1 0
0 0 0 0 0
`)

	path := Path(m, P(0, 0), P(0, 4))
	// Down the left side and through the middle gap: 8 steps.
	assert.Len(t, path, 8)
	assert.Equal(t, P(0, 4), path[len(path)-1])

	prev := P(0, 0)
	for _, p := range path {
		assert.Equal(t, 1, abs(p.X-prev.X)+abs(p.Y-prev.Y))
		prev = p
	}
}

func TestReachableOrder(t *testing.T) {
	m := mustMaze(t, cornerMaze)

	assert.Equal(t, []Position{
		{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2},
	}, Reachable(m, P(0, 0)))

	assert.Nil(t, Reachable(m, P(5, 5)))

	// The right half of splitMaze is cut off by the wall column.
	assert.Len(t, Reachable(mustMaze(t, splitMaze), P(0, 0)), 6)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
