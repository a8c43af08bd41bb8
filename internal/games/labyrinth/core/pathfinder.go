package core

// neighbourOffsets is the BFS expansion order. Ties between equally short
// routes are broken by this order alone, so it must not change.
var neighbourOffsets = [4]Position{
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 0, Y: -1},
}

const unreached = -1

// NextStep returns the first cell of a shortest path from start to target
// over free cells, moving only up/down/left/right.
// It returns start when start == target, when target cannot be reached or
// when start is outside the maze.
func NextStep(m *Maze, start, target Position) Position {
	path := Path(m, start, target)
	if len(path) == 0 {
		return start
	}
	return path[0]
}

// Path returns a shortest route from start to target, excluding start and
// including target. It returns nil when start == target or no route exists.
// The search runs from scratch on every call.
func Path(m *Maze, start, target Position) []Position {
	if start == target || !m.Contains(start) || !m.Contains(target) {
		return nil
	}

	pred, _ := search(m, start)

	targetIdx := target.Y*m.width + target.X
	if pred[targetIdx] == unreached {
		return nil
	}

	startIdx := start.Y*m.width + start.X
	var reversed []Position
	for idx := targetIdx; idx != startIdx; idx = pred[idx] {
		reversed = append(reversed, Position{X: idx % m.width, Y: idx / m.width})
	}

	path := make([]Position, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path
}

// Distance returns the number of steps on a shortest route, 0 when
// start == target and -1 when target is unreachable.
func Distance(m *Maze, start, target Position) int {
	if start == target {
		return 0
	}
	path := Path(m, start, target)
	if path == nil {
		return -1
	}
	return len(path)
}

// Reachable lists every free cell reachable from start in breadth-first
// order, start first. The last element is one of the farthest cells.
func Reachable(m *Maze, start Position) []Position {
	if !m.Contains(start) {
		return nil
	}
	_, order := search(m, start)
	return order
}

// search runs the breadth-first expansion from start and returns the
// predecessor table indexed by y*width+x together with the visit order.
// Unreached cells hold -1; start points at itself.
func search(m *Maze, start Position) ([]int, []Position) {
	pred := make([]int, m.width*m.height)
	for i := range pred {
		pred[i] = unreached
	}

	startIdx := start.Y*m.width + start.X
	pred[startIdx] = startIdx

	queue := make([]Position, 0, m.width*m.height)
	queue = append(queue, start)

	for head := 0; head < len(queue); head++ {
		c := queue[head]
		cIdx := c.Y*m.width + c.X

		for _, off := range neighbourOffsets {
			n := c.Add(off.X, off.Y)
			if !m.IsFree(n.X, n.Y) {
				continue
			}
			nIdx := n.Y*m.width + n.X
			if pred[nIdx] != unreached {
				continue
			}
			pred[nIdx] = cIdx
			queue = append(queue, n)
		}
	}

	return pred, queue
}
