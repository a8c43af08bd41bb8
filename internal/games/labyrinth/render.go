package labyrinth

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	sim "github.com/vovakirdan/tui-labyrinth/internal/games/labyrinth/core"
)

// glyph is the two-character drawing of one maze cell.
type glyph struct {
	left, right rune
	color       core.Color
}

var (
	glyphWall    = glyph{'█', '█', core.ColorWall}
	glyphFloor   = glyph{' ', ' ', core.ColorFloor}
	glyphFinish  = glyph{'▒', '▒', core.ColorFinish}
	glyphPlayer  = glyph{'(', ')', core.ColorPlayer}
	glyphPursuer = glyph{'<', '>', core.ColorPursuer}
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		g.renderOverlay(dst, "Could not load level", g.loadErr.Error())
		return
	}
	if g.state == nil {
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		need := fmt.Sprintf("Need %dx%d", g.level.Maze.Width()*cellW, g.level.Maze.Height()+hudHeight)
		g.renderOverlay(dst, "Window too small", need)
		return
	}

	g.renderMaze(dst)

	if p, ok := g.state.Pursuer(); ok {
		g.drawCell(dst, p, glyphPursuer)
	}
	// Player is drawn last so a capture shows the player's glyph on top.
	g.drawCell(dst, g.state.Player(), glyphPlayer)

	switch g.state.Status() {
	case sim.StatusWon:
		g.renderOverlay(dst, "You escaped!", fmt.Sprintf("Score: %d  R to restart", g.score))
	case sim.StatusLost:
		g.renderOverlay(dst, "Caught!", "R to restart  B for menu")
	default:
		if g.paused {
			g.renderOverlay(dst, "Paused", "P to continue")
		}
	}
}

// renderHUD draws the status line and separator.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s · %s  Moves: %d", g.Title(), g.level.Name, g.state.Moves())

	if p, ok := g.state.Pursuer(); ok {
		if d := sim.Distance(g.level.Maze, p, g.state.Player()); d >= 0 {
			hud += fmt.Sprintf("  Pursuer: %d", d)
		} else {
			hud += "  Pursuer: --"
		}
	}
	hud += "  [" + g.state.Status().String() + "]"

	dst.DrawText(0, 0, hud, core.ColorHUD)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorDim)
}

// renderMaze draws every tile of the maze.
func (g *Game) renderMaze(dst *core.Screen) {
	m := g.level.Maze
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			gl := glyphWall
			switch {
			case m.IsFinish(x, y):
				gl = glyphFinish
			case m.IsFree(x, y):
				gl = glyphFloor
			}
			g.drawCell(dst, sim.P(x, y), gl)
		}
	}
}

func (g *Game) drawCell(dst *core.Screen, p sim.Position, gl glyph) {
	sx := g.offsetX + p.X*cellW
	sy := g.offsetY + p.Y
	dst.SetColored(sx, sy, gl.left, gl.color)
	dst.SetColored(sx+1, sy, gl.right, gl.color)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorOverlay)
	dst.DrawTextCentered(boxY+1, line1, core.ColorOverlay)
	dst.DrawTextCentered(boxY+3, line2, core.ColorDim)
}
