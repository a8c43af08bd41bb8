package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Colors used by the labyrinth renderer.
const (
	ColorDefault Color = iota
	ColorWall
	ColorFloor
	ColorFinish
	ColorPlayer
	ColorPursuer
	ColorHUD
	ColorOverlay
	ColorDim
)
