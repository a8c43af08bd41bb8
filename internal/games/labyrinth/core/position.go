package core

import "fmt"

// Position is a grid coordinate. X grows to the right, Y grows downward.
type Position struct {
	X int
	Y int
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns the position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// String returns "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Actor holds the position of the player or the pursuer.
// It does no validation; State decides which moves are legal.
type Actor struct {
	pos Position
}

// NewActor creates an actor standing on p.
func NewActor(p Position) *Actor {
	return &Actor{pos: p}
}

// Position returns the current cell.
func (a *Actor) Position() Position {
	return a.pos
}

// SetPosition moves the actor to p unconditionally.
func (a *Actor) SetPosition(p Position) {
	a.pos = p
}
