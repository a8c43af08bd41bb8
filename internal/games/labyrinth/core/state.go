package core

import (
	"errors"
	"fmt"
)

// ErrBlockedStart is returned when an actor would start on a cell that is
// not free.
var ErrBlockedStart = errors.New("start position is not a free cell")

// Status is the state of a session. Won and Lost are terminal.
type Status int

const (
	StatusActive Status = iota
	StatusWon
	StatusLost
)

// String returns a lowercase name for the status.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Option configures a State at construction.
type Option func(*stateOptions)

type stateOptions struct {
	pursuer *Position
}

// WithPursuer adds a pursuer starting at p.
func WithPursuer(p Position) Option {
	return func(o *stateOptions) {
		o.pursuer = &p
	}
}

// State is one play session: the maze, the player, an optional pursuer and
// the terminal flag. Every mutating call is a no-op once the session has
// ended, so positions are frozen on the final frame.
type State struct {
	maze    *Maze
	player  *Actor
	pursuer *Actor // nil when playing without a pursuer
	status  Status

	moves        int
	pursuerSteps int
}

// NewState starts a session on m with the player at player.
func NewState(m *Maze, player Position, opts ...Option) (*State, error) {
	var o stateOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !m.IsFree(player.X, player.Y) {
		return nil, fmt.Errorf("player %s: %w", player, ErrBlockedStart)
	}

	s := &State{
		maze:   m,
		player: NewActor(player),
	}

	if o.pursuer != nil {
		if !m.IsFree(o.pursuer.X, o.pursuer.Y) {
			return nil, fmt.Errorf("pursuer %s: %w", *o.pursuer, ErrBlockedStart)
		}
		s.pursuer = NewActor(*o.pursuer)
	}

	return s, nil
}

// AttemptPlayerMove moves the player by (dx, dy) if the destination is free.
// Each component is clamped to -1..1 so both axes may be held at once.
// Blocked destinations are silently rejected. Reports whether the player moved.
func (s *State) AttemptPlayerMove(dx, dy int) bool {
	if s.status != StatusActive {
		return false
	}

	dx, dy = unit(dx), unit(dy)
	if dx == 0 && dy == 0 {
		return false
	}

	candidate := s.player.Position().Add(dx, dy)
	if !s.maze.IsFree(candidate.X, candidate.Y) {
		return false
	}

	s.player.SetPosition(candidate)
	s.moves++
	return true
}

// TickPursuer advances the pursuer one step along a shortest path to the
// player. Reports whether the pursuer changed cell; it stays put when it
// already shares the player's cell or has no route.
func (s *State) TickPursuer() bool {
	if s.status != StatusActive || s.pursuer == nil {
		return false
	}

	from := s.pursuer.Position()
	next := NextStep(s.maze, from, s.player.Position())
	s.pursuer.SetPosition(next)
	if next == from {
		return false
	}
	s.pursuerSteps++
	return true
}

// Evaluate checks the terminal conditions and returns the resulting status.
// Capture is checked before the goal: a player caught on the finish tile loses.
func (s *State) Evaluate() Status {
	if s.status != StatusActive {
		return s.status
	}

	player := s.player.Position()
	caught := s.pursuer != nil && s.pursuer.Position() == player
	finished := s.maze.IsFinish(player.X, player.Y)

	switch {
	case caught:
		s.status = StatusLost
	case finished:
		s.status = StatusWon
	}
	return s.status
}

// Status returns the current status without evaluating.
func (s *State) Status() Status {
	return s.status
}

// Maze returns the maze the session runs on.
func (s *State) Maze() *Maze {
	return s.maze
}

// Player returns the player's cell.
func (s *State) Player() Position {
	return s.player.Position()
}

// Pursuer returns the pursuer's cell and whether there is a pursuer.
func (s *State) Pursuer() (Position, bool) {
	if s.pursuer == nil {
		return Position{}, false
	}
	return s.pursuer.Position(), true
}

// HasPursuer reports whether the session has a pursuer.
func (s *State) HasPursuer() bool {
	return s.pursuer != nil
}

// Moves returns the number of accepted player moves.
func (s *State) Moves() int {
	return s.moves
}

// PursuerSteps returns how many ticks actually moved the pursuer.
func (s *State) PursuerSteps() int {
	return s.pursuerSteps
}

func unit(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
