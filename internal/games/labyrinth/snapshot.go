package labyrinth

// Snapshot captures the game state for determinism tests.
type Snapshot struct {
	Tick         uint64
	PursuerTicks int
	Mode         string
	Level        string
	PlayerX      int
	PlayerY      int
	PursuerX     int // -1 without a pursuer
	PursuerY     int
	Moves        int
	PursuerSteps int
	Score        int
	Status       string
	Paused       bool
	TooSmall     bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:         g.tick,
		PursuerTicks: g.pursuerTicks,
		Mode:         string(g.mode),
		Level:        g.level.ID,
		PursuerX:     -1,
		PursuerY:     -1,
		Score:        g.score,
		Paused:       g.paused,
		TooSmall:     g.tooSmall,
	}
	if g.state == nil {
		return s
	}

	player := g.state.Player()
	s.PlayerX, s.PlayerY = player.X, player.Y
	if p, ok := g.state.Pursuer(); ok {
		s.PursuerX, s.PursuerY = p.X, p.Y
	}
	s.Moves = g.state.Moves()
	s.PursuerSteps = g.state.PursuerSteps()
	s.Status = g.state.Status().String()
	return s
}
