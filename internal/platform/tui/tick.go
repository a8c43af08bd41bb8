// Package tui provides the Bubble Tea front end for the labyrinth.
// It owns the frame and pursuer timers, input mapping and persistence of
// finished runs.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger an input frame.
type TickMsg time.Time

// PursuerTickMsg is sent when the pursuer timer fires. Gen identifies the
// run that scheduled it; ticks from a restarted run are dropped.
type PursuerTickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 10
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// pursuerTickCmd schedules one pursuer tick after period. A zero period
// means the game has no pursuer timer.
func pursuerTickCmd(period time.Duration, gen int) tea.Cmd {
	if period <= 0 {
		return nil
	}
	return tea.Tick(period, func(t time.Time) tea.Msg {
		return PursuerTickMsg{Gen: gen, Time: t}
	})
}
