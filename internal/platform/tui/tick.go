// Package tui is the Bubble Tea driver for snakebot. It runs the engine on a
// paced tick loop, maps keys to engine calls and renders the board, locally
// or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the engine by one step. Game tags the loop
// that scheduled it so a stale tick from an abandoned game is dropped.
type TickMsg struct {
	At   time.Time
	Game int
}

// tickCmd schedules the next TickMsg after interval. The interval is
// recomputed every tick since pace depends on the snake's length.
func tickCmd(game int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Game: game}
	})
}
