// Package tui provides the Bubble Tea front end for the runner, both for
// local play and for SSH sessions served through Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a command that sends one TickMsg after ms milliseconds.
func tickCmd(ms int) tea.Cmd {
	if ms <= 0 {
		ms = 20
	}
	return tea.Tick(time.Duration(ms)*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
