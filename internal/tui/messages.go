package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Message types for Bubble Tea update loop.

// autoplayTickMsg advances autoplay. gen is the player generation it was
// scheduled under; the player drops stale generations.
type autoplayTickMsg struct{ gen int }

// autoplayTick schedules the next autoplay step.
func autoplayTick(gen int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return autoplayTickMsg{gen: gen}
	})
}
