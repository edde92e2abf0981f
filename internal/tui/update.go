package tui

import (
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		m.picker.SetSize(min(pickerWidth, x.Width), min(pickerHeight, max(1, x.Height-1)))
		m.help.Width = x.Width
		m.tutorial, _ = m.tutorial.Update(x)
		return m, nil

	case readyMsg:
		cmd := m.maybeTutorial()
		return m, cmd

	case timer.TickMsg, timer.StartStopMsg, timer.TimeoutMsg:
		var cmd tea.Cmd
		m.tutorial, cmd = m.tutorial.Update(msg)
		return m, cmd

	case autoplayTickMsg:
		d, ok := m.player.Tick(x.gen)
		if !ok {
			return m, nil
		}
		return m, autoplayTick(x.gen, d)

	case tea.KeyMsg:
		// The overlay swallows the key that dismisses it.
		if m.tutorial.Visible() {
			m.tutorial, _ = m.tutorial.Update(x)
			return m, nil
		}
		var cmd tea.Cmd
		m, cmd = m.handleKey(x)
		show := m.maybeTutorial()
		return m, tea.Batch(cmd, show)

	case tea.MouseMsg:
		if m.tutorial.Visible() {
			m.tutorial, _ = m.tutorial.Update(x)
			return m, nil
		}
		m.handleMouse(x)
		cmd := m.maybeTutorial()
		return m, cmd
	}

	// Filtering and pagination messages belong to the picker.
	if m.screen == screenPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}
