package tui

import (
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/bayanflow/bayan-flow/internal/player"
	"github.com/bayanflow/bayan-flow/internal/storage"
	"github.com/bayanflow/bayan-flow/internal/swipe"
)

//nolint:gochecknoglobals // fixed cycle order.
var speedCycle = []time.Duration{player.Slow, player.Medium, player.Fast, player.VeryFast}

// speedKey returns the catalog key naming d.
func speedKey(d time.Duration) string {
	switch d {
	case player.Slow:
		return "speeds.slow"
	case player.Fast:
		return "speeds.fast"
	case player.VeryFast:
		return "speeds.veryFast"
	default:
		return "speeds.medium"
	}
}

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn
	if key.Matches(msg, m.keys.Quit) && !m.filtering() {
		m.quitting = true
		m.player.Pause()
		return m, tea.Quit
	}
	if m.screen == screenPicker {
		return m.handlePickerKey(msg)
	}
	return m.handleBoardKey(msg)
}

func (m Model) filtering() bool {
	return m.screen == screenPicker && m.picker.FilterState() == list.Filtering
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.filtering() && key.Matches(msg, m.keys.Select) {
		it, ok := m.picker.SelectedItem().(algorithmItem)
		if !ok {
			return m, nil
		}
		m.sound.PlayUIClick()
		if err := m.open(it.Info.ID); err != nil {
			logrus.Debugf("opening %s: %v", it.Info.ID, err)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (Model, tea.Cmd) { //nolint:cyclop // flat key dispatch
	switch {
	case key.Matches(msg, m.keys.Flow, m.keys.Back):
		wasFlow := m.flow.Enabled()
		if !m.flow.HandleKey(msg.String()) && wasFlow {
			m.flow.Exit()
		}
		if wasFlow || key.Matches(msg, m.keys.Flow) {
			return m, nil
		}
		m.player.Pause()
		m.screen = screenPicker

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible

	case key.Matches(msg, m.keys.StepForward):
		m.player.Pause()
		m.player.StepForward()

	case key.Matches(msg, m.keys.StepBackward):
		m.player.Pause()
		m.player.StepBackward()

	case key.Matches(msg, m.keys.Play):
		return m, m.togglePlay()

	case key.Matches(msg, m.keys.Reset):
		m.sound.PlayUIClick()
		m.player.Reset()

	case key.Matches(msg, m.keys.NewData):
		if err := m.regenerate(); err != nil {
			logrus.Debugf("regenerating %s: %v", m.algo.ID, err)
		}

	case key.Matches(msg, m.keys.Mode):
		m.sound.PlayUIClick()
		if m.player.Mode() == player.Manual {
			m.player.SetMode(player.Autoplay)
		} else {
			m.player.SetMode(player.Manual)
		}

	case key.Matches(msg, m.keys.Speed):
		i := slices.Index(speedCycle, m.player.Speed())
		m.player.SetSpeed(speedCycle[(i+1)%len(speedCycle)])
		if m.player.Playing() {
			// Restart so the new delay applies to the next tick.
			m.player.Pause()
			return m, m.togglePlay()
		}

	case key.Matches(msg, m.keys.Sound):
		m.toggleSound()

	case key.Matches(msg, m.keys.Language):
		m.nextLanguage()
	}
	return m, nil
}

// togglePlay pauses a running autoplay, or plays and schedules the next tick.
func (m *Model) togglePlay() tea.Cmd {
	if m.player.Playing() {
		m.player.Pause()
		return nil
	}
	d, ok := m.player.Play()
	if !ok {
		return nil
	}
	return autoplayTick(m.player.Generation(), d)
}

func (m *Model) toggleSound() {
	on := !m.sound.Enabled()
	m.sound.SetEnabled(on)
	m.sound.PlayUIClick()
	m.persist(storage.SoundEnabledKey, strconv.FormatBool(on))
}

func (m *Model) nextLanguage() {
	lang := m.tr.Next()
	m.persist(storage.LanguageKey, lang)
	m.keys = newKeyMap(m.tr)
	m.picker.Title = m.tr.T("picker.title", nil)
	m.picker.SetItems(pickerItems(m.tr))
}

func (m *Model) persist(key, value string) {
	if err := m.store.Set(key, value); err != nil {
		logrus.Warnf("failed to persist %s: %v", key, err)
	}
}

// handleMouse feeds left-button gestures on the board to the swipe
// recognizer. A left swipe steps back and a right swipe steps forward, in
// manual mode only.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.screen != screenBoard {
		return
	}
	p := swipe.Point{X: float64(msg.X * cellWidth), Y: float64(msg.Y * cellHeight)}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.swipe.TouchStart(p)
		}
	case tea.MouseActionMotion:
		if m.swipe.Active() {
			m.swipe.TouchMove(p)
		}
	case tea.MouseActionRelease:
		dir := m.swipe.TouchEnd(p)
		if m.player.Mode() != player.Manual {
			return
		}
		switch dir {
		case swipe.Left:
			m.player.StepBackward()
		case swipe.Right:
			m.player.StepForward()
		case swipe.None:
		}
	}
}

// maybeTutorial shows the swipe tutorial the first time the board is in
// manual mode with steps left to take.
func (m *Model) maybeTutorial() tea.Cmd {
	if m.screen != screenBoard {
		return nil
	}
	if !m.tutorial.ShouldShow(m.player.Mode() == player.Manual, m.player.Total() > 0, m.player.Complete()) {
		return nil
	}
	var cmd tea.Cmd
	m.tutorial, cmd = m.tutorial.Show()
	return cmd
}
