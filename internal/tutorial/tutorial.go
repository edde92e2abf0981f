// Package tutorial is the one-time swipe tutorial overlay.
package tutorial

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/bayanflow/bayan-flow/internal/i18n"
	"github.com/bayanflow/bayan-flow/internal/storage"
)

// Timeout is how long the overlay stays up without input.
const Timeout = 3 * time.Second

// Store is the key-value persistence for the seen flag.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

//nolint:gochecknoglobals // shared styles.
var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("69")).
			Padding(1, 4).
			Align(lipgloss.Center)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	arrowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
)

// Model is the overlay state. The zero value is hidden and never shows.
type Model struct {
	store   Store
	tr      *i18n.Translator
	timer   timer.Model
	visible bool
	width   int
	height  int
}

// New returns a hidden overlay backed by store.
func New(store Store, tr *i18n.Translator) Model {
	return Model{store: store, tr: tr}
}

// Visible reports whether the overlay is on screen.
func (m Model) Visible() bool { return m.visible }

// Seen reports whether the overlay was dismissed in this or an earlier run.
func (m Model) Seen() bool {
	if m.store == nil {
		return true
	}
	v, _ := m.store.Get(storage.TutorialSeenKey)
	return v == "true"
}

// ShouldShow reports whether the overlay belongs on screen: manual stepping
// over loaded steps that are not yet complete, and never seen before.
func (m Model) ShouldShow(manual, hasSteps, complete bool) bool {
	return manual && hasSteps && !complete && !m.visible && !m.Seen()
}

// Show displays the overlay and starts its auto-dismiss timer.
func (m Model) Show() (Model, tea.Cmd) {
	m.visible = true
	m.timer = timer.NewWithInterval(Timeout, time.Second)
	logrus.Debugf("tutorial shown, timer %d", m.timer.ID())
	return m, m.timer.Init()
}

// Dismiss hides the overlay and persists the seen flag. The pending timer is
// abandoned; its messages no longer match a visible overlay.
func (m Model) Dismiss() Model {
	if !m.visible {
		return m
	}
	m.visible = false
	if m.store != nil {
		if err := m.store.Set(storage.TutorialSeenKey, "true"); err != nil {
			logrus.Warnf("failed to persist %s: %v", storage.TutorialSeenKey, err)
		}
	}
	return m
}

// Update advances the timer and dismisses on timeout, any key or a mouse
// press.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		return m, nil

	case timer.TickMsg, timer.StartStopMsg:
		if !m.visible {
			return m, nil
		}
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.TimeoutMsg:
		if m.visible && x.ID == m.timer.ID() {
			return m.Dismiss(), nil
		}
		return m, nil

	case tea.KeyMsg:
		if m.visible {
			return m.Dismiss(), nil
		}

	case tea.MouseMsg:
		if m.visible && x.Action == tea.MouseActionPress {
			return m.Dismiss(), nil
		}
	}
	return m, nil
}

// View renders the overlay centred in the last known window, or "" when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	t := func(key string) string {
		if m.tr == nil {
			return key
		}
		return m.tr.T(key, nil)
	}

	back := arrowStyle.Render("◀") + "  " + t("controls.stepBackward")
	fwd := t("controls.stepForward") + "  " + arrowStyle.Render("▶")
	if m.tr != nil && m.tr.RTL() {
		back, fwd = fwd, back
	}
	arrows := back + strings.Repeat(" ", 6) + fwd

	box := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(t("swipe_tutorial.title")),
		"",
		arrows,
		"",
		hintStyle.Render(t("swipe_tutorial.gotIt")),
	))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
