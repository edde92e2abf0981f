package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Run starts the Bubble Tea TUI program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	session := uuid.NewString()
	log := logrus.WithField("session", session)
	log.Debugf("starting visualizer (mode=%s, speed=%s)", model.player.Mode(), model.player.Speed())
	defer log.Debug("visualizer closed")

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	// Silence external logs (WARN/ERRO) during TUI to avoid corrupting the view.
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(prevOut)

	// Run TUI blocking in this goroutine.
	_, err = p.Run()
	return err
}
