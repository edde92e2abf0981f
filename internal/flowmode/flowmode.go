// Package flowmode holds the persisted immersive ("flow") display preference.
package flowmode

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/bayanflow/bayan-flow/internal/storage"
)

// Store is the key-value persistence the toggle reads and writes.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Toggle is the flow mode state. Only the exact string "true" enables it on load.
type Toggle struct {
	store   Store
	enabled bool
}

// New loads the flag from store.
func New(store Store) *Toggle {
	v, _ := store.Get(storage.FlowModeKey)
	return &Toggle{store: store, enabled: v == "true"}
}

// Enabled reports whether flow mode is on.
func (t *Toggle) Enabled() bool { return t.enabled }

// Toggle flips flow mode and persists the new value.
func (t *Toggle) Toggle() bool {
	t.enabled = !t.enabled
	t.persist()
	return t.enabled
}

// Exit turns flow mode off and persists "false", even when already off.
func (t *Toggle) Exit() {
	t.enabled = false
	t.persist()
}

// HandleKey applies the keyboard shortcuts: f/F toggle, Escape exits.
// It reports whether the key was consumed.
func (t *Toggle) HandleKey(k string) bool {
	switch k {
	case "f", "F":
		t.Toggle()
		return true
	case "esc", "Escape":
		t.Exit()
		return true
	default:
		return false
	}
}

func (t *Toggle) persist() {
	if err := t.store.Set(storage.FlowModeKey, strconv.FormatBool(t.enabled)); err != nil {
		logrus.Warnf("failed to persist %s: %v", storage.FlowModeKey, err)
	}
}
