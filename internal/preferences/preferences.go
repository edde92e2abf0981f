package preferences

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/bayanflow/bayan-flow/internal/storage"
	"github.com/bayanflow/bayan-flow/internal/validate"
)

var (
	ErrUnknownKey   = errors.New("unknown preference")
	ErrInvalidValue = errors.New("invalid preference value")
)

// known maps each settable key to the validator tag its value must satisfy.
//
//nolint:gochecknoglobals // fixed key set.
var known = map[string]string{
	storage.FlowModeKey:     "flagbool",
	storage.TutorialSeenKey: "flagbool",
	storage.SoundEnabledKey: "flagbool",
	storage.LanguageKey:     "bcp47_language_tag",
}

// Keys returns the settable preference names, sorted.
func Keys() []string {
	out := make([]string, 0, len(known))
	for k := range known {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Manager handles the logic for the prefs commands.
type Manager struct {
	Storage *storage.Storage
}

// NewManager opens the settings file at path.
func NewManager(path string) (*Manager, error) {
	s, err := storage.NewStorage(path)
	if err != nil {
		return nil, err
	}

	return &Manager{Storage: s}, nil
}

// View prints every stored preference to the provided writer.
func (m *Manager) View(w io.Writer) {
	if len(m.Storage.Data.Flags) == 0 {
		fmt.Fprintln(w, "No preferences stored.")
		return
	}

	keys := make([]string, 0, len(m.Storage.Data.Flags))
	for k := range m.Storage.Data.Flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %s\n", k, m.Storage.Data.Flags[k])
	}
}

// Set validates and persists one preference.
func (m *Manager) Set(key, value string) error {
	tag, ok := known[key]
	if !ok {
		return fmt.Errorf("%w: %q (known: %v)", ErrUnknownKey, key, Keys())
	}
	if err := validate.Var(value, tag); err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
	}
	logrus.Debugf("Setting preference: %s=%s", key, value)
	return m.Storage.Set(key, value)
}

// Reset clears every stored preference.
func (m *Manager) Reset() error {
	logrus.Debug("Resetting preferences")
	return m.Storage.Reset()
}
