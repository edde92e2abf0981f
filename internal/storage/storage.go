package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bayanflow/bayan-flow/internal/validate"
)

// Well-known flag keys persisted between runs.
const (
	FlowModeKey      = "flowModeEnabled"
	TutorialSeenKey  = "swipeTutorialSeen"
	SoundEnabledKey  = "soundEnabled"
	LanguageKey      = "language"
	DefaultPath      = "~/.config/bayanflow/settings.json"
	settingsFileMode = 0o600
	settingsDirMode  = 0o700
)

// Data represents the structure of the settings file.
type Data struct {
	Flags     map[string]string `json:"flags"`
	InstallID string            `json:"install_id,omitempty" validate:"omitempty,uuid4"`
}

// Storage handles the loading and saving of the settings file.
// It satisfies the small key-value interfaces used by flowmode and tutorial.
type Storage struct {
	Path string `validate:"required"`
	Data Data

	mu sync.Mutex
}

// NewStorage creates a new Storage instance, loading the file when present.
func NewStorage(path string) (*Storage, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}

	s := &Storage{
		Path: expandedPath,
		Data: Data{Flags: make(map[string]string)},
	}

	if err := s.Load(); err != nil {
		// If the file doesn't exist, we can ignore the error.
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	if s.Data.Flags == nil {
		s.Data.Flags = make(map[string]string)
	}

	if s.Data.InstallID == "" {
		s.Data.InstallID = uuid.NewString()
	}

	return s, nil
}

// NewOrExistingStorage returns existing storage if the file exists, or creates a new one otherwise.
// When creating a new storage, it writes the initial structure to disk immediately.
func NewOrExistingStorage(path string) (*Storage, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(expandedPath); err == nil {
		return NewStorage(path)
	} else if os.IsNotExist(err) {
		s, err := NewStorage(path)
		if err != nil {
			return nil, err
		}
		if err := s.Save(); err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, err
}

func (s *Storage) Load() error {
	logrus.Debug("Loading settings file from: ", s.Path)
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &s.Data); err != nil {
		return err
	}

	// Validate loaded data and self-heal when possible.
	if err := validate.Struct(s.Data); err != nil {
		if s.Data.InstallID == "" || validate.Var(s.Data.InstallID, "uuid4") != nil {
			logrus.Warn("Invalid install_id found in settings; regenerating.")
			s.Data.InstallID = uuid.NewString()
			return s.Save()
		}
	}
	return nil
}

// Save writes the settings data to the file.
func (s *Storage) Save() error {
	logrus.Debug("Saving settings file to: ", s.Path)
	if err := os.MkdirAll(filepath.Dir(s.Path), settingsDirMode); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.Data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.Path, data, settingsFileMode)
}

// Get returns the stored value for key and whether it was present.
func (s *Storage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.Data.Flags[key]
	return v, ok
}

// Set stores value under key and persists the file.
func (s *Storage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Data.Flags == nil {
		s.Data.Flags = make(map[string]string)
	}
	s.Data.Flags[key] = value
	return s.Save()
}

// Delete removes key and persists the file.
func (s *Storage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Data.Flags, key)
	return s.Save()
}

// Reset clears every flag. The install id is kept.
func (s *Storage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Data.Flags = make(map[string]string)
	return s.Save()
}

// Memory is an in-process key-value store used when no settings file is wanted.
type Memory struct {
	mu    sync.Mutex
	flags map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{flags: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.flags[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[key] = value
	return nil
}

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
