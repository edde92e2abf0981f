// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/bayanflow/bayan-flow/internal/storage"
	"github.com/bayanflow/bayan-flow/internal/validate"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "~/.config/bayanflow/config.yaml"

// visualizerSwipeThreshold is the swipe distance on the visualization board.
const visualizerSwipeThreshold = 50

// Config holds startup defaults. Command-line flags override these values.
type Config struct {
	Language       string  `yaml:"language" validate:"omitempty,bcp47_language_tag"`
	Mode           string  `yaml:"mode" validate:"oneof=manual autoplay"`
	Speed          string  `yaml:"speed" validate:"oneof=slow medium fast veryFast"`
	ArraySize      int     `yaml:"array_size" validate:"min=2,max=200"`
	GridRows       int     `yaml:"grid_rows" validate:"min=5,max=50"`
	GridCols       int     `yaml:"grid_cols" validate:"min=5,max=50"`
	WallDensity    float64 `yaml:"wall_density" validate:"gte=0,lt=1"`
	SwipeThreshold float64 `yaml:"swipe_threshold" validate:"gte=0"`
	Sound          bool    `yaml:"sound"`
	SoundOut       string  `yaml:"sound_out"`
	LocalesDir     string  `yaml:"locales_dir" validate:"omitempty,dir"`
	SettingsPath   string  `yaml:"settings_path" validate:"required"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode:           "manual",
		Speed:          "medium",
		ArraySize:      20,
		GridRows:       15,
		GridCols:       25,
		WallDensity:    0.2,
		SwipeThreshold: visualizerSwipeThreshold,
		SettingsPath:   storage.DefaultPath,
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	expanded, err := expandTilde(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		logrus.Debugf("no config file at %s; using defaults", expanded)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", expanded, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", expanded, err)
	}
	return cfg, nil
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	return validate.Struct(c)
}

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
