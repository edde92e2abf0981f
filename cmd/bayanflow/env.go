package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bayanflow/bayan-flow/internal/algorithms"
	"github.com/bayanflow/bayan-flow/internal/algorithms/pathfinding"
	"github.com/bayanflow/bayan-flow/internal/algorithms/sorting"
	"github.com/bayanflow/bayan-flow/internal/audio"
	"github.com/bayanflow/bayan-flow/internal/config"
	"github.com/bayanflow/bayan-flow/internal/i18n"
	"github.com/bayanflow/bayan-flow/internal/player"
	"github.com/bayanflow/bayan-flow/internal/storage"
	"github.com/bayanflow/bayan-flow/internal/tui"
)

const defaultConfigPath = config.DefaultPath

var errUnknownPreset = errors.New("unknown preset")

// env is everything a command needs after flags, config and stored
// preferences have been merged.
type env struct {
	cfg   config.Config
	tr    *i18n.Translator
	store *storage.Storage
	sound *audio.SoundManager
	wav   *audio.WAVSink
	rng   *rand.Rand
	mode  player.Mode
	speed time.Duration
}

func newEnv(cmd *cobra.Command) (*env, error) {
	// Set log level based on flags
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else if jsonOutput {
		logrus.SetLevel(logrus.WarnLevel)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	tr, err := i18n.New()
	if err != nil {
		return nil, err
	}
	if cfg.LocalesDir != "" {
		if err := tr.LoadDir(cmd.Context(), cfg.LocalesDir); err != nil {
			return nil, fmt.Errorf("loading locales: %w", err)
		}
	}

	st, err := storage.NewOrExistingStorage(cfg.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open or create settings: %w", err)
	}

	e := &env{cfg: cfg, tr: tr, store: st, mode: player.Mode(cfg.Mode)}
	lang := tr.SetLanguage(e.preferredLanguage(cmd))
	logrus.Debugf("language %s (install %s)", lang, st.Data.InstallID)

	if e.speed, err = player.ParseSpeed(cfg.Speed); err != nil {
		return nil, err
	}
	if seed != 0 {
		e.rng = rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // reproducible visualization data
	}
	if err := e.openSound(); err != nil {
		return nil, err
	}
	return e, nil
}

// applyFlags copies every explicitly set flag over the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("settings") {
		cfg.SettingsPath = settingsFile
	}
	if f.Changed("locales-dir") {
		cfg.LocalesDir = localesDir
	}
	if f.Changed("sound-out") {
		cfg.SoundOut = soundOut
	}
	if f.Changed("lang") {
		cfg.Language = language
	}
	if f.Changed("speed") {
		cfg.Speed = speed
	}
	if f.Changed("size") {
		cfg.ArraySize = arraySize
	}
	if f.Changed("rows") {
		cfg.GridRows = gridRows
	}
	if f.Changed("cols") {
		cfg.GridCols = gridCols
	}
	if f.Changed("walls") {
		cfg.WallDensity = wallDensity
	}
	if f.Changed("mode") {
		cfg.Mode = mode
	}
}

// preferredLanguage picks --lang, then the stored preference, then the config
// file, then $LANG.
func (e *env) preferredLanguage(cmd *cobra.Command) string {
	if cmd.Flags().Changed("lang") {
		return e.cfg.Language
	}
	if v, ok := e.store.Get(storage.LanguageKey); ok && v != "" {
		return v
	}
	if e.cfg.Language != "" {
		return e.cfg.Language
	}
	if v := os.Getenv("LANG"); v != "" {
		tag, _, _ := strings.Cut(v, ".")
		return tag
	}
	return i18n.DefaultLanguage
}

// openSound builds the sound manager. Cues go to the WAV file when one is
// requested and to the debug log otherwise.
func (e *env) openSound() error {
	var sink audio.Sink = audio.LogSink{}
	if e.cfg.SoundOut != "" {
		w, err := audio.CreateWAVFile(e.cfg.SoundOut, audio.DefaultSampleRate)
		if err != nil {
			return err
		}
		e.wav, sink = w, w
	}
	e.sound = audio.NewSoundManager(audio.DefaultVoices(sink))

	on := e.cfg.Sound
	if v, ok := e.store.Get(storage.SoundEnabledKey); ok {
		on = v == "true"
	}
	e.sound.SetEnabled(on || e.wav != nil)
	return nil
}

// Close flushes the WAV file, if any.
func (e *env) Close() {
	if e.wav == nil {
		return
	}
	if err := e.wav.Close(); err != nil {
		logrus.Errorf("closing %s: %v", e.cfg.SoundOut, err)
		return
	}
	logrus.Infof("wrote %d bytes of audio to %s", e.wav.Bytes(), e.cfg.SoundOut)
}

// replaySound steps a player through frames so every cue reaches the WAV file.
func (e *env) replaySound(frames []algorithms.Frame) {
	if e.wav == nil {
		return
	}
	p := player.New(player.Manual, e.speed, e.sound)
	p.Load(frames)
	for p.StepForward() {
	}
}

func (e *env) array() ([]int, error) {
	if arrayInput != "" {
		return parseArray(arrayInput)
	}
	switch preset {
	case "random", "":
		return sorting.RandomArray(e.rng, e.cfg.ArraySize, sorting.DefaultMin, sorting.DefaultMax), nil
	case "nearly-sorted":
		return sorting.NearlySortedArray(e.rng, e.cfg.ArraySize, sorting.DefaultSwaps), nil
	case "reversed":
		return sorting.ReversedArray(e.cfg.ArraySize), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownPreset, preset)
	}
}

func (e *env) grid() (algorithms.Input, error) {
	if !pathfinding.ValidSize(e.cfg.GridRows) || !pathfinding.ValidSize(e.cfg.GridCols) {
		return algorithms.Input{}, fmt.Errorf("%w: %dx%d", pathfinding.ErrInvalidGrid, e.cfg.GridRows, e.cfg.GridCols)
	}
	g := pathfinding.NewGrid(e.cfg.GridRows, e.cfg.GridCols)
	start, end := pathfinding.RandomStartEnd(e.rng, g.Rows, g.Cols)
	pathfinding.RandomWalls(e.rng, &g, e.cfg.WallDensity, start, end)
	return algorithms.Input{Grid: g, Start: start, End: end}, nil
}

func (e *env) tuiOptions() tui.Options {
	return tui.Options{
		Translator:     e.tr,
		Store:          e.store,
		Sound:          e.sound,
		Mode:           e.mode,
		Speed:          e.speed,
		ArraySize:      e.cfg.ArraySize,
		GridRows:       e.cfg.GridRows,
		GridCols:       e.cfg.GridCols,
		WallDensity:    e.cfg.WallDensity,
		SwipeThreshold: e.cfg.SwipeThreshold,
		Rand:           e.rng,
	}
}

// resolveSettingsPath is the settings file used by the prefs commands.
func resolveSettingsPath() string {
	if settingsFile != "" {
		return settingsFile
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		logrus.Warnf("ignoring config: %v", err)
		return storage.DefaultPath
	}
	return cfg.SettingsPath
}
