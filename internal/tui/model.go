package tui

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bayanflow/bayan-flow/internal/algorithms"
	"github.com/bayanflow/bayan-flow/internal/algorithms/pathfinding"
	"github.com/bayanflow/bayan-flow/internal/algorithms/sorting"
	"github.com/bayanflow/bayan-flow/internal/audio"
	"github.com/bayanflow/bayan-flow/internal/config"
	"github.com/bayanflow/bayan-flow/internal/flowmode"
	"github.com/bayanflow/bayan-flow/internal/i18n"
	"github.com/bayanflow/bayan-flow/internal/player"
	"github.com/bayanflow/bayan-flow/internal/storage"
	"github.com/bayanflow/bayan-flow/internal/swipe"
	"github.com/bayanflow/bayan-flow/internal/tutorial"
)

// Store is the flag persistence shared by flow mode, the tutorial and the
// sound and language preferences.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Options configures a Model. Zero sizes fall back to config.Default.
type Options struct {
	Translator     *i18n.Translator
	Store          Store
	Sound          *audio.SoundManager
	Mode           player.Mode
	Speed          time.Duration
	ArraySize      int
	GridRows       int
	GridCols       int
	WallDensity    float64
	SwipeThreshold float64
	// Algorithm, when set, opens the board directly.
	Algorithm string
	// Rand seeds generated data; nil uses the global source.
	Rand *rand.Rand
}

type screen int

const (
	screenPicker screen = iota
	screenBoard
)

// Model is the root Bubble Tea model.
type Model struct {
	tr       *i18n.Translator
	store    Store
	sound    *audio.SoundManager
	player   *player.Player
	swipe    *swipe.Recognizer
	flow     *flowmode.Toggle
	tutorial tutorial.Model
	rng      *rand.Rand

	screen screen
	algo   algorithms.Info
	input  algorithms.Input
	err    error

	arraySize   int
	gridRows    int
	gridCols    int
	wallDensity float64

	// ui state
	picker      list.Model
	progress    progress.Model
	help        help.Model
	helpVisible bool
	width       int
	height      int
	quitting    bool

	// keymap for consistent keybindings
	keys keyMap
}

// readyMsg is sent once from Init so that start-up work can mutate the model.
type readyMsg struct{}

// NewModel constructs a Model with initial state.
func NewModel(opts Options) (Model, error) {
	rec, err := swipe.New(swipe.Options{Threshold: opts.SwipeThreshold})
	if err != nil {
		return Model{}, err
	}
	if opts.Translator == nil {
		if opts.Translator, err = i18n.New(); err != nil {
			return Model{}, err
		}
	}
	if opts.Store == nil {
		opts.Store = storage.NewMemory()
	}
	sound := opts.Sound
	if sound == nil {
		sound = audio.NewSoundManager(audio.Voices{})
	}
	if opts.Mode == "" {
		opts.Mode = player.Manual
	}
	if opts.Speed == 0 {
		opts.Speed = player.Medium
	}
	defaults := config.Default()
	if opts.ArraySize <= 0 {
		opts.ArraySize = defaults.ArraySize
	}
	if opts.GridRows <= 0 {
		opts.GridRows = defaults.GridRows
	}
	if opts.GridCols <= 0 {
		opts.GridCols = defaults.GridCols
	}

	p := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	lst := list.New(pickerItems(opts.Translator), pickerDelegate{}, pickerWidth, pickerHeight)
	lst.Title = opts.Translator.T("picker.title", nil)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(true)
	lst.SetShowHelp(false)

	m := Model{
		tr:          opts.Translator,
		store:       opts.Store,
		sound:       sound,
		player:      player.New(opts.Mode, opts.Speed, sound),
		swipe:       rec,
		flow:        flowmode.New(opts.Store),
		tutorial:    tutorial.New(opts.Store, opts.Translator),
		rng:         opts.Rand,
		arraySize:   opts.ArraySize,
		gridRows:    opts.GridRows,
		gridCols:    opts.GridCols,
		wallDensity: opts.WallDensity,
		picker:      lst,
		progress:    p,
		help:        help.New(),
		keys:        newKeyMap(opts.Translator),
	}
	if opts.Algorithm != "" {
		if err := m.open(opts.Algorithm); err != nil {
			return Model{}, err
		}
	}
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return readyMsg{} }
}

// open selects id, generates fresh data for it and shows the board.
func (m *Model) open(id string) error {
	info, err := algorithms.Get(id)
	if err != nil {
		return err
	}
	m.algo = info
	m.screen = screenBoard
	return m.regenerate()
}

// regenerate draws new input data for the current algorithm and loads its frames.
func (m *Model) regenerate() error {
	switch m.algo.Kind {
	case algorithms.KindSorting:
		m.input = algorithms.Input{
			Array: sorting.RandomArray(m.rng, m.arraySize, sorting.DefaultMin, sorting.DefaultMax),
		}
	case algorithms.KindPathfinding:
		g := pathfinding.NewGrid(m.gridRows, m.gridCols)
		start, end := pathfinding.RandomStartEnd(m.rng, g.Rows, g.Cols)
		pathfinding.RandomWalls(m.rng, &g, m.wallDensity, start, end)
		m.input = algorithms.Input{Grid: g, Start: start, End: end}
	}
	frames, err := algorithms.Run(m.algo.ID, m.input)
	m.err = err
	if err != nil {
		m.player.Load(nil)
		return err
	}
	m.player.Load(frames)
	m.sound.PlayArrayGenerate()
	return nil
}
