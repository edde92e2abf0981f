package tui

import (
	"math/rand/v2"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bayanflow/bayan-flow/internal/audio"
	"github.com/bayanflow/bayan-flow/internal/config"
	"github.com/bayanflow/bayan-flow/internal/player"
	"github.com/bayanflow/bayan-flow/internal/storage"
	"github.com/bayanflow/bayan-flow/internal/swipe"
	"github.com/bayanflow/bayan-flow/internal/tutorial"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestModel(t *testing.T, store *storage.Memory, algo string, mode player.Mode) Model {
	t.Helper()
	m, err := NewModel(Options{
		Store:          store,
		Mode:           mode,
		ArraySize:      8,
		GridRows:       6,
		GridCols:       6,
		WallDensity:    0.1,
		SwipeThreshold: 50,
		Algorithm:      algo,
		Rand:           rand.New(rand.NewPCG(1, 2)), //nolint:gosec // deterministic test data
	})
	require.NoError(t, err)
	return m
}

// seenStore returns a store where the swipe tutorial was already dismissed.
func seenStore() *storage.Memory {
	s := storage.NewMemory()
	_ = s.Set(storage.TutorialSeenKey, "true")
	return s
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestNewModel(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, storage.NewMemory(), "", player.Manual)
	assert.Equal(t, screenPicker, m.screen)
	assert.Zero(t, m.player.Total())

	m = newTestModel(t, storage.NewMemory(), "bubbleSort", player.Manual)
	assert.Equal(t, screenBoard, m.screen)
	assert.Positive(t, m.player.Total())
	assert.Len(t, m.input.Array, 8)

	_, err := NewModel(Options{SwipeThreshold: -1})
	require.ErrorIs(t, err, swipe.ErrNegativeThreshold)

	_, err = NewModel(Options{Algorithm: "bogoSort"})
	require.Error(t, err)

	defaults := config.Default()
	m, err = NewModel(Options{Algorithm: "bfs"})
	require.NoError(t, err)
	assert.Equal(t, defaults.GridRows, m.input.Grid.Rows)
	assert.Equal(t, defaults.GridCols, m.input.Grid.Cols)
	assert.Positive(t, m.player.Total())

	m, err = NewModel(Options{Algorithm: "mergeSort"})
	require.NoError(t, err)
	assert.Len(t, m.input.Array, defaults.ArraySize)
}

func TestTutorial_ShownOnceInManualMode(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory()
	m := newTestModel(t, store, "bubbleSort", player.Manual)
	m, cmd := update(t, m, m.Init()())
	assert.NotNil(t, cmd, "timer started")
	require.True(t, m.tutorial.Visible())
	assert.Contains(t, m.View(), "Swipe to navigate steps")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.False(t, m.tutorial.Visible())
	assert.Equal(t, 0, m.player.Index(), "dismissing key does not step")
	v, _ := store.Get(storage.TutorialSeenKey)
	assert.Equal(t, "true", v)

	m, _ = update(t, m, runes("n"))
	assert.False(t, m.tutorial.Visible(), "never shown again")

	auto := newTestModel(t, storage.NewMemory(), "bubbleSort", player.Autoplay)
	auto, _ = update(t, auto, readyMsg{})
	assert.False(t, auto.tutorial.Visible())
}

func TestKeys_Stepping(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, seenStore(), "insertionSort", player.Manual)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.player.Index())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.player.Index())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, 2, m.player.Index(), "manual play steps")

	m, _ = update(t, m, runes("r"))
	assert.Equal(t, 0, m.player.Index())

	before := m.input.Array
	m, _ = update(t, m, runes("n"))
	assert.NotEqual(t, before, m.input.Array)
	assert.Equal(t, 0, m.player.Index())
}

func TestMouse_Swipes(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, seenStore(), "bubbleSort", player.Manual)
	swipeTo := func(m Model, x0, y0, x1, y1 int) Model {
		m, _ = update(t, m, mouse(tea.MouseActionPress, x0, y0))
		m, _ = update(t, m, mouse(tea.MouseActionMotion, x1, y1))
		m, _ = update(t, m, mouse(tea.MouseActionRelease, x1, y1))
		return m
	}

	m = swipeTo(m, 10, 5, 20, 5)
	assert.Equal(t, 1, m.player.Index(), "right swipe steps forward")
	m = swipeTo(m, 10, 5, 20, 5)
	assert.Equal(t, 2, m.player.Index())
	m = swipeTo(m, 20, 5, 10, 5)
	assert.Equal(t, 1, m.player.Index(), "left swipe steps back")
	m = swipeTo(m, 10, 2, 10, 12)
	assert.Equal(t, 1, m.player.Index(), "vertical drag")
	m = swipeTo(m, 10, 5, 12, 5)
	assert.Equal(t, 1, m.player.Index(), "under threshold")

	m, _ = update(t, m, mouse(tea.MouseActionRelease, 40, 5))
	assert.Equal(t, 1, m.player.Index(), "release without press")

	m.player.SetMode(player.Autoplay)
	m = swipeTo(m, 10, 5, 20, 5)
	assert.Equal(t, 1, m.player.Index(), "swipes only step in manual mode")
}

func TestFlowMode(t *testing.T) {
	t.Parallel()

	store := seenStore()
	m := newTestModel(t, store, "quickSort", player.Manual)
	full := m.View()
	assert.Contains(t, full, "Quick Sort")

	m, _ = update(t, m, runes("f"))
	assert.True(t, m.flow.Enabled())
	v, _ := store.Get(storage.FlowModeKey)
	assert.Equal(t, "true", v)
	flow := m.View()
	assert.NotContains(t, flow, "Quick Sort", "chrome hidden")
	assert.Contains(t, flow, "exit flow mode")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.flow.Enabled())
	assert.Equal(t, screenBoard, m.screen, "esc leaves flow mode first")
	v, _ = store.Get(storage.FlowModeKey)
	assert.Equal(t, "false", v)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenPicker, m.screen)

	reopened := newTestModel(t, store, "quickSort", player.Manual)
	assert.False(t, reopened.flow.Enabled())
}

func TestFlowMode_EscWhileOffPersistsFalse(t *testing.T) {
	t.Parallel()

	store := seenStore()
	require.NoError(t, store.Set(storage.FlowModeKey, "yes"))
	m := newTestModel(t, store, "bubbleSort", player.Manual)
	require.False(t, m.flow.Enabled())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenPicker, m.screen)
	v, _ := store.Get(storage.FlowModeKey)
	assert.Equal(t, "false", v)
}

func TestFlowMode_BackspaceLeavesFlowMode(t *testing.T) {
	t.Parallel()

	store := seenStore()
	m := newTestModel(t, store, "bubbleSort", player.Manual)
	m, _ = update(t, m, runes("F"))
	require.True(t, m.flow.Enabled())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.False(t, m.flow.Enabled())
	assert.Equal(t, screenBoard, m.screen)
	v, _ := store.Get(storage.FlowModeKey)
	assert.Equal(t, "false", v)
}

func TestAutoplay(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, seenStore(), "selectionSort", player.Autoplay)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	require.NotNil(t, cmd)
	require.True(t, m.player.Playing())
	gen := m.player.Generation()

	m, cmd = update(t, m, autoplayTickMsg{gen: gen})
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.player.Index())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.player.Playing())
	m, cmd = update(t, m, autoplayTickMsg{gen: gen})
	assert.Nil(t, cmd, "stale tick")
	assert.Equal(t, 1, m.player.Index())

	m, _ = update(t, m, runes("m"))
	assert.Equal(t, player.Manual, m.player.Mode())

	m, _ = update(t, m, runes("+"))
	assert.Equal(t, player.Fast, m.player.Speed())
}

func TestSoundAndLanguage(t *testing.T) {
	t.Parallel()

	store := seenStore()
	m := newTestModel(t, store, "bfs", player.Manual)
	assert.Positive(t, m.player.Total())
	assert.False(t, m.sound.Enabled())

	m, _ = update(t, m, runes("s"))
	assert.True(t, m.sound.Enabled())
	v, _ := store.Get(storage.SoundEnabledKey)
	assert.Equal(t, "true", v)
	assert.Contains(t, m.View(), "Sound on")

	m, _ = update(t, m, runes("l"))
	lang, _ := store.Get(storage.LanguageKey)
	assert.Equal(t, m.tr.Language(), lang)
	assert.NotEqual(t, "en", lang)
	assert.NotContains(t, m.View(), "Sound on")
}

func TestPicker(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, seenStore(), "", player.Manual)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.View()
	assert.Contains(t, view, "Bubble Sort")
	assert.Contains(t, view, "A* Search")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenBoard, m.screen)
	assert.Equal(t, "bubbleSort", m.algo.ID)

	m, cmd := update(t, m, runes("q"))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_Board(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, seenStore(), "dijkstra", player.Manual)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.View()
	assert.Contains(t, view, "Dijkstra")
	assert.Contains(t, view, "Step 1 of")
	assert.Contains(t, view, "Visited")

	for m.player.StepForward() {
	}
	view = m.View()
	assert.Contains(t, view, "Complete!")
	assert.Contains(t, view, "Complexity")
}

func TestRenderBars(t *testing.T) {
	t.Parallel()

	out := renderBars(sortingStep([]int{1, 2, 4}), 10, 4)
	lines := splitLines(out)
	require.Len(t, lines, 4)
	assert.Equal(t, 1, countBlocks(lines[0]), "only the tallest bar reaches the top")
	assert.Equal(t, 3, countBlocks(lines[3]))

	assert.Empty(t, renderBars(sortingStep(nil), 10, 4))
}

func TestSoundManagerWiring(t *testing.T) {
	t.Parallel()

	sm := audio.NewSoundManager(audio.Voices{})
	m, err := NewModel(Options{Sound: sm, Store: seenStore(), ArraySize: 5, Algorithm: "heapSort"})
	require.NoError(t, err)
	assert.Same(t, sm, m.sound)
}
