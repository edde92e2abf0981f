package flowmode

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayanflow/bayan-flow/internal/storage"
)

type failingStore struct{}

func (failingStore) Get(string) (string, bool)  { return "", false }
func (failingStore) Set(string, string) error { return errors.New("disk full") }

func TestNew_ReadsPersistedFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stored string
		set    bool
		want   bool
	}{
		{set: false, want: false},
		{stored: "true", set: true, want: true},
		{stored: "false", set: true, want: false},
		{stored: "TRUE", set: true, want: false},
		{stored: "1", set: true, want: false},
	}
	for _, tt := range tests {
		m := storage.NewMemory()
		if tt.set {
			require.NoError(t, m.Set(storage.FlowModeKey, tt.stored))
		}
		assert.Equal(t, tt.want, New(m).Enabled(), "stored=%q", tt.stored)
	}
}

func TestToggle_PersistsEveryChange(t *testing.T) {
	t.Parallel()

	m := storage.NewMemory()
	tg := New(m)

	assert.True(t, tg.Toggle())
	v, _ := m.Get(storage.FlowModeKey)
	assert.Equal(t, "true", v)

	assert.False(t, tg.Toggle())
	v, _ = m.Get(storage.FlowModeKey)
	assert.Equal(t, "false", v)

	tg.Toggle()
	tg.Exit()
	assert.False(t, tg.Enabled())
	v, _ = m.Get(storage.FlowModeKey)
	assert.Equal(t, "false", v)
}

func TestHandleKey(t *testing.T) {
	t.Parallel()

	m := storage.NewMemory()
	tg := New(m)

	assert.True(t, tg.HandleKey("f"))
	assert.True(t, tg.Enabled())
	assert.True(t, tg.HandleKey("F"))
	assert.False(t, tg.Enabled())
	assert.True(t, tg.HandleKey("F"))
	assert.True(t, tg.HandleKey("esc"))
	assert.False(t, tg.Enabled())
	assert.True(t, tg.HandleKey("Escape"))
	assert.False(t, tg.Enabled())
	assert.False(t, tg.HandleKey("g"))
}

func TestToggle_SurvivesFileReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := storage.NewStorage(path)
	require.NoError(t, err)
	New(s).Toggle()

	s2, err := storage.NewStorage(path)
	require.NoError(t, err)
	assert.True(t, New(s2).Enabled())
}

func TestToggle_PersistFailureKeepsState(t *testing.T) {
	t.Parallel()

	tg := New(failingStore{})
	assert.True(t, tg.Toggle())
	assert.True(t, tg.Enabled())
}
