package preferences

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayanflow/bayan-flow/internal/storage"
)

func TestNewManager_CreatesStorage(t *testing.T) {
	t.Parallel()

	storagePath := filepath.Join(t.TempDir(), "settings.json")

	m, err := NewManager(storagePath)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.NotEmpty(t, m.Storage.Data.InstallID)

	// The file only appears on first Save.
	_, err = os.Stat(storagePath)
	require.True(t, os.IsNotExist(err))
	require.NoError(t, m.Storage.Save())
	_, err = os.Stat(storagePath)
	require.NoError(t, err)
}

func TestView_Empty(t *testing.T) {
	t.Parallel()

	m, err := NewManager(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)

	var buf bytes.Buffer
	m.View(&buf)
	assert.Contains(t, buf.String(), "No preferences stored.")
}

func TestSet_PersistsAndViewsSorted(t *testing.T) {
	t.Parallel()

	storagePath := filepath.Join(t.TempDir(), "settings.json")
	m, err := NewManager(storagePath)
	require.NoError(t, err)

	require.NoError(t, m.Set(storage.SoundEnabledKey, "true"))
	require.NoError(t, m.Set(storage.FlowModeKey, "false"))
	require.NoError(t, m.Set(storage.LanguageKey, "fr-CA"))

	m2, err := NewManager(storagePath)
	require.NoError(t, err)
	v, ok := m2.Storage.Get(storage.LanguageKey)
	require.True(t, ok)
	assert.Equal(t, "fr-CA", v)

	var buf bytes.Buffer
	m2.View(&buf)
	assert.Equal(t, "flowModeEnabled: false\nlanguage: fr-CA\nsoundEnabled: true\n", buf.String())
}

func TestSet_Rejects(t *testing.T) {
	t.Parallel()

	m, err := NewManager(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)

	require.ErrorIs(t, m.Set("theme", "dark"), ErrUnknownKey)
	require.ErrorIs(t, m.Set(storage.FlowModeKey, "yes"), ErrInvalidValue)
	require.ErrorIs(t, m.Set(storage.LanguageKey, "not a language"), ErrInvalidValue)
	assert.Empty(t, m.Storage.Data.Flags)
}

func TestReset_ClearsEntries(t *testing.T) {
	t.Parallel()

	storagePath := filepath.Join(t.TempDir(), "settings.json")
	m, err := NewManager(storagePath)
	require.NoError(t, err)
	require.NoError(t, m.Set(storage.TutorialSeenKey, "true"))
	require.NoError(t, m.Reset())

	m2, err := NewManager(storagePath)
	require.NoError(t, err)
	assert.Empty(t, m2.Storage.Data.Flags)

	var buf bytes.Buffer
	m2.View(&buf)
	assert.Contains(t, buf.String(), "No preferences stored.")
}

func TestKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"flowModeEnabled", "language", "soundEnabled", "swipeTutorialSeen"}, Keys())
}
