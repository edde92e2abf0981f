package i18n

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := New()
	require.NoError(t, err)
	return tr
}

func TestNew_DefaultsToEnglish(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	assert.Equal(t, "en", tr.Language())
	assert.Equal(t, []string{"en", "ar", "fr"}, tr.Languages())
}

func TestT_BasicKeys(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	assert.Equal(t, "Bayan Flow", tr.T("header.title", nil))
	assert.Equal(t, "Algorithm", tr.T("settings.algorithm", nil))
	assert.Equal(t, "Play", tr.T("controls.play", nil))

	tr.SetLanguage("fr")
	assert.Equal(t, "Bayan Flow", tr.T("header.title", nil))
	assert.Equal(t, "Algorithme", tr.T("settings.algorithm", nil))
	assert.Equal(t, "Lecture", tr.T("controls.play", nil))
}

func TestT_Fallbacks(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	tr.SetLanguage("fr")
	assert.Equal(t, "nonexistent.key", tr.T("nonexistent.key", nil))

	assert.Equal(t, "Passe du chiffre 2 terminée", tr.T("algorithmSteps.radixPassComplete", Args{"pass": 2}))

	require.NoError(t, tr.AddCatalog("de", []byte("controls:\n  play: Abspielen\n")))
	tr.SetLanguage("de")
	assert.Equal(t, "Abspielen", tr.T("controls.play", nil))
	assert.Equal(t, "Choose an algorithm", tr.T("picker.title", nil))
}

func TestEmbeddedCatalogs_Complete(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	en := tr.catalogs[DefaultLanguage]
	for _, lang := range tr.Languages() {
		cat := tr.catalogs[lang]
		for key, text := range en {
			got, ok := cat[key]
			if !assert.True(t, ok, "%s: missing %s", lang, key) {
				continue
			}
			assert.ElementsMatch(t, placeholder.FindAllString(text, -1), placeholder.FindAllString(got, -1),
				"%s: placeholders of %s", lang, key)
		}
	}
}

func TestT_Interpolation(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	assert.Equal(t, "Step 5 of 10", tr.T("info.step", Args{"current": 5, "total": 10}))

	tr.SetLanguage("fr")
	assert.Equal(t, "Étape 5 sur 10", tr.T("info.step", Args{"current": 5, "total": 10}))

	// Missing arguments keep their placeholder.
	tr.SetLanguage("en")
	assert.Equal(t, "Step 5 of {{total}}", tr.T("info.step", Args{"current": 5}))
	assert.Equal(t, "Step {{current}} of {{total}}", tr.T("info.step", nil))
}

func TestRender_Message(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	m := Msg("algorithmSteps.comparing", Args{"a": 3, "b": 7})
	assert.Equal(t, "Comparing 3 and 7", tr.Render(m))
}

func TestSetLanguage_Negotiation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"fr-CA", "fr"},
		{"fr", "fr"},
		{"ar-SA", "ar"},
		{"en-GB", "en"},
		{"de", "en"},
		{"!!", "en"},
	}
	for _, tt := range tests {
		tr := newTranslator(t)
		assert.Equal(t, tt.want, tr.SetLanguage(tt.in), "tag %q", tt.in)
		assert.Equal(t, tt.want, tr.Language())
	}
}

func TestNext_Cycles(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	assert.Equal(t, "ar", tr.Next())
	assert.True(t, tr.RTL())
	assert.Equal(t, "fr", tr.Next())
	assert.False(t, tr.RTL())
	assert.Equal(t, "en", tr.Next())
}

func TestIsRTL(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"ar", "AR", "ar-SA", "he", "fa_IR", "ur"} {
		assert.True(t, IsRTL(code), code)
	}
	for _, code := range []string{"", "en", "fr-CA", "arn"} {
		assert.False(t, IsRTL(code), code)
	}
}

func TestLoadDir_MergesAndAddsLanguages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "extra"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fr.yaml"), []byte("controls:\n  play: Jouer\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra", "de.yml"), []byte("controls:\n  play: Abspielen\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("mode: autoplay\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra", "settings.yml"), []byte("sound: true\n"), 0o600))

	tr := newTranslator(t)
	require.NoError(t, tr.LoadDir(context.Background(), dir))

	assert.ElementsMatch(t, []string{"en", "fr", "ar", "de"}, tr.Languages())
	tr.SetLanguage("fr")
	assert.Equal(t, "Jouer", tr.T("controls.play", nil))
	assert.Equal(t, "Algorithme", tr.T("settings.algorithm", nil), "existing keys survive a merge")

	tr.SetLanguage("de-AT")
	assert.Equal(t, "Abspielen", tr.T("controls.play", nil))
}

func TestLoadDir_Errors(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	require.Error(t, tr.LoadDir(context.Background(), filepath.Join(t.TempDir(), "missing")))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fr.yaml"), []byte("controls: [unterminated"), 0o600))
	require.Error(t, tr.LoadDir(context.Background(), dir))
}
