// Package i18n resolves UI strings by dotted key for the active language.
//
// Catalogs are YAML documents whose nested maps flatten to dotted keys
// ("swipe_tutorial.title"). Lookups fall back to English and then to the key
// itself, so a missing translation never fails.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when nothing better matches and for fallback lookups.
const DefaultLanguage = "en"

//go:embed locales/*.yaml
var embedded embed.FS

// Both "{{name}}" and "{name}" placeholders are recognized.
var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}|\{([A-Za-z0-9_.]+)\}`)

//nolint:gochecknoglobals // fixed lookup set.
var rtlLanguages = map[string]struct{}{"ar": {}, "he": {}, "fa": {}, "ur": {}}

// Args are interpolation values keyed by placeholder name.
type Args map[string]any

// Message is a deferred translation: a key plus its arguments.
type Message struct {
	Key  string `json:"key"`
	Args Args   `json:"args,omitempty"`
}

// Msg builds a Message.
func Msg(key string, args Args) Message {
	return Message{Key: key, Args: args}
}

// Translator holds every loaded catalog and the active language.
type Translator struct {
	mu        sync.RWMutex
	catalogs  map[string]map[string]string
	languages []string
	matcher   language.Matcher
	active    string
}

// New returns a Translator loaded with the embedded catalogs, set to English.
func New() (*Translator, error) {
	tr := &Translator{
		catalogs: make(map[string]map[string]string),
		active:   DefaultLanguage,
	}
	entries, err := fs.ReadDir(embedded, "locales")
	if err != nil {
		return nil, fmt.Errorf("reading embedded locales: %w", err)
	}
	for _, e := range entries {
		data, err := fs.ReadFile(embedded, path.Join("locales", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		if err := tr.AddCatalog(langFromFilename(e.Name()), data); err != nil {
			return nil, err
		}
	}
	return tr, nil
}

// AddCatalog parses a YAML catalog and merges it over any keys already loaded for lang.
func (tr *Translator) AddCatalog(lang string, data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s catalog: %w", lang, err)
	}
	flat := make(map[string]string)
	flatten("", doc, flat)

	tr.mu.Lock()
	defer tr.mu.Unlock()
	cat, ok := tr.catalogs[lang]
	if !ok {
		cat = make(map[string]string, len(flat))
		tr.catalogs[lang] = cat
	}
	for k, v := range flat {
		cat[k] = v
	}
	tr.rebuildLocked()
	logrus.Debugf("loaded %d %s strings", len(flat), lang)
	return nil
}

// rebuildLocked refreshes the language list and matcher. English stays first so
// it wins when nothing matches.
func (tr *Translator) rebuildLocked() {
	langs := make([]string, 0, len(tr.catalogs))
	for l := range tr.catalogs {
		if l != DefaultLanguage {
			langs = append(langs, l)
		}
	}
	sort.Strings(langs)
	langs = append([]string{DefaultLanguage}, langs...)
	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tags = append(tags, language.Make(l))
	}
	tr.languages = langs
	tr.matcher = language.NewMatcher(tags)
}

// Languages returns the loaded language codes, English first.
func (tr *Translator) Languages() []string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return append([]string(nil), tr.languages...)
}

// Language returns the active language code.
func (tr *Translator) Language() string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.active
}

// SetLanguage switches to the best loaded match for a BCP 47 tag and returns it.
// Unknown or unparsable tags select English.
func (tr *Translator) SetLanguage(tag string) string {
	resolved := tr.Match(tag)
	tr.mu.Lock()
	tr.active = resolved
	tr.mu.Unlock()
	return resolved
}

// Match returns the loaded language that best serves tag.
func (tr *Translator) Match(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return DefaultLanguage
	}
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	_, idx, conf := tr.matcher.Match(t)
	if conf == language.No || idx < 0 || idx >= len(tr.languages) {
		return DefaultLanguage
	}
	return tr.languages[idx]
}

// Next cycles to the following loaded language and returns it.
func (tr *Translator) Next() string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	for i, l := range tr.languages {
		if l == tr.active {
			tr.active = tr.languages[(i+1)%len(tr.languages)]
			return tr.active
		}
	}
	tr.active = DefaultLanguage
	return tr.active
}

// T translates key in the active language, interpolating args.
func (tr *Translator) T(key string, args Args) string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	s, ok := tr.catalogs[tr.active][key]
	if !ok {
		s, ok = tr.catalogs[DefaultLanguage][key]
	}
	if !ok {
		return key
	}
	return interpolate(s, args)
}

// Render translates a deferred Message.
func (tr *Translator) Render(m Message) string {
	return tr.T(m.Key, m.Args)
}

// RTL reports whether the active language is written right to left.
func (tr *Translator) RTL() bool {
	return IsRTL(tr.Language())
}

// IsRTL reports whether a language code needs right-to-left layout.
// Region subtags are ignored ("ar-SA" is RTL).
func IsRTL(code string) bool {
	if code == "" {
		return false
	}
	base := strings.ToLower(strings.SplitN(strings.ReplaceAll(code, "_", "-"), "-", 2)[0])
	_, ok := rtlLanguages[base]
	return ok
}

func interpolate(s string, args Args) string {
	if len(args) == 0 {
		return s
	}
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		sub := placeholder.FindStringSubmatch(m)
		name := sub[1]
		if name == "" {
			name = sub[2]
		}
		v, ok := args[name]
		if !ok {
			return m
		}
		return fmt.Sprint(v)
	})
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch x := v.(type) {
		case map[string]any:
			flatten(key, x, out)
		case nil:
		default:
			out[key] = fmt.Sprint(x)
		}
	}
}

func langFromFilename(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
}
