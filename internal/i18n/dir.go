package i18n

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// LoadDir walks dir and merges every <lang>.yaml or <lang>.yml it finds over the
// loaded catalogs. Files whose name is not a language tag are skipped. Files are applied in path order so nested overrides win.
func (tr *Translator) LoadDir(ctx context.Context, dir string) error {
	files, err := findCatalogs(ctx, dir)
	if err != nil {
		return err
	}
	for _, f := range files {
		lang := langFromFilename(f)
		if _, err := language.Parse(lang); err != nil {
			logrus.Debugf("skipping %s: not a language tag", f)
			continue
		}
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("reading catalog %s: %w", f, err)
		}
		if err := tr.AddCatalog(lang, data); err != nil {
			return err
		}
	}
	logrus.Debugf("loaded %d catalog file(s) from %s", len(files), dir)
	return nil
}

func findCatalogs(ctx context.Context, root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}
	var (
		mu    sync.Mutex
		found []string
	)
	conf := fastwalk.DefaultConfig
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries.
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return fs.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		mu.Lock()
		found = append(found, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}
