package knowledge

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML layout of a knowledge file:
//
//	entries:
//	  - category: spa
//	    topic: Spa and Massage
//	    content: ...
//	    keywords: spa massage relax
type catalogFile struct {
	Entries []Entry `yaml:"entries"`
}

// LoadFiles reads every YAML file under root matching any of the doublestar
// patterns (e.g. "knowledge/**/*.yml") and returns their entries. Files are
// read in lexical path order so the resulting catalog order is stable.
func LoadFiles(root string, patterns []string) ([]Entry, error) {
	fsys := os.DirFS(root)

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern))
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)

	var entries []Entry
	for _, p := range paths {
		fileEntries, err := loadFile(fsys, p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fileEntries...)
	}
	return entries, nil
}

func loadFile(fsys fs.FS, path string) ([]Entry, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i, e := range cf.Entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%s entry %d: %w", path, i, err)
		}
	}
	return cf.Entries, nil
}
