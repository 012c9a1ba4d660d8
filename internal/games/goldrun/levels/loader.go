// Package levels provides the built-in level pack and loading of level
// files from disk.
package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vovakirdan/goldrun/internal/games/goldrun/core"
	"github.com/vovakirdan/goldrun/internal/games/goldrun/levels/formats"
)

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a new level loader rooted at a directory.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// LoadAll recursively scans and loads all level files. Files that do not
// parse or validate are skipped. Levels keep file order, files are visited
// in lexical order.
func (l *Loader) LoadAll() ([]*core.Level, error) {
	var levels []*core.Level

	err := fs.WalkDir(l.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		pack, err := l.load(path)
		if err != nil {
			return nil
		}
		levels = append(levels, pack...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}
	return levels, nil
}

// LoadFile loads every level in one file, relative to Root.
func (l *Loader) LoadFile(path string) ([]*core.Level, error) {
	return l.load(filepath.ToSlash(path))
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (*core.Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	return Find(levels, id)
}

// ListIDs returns all level IDs in load order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	return IDs(levels), nil
}

func (l *Loader) load(path string) ([]*core.Level, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return parse(data, path)
}

// parse decodes and validates a file's levels. Levels without an ID are
// named after the file.
func parse(data []byte, path string) ([]*core.Level, error) {
	pack, err := parseByExtension(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i, lvl := range pack.Levels {
		if lvl.ID == "" {
			lvl.ID = fmt.Sprintf("%s-%02d", base, i+1)
		}
		if lvl.Name == "" {
			lvl.Name = lvl.ID
		}
		if err := lvl.Validate(); err != nil {
			return nil, fmt.Errorf("parsing file %s: %w", path, err)
		}
	}
	return pack.Levels, nil
}

// Find returns the level with the given ID.
func Find(levels []*core.Level, id string) (*core.Level, error) {
	i := slices.IndexFunc(levels, func(l *core.Level) bool { return l.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("level not found: %s", id)
	}
	return levels[i], nil
}

// IDs lists level IDs in order.
func IDs(levels []*core.Level) []string {
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), ext)
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Pack, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Pack{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
