// Package levels discovers playable level files in a data directory.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Format identifies how a level file is encoded.
type Format int

const (
	FormatNative Format = iota
	FormatTiledJSON
	FormatTiledScript
)

func (f Format) String() string {
	switch f {
	case FormatTiledJSON:
		return "tiled"
	case FormatTiledScript:
		return "tiled-js"
	default:
		return "native"
	}
}

// Entry represents a discoverable level in the data directory
type Entry struct {
	Name   string // Display name (file name without extensions)
	Path   string // Path to the level file
	Format Format
}

// ScanDataDirectory scans the data directory for level files. Files directly
// in dataPath and in its immediate subdirectories are considered; atlas
// definitions and hidden entries are skipped. Entries are sorted by name.
func ScanDataDirectory(dataPath string) ([]Entry, error) {
	entries, err := os.ReadDir(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var levels []Entry
	for _, entry := range entries {
		name := entry.Name()
		// Skip special directories
		if strings.HasPrefix(name, ".") || name == "atlases" {
			continue
		}

		path := filepath.Join(dataPath, name)
		if !entry.IsDir() {
			if e, ok := classify(path); ok {
				levels = append(levels, e)
			}
			continue
		}

		sub, err := os.ReadDir(path)
		if err != nil {
			// Skip directories that can't be read
			continue
		}
		for _, s := range sub {
			if s.IsDir() || strings.HasPrefix(s.Name(), ".") {
				continue
			}
			if e, ok := classify(filepath.Join(path, s.Name())); ok {
				levels = append(levels, e)
			}
		}
	}

	sort.Slice(levels, func(i, j int) bool {
		if levels[i].Name != levels[j].Name {
			return levels[i].Name < levels[j].Name
		}
		return levels[i].Path < levels[j].Path
	})
	return levels, nil
}

// Find returns the entry whose name or path matches query.
func Find(levels []Entry, query string) (Entry, bool) {
	for _, e := range levels {
		if e.Name == query || e.Path == query || strings.EqualFold(e.Name, query) {
			return e, true
		}
	}
	return Entry{}, false
}

// classify decides from the file name whether path is a level.
func classify(path string) (Entry, bool) {
	base := filepath.Base(path)
	lower := strings.ToLower(base)

	switch {
	case strings.HasSuffix(lower, ".tmxc.js"):
		return Entry{Name: trimExt(base), Path: path, Format: FormatTiledScript}, true
	case strings.HasSuffix(lower, ".tmj"):
		return Entry{Name: trimExt(base), Path: path, Format: FormatTiledJSON}, true
	case strings.HasSuffix(lower, ".json"):
		// Skip atlas and config files
		if lower == "atlas.json" || lower == "config.json" || strings.Contains(lower, "atlas") {
			return Entry{}, false
		}
		format := FormatNative
		if strings.HasSuffix(lower, ".tiled.json") {
			format = FormatTiledJSON
		}
		return Entry{Name: trimExt(base), Path: path, Format: format}, true
	}
	return Entry{}, false
}

func trimExt(name string) string {
	if i := strings.Index(name, "."); i > 0 {
		return name[:i]
	}
	return name
}
