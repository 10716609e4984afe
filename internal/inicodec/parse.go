package inicodec

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roach88/migrate-gse/internal/kvstore"
)

// Parse decodes section-based text into section → key → entry.
// Sections repeated within data merge into one.
func Parse(data []byte) (*kvstore.Map, error) {
	r := newReader()
	if err := r.read(data); err != nil {
		return nil, &ParseError{Err: err}
	}
	return r.sections(), nil
}

// ParseFiles reads and parses every path into one logical section set.
// Paths are applied in the order given. A key defined more than once, in
// one file or across files, takes the last value read.
func ParseFiles(paths []string) (*kvstore.Map, error) {
	r := newReader()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &FileError{Op: "read", Path: path, Err: err}
		}
		if err := r.read(data); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	}
	return r.sections(), nil
}

// FindFiles returns every file under root whose name matches "*.ini*"
// (case-insensitively), sorted by path.
func FindFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match("*.ini*", strings.ToLower(d.Name())); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, &FileError{Op: "scan", Path: root, Err: err}
	}
	sort.Strings(paths)
	return paths, nil
}

// Load finds and parses every settings file under root.
func Load(root string) (*kvstore.Map, []string, error) {
	paths, err := FindFiles(root)
	if err != nil {
		return nil, nil, err
	}
	sections, err := ParseFiles(paths)
	if err != nil {
		return nil, paths, err
	}
	return sections, paths, nil
}
