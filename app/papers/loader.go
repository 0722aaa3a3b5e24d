package papers

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LoadDir parses every markdown note in dir, sorted by filename so issue
// pages render deterministically. A missing directory is an empty issue,
// not an error.
func LoadDir(dir string) ([]*Note, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []*Note{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	sort.Strings(files)

	notes := make([]*Note, 0, len(files))
	for _, file := range files {
		note, err := ParseNote(file)
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", file, err)
		}
		notes = append(notes, note)
	}

	return notes, nil
}
