// Package archive resolves the on-disk archive into an ordered list of
// input files for the pipeline. It holds no parsing logic.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DirSource supplies every *.txt file in a directory, sorted by name so
// runs over the same directory are deterministic.
type DirSource struct {
	Dir string
}

// Resolve lists the directory's *.txt files in sorted order.
func (s DirSource) Resolve(_ context.Context) ([]string, error) {
	info, err := os.Stat(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		// A single file path is accepted the way an explicit list would be.
		return []string{s.Dir}, nil
	}
	paths, err := filepath.Glob(filepath.Join(s.Dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("list input directory: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// PathSource supplies an explicit, ordered list of file paths.
type PathSource []string

// Resolve returns the paths in the order given.
func (s PathSource) Resolve(_ context.Context) ([]string, error) {
	return s, nil
}
