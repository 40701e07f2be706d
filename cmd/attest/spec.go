package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// specFiles expands a spec path into the list of spec files it names: the
// file itself, or every non-hidden *.toml file in a directory.
func specFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat spec path %q: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec directory %q: %w", path, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".toml") {
			continue
		}
		files = append(files, filepath.Join(path, name))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no claim spec files found in %q", path)
	}
	return files, nil
}
