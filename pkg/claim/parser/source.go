package parser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"attest-hq/attest/pkg/claim"
)

// Source provides claim documents to the verifier.
type Source interface {
	// Load reads all claim documents from the source.
	Load(ctx context.Context) ([]*claim.Document, error)
}

// FileSource loads claim documents from a spec file or a directory of
// spec files.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a file-based claim source.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:   path,
		logger: logger.With("component", "claim_source"),
	}
}

// Load reads claim documents from the configured path. A directory loads
// every *.toml file in it, non-recursively, in name order.
func (s *FileSource) Load(ctx context.Context) ([]*claim.Document, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat claim spec path %q: %w", s.path, err)
	}

	if !info.IsDir() {
		doc, err := s.loadFile(s.path)
		if err != nil {
			return nil, err
		}
		return []*claim.Document{doc}, nil
	}

	return s.loadDirectory(ctx)
}

// loadDirectory loads every spec file in the directory.
func (s *FileSource) loadDirectory(ctx context.Context) ([]*claim.Document, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read claim spec directory %q: %w", s.path, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".toml") {
			continue
		}
		paths = append(paths, filepath.Join(s.path, name))
	}
	sort.Strings(paths)

	docs := make([]*claim.Document, 0, len(paths))
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		doc, err := s.loadFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no claim spec files found in %q", s.path)
	}

	return docs, nil
}

// loadFile parses one spec file.
func (s *FileSource) loadFile(path string) (*claim.Document, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("loaded claim spec",
		"path", path,
		"name", doc.Name,
		"probes", len(doc.Probes),
		"claims", len(doc.Claims),
	)

	return doc, nil
}
