package store

import (
	"context"
	"os"
	"strings"
)

// ExportFile writes the full, unfiltered listing to path, one command per line.
func (s *Store) ExportFile(ctx context.Context, path string) (int, error) {
	snap, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	var b strings.Builder
	for _, text := range snap {
		b.WriteString(text)
		b.WriteByte('\n')
	}
	if err := writeFileAtomic(path, []byte(b.String())); err != nil {
		return 0, &PersistenceError{Op: "export", Err: err}
	}
	return len(snap), nil
}

// ImportFile replaces the store's contents with the lines of path.
// The file is read completely before the store is touched.
func (s *Store) ImportFile(ctx context.Context, path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, &ImportError{Path: path, Err: err}
	}
	lines := SplitLines(string(b))
	if err := s.ReplaceAllFrom(ctx, lines); err != nil {
		return 0, err
	}
	return s.Count(ctx)
}

// SplitLines splits a one-command-per-line document, accepting CRLF.
func SplitLines(doc string) []string {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	if doc == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(doc, "\n"), "\n")
}
