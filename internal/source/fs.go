package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/halvard/skald/internal/apperr"
)

// FS implements Source backed by a local content directory.
type FS struct {
	root string // absolute path to the content directory
}

var _ Source = (*FS)(nil)

// NewFS creates a new FS source rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("source: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("source: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Fetch reads the document at id, interpreted as a path relative to the
// content root.
func (f *FS) Fetch(_ context.Context, id string) ([]byte, error) {
	abs, err := f.Resolve(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("source: %s: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("source: read %s: %w: %w", id, apperr.ErrSourceUnavailable, err)
	}
	return data, nil
}

// Resolve maps a relative path to an absolute path under the content root
// and rejects any result that escapes it (directory traversal).
func (f *FS) Resolve(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("source: empty path: %w", apperr.ErrNotFound)
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("source: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(f.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("source: resolve path: %w", err)
	}
	// Ensure the resolved path is still under root.
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", fmt.Errorf("source: path escapes content root: %s", rel)
	}
	return abs, nil
}
