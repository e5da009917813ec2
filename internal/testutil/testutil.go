// Package testutil provides shared test helpers: an in-memory document
// source and content directory setup.
package testutil

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/halvard/skald/internal/apperr"
)

// MemSource is an in-memory document source that records how often each
// document was fetched.
type MemSource struct {
	mu    sync.Mutex
	docs  map[string]string
	calls map[string]int
	err   error
}

// NewMemSource creates a source serving the given documents.
func NewMemSource(docs map[string]string) *MemSource {
	m := &MemSource{
		docs:  make(map[string]string, len(docs)),
		calls: make(map[string]int),
	}
	for id, body := range docs {
		m.docs[id] = body
	}
	return m
}

// Fetch returns the stored document or an error wrapping
// apperr.ErrNotFound. A failure injected with FailWith takes precedence.
func (m *MemSource) Fetch(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[id]++
	if m.err != nil {
		return nil, m.err
	}
	body, ok := m.docs[id]
	if !ok {
		return nil, fmt.Errorf("testutil: %s: %w", id, apperr.ErrNotFound)
	}
	return []byte(body), nil
}

// Calls reports how often the given document was fetched.
func (m *MemSource) Calls(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[id]
}

// TotalCalls reports the number of Fetch calls across all documents.
func (m *MemSource) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

// SetDoc adds or replaces a document.
func (m *MemSource) SetDoc(id, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[id] = body
}

// FailWith makes every subsequent Fetch return err. Pass nil to recover.
func (m *MemSource) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Doc renders a minimal article document with the given frontmatter lines
// and body.
func Doc(frontmatter, body string) string {
	return "---\n" + frontmatter + "\n---\n" + body
}

// WriteContentDir creates a temporary directory populated with the given
// files, keyed by slash-separated relative path.
func WriteContentDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// TestLogger returns a logger that only surfaces errors, keeping the
// expected warnings of failure-path tests out of the output.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
