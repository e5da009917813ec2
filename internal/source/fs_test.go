package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/halvard/skald/internal/apperr"
)

func tempContentDir(t *testing.T, files map[string]string) *FS {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestFetch(t *testing.T) {
	s := tempContentDir(t, map[string]string{
		"post.md": "# Hello\nWorld\n",
	})
	got, err := s.Fetch(context.Background(), "post.md")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(got) != "# Hello\nWorld\n" {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestFetchSubdir(t *testing.T) {
	s := tempContentDir(t, map[string]string{
		"posts/deep.md": "deep",
	})
	got, err := s.Fetch(context.Background(), "posts/deep.md")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestFetchMissingIsNotFound(t *testing.T) {
	s := tempContentDir(t, nil)
	_, err := s.Fetch(context.Background(), "absent.md")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempContentDir(t, map[string]string{"ok.md": "ok"})

	cases := []string{
		"../../etc/passwd",
		"../outside.md",
		"/etc/shadow",
		"",
	}
	for _, p := range cases {
		if _, err := s.Fetch(context.Background(), p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
	}
}

func TestResolveStaysUnderRoot(t *testing.T) {
	s := tempContentDir(t, nil)
	abs, err := s.Resolve("assets/pic.png")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if filepath.Dir(filepath.Dir(abs)) != s.root {
		t.Errorf("resolved path %q not under root %q", abs, s.root)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/skald-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "skald-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
