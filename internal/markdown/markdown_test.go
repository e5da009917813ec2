package markdown

import (
	"strings"
	"testing"
)

func TestRender_BasicMarkdown(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render([]byte("# Title\n\nSome **bold** text."))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<h1") {
		t.Errorf("missing heading: %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("missing bold: %q", html)
	}
}

func TestRender_GFMTable(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "<table>") {
		t.Errorf("table not rendered: %q", out)
	}
}

func TestRender_AutoHeadingID(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render([]byte("## My Section\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), `id="my-section"`) {
		t.Errorf("missing heading id: %q", out)
	}
}

func TestRender_RawHTMLIsEscaped(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render([]byte("hello <script>alert(1)</script>"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Errorf("raw HTML leaked through: %q", out)
	}
}
