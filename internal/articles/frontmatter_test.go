package articles

import (
	"errors"
	"testing"
	"time"
)

func TestParseDocument_FieldsAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\ntags:\n  - go\n  - web\n---\n# Hello\nBody text.\n")
	fields, body, err := ParseDocument(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields["title"] != "Hello" {
		t.Errorf("title = %v, want Hello", fields["title"])
	}
	tags, ok := fields["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "go" || tags[1] != "web" {
		t.Errorf("tags = %v, want [go web]", fields["tags"])
	}
	if string(body) != "# Hello\nBody text.\n" {
		t.Errorf("body = %q", body)
	}
}

func TestParseDocument_UnquotedDateStaysString(t *testing.T) {
	input := []byte("---\ndate: 2024-01-02\n---\nbody")
	fields, _, err := ParseDocument(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The YAML decoder leaves bare dates as strings; dateField does
	// the conversion.
	s, ok := fields["date"].(string)
	if !ok {
		t.Fatalf("date = %T, want string", fields["date"])
	}
	if s != "2024-01-02" {
		t.Errorf("date = %q", s)
	}
	d, err := dateField(fields, "date")
	if err != nil {
		t.Fatalf("dateField: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.January || d.Day() != 2 {
		t.Errorf("date = %v", d)
	}
}

func TestParseDocument_NoFrontmatter(t *testing.T) {
	input := []byte("# Just a heading\nSome text.\n")
	fields, body, err := ParseDocument(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("expected no fields, got %v", fields)
	}
	if string(body) != string(input) {
		t.Errorf("body = %q, want full input", body)
	}
}

func TestParseDocument_EmptyBlock(t *testing.T) {
	input := []byte("---\n---\nBody only.\n")
	fields, body, err := ParseDocument(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("fields = %v, want empty", fields)
	}
	if string(body) != "Body only.\n" {
		t.Errorf("body = %q", body)
	}

	// Close delimiter at end of input, no trailing newline.
	fields, body, err = ParseDocument([]byte("---\n---"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 0 || len(body) != 0 {
		t.Errorf("fields = %v, body = %q, want both empty", fields, body)
	}
}

func TestParseDocument_Unterminated(t *testing.T) {
	input := []byte("---\ntitle: Broken\nNo closing delimiter here.\n")
	_, _, err := ParseDocument(input)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}

func TestParseDocument_InvalidYAML(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody\n")
	_, _, err := ParseDocument(input)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}

func TestParseDocument_DelimiterInsideBody(t *testing.T) {
	input := []byte("Intro paragraph.\n\n---\n\nMore text after a rule.\n")
	fields, body, err := ParseDocument(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("fields = %v, want empty", fields)
	}
	if string(body) != string(input) {
		t.Errorf("body = %q, want full input", body)
	}
}
