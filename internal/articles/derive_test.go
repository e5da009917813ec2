package articles

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title, want string
	}{
		{"Hello World", "hello-world"},
		{"Go 1.22 Released!", "go-122-released"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"Café Déjà Vu", "cafe-deja-vu"},
		{"naïve — façade", "naive-facade"},
		{"already-slugged", "already-slugged"},
		{"Multiple---Hyphens", "multiple-hyphens"},
		{"!!!", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.title); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestExcerpt_ShortBodyUntouched(t *testing.T) {
	got := Excerpt("A short body.", 200)
	if got != "A short body." {
		t.Errorf("got %q", got)
	}
}

func TestExcerpt_StripsMarkdown(t *testing.T) {
	body := "# Heading\n\nSome **bold** and _italic_ text with a [link](https://example.com) " +
		"and an image ![alt](pic.png).\n\n```go\nfmt.Println(\"skip me\")\n```\n\nAfter `code` span."
	got := Excerpt(body, 500)
	want := "Heading Some bold and italic text with a link and an image . After code span."
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestExcerpt_TruncatesAtWordBoundary(t *testing.T) {
	// 100-rune budget; the last space falls late enough to back up to it.
	body := strings.Repeat("word ", 40) // 200 runes
	got := Excerpt(body, 100)
	if !strings.HasSuffix(got, "word...") {
		t.Errorf("got %q, want suffix %q", got, "word...")
	}
	if strings.Contains(got, " ...") {
		t.Errorf("kept the boundary space: %q", got)
	}
}

func TestExcerpt_HardCutWhenBoundaryTooEarly(t *testing.T) {
	// One giant word after a short one: the only space is before the 80%
	// mark, so the cut stays hard.
	body := "ab " + strings.Repeat("x", 300)
	got := Excerpt(body, 100)
	if len([]rune(got)) != 100+len(ellipsis) {
		t.Errorf("len = %d, want %d", len([]rune(got)), 100+len(ellipsis))
	}
}

func TestExcerpt_NeverExceedsBudget(t *testing.T) {
	bodies := []string{
		strings.Repeat("lorem ipsum ", 100),
		strings.Repeat("ü", 500),
		strings.Repeat("word ", 19) + strings.Repeat("y", 200),
	}
	for _, body := range bodies {
		got := Excerpt(body, 120)
		if n := utf8.RuneCountInString(got); n > 120+len(ellipsis) {
			t.Errorf("excerpt of %d runes exceeds budget: %q", n, got[:40])
		}
	}
}

func TestReadingTime(t *testing.T) {
	cases := []struct {
		words, want int
	}{
		{0, 1},
		{1, 1},
		{199, 1},
		{200, 1},
		{201, 2},
		{400, 2},
		{401, 3},
	}
	for _, c := range cases {
		body := strings.TrimSpace(strings.Repeat("w ", c.words))
		if got := ReadingTime(body); got != c.want {
			t.Errorf("ReadingTime(%d words) = %d, want %d", c.words, got, c.want)
		}
	}
}
