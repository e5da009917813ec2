package articleservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/halvard/skald/internal/apperr"
	"github.com/halvard/skald/internal/articles"
	"github.com/halvard/skald/internal/markdown"
	"github.com/halvard/skald/internal/testutil"
)

func testDocs() map[string]string {
	return map[string]string{
		"one.md": testutil.Doc(
			"title: Newest Post\ndate: 2024-06-01\nauthor: Hal\ntags:\n  - go",
			"# Heading\n\nNewest body with **markdown**."),
		"two.md": testutil.Doc(
			"title: Middle Post\ndate: 2024-03-01\nauthor: Hal\ntags:\n  - go\n  - web",
			"Middle body."),
		"three.md": testutil.Doc(
			"title: Oldest Post\ndate: 2024-01-01\nauthor: Hal",
			"Oldest body."),
	}
}

func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	src := testutil.NewMemSource(testDocs())
	loader := articles.NewLoader(src, []string{"one.md", "two.md", "three.md"},
		articles.DefaultExcerptLength, testutil.TestLogger())
	lib := articles.NewLibrary(loader, testutil.TestLogger())
	return NewService(lib, markdown.NewRenderer(), cfg)
}

func TestList_OrderAndDisplayDate(t *testing.T) {
	svc := newTestService(t, Config{})
	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].Slug != "newest-post" || items[2].Slug != "oldest-post" {
		t.Errorf("order wrong: %s ... %s", items[0].Slug, items[2].Slug)
	}
	if items[0].DisplayDate != "June 1, 2024" {
		t.Errorf("display date = %q, want June 1, 2024", items[0].DisplayDate)
	}
}

func TestList_CustomDateFormat(t *testing.T) {
	svc := newTestService(t, Config{DateFormat: "02.01.2006"})
	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if items[0].DisplayDate != "01.06.2024" {
		t.Errorf("display date = %q, want 01.06.2024", items[0].DisplayDate)
	}
}

func TestBySlug_RendersHTML(t *testing.T) {
	svc := newTestService(t, Config{})
	detail, err := svc.BySlug(context.Background(), "newest-post")
	if err != nil {
		t.Fatalf("BySlug: %v", err)
	}
	if detail.Title != "Newest Post" {
		t.Errorf("title = %q", detail.Title)
	}
	if !strings.Contains(detail.HTML, "<strong>markdown</strong>") {
		t.Errorf("html = %q", detail.HTML)
	}
	if !strings.Contains(detail.Body, "**markdown**") {
		t.Errorf("raw body should keep markdown: %q", detail.Body)
	}
}

func TestBySlug_NotFound(t *testing.T) {
	svc := newTestService(t, Config{})
	_, err := svc.BySlug(context.Background(), "missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBySlug_NilRendererOmitsHTML(t *testing.T) {
	src := testutil.NewMemSource(testDocs())
	loader := articles.NewLoader(src, []string{"one.md"}, articles.DefaultExcerptLength, testutil.TestLogger())
	lib := articles.NewLibrary(loader, testutil.TestLogger())
	svc := NewService(lib, nil, Config{})

	detail, err := svc.BySlug(context.Background(), "newest-post")
	if err != nil {
		t.Fatalf("BySlug: %v", err)
	}
	if detail.HTML != "" {
		t.Errorf("html = %q, want empty", detail.HTML)
	}
}

func TestArticles_PageSizeFromConfig(t *testing.T) {
	svc := newTestService(t, Config{PageSize: 2})
	page, err := svc.Articles(context.Background(), articles.SearchParams{})
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if len(page.Articles) != 2 || page.TotalPages != 2 || !page.HasNextPage {
		t.Errorf("page = %+v", page)
	}
}

func TestSearch_SetsQuery(t *testing.T) {
	svc := newTestService(t, Config{})
	page, err := svc.Search(context.Background(), "middle", articles.SearchParams{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.TotalCount != 1 || page.Articles[0].Slug != "middle-post" {
		t.Errorf("got %+v", page)
	}
}

func TestTags(t *testing.T) {
	svc := newTestService(t, Config{})
	tags, err := svc.Tags(context.Background())
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(tags) != 2 || tags[0].Tag != "go" || tags[0].Count != 2 {
		t.Errorf("tags = %v", tags)
	}
}

func TestNavigation(t *testing.T) {
	svc := newTestService(t, Config{})
	nav, err := svc.Navigation(context.Background(), "middle-post")
	if err != nil {
		t.Fatalf("Navigation: %v", err)
	}
	if nav.Previous == nil || nav.Previous.Slug != "newest-post" {
		t.Errorf("previous = %+v", nav.Previous)
	}
	if nav.Next == nil || nav.Next.Slug != "oldest-post" {
		t.Errorf("next = %+v", nav.Next)
	}

	empty, err := svc.Navigation(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("Navigation unknown: %v", err)
	}
	if empty.Previous != nil || empty.Next != nil {
		t.Errorf("unknown slug: %+v", empty)
	}
}

func TestRecent_DefaultLimit(t *testing.T) {
	svc := newTestService(t, Config{})
	items, err := svc.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	// Default limit is 5; only 3 articles exist.
	if len(items) != 3 {
		t.Errorf("len = %d, want 3", len(items))
	}

	items, err = svc.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(items) != 2 || items[0].Slug != "newest-post" {
		t.Errorf("items = %v", items)
	}
}

func TestReload_ReportsCount(t *testing.T) {
	src := testutil.NewMemSource(testDocs())
	loader := articles.NewLoader(src, []string{"one.md", "two.md", "three.md"},
		articles.DefaultExcerptLength, testutil.TestLogger())
	lib := articles.NewLibrary(loader, testutil.TestLogger())
	svc := NewService(lib, nil, Config{})

	n, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestReload_SourceFailure(t *testing.T) {
	src := testutil.NewMemSource(testDocs())
	loader := articles.NewLoader(src, []string{"one.md"}, articles.DefaultExcerptLength, testutil.TestLogger())
	lib := articles.NewLibrary(loader, testutil.TestLogger())
	svc := NewService(lib, nil, Config{})

	src.FailWith(fmt.Errorf("backend down: %w", apperr.ErrSourceUnavailable))
	if _, err := svc.Reload(context.Background()); !errors.Is(err, apperr.ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable", err)
	}
}
