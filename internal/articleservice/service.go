// Package articleservice exposes the article operations the HTTP API and
// the MCP server sit on top of.
package articleservice

import (
	"context"
	"fmt"

	"github.com/halvard/skald/internal/articles"
)

// DefaultDateFormat renders dates the way the site displays them.
const DefaultDateFormat = "January 2, 2006"

// DefaultRecentLimit caps Recent when the caller does not ask for a
// specific amount.
const DefaultRecentLimit = 5

// Renderer converts a Markdown body to HTML.
type Renderer interface {
	Render(body []byte) ([]byte, error)
}

// ArticleDetail is the full representation of an article, including the
// rendered body when a renderer is configured.
type ArticleDetail struct {
	articles.Article
	DisplayDate string `json:"display_date"`
	HTML        string `json:"html,omitempty"`
}

// ArticleSummary is a list item plus the formatted publication date.
type ArticleSummary struct {
	articles.ListItem
	DisplayDate string `json:"display_date"`
}

// ArticlePage is one page of summaries with pagination state.
type ArticlePage struct {
	Articles        []ArticleSummary `json:"articles"`
	TotalCount      int              `json:"total_count"`
	Page            int              `json:"page"`
	TotalPages      int              `json:"total_pages"`
	HasNextPage     bool             `json:"has_next_page"`
	HasPreviousPage bool             `json:"has_previous_page"`
}

// Config carries the display and paging settings of the service.
type Config struct {
	PageSize   int
	DateFormat string
}

// Service coordinates the article library, query engine and renderer.
type Service struct {
	library    *articles.Library
	renderer   Renderer
	pageSize   int
	dateFormat string
}

// NewService creates an article service. The renderer may be nil, in which
// case details carry no HTML.
func NewService(library *articles.Library, renderer Renderer, cfg Config) *Service {
	if cfg.PageSize < 1 {
		cfg.PageSize = articles.DefaultPageSize
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = DefaultDateFormat
	}
	return &Service{
		library:    library,
		renderer:   renderer,
		pageSize:   cfg.PageSize,
		dateFormat: cfg.DateFormat,
	}
}

// Articles filters, orders and pages the index. Callers are expected to
// have validated params; unknown sort keys fall back to the date order.
func (s *Service) Articles(ctx context.Context, params articles.SearchParams) (*ArticlePage, error) {
	all, err := s.library.All(ctx)
	if err != nil {
		return nil, err
	}
	return s.page(articles.SearchArticles(all, params, s.pageSize)), nil
}

// Search is Articles with the query set; it exists so that callers
// mirroring the site's search box do not build params themselves.
func (s *Service) Search(ctx context.Context, query string, params articles.SearchParams) (*ArticlePage, error) {
	params.Query = query
	return s.Articles(ctx, params)
}

// List returns every article as a summary in date-descending order.
func (s *Service) List(ctx context.Context) ([]ArticleSummary, error) {
	all, err := s.library.All(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]ArticleSummary, 0, len(all))
	for _, a := range all {
		items = append(items, s.summary(a.ListItem()))
	}
	return items, nil
}

// BySlug returns the full article, rendering the body when a renderer is
// configured.
func (s *Service) BySlug(ctx context.Context, slug string) (*ArticleDetail, error) {
	a, err := s.library.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	detail := &ArticleDetail{
		Article:     *a,
		DisplayDate: a.Date.Format(s.dateFormat),
	}
	if s.renderer != nil {
		html, err := s.renderer.Render([]byte(a.Body))
		if err != nil {
			return nil, fmt.Errorf("articleservice: render %s: %w", slug, err)
		}
		detail.HTML = string(html)
	}
	return detail, nil
}

// Tags returns the aggregated tag counts, most used first.
func (s *Service) Tags(ctx context.Context) ([]articles.TagCount, error) {
	all, err := s.library.All(ctx)
	if err != nil {
		return nil, err
	}
	return articles.TagCounts(all), nil
}

// Navigation returns the chronological neighbours of an article. An
// unknown slug yields empty navigation rather than an error.
func (s *Service) Navigation(ctx context.Context, slug string) (articles.Navigation, error) {
	all, err := s.library.All(ctx)
	if err != nil {
		return articles.Navigation{}, err
	}
	return articles.NavigationFor(all, slug), nil
}

// Recent returns the newest articles. A non-positive limit falls back to
// DefaultRecentLimit.
func (s *Service) Recent(ctx context.Context, limit int) ([]ArticleSummary, error) {
	if limit < 1 {
		limit = DefaultRecentLimit
	}
	all, err := s.library.All(ctx)
	if err != nil {
		return nil, err
	}
	items := articles.Recent(all, limit)
	out := make([]ArticleSummary, 0, len(items))
	for _, it := range items {
		out = append(out, s.summary(it))
	}
	return out, nil
}

// Reload rebuilds the index from the source and reports how many articles
// it now holds.
func (s *Service) Reload(ctx context.Context) (int, error) {
	if err := s.library.Reload(ctx); err != nil {
		return 0, err
	}
	return s.library.Len(ctx)
}

func (s *Service) summary(it articles.ListItem) ArticleSummary {
	return ArticleSummary{
		ListItem:    it,
		DisplayDate: it.Date.Format(s.dateFormat),
	}
}

func (s *Service) page(res *articles.SearchResult) *ArticlePage {
	items := make([]ArticleSummary, 0, len(res.Articles))
	for _, it := range res.Articles {
		items = append(items, s.summary(it))
	}
	return &ArticlePage{
		Articles:        items,
		TotalCount:      res.TotalCount,
		Page:            res.Page,
		TotalPages:      res.TotalPages,
		HasNextPage:     res.HasNextPage,
		HasPreviousPage: res.HasPreviousPage,
	}
}
