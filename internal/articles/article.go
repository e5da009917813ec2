// Package articles implements the content engine: frontmatter parsing,
// derived fields, loading, the in-memory index and the query operations
// over it.
package articles

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Defaults applied when configuration leaves the values unset.
const (
	DefaultPageSize      = 10
	DefaultExcerptLength = 200
)

// Sort keys and orders accepted by SearchArticles.
const (
	SortByDate  = "date"
	SortByTitle = "title"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// publicPathPrefix is the site route under which articles are served.
const publicPathPrefix = "/articles/"

// Metadata is the validated frontmatter of an article document.
type Metadata struct {
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
	Tags    []string  `json:"tags"`
	Summary string    `json:"summary,omitempty"`
	Author  string    `json:"author"`
	Slug    string    `json:"slug"`
}

// Validate reports whether the required frontmatter fields are present.
func (m Metadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Date, validation.Required),
		validation.Field(&m.Author, validation.Required),
	)
}

// Article is one loaded document together with its derived fields.
type Article struct {
	Metadata
	Body        string `json:"body"`
	Excerpt     string `json:"excerpt"`
	ReadingTime int    `json:"reading_time"`
	SourceID    string `json:"source_id"`
	PublicPath  string `json:"public_path"`
	Checksum    string `json:"checksum"`
}

// ListItem is the lightweight representation returned by list and search
// operations. It carries everything a listing page needs except the body.
type ListItem struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Tags        []string  `json:"tags"`
	Summary     string    `json:"summary,omitempty"`
	Author      string    `json:"author"`
	Excerpt     string    `json:"excerpt"`
	ReadingTime int       `json:"reading_time"`
	PublicPath  string    `json:"public_path"`
}

// ListItem returns the listing view of the article.
func (a *Article) ListItem() ListItem {
	return ListItem{
		Slug:        a.Slug,
		Title:       a.Title,
		Date:        a.Date,
		Tags:        a.Tags,
		Summary:     a.Summary,
		Author:      a.Author,
		Excerpt:     a.Excerpt,
		ReadingTime: a.ReadingTime,
		PublicPath:  a.PublicPath,
	}
}

// TagCount is one aggregated tag with the number of articles carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// NavRef points at a neighbouring article in the date-descending order.
type NavRef struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Navigation holds the chronological neighbours of an article. Previous is
// the newer article, Next the older one; either may be nil at the ends.
type Navigation struct {
	Previous *NavRef `json:"previous"`
	Next     *NavRef `json:"next"`
}

// SearchParams selects, orders and pages articles. Zero values mean: no
// query filter, no tag filter, sort by date, descending, first page.
type SearchParams struct {
	Query     string `json:"query"`
	Tag       string `json:"tag"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
	Page      int    `json:"page"`
}

// Validate rejects unknown sort keys and orders. Empty values are allowed
// and fall back to the defaults.
func (p SearchParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.SortBy, validation.In(SortByDate, SortByTitle)),
		validation.Field(&p.SortOrder, validation.In(OrderAsc, OrderDesc)),
		validation.Field(&p.Page, validation.Min(0)),
	)
}

// SearchResult is one page of matching articles plus pagination state.
type SearchResult struct {
	Articles        []ListItem `json:"articles"`
	TotalCount      int        `json:"total_count"`
	Page            int        `json:"page"`
	TotalPages      int        `json:"total_pages"`
	HasNextPage     bool       `json:"has_next_page"`
	HasPreviousPage bool       `json:"has_previous_page"`
}
