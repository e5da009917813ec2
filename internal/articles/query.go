package articles

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SearchArticles filters, orders and pages the given date-descending
// article list. The list is not modified; sorting happens on a copy the
// caller already owns (Library.All hands out fresh slices).
func SearchArticles(list []*Article, params SearchParams, pageSize int) *SearchResult {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	query := strings.ToLower(strings.TrimSpace(params.Query))
	matched := make([]*Article, 0, len(list))
	for _, a := range list {
		if query != "" && !matchesQuery(a, query) {
			continue
		}
		if params.Tag != "" && !hasTag(a, params.Tag) {
			continue
		}
		matched = append(matched, a)
	}

	sortArticles(matched, params.SortBy, params.SortOrder)

	total := len(matched)
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	items := []ListItem{}
	if start := (page - 1) * pageSize; start < total {
		end := min(start+pageSize, total)
		items = make([]ListItem, 0, end-start)
		for _, a := range matched[start:end] {
			items = append(items, a.ListItem())
		}
	}

	return &SearchResult{
		Articles:        items,
		TotalCount:      total,
		Page:            page,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// matchesQuery reports a case-insensitive substring match against title,
// summary, tags or excerpt. The query must already be lowercased.
func matchesQuery(a *Article, query string) bool {
	if strings.Contains(strings.ToLower(a.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(a.Summary), query) {
		return true
	}
	for _, t := range a.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(a.Excerpt), query)
}

// hasTag reports an exact, case-sensitive tag match.
func hasTag(a *Article, tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// sortArticles orders the slice in place. Unknown keys fall back to date;
// titles compare with a locale-aware collator so accented letters sort
// next to their base letters. The sort is stable, so equal elements keep
// the incoming date-descending order.
func sortArticles(list []*Article, sortBy, order string) {
	var cmp func(a, b *Article) int
	switch sortBy {
	case SortByTitle:
		coll := collate.New(language.Und) // collators are not safe for concurrent use
		cmp = func(a, b *Article) int {
			return coll.CompareString(a.Title, b.Title)
		}
	default:
		cmp = func(a, b *Article) int {
			switch {
			case a.Date.Before(b.Date):
				return -1
			case a.Date.After(b.Date):
				return 1
			}
			return 0
		}
	}

	asc := order == OrderAsc
	sort.SliceStable(list, func(i, j int) bool {
		if asc {
			return cmp(list[i], list[j]) < 0
		}
		return cmp(list[i], list[j]) > 0
	})
}

// TagCounts aggregates tags across the given articles. Each article counts
// a tag once even when it repeats it. The result is ordered by count
// descending; ties keep the order in which the tags were first seen.
func TagCounts(list []*Article) []TagCount {
	counts := make(map[string]int)
	var order []string
	for _, a := range list {
		seen := make(map[string]struct{}, len(a.Tags))
		for _, t := range a.Tags {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			if _, known := counts[t]; !known {
				order = append(order, t)
			}
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(order))
	for _, t := range order {
		out = append(out, TagCount{Tag: t, Count: counts[t]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// NavigationFor returns the chronological neighbours of the article with
// the given slug within the date-descending list. An unknown slug yields
// empty navigation.
func NavigationFor(list []*Article, slug string) Navigation {
	for i, a := range list {
		if a.Slug != slug {
			continue
		}
		var nav Navigation
		if i > 0 {
			prev := list[i-1]
			nav.Previous = &NavRef{Title: prev.Title, Slug: prev.Slug}
		}
		if i+1 < len(list) {
			next := list[i+1]
			nav.Next = &NavRef{Title: next.Title, Slug: next.Slug}
		}
		return nav
	}
	return Navigation{}
}

// Recent returns the newest articles as list items, at most limit of them.
func Recent(list []*Article, limit int) []ListItem {
	if limit < 0 {
		limit = 0
	}
	if limit > len(list) {
		limit = len(list)
	}
	out := make([]ListItem, 0, limit)
	for _, a := range list[:limit] {
		out = append(out, a.ListItem())
	}
	return out
}
