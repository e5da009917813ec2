package articles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/halvard/skald/internal/apperr"
	"github.com/halvard/skald/internal/checksum"
	"github.com/halvard/skald/internal/source"
)

// fetchConcurrency bounds how many documents are fetched in parallel
// during one load.
const fetchConcurrency = 8

// dateLayouts are the frontmatter date formats accepted, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Loader turns the configured documents of a source into articles.
type Loader struct {
	src        source.Source
	ids        []string
	excerptLen int
	logger     *slog.Logger
}

// NewLoader creates a loader over the given source and document ids. The
// order of ids is the tiebreak for articles sharing a publication date.
func NewLoader(src source.Source, ids []string, excerptLen int, logger *slog.Logger) *Loader {
	if excerptLen < 1 {
		excerptLen = DefaultExcerptLength
	}
	return &Loader{src: src, ids: ids, excerptLen: excerptLen, logger: logger}
}

type fetched struct {
	data []byte
	ok   bool
}

// Load fetches every configured document, builds articles from the ones
// that parse and validate, and returns them sorted by date descending.
// Missing documents and malformed documents are skipped with a warning;
// any other fetch failure aborts the whole load.
func (l *Loader) Load(ctx context.Context) ([]*Article, error) {
	slots := make([]fetched, len(l.ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, id := range l.ids {
		g.Go(func() error {
			data, err := l.src.Fetch(gctx, id)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					l.logger.Warn("document missing, skipping", slog.String("id", id))
					return nil
				}
				return fmt.Errorf("fetch %s: %w", id, err)
			}
			slots[i] = fetched{data: data, ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("articles: load: %w", err)
	}

	arts := make([]*Article, 0, len(l.ids))
	seen := make(map[string]string, len(l.ids)) // slug -> source id
	for i, id := range l.ids {
		if !slots[i].ok {
			continue
		}
		art, err := l.build(id, slots[i].data)
		if err != nil {
			l.logger.Warn("skipping document",
				slog.String("id", id),
				slog.String("error", err.Error()))
			continue
		}
		if first, dup := seen[art.Slug]; dup {
			l.logger.Warn("duplicate slug, skipping document",
				slog.String("slug", art.Slug),
				slog.String("id", id),
				slog.String("kept", first))
			continue
		}
		seen[art.Slug] = id
		arts = append(arts, art)
	}

	// Date descending; the configured document order breaks ties.
	sort.SliceStable(arts, func(i, j int) bool {
		return arts[i].Date.After(arts[j].Date)
	})
	return arts, nil
}

// build parses and validates one raw document.
func (l *Loader) build(id string, raw []byte) (*Article, error) {
	fields, body, err := ParseDocument(raw)
	if err != nil {
		return nil, err
	}
	meta, err := metadataFromFields(fields)
	if err != nil {
		return nil, err
	}
	if meta.Slug == "" {
		meta.Slug = Slugify(meta.Title)
	}
	if meta.Slug == "" {
		return nil, errors.New("title yields an empty slug")
	}

	bodyText := string(body)
	return &Article{
		Metadata:    meta,
		Body:        bodyText,
		Excerpt:     Excerpt(bodyText, l.excerptLen),
		ReadingTime: ReadingTime(bodyText),
		SourceID:    id,
		PublicPath:  publicPathPrefix + meta.Slug,
		Checksum:    checksum.Sum(raw),
	}, nil
}

// metadataFromFields converts the loosely typed frontmatter map into
// Metadata and validates the required fields.
func metadataFromFields(fields map[string]any) (Metadata, error) {
	meta := Metadata{
		Title:   stringField(fields, "title"),
		Summary: stringField(fields, "summary"),
		Author:  stringField(fields, "author"),
		Slug:    strings.TrimSpace(stringField(fields, "slug")),
		Tags:    stringSliceField(fields, "tags"),
	}
	date, err := dateField(fields, "date")
	if err != nil {
		return Metadata{}, err
	}
	meta.Date = date
	if err := meta.Validate(); err != nil {
		return Metadata{}, fmt.Errorf("invalid frontmatter: %w", err)
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	return meta, nil
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return strings.TrimSpace(s)
}

// stringSliceField returns the string items of a YAML sequence. Missing
// keys and non-sequence values yield nil; non-string items are dropped.
func stringSliceField(fields map[string]any, key string) []string {
	items, ok := fields[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// dateField reads the publication date, accepting both the native
// timestamps the YAML decoder produces for unquoted dates and quoted
// strings in one of dateLayouts.
func dateField(fields map[string]any, key string) (time.Time, error) {
	v, ok := fields[key]
	if !ok {
		return time.Time{}, nil // Validate reports the missing field
	}
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable date %q", d)
	default:
		return time.Time{}, fmt.Errorf("invalid date value of type %T", v)
	}
}
