package articles

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/halvard/skald/internal/apperr"
)

// snapshot is one immutable generation of the index. Readers share it
// without locking; a load swaps in a fresh one.
type snapshot struct {
	articles []*Article // date descending
	bySlug   map[string]*Article
}

func newSnapshot(arts []*Article) *snapshot {
	s := &snapshot{
		articles: arts,
		bySlug:   make(map[string]*Article, len(arts)),
	}
	for _, a := range arts {
		s.bySlug[a.Slug] = a
	}
	return s
}

// Library is the in-memory article index. The first access populates it
// from the loader; concurrent first accesses share a single load.
type Library struct {
	loader  *Loader
	logger  *slog.Logger
	group   singleflight.Group
	current atomic.Pointer[snapshot]
}

// NewLibrary creates an empty, not yet loaded library.
func NewLibrary(loader *Loader, logger *slog.Logger) *Library {
	return &Library{loader: loader, logger: logger}
}

// All returns every article in date-descending order. The returned slice
// is the caller's to reorder; the articles themselves are shared and must
// not be mutated.
func (l *Library) All(ctx context.Context) ([]*Article, error) {
	snap, err := l.ensure(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Article, len(snap.articles))
	copy(out, snap.articles)
	return out, nil
}

// FindBySlug returns the article with the given slug or an error wrapping
// apperr.ErrNotFound.
func (l *Library) FindBySlug(ctx context.Context, slug string) (*Article, error) {
	snap, err := l.ensure(ctx)
	if err != nil {
		return nil, err
	}
	a, ok := snap.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("articles: %q: %w", slug, apperr.ErrNotFound)
	}
	return a, nil
}

// Len reports how many articles the current snapshot holds, loading it
// first if needed.
func (l *Library) Len(ctx context.Context) (int, error) {
	snap, err := l.ensure(ctx)
	if err != nil {
		return 0, err
	}
	return len(snap.articles), nil
}

// Reload discards the current snapshot and rebuilds it from the source.
// Readers keep seeing the old snapshot until the new one is ready; a
// failed reload leaves the library empty until the next Reload.
func (l *Library) Reload(ctx context.Context) error {
	_, err := l.load(ctx, true)
	return err
}

// ensure returns the current snapshot, building one on first use.
func (l *Library) ensure(ctx context.Context) (*snapshot, error) {
	if snap := l.current.Load(); snap != nil {
		return snap, nil
	}
	return l.load(ctx, false)
}

// load runs at most one build at a time; concurrent callers share the
// in-flight result. The build is detached from the caller's cancellation
// because its outcome is shared state.
func (l *Library) load(ctx context.Context, force bool) (*snapshot, error) {
	v, err, _ := l.group.Do("load", func() (any, error) {
		if !force {
			// Another caller may have finished a load between our nil
			// check and entering the flight.
			if snap := l.current.Load(); snap != nil {
				return snap, nil
			}
		}
		arts, err := l.loader.Load(context.WithoutCancel(ctx))
		if err != nil {
			l.current.Store(newSnapshot(nil))
			return nil, err
		}
		snap := newSnapshot(arts)
		l.current.Store(snap)
		l.logger.Info("articles loaded", slog.Int("count", len(arts)))
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*snapshot), nil
}
