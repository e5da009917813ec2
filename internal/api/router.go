package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/halvard/skald/internal/articleservice"
)

// NewRouter creates a chi router with all article routes mounted.
// assets, if non-nil, is mounted at GET /assets/{filename}; it stays nil
// when documents come from a remote host that serves its own assets.
func NewRouter(svc *articleservice.Service, assets *AssetHandler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()

	// Article listing, search and detail.
	r.Get("/articles", h.ListArticles)
	r.Get("/articles/recent", h.RecentArticles)
	r.Get("/articles/{slug}", h.GetArticle)
	r.Get("/articles/{slug}/navigation", h.ArticleNavigation)

	// Tag aggregation.
	r.Get("/tags", h.ListTags)

	// Index reload.
	r.Post("/reload", h.Reload)

	// Static article assets (local content directory only).
	if assets != nil {
		r.Get("/assets/{filename}", assets.ServeFile)
	}

	return r
}
