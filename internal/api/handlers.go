package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/skald/internal/apperr"
	"github.com/halvard/skald/internal/articles"
	"github.com/halvard/skald/internal/articleservice"
	"github.com/halvard/skald/internal/checksum"
)

// Handler holds API route handlers.
type Handler struct {
	svc *articleservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *articleservice.Service) *Handler {
	return &Handler{svc: svc}
}

// searchParams builds query parameters from the request. Page defaults to
// the first page; a non-numeric page is treated as absent.
func searchParams(r *http.Request) articles.SearchParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	return articles.SearchParams{
		Query:     q.Get("q"),
		Tag:       q.Get("tag"),
		SortBy:    q.Get("sort"),
		SortOrder: q.Get("order"),
		Page:      page,
	}
}

// ListArticles handles GET /api/articles.
//
//	@Summary		List articles with optional filtering, sorting and paging
//	@Tags			articles
//	@Produce		json
//	@Param			q		query		string	false	"Full-text filter"
//	@Param			tag		query		string	false	"Filter by exact tag"
//	@Param			sort	query		string	false	"Sort field"	Enums(date, title)
//	@Param			order	query		string	false	"Sort order"	Enums(asc, desc)
//	@Param			page	query		int		false	"Page number (1-based)"
//	@Success		200		{object}	ArticlePage
//	@Failure		400		{object}	errResponse
//	@Router			/articles [get]
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	params := searchParams(r)
	if err := params.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	page, err := h.svc.Articles(r.Context(), params)
	if err != nil {
		slog.Error("list articles failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// RecentArticles handles GET /api/articles/recent.
//
//	@Summary		Get the newest articles
//	@Tags			articles
//	@Produce		json
//	@Param			limit	query		int	false	"Max articles (default 5)"
//	@Success		200		{object}	RecentResponse
//	@Router			/articles/recent [get]
func (h *Handler) RecentArticles(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.svc.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("recent articles failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"articles": items,
	})
}

// GetArticle handles GET /api/articles/{slug}.
//
//	@Summary		Get a single article by slug
//	@Tags			articles
//	@Produce		json
//	@Param			slug	path		string	true	"Article slug"
//	@Param			If-None-Match	header	string	false	"Previously returned entity tag"
//	@Success		200		{object}	ArticleDetail
//	@Success		304		"Not modified"
//	@Failure		404		{object}	errResponse
//	@Router			/articles/{slug} [get]
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	detail, err := h.svc.BySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get article failed", slog.String("slug", slug), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	w.Header().Set("ETag", checksum.Quote(detail.Checksum))
	// Strip surrounding quotes if present (standard ETag format).
	if match := strings.Trim(r.Header.Get("If-None-Match"), `"`); match == detail.Checksum {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// ArticleNavigation handles GET /api/articles/{slug}/navigation.
//
//	@Summary		Get the chronological neighbours of an article
//	@Tags			articles
//	@Produce		json
//	@Param			slug	path		string	true	"Article slug"
//	@Success		200		{object}	NavigationResponse
//	@Router			/articles/{slug}/navigation [get]
func (h *Handler) ArticleNavigation(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	nav, err := h.svc.Navigation(r.Context(), slug)
	if err != nil {
		slog.Error("navigation failed", slog.String("slug", slug), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, nav)
}

// ListTags handles GET /api/tags.
//
//	@Summary		List all tags with article counts
//	@Tags			tags
//	@Produce		json
//	@Success		200	{object}	TagsResponse
//	@Router			/tags [get]
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.Tags(r.Context())
	if err != nil {
		slog.Error("list tags failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tags": tags,
	})
}

// Reload handles POST /api/reload.
//
//	@Summary		Rebuild the article index from the content source
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	ReloadResponse
//	@Failure		502	{object}	errResponse
//	@Router			/reload [post]
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Reload(r.Context())
	if err != nil {
		if errors.Is(err, apperr.ErrSourceUnavailable) {
			slog.Error("reload failed, source unavailable", slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadGateway, errorBody("content source unavailable"))
		} else {
			slog.Error("reload failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"articles": count,
	})
}
