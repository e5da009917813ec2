package api

import (
	"github.com/halvard/skald/internal/articles"
	"github.com/halvard/skald/internal/articleservice"
)

// ArticleDetail is the full article response type (aliased from the domain layer).
type ArticleDetail = articleservice.ArticleDetail

// ArticleSummary is a lightweight item in a list response (aliased from the domain layer).
type ArticleSummary = articleservice.ArticleSummary

// ArticlePage is one page of article summaries with pagination state.
type ArticlePage = articleservice.ArticlePage

// NavigationResponse points at the chronological neighbours of an article.
type NavigationResponse = articles.Navigation

// TagsResponse wraps the aggregated tag counts.
type TagsResponse struct {
	Tags []articles.TagCount `json:"tags" validate:"required"`
}

// RecentResponse wraps the newest articles.
type RecentResponse struct {
	Articles []ArticleSummary `json:"articles" validate:"required"`
}

// ReloadResponse reports the outcome of an index rebuild.
type ReloadResponse struct {
	Status   string `json:"status" example:"ok" validate:"required"`
	Articles int    `json:"articles" example:"12" validate:"required"`
}
