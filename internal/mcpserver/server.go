// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes read-only article tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/halvard/skald/internal/apperr"
	"github.com/halvard/skald/internal/articles"
	"github.com/halvard/skald/internal/articleservice"
)

// Server wraps the MCP server with the article tools.
type Server struct {
	mcp *server.MCPServer
	svc *articleservice.Service
}

// New creates a new MCP server with all article tools registered.
func New(svc *articleservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Skald",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_articles",
		mcp.WithDescription("Search articles by text query and/or tag. "+
			"The query matches titles, summaries, tags and excerpts."),
		mcp.WithString("query", mcp.Description("Full-text query (optional)")),
		mcp.WithString("tag", mcp.Description("Exact tag to filter by (optional)")),
	), s.searchArticles)

	s.mcp.AddTool(mcp.NewTool("get_article",
		mcp.WithDescription("Read one article by slug, including the full Markdown body."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Article slug (e.g. my-first-post)")),
	), s.getArticle)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List all tags with the number of articles carrying each."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("article_navigation",
		mcp.WithDescription("Find the chronological neighbours (previous and next) of an article."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Article slug to navigate from")),
	), s.articleNavigation)

	s.mcp.AddTool(mcp.NewTool("recent_articles",
		mcp.WithDescription("List the newest articles."),
		mcp.WithString("limit", mcp.Description("Maximum number of articles (default 5)")),
	), s.recentArticles)

	// Resource: article document format.
	s.mcp.AddResource(
		mcp.NewResource("skald://document-format", "Article Document Format",
			mcp.WithResourceDescription("Canonical Markdown document format articles are authored in."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDocumentFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchArticles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := articles.SearchParams{}
	if q, err := req.RequireString("query"); err == nil {
		params.Query = q
	}
	if tag, err := req.RequireString("tag"); err == nil {
		params.Tag = tag
	}

	page, err := s.svc.Articles(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(page, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.BySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.svc.Tags(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(tags, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) articleNavigation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	nav, err := s.svc.Navigation(ctx, slug)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(nav, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) recentArticles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := 0
	if raw, err := req.RequireString("limit"); err == nil {
		if n, convErr := strconv.Atoi(raw); convErr == nil {
			limit = n
		}
	}

	items, err := s.svc.Recent(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDocumentFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "skald://document-format",
			MIMEType: "text/markdown",
			Text:     DocumentFormatContract,
		},
	}, nil
}
