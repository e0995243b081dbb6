// Package mcp exposes dictionary lookups as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/heartmarshall/ruendict/internal/domain"
	"github.com/heartmarshall/ruendict/internal/markup"
	"github.com/heartmarshall/ruendict/internal/render"
	"github.com/heartmarshall/ruendict/internal/service/article"
	"github.com/heartmarshall/ruendict/internal/service/search"
)

// Tool names.
const (
	ToolSearch  = "search"
	ToolArticle = "article"
)

// maxListed bounds the rows listed by the search tool.
const maxListed = 25

type searcher interface {
	Lookup(ctx context.Context, query string) search.Result
	Find(ctx context.Context, table domain.Table, word string) (domain.Entry, error)
}

type articleResolver interface {
	Resolve(ctx context.Context, e domain.Entry) domain.ResolvedArticle
	NewLoader() *article.Loader
}

// Handler implements the tool calls.
type Handler struct {
	search   searcher
	articles articleResolver
	log      *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(s searcher, a articleResolver, logger *slog.Logger) *Handler {
	return &Handler{search: s, articles: a, log: logger.With("handler", "mcp")}
}

// NewServer registers the dictionary tools on a new MCP server.
func NewServer(h *Handler, version string) *server.MCPServer {
	s := server.NewMCPServer("ruendict", version, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool(ToolSearch,
		mcp.WithDescription("Search the English-Russian dictionary. Cyrillic and transliterated Russian queries search Russian headwords; anything else searches English headwords."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Word or word prefix")),
	), h.Search)

	s.AddTool(mcp.NewTool(ToolArticle,
		mcp.WithDescription("Show the full dictionary article of a headword as plain text."),
		mcp.WithString("word", mcp.Required(), mcp.Description("Exact headword")),
		mcp.WithString("table", mcp.Description("enRu or ruEn; inferred from the script when omitted")),
	), h.Article)

	return s
}

// Search lists the entries for a query, one per line.
func (h *Handler) Search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := h.search.Lookup(ctx, query)
	if len(res.Entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No entries for %q.", query)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s results", res.Table)
	if res.Variant != "" {
		fmt.Fprintf(&b, " (read as %s)", res.Variant)
	}
	b.WriteString(":\n")
	for i, e := range res.Entries {
		if i == maxListed {
			fmt.Fprintf(&b, "... and %d more\n", len(res.Entries)-maxListed)
			break
		}
		fmt.Fprintf(&b, "- %s [%s]", e.DisplayForm(), strings.Repeat("*", e.Stars()))
		if gloss := strings.TrimSpace(e.FormattedGloss()); gloss != "" {
			fmt.Fprintf(&b, ": %s", gloss)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// Article returns the plain-text article of a headword.
func (h *Handler) Article(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word, err := req.RequireString("word")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	table := domain.TableEnRu
	if raw := req.GetString("table", ""); raw != "" {
		if table, err = domain.ParseTable(raw); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	} else if domain.ContainsCyrillic(word) {
		table = domain.TableRuEn
	}

	e, err := h.search.Find(ctx, table, word)
	if errors.Is(err, domain.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("%q is not in the %s dictionary", word, table)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ctx = article.WithLoader(ctx, h.articles.NewLoader())
	a := h.articles.Resolve(ctx, e)
	text := render.PlainText(markup.FormatAsHTML(a.Body, a.Transcription))
	if text == "" {
		text = "(empty article)"
	}

	h.log.DebugContext(ctx, "article served", slog.String("word", e.Word), slog.String("table", table.String()))
	return mcp.NewToolResultText(e.DisplayForm() + "\n" + text), nil
}
