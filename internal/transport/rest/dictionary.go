package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"

	"github.com/heartmarshall/ruendict/internal/domain"
	"github.com/heartmarshall/ruendict/internal/markup"
	"github.com/heartmarshall/ruendict/internal/render"
	"github.com/heartmarshall/ruendict/internal/service/search"
)

// Article formats accepted by /api/article.
const (
	FormatJSON = "json"
	FormatHTML = "html"
	FormatText = "text"
)

type searcher interface {
	Lookup(ctx context.Context, query string) search.Result
	Find(ctx context.Context, table domain.Table, word string) (domain.Entry, error)
}

type articleResolver interface {
	Resolve(ctx context.Context, e domain.Entry) domain.ResolvedArticle
}

type documentRenderer interface {
	Render(markup string) render.Document
}

// DictionaryHandler serves the search and article endpoints.
type DictionaryHandler struct {
	search   searcher
	articles articleResolver
	renderer documentRenderer
	minifier *minify.M
	log      *slog.Logger
}

// NewDictionaryHandler creates a DictionaryHandler.
func NewDictionaryHandler(s searcher, a articleResolver, r documentRenderer, logger *slog.Logger) *DictionaryHandler {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)

	return &DictionaryHandler{
		search:   s,
		articles: a,
		renderer: r,
		minifier: m,
		log:      logger.With("handler", "dictionary"),
	}
}

// EntryResponse is one result row.
type EntryResponse struct {
	Word       string   `json:"word"`
	Display    string   `json:"display"`
	Gloss      string   `json:"gloss"`
	Table      string   `json:"table"`
	Stars      int      `json:"stars"`
	Popularity *float64 `json:"popularity,omitempty"`
}

// SearchResponse is the body of /api/search.
type SearchResponse struct {
	Query      string          `json:"query"`
	Normalized string          `json:"normalized"`
	Table      string          `json:"table"`
	Variant    string          `json:"variant,omitempty"`
	Entries    []EntryResponse `json:"entries"`
}

// ArticleResponse is the JSON body of /api/article.
type ArticleResponse struct {
	Entry    EntryResponse   `json:"entry"`
	Document render.Document `json:"document"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ToEntryResponse converts a domain entry to its JSON form.
func ToEntryResponse(e domain.Entry) EntryResponse {
	return EntryResponse{
		Word:       e.Word,
		Display:    e.DisplayForm(),
		Gloss:      e.FormattedGloss(),
		Table:      e.Table.String(),
		Stars:      e.Stars(),
		Popularity: e.Popularity,
	}
}

// Search handles GET /api/search?q=. An empty q lists the most popular
// English headwords.
func (h *DictionaryHandler) Search(w http.ResponseWriter, r *http.Request) {
	res := h.search.Lookup(r.Context(), r.URL.Query().Get("q"))

	entries := make([]EntryResponse, 0, len(res.Entries))
	for _, e := range res.Entries {
		entries = append(entries, ToEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		Query:      res.Query,
		Normalized: res.Normalized,
		Table:      res.Table.String(),
		Variant:    res.Variant,
		Entries:    entries,
	})
}

// Article handles GET /api/article?word=&table=&format=. The table defaults
// to ruEn for Cyrillic words and enRu otherwise.
func (h *DictionaryHandler) Article(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	word := q.Get("word")

	table, err := tableParam(q.Get("table"), word)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	e, err := h.search.Find(ctx, table, word)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	a := h.articles.Resolve(ctx, e)
	doc := markup.FormatAsHTML(a.Body, a.Transcription)

	switch format := q.Get("format"); format {
	case "", FormatJSON:
		writeJSON(w, http.StatusOK, ArticleResponse{
			Entry:    ToEntryResponse(e),
			Document: h.renderer.Render(doc),
		})
	case FormatHTML:
		minified, err := h.minifier.String("text/html", doc)
		if err != nil {
			h.log.WarnContext(ctx, "minify failed", slog.String("word", e.Word), slog.String("error", err.Error()))
			minified = doc
		}
		writeBody(w, "text/html; charset=utf-8", minified)
	case FormatText:
		writeBody(w, "text/plain; charset=utf-8", render.PlainText(doc))
	default:
		h.writeError(w, r, domain.NewValidationError("format", "must be json, html or text"))
	}
}

func tableParam(raw, word string) (domain.Table, error) {
	if raw != "" {
		return domain.ParseTable(raw)
	}
	return domain.TableFor(word), nil
}

func (h *DictionaryHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnknownTable):
		status = http.StatusBadRequest
	default:
		h.log.ErrorContext(r.Context(), "request failed", slog.String("error", err.Error()))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeBody(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body)) //nolint:errcheck
}
