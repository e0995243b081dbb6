package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/ruendict/internal/adapter/sqlite/sqlitetest"
	"github.com/heartmarshall/ruendict/internal/domain"
	"github.com/heartmarshall/ruendict/internal/render"
	"github.com/heartmarshall/ruendict/internal/service/article"
	"github.com/heartmarshall/ruendict/internal/service/search"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := sqlitetest.NewStore(t,
		sqlitetest.Row{Table: domain.TableEnRu, Word: "tree", Translation: "<P><abbr>n</abbr> дерево</P>", Transcription: "tri:", Popularity: sqlitetest.Pop(120)},
		sqlitetest.Row{Table: domain.TableEnRu, Word: "trek", Translation: "<P>поход</P>", Popularity: sqlitetest.Pop(2)},
		sqlitetest.Row{Table: domain.TableRuEn, Word: "дерево", Translation: "tree"},
	)
	dict := NewDictionaryHandler(
		search.NewService(log, store, 0),
		article.NewResolver(log, store, article.Config{}),
		render.NewRenderer(0),
		log,
	)
	return NewRouter(NewHealthHandler(store, "sqlite", "test"), dict)
}

func get(t *testing.T, h http.Handler, path string, params url.Values) *httptest.ResponseRecorder {
	t.Helper()
	target := path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSearch(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	rec := get(t, h, "/api/search", url.Values{"q": {"TR"}})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "TR", resp.Query)
	assert.Equal(t, "tr", resp.Normalized)
	assert.Equal(t, "enRu", resp.Table)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "tree", resp.Entries[0].Word)
	assert.Equal(t, 3, resp.Entries[0].Stars)
	assert.Equal(t, "n дерево", resp.Entries[0].Gloss)
}

func TestSearch_EmptyResultIsArray(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	rec := get(t, h, "/api/search", url.Values{"q": {"zzz"}})

	assert.JSONEq(t, `{"query":"zzz","normalized":"zzz","table":"enRu","entries":[]}`, rec.Body.String())
}

func TestArticle_JSON(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	rec := get(t, h, "/api/article", url.Values{"word": {"tree"}})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ArticleResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "tree", resp.Entry.Word)
	assert.Equal(t, "tri:", resp.Document.Transcription)
	require.Len(t, resp.Document.Items, 1)
	assert.Equal(t, "n дерево", resp.Document.Items[0].Text())
}

func TestArticle_RussianInfersTable(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	rec := get(t, h, "/api/article", url.Values{"word": {"дерево"}, "format": {"text"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "tree")
	assert.Contains(t, rec.Body.String(), "дерево")
}

func TestArticle_HTMLMinified(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	rec := get(t, h, "/api/article", url.Values{"word": {"tree"}, "table": {"enRu"}, "format": {"html"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "дерево")
	assert.NotContains(t, body, "\n    ", "style block indentation is minified away")
}

func TestArticle_Errors(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	tests := []struct {
		name   string
		params url.Values
		want   int
	}{
		{name: "missing word", params: url.Values{}, want: http.StatusBadRequest},
		{name: "unknown table", params: url.Values{"word": {"tree"}, "table": {"deFr"}}, want: http.StatusBadRequest},
		{name: "unknown format", params: url.Values{"word": {"tree"}, "format": {"pdf"}}, want: http.StatusBadRequest},
		{name: "not found", params: url.Values{"word": {"ghost"}}, want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := get(t, h, "/api/article", tt.params)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	rec := get(t, h, "/ready", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}
