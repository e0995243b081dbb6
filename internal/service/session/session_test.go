package session

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/ruendict/internal/adapter/prefs"
	"github.com/heartmarshall/ruendict/internal/adapter/sqlite/sqlitetest"
	"github.com/heartmarshall/ruendict/internal/domain"
	"github.com/heartmarshall/ruendict/internal/render"
	"github.com/heartmarshall/ruendict/internal/service/article"
	"github.com/heartmarshall/ruendict/internal/service/search"
	"github.com/heartmarshall/ruendict/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockSearcher struct {
	LookupFunc func(ctx context.Context, query string) search.Result
}

func (m *mockSearcher) Lookup(ctx context.Context, query string) search.Result {
	return m.LookupFunc(ctx, query)
}

type mockResolver struct {
	ResolveFunc func(ctx context.Context, e domain.Entry) domain.ResolvedArticle
}

func (m *mockResolver) Resolve(ctx context.Context, e domain.Entry) domain.ResolvedArticle {
	return m.ResolveFunc(ctx, e)
}

func (m *mockResolver) NewLoader() *article.Loader {
	return article.NewLoader(nil, article.LoaderConfig{})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestSession wires a session over an in-memory dictionary holding rows.
func newTestSession(t *testing.T, p prefsStore, cfg Config, rows ...sqlitetest.Row) *Session {
	t.Helper()
	log := discardLogger()
	store := sqlitetest.NewStore(t, rows...)
	return New(log,
		search.NewService(log, store, 0),
		article.NewResolver(log, store, article.Config{}),
		render.NewRenderer(0),
		p, cfg,
	)
}

func openPrefs(t *testing.T) *prefs.Store {
	t.Helper()
	p, err := prefs.Open(context.Background(), prefs.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func entryWords(st State) []string {
	out := make([]string, 0, len(st.Entries))
	for _, e := range st.Entries {
		out = append(out, e.Word)
	}
	return out
}

var englishRows = []sqlitetest.Row{
	{Table: domain.TableEnRu, Word: "tree", Translation: "<P>дерево</P>", Transcription: "tri:", Popularity: sqlitetest.Pop(120)},
	{Table: domain.TableEnRu, Word: "trees", Translation: "<P>деревья</P>", Popularity: sqlitetest.Pop(20)},
	{Table: domain.TableEnRu, Word: "trek", Translation: "<P>поход</P><P>путь</P>", Popularity: sqlitetest.Pop(2)},
}

// ---------------------------------------------------------------------------
// OnQueryChanged
// ---------------------------------------------------------------------------

func TestSession_OnQueryChanged_SingleResultEndToEnd(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, nil, Config{}, englishRows[0])

	st := s.OnQueryChanged(context.Background(), "tree")

	require.Len(t, st.Entries, 1)
	assert.Equal(t, domain.TableEnRu, st.Table)
	assert.True(t, st.IsExpanded("tree"))
	assert.Equal(t, 3, st.Entries[0].Stars())

	doc, ok := s.Document("tree")
	require.True(t, ok)
	assert.False(t, doc.Degraded)
	assert.Equal(t, "tri:", doc.Transcription)
	require.Len(t, doc.Items, 1)
	assert.Contains(t, doc.Items[0].Text(), "дерево")
	assert.NotContains(t, doc.Items[0].Text(), "1.")
}

func TestSession_OnQueryChanged_ExactWordExpanded(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, nil, Config{}, englishRows...)

	st := s.OnQueryChanged(context.Background(), "Tree")

	assert.Equal(t, []string{"tree", "trees"}, entryWords(st))
	assert.Equal(t, map[string]bool{"tree": true}, st.Expanded)
	_, ok := s.Document("trees")
	assert.False(t, ok)
}

func TestSession_OnQueryChanged_NoAutoExpand(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, nil, Config{}, englishRows...)

	st := s.OnQueryChanged(context.Background(), "tre")

	assert.Len(t, st.Entries, 3)
	assert.Empty(t, st.Expanded)
}

func TestSession_OnQueryChanged_RussianEntry(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, nil, Config{},
		sqlitetest.Row{Table: domain.TableRuEn, Word: "мир", Translation: "world,peace"},
		sqlitetest.Row{Table: domain.TableEnRu, Word: "world", Translation: "<P><abbr>n</abbr> мир, вселенная</P>"},
		sqlitetest.Row{Table: domain.TableEnRu, Word: "peace", Translation: "<P>покой</P><P>мир</P>"},
	)

	st := s.OnQueryChanged(context.Background(), "мир")

	assert.Equal(t, domain.TableRuEn, st.Table)
	require.True(t, st.IsExpanded("мир"))

	doc, _ := s.Document("мир")
	require.Len(t, doc.Items, 2)
	assert.Contains(t, doc.Items[0].Text(), "world \u2014 n мир")
	assert.Contains(t, doc.Items[1].Text(), "peace \u2014 мир")
	assert.Contains(t, doc.Links(), "world")
}

func TestSession_OnQueryChanged_Idempotent(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, nil, Config{}, englishRows...)
	ctx := context.Background()

	first := s.OnQueryChanged(ctx, "tree")
	firstDoc, _ := s.Document("tree")
	second := s.OnQueryChanged(ctx, "tree")
	secondDoc, _ := s.Document("tree")

	first.Ticket, second.Ticket = Ticket{}, Ticket{}
	assert.Equal(t, first, second)
	assert.Equal(t, firstDoc, secondDoc)
	assert.Equal(t, []string{"tree"}, s.History(), "repeated text is recorded once")
}

func TestSession_OnQueryChanged_EmptyListsPopularEnglish(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, nil, Config{}, englishRows...)

	st := s.OnQueryChanged(context.Background(), "")

	assert.Equal(t, domain.TableEnRu, st.Table)
	assert.Equal(t, []string{"tree", "trees", "trek"}, entryWords(st))
}

func TestSession_PassesSessionContext(t *testing.T) {
	t.Parallel()

	var sawLoader, sawSession bool
	r := &mockResolver{
		ResolveFunc: func(ctx context.Context, _ domain.Entry) domain.ResolvedArticle {
			_, sawLoader = article.LoaderFromContext(ctx)
			_, sawSession = ctxutil.SessionIDFromCtx(ctx)
			return domain.ResolvedArticle{Body: "<P>x</P>"}
		},
	}
	srch := &mockSearcher{
		LookupFunc: func(_ context.Context, q string) search.Result {
			return search.Result{Query: q, Normalized: q, Table: domain.TableEnRu, Entries: []domain.Entry{{Word: q, Table: domain.TableEnRu}}}
		},
	}
	s := New(discardLogger(), srch, r, render.NewRenderer(0), nil, Config{})

	s.OnQueryChanged(context.Background(), "x")

	assert.True(t, sawLoader, "session loader attached")
	assert.True(t, sawSession, "session id attached")
}

// ---------------------------------------------------------------------------
// Begin / Apply
// ---------------------------------------------------------------------------

func TestSession_Apply_LastQueryWins(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, nil, Config{}, englishRows...)
	ctx := context.Background()

	stale := s.Begin("trek")
	latest := s.Begin("tree")
	assert.NotEqual(t, stale, latest)

	st, ok := s.Apply(ctx, latest, s.Lookup(ctx, "tree"))
	require.True(t, ok)
	assert.Equal(t, "tree", st.Query)
	assert.Equal(t, latest, st.Ticket)

	st, ok = s.Apply(ctx, stale, s.Lookup(ctx, "trek"))
	assert.False(t, ok)
	assert.Equal(t, "tree", st.Query, "stale result is dropped")
}

// ---------------------------------------------------------------------------
// Back
// ---------------------------------------------------------------------------

func TestSession_Back(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, nil, Config{}, englishRows...)
	ctx := context.Background()

	_, ok := s.Back(ctx)
	assert.False(t, ok, "nothing to go back to")

	s.OnQueryChanged(ctx, "tree")
	s.OnQueryChanged(ctx, "trek")

	st, ok := s.Back(ctx)
	require.True(t, ok)
	assert.Equal(t, "tree", st.Query)
	assert.True(t, st.IsExpanded("tree"))
	assert.Equal(t, []string{"tree"}, s.History())

	_, ok = s.Back(ctx)
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// Expansion
// ---------------------------------------------------------------------------

func TestSession_ExpandCollapseToggle(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, nil, Config{}, englishRows...)
	ctx := context.Background()
	s.OnQueryChanged(ctx, "tre")

	st, ok := s.Toggle(ctx, "trek")
	require.True(t, ok)
	assert.True(t, st.IsExpanded("trek"))
	doc, ok := s.Document("trek")
	require.True(t, ok)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "1. поход", doc.Items[0].Text())

	st, ok = s.Toggle(ctx, "trek")
	require.True(t, ok)
	assert.False(t, st.IsExpanded("trek"))
	_, ok = s.Document("trek")
	assert.False(t, ok)

	st, ok = s.Expand(ctx, "tree")
	require.True(t, ok)
	assert.True(t, st.IsExpanded("tree"))

	st = s.Collapse("tree")
	assert.Empty(t, st.Expanded)

	_, ok = s.Expand(ctx, "ghost")
	assert.False(t, ok)
}

func TestSession_StateIsSnapshot(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, nil, Config{}, englishRows...)
	st := s.OnQueryChanged(context.Background(), "tree")

	st.Expanded["trees"] = true

	assert.False(t, s.State().IsExpanded("trees"))
}

// ---------------------------------------------------------------------------
// Recents
// ---------------------------------------------------------------------------

func TestSession_Commit(t *testing.T) {
	t.Parallel()

	p := openPrefs(t)
	s := newTestSession(t, p, Config{}, englishRows...)
	ctx := context.Background()

	s.Commit(ctx, "tree")
	s.Commit(ctx, " mir ")
	s.Commit(ctx, "tree")
	s.Commit(ctx, "   ")

	assert.Equal(t, []string{"tree", "mir"}, s.Recents())

	saved, err := p.GetList(ctx, prefs.KeyRecentSearches)
	require.NoError(t, err)
	assert.Equal(t, []string{"tree", "mir"}, saved)

	last, ok, err := p.GetString(ctx, prefs.KeyLastQuery)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tree", last)
}

func TestSession_Commit_Capped(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, nil, Config{RecentsLimit: 2})
	ctx := context.Background()

	s.Commit(ctx, "a")
	s.Commit(ctx, "b")
	s.Commit(ctx, "c")

	assert.Equal(t, []string{"c", "b"}, s.Recents())
}

func TestSession_Restore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := openPrefs(t)
	require.NoError(t, p.SetList(ctx, prefs.KeyRecentSearches, []string{"tree", "trek"}))
	require.NoError(t, p.SetString(ctx, prefs.KeyLastQuery, "tree"))

	s := newTestSession(t, p, Config{}, englishRows...)
	st := s.Restore(ctx)

	assert.Equal(t, "tree", st.Query)
	assert.True(t, st.IsExpanded("tree"))
	assert.Equal(t, []string{"tree", "trek"}, s.Recents())
}

func TestSession_Restore_Initial(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, openPrefs(t), Config{}, englishRows...)
	st := s.Restore(context.Background())

	assert.Empty(t, st.Query)
	assert.Equal(t, []string{"tree", "trees", "trek"}, entryWords(st))
	assert.Empty(t, s.Recents())
}

func TestSession_ClearRecents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := openPrefs(t)
	s := newTestSession(t, p, Config{}, englishRows...)
	s.Commit(ctx, "tree")

	s.ClearRecents(ctx)

	assert.Empty(t, s.Recents())
	saved, err := p.GetList(ctx, prefs.KeyRecentSearches)
	require.NoError(t, err)
	assert.Empty(t, saved)
	_, ok, err := p.GetString(ctx, prefs.KeyLastQuery)
	require.NoError(t, err)
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// Links and speech
// ---------------------------------------------------------------------------

func TestSession_FollowLink(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, nil, Config{}, englishRows...)
	ctx := context.Background()

	st, ok := s.FollowLink(ctx, "tree")
	require.True(t, ok)
	assert.Equal(t, "tree", st.Query)
	assert.Equal(t, []string{"tree"}, s.Recents())

	_, ok = s.FollowLink(ctx, "  ")
	assert.False(t, ok)
}

func TestWordFromLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		href   string
		want   string
		wantOK bool
	}{
		{"tree", "tree", true},
		{"don't", "don't", true},
		{"%D0%BC%D0%B8%D1%80", "мир", true},
		{"мир", "мир", true},
		{"/tree", "tree", true},
		{"tree#2", "tree", true},
		{"dict://tree", "tree", true},
		{"", "", false},
		{"/", "", false},
	}
	for _, tt := range tests {
		got, ok := WordFromLink(tt.href)
		assert.Equal(t, tt.wantOK, ok, "WordFromLink(%q) ok", tt.href)
		assert.Equal(t, tt.want, got, "WordFromLink(%q)", tt.href)
	}
}

func TestSpeechHint(t *testing.T) {
	t.Parallel()

	ru := SpeechHintFor(domain.Entry{Word: "ми\u0301р", Table: domain.TableRuEn})
	assert.Equal(t, "мир", ru.Text)
	assert.True(t, ru.IsRussian)
	assert.Equal(t, "ru-RU", ru.Language.String())

	en := SpeechHintFor(domain.Entry{Word: "tree", Table: domain.TableEnRu})
	assert.Equal(t, "tree", en.Text)
	assert.False(t, en.IsRussian)
	assert.Equal(t, "en-US", en.Language.String())
}

func TestSession_SpeechHint(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, nil, Config{}, englishRows...)
	s.OnQueryChanged(context.Background(), "tree")

	h, ok := s.SpeechHint("tree")
	require.True(t, ok)
	assert.Equal(t, "tree", h.Text)

	_, ok = s.SpeechHint("ghost")
	assert.False(t, ok)
}
