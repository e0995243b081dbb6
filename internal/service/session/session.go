// Package session holds the state of one interactive search: the current
// query and its results, which rows are expanded, the query history used
// for back navigation, and the recent searches kept in the preferences
// store.
package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/ruendict/internal/adapter/prefs"
	"github.com/heartmarshall/ruendict/internal/domain"
	"github.com/heartmarshall/ruendict/internal/markup"
	"github.com/heartmarshall/ruendict/internal/render"
	"github.com/heartmarshall/ruendict/internal/service/article"
	"github.com/heartmarshall/ruendict/internal/service/search"
	"github.com/heartmarshall/ruendict/pkg/ctxutil"
)

// DefaultRecentsLimit caps the recent searches list.
const DefaultRecentsLimit = 20

// ---------------------------------------------------------------------------
// Consumer-defined interfaces
// ---------------------------------------------------------------------------

type searcher interface {
	Lookup(ctx context.Context, query string) search.Result
}

type resolver interface {
	Resolve(ctx context.Context, e domain.Entry) domain.ResolvedArticle
	NewLoader() *article.Loader
}

type documentRenderer interface {
	Render(markup string) render.Document
}

type prefsStore interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	GetList(ctx context.Context, key string) ([]string, error)
	SetList(ctx context.Context, key string, list []string) error
}

// Ticket identifies one query generation. Only results carrying the latest
// ticket are applied.
type Ticket uuid.UUID

func (t Ticket) String() string { return uuid.UUID(t).String() }

// State is a snapshot of the session. Callers own the returned value.
type State struct {
	Query      string
	Normalized string
	Table      domain.Table
	Variant    string
	Entries    []domain.Entry
	// Expanded is keyed by Entry.Word.
	Expanded map[string]bool
	Ticket   Ticket
}

// IsExpanded reports whether the row for word is expanded.
func (s State) IsExpanded(word string) bool {
	return s.Expanded[word]
}

// Config holds session settings.
type Config struct {
	RecentsLimit int
}

// Session is single-threaded: callers serialize access.
type Session struct {
	log      *slog.Logger
	search   searcher
	resolver resolver
	renderer documentRenderer
	prefs    prefsStore
	cfg      Config

	id     uuid.UUID
	loader *article.Loader

	state   State
	pending Ticket
	history []string
	recents []string
	docs    map[string]render.Document
}

// New creates a session. prefs may be nil, in which case recents live only
// in memory.
func New(logger *slog.Logger, s searcher, r resolver, renderer documentRenderer, p prefsStore, cfg Config) *Session {
	if cfg.RecentsLimit <= 0 {
		cfg.RecentsLimit = DefaultRecentsLimit
	}
	id := uuid.New()
	return &Session{
		log:      logger.With("service", "session", slog.String("session_id", id.String())),
		search:   s,
		resolver: r,
		renderer: renderer,
		prefs:    p,
		cfg:      cfg,
		id:       id,
		loader:   r.NewLoader(),
		state:    State{Expanded: map[string]bool{}},
		recents:  []string{},
		docs:     map[string]render.Document{},
	}
}

// ID returns the session identifier attached to log records.
func (s *Session) ID() uuid.UUID { return s.id }

// withSession attaches the session id and the session-lived article loader.
func (s *Session) withSession(ctx context.Context) context.Context {
	ctx = ctxutil.WithSessionID(ctx, s.id)
	return article.WithLoader(ctx, s.loader)
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	return s.snapshot()
}

func (s *Session) snapshot() State {
	st := s.state
	st.Entries = append([]domain.Entry(nil), s.state.Entries...)
	st.Expanded = make(map[string]bool, len(s.state.Expanded))
	for w, v := range s.state.Expanded {
		st.Expanded[w] = v
	}
	return st
}

// History returns the queries typed so far, oldest first.
func (s *Session) History() []string {
	return append([]string(nil), s.history...)
}

// ---------------------------------------------------------------------------
// Query transitions
// ---------------------------------------------------------------------------

// OnQueryChanged runs text through table dispatch and replaces the result
// list. For a fixed store the resulting state depends only on text.
func (s *Session) OnQueryChanged(ctx context.Context, text string) State {
	ticket := s.Begin(text)
	st, _ := s.Apply(ctx, ticket, s.search.Lookup(s.withSession(ctx), text))
	return st
}

// Begin records text in the history and starts a new query generation.
// The lookup itself may run elsewhere; its result is handed to Apply.
func (s *Session) Begin(text string) Ticket {
	s.pushHistory(text)
	s.pending = Ticket(uuid.New())
	return s.pending
}

// Lookup runs dispatch for text with the session's context values. It does
// not touch session state and is safe to call from another goroutine.
func (s *Session) Lookup(ctx context.Context, text string) search.Result {
	return s.search.Lookup(s.withSession(ctx), text)
}

// Apply installs res if ticket is still the latest one. A stale result is
// dropped and the current state is returned with ok false.
func (s *Session) Apply(ctx context.Context, ticket Ticket, res search.Result) (State, bool) {
	if ticket != s.pending {
		s.log.DebugContext(ctx, "stale result dropped",
			slog.String("query", res.Query),
			slog.String("ticket", ticket.String()),
		)
		return s.snapshot(), false
	}
	s.install(s.withSession(ctx), ticket, res)
	return s.snapshot(), true
}

// Back returns to the previous query in the history. It reports false when
// there is nothing to go back to.
func (s *Session) Back(ctx context.Context) (State, bool) {
	if len(s.history) <= 1 {
		return s.snapshot(), false
	}
	s.history = s.history[:len(s.history)-1]
	text := s.history[len(s.history)-1]

	s.pending = Ticket(uuid.New())
	ctx = s.withSession(ctx)
	s.install(ctx, s.pending, s.search.Lookup(ctx, text))
	return s.snapshot(), true
}

func (s *Session) pushHistory(text string) {
	if n := len(s.history); n > 0 && s.history[n-1] == text {
		return
	}
	s.history = append(s.history, text)
}

func (s *Session) install(ctx context.Context, ticket Ticket, res search.Result) {
	entries := res.Entries
	if entries == nil {
		entries = []domain.Entry{}
	}
	s.state = State{
		Query:      res.Query,
		Normalized: res.Normalized,
		Table:      res.Table,
		Variant:    res.Variant,
		Entries:    entries,
		Expanded:   map[string]bool{},
		Ticket:     ticket,
	}
	s.docs = map[string]render.Document{}

	for _, e := range entries {
		if autoExpand(e, len(entries), res.Normalized) {
			s.expand(ctx, e)
		}
	}
}

func autoExpand(e domain.Entry, count int, normalized string) bool {
	return count == 1 || e.Word == normalized
}

// ---------------------------------------------------------------------------
// Row expansion
// ---------------------------------------------------------------------------

// Expand resolves and renders the row for word. It reports false when no
// row has that word.
func (s *Session) Expand(ctx context.Context, word string) (State, bool) {
	e, ok := s.entry(word)
	if !ok {
		return s.snapshot(), false
	}
	if !s.state.Expanded[word] {
		s.expand(s.withSession(ctx), e)
	}
	return s.snapshot(), true
}

// Collapse discards the rendered document of word.
func (s *Session) Collapse(word string) State {
	delete(s.state.Expanded, word)
	delete(s.docs, word)
	return s.snapshot()
}

// Toggle flips the row for word between collapsed and expanded.
func (s *Session) Toggle(ctx context.Context, word string) (State, bool) {
	if s.state.Expanded[word] {
		return s.Collapse(word), true
	}
	return s.Expand(ctx, word)
}

// Document returns the rendered article of an expanded row.
func (s *Session) Document(word string) (render.Document, bool) {
	doc, ok := s.docs[word]
	return doc, ok
}

func (s *Session) entry(word string) (domain.Entry, bool) {
	for _, e := range s.state.Entries {
		if e.Word == word {
			return e, true
		}
	}
	return domain.Entry{}, false
}

func (s *Session) expand(ctx context.Context, e domain.Entry) {
	a := s.resolver.Resolve(ctx, e)
	doc := s.renderer.Render(markup.FormatAsHTML(a.Body, a.Transcription))
	if doc.Degraded {
		s.log.WarnContext(ctx, "article markup degraded",
			slog.String("word", e.Word),
			slog.Int("bytes", len(doc.Source)),
		)
	}
	s.docs[e.Word] = doc
	s.state.Expanded[e.Word] = true
}

// ---------------------------------------------------------------------------
// Recents and persistence
// ---------------------------------------------------------------------------

// Recents returns the recent searches, most recent first.
func (s *Session) Recents() []string {
	return append([]string{}, s.recents...)
}

// Commit records term as a finished search: it moves to the front of the
// recents list and becomes the query restored on the next start.
func (s *Session) Commit(ctx context.Context, term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}

	recents := make([]string, 0, len(s.recents)+1)
	recents = append(recents, term)
	for _, r := range s.recents {
		if r != term {
			recents = append(recents, r)
		}
	}
	if len(recents) > s.cfg.RecentsLimit {
		recents = recents[:s.cfg.RecentsLimit]
	}
	s.recents = recents

	if s.prefs == nil {
		return
	}
	ctx = s.withSession(ctx)
	if err := s.prefs.SetList(ctx, prefs.KeyRecentSearches, recents); err != nil {
		s.log.WarnContext(ctx, "save recents failed", slog.String("error", err.Error()))
	}
	if err := s.prefs.SetString(ctx, prefs.KeyLastQuery, term); err != nil {
		s.log.WarnContext(ctx, "save last query failed", slog.String("error", err.Error()))
	}
}

// Restore loads the recents and re-runs the last committed query, or the
// initial listing when there is none.
func (s *Session) Restore(ctx context.Context) State {
	last := ""
	if s.prefs != nil {
		pctx := s.withSession(ctx)
		recents, err := s.prefs.GetList(pctx, prefs.KeyRecentSearches)
		if err != nil {
			s.log.WarnContext(pctx, "load recents failed", slog.String("error", err.Error()))
			recents = []string{}
		}
		if len(recents) > s.cfg.RecentsLimit {
			recents = recents[:s.cfg.RecentsLimit]
		}
		s.recents = recents

		v, ok, err := s.prefs.GetString(pctx, prefs.KeyLastQuery)
		if err != nil {
			s.log.WarnContext(pctx, "load last query failed", slog.String("error", err.Error()))
		}
		if ok {
			last = v
		}
	}
	return s.OnQueryChanged(ctx, last)
}

// ClearRecents empties the recents list and forgets the last query.
func (s *Session) ClearRecents(ctx context.Context) {
	s.recents = []string{}
	if s.prefs == nil {
		return
	}
	ctx = s.withSession(ctx)
	if err := s.prefs.SetList(ctx, prefs.KeyRecentSearches, nil); err != nil {
		s.log.WarnContext(ctx, "clear recents failed", slog.String("error", err.Error()))
	}
	if err := s.prefs.Remove(ctx, prefs.KeyLastQuery); err != nil {
		s.log.WarnContext(ctx, "clear last query failed", slog.String("error", err.Error()))
	}
}
