// Package article resolves an expanded entry into its raw article markup.
// English entries map to one article; Russian entries are assembled from
// the English articles their gloss lists.
package article

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/ruendict/internal/domain"
)

// senseSeparator joins an English headword and the sense that translates
// the Russian word.
const senseSeparator = " \u2014 "

type articleStore interface {
	FetchArticle(ctx context.Context, table domain.Table, word string) (*domain.Article, error)
	FetchArticlesForWords(ctx context.Context, table domain.Table, words []string) ([]domain.ArticleRow, error)
}

// Config holds resolver settings.
type Config struct {
	SenseLeadWindow int
	Loader          LoaderConfig
}

// Resolver implements Resolve. Store errors never escape it: they are logged
// and degrade to an empty body.
type Resolver struct {
	log   *slog.Logger
	store articleStore
	cfg   Config
}

// NewResolver creates a resolver reading from store.
func NewResolver(logger *slog.Logger, store articleStore, cfg Config) *Resolver {
	if cfg.SenseLeadWindow <= 0 {
		cfg.SenseLeadWindow = DefaultSenseLeadWindow
	}
	return &Resolver{
		log:   logger.With("service", "article"),
		store: store,
		cfg:   cfg,
	}
}

// NewLoader creates a loader over the resolver's store, for callers that
// keep one per session or per request.
func (r *Resolver) NewLoader() *Loader {
	return NewLoader(r.store, r.cfg.Loader)
}

// Resolve returns the raw article markup of e. The result depends only on
// e and the store contents.
func (r *Resolver) Resolve(ctx context.Context, e domain.Entry) domain.ResolvedArticle {
	if e.IsRussian() {
		return domain.ResolvedArticle{Body: r.resolveRussian(ctx, e)}
	}
	return r.resolveEnglish(ctx, e)
}

func (r *Resolver) resolveEnglish(ctx context.Context, e domain.Entry) domain.ResolvedArticle {
	a, err := r.store.FetchArticle(ctx, domain.TableEnRu, e.Word)
	if err != nil {
		r.log.WarnContext(ctx, "fetch article failed",
			slog.String("word", e.Word),
			slog.String("error", err.Error()),
		)
		return domain.ResolvedArticle{}
	}
	return domain.ResolvedArticle{
		Body:          a.Translation,
		Transcription: a.Transcription,
	}
}

// resolveRussian builds one <LI> per matching sense of every English
// article listed in the entry's gloss, in gloss order. An English article
// with no matching sense contributes its bare headword.
func (r *Resolver) resolveRussian(ctx context.Context, e domain.Entry) string {
	candidates := Candidates(e)
	if len(candidates) == 0 {
		return ""
	}

	loader, ok := LoaderFromContext(ctx)
	if !ok {
		loader = r.NewLoader()
	}

	rows, err := loader.LoadRows(ctx, candidates)
	if err != nil {
		r.log.WarnContext(ctx, "fetch english articles failed",
			slog.String("word", e.Word),
			slog.Int("candidates", len(candidates)),
			slog.String("error", err.Error()),
		)
		return ""
	}

	var b strings.Builder
	for _, row := range rows {
		display := row.DisplayForm()
		senses := ExtractSenses(row.Translation, e.Word, r.cfg.SenseLeadWindow)
		if len(senses) == 0 {
			b.WriteString("<LI>" + display + "</LI>")
			continue
		}
		for _, sense := range senses {
			b.WriteString("<LI>" + display + senseSeparator + sense + "</LI>")
		}
	}
	return b.String()
}
