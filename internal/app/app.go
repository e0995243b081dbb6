// Package app wires configuration, storage and services into the engine
// shared by the command-line, HTTP and MCP front ends.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ruendict/internal/adapter/postgres"
	"github.com/heartmarshall/ruendict/internal/adapter/prefs"
	"github.com/heartmarshall/ruendict/internal/adapter/sqlite"
	"github.com/heartmarshall/ruendict/internal/config"
	"github.com/heartmarshall/ruendict/internal/domain"
	"github.com/heartmarshall/ruendict/internal/render"
	"github.com/heartmarshall/ruendict/internal/service/article"
	"github.com/heartmarshall/ruendict/internal/service/search"
	"github.com/heartmarshall/ruendict/internal/service/session"
)

// Store is the read-only dictionary backend.
type Store interface {
	PrefixSearch(ctx context.Context, table domain.Table, prefix string, limit int) ([]domain.Entry, error)
	FetchArticle(ctx context.Context, table domain.Table, word string) (*domain.Article, error)
	FetchArticlesForWords(ctx context.Context, table domain.Table, words []string) ([]domain.ArticleRow, error)
	Ping(ctx context.Context) error
	Close() error
}

// OpenStore opens and pings the backend selected by cfg.Store.Driver.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.Store.Path, cfg.Search.GlossLength)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return postgres.NewStore(pool, cfg.Search.GlossLength), nil
	default:
		return nil, fmt.Errorf("store driver %q: %w", cfg.Store.Driver, domain.ErrValidation)
	}
}

// Engine bundles the services built over one store.
type Engine struct {
	Store    Store
	Search   *search.Service
	Articles *article.Resolver
	Renderer *render.Renderer

	cfg *config.Config
	log *slog.Logger
}

// NewEngine builds the services over store.
func NewEngine(logger *slog.Logger, store Store, cfg *config.Config) *Engine {
	return &Engine{
		Store:  store,
		Search: search.NewService(logger, store, cfg.Search.Limit),
		Articles: article.NewResolver(logger, store, article.Config{
			SenseLeadWindow: cfg.Article.SenseLeadWindow,
			Loader: article.LoaderConfig{
				Wait:  cfg.Article.LoaderWait,
				Batch: cfg.Article.LoaderBatch,
			},
		}),
		Renderer: render.NewRenderer(cfg.Render.MaxMarkupBytes),
		cfg:      cfg,
		log:      logger,
	}
}

// Open opens the configured store and builds an engine over it. The caller
// closes the engine.
func Open(ctx context.Context, logger *slog.Logger, cfg *config.Config) (*Engine, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "dictionary store opened",
		slog.String("driver", cfg.Store.Driver),
	)
	return NewEngine(logger, store, cfg), nil
}

// NewSession creates an interactive session. p may be nil.
func (e *Engine) NewSession(p *prefs.Store) *session.Session {
	cfg := session.Config{RecentsLimit: e.cfg.Prefs.RecentsLimit}
	if p == nil {
		return session.New(e.log, e.Search, e.Articles, e.Renderer, nil, cfg)
	}
	return session.New(e.log, e.Search, e.Articles, e.Renderer, p, cfg)
}

// OpenPrefs opens the preferences file named in the configuration.
func (e *Engine) OpenPrefs(ctx context.Context) (*prefs.Store, error) {
	return prefs.Open(ctx, e.cfg.Prefs.Path)
}

// Close releases the store.
func (e *Engine) Close() error {
	return e.Store.Close()
}
