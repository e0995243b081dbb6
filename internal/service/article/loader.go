package article

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/ruendict/internal/domain"
)

// Default loader batching parameters.
const (
	DefaultLoaderWait  = 2 * time.Millisecond
	DefaultLoaderBatch = 100
)

type rowStore interface {
	FetchArticlesForWords(ctx context.Context, table domain.Table, words []string) ([]domain.ArticleRow, error)
}

// LoaderConfig holds the batching parameters of a Loader.
type LoaderConfig struct {
	Wait  time.Duration
	Batch int
}

// Loader batches and caches English article rows by headword. A nil row
// means the word is not in the dictionary. Rows are immutable, so a loader
// may live as long as the session or request that owns it.
type Loader struct {
	rows *dataloader.Loader[string, *domain.ArticleRow]
}

// NewLoader creates a loader reading enRu rows from store.
func NewLoader(store rowStore, cfg LoaderConfig) *Loader {
	if cfg.Wait <= 0 {
		cfg.Wait = DefaultLoaderWait
	}
	if cfg.Batch <= 0 {
		cfg.Batch = DefaultLoaderBatch
	}

	return &Loader{
		rows: dataloader.NewBatchedLoader(
			newRowsBatchFn(store),
			dataloader.WithWait[string, *domain.ArticleRow](cfg.Wait),
			dataloader.WithBatchCapacity[string, *domain.ArticleRow](cfg.Batch),
		),
	}
}

// LoadRows returns the rows of words in the order given. Missing words are
// left out. All keys are queued before any result is awaited, so uncached
// words go to the store in one batch.
func (l *Loader) LoadRows(ctx context.Context, words []string) ([]domain.ArticleRow, error) {
	thunks := make([]dataloader.Thunk[*domain.ArticleRow], len(words))
	for i, w := range words {
		thunks[i] = l.rows.Load(ctx, w)
	}

	out := make([]domain.ArticleRow, 0, len(words))
	for i, thunk := range thunks {
		row, err := thunk()
		if err != nil {
			// Failed loads are cached too; forget them so a retry hits the store.
			for _, w := range words[i:] {
				l.rows.Clear(ctx, w)
			}
			return nil, err
		}
		if row != nil {
			out = append(out, *row)
		}
	}
	return out, nil
}

// Clear drops every cached row.
func (l *Loader) Clear() {
	l.rows.ClearAll()
}

func newRowsBatchFn(store rowStore) dataloader.BatchFunc[string, *domain.ArticleRow] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[*domain.ArticleRow] {
		rows, err := store.FetchArticlesForWords(ctx, domain.TableEnRu, keys)
		if err != nil {
			return errorResults[*domain.ArticleRow](len(keys), err)
		}

		byWord := make(map[string]*domain.ArticleRow, len(rows))
		for i := range rows {
			r := rows[i] // copy to avoid aliasing
			byWord[r.Word] = &r
		}

		results := make([]*dataloader.Result[*domain.ArticleRow], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[*domain.ArticleRow]{Data: byWord[key]}
		}
		return results
	}
}

// errorResults returns a slice of error results for all keys.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loaderKey contextKey = "article_loader"

// WithLoader stores l in the context.
func WithLoader(ctx context.Context, l *Loader) context.Context {
	return context.WithValue(ctx, loaderKey, l)
}

// LoaderFromContext retrieves the loader stored by WithLoader.
func LoaderFromContext(ctx context.Context) (*Loader, bool) {
	l, ok := ctx.Value(loaderKey).(*Loader)
	return l, ok && l != nil
}
