package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/ruendict/internal/adapter/dictsql"
	"github.com/heartmarshall/ruendict/internal/domain"
)

// Querier is the subset of *pgxpool.Pool the store reads through.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store serves the dictionary tables from PostgreSQL.
type Store struct {
	pool        *pgxpool.Pool
	q           Querier
	glossLength int
}

// NewStore wraps a pool created by NewPool. The store owns the pool and
// closes it in Close.
func NewStore(pool *pgxpool.Pool, glossLength int) *Store {
	if glossLength <= 0 {
		glossLength = dictsql.DefaultGlossLength
	}
	return &Store{pool: pool, q: pool, glossLength: glossLength}
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases every pooled connection.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// PrefixSearch returns up to limit entries whose word starts with prefix,
// compared case-insensitively with ILIKE.
func (s *Store) PrefixSearch(ctx context.Context, table domain.Table, prefix string, limit int) ([]domain.Entry, error) {
	query, args, err := dictsql.PrefixSearch(dictsql.Postgres, table, prefix, limit, s.glossLength)
	if err != nil {
		return nil, err
	}

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, table, prefix)
	}
	defer rows.Close()

	entries := make([]domain.Entry, 0)
	for rows.Next() {
		e, err := dictsql.ScanEntry(rows, table)
		if err != nil {
			return nil, fmt.Errorf("scan %s entry: %w", table, err)
		}
		if e.Word == "" {
			continue
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, table, prefix)
	}

	return entries, nil
}

// FetchArticle returns the full article of word, or domain.ErrNotFound.
func (s *Store) FetchArticle(ctx context.Context, table domain.Table, word string) (*domain.Article, error) {
	query, args, err := dictsql.FetchArticle(dictsql.Postgres, table, word)
	if err != nil {
		return nil, err
	}

	article, err := dictsql.ScanArticle(s.q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, table, word)
	}
	return article, nil
}

// FetchArticlesForWords returns the articles of every word that exists,
// ordered by the word's position in words.
func (s *Store) FetchArticlesForWords(ctx context.Context, table domain.Table, words []string) ([]domain.ArticleRow, error) {
	if len(words) == 0 {
		return []domain.ArticleRow{}, nil
	}

	query, args, err := dictsql.FetchArticlesForWords(dictsql.Postgres, table, words)
	if err != nil {
		return nil, err
	}

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, table, fmt.Sprint(words))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ArticleRow, error) {
		return dictsql.ScanArticleRow(row)
	})
	if err != nil {
		return nil, mapError(err, table, fmt.Sprint(words))
	}

	return out, nil
}
