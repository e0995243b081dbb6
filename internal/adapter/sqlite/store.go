// Package sqlite is the default dictionary store: a bundled SQLite file opened
// read-only through the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/heartmarshall/ruendict/internal/adapter/dictsql"
	"github.com/heartmarshall/ruendict/internal/domain"
)

// Store provides read-only access to the dictionary tables.
// It is safe for concurrent use.
type Store struct {
	db          *sql.DB
	glossLength int
}

// Open opens the dictionary file read-only and pings it. Callers treat a
// failure as fatal.
func Open(ctx context.Context, path string, glossLength int) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=query_only(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open dictionary %s: %w", path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping dictionary %s: %w: %w", path, domain.ErrStoreUnavailable, err)
	}

	return New(db, glossLength), nil
}

// New wraps an already opened database. Tests use it with in-memory fixtures.
func New(db *sql.DB, glossLength int) *Store {
	if glossLength <= 0 {
		glossLength = dictsql.DefaultGlossLength
	}
	return &Store{db: db, glossLength: glossLength}
}

// Ping verifies the database is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// PrefixSearch returns up to limit entries whose word starts with prefix,
// compared case-insensitively.
func (s *Store) PrefixSearch(ctx context.Context, table domain.Table, prefix string, limit int) ([]domain.Entry, error) {
	query, args, err := dictsql.PrefixSearch(dictsql.SQLite, table, prefix, limit, s.glossLength)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
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

// FetchArticle returns the full article of word. It returns
// domain.ErrNotFound when the word is absent.
func (s *Store) FetchArticle(ctx context.Context, table domain.Table, word string) (*domain.Article, error) {
	query, args, err := dictsql.FetchArticle(dictsql.SQLite, table, word)
	if err != nil {
		return nil, err
	}

	article, err := dictsql.ScanArticle(s.db.QueryRowContext(ctx, query, args...))
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

	query, args, err := dictsql.FetchArticlesForWords(dictsql.SQLite, table, words)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, table, fmt.Sprint(words))
	}
	defer rows.Close()

	out := make([]domain.ArticleRow, 0, len(words))
	for rows.Next() {
		r, err := dictsql.ScanArticleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s article: %w", table, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, table, fmt.Sprint(words))
	}

	return out, nil
}

// mapError converts database/sql errors to domain errors.
// Context errors pass through wrapped but unmapped.
func mapError(err error, table domain.Table, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %q: %w", table, key, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %q: %w", table, key, domain.ErrNotFound)
	}

	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%s %q: %w: %w", table, key, domain.ErrStoreUnavailable, err)
	}

	return fmt.Errorf("%s %q: %w", table, key, err)
}
