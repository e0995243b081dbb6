// Package prefs is the local preferences store: a small SQLite key/value
// file holding the last query and the recent searches.
package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/heartmarshall/ruendict/internal/adapter/prefs/migrations"
)

// Keys used by the search session.
const (
	KeyLastQuery      = "lastQuery"
	KeyRecentSearches = "recentSearches"
)

// MemoryPath opens a private in-memory store.
const MemoryPath = ":memory:"

// Store is a string and string-list key/value store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the preferences file at path and brings
// its schema up to date.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create prefs dir: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open prefs %s: %w", path, err)
	}
	// One writer; for :memory: it also keeps every query on the same database.
	db.SetMaxOpenConns(1)

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prefs migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("prefs migrate up: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetString returns the value stored under key. ok is false when the key is
// absent.
func (s *Store) GetString(ctx context.Context, key string) (value string, ok bool, err error) {
	query, args, err := sq.Select("value").From("prefs").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build get %s: %w", key, err)
	}

	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// SetString stores value under key, replacing any previous value.
func (s *Store) SetString(ctx context.Context, key, value string) error {
	query, args, err := sq.Insert("prefs").
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build set %s: %w", key, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	query, args, err := sq.Delete("prefs").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("build remove %s: %w", key, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// GetList returns the list stored under key, or an empty list.
func (s *Store) GetList(ctx context.Context, key string) ([]string, error) {
	raw, ok, err := s.GetString(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []string{}, nil
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

// SetList stores list under key.
func (s *Store) SetList(ctx context.Context, key string, list []string) error {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.SetString(ctx, key, string(raw))
}
