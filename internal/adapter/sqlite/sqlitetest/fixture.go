// Package sqlitetest builds in-memory dictionary fixtures for tests.
package sqlitetest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/heartmarshall/ruendict/internal/adapter/sqlite"
	"github.com/heartmarshall/ruendict/internal/domain"
	"github.com/heartmarshall/ruendict/migrations"
)

// Row is one dictionary row. Transcription is ignored for ruEn.
type Row struct {
	Table         domain.Table
	Word          string
	Translation   string
	Transcription string
	Stress        string
	Popularity    *float64
}

// Pop returns a pointer to p, for Row literals.
func Pop(p float64) *float64 { return &p }

// NewDB returns a migrated in-memory database holding rows.
// The database is closed via t.Cleanup.
func NewDB(t testing.TB, rows ...Row) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sqlitetest: open: %v", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		t.Fatalf("sqlitetest: goose provider: %v", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		t.Fatalf("sqlitetest: goose up: %v", err)
	}

	for _, r := range rows {
		insert(t, db, r)
	}

	return db
}

// NewStore returns a store over a fresh fixture holding rows.
func NewStore(t testing.TB, rows ...Row) *sqlite.Store {
	t.Helper()
	return sqlite.New(NewDB(t, rows...), 0)
}

func insert(t testing.TB, db *sql.DB, r Row) {
	t.Helper()

	var stress any
	if r.Stress != "" {
		stress = r.Stress
	}

	var err error
	switch r.Table {
	case domain.TableEnRu:
		_, err = db.Exec(
			`INSERT INTO enRu (word, translation, transcription, stress, popularity) VALUES (?, ?, ?, ?, ?)`,
			r.Word, r.Translation, r.Transcription, stress, r.Popularity,
		)
	case domain.TableRuEn:
		_, err = db.Exec(
			`INSERT INTO ruEn (word, translation, stress, popularity) VALUES (?, ?, ?, ?)`,
			r.Word, r.Translation, stress, r.Popularity,
		)
	default:
		t.Fatalf("sqlitetest: unknown table %q", r.Table)
	}
	if err != nil {
		t.Fatalf("sqlitetest: insert %s %q: %v", r.Table, r.Word, err)
	}
}
