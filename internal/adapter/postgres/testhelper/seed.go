package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/ruendict/internal/domain"
)

// UniqueSuffix returns a short unique string. The container is shared by the
// whole test run, so seeded words carry a suffix to stay independent.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

// Entry is one row to seed. Transcription is ignored for ruEn.
type Entry struct {
	Word          string
	Translation   string
	Transcription string
	Stress        string
	Popularity    *float64
}

// SeedEntry inserts e into table and returns it.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, table domain.Table, e Entry) Entry {
	t.Helper()
	ctx := context.Background()

	var stress *string
	if e.Stress != "" {
		stress = &e.Stress
	}

	var err error
	switch table {
	case domain.TableEnRu:
		_, err = pool.Exec(ctx,
			`INSERT INTO enRu (word, translation, transcription, stress, popularity)
			 VALUES ($1, $2, $3, $4, $5)`,
			e.Word, e.Translation, e.Transcription, stress, e.Popularity,
		)
	case domain.TableRuEn:
		_, err = pool.Exec(ctx,
			`INSERT INTO ruEn (word, translation, stress, popularity)
			 VALUES ($1, $2, $3, $4)`,
			e.Word, e.Translation, stress, e.Popularity,
		)
	default:
		t.Fatalf("testhelper: SeedEntry unknown table %q", table)
	}
	if err != nil {
		t.Fatalf("testhelper: SeedEntry insert %s %q: %v", table, e.Word, err)
	}

	return e
}
