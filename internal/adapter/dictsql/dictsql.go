// Package dictsql builds and scans the read queries shared by the SQL-backed
// dictionary stores. Both tables have the same shape except that only enRu
// carries a transcription column.
package dictsql

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/ruendict/internal/domain"
)

// DefaultLimit caps a prefix search when the caller passes no limit.
const DefaultLimit = 100

// DefaultGlossLength is the number of characters kept in a preview gloss.
const DefaultGlossLength = 100

// Dialect selects placeholder style and dialect-specific SQL.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) builder() sq.StatementBuilderType {
	if d == Postgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters so user input only matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// CheckTable rejects unknown tables. Table names are interpolated into SQL,
// so every builder calls it first.
func CheckTable(t domain.Table) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownTable, string(t))
	}
	return nil
}

// PrefixSearch builds the case-insensitive starts-with query. An empty prefix
// lists the table by popularity, then length, then alphabetically; any other
// prefix is ordered alphabetically only.
func PrefixSearch(d Dialect, table domain.Table, prefix string, limit, glossLength int) (string, []any, error) {
	if err := CheckTable(table); err != nil {
		return "", nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if glossLength <= 0 {
		glossLength = DefaultGlossLength
	}

	pattern := EscapeLike(prefix) + "%"

	q := d.builder().
		Select(
			"word",
			fmt.Sprintf("substr(translation, 1, %d) AS translation", glossLength),
			"stress",
			"popularity",
		).
		From(string(table)).
		Limit(uint64(limit))

	switch d {
	case Postgres:
		q = q.Where(sq.ILike{"word": pattern})
		if prefix == "" {
			q = q.OrderBy("popularity DESC NULLS LAST", "length(word)", "lower(word)", "word")
		} else {
			q = q.OrderBy("lower(word)", "word")
		}
	default:
		q = q.Where(`word LIKE ? ESCAPE '\'`, pattern)
		if prefix == "" {
			q = q.OrderBy("popularity DESC", "length(word)", "word COLLATE NOCASE", "word")
		} else {
			q = q.OrderBy("word COLLATE NOCASE", "word")
		}
	}

	return q.ToSql()
}

// FetchArticle builds the exact-match article query. ruEn has no
// transcription column, so an empty one is selected instead.
func FetchArticle(d Dialect, table domain.Table, word string) (string, []any, error) {
	if err := CheckTable(table); err != nil {
		return "", nil, err
	}

	transcription := "transcription"
	if table != domain.TableEnRu {
		transcription = "'' AS transcription"
	}

	return d.builder().
		Select("translation", transcription).
		From(string(table)).
		Where(sq.Eq{"word": word}).
		Limit(1).
		ToSql()
}

// FetchArticlesForWords builds the batched article query. Rows come back in
// the order the words were given, not alphabetically.
func FetchArticlesForWords(d Dialect, table domain.Table, words []string) (string, []any, error) {
	if err := CheckTable(table); err != nil {
		return "", nil, err
	}

	q := d.builder().
		Select("word", "translation", "stress").
		From(string(table)).
		Where(sq.Eq{"word": words})

	switch d {
	case Postgres:
		q = q.OrderByClause("array_position(?::text[], word)", words)
	default:
		q = q.OrderByClause("instr(?, ',' || word || ',')", ","+strings.Join(words, ",")+",")
	}

	return q.ToSql()
}

// Scanner is implemented by *sql.Row, *sql.Rows and pgx.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanEntry reads one PrefixSearch row.
func ScanEntry(s Scanner, table domain.Table) (domain.Entry, error) {
	var (
		word       string
		gloss      *string
		stress     *string
		popularity *float64
	)
	if err := s.Scan(&word, &gloss, &stress, &popularity); err != nil {
		return domain.Entry{}, err
	}

	return domain.Entry{
		Word:       word,
		Gloss:      deref(gloss),
		Stress:     deref(stress),
		Table:      table,
		Popularity: popularity,
	}, nil
}

// ScanArticle reads one FetchArticle row.
func ScanArticle(s Scanner) (*domain.Article, error) {
	var translation, transcription *string
	if err := s.Scan(&translation, &transcription); err != nil {
		return nil, err
	}
	return &domain.Article{
		Translation:   deref(translation),
		Transcription: deref(transcription),
	}, nil
}

// ScanArticleRow reads one FetchArticlesForWords row.
func ScanArticleRow(s Scanner) (domain.ArticleRow, error) {
	var (
		word        string
		translation *string
		stress      *string
	)
	if err := s.Scan(&word, &translation, &stress); err != nil {
		return domain.ArticleRow{}, err
	}
	return domain.ArticleRow{
		Word:        word,
		Translation: deref(translation),
		Stress:      deref(stress),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
