package domain

import "strings"

// Table identifies one of the two dictionary directions.
type Table string

const (
	// TableEnRu holds English headwords with Russian articles.
	TableEnRu Table = "enRu"
	// TableRuEn holds Russian headwords whose glosses list English headwords.
	TableRuEn Table = "ruEn"
)

// IsValid reports whether t names a known table.
func (t Table) IsValid() bool {
	return t == TableEnRu || t == TableRuEn
}

// IsRussian reports whether the table is keyed by Russian headwords.
func (t Table) IsRussian() bool {
	return t == TableRuEn
}

func (t Table) String() string { return string(t) }

// ParseTable converts user input to a Table. Matching is case-insensitive.
func ParseTable(s string) (Table, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enru":
		return TableEnRu, nil
	case "ruen":
		return TableRuEn, nil
	}
	return "", NewValidationError("table", "must be enRu or ruEn")
}

// Entry is one row of a result list. It is an immutable value: view state
// such as expansion lives outside of it, keyed by Word.
type Entry struct {
	Word       string
	Stress     string
	Gloss      string
	Table      Table
	Popularity *float64
}

// DisplayForm returns the stressed spelling when the store has one.
func (e Entry) DisplayForm() string {
	if e.Stress != "" {
		return e.Stress
	}
	return e.Word
}

// FormattedGloss returns the preview gloss without markup and with a space
// after every comma.
func (e Entry) FormattedGloss() string {
	return FormatGloss(e.Gloss)
}

// Stars returns the 0-3 popularity indicator.
func (e Entry) Stars() int {
	return PopularityStars(e.Popularity)
}

// IsRussian reports whether the entry came from the Russian-headword table.
func (e Entry) IsRussian() bool {
	return e.Table.IsRussian()
}

// FormatGloss strips tags, replaces "," with ", " and then collapses double
// spaces once, the same way the preview is shown in the result list.
func FormatGloss(gloss string) string {
	s := StripMarkup(gloss)
	s = strings.ReplaceAll(s, ",", ", ")
	return strings.ReplaceAll(s, "  ", " ")
}

// PopularityStars maps a per-million frequency to a star count.
// Nil or non-positive values mean "rare" (0 stars).
func PopularityStars(popularity *float64) int {
	if popularity == nil || *popularity <= 0 {
		return 0
	}
	switch p := *popularity; {
	case p >= 100:
		return 3
	case p >= 10:
		return 2
	case p >= 1:
		return 1
	default:
		return 0
	}
}

// Article is the full body of a headword.
type Article struct {
	Translation   string
	Transcription string
}

// ArticleRow is one English article fetched for a Russian headword fan-out.
type ArticleRow struct {
	Word        string
	Translation string
	Stress      string
}

// DisplayForm returns the stressed spelling when the store has one.
func (r ArticleRow) DisplayForm() string {
	if r.Stress != "" {
		return r.Stress
	}
	return r.Word
}

// ResolvedArticle is the raw markup produced for an expanded entry.
// Transcription is only ever set for English headwords.
type ResolvedArticle struct {
	Body          string
	Transcription string
}
