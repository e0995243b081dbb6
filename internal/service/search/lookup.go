package search

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/ruendict/internal/domain"
	"github.com/heartmarshall/ruendict/internal/translit"
)

// Result is the outcome of dispatching one query.
type Result struct {
	// Query is the text as typed.
	Query string
	// Normalized is the trimmed, lowercased query.
	Normalized string
	// Table is the dictionary the entries came from.
	Table domain.Table
	// Variant is the Cyrillic spelling that produced the entries when the
	// query was taken for transliterated Russian. Empty otherwise.
	Variant string
	Entries []domain.Entry
}

// Lookup chooses exactly one table for query and returns its entries:
//
//  1. Cyrillic text searches ruEn.
//  2. Latin text that looks transliterated tries each Cyrillic variant
//     against ruEn in order; the first variant with results wins.
//  3. Everything else, and transliteration guesses that found nothing,
//     searches enRu.
//
// An empty query yields the popularity-ordered enRu listing.
func (s *Service) Lookup(ctx context.Context, query string) Result {
	normalized := domain.NormalizeQuery(query)
	res := Result{Query: query, Normalized: normalized}

	if domain.ContainsCyrillic(normalized) {
		res.Table = domain.TableRuEn
		res.Entries = s.FuzzySearch(ctx, domain.TableRuEn, normalized)
		return res
	}

	if translit.LooksLikeTransliteration(normalized) {
		for _, variant := range translit.ToCyrillicVariants(normalized) {
			if ctx.Err() != nil {
				break
			}
			entries := s.FuzzySearch(ctx, domain.TableRuEn, variant)
			if len(entries) > 0 {
				s.log.DebugContext(ctx, "transliterated query matched",
					slog.String("query", normalized),
					slog.String("variant", variant),
				)
				res.Table = domain.TableRuEn
				res.Variant = variant
				res.Entries = entries
				return res
			}
		}
	}

	res.Table = domain.TableEnRu
	res.Entries = s.FuzzySearch(ctx, domain.TableEnRu, normalized)
	return res
}
