package search

import (
	"context"

	"github.com/heartmarshall/ruendict/internal/domain"
)

// shortTermRunes is the longest term searched without relaxation.
const shortTermRunes = 2

// FuzzySearch normalizes term and searches table for it. Terms longer than
// two runes are relaxed when nothing matches: first the last rune is
// dropped, then the last two. The first non-empty result wins and keeps the
// store's order.
func (s *Service) FuzzySearch(ctx context.Context, table domain.Table, term string) []domain.Entry {
	runes := []rune(domain.NormalizeQuery(term))

	if len(runes) <= shortTermRunes {
		return s.prefixSearch(ctx, table, string(runes))
	}

	var entries []domain.Entry
	for drop := 0; drop <= 2; drop++ {
		if ctx.Err() != nil {
			return []domain.Entry{}
		}
		entries = s.prefixSearch(ctx, table, string(runes[:len(runes)-drop]))
		if len(entries) > 0 {
			return entries
		}
	}
	return entries
}
