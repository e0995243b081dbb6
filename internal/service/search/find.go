package search

import (
	"context"
	"fmt"

	"github.com/heartmarshall/ruendict/internal/domain"
)

// Find returns the entry of table whose headword is word. An exact match is
// preferred over one that differs only in case.
func (s *Service) Find(ctx context.Context, table domain.Table, word string) (domain.Entry, error) {
	if !table.IsValid() {
		return domain.Entry{}, fmt.Errorf("find %q: %w", table, domain.ErrUnknownTable)
	}
	normalized := domain.NormalizeQuery(word)
	if normalized == "" {
		return domain.Entry{}, domain.NewValidationError("word", "required")
	}

	var folded *domain.Entry
	for _, e := range s.prefixSearch(ctx, table, normalized) {
		if e.Word == word {
			return e, nil
		}
		if folded == nil && domain.NormalizeQuery(e.Word) == normalized {
			folded = &e
		}
	}
	if folded != nil {
		return *folded, nil
	}
	return domain.Entry{}, fmt.Errorf("find %s %q: %w", table, word, domain.ErrNotFound)
}
