// Package search picks the dictionary table for a query and runs the
// progressively relaxed prefix search against it.
package search

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/ruendict/internal/domain"
)

// DefaultLimit is used when the service is created without a limit.
const DefaultLimit = 100

type entryStore interface {
	PrefixSearch(ctx context.Context, table domain.Table, prefix string, limit int) ([]domain.Entry, error)
}

// Service implements FuzzySearch and Lookup. Store errors never escape it:
// they are logged and treated as an empty result.
type Service struct {
	log   *slog.Logger
	store entryStore
	limit int
}

// NewService creates a search service reading from store.
func NewService(logger *slog.Logger, store entryStore, limit int) *Service {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Service{
		log:   logger.With("service", "search"),
		store: store,
		limit: limit,
	}
}

// prefixSearch runs one store query and absorbs its error.
func (s *Service) prefixSearch(ctx context.Context, table domain.Table, prefix string) []domain.Entry {
	entries, err := s.store.PrefixSearch(ctx, table, prefix, s.limit)
	if err != nil {
		s.log.WarnContext(ctx, "prefix search failed",
			slog.String("table", table.String()),
			slog.String("prefix", prefix),
			slog.String("error", err.Error()),
		)
		return []domain.Entry{}
	}
	if entries == nil {
		return []domain.Entry{}
	}
	return entries
}
