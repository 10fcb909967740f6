package repository

import (
	"log/slog"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/search"
)

// Queries provides synchronous, cache-only reads. Never hits the network.
type Queries[E domain.Entity[E]] struct {
	store  domain.EntityStore[E]
	logger *slog.Logger
}

// NewQueries creates a new Queries instance.
func NewQueries[E domain.Entity[E]](store domain.EntityStore[E], logger *slog.Logger) *Queries[E] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Queries[E]{store: store, logger: logger}
}

func (q *Queries[E]) CachedByID(id int64) (E, bool, error) {
	return q.store.GetByID(id)
}

// CachedPage returns the stored rows of page tagged with listType
func (q *Queries[E]) CachedPage(page int, listType string) ([]E, error) {
	rows, err := q.store.GetByPage(page)
	if err != nil {
		return nil, err
	}
	return filterByTag(rows, listType), nil
}

// FindCached fuzzy-matches query against every stored title, best first.
// limit <= 0 returns all matches.
func (q *Queries[E]) FindCached(query string, limit int) ([]E, error) {
	rows, err := q.store.All()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	titles := make([]string, len(rows))
	for i, row := range rows {
		titles[i] = row.GetTitle()
	}

	matches := search.Filter(query, titles)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]E, 0, len(matches))
	for _, m := range matches {
		results = append(results, rows[m.Index])
	}
	q.logger.Debug("offline search", "query", query, "rows", len(rows), "results", len(results))
	return results, nil
}
