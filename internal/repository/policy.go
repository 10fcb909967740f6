package repository

import (
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// Policy decides whether cached rows need a network refresh. cached is
// empty when nothing is stored.
type Policy func(cached []*domain.Record, now time.Time) bool

// AlwaysFetch refreshes on every call
func AlwaysFetch(_ []*domain.Record, _ time.Time) bool {
	return true
}

// MaxAge refreshes when nothing is cached or any cached row was written
// more than d ago. A non-positive d behaves like AlwaysFetch.
func MaxAge(d time.Duration) Policy {
	if d <= 0 {
		return AlwaysFetch
	}
	return func(cached []*domain.Record, now time.Time) bool {
		if len(cached) == 0 {
			return true
		}
		for _, r := range cached {
			if now.Sub(time.Unix(r.FetchedAt, 0)) > d {
				return true
			}
		}
		return false
	}
}

func records[E domain.Entity[E]](items ...E) []*domain.Record {
	out := make([]*domain.Record, 0, len(items))
	for _, item := range items {
		out = append(out, item.Meta())
	}
	return out
}
