package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openStores returns a bolt-backed and a memory-only store so every
// behavior is checked in both modes
func openStores(t *testing.T) map[string]*Store {
	t.Helper()

	disk, err := Open(t.TempDir(), "https://api.example.org/3/")
	require.NoError(t, err)
	t.Cleanup(func() { disk.Close() })

	mem, err := Open("", "")
	require.NoError(t, err)

	return map[string]*Store{"bolt": disk, "memory": mem}
}

func show(id int64, name string, page, position int, tags ...string) *domain.TvShow {
	return &domain.TvShow{
		Record: domain.Record{ID: id, Page: page, Position: position, CategoryTypes: tags},
		Name:   name,
	}
}

func TestTableInsertAndGet(t *testing.T) {
	for mode, s := range openStores(t) {
		t.Run(mode, func(t *testing.T) {
			tv := s.TV()

			_, ok, err := tv.GetByID(1399)
			require.NoError(t, err)
			assert.False(t, ok)

			in := show(1399, "Game of Thrones", 1, 0, "popular")
			in.Reviews = []domain.Review{{ID: "r1", Author: "a", Content: "great"}}
			in.Similar = []*domain.TvShow{show(1400, "Similar", 0, 0)}
			require.NoError(t, tv.Insert(in))

			got, ok, err := tv.GetByID(1399)
			require.NoError(t, err)
			require.True(t, ok)
			if diff := cmp.Diff(in, got); diff != "" {
				t.Errorf("row mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTableGetByPageOrdersByPosition(t *testing.T) {
	for mode, s := range openStores(t) {
		t.Run(mode, func(t *testing.T) {
			tv := s.TV()
			require.NoError(t, tv.InsertAll([]*domain.TvShow{
				show(30, "third", 1, 2),
				show(10, "first", 1, 0),
				show(20, "second", 1, 1),
				show(40, "other page", 2, 0),
			}))

			rows, err := tv.GetByPage(1)
			require.NoError(t, err)

			var names []string
			for _, r := range rows {
				names = append(names, r.Name)
			}
			assert.Equal(t, []string{"first", "second", "third"}, names)

			empty, err := tv.GetByPage(9)
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestTableUpdate(t *testing.T) {
	for mode, s := range openStores(t) {
		t.Run(mode, func(t *testing.T) {
			movies := s.Movies()

			err := movies.Update(&domain.Movie{Record: domain.Record{ID: 7}, Title: "missing"})
			assert.True(t, errors.Is(err, domain.ErrNotFound))

			require.NoError(t, movies.Insert(&domain.Movie{Record: domain.Record{ID: 7}, Title: "old"}))
			require.NoError(t, movies.Update(&domain.Movie{Record: domain.Record{ID: 7}, Title: "new", Runtime: 120}))

			got, ok, err := movies.GetByID(7)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "new", got.Title)
			assert.Equal(t, 120, got.Runtime)
		})
	}
}

func TestTableMergeAll(t *testing.T) {
	for mode, s := range openStores(t) {
		t.Run(mode, func(t *testing.T) {
			tv := s.TV()
			require.NoError(t, tv.Insert(show(1, "stored", 1, 0, "popular")))

			appendTag := func(stored *domain.TvShow, found bool, incoming *domain.TvShow) *domain.TvShow {
				if found {
					incoming.CategoryTypes = append(stored.CategoryTypes, "top_rated")
				} else {
					incoming.CategoryTypes = []string{"top_rated"}
				}
				return incoming
			}

			require.NoError(t, tv.MergeAll([]*domain.TvShow{
				show(1, "renamed", 3, 0),
				show(2, "fresh", 3, 1),
			}, appendTag))

			one, _, err := tv.GetByID(1)
			require.NoError(t, err)
			assert.Equal(t, []string{"popular", "top_rated"}, one.CategoryTypes)
			assert.Equal(t, "renamed", one.Name)
			assert.Equal(t, 3, one.Page)

			two, _, err := tv.GetByID(2)
			require.NoError(t, err)
			assert.Equal(t, []string{"top_rated"}, two.CategoryTypes)
		})
	}
}

func TestTableMergeAllSeesEarlierItemsInBatch(t *testing.T) {
	for mode, s := range openStores(t) {
		t.Run(mode, func(t *testing.T) {
			tv := s.TV()
			count := func(stored *domain.TvShow, found bool, incoming *domain.TvShow) *domain.TvShow {
				if found {
					incoming.CategoryTypes = append(stored.CategoryTypes, "x")
				} else {
					incoming.CategoryTypes = []string{"x"}
				}
				return incoming
			}

			require.NoError(t, tv.MergeAll([]*domain.TvShow{show(5, "a", 1, 0), show(5, "a", 1, 0)}, count))

			got, _, err := tv.GetByID(5)
			require.NoError(t, err)
			assert.Equal(t, []string{"x", "x"}, got.CategoryTypes)
		})
	}
}

func TestTableConcurrentMergeKeepsEveryTag(t *testing.T) {
	for mode, s := range openStores(t) {
		t.Run(mode, func(t *testing.T) {
			tv := s.TV()
			require.NoError(t, tv.Insert(show(1, "shared", 1, 0)))

			tags := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
			var wg sync.WaitGroup
			for _, tag := range tags {
				wg.Add(1)
				go func(tag string) {
					defer wg.Done()
					err := tv.MergeAll([]*domain.TvShow{show(1, "shared", 1, 0)},
						func(stored *domain.TvShow, found bool, incoming *domain.TvShow) *domain.TvShow {
							incoming.CategoryTypes = append(stored.CategoryTypes, tag)
							return incoming
						})
					assert.NoError(t, err)
				}(tag)
			}
			wg.Wait()

			got, _, err := tv.GetByID(1)
			require.NoError(t, err)
			assert.ElementsMatch(t, tags, got.CategoryTypes)
		})
	}
}

func TestStoreClear(t *testing.T) {
	for mode, s := range openStores(t) {
		t.Run(mode, func(t *testing.T) {
			require.NoError(t, s.TV().Insert(show(1, "a", 1, 0)))
			require.NoError(t, s.Movies().Insert(&domain.Movie{Record: domain.Record{ID: 2}}))

			require.NoError(t, s.Clear())

			n, err := s.TV().Count()
			require.NoError(t, err)
			assert.Zero(t, n)
			_, ok, err := s.Movies().GetByID(2)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, "https://api.example.org")
	require.NoError(t, err)
	require.NoError(t, s.TV().Insert(show(9, "kept", 1, 0, "popular")))
	require.NoError(t, s.Close())

	s, err = Open(dir, "https://API.example.org/")
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := s.TV().GetByID(9)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "kept", got.Name)
	assert.Equal(t, []string{"popular"}, got.CategoryTypes)
}

func TestTablesAreSeparate(t *testing.T) {
	s, err := Open("", "")
	require.NoError(t, err)

	require.NoError(t, s.TV().Insert(show(1, "tv", 1, 0)))

	_, ok, err := s.Movies().GetByID(1)
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := s.TV().All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
