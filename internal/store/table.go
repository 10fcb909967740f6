package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mmcdole/reel/internal/domain"
)

// Table implements domain.EntityStore for one entity type.
type Table[E domain.Entity[E]] struct {
	s      *Store
	bucket []byte
}

var (
	_ domain.EntityStore[*domain.TvShow] = (*Table[*domain.TvShow])(nil)
	_ domain.EntityStore[*domain.Movie]  = (*Table[*domain.Movie])(nil)
)

func decode[E any](data []byte) (E, error) {
	var item E
	if err := json.Unmarshal(data, &item); err != nil {
		return item, fmt.Errorf("failed to decode row: %w", err)
	}
	return item, nil
}

// GetByID returns the row for id; false if absent
func (t *Table[E]) GetByID(id int64) (E, bool, error) {
	var zero E
	data, err := t.s.get(t.bucket, idKey(id))
	if err != nil || data == nil {
		return zero, false, err
	}
	item, err := decode[E](data)
	if err != nil {
		return zero, false, err
	}
	return item, true, nil
}

// GetByPage returns every row last written by the given listing page,
// ordered by their position in that page
func (t *Table[E]) GetByPage(page int) ([]E, error) {
	var items []E
	err := t.s.scan(t.bucket, func(_, data []byte) error {
		item, err := decode[E](data)
		if err != nil {
			return err
		}
		if item.Meta().Page == page {
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortByPosition(items)
	return items, nil
}

// All returns every row ordered by id
func (t *Table[E]) All() ([]E, error) {
	var items []E
	err := t.s.scan(t.bucket, func(_, data []byte) error {
		item, err := decode[E](data)
		if err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Meta().ID < items[j].Meta().ID
	})
	return items, nil
}

// Count returns the number of rows
func (t *Table[E]) Count() (int, error) {
	n := 0
	err := t.s.scan(t.bucket, func(_, _ []byte) error {
		n++
		return nil
	})
	return n, err
}

// Insert writes item, replacing any row with the same id
func (t *Table[E]) Insert(item E) error {
	return t.InsertAll([]E{item})
}

// InsertAll upserts all items in one transaction
func (t *Table[E]) InsertAll(items []E) error {
	return t.s.update(t.bucket, func(tx *txn) error {
		for _, item := range items {
			if err := putItem(tx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update overwrites an existing row; domain.ErrNotFound if absent
func (t *Table[E]) Update(item E) error {
	return t.s.update(t.bucket, func(tx *txn) error {
		if tx.get(idKey(item.Meta().ID)) == nil {
			return fmt.Errorf("update %d: %w", item.Meta().ID, domain.ErrNotFound)
		}
		return putItem(tx, item)
	})
}

// MergeAll looks up each item's stored row, lets merge compute the row to
// persist and writes the result, all inside one write transaction.
func (t *Table[E]) MergeAll(items []E, merge domain.MergeFunc[E]) error {
	return t.s.update(t.bucket, func(tx *txn) error {
		for _, incoming := range items {
			var stored E
			found := false
			if data := tx.get(idKey(incoming.Meta().ID)); data != nil {
				var err error
				if stored, err = decode[E](data); err != nil {
					return err
				}
				found = true
			}
			if err := putItem(tx, merge(stored, found, incoming)); err != nil {
				return err
			}
		}
		return nil
	})
}

func putItem[E domain.Entity[E]](tx *txn, item E) error {
	var zero E
	if item == zero {
		return fmt.Errorf("cannot store nil %T", item)
	}
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return tx.put(idKey(item.Meta().ID), data)
}

func sortByPosition[E domain.Entity[E]](items []E) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Meta(), items[j].Meta()
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})
}
