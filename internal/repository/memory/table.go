package memory

import (
	"slices"

	"github.com/garnizeh/bectrack/pkg/models"
)

// table holds the rows of one entity type keyed by id, plus the id
// sequence. Ids are handed out in increasing order, so ascending id order
// is insertion order.
type table[T any] struct {
	rows map[int64]T
	next int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T), next: 1}
}

func (t *table[T]) get(id int64) (*T, bool) {
	v, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	return &v, true
}

func (t *table[T]) insert(build func(id int64) T) *T {
	id := t.next
	t.next++
	v := build(id)
	t.rows[id] = v
	return &v
}

// filter returns the rows accepted by keep in insertion order.
func (t *table[T]) filter(keep func(*T) bool) []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		v := t.rows[id]
		if keep == nil || keep(&v) {
			out = append(out, v)
		}
	}
	return out
}

// patch merges p into the row with the given id. fix, when set, runs on
// the stored and merged values before the merged one is stored.
func (t *table[T]) patch(id int64, p models.Patch, fix func(prev, next *T)) (*T, error) {
	cur, ok := t.rows[id]
	if !ok {
		return nil, nil
	}
	merged, err := models.ApplyPatch(cur, p)
	if err != nil {
		return nil, err
	}
	if fix != nil {
		fix(&cur, &merged)
	}
	t.rows[id] = merged
	return &merged, nil
}
