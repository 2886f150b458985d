package identity

import (
	"slices"
	"strings"
)

// Index groups items by employee identifier. Every item is stored under the
// exact (lower-cased) form it was recorded with and under its canonical key.
// Items keep insertion order within a group.
type Index[T any] struct {
	normalizer Normalizer
	byForm     map[string][]T
	byKey      map[string][]T
}

func NewIndex[T any](n Normalizer) *Index[T] {
	return &Index[T]{
		normalizer: n,
		byForm:     make(map[string][]T),
		byKey:      make(map[string][]T),
	}
}

// Add stores item for raw. It reports false when raw has no usable key.
func (ix *Index[T]) Add(raw string, item T) bool {
	key := Normalize(raw)
	if key == "" {
		return false
	}
	form := strings.ToLower(strings.TrimSpace(raw))
	ix.byForm[form] = append(ix.byForm[form], item)
	ix.byKey[key] = append(ix.byKey[key], item)
	return true
}

// Lookup returns the first non-empty group among: the items recorded under
// raw's exact form, those recorded under the default-domain form of an
// unqualified raw, and finally every item sharing raw's canonical key.
func (ix *Index[T]) Lookup(raw string) []T {
	for _, form := range ix.normalizer.Candidates(raw) {
		if items, ok := ix.byForm[form]; ok {
			return items
		}
	}
	return ix.byKey[Normalize(raw)]
}

// SortStableFunc orders every group with cmp. It must be called before the
// index is shared between goroutines.
func (ix *Index[T]) SortStableFunc(cmp func(a, b T) int) {
	for _, groups := range []map[string][]T{ix.byForm, ix.byKey} {
		for _, items := range groups {
			slices.SortStableFunc(items, cmp)
		}
	}
}
