package ir

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Set is an unordered collection of distinct values. A nil Set is absent,
// which is how a transducer's Description marks that it has no accept states.
type Set[T comparable] = mapset.Set[T]

// NewSet creates a set holding the given items.
// The set is not safe for concurrent writes.
func NewSet[T comparable](items ...T) Set[T] {
	return mapset.NewThreadUnsafeSet(items...)
}

// CloneSet returns an independent copy of s; a nil set yields an empty one.
// The copy is always a NewSet set, whatever implementation s uses.
func CloneSet[T comparable](s Set[T]) Set[T] {
	if s == nil {
		return NewSet[T]()
	}
	return NewSet(s.ToSlice()...)
}

// SetLen returns the number of items, zero for a nil set
func SetLen[T comparable](s Set[T]) int {
	if s == nil {
		return 0
	}
	return s.Cardinality()
}

// SetItems returns the items in no particular order, nil for a nil set
func SetItems[T comparable](s Set[T]) []T {
	if s == nil {
		return nil
	}
	return s.ToSlice()
}

// Intersects reports whether a and b share at least one item.
// A nil set shares nothing.
func Intersects[T comparable](a, b Set[T]) bool {
	if SetLen(a) == 0 || SetLen(b) == 0 {
		return false
	}
	if a.Cardinality() > b.Cardinality() {
		a, b = b, a
	}
	found := false
	a.Each(func(item T) bool {
		found = b.ContainsOne(item)
		return found
	})
	return found
}

// FormatSet renders s as "{a, b}" with items sorted by their printed form
func FormatSet[T comparable](s Set[T]) string {
	parts := make([]string, 0, SetLen(s))
	for _, item := range SetItems(s) {
		parts = append(parts, fmt.Sprint(item))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}
