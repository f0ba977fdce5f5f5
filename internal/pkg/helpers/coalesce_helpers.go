package helpers

import (
	"cmp"
	"slices"
)

// Coalesce unions the given sources, keeps the first value seen for each key
// and sorts the result with less. Rows from any number of sources of the same
// shape go through here instead of being merged inline by each caller.
func Coalesce[T any, K comparable](key func(T) K, less func(a, b T) int, sources ...[]T) []T {
	seen := make(map[K]struct{})
	merged := make([]T, 0)
	for _, source := range sources {
		for _, item := range source {
			k := key(item)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			merged = append(merged, item)
		}
	}
	slices.SortStableFunc(merged, less)
	return merged
}

// UniqueDescending deduplicates ordered values and sorts them newest/largest first.
func UniqueDescending[T cmp.Ordered](sources ...[]T) []T {
	return Coalesce(identity[T], func(a, b T) int { return cmp.Compare(b, a) }, sources...)
}

// UniqueAscending deduplicates ordered values and sorts them smallest first.
func UniqueAscending[T cmp.Ordered](sources ...[]T) []T {
	return Coalesce(identity[T], cmp.Compare[T], sources...)
}

func identity[T any](v T) T { return v }
