// Package algo contains pure helpers for searching and editing the sorted
// key slices of a b-tree node.
package algo

import "sort"

// searchThreshold is the key count below which a linear scan beats binary
// search on modern hardware.
const searchThreshold = 32

// FindKeyIndex returns the position of key in keys under cmp. When key is
// present, found is true and idx is its position. When absent, found is
// false and idx is the position where key would be inserted, which is also
// the index of the child subtree covering key in a branch node.
func FindKeyIndex[T any](keys []T, key T, cmp func(a, b T) int) (idx int, found bool) {
	if len(keys) < searchThreshold {
		i := 0
		for i < len(keys) && cmp(key, keys[i]) > 0 {
			i++
		}
		if i < len(keys) && cmp(key, keys[i]) == 0 {
			return i, true
		}
		return i, false
	}

	i := sort.Search(len(keys), func(i int) bool {
		return cmp(key, keys[i]) <= 0
	})
	if i < len(keys) && cmp(key, keys[i]) == 0 {
		return i, true
	}
	return i, false
}

// InsertAt inserts value at index in slice
func InsertAt[T any](slice []T, index int, value T) []T {
	return append(slice[:index], append([]T{value}, slice[index:]...)...)
}

// RemoveAt removes element at index from slice
func RemoveAt[T any](slice []T, index int) []T {
	return append(slice[:index], slice[index+1:]...)
}
