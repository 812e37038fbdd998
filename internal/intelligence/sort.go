package intelligence

import "sort"

// stableSortDesc sorts items by key, highest first, keeping the original
// order of equal keys.
func stableSortDesc[T any](items []T, key func(T) int) {
	sort.SliceStable(items, func(i, j int) bool {
		return key(items[i]) > key(items[j])
	})
}
