package utils

import "sort"

// SortedKeys returns the keys of a string map in ascending order, so output
// derived from maps stays deterministic.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
