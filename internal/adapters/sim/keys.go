package sim

import "sort"

// sortedKeys gives map iteration a stable order so the simulator stays
// deterministic under a fixed seed.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedWorldIDs(worlds map[string]*worldState) []string {
	return sortedKeys(worlds)
}
