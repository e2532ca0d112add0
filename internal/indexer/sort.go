package indexer

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// SortKeys orders keys for navigation. Keys that parse as numbers come
// first, by numeric value, with equal values ("7" and "007") ordered as
// strings. Keys that do not parse follow, in string order. The order is
// total, so it does not depend on map iteration.
func SortKeys(keys []string) {
	type parsed struct {
		value   float64
		numeric bool
	}
	values := make(map[string]parsed, len(keys))
	for _, k := range keys {
		v, err := strconv.ParseFloat(strings.TrimSpace(k), 64)
		values[k] = parsed{value: v, numeric: err == nil && !math.IsNaN(v)}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := values[keys[i]], values[keys[j]]
		switch {
		case a.numeric && b.numeric:
			if a.value != b.value {
				return a.value < b.value
			}
			return keys[i] < keys[j]
		case a.numeric != b.numeric:
			return a.numeric
		default:
			return keys[i] < keys[j]
		}
	})
}
