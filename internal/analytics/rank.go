package analytics

import "sort"

// RankDesc sorts items by key descending. Equal keys keep their input order.
func RankDesc[T any, N int | float64](items []T, key func(T) N) {
	sort.SliceStable(items, func(i, j int) bool {
		return key(items[i]) > key(items[j])
	})
}

// MostFrequent returns the value occurring most often. Ties go to the first one encountered.
func MostFrequent(values []string) (string, int, bool) {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	var (
		best  string
		count int
	)
	for _, v := range order {
		if counts[v] > count {
			best, count = v, counts[v]
		}
	}
	return best, count, count > 0
}
