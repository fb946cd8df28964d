package analytics

import "sort"

// grouper accumulates integer totals per key, remembering first-seen order
type grouper struct {
	index map[string]int
	keys  []string
	sums  []int
}

func newGrouper() *grouper {
	return &grouper{index: make(map[string]int)}
}

func (g *grouper) add(key string, v int) {
	i, ok := g.index[key]
	if !ok {
		i = len(g.keys)
		g.index[key] = i
		g.keys = append(g.keys, key)
		g.sums = append(g.sums, 0)
	}
	g.sums[i] += v
}

// ranked returns the groups sorted by descending total, ties in first-seen order
func (g *grouper) ranked() []Ranked {
	out := make([]Ranked, len(g.keys))
	for i, k := range g.keys {
		out[i] = Ranked{Key: k, Value: g.sums[i]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

func topN[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		items = items[:n]
	}
	return items
}
