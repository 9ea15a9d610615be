package stats

import (
	"sort"

	"github.com/verte-zerg/bikeshare/internal/model"
)

// counter tallies values and remembers the order in which each first appeared.
type counter[T comparable] struct {
	counts map[T]int
	order  []T
}

func newCounter[T comparable]() *counter[T] {
	return &counter[T]{counts: map[T]int{}}
}

func (c *counter[T]) add(v T) {
	if _, ok := c.counts[v]; !ok {
		c.order = append(c.order, v)
	}
	c.counts[v]++
}

func (c *counter[T]) empty() bool {
	return len(c.order) == 0
}

// mode returns the most frequent value. Ties go to the value whose first
// occurrence is earliest, so B, A, A, B yields B.
func (c *counter[T]) mode() (T, int) {
	var best T
	bestCount := 0
	for _, v := range c.order {
		if n := c.counts[v]; n > bestCount {
			best = v
			bestCount = n
		}
	}
	return best, bestCount
}

// sorted returns values by descending count, ties in first-seen order.
func (c *counter[T]) sorted() []T {
	out := append([]T(nil), c.order...)
	sort.SliceStable(out, func(i, j int) bool {
		return c.counts[out[i]] > c.counts[out[j]]
	})
	return out
}

func valueCounts(c *counter[string]) []model.ValueCount {
	values := c.sorted()
	out := make([]model.ValueCount, 0, len(values))
	for _, v := range values {
		out = append(out, model.ValueCount{Value: v, Count: c.counts[v]})
	}
	return out
}
