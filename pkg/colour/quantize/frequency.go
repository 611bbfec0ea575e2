// Package quantize reduces a set of pixels to a small number of
// representative colours.
//
// Wu is a fast box-cutting quantizer, WSMeans refines a set of starting
// clusters with weighted k-means in L*a*b*, and Celebi chains the two the
// way the image pipeline uses them.
package quantize

import (
	"iter"
	"slices"
)

// FrequencyMap counts occurrences of values, remembering the order in which
// values were first seen. A count that drops to zero or below removes the
// value. The zero value is ready to use.
type FrequencyMap[V comparable] struct {
	index  map[V]int
	keys   []V
	counts []int
}

// NewFrequencyMap returns an empty map.
func NewFrequencyMap[V comparable]() *FrequencyMap[V] {
	return &FrequencyMap[V]{}
}

// Add adjusts the count of v by n, which may be negative.
func (m *FrequencyMap[V]) Add(v V, n int) {
	if m.index == nil {
		m.index = make(map[V]int)
	}
	i, ok := m.index[v]
	if !ok {
		if n <= 0 {
			return
		}
		m.index[v] = len(m.keys)
		m.keys = append(m.keys, v)
		m.counts = append(m.counts, n)
		return
	}
	m.counts[i] += n
	if m.counts[i] <= 0 {
		m.remove(i)
	}
}

// Increment adds one to the count of v.
func (m *FrequencyMap[V]) Increment(v V) { m.Add(v, 1) }

// Decrement subtracts one from the count of v.
func (m *FrequencyMap[V]) Decrement(v V) { m.Add(v, -1) }

func (m *FrequencyMap[V]) remove(i int) {
	delete(m.index, m.keys[i])
	m.keys = slices.Delete(m.keys, i, i+1)
	m.counts = slices.Delete(m.counts, i, i+1)
	for j := i; j < len(m.keys); j++ {
		m.index[m.keys[j]] = j
	}
}

// Count returns the count of v, zero when absent.
func (m *FrequencyMap[V]) Count(v V) int {
	if i, ok := m.index[v]; ok {
		return m.counts[i]
	}
	return 0
}

// Len returns the number of distinct values.
func (m *FrequencyMap[V]) Len() int { return len(m.keys) }

// Sum returns the total of all counts.
func (m *FrequencyMap[V]) Sum() int {
	total := 0
	for _, c := range m.counts {
		total += c
	}
	return total
}

// Keys returns the values in first-seen order.
func (m *FrequencyMap[V]) Keys() []V { return slices.Clone(m.keys) }

// All iterates over values and counts in first-seen order.
func (m *FrequencyMap[V]) All() iter.Seq2[V, int] {
	return func(yield func(V, int) bool) {
		for i, k := range m.keys {
			if !yield(k, m.counts[i]) {
				return
			}
		}
	}
}

// MostFrequent returns up to n values by descending count. Ties keep
// first-seen order.
func (m *FrequencyMap[V]) MostFrequent(n int) []V {
	order := make([]int, len(m.keys))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return m.counts[b] - m.counts[a] })
	n = min(max(n, 0), len(order))
	out := make([]V, n)
	for i := range n {
		out[i] = m.keys[order[i]]
	}
	return out
}
