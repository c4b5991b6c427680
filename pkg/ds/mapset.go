package ds

import "iter"

// mapSet is a plain single-goroutine set used for snapshots inside
// composite operations. It is never shared.
type mapSet[T any] struct {
	eq   Equivalence[T]
	data map[uint64][]T
	size int
}

func newMapSet[T any](eq Equivalence[T]) *mapSet[T] {
	return &mapSet[T]{eq: eq, data: make(map[uint64][]T)}
}

// snapshotOf materializes a single pass over items.
func snapshotOf[T any](eq Equivalence[T], items iter.Seq[T]) *mapSet[T] {
	s := newMapSet(eq)
	for item := range items {
		s.Add(item)
	}
	return s
}

func (s *mapSet[T]) Add(item T) bool {
	h := s.eq.Hash(item)
	chain := s.data[h]
	for _, v := range chain {
		if s.eq.Equal(v, item) {
			return false
		}
	}
	s.data[h] = append(chain, item)
	s.size++
	return true
}

func (s *mapSet[T]) Contains(item T) bool {
	for _, v := range s.data[s.eq.Hash(item)] {
		if s.eq.Equal(v, item) {
			return true
		}
	}
	return false
}

func (s *mapSet[T]) Size() int {
	return s.size
}

func (s *mapSet[T]) Range(fn func(item T) bool) {
	for _, chain := range s.data {
		for _, v := range chain {
			if !fn(v) {
				return
			}
		}
	}
}
