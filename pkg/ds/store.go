package ds

import (
	"github.com/puzpuzpuz/xsync/v4"
)

// Store is the concurrent key-presence store a ConcurrentSet is built on.
// Each method must be atomic for the key it touches; Range and Size are
// weakly consistent.
type Store[T any] interface {
	// Add inserts item if no equivalent element is present.
	Add(item T) bool
	// Remove deletes the element equivalent to item, if any.
	Remove(item T) bool
	Contains(item T) bool
	// Get returns the stored element equivalent to item.
	Get(item T) (T, bool)
	Size() int
	Clear()
	Range(fn func(item T) bool)
}

// keyStore keys an xsync.Map directly by the element, so it only serves
// the natural equivalence of comparable types.
type keyStore[T comparable] struct {
	data *xsync.Map[T, T]
}

func newKeyStore[T comparable](capacity int) *keyStore[T] {
	if capacity > 0 {
		return &keyStore[T]{data: xsync.NewMap[T, T](xsync.WithPresize(capacity))}
	}
	return &keyStore[T]{data: xsync.NewMap[T, T]()}
}

func (s *keyStore[T]) Add(item T) bool {
	_, loaded := s.data.LoadOrStore(item, item)
	return !loaded
}

func (s *keyStore[T]) Remove(item T) bool {
	_, loaded := s.data.LoadAndDelete(item)
	return loaded
}

func (s *keyStore[T]) Contains(item T) bool {
	_, ok := s.data.Load(item)
	return ok
}

func (s *keyStore[T]) Get(item T) (T, bool) {
	return s.data.Load(item)
}

func (s *keyStore[T]) Size() int {
	return s.data.Size()
}

func (s *keyStore[T]) Clear() {
	s.data.Clear()
}

func (s *keyStore[T]) Range(fn func(item T) bool) {
	s.data.Range(func(key T, _ T) bool {
		return fn(key)
	})
}

// bucketStore groups elements by their equivalence hash. Each bucket is an
// immutable slice swapped inside Map.Compute, which makes insert-if-absent
// and remove-if-present atomic per bucket.
type bucketStore[T any] struct {
	eq      Equivalence[T]
	buckets *xsync.Map[uint64, []T]
	count   *xsync.Counter
}

func newBucketStore[T any](eq Equivalence[T], capacity int) *bucketStore[T] {
	s := &bucketStore[T]{eq: eq, count: xsync.NewCounter()}
	if capacity > 0 {
		s.buckets = xsync.NewMap[uint64, []T](xsync.WithPresize(capacity))
	} else {
		s.buckets = xsync.NewMap[uint64, []T]()
	}
	return s
}

func (s *bucketStore[T]) indexOf(chain []T, item T) int {
	for i, v := range chain {
		if s.eq.Equal(v, item) {
			return i
		}
	}
	return -1
}

func (s *bucketStore[T]) Add(item T) bool {
	added := false
	s.buckets.Compute(s.eq.Hash(item), func(chain []T, loaded bool) ([]T, xsync.ComputeOp) {
		if loaded && s.indexOf(chain, item) >= 0 {
			return chain, xsync.CancelOp
		}
		next := make([]T, len(chain)+1)
		copy(next, chain)
		next[len(chain)] = item
		added = true
		return next, xsync.UpdateOp
	})
	if added {
		s.count.Inc()
	}
	return added
}

func (s *bucketStore[T]) Remove(item T) bool {
	removed := false
	s.buckets.Compute(s.eq.Hash(item), func(chain []T, loaded bool) ([]T, xsync.ComputeOp) {
		i := -1
		if loaded {
			i = s.indexOf(chain, item)
		}
		if i < 0 {
			return chain, xsync.CancelOp
		}
		removed = true
		if len(chain) == 1 {
			return nil, xsync.DeleteOp
		}
		next := make([]T, 0, len(chain)-1)
		next = append(next, chain[:i]...)
		next = append(next, chain[i+1:]...)
		return next, xsync.UpdateOp
	})
	if removed {
		s.count.Dec()
	}
	return removed
}

func (s *bucketStore[T]) Contains(item T) bool {
	_, ok := s.Get(item)
	return ok
}

func (s *bucketStore[T]) Get(item T) (T, bool) {
	chain, ok := s.buckets.Load(s.eq.Hash(item))
	if ok {
		if i := s.indexOf(chain, item); i >= 0 {
			return chain[i], true
		}
	}
	var zero T
	return zero, false
}

func (s *bucketStore[T]) Size() int {
	if n := s.count.Value(); n > 0 {
		return int(n)
	}
	return 0
}

// Clear drops bucket by bucket so the counter only ever moves by what was
// actually removed. Elements added concurrently may survive.
func (s *bucketStore[T]) Clear() {
	s.buckets.Range(func(h uint64, _ []T) bool {
		s.buckets.Compute(h, func(chain []T, loaded bool) ([]T, xsync.ComputeOp) {
			if loaded {
				s.count.Add(-int64(len(chain)))
			}
			return nil, xsync.DeleteOp
		})
		return true
	})
}

func (s *bucketStore[T]) Range(fn func(item T) bool) {
	s.buckets.Range(func(_ uint64, chain []T) bool {
		for _, v := range chain {
			if !fn(v) {
				return false
			}
		}
		return true
	})
}
