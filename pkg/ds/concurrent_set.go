package ds

import (
	"iter"

	"github.com/sirupsen/logrus"
)

// ConcurrentSet is a set of unique elements that any number of goroutines
// may read and mutate without extra locking.
//
// Single element operations are atomic. Multi element operations (AddAll,
// UnionWith, IntersectWith, ...) are built from those and are not atomic as
// a whole: under concurrent mutation their net effect may match neither the
// state before nor after the call. Count and enumeration are weakly consistent.
type ConcurrentSet[T any] struct {
	store  Store[T]
	eq     Equivalence[T]
	logger *logrus.Entry
}

// New returns an empty set using the natural equivalence of T.
func New[T comparable](opts ...Option[T]) *ConcurrentSet[T] {
	o := applyOptions(opts)
	if o.store == nil || isNil(o.store) {
		o.store = newKeyStore[T](o.capacity)
	}
	return &ConcurrentSet[T]{store: o.store, eq: Default[T](), logger: o.logger}
}

// NewWithEquivalence returns an empty set identifying elements by eq.
func NewWithEquivalence[T any](eq Equivalence[T], opts ...Option[T]) (*ConcurrentSet[T], error) {
	if eq == nil || isNil(eq) {
		return nil, invalidArg("NewWithEquivalence", "equivalence")
	}
	o := applyOptions(opts)
	if o.store == nil || isNil(o.store) {
		o.store = newBucketStore(eq, o.capacity)
	}
	return &ConcurrentSet[T]{store: o.store, eq: eq, logger: o.logger}, nil
}

// From builds a set from items in sequence order; later duplicates are ignored.
func From[T comparable](items Enumerable[T], opts ...Option[T]) (*ConcurrentSet[T], error) {
	if absentSeq(items) {
		return nil, invalidArg("From", "items")
	}
	s := New[T](opts...)
	s.addSeq(items)
	return s, nil
}

// FromWithEquivalence is From with a custom equivalence.
func FromWithEquivalence[T any](items Enumerable[T], eq Equivalence[T], opts ...Option[T]) (*ConcurrentSet[T], error) {
	if absentSeq(items) {
		return nil, invalidArg("FromWithEquivalence", "items")
	}
	s, err := NewWithEquivalence(eq, opts...)
	if err != nil {
		return nil, err
	}
	s.addSeq(items)
	return s, nil
}

func (s *ConcurrentSet[T]) Equivalence() Equivalence[T] {
	return s.eq
}

// Add inserts item and reports whether it was not already present.
func (s *ConcurrentSet[T]) Add(item T) (bool, error) {
	if absent(item) {
		return false, invalidArg("Add", "item")
	}
	return s.store.Add(item), nil
}

// Remove deletes item and reports whether it was present.
func (s *ConcurrentSet[T]) Remove(item T) (bool, error) {
	if absent(item) {
		return false, invalidArg("Remove", "item")
	}
	return s.store.Remove(item), nil
}

func (s *ConcurrentSet[T]) Contains(item T) (bool, error) {
	if absent(item) {
		return false, invalidArg("Contains", "item")
	}
	return s.store.Contains(item), nil
}

// Get returns the member equivalent to item, which may differ from item
// under a custom equivalence.
func (s *ConcurrentSet[T]) Get(item T) (T, bool, error) {
	if absent(item) {
		var zero T
		return zero, false, invalidArg("Get", "item")
	}
	actual, ok := s.store.Get(item)
	return actual, ok, nil
}

// Count is a snapshot of the size and may be stale as soon as it returns.
func (s *ConcurrentSet[T]) Count() int {
	return s.store.Size()
}

func (s *ConcurrentSet[T]) IsEmpty() bool {
	return s.store.Size() == 0
}

// Clear removes every member. Elements added concurrently may survive.
func (s *ConcurrentSet[T]) Clear() {
	s.store.Clear()
}

// AddAll adds items in order and returns how many were newly inserted.
// Absent entries are skipped.
func (s *ConcurrentSet[T]) AddAll(items Enumerable[T]) (int, error) {
	if absentSeq(items) {
		return 0, invalidArg("AddAll", "items")
	}
	return s.addSeq(items), nil
}

func (s *ConcurrentSet[T]) addSeq(items Enumerable[T]) int {
	n := 0
	for item := range present(items) {
		if s.store.Add(item) {
			n++
		}
	}
	return n
}

// RemoveAll removes items in order and returns how many were present.
func (s *ConcurrentSet[T]) RemoveAll(items Enumerable[T]) (int, error) {
	if absentSeq(items) {
		return 0, invalidArg("RemoveAll", "items")
	}
	n := 0
	for item := range present(items) {
		if s.store.Remove(item) {
			n++
		}
	}
	return n, nil
}

// RemoveWhere removes every member matching predicate. Members added while
// it runs may or may not be visited.
func (s *ConcurrentSet[T]) RemoveWhere(predicate func(item T) bool) (int, error) {
	if predicate == nil {
		return 0, invalidArg("RemoveWhere", "predicate")
	}
	n := 0
	s.store.Range(func(item T) bool {
		if predicate(item) && s.store.Remove(item) {
			n++
		}
		return true
	})
	return n, nil
}

// All enumerates a live view of the members. Each call starts a fresh pass;
// concurrent changes may or may not be seen.
func (s *ConcurrentSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		s.store.Range(yield)
	}
}

func (s *ConcurrentSet[T]) ToSlice() []T {
	slice := make([]T, 0, s.store.Size())
	s.store.Range(func(item T) bool {
		slice = append(slice, item)
		return true
	})
	return slice
}

func (s *ConcurrentSet[T]) trace(op, path string) {
	if s.logger.Logger.IsLevelEnabled(logrus.TraceLevel) {
		s.logger.WithFields(logrus.Fields{"op": op, "path": path}).Trace("set operation")
	}
}
