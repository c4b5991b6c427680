package ds

// membership is a frozen or live view that can answer lookups and report
// its size: either another compatible set's store or a local snapshot.
type membership[T any] interface {
	Contains(item T) bool
	Size() int
	Range(fn func(item T) bool)
}

// is reports whether other is this very set instance.
func (s *ConcurrentSet[T]) is(other Enumerable[T]) bool {
	o, ok := other.(*ConcurrentSet[T])
	return ok && o == s
}

// compatible returns other as a set when it identifies elements the same
// way s does, so its store can be consulted directly.
func (s *ConcurrentSet[T]) compatible(other Enumerable[T]) (*ConcurrentSet[T], bool) {
	o, ok := other.(*ConcurrentSet[T])
	if !ok || !sameEquivalence(s.eq, o.eq) {
		return nil, false
	}
	return o, true
}

// viewOf returns a membership view of other. Plain sequences are walked
// exactly once into a local snapshot.
func (s *ConcurrentSet[T]) viewOf(op string, other Enumerable[T]) membership[T] {
	if o, ok := s.compatible(other); ok {
		s.trace(op, "compatible")
		return o.store
	}
	s.trace(op, "snapshot")
	return snapshotOf(s.eq, present(other))
}

// allIn reports whether every member of s is in view.
func (s *ConcurrentSet[T]) allIn(view membership[T]) bool {
	ok := true
	s.store.Range(func(item T) bool {
		ok = view.Contains(item)
		return ok
	})
	return ok
}

// containsAll reports whether every member of view is in s.
func (s *ConcurrentSet[T]) containsAll(view membership[T]) bool {
	ok := true
	view.Range(func(item T) bool {
		ok = s.store.Contains(item)
		return ok
	})
	return ok
}

// ExceptWith removes every element of other from s.
func (s *ConcurrentSet[T]) ExceptWith(other Enumerable[T]) error {
	const op = "ExceptWith"
	if absentSeq(other) {
		return invalidArg(op, "other")
	}
	if s.is(other) {
		s.trace(op, "identity")
		s.Clear()
		return nil
	}
	if s.IsEmpty() {
		s.trace(op, "empty")
		return nil
	}
	for item := range present(other) {
		s.store.Remove(item)
		if s.store.Size() == 0 {
			break
		}
	}
	return nil
}

// IntersectWith keeps only the members of s that are also in other.
func (s *ConcurrentSet[T]) IntersectWith(other Enumerable[T]) error {
	const op = "IntersectWith"
	if absentSeq(other) {
		return invalidArg(op, "other")
	}
	if s.is(other) {
		s.trace(op, "identity")
		return nil
	}
	if s.IsEmpty() {
		s.trace(op, "empty")
		return nil
	}

	if o, ok := s.compatible(other); ok {
		if o.IsEmpty() {
			s.trace(op, "empty other")
			s.Clear()
			return nil
		}
		s.trace(op, "compatible")
		for _, item := range s.ToSlice() {
			if !o.store.Contains(item) {
				s.store.Remove(item)
			}
		}
		return nil
	}

	// keep must live outside s: s is mutated while other is still being read.
	s.trace(op, "two pass")
	keep := newMapSet(s.eq)
	for item := range present(other) {
		if s.store.Contains(item) {
			keep.Add(item)
		}
	}
	s.store.Range(func(item T) bool {
		if !keep.Contains(item) {
			s.store.Remove(item)
		}
		return true
	})
	return nil
}

// UnionWith adds every element of other to s.
func (s *ConcurrentSet[T]) UnionWith(other Enumerable[T]) error {
	const op = "UnionWith"
	if absentSeq(other) {
		return invalidArg(op, "other")
	}
	if s.is(other) {
		s.trace(op, "identity")
		return nil
	}
	s.addSeq(other)
	return nil
}

// SymmetricExceptWith leaves in s the elements found in exactly one of s and other.
func (s *ConcurrentSet[T]) SymmetricExceptWith(other Enumerable[T]) error {
	const op = "SymmetricExceptWith"
	if absentSeq(other) {
		return invalidArg(op, "other")
	}
	if s.is(other) {
		s.trace(op, "identity")
		s.Clear()
		return nil
	}
	if s.IsEmpty() {
		s.trace(op, "empty")
		s.addSeq(other)
		return nil
	}

	// Remove-else-add on each distinct element. A separate membership test
	// would race with the mutation that follows it.
	s.viewOf(op, other).Range(func(item T) bool {
		if !s.store.Remove(item) {
			s.store.Add(item)
		}
		return true
	})
	return nil
}

// IsSubsetOf reports whether every member of s is in other.
func (s *ConcurrentSet[T]) IsSubsetOf(other Enumerable[T]) (bool, error) {
	const op = "IsSubsetOf"
	if absentSeq(other) {
		return false, invalidArg(op, "other")
	}
	if s.is(other) {
		s.trace(op, "identity")
		return true, nil
	}
	if s.IsEmpty() {
		s.trace(op, "empty")
		return true, nil
	}
	view := s.viewOf(op, other)
	if s.Count() > view.Size() {
		return false, nil
	}
	return s.allIn(view), nil
}

// IsSupersetOf reports whether every element of other is in s.
func (s *ConcurrentSet[T]) IsSupersetOf(other Enumerable[T]) (bool, error) {
	const op = "IsSupersetOf"
	if absentSeq(other) {
		return false, invalidArg(op, "other")
	}
	if s.is(other) {
		s.trace(op, "identity")
		return true, nil
	}
	if o, ok := s.compatible(other); ok {
		s.trace(op, "compatible")
		if o.IsEmpty() {
			return true, nil
		}
		if s.Count() < o.Count() {
			return false, nil
		}
		return s.containsAll(o.store), nil
	}
	for item := range present(other) {
		if !s.store.Contains(item) {
			return false, nil
		}
	}
	return true, nil
}

// IsProperSubsetOf reports whether s is a subset of other and other has
// at least one element s lacks.
func (s *ConcurrentSet[T]) IsProperSubsetOf(other Enumerable[T]) (bool, error) {
	const op = "IsProperSubsetOf"
	if absentSeq(other) {
		return false, invalidArg(op, "other")
	}
	if s.is(other) {
		s.trace(op, "identity")
		return false, nil
	}
	view := s.viewOf(op, other)
	if view.Size() == 0 {
		return false, nil
	}
	n := s.Count()
	if n == 0 {
		return true, nil
	}
	if n >= view.Size() {
		return false, nil
	}
	return s.allIn(view), nil
}

// IsProperSupersetOf reports whether s is a superset of other and has at
// least one element other lacks.
func (s *ConcurrentSet[T]) IsProperSupersetOf(other Enumerable[T]) (bool, error) {
	const op = "IsProperSupersetOf"
	if absentSeq(other) {
		return false, invalidArg(op, "other")
	}
	if s.is(other) {
		s.trace(op, "identity")
		return false, nil
	}
	if s.IsEmpty() {
		s.trace(op, "empty")
		return false, nil
	}
	view := s.viewOf(op, other)
	if view.Size() == 0 {
		return true, nil
	}
	if s.Count() <= view.Size() {
		return false, nil
	}
	return s.containsAll(view), nil
}

// Overlaps reports whether s and other share at least one element.
func (s *ConcurrentSet[T]) Overlaps(other Enumerable[T]) (bool, error) {
	const op = "Overlaps"
	if absentSeq(other) {
		return false, invalidArg(op, "other")
	}
	if s.is(other) {
		s.trace(op, "identity")
		return !s.IsEmpty(), nil
	}
	if s.IsEmpty() {
		s.trace(op, "empty")
		return false, nil
	}
	for item := range present(other) {
		if s.store.Contains(item) {
			return true, nil
		}
	}
	return false, nil
}

// SetEquals reports whether s and other have the same members.
func (s *ConcurrentSet[T]) SetEquals(other Enumerable[T]) (bool, error) {
	const op = "SetEquals"
	if absentSeq(other) {
		return false, invalidArg(op, "other")
	}
	if s.is(other) {
		s.trace(op, "identity")
		return true, nil
	}
	view := s.viewOf(op, other)
	if s.Count() != view.Size() {
		return false, nil
	}
	return s.allIn(view), nil
}
