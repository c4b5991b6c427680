package ds

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collidingEq puts every int in the same bucket.
type collidingEq struct{}

func (collidingEq) Equal(a, b int) bool { return a == b }

func (collidingEq) Hash(int) uint64 { return 42 }

func TestBucketStore_SharedBucket(t *testing.T) {
	s := newBucketStore[int](collidingEq{}, 0)

	for i := 0; i < 10; i++ {
		assert.True(t, s.Add(i))
	}
	assert.False(t, s.Add(3))
	assert.Equal(t, 10, s.Size())
	assert.Equal(t, 1, s.buckets.Size(), "all members share one bucket")

	assert.True(t, s.Remove(0))
	assert.True(t, s.Remove(9))
	assert.True(t, s.Remove(5))
	assert.False(t, s.Remove(5))
	assert.Equal(t, 7, s.Size())

	for _, v := range []int{1, 2, 3, 4, 6, 7, 8} {
		got, ok := s.Get(v)
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}
	assert.False(t, s.Contains(5))

	s.Clear()
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, 0, s.buckets.Size())
}

func TestBucketStore_LastRemovalDropsBucket(t *testing.T) {
	s := newBucketStore(Default[string](), 16)
	require.True(t, s.Add("a"))
	require.True(t, s.Remove("a"))
	assert.Equal(t, 0, s.buckets.Size())
	assert.Equal(t, 0, s.Size())
}

func TestBucketStore_ConcurrentCollisions(t *testing.T) {
	s := newBucketStore[int](collidingEq{}, 0)
	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.Add(w*perWorker + i)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, s.Size())
	for v := 0; v < workers*perWorker; v++ {
		if !s.Contains(v) {
			t.Fatalf("lost %d", v)
		}
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i += 2 {
				s.Remove(w*perWorker + i)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, workers*perWorker/2, s.Size())
}

func TestBucketStore_RangeStopsEarly(t *testing.T) {
	s := newBucketStore[int](collidingEq{}, 0)
	for i := 0; i < 5; i++ {
		s.Add(i)
	}
	seen := 0
	s.Range(func(int) bool {
		seen++
		return seen < 2
	})
	assert.Equal(t, 2, seen)
}

func TestKeyStore(t *testing.T) {
	s := newKeyStore[string](4)
	assert.True(t, s.Add("x"))
	assert.False(t, s.Add("x"))
	assert.True(t, s.Contains("x"))

	got, ok := s.Get("x")
	assert.True(t, ok)
	assert.Equal(t, "x", got)

	assert.True(t, s.Remove("x"))
	assert.False(t, s.Remove("x"))
	assert.Equal(t, 0, s.Size())
}

func TestMapSet_Snapshot(t *testing.T) {
	snap := snapshotOf[string](StringFold(), func(yield func(string) bool) {
		for _, v := range []string{"a", "A", "b", "B", "c"} {
			if !yield(v) {
				return
			}
		}
	})
	assert.Equal(t, 3, snap.Size())
	assert.True(t, snap.Contains("C"))
	assert.False(t, snap.Contains("d"))

	var items []string
	snap.Range(func(v string) bool {
		items = append(items, v)
		return true
	})
	assert.ElementsMatch(t, []string{"a", "b", "c"}, items, "first spelling wins")
}
