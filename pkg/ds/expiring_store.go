package ds

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// ExpiringStore is a Store whose members drop out after a TTL. When a
// capacity is set, the least recently added member is evicted to make room.
// Size may briefly count members that expired but were not cleaned up yet.
type ExpiringStore[T comparable] struct {
	cache *ttlcache.Cache[T, void]
	stop  func()
}

func NewExpiringStore[T comparable](ttl time.Duration, capacity uint64) *ExpiringStore[T] {
	opts := []ttlcache.Option[T, void]{
		ttlcache.WithTTL[T, void](ttl),
		ttlcache.WithDisableTouchOnHit[T, void](),
	}
	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[T, void](capacity))
	}
	cache := ttlcache.New(opts...)

	l := logger.WithField("store", "expiring")
	unsubscribe := cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[T, void]) {
		switch reason {
		case ttlcache.EvictionReasonExpired:
			l.WithField("item", item.Key()).Debug("member expired")
		case ttlcache.EvictionReasonCapacityReached:
			l.WithField("item", item.Key()).Debug("member evicted, capacity reached")
		}
	})

	go cache.Start()

	return &ExpiringStore[T]{
		cache: cache,
		stop: func() {
			unsubscribe()
			cache.Stop()
		},
	}
}

func (s *ExpiringStore[T]) Add(item T) bool {
	_, retrieved := s.cache.GetOrSet(item, empty)
	return !retrieved
}

func (s *ExpiringStore[T]) Remove(item T) bool {
	_, present := s.cache.GetAndDelete(item)
	return present
}

func (s *ExpiringStore[T]) Contains(item T) bool {
	return s.cache.Has(item)
}

func (s *ExpiringStore[T]) Get(item T) (T, bool) {
	if it := s.cache.Get(item); it != nil {
		return it.Key(), true
	}
	var zero T
	return zero, false
}

func (s *ExpiringStore[T]) Size() int {
	return s.cache.Len()
}

func (s *ExpiringStore[T]) Clear() {
	s.cache.DeleteAll()
}

// Range walks the keys present when it starts, skipping any that expired or
// were removed since.
func (s *ExpiringStore[T]) Range(fn func(item T) bool) {
	for _, key := range s.cache.Keys() {
		if !s.cache.Has(key) {
			continue
		}
		if !fn(key) {
			return
		}
	}
}

// Close stops the background expiry loop.
func (s *ExpiringStore[T]) Close() {
	s.stop()
}
