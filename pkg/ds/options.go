package ds

import "github.com/sirupsen/logrus"

type options[T any] struct {
	store    Store[T]
	capacity int
	logger   *logrus.Entry
}

type Option[T any] func(*options[T])

// WithStore backs the set with a caller supplied store. The store must
// identify elements by the same equivalence the set is given.
func WithStore[T any](store Store[T]) Option[T] {
	return func(o *options[T]) {
		o.store = store
	}
}

// WithCapacity presizes the default store. Ignored when WithStore is used.
func WithCapacity[T any](capacity int) Option[T] {
	return func(o *options[T]) {
		o.capacity = capacity
	}
}

func WithLogger[T any](logger *logrus.Entry) Option[T] {
	return func(o *options[T]) {
		o.logger = logger
	}
}

func applyOptions[T any](opts []Option[T]) *options[T] {
	o := &options[T]{logger: logger}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.logger == nil {
		o.logger = logger
	}
	return o
}
