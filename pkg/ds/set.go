package ds

import (
	"iter"
	"reflect"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger = logrus.WithField("module", "ds")

type void struct{}

var empty void

// ErrInvalidArgument is returned when a required element or sequence is absent.
var ErrInvalidArgument = errors.New("invalid argument")

// Enumerable is anything that can be walked as a sequence of elements.
type Enumerable[T any] interface {
	All() iter.Seq[T]
}

// Slice adapts a slice to Enumerable. A nil slice is an empty sequence.
type Slice[T any] []T

func (s Slice[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range s {
			if !yield(item) {
				return
			}
		}
	}
}

// Seq adapts an iterator to Enumerable. A nil Seq is an absent sequence.
type Seq[T any] iter.Seq[T]

func (s Seq[T]) All() iter.Seq[T] {
	return iter.Seq[T](s)
}

func invalidArg(op, what string) error {
	return errors.Wrapf(ErrInvalidArgument, "%s: %s is nil", op, what)
}

// absent reports whether v holds an absent value: a nil interface, pointer,
// map, slice, func or chan.
func absent[T any](v T) bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
	default:
		return false
	}
	return isNil(any(v))
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// absentSeq reports whether other is an absent sequence. A nil Slice is
// just empty.
func absentSeq[T any](other Enumerable[T]) bool {
	switch other.(type) {
	case nil:
		return true
	case Slice[T]:
		return false
	}
	return isNil(other)
}

// present yields the non-absent elements of a sequence.
func present[T any](items Enumerable[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range items.All() {
			if absent(item) {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}
