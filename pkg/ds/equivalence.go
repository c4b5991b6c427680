package ds

import (
	"hash/maphash"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

var seed = maphash.MakeSeed()

// Equivalence decides when two elements are the same member of a set.
// Hash must agree with Equal: equal elements hash equally.
type Equivalence[T any] interface {
	Equal(a, b T) bool
	Hash(v T) uint64
}

type defaultEquivalence[T comparable] struct{}

func (defaultEquivalence[T]) Equal(a, b T) bool { return a == b }

func (defaultEquivalence[T]) Hash(v T) uint64 { return maphash.Comparable(seed, v) }

// Default returns the natural equivalence of T. Every call returns an equal value.
func Default[T comparable]() Equivalence[T] {
	return defaultEquivalence[T]{}
}

type funcEquivalence[T any] struct {
	equal func(a, b T) bool
	hash  func(v T) uint64
}

func (f *funcEquivalence[T]) Equal(a, b T) bool { return f.equal(a, b) }

func (f *funcEquivalence[T]) Hash(v T) uint64 { return f.hash(v) }

// EquivalenceFunc builds an Equivalence from a pair of functions.
// Two relations built this way are only equal when they are the same instance.
// It returns nil if either function is nil.
func EquivalenceFunc[T any](equal func(a, b T) bool, hash func(v T) uint64) Equivalence[T] {
	if equal == nil || hash == nil {
		return nil
	}
	return &funcEquivalence[T]{equal: equal, hash: hash}
}

type foldEquivalence struct{}

func (foldEquivalence) Equal(a, b string) bool { return strings.EqualFold(a, b) }

func (foldEquivalence) Hash(v string) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	buf := make([]byte, 0, utf8.UTFMax)
	for _, r := range v {
		buf = utf8.AppendRune(buf[:0], foldRune(r))
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

// StringFold treats strings as equal under Unicode case folding.
func StringFold() Equivalence[string] {
	return foldEquivalence{}
}

// foldRune maps r to the smallest rune of its case-folding orbit,
// the same classes strings.EqualFold compares by.
func foldRune(r rune) rune {
	least := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < least {
			least = f
		}
	}
	return least
}

// sameEquivalence reports whether two relations are equal by their own
// equality. Relations of non-comparable dynamic types never are.
func sameEquivalence[T any](a, b Equivalence[T]) (same bool) {
	if a == nil || b == nil {
		return false
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
