package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type taggedEq struct {
	tags []string
}

func (taggedEq) Equal(a, b int) bool { return a == b }

func (taggedEq) Hash(v int) uint64 { return uint64(v) }

func TestSameEquivalence(t *testing.T) {
	assert.True(t, sameEquivalence(Default[int](), Default[int]()))
	assert.True(t, sameEquivalence(StringFold(), StringFold()))
	assert.False(t, sameEquivalence(StringFold(), Default[string]()))

	eq := func(a, b int) bool { return a == b }
	hash := func(v int) uint64 { return uint64(v) }
	f1, f2 := EquivalenceFunc(eq, hash), EquivalenceFunc(eq, hash)
	assert.True(t, sameEquivalence(f1, f1))
	assert.False(t, sameEquivalence(f1, f2), "func relations compare by instance")

	assert.False(t, sameEquivalence[int](nil, Default[int]()))
	assert.False(t, sameEquivalence[int](taggedEq{}, taggedEq{}), "non-comparable relations never match")
}

func TestEquivalenceFunc_NilParts(t *testing.T) {
	assert.Nil(t, EquivalenceFunc[int](nil, func(int) uint64 { return 0 }))
	assert.Nil(t, EquivalenceFunc(func(a, b int) bool { return a == b }, nil))
}

func TestStringFold_HashAgreesWithEqual(t *testing.T) {
	eq := StringFold()
	pairs := [][2]string{
		{"hello", "HeLLo"},
		{"k", "\u212a"}, // Kelvin sign
		{"σ", "Σ"},
		{"", ""},
	}
	for _, p := range pairs {
		assert.True(t, eq.Equal(p[0], p[1]), "%q vs %q", p[0], p[1])
		assert.Equal(t, eq.Hash(p[0]), eq.Hash(p[1]), "%q vs %q", p[0], p[1])
	}
	assert.False(t, eq.Equal("hello", "help"))
}

func TestAbsent(t *testing.T) {
	var p *int
	var m map[string]int
	var f func()
	assert.True(t, absent(p))
	assert.True(t, absent(m))
	assert.True(t, absent(f))
	assert.True(t, absent[any](nil))
	assert.True(t, absent[any](p))
	assert.False(t, absent(0))
	assert.False(t, absent(""))
	assert.False(t, absent[any](0))
}
