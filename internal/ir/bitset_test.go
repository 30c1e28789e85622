package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitSetBasics(t *testing.T) {
	var b BitSet
	assert.True(t, b.None())
	assert.False(t, b.Test(0))

	b.Set(0)
	b.Set(3)
	assert.True(t, b.Test(0))
	assert.True(t, b.Test(3))
	assert.False(t, b.Test(1))
	assert.Equal(t, 2, b.Count())
	assert.True(t, b.Any())
}

func TestBitSetSpill(t *testing.T) {
	var b BitSet
	b.Set(7)
	b.Set(130)
	assert.True(t, b.Test(7))
	assert.True(t, b.Test(130))
	assert.False(t, b.Test(64))
	assert.Equal(t, 2, b.Count())
}

func TestBitSetRanges(t *testing.T) {
	var b BitSet
	b.Set(2)
	b.Set(70)

	assert.True(t, b.AnyRange(0, 3))
	assert.False(t, b.AnyRange(3, 70))
	assert.True(t, b.AnyFrom(3))
	assert.True(t, b.AnyFrom(70))
	assert.False(t, b.AnyFrom(71))
	assert.True(t, b.NoneFrom(71))
	assert.True(t, b.NoneEnd(2))
	assert.False(t, b.NoneEnd(3))
}

func TestBitSetShiftedDown(t *testing.T) {
	var b BitSet
	b.Set(0)
	b.Set(5)
	b.Set(130)

	s := b.ShiftedDown(1)
	assert.False(t, s.Test(0))
	assert.True(t, s.Test(4))
	assert.True(t, s.Test(129))
	assert.Equal(t, 2, s.Count())

	z := b.ShiftedDown(0)
	assert.True(t, z.Test(0))
	assert.Equal(t, 3, z.Count())
}

func TestBitSetUnion(t *testing.T) {
	var a, b BitSet
	a.Set(1)
	b.Set(90)
	a.Union(&b)
	assert.True(t, a.Test(1))
	assert.True(t, a.Test(90))
	assert.False(t, b.Test(1))
}
