package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardSet_AddHasRemove(t *testing.T) {
	s := NewCardSet(0, 63, 64, 80)

	assert.True(t, s.Has(0))
	assert.True(t, s.Has(63))
	assert.True(t, s.Has(64))
	assert.True(t, s.Has(80))
	assert.False(t, s.Has(1))
	assert.Equal(t, 4, s.Len())

	s.Remove(63)
	assert.False(t, s.Has(63))
	assert.Equal(t, 3, s.Len())
}

func TestCardSet_OutOfRange(t *testing.T) {
	var s CardSet
	s.Add(-1)
	s.Add(128)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has(-1))
	assert.False(t, s.Has(128))
}

func TestCardSet_Intersects(t *testing.T) {
	a := NewCardSet(1, 2, 70)
	b := NewCardSet(3, 4)
	assert.False(t, a.Intersects(b))

	b.Add(70)
	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
}

func TestCardSet_IterateAscending(t *testing.T) {
	s := NewCardSet(80, 0, 13, 64)
	var got []int
	s.Iterate(func(i int) bool {
		got = append(got, i)
		return true
	})
	assert.Equal(t, []int{0, 13, 64, 80}, got)
}

func TestCardSet_IterateEarlyStop(t *testing.T) {
	s := NewCardSet(1, 2, 3)
	var got []int
	s.Iterate(func(i int) bool {
		got = append(got, i)
		return len(got) < 2
	})
	assert.Equal(t, []int{1, 2}, got)
}
