package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceAppendFindRemove(t *testing.T) {
	s := New[string]()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, -1, s.Find("a"))

	s.Append("a")
	s.Append("b")
	s.Append("a")
	require.Equal(t, 3, s.Len())
	assert.Equal(t, 0, s.Find("a"))
	assert.Equal(t, 1, s.Find("b"))

	require.True(t, s.Remove(s.Find("a")))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Find("a"), "later duplicate shifts down")
	assert.Equal(t, "b", *s.At(0))
}

func TestSequenceRemoveInvalidIndexIsTolerated(t *testing.T) {
	s := New(1, 2, 3)

	assert.False(t, s.Remove(-1))
	assert.False(t, s.Remove(3))
	assert.Equal(t, []int{1, 2, 3}, s.Values())
}

func TestSequenceAtPanicsOutOfBounds(t *testing.T) {
	s := New(10)

	assert.PanicsWithError(t, "collection: index 1 out of range [0,1)", func() { s.At(1) })
	assert.Panics(t, func() { s.At(-1) })
	assert.Panics(t, func() { New[int]().At(0) })
}

func TestSequenceAtReturnsMutableReference(t *testing.T) {
	s := New(1, 2)
	*s.At(1) = 5

	assert.Equal(t, []int{1, 5}, s.Values())
}

func TestSequenceCloneIsIndependent(t *testing.T) {
	original := New("x", "y")
	copied := original.Clone()

	copied.Append("z")
	*copied.At(0) = "changed"

	assert.Equal(t, -1, original.Find("z"))
	assert.Equal(t, "x", *original.At(0))
	assert.Equal(t, 2, original.Len())
}

func TestSequenceOfMapsDeepCopies(t *testing.T) {
	inner := NewMap[int, string]()
	inner.Append(1, "one")

	outer := NewFunc(
		func(a, b *Map[int, string]) bool { return a.Equal(b) },
		func(m *Map[int, string]) *Map[int, string] { return m.Clone() },
		inner,
	)
	inner.Append(2, "two")
	assert.Equal(t, 1, (*outer.At(0)).Len(), "append copies the element")

	copied := outer.Clone()
	(*copied.At(0)).Append(3, "three")
	assert.Equal(t, 1, (*outer.At(0)).Len())
	assert.False(t, outer.Equal(copied))
}

func TestSequenceEqual(t *testing.T) {
	assert.True(t, New(1, 2).Equal(New(1, 2)))
	assert.False(t, New(1, 2).Equal(New(2, 1)))
	assert.False(t, New(1).Equal(New(1, 1)))
	assert.True(t, New[int]().Equal(New[int]()))
}

func TestSequenceString(t *testing.T) {
	assert.Equal(t, "[Empty List]", New[int]().String())
	assert.Equal(t, "1\n2\n", New(1, 2).String())
}

func TestSequenceZeroValueIsUsable(t *testing.T) {
	var s Sequence[[]int]
	assert.Equal(t, -1, s.Find([]int{1}))
	assert.Equal(t, "[Empty List]", s.String())

	s.Append([]int{1, 2})
	s.Append([]int{3})
	require.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Find([]int{3}))

	other := s.Clone()
	assert.True(t, s.Equal(other))
	other.Append([]int{4})
	assert.False(t, s.Equal(other))
}
