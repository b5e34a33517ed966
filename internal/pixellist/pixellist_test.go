package pixellist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainValues(t *testing.T, l *List, axis int) []uint8 {
	t.Helper()
	var vals []uint8
	idx := l.Head[axis]
	var prev int32 = Nil
	for idx != Nil {
		assert.Equal(t, prev, l.Nodes[idx].Prev[axis])
		vals = append(vals, l.Channel(idx, axis))
		prev = idx
		idx = l.Nodes[idx].Next[axis]
	}
	assert.Equal(t, prev, l.Tail[axis])
	return vals
}

func TestBuildSortsEachAxisIndependently(t *testing.T) {
	entries := []Entry{
		{R: 5, G: 200, B: 10, Count: 1},
		{R: 1, G: 100, B: 250, Count: 2},
		{R: 9, G: 50, B: 0, Count: 3},
		{R: 3, G: 150, B: 100, Count: 4},
	}
	l := Build(entries)
	require.Len(t, l.Nodes, 4)

	r := chainValues(t, l, 0)
	g := chainValues(t, l, 1)
	b := chainValues(t, l, 2)

	assert.Equal(t, []uint8{1, 3, 5, 9}, r)
	assert.Equal(t, []uint8{50, 100, 150, 200}, g)
	assert.Equal(t, []uint8{0, 10, 100, 250}, b)
}

func TestBuildSingleEntry(t *testing.T) {
	l := Build([]Entry{{R: 1, G: 2, B: 3, Count: 1}})
	for axis := 0; axis < 3; axis++ {
		assert.Equal(t, l.Head[axis], l.Tail[axis])
		assert.Equal(t, Nil, l.Nodes[l.Head[axis]].Prev[axis])
		assert.Equal(t, Nil, l.Nodes[l.Head[axis]].Next[axis])
	}
}

func TestBuildEmpty(t *testing.T) {
	l := Build(nil)
	for axis := 0; axis < 3; axis++ {
		assert.Equal(t, Nil, l.Head[axis])
		assert.Equal(t, Nil, l.Tail[axis])
	}
}

func TestBuildStableOnDuplicateValues(t *testing.T) {
	entries := []Entry{
		{R: 5, G: 5, B: 5, Count: 1},
		{R: 5, G: 5, B: 5, Count: 2},
		{R: 5, G: 5, B: 5, Count: 3},
	}
	l := Build(entries)
	r := chainValues(t, l, 0)
	assert.Equal(t, []uint8{5, 5, 5}, r)
}
