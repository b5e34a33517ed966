package boxqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelquant/quant/internal/qerr"
)

func TestPopOrdersByPriority(t *testing.T) {
	q := New(func(a, b int) bool { return a > b })
	for _, v := range []int{3, 1, 4, 1, 5, 9, 2, 6} {
		require.NoError(t, q.PushItem(v))
	}

	var got []int
	for q.Len() > 0 {
		v, err := q.PopItem()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int{9, 6, 5, 4, 3, 2, 1, 1}, got)
}

func TestPopEmptyReturnsErrEmpty(t *testing.T) {
	q := New(func(a, b int) bool { return a > b })
	_, err := q.PopItem()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestPeekDoesNotRemove(t *testing.T) {
	q := New(func(a, b int) bool { return a > b })
	require.NoError(t, q.PushItem(1))
	require.NoError(t, q.PushItem(2))

	top, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 2, top)
	assert.Equal(t, 2, q.Len())
}

func TestPushRejectsBeyondMaxItems(t *testing.T) {
	q := New(func(a, b int) bool { return a > b })
	q.items = make([]int, maxItems)

	err := q.PushItem(1)
	assert.ErrorIs(t, err, qerr.ErrOutOfMemory)
}
