// Package boxqueue implements the binary max-heap priority queue of spec
// §4.1, generalized from the teacher's population-ordered cluster queue
// (soniakeys-quant/median/median.go's `queue` type) to an arbitrary
// comparator over any item type.
//
// Grounded on median/median.go's queue (a container/heap.Interface wrapping
// a []cluster, ordered by population) and on
// original_source/libImaging/QuantHeap.c, whose _heap_grow doubles the
// backing array and explicitly checks for `newsize > INT_MAX/sizeof(void*)`
// before committing to the larger allocation. Go's append already grows
// slices without integer overflow, so the equivalent check here instead
// bounds the queue against a maximum item count, preserving the original's
// observable contract: push beyond the bound fails with ErrOutOfMemory
// instead of corrupting memory.
package boxqueue

import (
	"container/heap"
	"math"

	"github.com/pkg/errors"

	"github.com/pixelquant/quant/internal/qerr"
)

// maxItems bounds queue growth, standing in for QuantHeap.c's
// INT_MAX/sizeof(void*) overflow guard.
const maxItems = math.MaxInt32

// Less reports whether a has strictly higher priority than b, i.e. whether
// a should be popped before b. The box tree builder uses "pixel count
// greater" as its Less (spec §4.1's max-heap-by-population).
type Less[T any] func(a, b T) bool

// Queue is a binary max-heap over items of type T, ordered by a caller
// supplied Less.
type Queue[T any] struct {
	items []T
	less  Less[T]
}

// New creates an empty queue ordered by less.
func New[T any](less Less[T]) *Queue[T] {
	return &Queue[T]{less: less}
}

// Len implements heap.Interface.
func (q *Queue[T]) Len() int { return len(q.items) }

// Less implements heap.Interface.
func (q *Queue[T]) Less(i, j int) bool { return q.less(q.items[i], q.items[j]) }

// Swap implements heap.Interface.
func (q *Queue[T]) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

// Push implements heap.Interface; use Queue.Push to enqueue items.
func (q *Queue[T]) Push(x any) { q.items = append(q.items, x.(T)) }

// Pop implements heap.Interface; use Queue.Pop to dequeue items.
func (q *Queue[T]) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

// PushItem inserts item, restoring the heap property. It fails with
// ErrOutOfMemory once the queue would exceed maxItems, matching the bounds
// check QuantHeap.c performs before every backing-array growth.
func (q *Queue[T]) PushItem(item T) error {
	if len(q.items) >= maxItems {
		return errors.Wrap(qerr.ErrOutOfMemory, "boxqueue: queue growth would exceed maximum size")
	}
	heap.Push(q, item)
	return nil
}

// PopItem removes and returns the highest-priority item. It returns
// ErrEmpty if the queue has no items.
func (q *Queue[T]) PopItem() (T, error) {
	var zero T
	if len(q.items) == 0 {
		return zero, ErrEmpty
	}
	return heap.Pop(q).(T), nil
}

// Peek returns the highest-priority item without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	return q.items[0], true
}

// ErrEmpty is returned by PopItem when the queue has no items.
var ErrEmpty = errors.New("boxqueue: queue is empty")
