// Package pixellist implements the triply-linked pixel list of spec §4.3:
// every distinct pixel participates in three doubly-linked chains, one per
// color channel, each kept sorted ascending by that channel's value.
//
// Grounded on original_source/libImaging/Quant.c's hash_to_list (splice at
// head of all three chains) and mergesort_pixels (recursive slow/fast-split
// mergesort with prev-pointer repair). Nodes live in a flat arena
// (List.Nodes) addressed by int32 index rather than pointers, per spec §9's
// note that cyclic/doubly-linked C structures map to an arena plus indices
// in Go.
package pixellist

// Nil is the sentinel "no node" index, standing in for C's NULL pointer.
const Nil int32 = -1

// Entry is one distinct pixel value and its occurrence count, the input to
// Build (spec §3, PixelMap entry once finalized into a list).
type Entry struct {
	R, G, B uint8
	Count   uint32
}

// Node is one arena-resident pixel list element. Flag is scratch space used
// by box splitting (internal/boxtree) to mark which side of a split a node
// fell on while chains are being re-threaded; pixellist itself never reads
// it.
type Node struct {
	R, G, B uint8
	Count   uint32
	Flag    bool
	Prev    [3]int32
	Next    [3]int32
}

// List is the arena of nodes plus the three chain head/tail indices.
type List struct {
	Nodes []Node
	Head  [3]int32
	Tail  [3]int32
}

// Channel returns the node's value along the given axis (0=R, 1=G, 2=B).
func (l *List) Channel(idx int32, axis int) uint8 {
	n := &l.Nodes[idx]
	switch axis {
	case 0:
		return n.R
	case 1:
		return n.G
	default:
		return n.B
	}
}

// Build constructs a List from entries: each entry becomes one node spliced
// at the head of all three axis chains, then each chain is independently
// mergesorted ascending by its axis value.
func Build(entries []Entry) *List {
	l := &List{Nodes: make([]Node, len(entries))}
	for axis := 0; axis < 3; axis++ {
		l.Head[axis] = Nil
		l.Tail[axis] = Nil
	}
	for i, e := range entries {
		idx := int32(i)
		l.Nodes[i] = Node{R: e.R, G: e.G, B: e.B, Count: e.Count}
		for axis := 0; axis < 3; axis++ {
			l.Nodes[i].Prev[axis] = Nil
			l.Nodes[i].Next[axis] = l.Head[axis]
			if l.Head[axis] != Nil {
				l.Nodes[l.Head[axis]].Prev[axis] = idx
			} else {
				l.Tail[axis] = idx
			}
			l.Head[axis] = idx
		}
	}
	for axis := 0; axis < 3; axis++ {
		l.Head[axis], l.Tail[axis] = l.mergesort(axis, l.Head[axis])
	}
	return l
}

// mergesort sorts the chain starting at head along axis, ascending, and
// returns the new (head, tail). Mirrors mergesort_pixels: split at the
// midpoint via slow/fast pointers, recurse, merge with prev-pointer repair.
func (l *List) mergesort(axis int, head int32) (int32, int32) {
	if head == Nil || l.Nodes[head].Next[axis] == Nil {
		if head != Nil {
			l.Nodes[head].Prev[axis] = Nil
			l.Nodes[head].Next[axis] = Nil
		}
		return head, head
	}
	leftHead, rightHead := l.splitHalf(axis, head)
	leftHead, _ = l.mergesort(axis, leftHead)
	rightHead, _ = l.mergesort(axis, rightHead)
	return l.merge(axis, leftHead, rightHead)
}

// splitHalf divides the chain at head into two roughly-equal halves using
// the classic slow/fast pointer walk, severing the link between them.
func (l *List) splitHalf(axis int, head int32) (int32, int32) {
	slow, fast := head, l.Nodes[head].Next[axis]
	for fast != Nil {
		fast = l.Nodes[fast].Next[axis]
		if fast != Nil {
			slow = l.Nodes[slow].Next[axis]
			fast = l.Nodes[fast].Next[axis]
		}
	}
	second := l.Nodes[slow].Next[axis]
	l.Nodes[slow].Next[axis] = Nil
	return head, second
}

// merge merges two already-sorted chains a and b along axis into one sorted
// chain, rebuilding Prev links as it goes, and returns (head, tail).
func (l *List) merge(axis int, a, b int32) (int32, int32) {
	head, tail := Nil, Nil
	appendNode := func(idx int32) {
		if head == Nil {
			head = idx
			l.Nodes[idx].Prev[axis] = Nil
		} else {
			l.Nodes[tail].Next[axis] = idx
			l.Nodes[idx].Prev[axis] = tail
		}
		tail = idx
	}
	for a != Nil && b != Nil {
		if l.Channel(a, axis) <= l.Channel(b, axis) {
			next := l.Nodes[a].Next[axis]
			appendNode(a)
			a = next
		} else {
			next := l.Nodes[b].Next[axis]
			appendNode(b)
			b = next
		}
	}
	for a != Nil {
		next := l.Nodes[a].Next[axis]
		appendNode(a)
		a = next
	}
	for b != Nil {
		next := l.Nodes[b].Next[axis]
		appendNode(b)
		b = next
	}
	if tail != Nil {
		l.Nodes[tail].Next[axis] = Nil
	}
	return head, tail
}
