// Package boxtree implements the median-cut box partitioner of spec §4.4:
// a binary tree of color-space boxes, repeatedly splitting the box with the
// largest pixel population along its widest luminance-weighted axis until
// either the requested color budget or the available distinct colors is
// exhausted.
//
// Grounded on original_source/libImaging/Quant.c's median_cut (the
// pop/split/push loop), split (luminance-weighted axis choice), splitlists
// (population bisection with tie-block handling) and annotate_hash_table
// (left-first leaf numbering). The recursive left/right pointer tree maps
// directly onto Go *Box values; only the per-axis pixel chains live in the
// arena-indexed pixellist.List, per spec §9.
package boxtree

import (
	"github.com/pixelquant/quant/internal/boxqueue"
	"github.com/pixelquant/quant/internal/pixellist"
	"github.com/pixelquant/quant/internal/pixelmap"
)

// luminanceWeights are the R,G,B weights Quant.c uses both to pick a box's
// widest axis and (via Palette) to pick a cluster's widest channel.
var luminanceWeights = [3]int{77, 150, 29}

// Box is one node of the median-cut tree. Head/Tail index into the shared
// pixellist.List and bound this box's sub-chain on each axis. A Box with
// Left == nil and Right == nil is a leaf: either it was never split
// (queue still held it when the color budget ran out) or it was found to
// be a single point in color space (Volume() == 1) and skipped.
type Box struct {
	Head, Tail [3]int32
	PixelCount uint64
	Axis       int
	Left       *Box
	Right      *Box
	Index      int
}

// Tree is a complete median-cut partition of a pixel list.
type Tree struct {
	List *pixellist.List
	Root *Box
}

// Volume is the number of distinct colors representable within the box:
// the product of each axis's (max-min+1) range. Volume == 1 means every
// pixel remaining in the box is the exact same color; such a box cannot be
// usefully split further.
func Volume(list *pixellist.List, b *Box) uint64 {
	v := uint64(1)
	for axis := 0; axis < 3; axis++ {
		lo := list.Channel(b.Head[axis], axis)
		hi := list.Channel(b.Tail[axis], axis)
		v *= uint64(hi) - uint64(lo) + 1
	}
	return v
}

// Build partitions list into at most nColors boxes, splitting the
// highest-population splittable box first (spec §4.4/§4.1). It stops early
// if no more splittable boxes remain, matching median_cut's behavior when
// the image has fewer distinct colors than requested.
func Build(list *pixellist.List, totalPixels uint64, nColors int) (*Tree, error) {
	root := &Box{
		Head:       list.Head,
		Tail:       list.Tail,
		PixelCount: totalPixels,
		Index:      -1,
	}
	tree := &Tree{List: list, Root: root}

	if nColors <= 1 {
		return tree, nil
	}

	queue := boxqueue.New(func(a, b *Box) bool { return a.PixelCount > b.PixelCount })
	if err := queue.PushItem(root); err != nil {
		return nil, err
	}

	budget := nColors - 1
outer:
	for budget > 0 {
		var box *Box
		for {
			b, err := queue.PopItem()
			if err != nil {
				break outer
			}
			if b.PixelCount == 0 || Volume(list, b) == 1 {
				continue
			}
			box = b
			break
		}

		left, right := splitBox(list, box)
		box.Left = left
		box.Right = right

		if err := queue.PushItem(left); err != nil {
			return nil, err
		}
		if err := queue.PushItem(right); err != nil {
			return nil, err
		}
		budget--
	}

	return tree, nil
}

// chooseAxis picks the axis with the largest luminance-weighted range,
// ties favoring the lower axis index (R before G before B), matching
// split's "best < f[i]" strict comparison in Quant.c.
func chooseAxis(list *pixellist.List, b *Box) int {
	best := 0
	bestF := -1
	for axis := 0; axis < 3; axis++ {
		lo := list.Channel(b.Head[axis], axis)
		hi := list.Channel(b.Tail[axis], axis)
		f := int(hi-lo) * luminanceWeights[axis]
		if f > bestF {
			bestF = f
			best = axis
		}
	}
	return best
}

// splitBox partitions b into two child boxes along its widest axis,
// bisecting by population and re-threading all three per-axis chains to
// reflect the new membership. b itself is left with its Head/Tail intact
// (the caller reads them before this point) but its pixels are now owned
// by the two returned children.
func splitBox(list *pixellist.List, b *Box) (left, right *Box) {
	axis := chooseAxis(list, b)
	total := b.PixelCount

	var leftCount uint64
	splitNode := b.Head[axis]
	var prevNode int32 = pixellist.Nil
	for {
		cnt := uint64(list.Nodes[splitNode].Count)
		if (leftCount+cnt)*2 > total {
			break
		}
		leftCount += cnt
		prevNode = splitNode
		splitNode = list.Nodes[splitNode].Next[axis]
	}

	// Tie-block extension: every node sharing splitNode's channel value
	// must land on the same side as splitNode (the right group), so walk
	// prevNode back across any run of equal values straddling the cut.
	splitVal := list.Channel(splitNode, axis)
	for prevNode != pixellist.Nil && list.Channel(prevNode, axis) == splitVal {
		leftCount -= uint64(list.Nodes[prevNode].Count)
		splitNode = prevNode
		prevNode = list.Nodes[prevNode].Prev[axis]
	}

	// Empty-left-group fallback: the minimum-valued node on this axis
	// already carries more than half the box's population, so bisection
	// plus tie extension left nothing in the left group (prevNode never
	// advanced off its Nil sentinel). Carve the leading tie-block at
	// Head's value into the left group instead, symmetric to the
	// empty-right-group fallback below.
	if prevNode == pixellist.Nil {
		headVal := list.Channel(b.Head[axis], axis)
		var runCount uint64
		node := b.Head[axis]
		for node != pixellist.Nil && list.Channel(node, axis) == headVal {
			runCount += uint64(list.Nodes[node].Count)
			prevNode = node
			node = list.Nodes[node].Next[axis]
		}
		splitNode = node
		leftCount = runCount
	}

	// Empty-right-group fallback: bisection plus tie extension consumed
	// the entire chain into the left group. Carve the trailing run at
	// Tail's value back out into the right group instead.
	if splitNode == pixellist.Nil {
		tailVal := list.Channel(b.Tail[axis], axis)
		node := b.Tail[axis]
		for {
			p := list.Nodes[node].Prev[axis]
			if p == pixellist.Nil || list.Channel(p, axis) != tailVal {
				break
			}
			node = p
		}
		splitNode = node
		prevNode = list.Nodes[node].Prev[axis]

		var runCount uint64
		for n := splitNode; n != pixellist.Nil; n = list.Nodes[n].Next[axis] {
			runCount += uint64(list.Nodes[n].Count)
		}
		leftCount = total - runCount
	}

	// Cut the split axis's chain in place: it is already contiguous and
	// sorted, so no re-threading is needed beyond severing the link.
	if prevNode != pixellist.Nil {
		list.Nodes[prevNode].Next[axis] = pixellist.Nil
	}
	list.Nodes[splitNode].Prev[axis] = pixellist.Nil

	leftBox := &Box{PixelCount: leftCount, Index: -1}
	rightBox := &Box{PixelCount: total - leftCount, Index: -1}

	if prevNode != pixellist.Nil {
		leftBox.Head[axis] = b.Head[axis]
		leftBox.Tail[axis] = prevNode
	} else {
		leftBox.Head[axis] = pixellist.Nil
		leftBox.Tail[axis] = pixellist.Nil
	}
	rightBox.Head[axis] = splitNode
	rightBox.Tail[axis] = b.Tail[axis]

	// Mark membership for the other two axes using Flag, then re-thread
	// each of those chains into two sub-chains preserving relative order.
	if prevNode != pixellist.Nil {
		for n := b.Head[axis]; ; n = list.Nodes[n].Next[axis] {
			list.Nodes[n].Flag = false
			if n == prevNode {
				break
			}
		}
	}
	for n := splitNode; ; n = list.Nodes[n].Next[axis] {
		list.Nodes[n].Flag = true
		if n == b.Tail[axis] {
			break
		}
	}

	for ax := 0; ax < 3; ax++ {
		if ax == axis {
			continue
		}
		lh, lt, rh, rt := partitionChain(list, ax, b.Head[ax], b.Tail[ax])
		leftBox.Head[ax], leftBox.Tail[ax] = lh, lt
		rightBox.Head[ax], rightBox.Tail[ax] = rh, rt
	}

	return leftBox, rightBox
}

// partitionChain walks the chain [head,tail] along axis ax and splits it
// into two new sub-chains according to each node's Flag (set by the
// caller), preserving relative order within each side.
func partitionChain(list *pixellist.List, ax int, head, tail int32) (leftHead, leftTail, rightHead, rightTail int32) {
	leftHead, leftTail = pixellist.Nil, pixellist.Nil
	rightHead, rightTail = pixellist.Nil, pixellist.Nil

	n := head
	for {
		next := list.Nodes[n].Next[ax]
		if list.Nodes[n].Flag {
			list.Nodes[n].Prev[ax] = rightTail
			if rightTail != pixellist.Nil {
				list.Nodes[rightTail].Next[ax] = n
			} else {
				rightHead = n
			}
			rightTail = n
		} else {
			list.Nodes[n].Prev[ax] = leftTail
			if leftTail != pixellist.Nil {
				list.Nodes[leftTail].Next[ax] = n
			} else {
				leftHead = n
			}
			leftTail = n
		}
		if n == tail {
			break
		}
		n = next
	}
	if leftTail != pixellist.Nil {
		list.Nodes[leftTail].Next[ax] = pixellist.Nil
	}
	if rightTail != pixellist.Nil {
		list.Nodes[rightTail].Next[ax] = pixellist.Nil
	}
	return leftHead, leftTail, rightHead, rightTail
}

// Annotate walks the tree left-first, assigns each leaf a consecutive
// index starting at 0, and writes every pixel the leaf owns into m keyed
// by its exact (unscaled) color with the leaf's index as value. It returns
// the number of leaves found. Mirrors annotate_hash_table.
func Annotate(list *pixellist.List, root *Box, m *pixelmap.Map) int {
	next := 0
	var walk func(b *Box)
	walk = func(b *Box) {
		if b == nil {
			return
		}
		if b.Left == nil && b.Right == nil {
			if b.Head[0] != pixellist.Nil {
				b.Index = next
				for n := b.Head[0]; n != pixellist.Nil; n = list.Nodes[n].Next[0] {
					node := &list.Nodes[n]
					m.Insert(pixelmap.Key{R: node.R, G: node.G, B: node.B}, uint32(next))
				}
				next++
			}
			return
		}
		walk(b.Left)
		walk(b.Right)
	}
	walk(root)
	return next
}
