package mqrtree

import (
	"fmt"

	"github.com/micycle1/mqrtree-go/geom"
	"github.com/micycle1/mqrtree-go/mqrerr"
)

// findInsertQuad computes the quadrant entryMBR belongs to relative to
// nodeMBR, by comparing centroids. Equality is exact double comparison —
// only centroids that arithmetically coincide route to CENTER. Ties on
// each axis resolve toward the east/north slot.
func findInsertQuad(entryMBR, nodeMBR geom.Envelope) Quadrant {
	ex, ey := entryMBR.Centroid()
	nx, ny := nodeMBR.Centroid()
	if ex == nx && ey == ny {
		return CENTER
	}
	if ex < nx {
		if ey < ny {
			return SW
		}
		return NW
	}
	if ey >= ny {
		return NE
	}
	return SE
}

// queueItem is a pending (quadrant, entry) placement awaiting the drain
// loop in drainQueue.
type queueItem[T any] struct {
	quad  Quadrant
	entry *entry[T]
}

// workQueue is the local FIFO insertion queue described in spec §4.4:
// seeded with the new entry, extended with any shifted children, and
// drained in order.
type workQueue[T any] struct {
	items []queueItem[T]
}

func (q *workQueue[T]) push(quad Quadrant, e *entry[T]) {
	q.items = append(q.items, queueItem[T]{quad: quad, entry: e})
}

func (q *workQueue[T]) empty() bool { return len(q.items) == 0 }

func (q *workQueue[T]) pop() queueItem[T] {
	item := q.items[0]
	q.items = q.items[1:]
	return item
}

// insertEntry inserts e into the subtree rooted at n, restoring all
// invariants before returning. This is the §4.2 algorithm. depth is the
// number of insertEntry recursions since the call from Tree.Insert, carried
// only so a cap-exceeded failure can report where in the tree it happened.
func (t *Tree[T]) insertEntry(n *node[T], e *entry[T], depth int) error {
	if n.isEmpty() {
		n.mbr = e.mbr
		n.typ = NodeCenter
		placeEntry(n, CENTER, e)
		n.invalidateLeafCount()
		return nil
	}

	origMBR := n.mbr
	n.mbr = n.mbr.Union(e.mbr)

	q := &workQueue[T]{}
	q.push(findInsertQuad(e.mbr, n.mbr), e)

	findShiftedObjs(q, n, origMBR)

	return t.drainQueue(n, q, depth)
}

// findShiftedObjs implements §4.3: whenever n's MBR expansion moves its
// centroid, every existing entry may no longer sit in the slot
// findInsertQuad would now assign it — not just the CENTER chain, but also
// any already-placed NW/NE/SW/SE entries, since they were placed against
// the old centroid. Each misplaced entry is removed and appended to q for
// reinsertion against n's new MBR. The CENTER chain is drained and requeued
// unconditionally (it's cheaper to reinsert than to re-derive which of its
// links still belong), then every remaining quadrant slot is checked.
func findShiftedObjs[T any](q *workQueue[T], n *node[T], origMBR geom.Envelope) {
	ocx, ocy := origMBR.Centroid()
	ncx, ncy := n.mbr.Centroid()
	if ocx == ncx && ocy == ncy {
		return
	}

	for _, e := range drainCenterChain(n) {
		q.push(findInsertQuad(e.mbr, n.mbr), e)
	}

	foundCenterShift := false
	for quad, e := range n.children {
		correct := findInsertQuad(e.mbr, n.mbr)
		if correct != quad {
			delete(n.children, quad)
			q.push(correct, e)
			if correct == CENTER {
				foundCenterShift = true
			}
		}
	}
	if foundCenterShift {
		n.typ = NodeCenter
	} else {
		n.typ = NodeNormal
	}
}

// drainCenterChain empties n's CENTER slot and its chain continuation,
// flattening any nested chain nodes, and returns every entry that was held
// there.
func drainCenterChain[T any](n *node[T]) []*entry[T] {
	var out []*entry[T]
	if e, ok := n.children[CENTER]; ok {
		out = append(out, e)
		delete(n.children, CENTER)
	}
	if n.chainNext != nil {
		if n.chainNext.isInternal() {
			sub := n.chainNext.child
			out = append(out, drainCenterChain(sub)...)
			for quad, e := range sub.children {
				out = append(out, e)
				delete(sub.children, quad)
			}
		} else {
			out = append(out, n.chainNext)
		}
		n.chainNext = nil
	}
	return out
}

// drainQueue implements §4.4: repeatedly pop an item and place it,
// recursing into existing subtrees and splitting on leaf collision. An
// iteration count above iterationCap signals an invariant-maintenance bug
// rather than legitimate rebalancing work; the resulting error is wrapped
// with the depth and occupancy of the node where the drain stalled, since
// the tree itself is unusable afterwards and that context is all a caller
// has left to diagnose the pathology with.
func (t *Tree[T]) drainQueue(n *node[T], q *workQueue[T], depth int) error {
	iterations := 0
	for !q.empty() {
		iterations++
		if iterations > t.iterationCap {
			return mqrerr.Wrap(mqrerr.IterationCapExceeded(t.iterationCap),
				fmt.Sprintf("draining insertion queue at depth %d (node holds %d entries, %d items still queued)",
					depth, len(n.children), len(q.items)))
		}

		item := q.pop()
		quad, e := item.quad, item.entry

		if quad == CENTER && n.typ != NodeCenter {
			n.typ = NodeCenter
		}
		if n.typ == NodeCenter && quad == CENTER {
			placeCenter(n, e)
			continue
		}

		existing, occupied := n.children[quad]
		switch {
		case !occupied:
			placeEntry(n, quad, e)
		case existing.isInternal():
			if err := t.insertEntry(existing.child, e, depth+1); err != nil {
				return err
			}
			existing.mbr = existing.child.mbr
		default:
			splitCollision(n, quad, existing, e)
		}
	}
	n.invalidateLeafCount()
	return nil
}

// placeCenter stores e as an occupant of n's CENTER slot, chaining through
// a nested sub-node when the slot (and its chain continuation) are already
// occupied. CENTER is the one slot that can receive more than one
// occupant, and it does so via this chain rather than by overwriting. It
// receives every entry whose centroid coincides exactly with n's centroid,
// and, from splitCollision, any two entries that resolve to the same
// quadrant against their own union's MBR: always the case when their
// centroids coincide (the union of two envelopes sharing a centroid shares
// that same centroid), and also the case when one envelope contains the
// other and both centroids fall on the same side of the union's centroid.
// placeCenter expands n.mbr to include e itself and keeps every chain
// link's MBR bookkeeping (sub.mbr, and the entry mirroring sub's MBR in its
// parent's chainNext) consistent with what it actually holds.
func placeCenter[T any](n *node[T], e *entry[T]) {
	n.mbr = n.mbr.Union(e.mbr)
	n.invalidateLeafCount()

	if _, occupied := n.children[CENTER]; !occupied {
		placeEntry(n, CENTER, e)
		return
	}
	if n.chainNext == nil {
		n.chainNext = e
		if e.isInternal() {
			e.child.parent = n
		}
		return
	}
	if n.chainNext.isInternal() {
		placeCenter(n.chainNext.child, e)
		n.chainNext.mbr = n.chainNext.child.mbr
		return
	}

	sub := newNode[T](n)
	sub.typ = NodeCenter
	sub.mbr = n.chainNext.mbr
	sub.children[CENTER] = n.chainNext
	placeCenter(sub, e)
	n.chainNext = internalEntry(sub)
}

// placeEntry stores e in n's quad slot, repointing e's child's parent
// back-reference at n when e is internal. Every direct (non-chaining)
// placement of a possibly-internal entry goes through this so the child's
// parent link tracks the node that actually owns it, per spec §4.4 step 5.
func placeEntry[T any](n *node[T], quad Quadrant, e *entry[T]) {
	n.children[quad] = e
	if e.isInternal() {
		e.child.parent = n
	}
}

// splitCollision implements the §4.4 step-5 collision split: both
// colliding entries are placed directly into a fresh child node keyed by
// their quadrant against the child's own MBR (the direct-placement
// semantics spec.md §9(i) calls for, as opposed to the source's
// task-scheduling transcription artifact). Both placements go through
// placeEntry/placeCenter so an internal existing or incoming entry's
// child is reparented onto the new child node rather than left pointing
// at n.
func splitCollision[T any](n *node[T], quad Quadrant, existing, incoming *entry[T]) {
	child := newNode[T](n)
	child.mbr = existing.mbr.Union(incoming.mbr)

	eq := findInsertQuad(existing.mbr, child.mbr)
	iq := findInsertQuad(incoming.mbr, child.mbr)
	if eq == iq {
		child.typ = NodeCenter
		placeCenter(child, existing)
		placeCenter(child, incoming)
	} else {
		placeEntry(child, eq, existing)
		placeEntry(child, iq, incoming)
	}
	n.children[quad] = internalEntry(child)
}
