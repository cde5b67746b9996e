package mqrtree

import "github.com/micycle1/mqrtree-go/geom"

// node is a single MQR-Tree node. It owns an MBR, a type tag, at most five
// quadrant-keyed entries, and (when its type is NodeCenter and its CENTER
// slot has more than one occupant) a chain continuation outside
// the quadrant map — see placeCenter in insert.go. The parent
// back-reference is weak: it never implies ownership, and exists so
// KNNSearchDescend can backtrack one level at a time when a candidate set
// fails validation against its starting node's MBR. Every site that moves
// an entry to a different owning node must repoint that entry's child's
// parent at its new owner — see placeEntry and placeCenter in insert.go.
type node[T any] struct {
	mbr       geom.Envelope
	typ       NodeType
	children  map[Quadrant]*entry[T]
	chainNext *entry[T]
	parent    *node[T]

	leafCount      int
	leafCountValid bool
}

func newNode[T any](parent *node[T]) *node[T] {
	return &node[T]{
		typ:      NodeNormal,
		children: make(map[Quadrant]*entry[T], 5),
		parent:   parent,
	}
}

func (n *node[T]) isEmpty() bool {
	return len(n.children) == 0 && n.chainNext == nil
}

// refreshLeafCount recomputes and caches the number of leaf payloads in
// the subtree rooted at n, recursing only into subtrees whose cache is
// stale. Used by KNNSearchDescend's starting-node selection.
func (n *node[T]) refreshLeafCount() int {
	if n.leafCountValid {
		return n.leafCount
	}
	count := 0
	for _, e := range n.children {
		count += e.leafCountContribution()
	}
	if n.chainNext != nil {
		count += n.chainNext.leafCountContribution()
	}
	n.leafCount = count
	n.leafCountValid = true
	return count
}

func (e *entry[T]) leafCountContribution() int {
	if e.isInternal() {
		return e.child.refreshLeafCount()
	}
	return 1
}

func (n *node[T]) invalidateLeafCount() {
	n.leafCountValid = false
}
