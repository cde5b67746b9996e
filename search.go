package mqrtree

import "github.com/micycle1/mqrtree-go/geom"

// Search returns every payload whose leaf envelope intersects query. It
// always descends into internal entries regardless of the current node's
// own MBR — node MBRs are not always tight enough to prune safely (spec
// §4.5, §9(iii)) — so this is correct even when invariant P1 is briefly
// violated mid-rebalance. Output order is unspecified.
func (t *Tree[T]) Search(query geom.Envelope) []T {
	var out []T
	searchAlways(t.root, query, &out)
	return out
}

func searchAlways[T any](n *node[T], query geom.Envelope, out *[]T) {
	if n == nil {
		return
	}
	for _, e := range n.children {
		searchEntryAlways(e, query, out)
	}
	if n.chainNext != nil {
		searchEntryAlways(n.chainNext, query, out)
	}
}

func searchEntryAlways[T any](e *entry[T], query geom.Envelope, out *[]T) {
	if e.isInternal() {
		searchAlways(e.child, query, out)
	} else if e.mbr.Intersects(query) {
		*out = append(*out, e.payload)
	}
}

// SearchPruned is the faster, opportunistic variant: it prunes a subtree
// as soon as a node's (or internal entry's) own MBR fails to intersect
// the query. It is equivalent to Search only once invariant P1 — a node's
// MBR equals the union of its entries' MBRs — holds strictly for every
// node visited, which this implementation maintains incrementally on
// every insertion. Prefer Search when that guarantee is in doubt.
func (t *Tree[T]) SearchPruned(query geom.Envelope) []T {
	var out []T
	searchPruned(t.root, query, &out)
	return out
}

func searchPruned[T any](n *node[T], query geom.Envelope, out *[]T) {
	if n == nil || !n.mbr.Intersects(query) {
		return
	}
	for _, e := range n.children {
		searchEntryPruned(e, query, out)
	}
	if n.chainNext != nil {
		searchEntryPruned(n.chainNext, query, out)
	}
}

func searchEntryPruned[T any](e *entry[T], query geom.Envelope, out *[]T) {
	if !e.mbr.Intersects(query) {
		return
	}
	if e.isInternal() {
		searchPruned(e.child, query, out)
	} else {
		*out = append(*out, e.payload)
	}
}
