package mqrtree

import "github.com/micycle1/mqrtree-go/geom"

// adjustNode recomputes a node's MBR from scratch as the union of its
// current entries (including any CENTER chain), mirroring MQRTree.java's
// adjustNode helper. It is never called on the hot insert path — P1 is
// maintained incrementally on every mutation — but lets invariant-checking
// tests assert P1 independently of that incremental bookkeeping.
func adjustNode[T any](n *node[T]) geom.Envelope {
	env := geom.Empty()
	for _, e := range n.children {
		env = env.Union(e.mbr)
	}
	if n.chainNext != nil {
		env = env.Union(n.chainNext.mbr)
	}
	return env
}
