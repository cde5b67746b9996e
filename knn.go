package mqrtree

import (
	"container/heap"
	"sort"

	"github.com/micycle1/mqrtree-go/geom"
	"github.com/micycle1/mqrtree-go/mqrerr"
)

// pqItem is a pending node-or-leaf candidate in the best-first k-NN queue,
// keyed by squared distance from the query point: for a node, the squared
// distance to its MBR (0 if the point is inside); for a leaf, the squared
// distance to its envelope's centroid. Mirrors the entryWithChildMarker
// shape missinglink-simplefeatures/nearest.go uses for the same
// container/heap-based nearest-neighbour pattern.
type pqItem[T any] struct {
	dist2  float64
	isNode bool
	node   *node[T]
	leaf   *entry[T]
}

type priorityQueue[T any] []pqItem[T]

func (pq priorityQueue[T]) Len() int            { return len(pq) }
func (pq priorityQueue[T]) Less(i, j int) bool  { return pq[i].dist2 < pq[j].dist2 }
func (pq priorityQueue[T]) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue[T]) Push(x interface{}) { *pq = append(*pq, x.(pqItem[T])) }
func (pq *priorityQueue[T]) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

func pushNode[T any](pq *priorityQueue[T], n *node[T], x, y float64) {
	if n == nil {
		return
	}
	for _, e := range n.children {
		pushEntry(pq, e, x, y)
	}
	if n.chainNext != nil {
		pushEntry(pq, n.chainNext, x, y)
	}
}

func pushEntry[T any](pq *priorityQueue[T], e *entry[T], x, y float64) {
	if e.isInternal() {
		heap.Push(pq, pqItem[T]{dist2: e.child.mbr.DistanceToPoint(x, y), isNode: true, node: e.child})
		return
	}
	cx, cy := e.mbr.Centroid()
	dx, dy := cx-x, cy-y
	heap.Push(pq, pqItem[T]{dist2: dx*dx + dy*dy, leaf: e})
}

// KNNSearch returns up to k payloads whose leaf-envelope centroids are
// closest to (x, y) under Euclidean distance, ordered by increasing
// distance. This is the best-first strategy of spec §4.6: a min-priority
// queue over squared distance, seeded with the root, terminating once k
// candidates are collected and the queue's minimum key can no longer beat
// the k-th candidate.
func (t *Tree[T]) KNNSearch(x, y float64, k int) ([]T, error) {
	if k <= 0 {
		return nil, mqrerr.InvalidK(k)
	}
	if t.root.isEmpty() {
		return nil, nil
	}

	pq := &priorityQueue[T]{}
	heap.Init(pq)
	pushNode(pq, t.root, x, y)

	var dists []float64
	var payloads []T

	for pq.Len() > 0 {
		if len(payloads) >= k && (*pq)[0].dist2 >= dists[k-1] {
			break
		}
		item := heap.Pop(pq).(pqItem[T])
		if item.isNode {
			pushNode(pq, item.node, x, y)
			continue
		}
		insertByDistance(&dists, &payloads, item.dist2, item.leaf.payload)
	}

	if len(payloads) > k {
		payloads = payloads[:k]
	}
	return payloads, nil
}

func insertByDistance[T any](dists *[]float64, payloads *[]T, d float64, p T) {
	i := len(*dists)
	*dists = append(*dists, d)
	*payloads = append(*payloads, p)
	for i > 0 && (*dists)[i-1] > d {
		(*dists)[i], (*dists)[i-1] = (*dists)[i-1], (*dists)[i]
		(*payloads)[i], (*payloads)[i-1] = (*payloads)[i-1], (*payloads)[i]
		i--
	}
}

// candidate pairs a leaf payload with its squared distance from a k-NN
// query point, for the descend-then-validate strategy below.
type candidate[T any] struct {
	dist2   float64
	payload T
}

// KNNSearchDescend is the alternative descend-then-validate strategy
// spec §4.6 describes as "the source's starting point variant": descend
// into the quadrant containing the query point while the subtree holds
// more than k leaves, gather candidates from that subtree, and validate
// the k-th candidate distance against the distance from the query point
// to each of the starting node's four MBR sides. On a failed validation
// it backtracks one level at a time via node.parent — widening the
// candidate set to the parent's subtree and re-validating against the
// parent's MBR — rather than jumping straight to the root, per spec §4.6's
// "descending / validating / backtracking to parent / terminated" state
// machine. Once the root is reached with no valid candidate set, whatever
// candidates the root gather produced are returned. Returns the same
// k-set as KNNSearch modulo ties.
func (t *Tree[T]) KNNSearchDescend(x, y float64, k int) ([]T, error) {
	if k <= 0 {
		return nil, mqrerr.InvalidK(k)
	}
	if t.root.isEmpty() {
		return nil, nil
	}
	t.root.refreshLeafCount()

	cur := t.root
	for cur.mbr.Contains(x, y) && cur.leafCount > k {
		q := findInsertQuad(geom.NewEnvelope(x, y, x, y), cur.mbr)
		child, ok := cur.children[q]
		if !ok || !child.isInternal() {
			break
		}
		cur = child.child
	}

	var cands []candidate[T]
	for {
		cands = gatherCandidates(cur, x, y)
		if validatesAgainst(cands, k, cur.mbr, x, y) {
			break
		}
		if cur.parent == nil {
			break
		}
		cur = cur.parent
	}

	n := k
	if n > len(cands) {
		n = len(cands)
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = cands[i].payload
	}
	return out, nil
}

// validatesAgainst reports whether cands holds at least k candidates and
// the k-th candidate's squared distance is no greater than the squared
// distance from (x, y) to each of mbr's four sides — the guarantee that no
// closer leaf could be sitting outside mbr.
func validatesAgainst[T any](cands []candidate[T], k int, mbr geom.Envelope, x, y float64) bool {
	if len(cands) < k {
		return false
	}
	kth := cands[k-1].dist2
	dWest, dEast := x-mbr.MinX, mbr.MaxX-x
	dSouth, dNorth := y-mbr.MinY, mbr.MaxY-y
	return kth <= dWest*dWest && kth <= dEast*dEast && kth <= dSouth*dSouth && kth <= dNorth*dNorth
}

func gatherCandidates[T any](n *node[T], x, y float64) []candidate[T] {
	var out []candidate[T]
	collectCandidates(n, x, y, &out)
	sort.Slice(out, func(i, j int) bool { return out[i].dist2 < out[j].dist2 })
	return out
}

func collectCandidates[T any](n *node[T], x, y float64, out *[]candidate[T]) {
	if n == nil {
		return
	}
	for _, e := range n.children {
		collectEntryCandidate(e, x, y, out)
	}
	if n.chainNext != nil {
		collectEntryCandidate(n.chainNext, x, y, out)
	}
}

func collectEntryCandidate[T any](e *entry[T], x, y float64, out *[]candidate[T]) {
	if e.isInternal() {
		collectCandidates(e.child, x, y, out)
		return
	}
	cx, cy := e.mbr.Centroid()
	dx, dy := cx-x, cy-y
	*out = append(*out, candidate[T]{dist2: dx*dx + dy*dy, payload: e.payload})
}
