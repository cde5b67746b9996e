package mqrtree

import (
	"math"
	"testing"

	"github.com/micycle1/mqrtree-go/geom"
	"github.com/stretchr/testify/require"
)

func env(minX, minY, maxX, maxY float64) geom.Envelope {
	return geom.NewEnvelope(minX, minY, maxX, maxY)
}

// checkInvariants walks the whole tree asserting P1-P3 (node MBR equals
// union of entries, entries sit in their findInsertQuad-assigned slot
// except under CENTER nodes, and every node has <= 5 entries). Modelled on
// peterstace-rtree's checkInvariants test helper.
func checkInvariants[T any](t *testing.T, tr *Tree[T]) {
	t.Helper()
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		if n == nil {
			return
		}
		if !n.isEmpty() {
			want := adjustNode(n)
			require.InDelta(t, want.MinX, n.mbr.MinX, 1e-9)
			require.InDelta(t, want.MinY, n.mbr.MinY, 1e-9)
			require.InDelta(t, want.MaxX, n.mbr.MaxX, 1e-9)
			require.InDelta(t, want.MaxY, n.mbr.MaxY, 1e-9)
		}
		require.LessOrEqual(t, len(n.children), 5)

		for quad, e := range n.children {
			if n.typ != NodeCenter {
				require.Equal(t, findInsertQuad(e.mbr, n.mbr), quad, "entry not in its assigned quadrant")
			}
			if e.isInternal() {
				require.Equal(t, n, e.child.parent)
				walk(e.child)
			}
		}
		if n.chainNext != nil && n.chainNext.isInternal() {
			walk(n.chainNext.child)
		}
	}
	walk(tr.root)
}

func collectLeaves[T any](n *node[T], out *[]T) {
	if n == nil {
		return
	}
	for _, e := range n.children {
		if e.isInternal() {
			collectLeaves(e.child, out)
		} else {
			*out = append(*out, e.payload)
		}
	}
	if n.chainNext != nil {
		if n.chainNext.isInternal() {
			collectLeaves(n.chainNext.child, out)
		} else {
			*out = append(*out, n.chainNext.payload)
		}
	}
}

func TestInsertEmptyNodeBecomesCenter(t *testing.T) {
	tr := New[string]()
	require.NoError(t, tr.Insert("a", env(1, 1, 1, 1)))
	require.Equal(t, NodeCenter, tr.root.typ)
	require.Equal(t, env(1, 1, 1, 1), tr.root.mbr)
}

func TestInsertRejectsInvalidEnvelope(t *testing.T) {
	tr := New[string]()
	err := tr.Insert("a", geom.Envelope{MinX: 5, MinY: 0, MaxX: 0, MaxY: 5})
	require.Error(t, err)
}

func TestInsertRejectsNilPayload(t *testing.T) {
	tr := New[*int]()
	err := tr.Insert(nil, env(0, 0, 1, 1))
	require.Error(t, err)
}

func TestInsertSingleLevelQuadrants(t *testing.T) {
	tr := New[string]()
	require.NoError(t, tr.Insert("origin", env(10, 10, 10, 10)))
	require.NoError(t, tr.Insert("sw", env(0, 0, 5, 5)))
	checkInvariants(t, tr)

	var got []string
	collectLeaves(tr.root, &got)
	require.ElementsMatch(t, []string{"origin", "sw"}, got)
}

func TestInsertCenterChainOnDuplicateCentroid(t *testing.T) {
	tr := New[string]()
	// All three share the centroid (0,0) but have distinct extents, so
	// each collides at CENTER and must chain rather than overwrite.
	require.NoError(t, tr.Insert("a", env(0, 0, 0, 0)))
	require.NoError(t, tr.Insert("b", env(-1, -1, 1, 1)))
	require.NoError(t, tr.Insert("c", env(-2, -2, 2, 2)))
	checkInvariants(t, tr)

	var got []string
	collectLeaves(tr.root, &got)
	require.ElementsMatch(t, []string{"a", "b", "c"}, got)
}

func TestInsertManyRandomMaintainsInvariants(t *testing.T) {
	rnd := newDeterministicRand(1)
	tr := New[int]()
	for i := 0; i < 300; i++ {
		x := rnd() * 200
		y := rnd() * 200
		w := rnd() * 5
		h := rnd() * 5
		require.NoError(t, tr.Insert(i, env(x, y, x+w, y+h)))
		checkInvariants(t, tr)
	}

	var got []int
	collectLeaves(tr.root, &got)
	require.Len(t, got, 300)
}

// newDeterministicRand returns a closure producing reproducible floats in
// [0, 1) from a simple linear congruential generator, avoiding a
// dependency on math/rand's global seed state across test runs.
func newDeterministicRand(seed uint64) func() float64 {
	state := seed
	return func() float64 {
		state = state*6364136223846793005 + 1442695040888963407
		return float64(state>>11) / float64(1<<53)
	}
}

func TestFindInsertQuadTieBreaksEastNorth(t *testing.T) {
	node := env(0, 0, 10, 10) // centroid (5,5)
	require.Equal(t, CENTER, findInsertQuad(env(5, 5, 5, 5), node))
	require.Equal(t, NE, findInsertQuad(env(5, 10, 5, 10), node))
	require.Equal(t, NW, findInsertQuad(env(0, 5, 0, 10), node))
	require.Equal(t, SE, findInsertQuad(env(10, 0, 10, 0), node))
	require.Equal(t, SW, findInsertQuad(env(0, 0, 0, 0), node))
}

func TestInsertionCapIsPositive(t *testing.T) {
	require.Greater(t, defaultIterationCap, 0)
	require.Less(t, defaultIterationCap, math.MaxInt32)
}

// TestDrainQueueIterationCapFires exercises the invariant-breach error kind
// directly: with a small cap, a queue holding more same-quadrant items than
// the cap allows must stop the drain and return mqrerr.IterationCapExceeded,
// wrapped with where in the tree the drain was when it gave up.
func TestDrainQueueIterationCapFires(t *testing.T) {
	tr := &Tree[int]{root: newNode[int](nil), iterationCap: 3}
	tr.root.mbr = env(0, 0, 100, 100)

	q := &workQueue[int]{}
	for i := 0; i < 10; i++ {
		q.push(CENTER, leafEntry(env(50, 50, 50, 50), i))
	}

	err := tr.drainQueue(tr.root, q, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "iteration cap")
	require.Contains(t, err.Error(), "depth 0")
}
