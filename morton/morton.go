// Package morton implements the z-order (Morton) pre-sort comparator that
// spec.md names as an external collaborator: a standalone helper used to
// order inputs before bulk insertion for better locality. It is not part
// of the MQR-Tree core and the tree never calls it itself.
//
// The bit-interleave step is grounded on bmharper-flatbush-go's
// hilbertXYToIndex/interleave helpers (same 16-bit-per-axis, bit-interleave
// building block), simplified to the straight Z-order interleave the
// original EnvelopeMortonComparator performs — no Hilbert rotation passes.
package morton

import (
	"sort"

	"github.com/micycle1/mqrtree-go/geom"
)

const bits = 16
const maxCoord = (1 << bits) - 1

// Code computes the 32-bit Morton code of env's centroid, normalised
// against bounds into [0, 2^16) per axis.
func Code(env, bounds geom.Envelope) uint32 {
	cx, cy := env.Centroid()
	ix := normalize(cx, bounds.MinX, bounds.MaxX)
	iy := normalize(cy, bounds.MinY, bounds.MaxY)
	return interleave(ix, iy)
}

func normalize(value, min, max float64) uint32 {
	if max == min {
		return 0
	}
	n := (value - min) / (max - min)
	if n < 0 {
		n = 0
	} else if n > 1 {
		n = 1
	}
	return uint32(n * float64(maxCoord))
}

// interleave places the low 16 bits of x in the even bit positions and the
// low 16 bits of y in the odd bit positions of the returned 32-bit code.
func interleave(x, y uint32) uint32 {
	var z uint32
	for i := uint32(0); i < bits; i++ {
		z |= ((x >> i) & 1) << (2 * i)
		z |= ((y >> i) & 1) << (2*i + 1)
	}
	return z
}

// Item pairs an Envelope with the arbitrary index or payload a caller wants
// carried alongside it through the sort.
type Item[T any] struct {
	Envelope geom.Envelope
	Value    T
}

// SortByMortonCode sorts items in place by ascending Morton code of their
// envelope centroids, computed against the union of all item envelopes.
func SortByMortonCode[T any](items []Item[T]) {
	if len(items) == 0 {
		return
	}
	bounds := geom.Empty()
	for _, it := range items {
		bounds = bounds.Union(it.Envelope)
	}
	codes := make([]uint32, len(items))
	for i, it := range items {
		codes[i] = Code(it.Envelope, bounds)
	}
	sort.Sort(&byCode[T]{items: items, codes: codes})
}

type byCode[T any] struct {
	items []Item[T]
	codes []uint32
}

func (b *byCode[T]) Len() int      { return len(b.items) }
func (b *byCode[T]) Swap(i, j int) {
	b.items[i], b.items[j] = b.items[j], b.items[i]
	b.codes[i], b.codes[j] = b.codes[j], b.codes[i]
}
func (b *byCode[T]) Less(i, j int) bool { return b.codes[i] < b.codes[j] }
