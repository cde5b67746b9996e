package morton

import (
	"sort"
	"testing"

	"github.com/micycle1/mqrtree-go/geom"
	"github.com/stretchr/testify/require"
)

func TestCodeMonotonicAlongDiagonal(t *testing.T) {
	bounds := geom.NewEnvelope(0, 0, 100, 100)
	var codes []uint32
	for i := 0; i < 10; i++ {
		pos := float64(i) * 10
		env := geom.NewEnvelope(pos, pos, pos, pos)
		codes = append(codes, Code(env, bounds))
	}
	require.True(t, sort.SliceIsSorted(codes, func(i, j int) bool { return codes[i] < codes[j] }))
}

func TestCodeDegenerateBounds(t *testing.T) {
	bounds := geom.NewEnvelope(5, 5, 5, 5)
	require.Equal(t, uint32(0), Code(geom.NewEnvelope(5, 5, 5, 5), bounds))
}

func TestSortByMortonCode(t *testing.T) {
	items := []Item[string]{
		{Envelope: geom.NewEnvelope(90, 90, 90, 90), Value: "far"},
		{Envelope: geom.NewEnvelope(0, 0, 0, 0), Value: "near"},
		{Envelope: geom.NewEnvelope(45, 45, 45, 45), Value: "mid"},
	}
	SortByMortonCode(items)
	require.Equal(t, "near", items[0].Value)
	require.Equal(t, "far", items[len(items)-1].Value)
}

func TestSortByMortonCodeEmpty(t *testing.T) {
	var items []Item[int]
	SortByMortonCode(items) // must not panic
	require.Empty(t, items)
}
