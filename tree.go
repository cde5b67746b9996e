package mqrtree

import (
	"reflect"

	"github.com/micycle1/mqrtree-go/geom"
	"github.com/micycle1/mqrtree-go/mqrerr"
)

// defaultIterationCap is the soft bound on queue-drain iterations named in
// spec §4.4. Exceeding it during insertion signals a rebalancing
// pathology, not legitimate work.
const defaultIterationCap = 50000

// Tree is an in-memory MQR-Tree spatial index over payloads of type T. Its
// zero value is not usable; construct one with New. A Tree is not safe
// for concurrent mutation; concurrent read-only access is safe only while
// no writer is active.
type Tree[T any] struct {
	root         *node[T]
	iterationCap int
}

// New returns an empty Tree.
func New[T any]() *Tree[T] {
	return &Tree[T]{
		root:         newNode[T](nil),
		iterationCap: defaultIterationCap,
	}
}

// Insert adds payload under the given envelope. The envelope is defensively
// copied on entry and is treated as immutable from then on. Returns an
// error without mutating the tree if the envelope is malformed (max < min
// on some axis) or payload is a nil pointer/interface/map/slice/chan/func
// where a live value is expected.
func (t *Tree[T]) Insert(payload T, env geom.Envelope) error {
	if !env.Valid() {
		return mqrerr.InvalidEnvelope(env.MinX, env.MinY, env.MaxX, env.MaxY)
	}
	if isNilPayload(payload) {
		return mqrerr.NilPayload
	}
	return t.insertEntry(t.root, leafEntry(env, payload), 0)
}

func isNilPayload[T any](v T) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
