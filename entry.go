package mqrtree

import "github.com/micycle1/mqrtree-go/geom"

// entry is a child record within a node's slot. It is exactly one of two
// shapes: a leaf entry owning a payload and its immutable envelope, or an
// internal entry referencing a child node and mirroring that child's
// current MBR.
type entry[T any] struct {
	mbr     geom.Envelope
	payload T
	child   *node[T]
}

func leafEntry[T any](mbr geom.Envelope, payload T) *entry[T] {
	return &entry[T]{mbr: mbr.Copy(), payload: payload}
}

func internalEntry[T any](child *node[T]) *entry[T] {
	return &entry[T]{mbr: child.mbr, child: child}
}

func (e *entry[T]) isInternal() bool { return e.child != nil }
