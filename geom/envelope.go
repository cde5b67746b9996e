// Package geom provides the 2D axis-aligned bounding box primitive used
// throughout the MQR-Tree: union, intersection testing, centroid, and
// centroid containment.
package geom

import "math"

// Envelope is an axis-aligned bounding box over double-precision
// coordinates. The zero value is the degenerate point envelope at the
// origin; use NewEnvelope to build one from its extremes, or Empty for the
// inverted identity element of repeated Union calls.
type Envelope struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewEnvelope builds an Envelope from the given extremes, normalising
// reversed min/max pairs. Callers that need to reject malformed input
// (max < min) rather than silently normalise it should validate before
// calling this.
func NewEnvelope(minX, minY, maxX, maxY float64) Envelope {
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Envelope{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Empty returns an inverted envelope suitable as the identity element for
// repeated Union calls.
func Empty() Envelope {
	return Envelope{
		MinX: math.MaxFloat64,
		MinY: math.MaxFloat64,
		MaxX: -math.MaxFloat64,
		MaxY: -math.MaxFloat64,
	}
}

// Valid reports whether the envelope's min/max bounds are consistent.
func (e Envelope) Valid() bool {
	return e.MinX <= e.MaxX && e.MinY <= e.MaxY
}

// Copy returns a value copy of e. Envelope is already a plain value type,
// so this exists to make defensive-copy call sites self-documenting at the
// point an immutable leaf envelope is adopted.
func (e Envelope) Copy() Envelope {
	return e
}

// Union returns the smallest envelope containing both e and other.
func (e Envelope) Union(other Envelope) Envelope {
	return Envelope{
		MinX: math.Min(e.MinX, other.MinX),
		MinY: math.Min(e.MinY, other.MinY),
		MaxX: math.Max(e.MaxX, other.MaxX),
		MaxY: math.Max(e.MaxY, other.MaxY),
	}
}

// ExpandToInclude mutates e in place to be the union of e and other,
// mirroring JTS's Envelope.expandToInclude used by the source this index
// is modelled on.
func (e *Envelope) ExpandToInclude(other Envelope) {
	*e = e.Union(other)
}

// Intersects reports whether e and other overlap (touching counts as
// intersecting).
func (e Envelope) Intersects(other Envelope) bool {
	return e.MinX <= other.MaxX && e.MaxX >= other.MinX &&
		e.MinY <= other.MaxY && e.MaxY >= other.MinY
}

// Contains reports whether the point (x, y) lies within e, inclusive of
// the boundary.
func (e Envelope) Contains(x, y float64) bool {
	return x >= e.MinX && x <= e.MaxX && y >= e.MinY && y <= e.MaxY
}

// Centroid returns the arithmetic mean of e's corners.
func (e Envelope) Centroid() (x, y float64) {
	return (e.MinX + e.MaxX) / 2.0, (e.MinY + e.MaxY) / 2.0
}

// CentroidWithin reports whether e's centroid lies within other.
func (e Envelope) CentroidWithin(other Envelope) bool {
	cx, cy := e.Centroid()
	return other.Contains(cx, cy)
}

// DistanceToPoint returns the squared Euclidean distance from (x, y) to
// the nearest point on e's boundary or interior, 0 if the point is inside.
func (e Envelope) DistanceToPoint(x, y float64) float64 {
	dx := 0.0
	if x < e.MinX {
		dx = e.MinX - x
	} else if x > e.MaxX {
		dx = x - e.MaxX
	}
	dy := 0.0
	if y < e.MinY {
		dy = e.MinY - y
	} else if y > e.MaxY {
		dy = y - e.MaxY
	}
	return dx*dx + dy*dy
}
