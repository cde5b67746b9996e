// Package mqrtree implements the MQR-Tree: an in-memory 2D spatial index
// over axis-aligned bounding boxes whose every node — leaf or internal —
// has exactly five quadrant slots (NW, NE, SW, SE, CENTER), occupancy
// driven by a child's centroid position relative to the parent node's MBR
// centroid. The tree is not height-balanced; insertion can trigger
// non-trivial rebalancing when a node's MBR expansion moves its centroid
// and dislodges already-placed children.
package mqrtree

// Quadrant identifies a child's position relative to its parent node's MBR
// centroid.
type Quadrant int

const (
	// NW is the northwest quadrant: centroid x < parent x, centroid y >= parent y.
	NW Quadrant = iota
	// NE is the northeast quadrant: centroid x >= parent x, centroid y >= parent y.
	NE
	// SW is the southwest quadrant: centroid x < parent x, centroid y < parent y.
	SW
	// SE is the southeast quadrant: centroid x >= parent x, centroid y < parent y.
	SE
	// CENTER holds entries whose centroid exactly coincides with the
	// parent's MBR centroid.
	CENTER
)

func (q Quadrant) String() string {
	switch q {
	case NW:
		return "NW"
	case NE:
		return "NE"
	case SW:
		return "SW"
	case SE:
		return "SE"
	case CENTER:
		return "CENTER"
	default:
		return "Quadrant(?)"
	}
}

// quadrants lists every slot in a fixed order.
var quadrants = [5]Quadrant{NW, NE, SW, SE, CENTER}

// NodeType tags whether a node is laid out normally (entries keyed by
// their own quadrant) or as a CENTER node (its CENTER slot in use, possibly
// holding a chain of several entries).
type NodeType int

const (
	// NodeNormal is the default layout: at most one entry per quadrant,
	// each in the quadrant findInsertQuad assigns it.
	NodeNormal NodeType = iota
	// NodeCenter marks a node whose CENTER slot is in use, possibly as a
	// chain of several entries; its other four slots may be occupied too.
	NodeCenter
)
