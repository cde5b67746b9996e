// Package mqrerr centralises the error values the mqrtree module returns,
// following the wrap-with-context style deepfabric-bkdtree uses via
// github.com/pkg/errors rather than bare fmt.Errorf.
package mqrerr

import "github.com/pkg/errors"

// InvalidEnvelope reports a caller-supplied envelope with max < min on some
// axis.
func InvalidEnvelope(minX, minY, maxX, maxY float64) error {
	return errors.Errorf("mqrtree: invalid envelope (%g,%g)-(%g,%g): max < min on some axis", minX, minY, maxX, maxY)
}

// InvalidK reports a k-NN request with k <= 0.
func InvalidK(k int) error {
	return errors.Errorf("mqrtree: invalid k=%d: must be >= 1", k)
}

// NilPayload reports an insertion of a nil payload where the tree does not
// permit one.
var NilPayload = errors.New("mqrtree: nil payload not permitted")

// IterationCapExceeded reports that the insertion queue-drain loop exceeded
// its soft iteration cap, signalling an invariant-maintenance bug rather
// than a caller error. The tree is left in an undefined state; callers
// must not continue using it after this error.
func IterationCapExceeded(cap int) error {
	return errors.Errorf("mqrtree: insertion queue drain exceeded iteration cap (%d); tree invariants are broken and the tree must be discarded", cap)
}

// Wrap annotates err with msg, passing through nil unchanged. Thin wrapper
// kept so call sites read the same way deepfabric-bkdtree's utils.go reads.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
