package protocol

import "errors"

// MaxNodeDepth limits the nesting depth of wire trees and the length of
// index paths. Decoding deeper input fails with ErrMaxDepthExceeded.
const MaxNodeDepth = 256

// ErrMaxDepthExceeded is returned when decoded input nests too deeply.
var ErrMaxDepthExceeded = errors.New("protocol: maximum depth exceeded")

// checkDepth is a convenience function for one-time depth checks.
func checkDepth(current, max int) error {
	if current > max {
		return ErrMaxDepthExceeded
	}
	return nil
}
