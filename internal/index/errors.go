package index

import (
	"errors"
	"fmt"
)

// ErrOrderTooSmall is returned by New when the requested order cannot
// form a valid B-tree. An order-2 "tree" would allow at most one key per
// node and degenerate into a linked list, so 3 is the floor.
var ErrOrderTooSmall = errors.New("index: order must be at least 3")

// Violation reasons reported by Validate.
const (
	ReasonKeyCount     = "key count out of bounds"
	ReasonKeyOrder     = "keys not strictly ascending"
	ReasonMissingChild = "missing child reference"
	ReasonChildCount   = "child count does not match key count"
	ReasonLeafDepth    = "leaves at unequal depth"
)

// StructuralError describes the first invariant violation found by a
// validation walk. It identifies the offending node by depth and carries
// enough context (actual key count, allowed range, key contents) to
// diagnose the failure without re-walking the tree.
type StructuralError struct {
	Reason   string
	Depth    int
	KeyCount int
	MinKeys  int
	MaxKeys  int
	Keys     []int
}

func (e *StructuralError) Error() string {
	switch e.Reason {
	case ReasonKeyCount:
		return fmt.Sprintf("structural violation at depth %d: %s: %d keys, allowed [%d, %d], keys=%v",
			e.Depth, e.Reason, e.KeyCount, e.MinKeys, e.MaxKeys, e.Keys)
	case ReasonLeafDepth:
		return fmt.Sprintf("structural violation at depth %d: %s", e.Depth, e.Reason)
	default:
		return fmt.Sprintf("structural violation at depth %d: %s: keys=%v", e.Depth, e.Reason, e.Keys)
	}
}
