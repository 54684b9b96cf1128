package index

// Report is the outcome of a validation walk. LeafLevel is the common
// depth of every leaf when the tree is valid, and -1 for an empty tree.
type Report struct {
	Valid     bool   `json:"valid"`
	Message   string `json:"message,omitempty"`
	LeafLevel int    `json:"leaf_level"`
}

// Validate walks the whole tree and checks every structural invariant:
// key counts within bounds, strictly ascending keys, complete child
// references on internal nodes, and uniform leaf depth. It fails fast —
// the report describes the first violation found — and never mutates or
// repairs anything. An empty tree is vacuously valid.
func (t *Tree) Validate() Report {
	if t.root == nil {
		return Report{Valid: true, LeafLevel: -1}
	}

	leafLevel, err := t.validateNode(t.root, 0, true)
	if err != nil {
		return Report{Valid: false, Message: err.Error(), LeafLevel: -1}
	}
	return Report{Valid: true, LeafLevel: leafLevel}
}

// validateNode checks the subtree rooted at n and returns the depth its
// leaves sit at. The root is exempt from the t-1 lower bound but must
// still hold at least one key.
func (t *Tree) validateNode(n *node, depth int, isRoot bool) (int, *StructuralError) {
	minKeys := n.minDeg - 1
	if isRoot {
		minKeys = 1
	}
	maxKeys := n.order - 1

	if len(n.keys) < minKeys || len(n.keys) > maxKeys {
		return 0, &StructuralError{
			Reason:   ReasonKeyCount,
			Depth:    depth,
			KeyCount: len(n.keys),
			MinKeys:  minKeys,
			MaxKeys:  maxKeys,
			Keys:     append([]int(nil), n.keys...),
		}
	}

	for i := 1; i < len(n.keys); i++ {
		if n.keys[i-1] >= n.keys[i] {
			return 0, &StructuralError{
				Reason:   ReasonKeyOrder,
				Depth:    depth,
				KeyCount: len(n.keys),
				Keys:     append([]int(nil), n.keys...),
			}
		}
	}

	if n.leaf {
		return depth, nil
	}

	if len(n.children) != len(n.keys)+1 {
		return 0, &StructuralError{
			Reason:   ReasonChildCount,
			Depth:    depth,
			KeyCount: len(n.keys),
			Keys:     append([]int(nil), n.keys...),
		}
	}
	for _, c := range n.children {
		if c == nil {
			return 0, &StructuralError{
				Reason:   ReasonMissingChild,
				Depth:    depth,
				KeyCount: len(n.keys),
				Keys:     append([]int(nil), n.keys...),
			}
		}
	}

	leafLevel := -1
	for _, c := range n.children {
		childLevel, err := t.validateNode(c, depth+1, false)
		if err != nil {
			return 0, err
		}
		if leafLevel == -1 {
			leafLevel = childLevel
		} else if childLevel != leafLevel {
			return 0, &StructuralError{
				Reason:   ReasonLeafDepth,
				Depth:    depth,
				KeyCount: len(n.keys),
				Keys:     append([]int(nil), n.keys...),
			}
		}
	}

	return leafLevel, nil
}
