package index

// Tree is a B-tree of a fixed order over integer keys. The zero value is
// not usable; construct with New. A Tree is not safe for concurrent use —
// callers that share one across goroutines must serialize access (the
// web inspector's Store does exactly that).
type Tree struct {
	root  *node
	order int
	size  int
}

// Location describes where a search found its key: the depth of the node
// (root is 0), the key's index within that node, and a copy of the node's
// key sequence.
type Location struct {
	Depth int   `json:"depth"`
	Index int   `json:"index"`
	Keys  []int `json:"node_keys"`
}

// Level is one row of a breadth-first dump: the depth and the key slices
// of every node at that depth, left to right.
type Level struct {
	Depth int     `json:"depth"`
	Nodes [][]int `json:"nodes"`
}

// New constructs an empty tree of the given order. Order is the maximum
// number of children a node may have; orders below 3 cannot form a valid
// B-tree and are rejected.
func New(order int) (*Tree, error) {
	if order < 3 {
		return nil, ErrOrderTooSmall
	}
	return &Tree{order: order}, nil
}

// Order returns the order the tree was constructed with.
func (t *Tree) Order() int {
	return t.order
}

// Len returns the number of keys currently stored.
func (t *Tree) Len() int {
	return t.size
}

// Height returns the number of levels in the tree: 0 when empty, 1 for a
// lone leaf root. Uniform leaf depth makes the leftmost path
// representative.
func (t *Tree) Height() int {
	h := 0
	for n := t.root; n != nil; {
		h++
		if n.leaf {
			break
		}
		n = n.children[0]
	}
	return h
}

// Insert adds key to the tree, restructuring as needed. It reports
// whether the key was newly inserted; inserting a key that is already
// present is a no-op and returns false.
func (t *Tree) Insert(key int) bool {
	if t.root == nil {
		t.root = newNode(t.order, true)
		t.root.keys = append(t.root.keys, key)
		t.size = 1
		return true
	}

	if !t.root.insertNonFull(key) {
		return false
	}
	t.size++

	// Root overflow is the one case insertNonFull cannot fix up, because
	// the root has no parent. Growing here — and only here — adds a level
	// above every leaf at once, which is what keeps leaf depth uniform.
	if len(t.root.keys) == t.order {
		s := newNode(t.order, false)
		s.children = append(s.children, t.root)
		s.splitChild(0, t.root)
		t.root = s
	}
	return true
}

// Search reports whether key is present. On a hit the returned Location
// identifies the node that holds it; on a miss (including the empty
// tree) the Location is zero.
func (t *Tree) Search(key int) (Location, bool) {
	if t.root == nil {
		return Location{}, false
	}
	return t.root.search(key, 0)
}

// Keys returns every key in ascending order. The result is empty (never
// nil) for an empty tree.
func (t *Tree) Keys() []int {
	out := make([]int, 0, t.size)
	t.Ascend(func(k int) bool {
		out = append(out, k)
		return true
	})
	return out
}

// Ascend calls visit for each key in ascending order until visit returns
// false or the keys are exhausted.
func (t *Tree) Ascend(visit func(key int) bool) {
	if t.root == nil {
		return
	}
	t.root.traverse(visit)
}

// Levels produces a breadth-first dump of the tree: one entry per level,
// each holding copies of its nodes' key sequences in left-to-right order.
// Purely diagnostic; the tree is not modified.
func (t *Tree) Levels() []Level {
	if t.root == nil {
		return nil
	}

	levels := make([]Level, 0, t.Height())
	queue := []*node{t.root}
	depth := 0

	for len(queue) > 0 {
		lvl := Level{Depth: depth, Nodes: make([][]int, 0, len(queue))}
		next := make([]*node, 0, len(queue)*t.order)
		for _, n := range queue {
			keys := make([]int, len(n.keys))
			copy(keys, n.keys)
			lvl.Nodes = append(lvl.Nodes, keys)
			next = append(next, n.children...)
		}
		levels = append(levels, lvl)
		queue = next
		depth++
	}
	return levels
}

// Clear releases every node and empties the tree. It walks with an
// explicit work list rather than recursion so that tearing down a very
// tall tree cannot exhaust the goroutine stack, and it severs child links
// so no dropped subtree keeps another alive.
func (t *Tree) Clear() {
	stack := make([]*node, 0, 16)
	if t.root != nil {
		stack = append(stack, t.root)
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, n.children...)
		n.children = nil
		n.keys = nil
	}
	t.root = nil
	t.size = 0
}
