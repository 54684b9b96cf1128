// Package index implements an in-memory ordered index: a B-tree of
// configurable order over integer keys.
//
// EDUCATIONAL NOTES:
// ------------------
// B-trees keep sorted data balanced under insertion by bounding the
// fan-out of every node and splitting nodes that overflow. The properties
// maintained here for a tree of order m (minimum degree t = ceil(m/2)):
//
//  1. Every node holds at most m-1 keys.
//  2. Every non-root node holds at least t-1 keys; the root may hold one.
//  3. Keys within a node are strictly ascending.
//  4. An internal node with n keys owns exactly n+1 children.
//  5. All leaves sit at the same depth.
//
// This implementation inserts first and fixes up after: the recursive
// descent places the key, and on the way back up a parent splits any
// child that grew to m keys. That order is why key slices reserve one
// slot of capacity beyond the m-1 maximum — a node is allowed to hold m
// keys for the instant between its own insert and its parent's split.
// The more common formulation splits full nodes on the way down; both
// maintain the same invariants.
package index

// node is the storage unit of the tree. All nodes of one tree share the
// same order and minimum degree, fixed at construction.
type node struct {
	keys     []int   // strictly ascending; cap order: one overflow slot past the order-1 max
	children []*node // nil for leaves; cap order+1
	leaf     bool
	order    int // m: maximum children, order-1 maximum keys
	minDeg   int // t = ceil(m/2): non-root nodes keep at least t-1 keys
}

func newNode(order int, leaf bool) *node {
	n := &node{
		keys:   make([]int, 0, order),
		leaf:   leaf,
		order:  order,
		minDeg: (order + 1) / 2,
	}
	if !leaf {
		n.children = make([]*node, 0, order+1)
	}
	return n
}

// search locates key in the subtree rooted at n. The linear scan stops at
// the first key >= key; when key exceeds every key in the node the scan
// index equals len(n.keys) and is used only to select the rightmost
// child, never to read a key.
func (n *node) search(key, depth int) (Location, bool) {
	i := 0
	for i < len(n.keys) && key > n.keys[i] {
		i++
	}
	if i < len(n.keys) && n.keys[i] == key {
		loc := Location{Depth: depth, Index: i, Keys: make([]int, len(n.keys))}
		copy(loc.Keys, n.keys)
		return loc, true
	}
	if n.leaf {
		return Location{}, false
	}
	return n.children[i].search(key, depth+1)
}

// traverse emits the subtree's keys in ascending order: left child, key,
// left child, key, ..., rightmost child. Returns false if visit stopped
// the walk.
func (n *node) traverse(visit func(key int) bool) bool {
	for i, k := range n.keys {
		if !n.leaf && !n.children[i].traverse(visit) {
			return false
		}
		if !visit(k) {
			return false
		}
	}
	if !n.leaf {
		return n.children[len(n.keys)].traverse(visit)
	}
	return true
}

// insertNonFull places key in the subtree rooted at n, which holds at
// most order-1 keys when the call begins. Returns false without modifying
// the tree if the key is already present.
//
// The recursive step may leave a child holding order keys; the fix-up
// below restores the bound before control returns to the caller, so the
// transient overflow is never visible above the current node.
func (n *node) insertNonFull(key int) bool {
	i := len(n.keys) - 1

	if n.leaf {
		// Shift keys greater than key one slot right and drop key into
		// the gap.
		for i >= 0 && n.keys[i] > key {
			i--
		}
		if i >= 0 && n.keys[i] == key {
			return false // duplicate: leave the tree untouched
		}
		n.keys = append(n.keys, 0)
		copy(n.keys[i+2:], n.keys[i+1:len(n.keys)-1])
		n.keys[i+1] = key
		return true
	}

	// Scan from the right for the child that should contain key.
	for i >= 0 && n.keys[i] > key {
		i--
	}
	if i >= 0 && n.keys[i] == key {
		return false
	}

	child := n.children[i+1]
	inserted := child.insertNonFull(key)

	// Fix-up: the insert may have pushed the child to order keys, one
	// over its bound. Split it before returning upward.
	if len(child.keys) > n.order-1 {
		n.splitChild(i+1, child)
	}
	return inserted
}

// splitChild divides the overfull child y (holding order keys) at child
// index i of n into two nodes and promotes y's median key into n.
//
// With t = minDeg, y's keys partition as [0, t-2] | t-1 | [t, order-1]:
// the left run stays in y, the median moves up, and the right run moves
// into a fresh sibling placed at child index i+1.
func (n *node) splitChild(i int, y *node) {
	t := y.minDeg

	z := newNode(y.order, y.leaf)
	z.keys = append(z.keys, y.keys[t:]...)
	if !y.leaf {
		z.children = append(z.children, y.children[t:]...)
		y.children = y.children[:t]
	}

	median := y.keys[t-1]
	y.keys = y.keys[:t-1]

	// Shift n's children right of i one slot right, then link z.
	n.children = append(n.children, nil)
	copy(n.children[i+2:], n.children[i+1:len(n.children)-1])
	n.children[i+1] = z

	// Shift n's keys right of i one slot right, then promote the median.
	n.keys = append(n.keys, 0)
	copy(n.keys[i+1:], n.keys[i:len(n.keys)-1])
	n.keys[i] = median
}
