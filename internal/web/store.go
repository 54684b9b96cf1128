package web

import (
	"sync"

	"github.com/cabewaldrop/ordex/internal/index"
)

// Store wraps a single Tree behind a mutex. The tree itself is
// deliberately single-threaded — every structural mutation happens inside
// one Insert call with no intermediate state exposed — so the HTTP layer,
// which serves requests concurrently, funnels all access through here.
type Store struct {
	mu   sync.Mutex
	tree *index.Tree
}

// NewStore wraps tree for concurrent use by the inspector.
func NewStore(tree *index.Tree) *Store {
	return &Store{tree: tree}
}

// Insert adds key and returns whether it was new, plus the size and
// height after the operation so responses are consistent with the
// mutation that produced them.
func (s *Store) Insert(key int) (inserted bool, size, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inserted = s.tree.Insert(key)
	return inserted, s.tree.Len(), s.tree.Height()
}

// Search looks up key.
func (s *Store) Search(key int) (index.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Search(key)
}

// Keys returns every key in ascending order.
func (s *Store) Keys() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Keys()
}

// Levels returns the breadth-first diagnostic dump.
func (s *Store) Levels() []index.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Levels()
}

// Validate runs the structural validator.
func (s *Store) Validate() index.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Validate()
}

// Clear empties the tree.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Clear()
}

// Stats returns the tree's order, key count and height.
func (s *Store) Stats() (order, size, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Order(), s.tree.Len(), s.tree.Height()
}
