// Package datagen produces random key sets for the demo driver and for
// randomized tests. It lives outside the core index on purpose: the tree
// never touches randomness, and anything that does gets an injectable
// seed so every run is reproducible.
package datagen

import (
	"fmt"
	mathrand "math/rand"

	"github.com/go-faker/faker/v4"
)

// Generator hands out batches of random integer keys. All generators
// share faker's package-level source, so constructing one re-seeds the
// stream; build a single generator per run and reuse it.
type Generator struct {
	seed int64
}

// New seeds the random stream. The same seed always yields the same
// batches in the same order.
func New(seed int64) *Generator {
	faker.SetRandomSource(mathrand.NewSource(seed))
	return &Generator{seed: seed}
}

// Seed returns the seed this generator was built with, for echoing in
// demo output so a run can be replayed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// DistinctInts returns n distinct integers drawn from [min, max]. The
// index's insertion semantics deduplicate anyway, but demo runs and
// randomized tests want a known count of distinct keys up front.
func (g *Generator) DistinctInts(n, min, max int) ([]int, error) {
	if n <= 0 {
		return nil, fmt.Errorf("datagen: count must be positive, got %d", n)
	}
	if max < min {
		return nil, fmt.Errorf("datagen: empty range [%d, %d]", min, max)
	}
	if span := max - min + 1; span < n {
		return nil, fmt.Errorf("datagen: cannot draw %d distinct ints from a range of %d", n, span)
	}

	keys, err := faker.RandomInt(min, max, n)
	if err != nil {
		return nil, fmt.Errorf("datagen: %w", err)
	}
	return keys, nil
}
