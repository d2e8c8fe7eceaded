// Package generator provides the pseudo-random source used for secret draws,
// hint selection and flavor text.
package generator

import (
	"math/rand"
	"time"
)

// Source yields uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// Generator produces uniform random integers.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed. A zero seed uses the current time.
func NewSeeded(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform integer in [0, n). It returns 0 when n <= 0.
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.rnd.Intn(n)
}

// Between draws uniformly from the inclusive range [lo, hi].
func Between(src Source, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](src Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[src.Intn(len(items))]
}
