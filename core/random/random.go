// Package random provides the injected, reseedable random source used for
// bootstrap sampling, validation hold-outs, distribution-leaf draws and
// boosting weight deltas.
package random

import (
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat/sampleuv"
)

// Rand is the subset of *rand.Rand the induction code needs. Any Rand is
// also a rand.Source.
type Rand interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
	// IntN returns a number in [0, n). It panics if n <= 0.
	IntN(n int) int
	// Uint64 returns a pseudo-random 64-bit value.
	Uint64() uint64
}

// Locked is a Rand safe for concurrent use.
type Locked struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a locked generator seeded with seed. Equal seeds produce equal
// sequences.
func New(seed uint64) *Locked {
	return &Locked{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 implements Rand.
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

// IntN implements Rand.
func (l *Locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.IntN(n)
}

// Uint64 implements Rand.
func (l *Locked) Uint64() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Uint64()
}

// Derive returns a new independent generator seeded from r. Drawing the
// seeds sequentially keeps per-worker generators reproducible no matter how
// the workers are scheduled.
func Derive(r Rand) *Locked {
	return New(r.Uint64())
}

// Uniform returns a number in [lo, hi).
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Sample draws k distinct elements of pool uniformly without replacement.
// The pool is not modified. k larger than the pool is clamped.
func Sample(r Rand, pool []int, k int) []int {
	if k > len(pool) {
		k = len(pool)
	}
	if k <= 0 {
		return []int{}
	}
	idxs := make([]int, k)
	sampleuv.WithoutReplacement(idxs, len(pool), r)
	for i, idx := range idxs {
		idxs[i] = pool[idx]
	}
	return idxs
}
