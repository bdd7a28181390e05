// Package rng provides the deterministic random stream handle carried by
// mechanic inputs.
//
// A Stream is seeded explicitly and advanced only by the mechanic that owns
// the input; no mechanic reads a global or thread-local source. Given the
// same seed and the same draw sequence, a Stream produces identical values
// across runs, which is what makes recorded sessions replayable.
package rng

import "math/rand"

// Stream is a seeded deterministic random source.
type Stream struct {
	seed int64
	rand *rand.Rand
}

// New creates a stream from the given seed.
func New(seed int64) *Stream {
	return &Stream{
		seed: seed,
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() int64 {
	return s.seed
}

// Float64 draws a value in [0, 1).
func (s *Stream) Float64() float64 {
	return s.rand.Float64()
}

// IntN draws a value in [0, n). It panics when n is not positive, matching
// math/rand.
func (s *Stream) IntN(n int) int {
	return s.rand.Intn(n)
}

// Chance draws once and reports whether the draw fell under p. Probabilities
// at or above one always succeed; at or below zero never do.
func (s *Stream) Chance(p float64) bool {
	if p >= 1 {
		return true
	}
	if p <= 0 {
		return false
	}
	return s.rand.Float64() < p
}

// Fork derives an independent stream from the next draw. The derived stream
// is itself deterministic with respect to the parent's state.
func (s *Stream) Fork() *Stream {
	return New(int64(s.rand.Uint64()))
}
