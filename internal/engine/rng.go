package engine

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/bits"
)

// SeedSize is the number of entropy bytes consumed when seeding the generator.
const SeedSize = 32

// Rand is a xoshiro256** pseudo-random generator. It is the single source of
// randomness for one machine instance: every draw mutates the 256-bit state,
// and an identical seed reproduces a bit-identical output sequence, which is
// what makes recorded spins replayable.
//
// Rand is not safe for concurrent use; the owner must serialize draws.
type Rand struct {
	s [4]uint64
}

// New creates a generator seeded from the operating system's entropy source.
func New() (*Rand, error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("read entropy: %w", err)
	}
	return NewFromSeed(seed)
}

// NewFromSeed creates a generator from explicit seed material. Seeds shorter
// than SeedSize bytes are cycled to fill the state. An all-zero seed is
// remapped to a safe non-zero state (xoshiro is degenerate at zero).
func NewFromSeed(seed []byte) (*Rand, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("seed must not be empty")
	}
	if len(seed) < SeedSize {
		padded := make([]byte, 0, SeedSize)
		for len(padded) < SeedSize {
			padded = append(padded, seed...)
		}
		seed = padded[:SeedSize]
	}

	r := &Rand{}
	for i := range r.s {
		r.s[i] = binary.LittleEndian.Uint64(seed[i*8 : i*8+8])
	}
	if r.s[0] == 0 && r.s[1] == 0 && r.s[2] == 0 && r.s[3] == 0 {
		r.s[0] = 1
	}
	return r, nil
}

// Uint64 returns the next 64-bit output of the generator.
func (r *Rand) Uint64() uint64 {
	result := bits.RotateLeft64(r.s[1]*5, 7) * 9

	t := r.s[1] << 17

	r.s[2] ^= r.s[0]
	r.s[3] ^= r.s[1]
	r.s[1] ^= r.s[2]
	r.s[0] ^= r.s[3]
	r.s[2] ^= t
	r.s[3] = bits.RotateLeft64(r.s[3], 45)

	return result
}

// Float01 returns a uniform float64 in [0, 1), derived from the high 53 bits
// of one Uint64 draw.
func (r *Rand) Float01() float64 {
	return float64(r.Uint64()>>11) * (1.0 / (1 << 53))
}

// IntN returns a uniform int in [0, n). The modulo bias is negligible for the
// bounds used here (reel strip lengths). Panics if n <= 0: a non-positive
// bound is a programming error, not a runtime condition.
func (r *Rand) IntN(n int) int {
	if n <= 0 {
		panic("engine: IntN bound must be positive")
	}
	return int(r.Uint64() % uint64(n))
}
