package rng

import "time"

// Source is a tiny deterministic generator: the same seed produces the same
// sequence on every platform, which is what keeps two challenge sessions in
// lockstep. It is a 32-bit xorshift; do not swap it for math/rand, whose
// stream is not part of any compatibility promise.
type Source struct {
	state uint32
}

// New returns a Source for the given seed. A zero seed is remapped so the
// generator never gets stuck on the all-zero state.
func New(seed int64) *Source {
	s := uint32(seed) ^ uint32(seed>>32)
	if s == 0 {
		s = 0x9e3779b9
	}
	return &Source{state: s}
}

// NewLive returns a Source seeded from the wall clock. Same algorithm as New;
// only the seed origin differs.
func NewLive() *Source {
	return New(time.Now().UnixNano())
}

// Next returns the next value in [0,1).
func (s *Source) Next() float64 {
	s.state ^= s.state << 13
	s.state ^= s.state >> 17
	s.state ^= s.state << 5
	return float64(s.state) / float64(1<<32)
}

// Intn returns an int in [0,n). n <= 0 yields 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Next() * float64(n))
}

// Chance rolls once against probability p in [0,1].
func (s *Source) Chance(p float64) bool {
	return s.Next() < p
}
