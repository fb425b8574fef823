// Package randutil centralises deterministic RNG construction so that all
// call sites get reproducible sequences from explicit seeds.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided
// int64. The helper centralises how we derive the two 64-bit seeds
// required by rand/v2's PCG source.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ForUnit returns the RNG stream for simulation unit i under the given
// global seed. The stream depends only on (seed, i), never on which
// worker runs the unit or in what order units complete.
func ForUnit(seed int64, i int) *rand.Rand {
	u := mix(uint64(seed)) + uint64(i)*goldenRatio64
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
