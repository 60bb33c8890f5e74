// Package randutil centralises how the engine turns a single int64 seed into
// a math/rand/v2 source, so every component that shuffles or jitters is
// reproducible from the seed printed at startup.
package randutil

import rand "math/rand/v2"

const seedIncrement = 0x9e3779b97f4a7c15 // 2^64 / golden ratio

// New returns a *rand.Rand seeded deterministically from seed. rand/v2's PCG
// wants two 64-bit values, so the seed is run through a splitmix64 finalizer
// twice with different offsets.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+seedIncrement)))
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
