package smc

import "math/rand"

const defaultRNGSeed int64 = 1

// rngFromSeed mirrors the reproducibility convention used by the other
// samplers in this module: seed 0 maps to a fixed default rather than to an
// unseeded generator, so Options{} always reproduces deterministically.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}
