package smc

import "math/rand"

// multinomialResample draws len(weights) indices i.i.d. from the categorical
// distribution given by normalized weights.
func multinomialResample(rng *rand.Rand, weights []float64) []int {
	out := make([]int, len(weights))
	for i := range out {
		out[i] = drawFromCumulative(rng.Float64(), weights)
	}
	return out
}

// systematicResample draws len(weights) indices from a single uniform
// offset plus evenly spaced strides, which has lower variance than
// multinomial resampling for the same particle count.
func systematicResample(rng *rand.Rand, weights []float64) []int {
	n := len(weights)
	out := make([]int, n)
	u0 := rng.Float64() / float64(n)
	cum := 0.0
	j := 0
	for i := 0; i < n; i++ {
		target := u0 + float64(i)/float64(n)
		for j < n-1 && cum+weights[j] < target {
			cum += weights[j]
			j++
		}
		out[i] = j
	}
	return out
}

func drawFromCumulative(u float64, weights []float64) int {
	cum := 0.0
	for i, w := range weights {
		cum += w
		if u <= cum {
			return i
		}
	}
	return len(weights) - 1
}

func resampleIndices(rng *rand.Rand, weights []float64, scheme ResampleScheme) []int {
	if scheme == ResampleSystematic {
		return systematicResample(rng, weights)
	}
	return multinomialResample(rng, weights)
}
