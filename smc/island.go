package smc

import (
	"math"
	"math/rand"

	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/scoring"
)

// island is one independent sub-population of particles with its own
// effective-sample-size tracking, resampling, and running marginal
// log-likelihood accumulator. Running several islands independently and
// combining their estimates at the end (see Search's logmeanexp) trades
// particle count for a built-in measure of estimator variance.
type island struct {
	particles      []*particle
	cumulativeLogZ float64
}

func newIsland(ds *dataset.Dataset, h scoring.Hyperparams, size int) *island {
	particles := make([]*particle, size)
	for i := range particles {
		particles[i] = newParticle(ds, h)
	}
	return &island{particles: particles}
}

func (isl *island) allDone() bool {
	for _, p := range isl.particles {
		if !p.done() {
			return false
		}
	}
	return true
}

// step grows every particle in the island by one step, folds the step's
// average weight into the running marginal-likelihood accumulator, and
// resamples the island whenever its effective sample size drops at or below
// threshold*n.
//
// Weights are shifted by the step's incremental log-normalizer every step,
// resampled or not: this keeps cumulativeLogZ plus a logmeanexp of the
// particles' current (unnormalized) weights equal to the total marginal
// log-likelihood estimate at any point, the standard SMC-samplers
// decomposition of log p(y|x) into a product of per-step average weights.
func (isl *island) step(rng *rand.Rand, ds *dataset.Dataset, opts Options) {
	anyAlive := false
	for _, p := range isl.particles {
		if p.step(rng, ds, opts.Hyperparams, opts.Proposal, opts.Growth, opts.Tempering) {
			anyAlive = true
		}
	}
	if !anyAlive {
		return
	}

	n := len(isl.particles)
	logWeights := make([]float64, n)
	for i, p := range isl.particles {
		logWeights[i] = p.logWeight
	}

	maxLog := logWeights[0]
	for _, w := range logWeights[1:] {
		if w > maxLog {
			maxLog = w
		}
	}
	sumExp := 0.0
	for _, w := range logWeights {
		sumExp += math.Exp(w - maxLog)
	}
	incrementalLogZ := maxLog + math.Log(sumExp/float64(n))
	isl.cumulativeLogZ += incrementalLogZ

	normalized := make([]float64, n)
	sumSq := 0.0
	for i, w := range logWeights {
		normalized[i] = math.Exp(w-maxLog) / sumExp
		sumSq += normalized[i] * normalized[i]
	}
	ess := 1.0 / sumSq

	if ess <= opts.ESSThreshold*float64(n) {
		indices := resampleIndices(rng, normalized, opts.Resample)
		resampled := make([]*particle, n)
		for i, idx := range indices {
			resampled[i] = cloneParticle(isl.particles[idx])
			resampled[i].logWeight = 0
		}
		isl.particles = resampled
		return
	}

	for _, p := range isl.particles {
		p.logWeight -= incrementalLogZ
	}
}
