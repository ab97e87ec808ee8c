package smc

import (
	"context"
	"math"

	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/tree"
)

// Result is the outcome of a single SMC search call.
type Result struct {
	// Tree is the highest true log-posterior particle across every island,
	// not merely the particle with the largest importance weight.
	Tree *tree.Tree

	LogPosterior float64

	// LogMarginalLikelihood is logmeanexp of the islands' independent
	// running marginal-likelihood estimates, an estimate of log p(y|x)
	// under the prior this search explored.
	LogMarginalLikelihood float64
}

// Search runs opts.NumIslands independent island populations of
// opts.NumParticles/opts.NumIslands particles each through sequential
// stop/split proposals for up to opts.MaxSteps growth steps, or until every
// particle in every island has finished growing.
func Search(ctx context.Context, ds *dataset.Dataset, opts Options) (Result, error) {
	if err := opts.validate(); err != nil {
		return Result{}, err
	}

	rng := rngFromSeed(opts.Seed)
	islandSize := opts.NumParticles / opts.NumIslands
	islands := make([]*island, opts.NumIslands)
	for i := range islands {
		islands[i] = newIsland(ds, opts.Hyperparams, islandSize)
	}

	for step := 0; step < opts.MaxSteps; step++ {
		if step&63 == 0 && ctx.Err() != nil {
			break
		}

		allDone := true
		for _, isl := range islands {
			if !isl.allDone() {
				allDone = false
				isl.step(rng, ds, opts)
			}
		}
		if allDone {
			break
		}
	}

	bestScore := math.Inf(-1)
	var bestRoot *node
	for _, isl := range islands {
		for _, p := range isl.particles {
			score := logPosterior(ds, p.root, opts.Hyperparams)
			if score > bestScore {
				bestScore = score
				bestRoot = p.root
			}
		}
	}

	logZs := make([]float64, len(islands))
	for i, isl := range islands {
		logZs[i] = isl.cumulativeLogZ
	}

	return Result{
		Tree:                  toTree(bestRoot),
		LogPosterior:          bestScore,
		LogMarginalLikelihood: logMeanExp(logZs),
	}, nil
}

func logMeanExp(xs []float64) float64 {
	if len(xs) == 0 {
		return math.Inf(-1)
	}
	maxX := xs[0]
	for _, x := range xs[1:] {
		if x > maxX {
			maxX = x
		}
	}
	sum := 0.0
	for _, x := range xs {
		sum += math.Exp(x - maxX)
	}
	return maxX + math.Log(sum/float64(len(xs)))
}
