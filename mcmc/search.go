package mcmc

import (
	"context"

	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/tree"
)

// Result is the outcome of a single MCMC search call: the highest
// log-posterior tree seen across the whole chain.
type Result struct {
	Tree        *tree.Tree
	LogPosterior float64
}

// Search runs a Chipman-style GROW/PRUNE/CHANGE/SWAP Metropolis-Hastings
// chain for opts.NumIterations steps and returns the best tree the chain
// ever visited, not merely its final state.
//
// ctx is polled before the first iteration and every 256th one after it;
// cancellation stops the chain early and
// returns the best tree found so far rather than erroring.
func Search(ctx context.Context, ds *dataset.Dataset, opts Options) (Result, error) {
	if err := opts.validate(); err != nil {
		return Result{}, err
	}

	rng := rngFromSeed(opts.Seed)
	w := newWalker(ds, opts.Hyperparams)

	bestScore := w.logPosterior()
	bestRoot := snapshot(w.root)

	for i := 0; i < opts.NumIterations; i++ {
		if i&255 == 0 && ctx.Err() != nil {
			break
		}

		switch moveKind(rng.Intn(4)) {
		case moveGrow:
			w.tryGrow(rng)
		case movePrune:
			w.tryPrune(rng)
		case moveChange:
			w.tryChange(rng)
		case moveSwap:
			w.trySwap(rng)
		}

		if score := w.logPosterior(); score > bestScore {
			bestScore = score
			bestRoot = snapshot(w.root)
		}
	}

	return Result{Tree: toTree(bestRoot), LogPosterior: bestScore}, nil
}

// snapshot deep-copies the subtree rooted at n so a later mutation of the
// live walker tree can never retroactively change a recorded best tree.
func snapshot(n *node) *node {
	cp := &node{feature: n.feature, mask: n.mask, depth: n.depth, n0: n.n0, n1: n.n1}
	if !n.isLeaf() {
		cp.left = snapshot(n.left)
		cp.right = snapshot(n.right)
		cp.left.parent, cp.right.parent = cp, cp
	}
	return cp
}
