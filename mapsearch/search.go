package mapsearch

import (
	"context"
	"time"

	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/scoring"
	"github.com/arborist-go/bcrt/tree"
)

// Result is the outcome of a single Search call: the best tree found, how
// long the search ran, whether it timed out before closing optimal, and the
// certificate bounds [LB, UB] on its -log-posterior.
type Result struct {
	Tree           *tree.Tree
	ElapsedSeconds float64
	TimeoutFlag    bool
	LB, UB         float64
}

// Search runs the AND/OR best-first branch-and-bound MAP search over the
// full dataset and returns the best tree found within the configured
// budget, together with the certificate bounds.
//
// ctx is polled alongside the configured budget (NumExpansions xor
// TimeLimit); cancellation behaves like a time-limit timeout: the best
// tree found so far is returned with TimeoutFlag set.
func Search(ctx context.Context, ds *dataset.Dataset, opts Options) (Result, error) {
	if err := opts.validate(); err != nil {
		return Result{}, err
	}

	e := newEngine(ds, opts.Hyperparams)
	e.maxExpansions = opts.NumExpansions
	if opts.TimeLimit >= 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(opts.TimeLimit)
	}
	e.ctx = ctx

	start := time.Now()
	e.root = e.getOrCreate(ds.Full(), 0)
	e.run()
	elapsed := time.Since(start).Seconds()

	best := buildTree(e.root)
	best.Fit(ds, ds.Full())

	return Result{
		Tree:           best,
		ElapsedSeconds: elapsed,
		TimeoutFlag:    e.root.status != statusClosedOptimal,
		LB:             e.root.lb,
		UB:             e.root.ub,
	}, nil
}

// BruteForceOptimal exhaustively enumerates every well-formed tree over ds
// (bounded by the number of binary features, which keeps this tractable
// only for small test fixtures) and returns the one with the lowest
// -log-posterior. It exists purely to give the branch-and-bound engine's
// optimality claim an independent, non-tautological check in tests: it
// never prunes, so its answer cannot be wrong for the reason a bound bug
// would be wrong.
func BruteForceOptimal(ds *dataset.Dataset, hp scoring.Hyperparams) (*tree.Tree, float64, error) {
	if err := hp.Validate(); err != nil {
		return nil, 0, err
	}
	best, bestCost := bruteForce(ds, ds.Full(), hp, 0)
	best.Fit(ds, ds.Full())
	return best, bestCost, nil
}

func bruteForce(ds *dataset.Dataset, mask dataset.Bitset, hp scoring.Hyperparams, depth int) (*tree.Tree, float64) {
	n0, n1 := ds.LabelCounts(mask)
	validFeatures := ds.ValidFeatures(mask)
	leaf := tree.NewLeaf()

	// A node with no valid feature left is forced to be a leaf, so its stop
	// prior contributes 0, not LogProbStop(depth) — same V=0 rule engine.go
	// and tree.LogPrior apply.
	var logPrior float64
	if len(validFeatures) > 0 {
		logPrior = scoring.LogProbStop(depth, hp)
	}
	leafCost := -(logPrior + scoring.LeafLogLikelihood(n0, n1, hp))

	best, bestCost := leaf, leafCost
	for _, f := range validFeatures {
		left, right := ds.Split(mask, f)
		leftTree, leftCost := bruteForce(ds, left, hp, depth+1)
		rightTree, rightCost := bruteForce(ds, right, hp, depth+1)
		splitCost := -(scoring.LogProbSplit(depth, hp) + scoring.LogChooseFeature(len(validFeatures)))
		total := splitCost + leftCost + rightCost
		if total < bestCost {
			best = tree.NewInternal(f, leftTree, rightTree)
			bestCost = total
		}
	}
	return best, bestCost
}
