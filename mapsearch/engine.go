package mapsearch

import (
	"container/heap"
	"context"
	"time"

	"github.com/arborist-go/bcrt/bcrterr"
	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/scoring"
	"github.com/arborist-go/bcrt/tree"
)

// epsilon is the tolerance used for bound-equality and monotonicity checks,
// used to absorb floating-point noise in bound comparisons.
const epsilon = 1e-9

// engine holds all per-search state: the dataset view, hyperparameters, the
// subset-fingerprint memo table, and the best-first frontier. Scoped to a
// single Search call; nothing here is shared across searches.
type engine struct {
	ds *dataset.Dataset
	hp scoring.Hyperparams

	memo map[uint64][]*subproblem
	root *subproblem

	frontier frontier

	expansions    int
	maxExpansions int // unlimited sentinel if < 0
	useDeadline   bool
	deadline      time.Time
	stepCounter   int
	ctx           context.Context
}

func newEngine(ds *dataset.Dataset, hp scoring.Hyperparams) *engine {
	return &engine{
		ds:   ds,
		hp:   hp,
		memo: make(map[uint64][]*subproblem),
	}
}

// getOrCreate returns the memoized subproblem for mask, creating it (with
// depth fixed at first discovery) if this is the first time mask is seen.
func (e *engine) getOrCreate(mask dataset.Bitset, depth int) *subproblem {
	fp := mask.Fingerprint()
	for _, sp := range e.memo[fp] {
		if sp.mask.Equal(mask) {
			return sp
		}
	}

	n0, n1 := e.ds.LabelCounts(mask)
	validFeatures := e.ds.ValidFeatures(mask)

	// ValidFeatures already requires 0 < count_with_feature < subset_size, so
	// every subproblem reached via Split has a non-empty mask. With no valid
	// feature left a leaf is forced (prior contribution log(1)=0); otherwise
	// becoming a leaf costs the depth-dependent stop probability (tree.LogPrior
	// mirrors this exactly).
	var logPrior float64
	if len(validFeatures) > 0 {
		logPrior = scoring.LogProbStop(depth, e.hp)
	}
	leafCost := -logPrior - scoring.LeafLogLikelihood(n0, n1, e.hp)

	sp := &subproblem{
		mask:          mask,
		fingerprint:   fp,
		depth:         depth,
		leafCost:      leafCost,
		validFeatures: validFeatures,
		bestAction:    noFeature,
	}
	if len(validFeatures) == 0 {
		sp.lb, sp.ub = leafCost, leafCost
		sp.status = statusClosedOptimal
		sp.expanded = true
	} else {
		sp.lb, sp.ub = 0, leafCost
		sp.status = statusOpen
		sp.splitCost = -(scoring.LogProbSplit(depth, e.hp) + scoring.LogChooseFeature(len(validFeatures)))
	}

	e.memo[fp] = append(e.memo[fp], sp)
	return sp
}

// enqueue pushes sp onto the frontier exactly once.
func (e *engine) enqueue(sp *subproblem) {
	if sp.queued || sp.status != statusOpen {
		return
	}
	sp.queued = true
	heap.Push(&e.frontier, sp)
}

// expand materializes sp's children (one AND-node per valid feature),
// registers reverse parent edges, enqueues newly discovered open children,
// and recomputes sp's own bounds from them.
func (e *engine) expand(sp *subproblem) {
	sp.expanded = true
	sp.children = make(map[int]childPair, len(sp.validFeatures))

	for _, f := range sp.validFeatures {
		left, right := e.ds.Split(sp.mask, f)
		leftSP := e.getOrCreate(left, sp.depth+1)
		rightSP := e.getOrCreate(right, sp.depth+1)
		leftSP.parents = append(leftSP.parents, &parentEdge{parent: sp, feature: f, isRight: false})
		rightSP.parents = append(rightSP.parents, &parentEdge{parent: sp, feature: f, isRight: true})
		sp.children[f] = childPair{left: leftSP, right: rightSP}
		e.enqueue(leftSP)
		e.enqueue(rightSP)
	}

	e.recomputeAndPropagate(sp)
}

// recompute updates sp's lb/ub/bestAction from its children's current
// bounds, and reports whether either bound moved.
func (e *engine) recompute(sp *subproblem) bool {
	bestUB := sp.leafCost
	bestAction := noFeature
	bestLB := sp.leafCost

	for _, f := range sp.validFeatures {
		pair := sp.children[f]
		lbCandidate := sp.splitCost + pair.left.lb + pair.right.lb
		ubCandidate := sp.splitCost + pair.left.ub + pair.right.ub
		if lbCandidate < bestLB {
			bestLB = lbCandidate
		}
		if ubCandidate < bestUB {
			bestUB = ubCandidate
			bestAction = f // ascending iteration + strict '<' => smallest feature wins ties
		}
	}

	if bestLB < sp.lb-epsilon || bestUB > sp.ub+epsilon {
		panic(bcrterr.ErrBoundRegression)
	}

	changed := bestLB > sp.lb+epsilon || bestUB < sp.ub-epsilon
	sp.lb, sp.ub, sp.bestAction = bestLB, bestUB, bestAction
	if sp.lb > sp.ub+epsilon {
		panic(bcrterr.ErrNegativeGap)
	}
	if sp.lb >= sp.ub-epsilon {
		sp.status = statusClosedOptimal
	}
	return changed
}

// recomputeAndPropagate recomputes sp and, on change, ripples the update to
// every AND-node that has sp as a child, breadth-first, until no further
// subproblem's bounds change.
func (e *engine) recomputeAndPropagate(sp *subproblem) {
	queue := []*subproblem{sp}
	queued := map[*subproblem]bool{sp: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		delete(queued, cur)

		if !e.recompute(cur) {
			continue
		}
		for _, edge := range cur.parents {
			if !queued[edge.parent] {
				queued[edge.parent] = true
				queue = append(queue, edge.parent)
			}
		}
	}
}

// deadlineExceeded performs a sparse wall-clock and context check: it polls
// on the first loop iteration and on every 64th one after that, so an
// already-expired deadline or cancelled context stops the search before its
// first expansion while later polls stay cheap.
func (e *engine) deadlineExceeded() bool {
	e.stepCounter++
	if (e.stepCounter & 63) != 1 {
		return false
	}
	if e.useDeadline && time.Now().After(e.deadline) {
		return true
	}
	if e.ctx != nil && e.ctx.Err() != nil {
		return true
	}
	return false
}

// run executes the best-first loop until the root is closed-optimal or a
// budget is exhausted.
func (e *engine) run() {
	e.enqueue(e.root)

	for e.frontier.Len() > 0 {
		if e.root.status == statusClosedOptimal {
			return
		}
		if e.maxExpansions >= 0 && e.expansions >= e.maxExpansions {
			return
		}
		if e.deadlineExceeded() {
			return
		}

		sp := heap.Pop(&e.frontier).(*subproblem)
		if sp.status != statusOpen || sp.expanded {
			continue // stale frontier entry (closed via propagation since it was queued)
		}
		e.expand(sp)
		e.expansions++
	}
}

// buildTree walks bestAction pointers from sp down to leaves, constructing
// sp's current best subtree by following best-action greedily.
func buildTree(sp *subproblem) *tree.Tree {
	if sp.bestAction == noFeature {
		return tree.NewLeaf()
	}
	pair := sp.children[sp.bestAction]
	return tree.NewInternal(sp.bestAction, buildTree(pair.left), buildTree(pair.right))
}
