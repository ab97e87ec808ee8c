package mapsearch

import "github.com/arborist-go/bcrt/dataset"

// status classifies a memoized subproblem's search state.
type status int

const (
	statusOpen status = iota
	statusClosedOptimal
)

// noFeature marks a subproblem whose current best action is "become a leaf"
// rather than "split on feature f".
const noFeature = -1

// subproblem is one entry of the AND/OR graph's memo table: the set of
// training indices reaching a node (identified by mask), its admissible
// lower/upper bounds on the minimum achievable -log-posterior of any subtree
// rooted here, and the best action discovered so far.
//
// Subproblems form a DAG, not a tree: the same mask can be reached via
// different ancestor paths, so each subproblem carries reverse edges to
// every AND-node (parent, feature) pair that references it, used to limit
// back-propagation to subproblems whose bounds could actually change.
type subproblem struct {
	mask        dataset.Bitset
	fingerprint uint64
	depth       int // depth at first discovery; see doc.go for the memoization note
	lb, ub      float64
	status      status

	bestAction int // noFeature, or the chosen feature index
	leafCost   float64
	splitCost  float64 // -(logProbSplit(depth) + logChooseFeature(numValid)); constant across candidate features at this node

	// parents lists every AND-node that has this subproblem as a left or
	// right child, so a bound update here can be propagated upward without
	// rescanning the whole memo table.
	parents []*parentEdge

	// children maps a candidate feature to its (left, right) subproblems,
	// populated once by engine.expand.
	children map[int]childPair

	validFeatures []int
	expanded      bool // children map has been populated and bounds recomputed at least once
	queued        bool // already pushed onto the frontier (avoids duplicate entries for shared subproblems)
}

// childPair is the AND-node's two children for one candidate feature.
type childPair struct {
	left, right *subproblem
}

// parentEdge is a reverse edge from a child subproblem to the AND-node (a
// parent subproblem choosing a specific feature) that references it.
type parentEdge struct {
	parent  *subproblem
	feature int
	isRight bool
}
