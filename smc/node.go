package smc

import (
	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/scoring"
	"github.com/arborist-go/bcrt/tree"
)

// nodeStatus is the tri-state every particle node cycles through: open
// (still on the growth frontier, no action sampled yet), leaf (the split
// decision was "stop"), or internal (the split decision picked a feature).
type nodeStatus int

const (
	statusOpen nodeStatus = iota
	statusLeaf
	statusInternal
)

// node is one node of a particle's partial tree. An open node carries only
// its subset and depth; a decided node additionally carries its feature (if
// internal) and children, plus the cached likelihood/prior terms needed to
// compute the next step's importance-weight update without re-deriving
// them.
type node struct {
	status nodeStatus
	mask   dataset.Bitset
	depth  int
	n0, n1 int

	feature     int
	left, right *node
}

func newOpenNode(ds *dataset.Dataset, mask dataset.Bitset, depth int) *node {
	n0, n1 := ds.LabelCounts(mask)
	return &node{status: statusOpen, mask: mask, depth: depth, n0: n0, n1: n1, feature: -1}
}

func (n *node) numValid(ds *dataset.Dataset) int { return ds.NumValidFeatures(n.mask) }

func leafPriorTerm(depth, numValid int, h scoring.Hyperparams) float64 {
	if numValid == 0 {
		return 0
	}
	return scoring.LogProbStop(depth, h)
}

// logPosterior sums the prior and likelihood contributions of the subtree
// rooted at n. An open node is scored as the leaf toTree turns it into, so
// the result is the log-posterior of the tree toTree returns.
func logPosterior(ds *dataset.Dataset, n *node, h scoring.Hyperparams) float64 {
	switch n.status {
	case statusOpen, statusLeaf:
		return leafPriorTerm(n.depth, n.numValid(ds), h) + scoring.LeafLogLikelihood(n.n0, n.n1, h)
	default:
		numValid := n.numValid(ds)
		return scoring.LogProbSplit(n.depth, h) + scoring.LogChooseFeature(numValid) +
			logPosterior(ds, n.left, h) + logPosterior(ds, n.right, h)
	}
}

// toTree converts a fully decided particle (no statusOpen nodes remain) into
// the shared tree.Tree representation. Any remaining open node converts to
// a leaf carrying its label counts, since a particle that ran out of budget
// mid-growth must still produce a well-formed tree.
func toTree(n *node) *tree.Tree {
	if n.status != statusInternal {
		leaf := tree.NewLeaf()
		leaf.N0, leaf.N1 = n.n0, n.n1
		return leaf
	}
	t := tree.NewInternal(n.feature, toTree(n.left), toTree(n.right))
	t.N0, t.N1 = n.n0, n.n1
	return t
}

func cloneNode(n *node) *node {
	cp := &node{status: n.status, mask: n.mask, depth: n.depth, n0: n.n0, n1: n.n1, feature: n.feature}
	if n.status == statusInternal {
		cp.left = cloneNode(n.left)
		cp.right = cloneNode(n.right)
	}
	return cp
}
