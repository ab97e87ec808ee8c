package mcmc

import (
	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/scoring"
	"github.com/arborist-go/bcrt/tree"
)

// node is the walker's own tree representation: unlike tree.Tree it caches
// the subset mask, depth, and label counts reaching it, since every move
// needs the current subset at the node it proposes to change without
// re-deriving it from the root.
type node struct {
	feature     int // -1 for a leaf
	left, right *node
	parent      *node

	mask   dataset.Bitset
	depth  int
	n0, n1 int
}

func (n *node) isLeaf() bool { return n.feature < 0 }

func newLeafNode(ds *dataset.Dataset, mask dataset.Bitset, depth int, parent *node) *node {
	n0, n1 := ds.LabelCounts(mask)
	return &node{feature: -1, mask: mask, depth: depth, n0: n0, n1: n1, parent: parent}
}

// numValid reports how many features could still split this node's subset.
func (n *node) numValid(ds *dataset.Dataset) int {
	return ds.NumValidFeatures(n.mask)
}

// leafPriorTerm is a leaf's own log-prior contribution: 0 if it has no valid
// split (stopping was forced, not chosen), else the stop-probability term.
func leafPriorTerm(depth int, numValid int, h scoring.Hyperparams) float64 {
	if numValid == 0 {
		return 0
	}
	return scoring.LogProbStop(depth, h)
}

// rebuild recomputes mask/depth/n0/n1 for n and, if internal, its entire
// subtree from n.feature downward. Used after CHANGE/SWAP mutate a feature
// assignment: the skeleton (which nodes are leaves vs internal) is
// unchanged, only the split columns used along the path, so everything
// below must be re-derived from the dataset.
func rebuildSubtree(ds *dataset.Dataset, n *node, mask dataset.Bitset, depth int) {
	n.mask = mask
	n.depth = depth
	n.n0, n.n1 = ds.LabelCounts(mask)
	if n.isLeaf() {
		return
	}
	left, right := ds.Split(mask, n.feature)
	rebuildSubtree(ds, n.left, left, depth+1)
	rebuildSubtree(ds, n.right, right, depth+1)
}

// subtreeLogPosterior sums the prior and likelihood contributions of n and
// every descendant, using the cached masks rather than re-deriving them.
func subtreeLogPosterior(ds *dataset.Dataset, n *node, h scoring.Hyperparams) float64 {
	if n.isLeaf() {
		return leafPriorTerm(n.depth, n.numValid(ds), h) + scoring.LeafLogLikelihood(n.n0, n.n1, h)
	}
	numValid := n.numValid(ds)
	return scoring.LogProbSplit(n.depth, h) + scoring.LogChooseFeature(numValid) +
		subtreeLogPosterior(ds, n.left, h) + subtreeLogPosterior(ds, n.right, h)
}

// toTree converts the walker's internal representation to the shared
// tree.Tree type returned by every searcher.
func toTree(n *node) *tree.Tree {
	if n.isLeaf() {
		leaf := tree.NewLeaf()
		leaf.N0, leaf.N1 = n.n0, n.n1
		return leaf
	}
	t := tree.NewInternal(n.feature, toTree(n.left), toTree(n.right))
	t.N0, t.N1 = n.n0, n.n1
	return t
}

func cloneLeaf(n *node) *node {
	return &node{feature: -1, parent: n.parent, mask: n.mask, depth: n.depth, n0: n.n0, n1: n.n1}
}
