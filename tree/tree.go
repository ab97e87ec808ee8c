// Package tree implements the BCRT tree representation: a discriminated
// Leaf/Internal node, well-formedness invariants, parenthesized
// serialization, and the fit/predict/score operations shared by every
// searcher in this module.
package tree

import (
	"math"

	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/scoring"
)

// Tree is a binary classification tree node. A Tree with Feature < 0 is a
// Leaf; otherwise it is Internal with both Left and Right populated: a
// well-formed tree has every internal node with both children present and
// every leaf carrying no feature.
//
// N0 and N1 are populated once a tree is fit via Fit; they are the zero value
// (0,0) for a tree that has never been fit. Mutability ends once a tree is
// returned by a searcher.
type Tree struct {
	Feature int // -1 for a leaf
	Left    *Tree
	Right   *Tree

	N0, N1 int // label counts, populated by Fit
}

// leafFeature is the sentinel Feature value for a leaf node.
const leafFeature = -1

// NewLeaf returns an unfit leaf node.
func NewLeaf() *Tree {
	return &Tree{Feature: leafFeature}
}

// NewInternal returns an internal node splitting on feature f.
func NewInternal(f int, left, right *Tree) *Tree {
	return &Tree{Feature: f, Left: left, Right: right}
}

// IsLeaf reports whether t is a leaf.
func (t *Tree) IsLeaf() bool { return t.Feature == leafFeature }

// Depth returns the tree depth: 0 for a leaf, else
// max(depth(left),depth(right))+1.
func (t *Tree) Depth() int {
	if t.IsLeaf() {
		return 0
	}
	ld, rd := t.Left.Depth(), t.Right.Depth()
	if ld > rd {
		return ld + 1
	}
	return rd + 1
}

// Size returns 1 for a leaf, else 1+size(left)+size(right).
func (t *Tree) Size() int {
	if t.IsLeaf() {
		return 1
	}
	return 1 + t.Left.Size() + t.Right.Size()
}

// WellFormed reports whether every internal node has both children present
// and every leaf carries no feature.
func (t *Tree) WellFormed() bool {
	if t.IsLeaf() {
		return t.Left == nil && t.Right == nil
	}
	return t.Left != nil && t.Right != nil && t.Feature >= 0 &&
		t.Left.WellFormed() && t.Right.WellFormed()
}

// Fit populates label counts at every node via one traversal of (X, y)
// restricted to mask.
func (t *Tree) Fit(ds *dataset.Dataset, mask dataset.Bitset) {
	t.N0, t.N1 = ds.LabelCounts(mask)
	if t.IsLeaf() {
		return
	}
	left, right := ds.Split(mask, t.Feature)
	t.Left.Fit(ds, left)
	t.Right.Fit(ds, right)
}

// Predict returns the majority-class label for a single sample whose
// feature vector is x (length D). The tree must have been Fit first at the
// leaf reached by x; Predict never mutates the tree.
func (t *Tree) Predict(x []int) int {
	node := t
	for !node.IsLeaf() {
		if x[node.Feature] == 1 {
			node = node.Right
		} else {
			node = node.Left
		}
	}
	if node.N1 > node.N0 {
		return 1
	}
	return 0
}

// Leaves returns every leaf in left-to-right order.
func (t *Tree) Leaves() []*Tree {
	if t.IsLeaf() {
		return []*Tree{t}
	}
	return append(t.Left.Leaves(), t.Right.Leaves()...)
}

// LogPrior computes the tree's log-prior over mask at the given depth. An
// empty mask is impossible to reach from a well-formed tree fit on a
// non-empty mask, but is scored as -Inf rather than panicking.
func (t *Tree) LogPrior(ds *dataset.Dataset, mask dataset.Bitset, h scoring.Hyperparams, depth int) float64 {
	size := ds.SubsetSize(mask)
	if size == 0 {
		return math.Inf(-1)
	}
	numValid := ds.NumValidFeatures(mask)
	if t.IsLeaf() {
		if numValid == 0 {
			return 0
		}
		return scoring.LogProbStop(depth, h)
	}
	left, right := ds.Split(mask, t.Feature)
	return scoring.LogProbSplit(depth, h) + scoring.LogChooseFeature(numValid) +
		t.Left.LogPrior(ds, left, h, depth+1) +
		t.Right.LogPrior(ds, right, h, depth+1)
}

// LogLikelihood computes the sum of leaf Beta-Binomial log-likelihoods over
// mask.
func (t *Tree) LogLikelihood(ds *dataset.Dataset, mask dataset.Bitset, h scoring.Hyperparams) float64 {
	if t.IsLeaf() {
		n0, n1 := ds.LabelCounts(mask)
		return scoring.LeafLogLikelihood(n0, n1, h)
	}
	left, right := ds.Split(mask, t.Feature)
	return t.Left.LogLikelihood(ds, left, h) + t.Right.LogLikelihood(ds, right, h)
}

// LogPosterior returns log_prior + log_likelihood: the log-posterior always
// decomposes exactly into the two.
func (t *Tree) LogPosterior(ds *dataset.Dataset, mask dataset.Bitset, h scoring.Hyperparams) float64 {
	return t.LogPrior(ds, mask, h, 0) + t.LogLikelihood(ds, mask, h)
}
