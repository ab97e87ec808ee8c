package mcmc

import (
	"math/rand"

	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/scoring"
)

// parentChildPair is an (internal, internal) edge eligible for SWAP.
type parentChildPair struct {
	parent, child *node
	childIsRight  bool
}

// walker holds the single current tree a Chipman-style chain mutates in
// place, plus the derived node sets every move needs to pick a target and
// compute a proposal ratio. The sets are recomputed by refresh after every
// accepted move rather than maintained incrementally: the trees this module
// explores are small (bounded by D binary features), so an O(size) full
// tree walk between iterations is cheap and keeps the move code simple.
type walker struct {
	ds   *dataset.Dataset
	hp   scoring.Hyperparams
	root *node

	leaves                []*node
	internals             []*node
	bothChildrenTerminal  []*node
	innerParentChildPairs []parentChildPair
}

func newWalker(ds *dataset.Dataset, hp scoring.Hyperparams) *walker {
	w := &walker{ds: ds, hp: hp, root: newLeafNode(ds, ds.Full(), 0, nil)}
	w.refresh()
	return w
}

// refresh recomputes leaves, internals, bothChildrenTerminal, and
// innerParentChildPairs by walking the current tree from the root.
func (w *walker) refresh() {
	w.leaves = w.leaves[:0]
	w.internals = w.internals[:0]
	w.bothChildrenTerminal = w.bothChildrenTerminal[:0]
	w.innerParentChildPairs = w.innerParentChildPairs[:0]
	w.walk(w.root)
}

func (w *walker) walk(n *node) {
	if n.isLeaf() {
		w.leaves = append(w.leaves, n)
		return
	}
	w.internals = append(w.internals, n)
	if n.left.isLeaf() && n.right.isLeaf() {
		w.bothChildrenTerminal = append(w.bothChildrenTerminal, n)
	}
	if !n.left.isLeaf() {
		w.innerParentChildPairs = append(w.innerParentChildPairs, parentChildPair{parent: n, child: n.left, childIsRight: false})
	}
	if !n.right.isLeaf() {
		w.innerParentChildPairs = append(w.innerParentChildPairs, parentChildPair{parent: n, child: n.right, childIsRight: true})
	}
	w.walk(n.left)
	w.walk(n.right)
}

// growCandidates returns the leaves with at least one valid feature.
func (w *walker) growCandidates() []*node {
	out := make([]*node, 0, len(w.leaves))
	for _, leaf := range w.leaves {
		if leaf.numValid(w.ds) > 0 {
			out = append(out, leaf)
		}
	}
	return out
}

func (w *walker) containsBothChildrenTerminal(p *node) bool {
	for _, n := range w.bothChildrenTerminal {
		if n == p {
			return true
		}
	}
	return false
}

func (w *walker) logPosterior() float64 {
	return subtreeLogPosterior(w.ds, w.root, w.hp)
}

// pick returns a uniformly random element of a non-empty slice.
func pickNode(rng *rand.Rand, nodes []*node) *node {
	return nodes[rng.Intn(len(nodes))]
}

func pickFeature(rng *rand.Rand, features []int) int {
	return features[rng.Intn(len(features))]
}
