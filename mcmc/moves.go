package mcmc

import (
	"math"
	"math/rand"

	"github.com/arborist-go/bcrt/bcrterr"
	"github.com/arborist-go/bcrt/scoring"
)

type moveKind int

const (
	moveGrow moveKind = iota
	movePrune
	moveChange
	moveSwap
)

// growLogAcc is the shared acceptance-ratio formula for GROW and its
// reverse, PRUNE: the target-density delta (likelihood + prior) plus the
// log proposal-ratio correction log|grow_candidates_old| -
// log|both_children_terminal_new|.
func growLogAcc(h scoring.Hyperparams, depth, n0, n1, ln0, ln1, rn0, rn1, numValidLeaf, numValidLeft, numValidRight, numGrowCandidatesOld, numBothChildrenTerminalNew int) float64 {
	deltaLik := scoring.LeafLogLikelihood(ln0, ln1, h) + scoring.LeafLogLikelihood(rn0, rn1, h) - scoring.LeafLogLikelihood(n0, n1, h)
	deltaPrior := scoring.LogProbSplit(depth, h) + scoring.LogChooseFeature(numValidLeaf) +
		leafPriorTerm(depth+1, numValidLeft, h) + leafPriorTerm(depth+1, numValidRight, h) -
		leafPriorTerm(depth, numValidLeaf, h)
	return deltaLik + deltaPrior + math.Log(float64(numGrowCandidatesOld)) - math.Log(float64(numBothChildrenTerminalNew))
}

// tryGrow attempts one GROW move and reports whether it was accepted.
func (w *walker) tryGrow(rng *rand.Rand) bool {
	candidates := w.growCandidates()
	if len(candidates) == 0 {
		return false
	}
	leaf := pickNode(rng, candidates)
	validFeatures := w.ds.ValidFeatures(leaf.mask)
	f := pickFeature(rng, validFeatures)

	// Open-question guard (reproduced literally): if leaf's sibling is
	// itself a leaf, their shared parent must already be a member of
	// bothChildrenTerminal before this move; its absence is an invariant
	// violation, not a silent no-op.
	if leaf.parent != nil {
		sibling := leaf.parent.left
		if sibling == leaf {
			sibling = leaf.parent.right
		}
		if sibling.isLeaf() && !w.containsBothChildrenTerminal(leaf.parent) {
			panic(bcrterr.ErrInvariantViolation)
		}
	}

	left, right := w.ds.Split(leaf.mask, f)
	leftNode := newLeafNode(w.ds, left, leaf.depth+1, leaf)
	rightNode := newLeafNode(w.ds, right, leaf.depth+1, leaf)

	numValidLeaf := leaf.numValid(w.ds)
	numValidLeft := leftNode.numValid(w.ds)
	numValidRight := rightNode.numValid(w.ds)

	// both_children_terminal_new: every current both-terminal parent stays
	// one (this move doesn't touch them) except leaf's own parent, which
	// loses membership since leaf is no longer a leaf; leaf itself gains
	// membership since both its new children are leaves.
	numBothNew := len(w.bothChildrenTerminal) + 1
	if leaf.parent != nil && w.containsBothChildrenTerminal(leaf.parent) {
		numBothNew--
	}

	logAcc := growLogAcc(w.hp, leaf.depth, leaf.n0, leaf.n1, leftNode.n0, leftNode.n1, rightNode.n0, rightNode.n1,
		numValidLeaf, numValidLeft, numValidRight, len(candidates), numBothNew)

	if !accept(rng, logAcc) {
		return false
	}

	leaf.feature = f
	leaf.left = leftNode
	leaf.right = rightNode
	w.refresh()
	return true
}

// tryPrune attempts one PRUNE move and reports whether it was accepted.
func (w *walker) tryPrune(rng *rand.Rand) bool {
	if len(w.bothChildrenTerminal) == 0 {
		return false
	}
	parent := pickNode(rng, w.bothChildrenTerminal)
	leftNode, rightNode := parent.left, parent.right

	// Candidate count PRUNE would have seen as the GROW move it reverses:
	// the merged leaf plus every other current grow candidate excluding
	// parent's two children (which vanish) but including parent itself
	// (which becomes a grow candidate again once merged).
	merged := cloneLeaf(parent)
	numGrowCandidatesAfterPrune := 0
	for _, l := range w.leaves {
		if l == leftNode || l == rightNode {
			continue
		}
		if l.numValid(w.ds) > 0 {
			numGrowCandidatesAfterPrune++
		}
	}
	if merged.numValid(w.ds) > 0 {
		numGrowCandidatesAfterPrune++
	}

	numValidLeaf := merged.numValid(w.ds)
	numValidLeft := leftNode.numValid(w.ds)
	numValidRight := rightNode.numValid(w.ds)

	growLogAccValue := growLogAcc(w.hp, parent.depth, merged.n0, merged.n1, leftNode.n0, leftNode.n1, rightNode.n0, rightNode.n1,
		numValidLeaf, numValidLeft, numValidRight, numGrowCandidatesAfterPrune, len(w.bothChildrenTerminal))

	if !accept(rng, -growLogAccValue) {
		return false
	}

	parent.feature = -1
	parent.left, parent.right = nil, nil
	w.refresh()
	return true
}

// tryChange attempts one CHANGE move and reports whether it was accepted.
func (w *walker) tryChange(rng *rand.Rand) bool {
	if len(w.internals) == 0 {
		return false
	}
	target := pickNode(rng, w.internals)
	validFeatures := w.ds.ValidFeatures(target.mask)
	if len(validFeatures) == 0 {
		return false
	}
	oldFeature := target.feature
	oldScore := subtreeLogPosterior(w.ds, target, w.hp)

	newFeature := pickFeature(rng, validFeatures)
	target.feature = newFeature
	rebuildSubtree(w.ds, target, target.mask, target.depth)

	if !swapStillValid(target) {
		target.feature = oldFeature
		rebuildSubtree(w.ds, target, target.mask, target.depth)
		return false
	}

	newScore := subtreeLogPosterior(w.ds, target, w.hp)

	if accept(rng, newScore-oldScore) {
		w.refresh()
		return true
	}

	target.feature = oldFeature
	rebuildSubtree(w.ds, target, target.mask, target.depth)
	return false
}

// trySwap attempts one SWAP move and reports whether it was accepted.
func (w *walker) trySwap(rng *rand.Rand) bool {
	if len(w.innerParentChildPairs) == 0 {
		return false
	}
	pair := w.innerParentChildPairs[rng.Intn(len(w.innerParentChildPairs))]
	oldScore := subtreeLogPosterior(w.ds, pair.parent, w.hp)

	oldParentFeature, oldChildFeature := pair.parent.feature, pair.child.feature
	pair.parent.feature, pair.child.feature = oldChildFeature, oldParentFeature
	rebuildSubtree(w.ds, pair.parent, pair.parent.mask, pair.parent.depth)

	if !swapStillValid(pair.parent) {
		pair.parent.feature, pair.child.feature = oldParentFeature, oldChildFeature
		rebuildSubtree(w.ds, pair.parent, pair.parent.mask, pair.parent.depth)
		return false
	}

	newScore := subtreeLogPosterior(w.ds, pair.parent, w.hp)
	if accept(rng, newScore-oldScore) {
		w.refresh()
		return true
	}

	pair.parent.feature, pair.child.feature = oldParentFeature, oldChildFeature
	rebuildSubtree(w.ds, pair.parent, pair.parent.mask, pair.parent.depth)
	return false
}

// swapStillValid rejects a swap that would empty a subset somewhere in the
// rebuilt subtree: every leaf must keep a non-empty subset, so an otherwise
// well-scored swap that starves a leaf is rejected outright rather than
// scored with a -Inf likelihood.
func swapStillValid(n *node) bool {
	if n.n0+n.n1 == 0 {
		return false
	}
	if n.isLeaf() {
		return true
	}
	return swapStillValid(n.left) && swapStillValid(n.right)
}

func accept(rng *rand.Rand, logAcc float64) bool {
	if logAcc >= 0 {
		return true
	}
	return math.Log(rng.Float64()) < logAcc
}
