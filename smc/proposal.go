package smc

import (
	"math"
	"math/rand"

	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/scoring"
)

// action is a candidate decision for one open node: stop (become a leaf) or
// split on a particular feature.
type action struct {
	feature int // -1 means stop
}

// candidate bundles one action with the two scores every proposal kind
// needs: the action's true log-prior probability under the generative
// model, and the one-step lookahead log-likelihood delta it would produce
// (zero for stop, since a leaf's likelihood was already paid for by its
// parent's split delta; see particle.decide).
type candidate struct {
	act            action
	logPrior       float64
	lookaheadDelta float64
}

func buildCandidates(ds *dataset.Dataset, n *node, h scoring.Hyperparams) []candidate {
	numValid := n.numValid(ds)
	stop := candidate{act: action{feature: -1}, logPrior: leafPriorTerm(n.depth, numValid, h), lookaheadDelta: 0}
	if numValid == 0 {
		return []candidate{stop}
	}

	parentLik := scoring.LeafLogLikelihood(n.n0, n.n1, h)
	out := make([]candidate, 0, numValid+1)
	out = append(out, stop)
	for _, f := range ds.ValidFeatures(n.mask) {
		left, right := ds.Split(n.mask, f)
		ln0, ln1 := ds.LabelCounts(left)
		rn0, rn1 := ds.LabelCounts(right)
		delta := scoring.LeafLogLikelihood(ln0, ln1, h) + scoring.LeafLogLikelihood(rn0, rn1, h) - parentLik
		logPrior := scoring.LogProbSplit(n.depth, h) + scoring.LogChooseFeature(numValid)
		out = append(out, candidate{act: action{feature: f}, logPrior: logPrior, lookaheadDelta: delta})
	}
	return out
}

// proposalLogProbs returns, parallel to cands, the log-probability each
// candidate is assigned under the configured proposal distribution.
func proposalLogProbs(cands []candidate, kind ProposalKind) []float64 {
	out := make([]float64, len(cands))
	if len(cands) == 1 {
		out[0] = 0 // forced action, log(1) == 0
		return out
	}

	switch kind {
	case ProposalPrior:
		for i, c := range cands {
			out[i] = c.logPrior
		}
	case ProposalEmpirical:
		logP := -math.Log(float64(len(cands)))
		for i := range cands {
			out[i] = logP
		}
	case ProposalPosterior:
		best := 0
		bestScore := cands[0].logPrior + cands[0].lookaheadDelta
		for i := 1; i < len(cands); i++ {
			score := cands[i].logPrior + cands[i].lookaheadDelta
			if score > bestScore {
				bestScore, best = score, i
			}
		}
		for i := range out {
			out[i] = math.Inf(-1)
		}
		out[best] = 0
	}
	return out
}

// sampleAction draws one candidate according to its proposal probability and
// returns the chosen action plus the sis (sequential importance sampling)
// ratio log(targetPrior) - log(proposalProb) and the lookahead likelihood
// delta to apply (tempered by the caller).
func sampleAction(rng *rand.Rand, ds *dataset.Dataset, n *node, h scoring.Hyperparams, kind ProposalKind) (action, float64, float64) {
	cands := buildCandidates(ds, n, h)
	logProbs := proposalLogProbs(cands, kind)

	if len(cands) == 1 {
		return cands[0].act, 0, cands[0].lookaheadDelta
	}

	idx := drawIndex(rng, logProbs)
	sisRatio := cands[idx].logPrior - logProbs[idx]
	return cands[idx].act, sisRatio, cands[idx].lookaheadDelta
}

// drawIndex samples an index from a categorical distribution given as
// log-probabilities (need not be normalized relative to each other beyond
// summing to 1 once exponentiated, which holds for every kind above).
func drawIndex(rng *rand.Rand, logProbs []float64) int {
	u := rng.Float64()
	cum := 0.0
	for i, lp := range logProbs {
		cum += math.Exp(lp)
		if u <= cum {
			return i
		}
	}
	return len(logProbs) - 1
}
