package smc

import (
	"math/rand"

	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/scoring"
)

// particle is one hypothesis tree under construction plus its running
// sequential importance weight (in log space).
type particle struct {
	root      *node
	frontier  []*node // open nodes not yet decided, in FIFO growth order
	logWeight float64
}

func newParticle(ds *dataset.Dataset, h scoring.Hyperparams) *particle {
	root := newOpenNode(ds, ds.Full(), 0)
	return &particle{
		root:      root,
		frontier:  []*node{root},
		logWeight: scoring.LeafLogLikelihood(root.n0, root.n1, h),
	}
}

func cloneParticle(p *particle) *particle {
	root := cloneNode(p.root)
	return &particle{root: root, frontier: collectFrontier(root), logWeight: p.logWeight}
}

// collectFrontier rebuilds the FIFO frontier of a cloned tree by a
// breadth-first walk, since cloneNode does not preserve pointer identity
// with the original frontier slice.
func collectFrontier(root *node) []*node {
	var out []*node
	queue := []*node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		switch n.status {
		case statusOpen:
			out = append(out, n)
		case statusInternal:
			queue = append(queue, n.left, n.right)
		}
	}
	return out
}

func (p *particle) done() bool { return len(p.frontier) == 0 }

// decide resolves one open node in place: sampling its action, mutating it
// into a leaf or internal node, and folding the step's importance-weight
// contribution into p.logWeight. Returns the node's newly opened children,
// or nil for a stop decision.
func (p *particle) decide(rng *rand.Rand, ds *dataset.Dataset, h scoring.Hyperparams, kind ProposalKind, tempering float64, n *node) (left, right *node) {
	act, sisRatio, delta := sampleAction(rng, ds, n, h, kind)
	p.logWeight += sisRatio + tempering*delta

	if act.feature < 0 {
		n.status = statusLeaf
		return nil, nil
	}

	n.status = statusInternal
	n.feature = act.feature
	leftMask, rightMask := ds.Split(n.mask, act.feature)
	n.left = newOpenNode(ds, leftMask, n.depth+1)
	n.right = newOpenNode(ds, rightMask, n.depth+1)
	return n.left, n.right
}

// step advances the particle by one growth step according to mode,
// returning true if any node was resolved (false means the particle was
// already fully decided).
func (p *particle) step(rng *rand.Rand, ds *dataset.Dataset, h scoring.Hyperparams, kind ProposalKind, mode GrowthMode, tempering float64) bool {
	if p.done() {
		return false
	}

	switch mode {
	case GrowthNodewise:
		n := p.frontier[0]
		p.frontier = p.frontier[1:]
		left, right := p.decide(rng, ds, h, kind, tempering, n)
		if left != nil {
			p.frontier = append(p.frontier, left, right)
		}
	case GrowthLayerwise:
		layer := p.frontier
		p.frontier = nil
		for _, n := range layer {
			left, right := p.decide(rng, ds, h, kind, tempering, n)
			if left != nil {
				p.frontier = append(p.frontier, left, right)
			}
		}
	}
	return true
}
