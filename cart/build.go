package cart

import (
	"container/heap"

	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/tree"
)

// candidate is one pending leaf that could still be split, queued by its
// Gini gain. Converting target from a leaf into an internal node happens
// only when the candidate is popped, since a sibling split elsewhere in the
// tree never changes this leaf's own best split.
type candidate struct {
	target *tree.Tree
	mask   dataset.Bitset
	depth  int

	feature             int
	gain                float64
	leftMask, rightMask dataset.Bitset
	ln0, ln1, rn0, rn1  int
}

type pqueue []*candidate

func (q pqueue) Len() int { return len(q) }
func (q pqueue) Less(i, j int) bool {
	if q[i].gain != q[j].gain {
		return q[i].gain > q[j].gain
	}
	return q[i].feature < q[j].feature
}
func (q pqueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *pqueue) Push(x interface{}) { *q = append(*q, x.(*candidate)) }
func (q *pqueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Fit grows a binary classification tree by repeatedly splitting the leaf
// with the single largest Gini-impurity gain across the whole frontier
// (best-first, not depth-first), stopping once every leaf is pure or has no
// valid feature, or MaxDepth / MaxLeafNodes (whichever is configured) is
// reached. An impure leaf is still split when its best gain is zero (as on
// XOR labels), so a split whose benefit only shows one level deeper is not
// lost; zero-gain candidates are popped after every positive-gain one.
//
// Best-first order, rather than the plain depth-first stack a simpler
// builder would use, is what makes MaxLeafNodes a meaningful budget: it
// guarantees the leaves actually grown are the globally highest-gain ones
// seen so far, not whichever a fixed traversal order happened to reach
// first.
func Fit(ds *dataset.Dataset, opts Options) *tree.Tree {
	root := tree.NewLeaf()
	root.N0, root.N1 = ds.LabelCounts(ds.Full())

	pq := &pqueue{}
	heap.Init(pq)
	tryPush(pq, ds, root, ds.Full(), 0, opts)

	leafCount := 1
	for pq.Len() > 0 {
		if opts.MaxLeafNodes > 0 && leafCount >= opts.MaxLeafNodes {
			break
		}
		c := heap.Pop(pq).(*candidate)

		left := tree.NewLeaf()
		left.N0, left.N1 = c.ln0, c.ln1
		right := tree.NewLeaf()
		right.N0, right.N1 = c.rn0, c.rn1

		c.target.Feature = c.feature
		c.target.Left = left
		c.target.Right = right
		leafCount++

		tryPush(pq, ds, left, c.leftMask, c.depth+1, opts)
		tryPush(pq, ds, right, c.rightMask, c.depth+1, opts)
	}

	return root
}

func tryPush(pq *pqueue, ds *dataset.Dataset, target *tree.Tree, mask dataset.Bitset, depth int, opts Options) {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return
	}
	found, c := bestSplit(ds, mask, depth)
	if !found || c.gain < 0 {
		return
	}
	if c.ln0+c.rn0 == 0 || c.ln1+c.rn1 == 0 {
		return // pure leaf: nothing left to separate
	}
	c.target = target
	heap.Push(pq, c)
}

// bestSplit scans every valid feature of mask in ascending order and
// returns the one with the largest Gini gain, breaking ties by smallest
// feature index. Binary features admit exactly one candidate split per
// feature (f==0 vs f==1), so there is no threshold search.
func bestSplit(ds *dataset.Dataset, mask dataset.Bitset, depth int) (bool, *candidate) {
	pn0, pn1 := ds.LabelCounts(mask)
	var best *candidate
	for _, f := range ds.ValidFeatures(mask) {
		left, right := ds.Split(mask, f)
		ln0, ln1 := ds.LabelCounts(left)
		rn0, rn1 := ds.LabelCounts(right)
		gain := giniGain(pn0, pn1, ln0, ln1, rn0, rn1)
		if best == nil || gain > best.gain {
			best = &candidate{
				mask: mask, depth: depth, feature: f, gain: gain,
				leftMask: left, rightMask: right,
				ln0: ln0, ln1: ln1, rn0: rn0, rn1: rn1,
			}
		}
	}
	return best != nil, best
}
