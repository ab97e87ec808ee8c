package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/scoring"
	"github.com/arborist-go/bcrt/tree"
)

func hp() scoring.Hyperparams {
	return scoring.Hyperparams{Alpha: 0.95, Beta: 0.5, Rho0: 2.5, Rho1: 2.5}
}

// s1 is a single-feature dataset with perfect separation.
func s1(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New([][]int{{0}, {0}, {1}, {1}}, []int{0, 0, 1, 1})
	require.NoError(t, err)
	return ds
}

func TestSerializeEmptyLeaf(t *testing.T) {
	require.Equal(t, "", tree.Serialize(tree.NewLeaf()))
}

func TestSerializeSingleSplit(t *testing.T) {
	tr := tree.NewInternal(0, tree.NewLeaf(), tree.NewLeaf())
	require.Equal(t, "(0)", tree.Serialize(tr))
}

func TestParseEmptyAndNaN(t *testing.T) {
	for _, s := range []string{"", "nan"} {
		tr, err := tree.Parse(s)
		require.NoError(t, err)
		require.True(t, tr.IsLeaf())
	}
}

func TestParseRoundTrip(t *testing.T) {
	original := tree.NewInternal(2,
		tree.NewInternal(0, tree.NewLeaf(), tree.NewLeaf()),
		tree.NewLeaf())
	s := tree.Serialize(original)
	parsed, err := tree.Parse(s)
	require.NoError(t, err)
	require.True(t, structurallyEqual(original, parsed))
}

func structurallyEqual(a, b *tree.Tree) bool {
	if a.IsLeaf() != b.IsLeaf() {
		return false
	}
	if a.IsLeaf() {
		return true
	}
	return a.Feature == b.Feature &&
		structurallyEqual(a.Left, b.Left) &&
		structurallyEqual(a.Right, b.Right)
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, s := range []string{"(", ")", "(0", "(a)", "(0)x"} {
		_, err := tree.Parse(s)
		require.Error(t, err, s)
	}
}

func TestLogPosteriorDecomposesIntoPriorPlusLikelihood(t *testing.T) {
	ds := s1(t)
	h := hp()
	tr := tree.NewInternal(0, tree.NewLeaf(), tree.NewLeaf())
	mask := ds.Full()

	prior := tr.LogPrior(ds, mask, h, 0)
	lik := tr.LogLikelihood(ds, mask, h)
	post := tr.LogPosterior(ds, mask, h)

	require.InDelta(t, prior+lik, post, 1e-9)
}

func TestFitAndPredictOnS1(t *testing.T) {
	ds := s1(t)
	tr := tree.NewInternal(0, tree.NewLeaf(), tree.NewLeaf())
	tr.Fit(ds, ds.Full())

	require.Equal(t, 0, tr.Predict([]int{0}))
	require.Equal(t, 1, tr.Predict([]int{1}))
}

func TestWellFormed(t *testing.T) {
	require.True(t, tree.NewLeaf().WellFormed())
	require.True(t, tree.NewInternal(0, tree.NewLeaf(), tree.NewLeaf()).WellFormed())

	broken := &tree.Tree{Feature: 0, Left: tree.NewLeaf(), Right: nil}
	require.False(t, broken.WellFormed())
}

func TestSizeAndDepth(t *testing.T) {
	leaf := tree.NewLeaf()
	require.Equal(t, 1, leaf.Size())
	require.Equal(t, 0, leaf.Depth())

	tr := tree.NewInternal(0, tree.NewLeaf(), tree.NewInternal(1, tree.NewLeaf(), tree.NewLeaf()))
	require.Equal(t, 5, tr.Size())
	require.Equal(t, 2, tr.Depth())
}
