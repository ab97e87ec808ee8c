package mapsearch_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arborist-go/bcrt/bcrterr"
	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/mapsearch"
	"github.com/arborist-go/bcrt/scoring"
	"github.com/arborist-go/bcrt/tree"
)

var hp = scoring.Hyperparams{Alpha: 0.95, Beta: 0.5, Rho0: 2.5, Rho1: 2.5}

func withExpansions(n int) mapsearch.Options {
	return mapsearch.Options{Hyperparams: hp, NumExpansions: n, TimeLimit: -1}
}

// Single feature, perfect separation -> depth-1 optimal tree.
func TestSearchPerfectSeparation(t *testing.T) {
	ds, err := dataset.New([][]int{{0}, {0}, {1}, {1}}, []int{0, 0, 1, 1})
	require.NoError(t, err)

	res, err := mapsearch.Search(context.Background(), ds, withExpansions(1000))
	require.NoError(t, err)
	require.False(t, res.TimeoutFlag)
	require.InDelta(t, res.LB, res.UB, 1e-9)
	require.Equal(t, "(0)", tree.Serialize(res.Tree))
}

// A dataset with no valid features anywhere forces a single leaf.
func TestSearchDegenerateSingleLeaf(t *testing.T) {
	ds, err := dataset.New([][]int{{0, 0}, {0, 0}, {0, 0}, {0, 0}}, []int{0, 0, 1, 1})
	require.NoError(t, err)

	res, err := mapsearch.Search(context.Background(), ds, withExpansions(1000))
	require.NoError(t, err)
	require.Equal(t, "", tree.Serialize(res.Tree))
	require.InDelta(t, res.LB, res.UB, 1e-9)
}

// XOR of two features needs a depth-2 tree; no single split separates it.
func TestSearchXORNeedsDepthTwo(t *testing.T) {
	ds, err := dataset.New([][]int{
		{0, 0},
		{0, 1},
		{1, 0},
		{1, 1},
	}, []int{0, 1, 1, 0})
	require.NoError(t, err)

	res, err := mapsearch.Search(context.Background(), ds, withExpansions(1000))
	require.NoError(t, err)
	require.InDelta(t, res.LB, res.UB, 1e-9)
	require.Equal(t, 2, res.Tree.Depth())

	for i, row := range [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		want := []int{0, 1, 1, 0}[i]
		require.Equal(t, want, res.Tree.Predict(row))
	}
}

// A deadline tight enough to prevent expansion still returns a valid,
// non-optimal (timeout-flagged) result rather than erroring.
func TestSearchTimeLimitReportsTimeout(t *testing.T) {
	ds, err := dataset.New([][]int{
		{0, 0}, {0, 1}, {1, 0}, {1, 1},
	}, []int{0, 1, 1, 0})
	require.NoError(t, err)

	opts := mapsearch.Options{Hyperparams: hp, NumExpansions: -1, TimeLimit: time.Nanosecond}
	res, err := mapsearch.Search(context.Background(), ds, opts)
	require.NoError(t, err)
	require.True(t, res.TimeoutFlag)
	require.True(t, res.LB <= res.UB+1e-9)
	require.NotNil(t, res.Tree)
}

func TestSearchRejectsBadBudgetConfiguration(t *testing.T) {
	ds, err := dataset.New([][]int{{0}, {1}}, []int{0, 1})
	require.NoError(t, err)

	_, err = mapsearch.Search(context.Background(), ds, mapsearch.Options{Hyperparams: hp, NumExpansions: -1, TimeLimit: -1})
	require.ErrorIs(t, err, bcrterr.ErrNoBudget)

	_, err = mapsearch.Search(context.Background(), ds, mapsearch.Options{Hyperparams: hp, NumExpansions: 10, TimeLimit: time.Second})
	require.ErrorIs(t, err, bcrterr.ErrBothBudgets)
}

func TestSearchMatchesBruteForceOnXOR(t *testing.T) {
	ds, err := dataset.New([][]int{
		{0, 0}, {0, 1}, {1, 0}, {1, 1},
	}, []int{0, 1, 1, 0})
	require.NoError(t, err)

	res, err := mapsearch.Search(context.Background(), ds, withExpansions(1000))
	require.NoError(t, err)

	_, bruteCost, err := mapsearch.BruteForceOptimal(ds, hp)
	require.NoError(t, err)

	got := -res.Tree.LogPosterior(ds, ds.Full(), hp)
	require.InDelta(t, bruteCost, got, 1e-9)
}

func TestSearchMatchesBruteForceOnLargerRandomLikeSet(t *testing.T) {
	rows := [][]int{
		{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {0, 1, 1},
		{1, 0, 0}, {1, 0, 1}, {1, 1, 0}, {1, 1, 1},
	}
	labels := []int{0, 0, 1, 1, 1, 0, 0, 1}
	ds, err := dataset.New(rows, labels)
	require.NoError(t, err)

	res, err := mapsearch.Search(context.Background(), ds, withExpansions(5000))
	require.NoError(t, err)
	require.InDelta(t, res.LB, res.UB, 1e-9)

	_, bruteCost, err := mapsearch.BruteForceOptimal(ds, hp)
	require.NoError(t, err)
	got := -res.Tree.LogPosterior(ds, ds.Full(), hp)
	require.InDelta(t, bruteCost, got, 1e-9)
}

func TestSearchContextCancellationStopsSearch(t *testing.T) {
	ds, err := dataset.New([][]int{
		{0, 0}, {0, 1}, {1, 0}, {1, 1},
	}, []int{0, 1, 1, 0})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := mapsearch.Options{Hyperparams: hp, NumExpansions: -1, TimeLimit: time.Hour}
	res, err := mapsearch.Search(ctx, ds, opts)
	require.NoError(t, err)
	require.True(t, res.TimeoutFlag)
	require.NotNil(t, res.Tree)
}

func TestSearchResultTreeIsWellFormed(t *testing.T) {
	ds, err := dataset.New([][]int{
		{0, 0}, {0, 1}, {1, 0}, {1, 1},
	}, []int{0, 1, 1, 0})
	require.NoError(t, err)

	res, err := mapsearch.Search(context.Background(), ds, withExpansions(1000))
	require.NoError(t, err)
	require.True(t, res.Tree.WellFormed())
	require.False(t, math.IsNaN(res.LB))
	require.False(t, math.IsNaN(res.UB))
}
