package smc_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arborist-go/bcrt/dataset"
	"github.com/arborist-go/bcrt/scoring"
	"github.com/arborist-go/bcrt/smc"
	"github.com/arborist-go/bcrt/tree"
)

var hp = scoring.Hyperparams{Alpha: 0.95, Beta: 0.5, Rho0: 2.5, Rho1: 2.5}

func s1(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New([][]int{{0}, {0}, {1}, {1}}, []int{0, 0, 1, 1})
	require.NoError(t, err)
	return ds
}

func baseOpts() smc.Options {
	o := smc.DefaultOptions()
	o.NumParticles = 64
	o.NumIslands = 4
	o.MaxSteps = 8
	return o
}

func TestSearchSeedReproducibility(t *testing.T) {
	ds := s1(t)
	opts := baseOpts()

	r1, err := smc.Search(context.Background(), ds, opts)
	require.NoError(t, err)
	r2, err := smc.Search(context.Background(), ds, opts)
	require.NoError(t, err)

	require.Equal(t, tree.Serialize(r1.Tree), tree.Serialize(r2.Tree))
	require.InDelta(t, r1.LogMarginalLikelihood, r2.LogMarginalLikelihood, 1e-12)
}

func TestSearchRejectsAsymmetricRho(t *testing.T) {
	ds := s1(t)
	opts := baseOpts()
	opts.Hyperparams = scoring.Hyperparams{Alpha: 0.95, Beta: 0.5, Rho0: 1, Rho1: 2}
	_, err := smc.Search(context.Background(), ds, opts)
	require.Error(t, err)
}

func TestSearchRejectsBadIslandDivision(t *testing.T) {
	ds := s1(t)
	opts := baseOpts()
	opts.NumParticles = 10
	opts.NumIslands = 3
	_, err := smc.Search(context.Background(), ds, opts)
	require.Error(t, err)
}

func TestSearchRejectsInvalidESSThreshold(t *testing.T) {
	ds := s1(t)
	opts := baseOpts()
	opts.ESSThreshold = 0
	_, err := smc.Search(context.Background(), ds, opts)
	require.Error(t, err)
}

func TestSearchFindsSplitOnPerfectSeparation(t *testing.T) {
	ds := s1(t)
	opts := baseOpts()
	opts.NumParticles = 256
	opts.NumIslands = 4

	result, err := smc.Search(context.Background(), ds, opts)
	require.NoError(t, err)
	require.Equal(t, "(0)", tree.Serialize(result.Tree))
	require.False(t, math.IsInf(result.LogPosterior, 0))
	require.False(t, math.IsNaN(result.LogMarginalLikelihood))
}

func TestSearchWellFormedAcrossProposalAndGrowthKinds(t *testing.T) {
	ds, err := dataset.New([][]int{
		{0, 0}, {0, 1}, {1, 0}, {1, 1},
	}, []int{0, 1, 1, 0})
	require.NoError(t, err)

	for _, proposal := range []smc.ProposalKind{smc.ProposalPrior, smc.ProposalEmpirical, smc.ProposalPosterior} {
		for _, growth := range []smc.GrowthMode{smc.GrowthNodewise, smc.GrowthLayerwise} {
			opts := baseOpts()
			opts.Proposal = proposal
			opts.Growth = growth

			result, err := smc.Search(context.Background(), ds, opts)
			require.NoError(t, err)
			require.True(t, result.Tree.WellFormed())
			require.False(t, math.IsNaN(result.LogMarginalLikelihood))
		}
	}
}

func TestSearchContextCancellationReturnsResult(t *testing.T) {
	ds := s1(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := smc.Search(ctx, ds, baseOpts())
	require.NoError(t, err)
	require.NotNil(t, result.Tree)
}
