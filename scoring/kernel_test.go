package scoring_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arborist-go/bcrt/scoring"
)

func hp() scoring.Hyperparams {
	return scoring.Hyperparams{Alpha: 0.95, Beta: 0.5, Rho0: 2.5, Rho1: 2.5}
}

func TestLeafLogLikelihoodSymmetricUnderCountSwap(t *testing.T) {
	h := hp()
	// With rho0 == rho1 the score is symmetric: swapping n0 and n1 leaves it
	// unchanged.
	a := scoring.LeafLogLikelihood(3, 5, h)
	b := scoring.LeafLogLikelihood(5, 3, h)
	require.InDelta(t, a, b, 1e-9)
}

func TestLogProbSplitAndStopComplementary(t *testing.T) {
	h := hp()
	for depth := 0; depth < 5; depth++ {
		split := scoring.LogProbSplit(depth, h)
		stop := scoring.LogProbStop(depth, h)
		sum := math.Exp(split) + math.Exp(stop)
		require.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestLogChooseFeatureUniform(t *testing.T) {
	require.InDelta(t, -math.Log(4), scoring.LogChooseFeature(4), 1e-12)
}

func TestRound9Stabilizes(t *testing.T) {
	require.Equal(t, 1.000000001, scoring.Round9(1.0000000009))
}
