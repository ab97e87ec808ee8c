package smc

import (
	"github.com/arborist-go/bcrt/bcrterr"
	"github.com/arborist-go/bcrt/scoring"
)

// ProposalKind selects how an open node's stop/split action is sampled.
type ProposalKind int

const (
	// ProposalPrior samples an action exactly from the CGM prior: stop with
	// probability p_stop(depth), else split uniformly among the valid
	// features. Proposal and target coincide, so every sis ratio is exactly
	// zero and the running particle weight reduces to the standard
	// "grow from the prior, weight by likelihood" SMC recipe.
	ProposalPrior ProposalKind = iota

	// ProposalEmpirical samples uniformly among {stop} union the valid
	// features, ignoring the prior's relative weighting of stop vs. split.
	ProposalEmpirical

	// ProposalPosterior deterministically picks the single action (stop or
	// a particular split feature) that maximizes prior-weighted one-step
	// lookahead log-likelihood, concentrating proposal mass on the greedy
	// local choice.
	ProposalPosterior
)

// GrowthMode selects how many open nodes a particle resolves per step.
type GrowthMode int

const (
	// GrowthNodewise resolves exactly one open node per particle per step,
	// taken FIFO from the particle's growth frontier.
	GrowthNodewise GrowthMode = iota

	// GrowthLayerwise resolves every node currently on the frontier in a
	// single step, so particles grow one full level at a time.
	GrowthLayerwise
)

// ResampleScheme selects the resampling algorithm used when an island's
// effective sample size drops at or below its threshold.
type ResampleScheme int

const (
	ResampleMultinomial ResampleScheme = iota
	ResampleSystematic
)

// Options configures a single SMC search call.
type Options struct {
	Hyperparams scoring.Hyperparams

	// NumParticles is the total particle count across all islands.
	NumParticles int

	// NumIslands partitions the particle population into independent
	// sub-populations, each with its own ESS tracking, resampling, and
	// marginal-likelihood accumulator. Must divide NumParticles.
	NumIslands int

	// MaxSteps bounds the number of growth steps; a particle that still has
	// open nodes when the budget runs out is finalized as-is (its remaining
	// open nodes convert to leaves).
	MaxSteps int

	Proposal ProposalKind
	Growth   GrowthMode
	Resample ResampleScheme

	// ESSThreshold is the fraction of an island's particle count at or
	// below which that island resamples, in (0, 1].
	ESSThreshold float64

	// Tempering scales the likelihood-delta term of the per-step importance
	// weight update, in [0, 1]. 1 is untempered.
	Tempering float64

	Seed int64
}

// DefaultOptions returns commonly used hyperparameters, 256 particles split
// across 4 islands, prior proposals, nodewise growth, systematic resampling
// at an ESS threshold of half the island size, and no tempering.
func DefaultOptions() Options {
	return Options{
		Hyperparams:  scoring.Hyperparams{Alpha: 0.95, Beta: 0.5, Rho0: 2.5, Rho1: 2.5},
		NumParticles: 256,
		NumIslands:   4,
		MaxSteps:     64,
		Proposal:     ProposalPrior,
		Growth:       GrowthNodewise,
		Resample:     ResampleSystematic,
		ESSThreshold: 0.5,
		Tempering:    1.0,
		Seed:         42,
	}
}

func (o Options) validate() error {
	if err := o.Hyperparams.ValidateSymmetric(); err != nil {
		return err
	}
	if o.NumParticles <= 0 {
		return bcrterr.ErrInvalidParticleCount
	}
	if o.NumIslands <= 0 || o.NumParticles%o.NumIslands != 0 {
		return bcrterr.ErrIslandsDoNotDivide
	}
	if o.ESSThreshold <= 0 || o.ESSThreshold > 1 {
		return bcrterr.ErrInvalidESSThreshold
	}
	if o.Tempering < 0 || o.Tempering > 1 {
		return bcrterr.ErrInvalidTempering
	}
	return nil
}
