// Package bcrterr collects the sentinel errors shared across the BCRT
// packages (dataset, scoring, tree, mapsearch, mcmc, smc, cart).
//
// Policy mirrors the rest of this module: prefer a sentinel over
// fmt.Errorf wrapping wherever the caller only needs to compare with
// errors.Is; reserve wrapped errors for cases where a concrete offending
// value must travel with the error.
package bcrterr

import "errors"

// Input-shape errors.
var (
	// ErrEmptyDataset indicates zero samples or zero features.
	ErrEmptyDataset = errors.New("bcrt: empty dataset")

	// ErrShapeMismatch indicates len(y) != number of rows of X, or ragged rows.
	ErrShapeMismatch = errors.New("bcrt: X/y shape mismatch")

	// ErrNonBinaryEntry indicates a feature or label entry outside {0,1}.
	ErrNonBinaryEntry = errors.New("bcrt: non-binary entry")
)

// Hyperparameter errors.
var (
	// ErrInvalidAlpha indicates alpha is outside (0,1].
	ErrInvalidAlpha = errors.New("bcrt: alpha must be in (0,1]")

	// ErrInvalidBeta indicates beta < 0.
	ErrInvalidBeta = errors.New("bcrt: beta must be >= 0")

	// ErrInvalidRho indicates rho0 <= 0 or rho1 <= 0.
	ErrInvalidRho = errors.New("bcrt: rho0 and rho1 must be > 0")

	// ErrRhoAsymmetric indicates rho0 != rho1 where the caller (MCMC, SMC)
	// requires a symmetric Beta prior.
	ErrRhoAsymmetric = errors.New("bcrt: rho0 must equal rho1")

	// ErrIslandsDoNotDivide indicates num_islands does not divide num_particles.
	ErrIslandsDoNotDivide = errors.New("bcrt: number of islands must divide number of particles")

	// ErrInvalidParticleCount indicates num_particles <= 0.
	ErrInvalidParticleCount = errors.New("bcrt: num_particles must be > 0")

	// ErrInvalidESSThreshold indicates the ESS resampling threshold is
	// outside (0, 1].
	ErrInvalidESSThreshold = errors.New("bcrt: ess threshold must be in (0,1]")

	// ErrInvalidTempering indicates the likelihood-tempering factor is
	// outside [0, 1].
	ErrInvalidTempering = errors.New("bcrt: tempering must be in [0,1]")

	// ErrNoBudget indicates neither num_expansions nor time_limit is finite;
	// exactly one must be.
	ErrNoBudget = errors.New("bcrt: exactly one of num_expansions or time_limit must be finite")

	// ErrBothBudgets indicates both num_expansions and time_limit are finite.
	ErrBothBudgets = errors.New("bcrt: exactly one of num_expansions or time_limit must be finite")
)

// Serialization errors.
var (
	// ErrMalformedSerialization indicates a tree string could not be parsed.
	ErrMalformedSerialization = errors.New("bcrt: malformed tree serialization")
)

// Internal-invariant errors. These are never expected in correct operation;
// they are surfaced rather than retried.
var (
	// ErrBoundRegression indicates a memoized lower or upper bound moved in
	// the wrong direction (lb decreased, or ub increased).
	ErrBoundRegression = errors.New("bcrt: memo bound regressed")

	// ErrNegativeGap indicates lb > ub for some subproblem, which must never
	// occur for an admissible search.
	ErrNegativeGap = errors.New("bcrt: lower bound exceeds upper bound")

	// ErrInvariantViolation is the generic internal-invariant sentinel for
	// guards reproduced literally from the reference implementation (see
	// mcmc's both-children-terminal bookkeeping guard).
	ErrInvariantViolation = errors.New("bcrt: internal invariant violation")
)
