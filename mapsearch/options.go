package mapsearch

import (
	"time"

	"github.com/arborist-go/bcrt/bcrterr"
	"github.com/arborist-go/bcrt/scoring"
)

// unlimited is the sentinel value meaning "no budget of this kind" for both
// NumExpansions and TimeLimit. Exactly one of the two must be finite.
const unlimited = -1

// Options configures a single MAP search call.
type Options struct {
	// Hyperparams is the BCRT prior + likelihood configuration.
	Hyperparams scoring.Hyperparams

	// NumExpansions bounds the number of subproblem expansions. Negative
	// means unlimited.
	NumExpansions int

	// TimeLimit bounds wall-clock time. Negative means unlimited.
	TimeLimit time.Duration
}

// DefaultOptions returns Options with commonly used hyperparameters
// (alpha=0.95, beta=0.5, rho=(2.5,2.5)) and an unbounded expansion budget
// gated by a 1-second time limit.
func DefaultOptions() Options {
	return Options{
		Hyperparams:   scoring.Hyperparams{Alpha: 0.95, Beta: 0.5, Rho0: 2.5, Rho1: 2.5},
		NumExpansions: unlimited,
		TimeLimit:     time.Second,
	}
}

// validate enforces the hyperparameter and budget error conditions.
func (o Options) validate() error {
	if err := o.Hyperparams.Validate(); err != nil {
		return err
	}
	expFinite := o.NumExpansions >= 0
	timeFinite := o.TimeLimit >= 0
	if !expFinite && !timeFinite {
		return bcrterr.ErrNoBudget
	}
	if expFinite && timeFinite {
		return bcrterr.ErrBothBudgets
	}
	return nil
}
