package mcmc

import "github.com/arborist-go/bcrt/scoring"

// Options configures a single MCMC search call.
type Options struct {
	Hyperparams   scoring.Hyperparams
	NumIterations int
	Seed          int64
}

// DefaultOptions returns commonly used hyperparameters with a 10,000
// iteration chain and a fixed, reproducible seed.
func DefaultOptions() Options {
	return Options{
		Hyperparams:   scoring.Hyperparams{Alpha: 0.95, Beta: 0.5, Rho0: 2.5, Rho1: 2.5},
		NumIterations: 10000,
		Seed:          42,
	}
}

func (o Options) validate() error {
	return o.Hyperparams.ValidateSymmetric()
}
