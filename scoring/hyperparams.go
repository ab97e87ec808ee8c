package scoring

import "github.com/arborist-go/bcrt/bcrterr"

// Hyperparams bundles the fixed parameters of the BCRT prior + likelihood:
// alpha/beta control the CGM split prior, rho0/rho1 are the symmetric
// Beta(rho0,rho1) prior on each leaf's class probability.
type Hyperparams struct {
	Alpha float64
	Beta  float64
	Rho0  float64
	Rho1  float64
}

// Validate enforces alpha∈(0,1], beta>=0, rho0>0, rho1>0 via pure,
// side-effect-free checks.
func (h Hyperparams) Validate() error {
	if h.Alpha <= 0 || h.Alpha > 1 {
		return bcrterr.ErrInvalidAlpha
	}
	if h.Beta < 0 {
		return bcrterr.ErrInvalidBeta
	}
	if h.Rho0 <= 0 || h.Rho1 <= 0 {
		return bcrterr.ErrInvalidRho
	}
	return nil
}

// ValidateSymmetric additionally enforces rho0 == rho1, required by the
// MCMC and SMC samplers.
func (h Hyperparams) ValidateSymmetric() error {
	if err := h.Validate(); err != nil {
		return err
	}
	if h.Rho0 != h.Rho1 {
		return bcrterr.ErrRhoAsymmetric
	}
	return nil
}
