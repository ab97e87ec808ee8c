// Package scoring implements the Bayesian scoring kernel: the leaf
// log-likelihood under a Beta-Binomial marginal, the CGM-style split prior,
// and the composition of both into a tree log-posterior.
//
// All arithmetic stays in log-space; math.Lgamma is used in place of
// math.Gamma throughout, since Gamma values overflow float64 for the counts
// this module sees even on small datasets.
package scoring

import "math"

// roundScale stabilizes reported log-posterior values to 1e-9 precision so
// that equality checks against a small tolerance are not defeated by
// cross-platform floating-point noise.
const roundScale = 1e9

// Round9 rounds x to 1e-9 absolute precision.
func Round9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}

// logBetaFn returns log B(a, b) = lgamma(a) + lgamma(b) - lgamma(a+b), the
// log of the Beta function, computed via the numerically stable log-gamma
// primitive rather than forming Gamma(a)*Gamma(b)/Gamma(a+b) directly.
func logBetaFn(a, b float64) float64 {
	la, _ := math.Lgamma(a)
	lb, _ := math.Lgamma(b)
	lab, _ := math.Lgamma(a + b)
	return la + lb - lab
}

// LeafLogLikelihood computes L(n0, n1), the Beta-Binomial marginal
// log-likelihood of a leaf holding n0 negative and n1 positive samples
// under a Beta(rho0, rho1) prior on the leaf's class probability:
//
//	L(n0,n1) = logGamma(n0+rho0) + logGamma(n1+rho1) - logGamma(n0+n1+rho0+rho1)
//	           - [logGamma(rho0) + logGamma(rho1) - logGamma(rho0+rho1)]
//
// Expressed via logBetaFn this is logBetaFn(n0+rho0, n1+rho1) - logBetaFn(rho0, rho1).
func LeafLogLikelihood(n0, n1 int, h Hyperparams) float64 {
	return logBetaFn(float64(n0)+h.Rho0, float64(n1)+h.Rho1) - logBetaFn(h.Rho0, h.Rho1)
}

// LogProbSplit returns the log-probability that a node at depth d splits
// under the CGM prior: log(alpha) - beta*log(1+d).
func LogProbSplit(depth int, h Hyperparams) float64 {
	return math.Log(h.Alpha) - h.Beta*math.Log(1+float64(depth))
}

// LogProbStop returns log(1 - p_split(d)), the log-probability that a node
// at depth d stops (becomes a leaf), computed as log1p(-exp(logProbSplit))
// for numerical stability near p_split close to 0.
func LogProbStop(depth int, h Hyperparams) float64 {
	lp := LogProbSplit(depth, h)
	return math.Log1p(-math.Exp(lp))
}

// LogChooseFeature returns the log-probability of picking one particular
// valid feature uniformly among numValid candidates: -log(numValid). Callers
// must never call this with numValid == 0: with no valid feature, the node
// is forced to be a leaf and this term does not apply.
func LogChooseFeature(numValid int) float64 {
	return -math.Log(float64(numValid))
}
