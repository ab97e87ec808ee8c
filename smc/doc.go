// Package smc implements a sequential Monte Carlo sampler that grows
// classification trees one stop/split decision at a time, carrying a
// running importance weight per particle and resampling within independent
// islands whenever effective sample size drops too low.
//
// Each open node's stop/split action is drawn from a configurable proposal
// (the prior itself, an empirical uniform over available actions, or a
// deterministic one-step-optimal greedy choice); the gap between that
// proposal and the true CGM prior is corrected by a sequential importance
// sampling ratio folded into the particle's weight, alongside a one-step
// lookahead likelihood delta (optionally tempered) that anticipates the
// data contribution of the node's prospective children before they exist.
// When the proposal equals the prior this ratio is identically zero and
// the scheme reduces to growing from the prior and weighting by
// likelihood, the textbook SMC-for-trees recipe.
//
// Islands run independently end to end; their final marginal-likelihood
// estimates are combined by logmeanexp, giving both a point estimate of
// log p(y|x) and, implicitly, a sense of its spread across islands.
package smc
