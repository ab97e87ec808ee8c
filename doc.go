// Package bcrt is the module root: it documents the overall system and
// re-exports nothing. Import the concrete packages instead:
//
//	dataset    — bitset-backed binary training-set view
//	scoring    — log-Beta / leaf log-likelihood / split-prior kernel
//	tree       — tree representation, serialization, fit/predict/score
//	mapsearch  — AND/OR best-first branch-and-bound MAP search
//	mcmc       — Chipman-style GROW/PRUNE/CHANGE/SWAP sampler
//	smc        — island-structured sequential Monte Carlo sampler
//	cart       — Gini-impurity baseline adapter
//	cmd/bcrtctl — CLI: load a dataset file, run a searcher, print the tree
//
// # What & Why
//
// Given N samples with D binary features and binary labels, this module
// finds the maximum-a-posteriori (MAP) binary classification tree under a
// Bayesian CART (BCRT) prior: P(T|X,y) ∝ P(T)·P(y|X,T), where P(T) is a
// CGM-style recursive split prior and P(y|X,T) factors over leaves as a
// Beta-Binomial marginal likelihood.
//
// # Algorithms
//
//	mapsearch.Search  — exact / anytime AND/OR branch-and-bound
//	  Bound:  admissible leaf-cost and split-cost relaxations, memoized per
//	          subset fingerprint (the search graph is a DAG: subproblems
//	          reached via different ancestor paths are shared).
//	  Budget: num_expansions xor time_limit; returns (lb, ub) — equal bounds
//	          certify optimality, lb < ub reports a timeout.
//
//	mcmc.Search  — Chipman GROW/PRUNE/CHANGE/SWAP Metropolis-Hastings
//	  Deterministic given (seed); records the best tree seen across the chain.
//
//	smc.Search  — particle filter over trees with island-structured resampling
//	  Reports an estimate of the marginal likelihood log p(y|X) alongside the
//	  highest-posterior particle.
//
//	cart.Fit  — Gini-impurity greedy baseline, no Bayesian scoring built in;
//	  score its output with tree.LogPosterior for a same-units comparison.
//
// # Determinism
//
// Every searcher is deterministic given its inputs (and seed, where
// applicable): identical (X, y, hyperparameters, limits[, seed]) always
// produces a byte-identical serialized tree.
package bcrt
