// Package mcmc implements a Chipman-style Metropolis-Hastings sampler over
// binary classification trees: GROW, PRUNE, CHANGE, and SWAP proposals, each
// accepted with probability min(1, exp(log_acc)) under a prior-conditioned
// acceptance ratio that preserves detailed balance.
//
// GROW turns a leaf into an internal node on a randomly chosen valid
// feature; PRUNE is its exact reverse, merging a both-children-terminal
// internal node back into a leaf. CHANGE resamples an internal node's split
// feature in place; SWAP exchanges the split features of a parent/child
// internal pair. CHANGE and SWAP compare only the rescored subtree, not the
// whole tree, since everything outside it is unaffected.
//
// The walker tracks the highest-log-posterior tree seen across the whole
// chain and returns that, not the chain's final state, since the chain may
// have wandered to a lower-scoring tree by the time it stops.
package mcmc
