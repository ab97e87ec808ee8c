// Package dataset — bitset-backed dataset view.
//
// # What & Why
//
// All four searchers (mapsearch, mcmc, smc, cart) operate on subsets of a
// fixed training set identified by sample index. Representing a subset as a
// Bitset and composing subsets via bitwise AND/AND-NOT keeps every
// subset_size / count_with_feature / split / label_counts operation O(N/64)
// instead of O(N), which matters because the MAP search engine evaluates
// these millions of times during a single search.
//
// # Determinism
//
// ValidFeatures always returns features in ascending index order; every
// searcher in this module relies on that order to break ties by picking
// the smallest feature index deterministically.
package dataset
