// Package mapsearch finds the maximum-a-posteriori binary classification
// tree via best-first branch-and-bound search over an AND/OR graph of
// training-subset subproblems.
//
// Each OR-node is a subproblem (a subset of training rows, represented by
// its dataset.Bitset mask): its two candidate actions are "stop and become
// a leaf" or "split" for each still-valid feature. Each "split on feature
// f" choice is an AND-node whose cost is the sum of the two child
// subproblems' costs plus the -log-prior cost of making that split. Because
// the same subset can be reached by splitting different ancestors on
// different features in a different order, the graph is a DAG: subproblems
// are memoized by a fingerprint of their mask, and a single bound update
// can matter to more than one parent.
//
// The search maintains, for every discovered subproblem, an admissible
// lower bound (0 is always valid, since every prior and likelihood factor is
// a probability, so no subtree's -log-posterior is negative) and upper
// bound (the subtree's leaf cost) on
// its minimum achievable -log-posterior, and repeatedly expands the open
// subproblem with the largest remaining (ub-lb) gap until the root's
// bounds meet (proving optimality) or a configured budget is exhausted
// (BruteForceOptimal exists to check that claim independently in tests).
//
// A subproblem's depth is fixed at first discovery: when a mask is reached
// again later via a different ancestor path, the existing memo entry (and
// its depth-dependent leaf/split costs) is reused rather than recomputed,
// so a mask reached at a different depth keeps the costs of the depth at
// which it was first discovered.
package mapsearch
