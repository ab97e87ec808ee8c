// Package tree — BCRT tree representation, serialization, and scoring.
//
// # Invariants
//
//   - A Tree is well-formed iff every internal node has both children
//     present and leaves carry no feature (WellFormed).
//   - Parse(Serialize(t)) is structurally equal to t for every well-formed t.
//   - LogPosterior(t) == LogPrior(t) + LogLikelihood(t) to within 1e-9; see
//     scoring.Round9 for how callers should stabilize reported values before
//     comparing them.
package tree
