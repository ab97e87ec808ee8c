// Package cart implements a best-first, Gini-impurity-splitting binary
// classification tree builder: a comparison baseline against the BCRT
// searchers in this module, not itself a BCRT sampler. It makes no use of
// the CGM prior; it emits the same tree.Tree representation the other
// searchers emit, so tree.LogPosterior can score a CART tree against the
// BCRT prior/likelihood for apples-to-apples comparison.
package cart
