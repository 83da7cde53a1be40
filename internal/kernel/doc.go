// Package kernel evaluates the internal Binder objective of a labeling: the
// sum of score-matrix entries over all unordered same-cluster pairs i<j.
//
// Two single-labeling paths exist. Naive is the plain double loop. Tiled walks
// the upper triangle in TileSize x TileSize blocks with an 8-way unrolled
// column loop. Every kernel sums each row separately, in ascending column
// order, and adds the row sums in row order, so results are bit-identical.
// EvaluateBatch additionally tiles over candidate labelings so one pass over
// a row serves a whole block of candidates.
//
// The active single-labeling kernel is chosen at init from CPU features and
// can be forced with BINDER_KERNEL=naive|tiled.
package kernel
