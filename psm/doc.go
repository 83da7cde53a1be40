// Package psm holds the pairwise co-clustering probability matrix (PSM) and
// the shifted score matrix derived from it.
//
// A Matrix is validated once at construction (square, symmetric, finite,
// entries in [0,1]) and is immutable afterwards. A ScoreMatrix subtracts the
// Binder threshold from every entry and is shared read-only by all search
// workers; workers never write to it.
package psm
