// Package search implements the random-restart local search that finds a
// partition maximizing the internal Binder objective.
//
// Each iteration draws an item ordering, greedily allocates items to clusters
// in that order (Allocate), refines the result with single-item reassignment
// passes (Sweeten) and scores it. Run executes independent workers against a
// shared read-only score matrix and reduces their bests under one mutex.
package search
