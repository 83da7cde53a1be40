// Package testutil provides deterministic random matrices and partitions for
// tests and benchmarks.
//
// Generators return plain slices rather than psm types so that any package,
// psm included, can use them from its tests.
package testutil
