// Package binder computes a point-estimate partition of N items that
// summarizes a pairwise co-clustering probability matrix (PSM) by minimizing
// the expected Binder loss.
//
// A PSM is typically estimated from a large ensemble of sampled partitions,
// for example the draws of a Bayesian clustering model. Run collapses it into
// one representative clustering.
//
// # Quick Start
//
//	m, err := psm.FromRows(rows) // N×N, symmetric, entries in [0,1]
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := binder.Run(ctx, m,
//	    binder.WithThreshold(0.5),
//	    binder.WithTargetIterations(500),
//	    binder.WithTimeLimit(10*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Labels, res.Loss)
//
// # Algorithm
//
// Every worker repeatedly draws a random item ordering, allocates items
// greedily in that order, refines the partition with single-item
// reassignment passes ("sweetening") and keeps its best partition. Workers
// share the read-only score matrix and never coordinate until the end, when
// their bests are merged once under a mutex. The search is a best-effort
// anytime heuristic: more iterations never hurt, but global optimality is not
// guaranteed and results are not reproducible unless WithSeed is used.
//
// # Loss scale
//
// Internally the search maximizes S = Σ_{i<j, same cluster} (p_ij − c). The
// reported loss is (1−c)·Σ_{i,j} p_ij − 2·S, the Binder loss over ordered
// pairs with weight 1−c for separating and c for joining, plus the constant
// (1−c)·trace(P) carried by the full-matrix sum.
package binder
