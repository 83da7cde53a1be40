package search

import (
	"math"

	"github.com/hupe1980/binder/internal/partition"
	"github.com/hupe1980/binder/psm"
)

// Allocate builds an initial partition of q's items in index order.
//
// Item 0 opens cluster 0. Each later item k considers every existing cluster
// plus one new cluster (capped at maxClusters) and joins the candidate with the
// largest affinity to the members placed so far. Ties go to the lowest
// candidate id, so an existing cluster beats opening a new one.
func Allocate(q *psm.ScoreMatrix, maxClusters int, p *partition.Partition) {
	n := q.N()
	p.Reset(n)
	if n == 0 {
		return
	}
	p.Assign(0, 0)

	for k := 1; k < n; k++ {
		row := q.Row(k)
		count := p.Count()
		try := min(count+1, maxClusters)

		best, bestScore := 0, math.Inf(-1)
		for t := 0; t < try; t++ {
			var score float64
			if t < count {
				score = p.Affinity(row, t)
			}
			if score > bestScore {
				best, bestScore = t, score
			}
		}
		p.Assign(k, best)
	}
}
