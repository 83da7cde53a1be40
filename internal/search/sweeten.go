package search

import (
	"github.com/hupe1980/binder/internal/partition"
	"github.com/hupe1980/binder/psm"
)

// SweetenStats summarizes one Sweeten call.
type SweetenStats struct {
	Passes    int
	Moves     int
	Converged bool // the last pass made no move
}

// Sweeten refines p by single-item reassignment passes over q.
//
// In each pass every item k, in index order, may move to another occupied
// cluster or to a new one (capped at maxClusters). The item's own cluster
// scores zero and any other candidate scores its raw affinity to k, so k moves
// only when some other cluster's affinity is strictly positive. This is an
// approximation of the true gain, which would subtract k's affinity to the
// rest of its own cluster; exact enables that true gain instead.
//
// Winning scores are summed per pass; a pass summing to zero stops the loop.
// At most maxPasses passes run.
func Sweeten(q *psm.ScoreMatrix, maxClusters, maxPasses int, exact bool, p *partition.Partition) SweetenStats {
	n := q.N()
	var st SweetenStats

	for st.Passes < maxPasses {
		st.Passes++
		var delta float64

		for k := 0; k < n; k++ {
			row := q.Row(k)
			cur := p.Label(k)
			count := p.Count()
			try := min(count+1, maxClusters)

			var baseline float64
			if exact {
				baseline = p.Affinity(row, cur) - row[k]
			}

			best, bestScore := cur, 0.0
			for t := 0; t < try; t++ {
				if t == cur {
					continue
				}
				var score float64
				if t < count {
					score = p.Affinity(row, t)
				}
				score -= baseline
				if score > bestScore {
					best, bestScore = t, score
				}
			}

			if best != cur {
				p.Move(k, best)
				delta += bestScore
				st.Moves++
			}
		}

		if delta == 0 {
			st.Converged = true
			break
		}
	}
	return st
}
