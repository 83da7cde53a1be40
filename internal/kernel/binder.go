package kernel

import "github.com/hupe1980/binder/psm"

// TileSize is the block edge used by the tiled kernels.
const TileSize = 64

// Evaluate returns the objective of labels using the active kernel.
func Evaluate(s *psm.ScoreMatrix, labels []int) float64 {
	if active == Tiled {
		return EvaluateTiled(s, labels)
	}
	return EvaluateNaive(s, labels)
}

// EvaluateNaive sums S[i][j] over all i<j with labels[i] == labels[j].
// Each row is summed on its own and row sums are added in row order; the
// other kernels keep that order, which makes them bit-identical.
func EvaluateNaive(s *psm.ScoreMatrix, labels []int) float64 {
	n := s.N()
	var sum float64
	for i := 0; i < n; i++ {
		row := s.Row(i)
		li := labels[i]
		var rs float64
		for j := i + 1; j < n; j++ {
			if labels[j] == li {
				rs += row[j]
			}
		}
		sum += rs
	}
	return sum
}

// EvaluateTiled computes the same value as EvaluateNaive over TileSize x
// TileSize blocks of the upper triangle, with an 8-way unrolled inner loop.
// Column tiles are visited in ascending order, so every row sum sees its
// terms in the naive order.
func EvaluateTiled(s *psm.ScoreMatrix, labels []int) float64 {
	n := s.N()
	labels = labels[:n]
	var (
		sum  float64
		rows [TileSize]float64
	)

	for lb := 0; lb < n; lb += TileSize {
		ub := min(lb+TileSize, n)
		acc := rows[:ub-lb]
		clear(acc)

		for cb := lb; cb < n; cb += TileSize {
			ce := min(cb+TileSize, n)
			for i := lb; i < min(ub, ce-1); i++ {
				row := s.Row(i)
				li := labels[i]
				rs := acc[i-lb]

				j := max(i+1, cb)
				for ; j+7 < ce; j += 8 {
					if labels[j] == li {
						rs += row[j]
					}
					if labels[j+1] == li {
						rs += row[j+1]
					}
					if labels[j+2] == li {
						rs += row[j+2]
					}
					if labels[j+3] == li {
						rs += row[j+3]
					}
					if labels[j+4] == li {
						rs += row[j+4]
					}
					if labels[j+5] == li {
						rs += row[j+5]
					}
					if labels[j+6] == li {
						rs += row[j+6]
					}
					if labels[j+7] == li {
						rs += row[j+7]
					}
				}
				for ; j < ce; j++ {
					if labels[j] == li {
						rs += row[j]
					}
				}
				acc[i-lb] = rs
			}
		}

		for _, rs := range acc {
			sum += rs
		}
	}
	return sum
}

// EvaluateBatch writes the objective of every labeling into out, which must
// have len(labelings) elements. Candidates are processed in blocks of
// TileSize against row blocks of TileSize; out[t] is bit-identical to
// EvaluateNaive(s, labelings[t]).
func EvaluateBatch(s *psm.ScoreMatrix, labelings [][]int, out []float64) {
	n := s.N()
	m := len(labelings)
	out = out[:m]
	for t := range out {
		out[t] = 0
	}
	var part [TileSize]float64

	for clb := 0; clb < m; clb += TileSize {
		cub := min(clb+TileSize, m)
		cands := labelings[clb:cub]
		acc := out[clb:cub]
		rs := part[:len(cands)]

		for rlb := 0; rlb < n; rlb += TileSize {
			rub := min(rlb+TileSize, n)
			for i := rlb; i < rub; i++ {
				clear(rs)
				row := s.Row(i)
				j := i + 1
				for ; j+7 < n; j += 8 {
					r := row[j : j+8 : j+8]
					for t, c := range cands {
						li := c[i]
						if c[j] == li {
							rs[t] += r[0]
						}
						if c[j+1] == li {
							rs[t] += r[1]
						}
						if c[j+2] == li {
							rs[t] += r[2]
						}
						if c[j+3] == li {
							rs[t] += r[3]
						}
						if c[j+4] == li {
							rs[t] += r[4]
						}
						if c[j+5] == li {
							rs[t] += r[5]
						}
						if c[j+6] == li {
							rs[t] += r[6]
						}
						if c[j+7] == li {
							rs[t] += r[7]
						}
					}
				}
				for ; j < n; j++ {
					v := row[j]
					for t, c := range cands {
						if c[j] == c[i] {
							rs[t] += v
						}
					}
				}
				for t, v := range rs {
					acc[t] += v
				}
			}
		}
	}
}
