package psm

// ScoreMatrix is the shifted matrix S[i][j] = P[i][j] - c.
//
// It is immutable after construction and safe for unsynchronized concurrent
// reads. The diagonal is carried along but carries no meaning for the search.
type ScoreMatrix struct {
	n    int
	data []float64
}

// NewScoreMatrix wraps an already shifted row-major n×n slice without copying.
// The caller gives up ownership of data.
func NewScoreMatrix(n int, data []float64) *ScoreMatrix {
	return &ScoreMatrix{n: n, data: data}
}

// N returns the number of items.
func (s *ScoreMatrix) N() int { return s.n }

// At returns S[i][j].
func (s *ScoreMatrix) At(i, j int) float64 { return s.data[i*s.n+j] }

// Row returns row i. The returned slice must not be modified.
func (s *ScoreMatrix) Row(i int) []float64 { return s.data[i*s.n : (i+1)*s.n] }

// Permute writes the permuted view Q[a][b] = S[order[a]][order[b]] into dst
// and returns it as a ScoreMatrix. dst is grown when its capacity is short.
// order must be a permutation of 0..N-1.
func (s *ScoreMatrix) Permute(order []int, dst []float64) *ScoreMatrix {
	n := s.n
	if cap(dst) < n*n {
		dst = make([]float64, n*n)
	}
	dst = dst[:n*n]

	for a, oa := range order {
		src := s.data[oa*n : (oa+1)*n]
		out := dst[a*n : (a+1)*n]
		for b, ob := range order {
			out[b] = src[ob]
		}
	}
	return &ScoreMatrix{n: n, data: dst}
}

// Data exposes the backing slice; callers must treat it as read-only.
func (s *ScoreMatrix) Data() []float64 { return s.data }
