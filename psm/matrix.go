package psm

import (
	"fmt"
	"math"
)

// SymmetryTolerance is the largest |P[i][j]-P[j][i]| accepted as symmetric.
const SymmetryTolerance = 1e-9

// Matrix is a validated N×N co-clustering probability matrix.
// Data is stored row-major in a flat slice.
type Matrix struct {
	n    int
	data []float64
}

// New validates data as a row-major n×n matrix and wraps it.
// The slice is copied, so callers may reuse it afterwards.
func New(n int, data []float64) (*Matrix, error) {
	if n <= 0 || len(data) == 0 {
		return nil, ErrEmpty
	}
	if len(data) != n*n {
		return nil, fmt.Errorf("%w: %d entries for n=%d", ErrNotSquare, len(data), n)
	}

	m := &Matrix{n: n, data: make([]float64, len(data))}
	copy(m.data, data)

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// FromRows builds a Matrix from a slice of equally sized rows.
func FromRows(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrEmpty
	}
	data := make([]float64, 0, n*n)
	for i, r := range rows {
		if len(r) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNotSquare, i, len(r), n)
		}
		data = append(data, r...)
	}
	return New(n, data)
}

func (m *Matrix) validate() error {
	n := m.n
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := m.data[i*n+j]
			if math.IsNaN(v) || v < 0 || v > 1 {
				return &EntryError{Row: i, Col: j, Value: v, cause: ErrOutOfRange}
			}
			if j == i {
				continue
			}
			w := m.data[j*n+i]
			if math.IsNaN(w) || w < 0 || w > 1 {
				return &EntryError{Row: j, Col: i, Value: w, cause: ErrOutOfRange}
			}
			if math.Abs(v-w) > SymmetryTolerance {
				return &EntryError{Row: j, Col: i, Value: w, cause: ErrNotSymmetric}
			}
		}
	}
	return nil
}

// N returns the number of items.
func (m *Matrix) N() int { return m.n }

// At returns P[i][j]. Indices are not bounds checked beyond the slice access.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.n+j] }

// Row returns row i. The returned slice must not be modified.
func (m *Matrix) Row(i int) []float64 { return m.data[i*m.n : (i+1)*m.n] }

// Rows returns a copy of the matrix as a slice of rows.
func (m *Matrix) Rows() [][]float64 {
	out := make([][]float64, m.n)
	for i := range out {
		out[i] = append([]float64(nil), m.Row(i)...)
	}
	return out
}

// Sum returns the sum of all N² entries, diagonal and both triangles included.
func (m *Matrix) Sum() float64 {
	var s float64
	for _, v := range m.data {
		s += v
	}
	return s
}

// Shift returns the score matrix P - c.
func (m *Matrix) Shift(c float64) *ScoreMatrix {
	s := &ScoreMatrix{n: m.n, data: make([]float64, len(m.data))}
	for i, v := range m.data {
		s.data[i] = v - c
	}
	return s
}
