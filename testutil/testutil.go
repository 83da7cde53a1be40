package testutil

import (
	"math/rand/v2"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Labels returns n labels drawn uniformly from [0,k).
func (r *RNG) Labels(n, k int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	labels := make([]int, n)
	for i := range labels {
		labels[i] = r.rand.IntN(k)
	}
	return labels
}

// PlantedPSM returns an n×n similarity matrix with k planted blocks: items i
// and j share a block iff i%k == j%k. Within-block entries lie in
// [0.6, 0.95), all others in [0.05, 0.25), and the diagonal is 1.
func (r *RNG) PlantedPSM(n, k int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, n*n)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = data[i*n : (i+1)*n]
		rows[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := 0.05 + 0.2*r.rand.Float64()
			if i%k == j%k {
				v = 0.6 + 0.35*r.rand.Float64()
			}
			rows[i][j], rows[j][i] = v, v
		}
	}
	return rows
}

// SymmetricScores returns a flat row-major symmetric n×n matrix with
// entries in [-0.5, 0.5), the diagonal included.
func (r *RNG) SymmetricScores(n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := r.rand.Float64() - 0.5
			data[i*n+j] = v
			data[j*n+i] = v
		}
	}
	return data
}
