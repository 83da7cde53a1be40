// Package perm draws uniformly random item orderings for the search workers.
//
// A Generator is owned by exactly one worker and is not safe for concurrent
// use; every worker creates its own, so no random state is shared.
package perm

import (
	"encoding/binary"
	"math/rand/v2"
)

// Generator produces permutations of 0..n-1.
type Generator struct {
	r *rand.Rand
}

// New returns a generator seeded from runtime entropy.
func New() *Generator {
	var seed [32]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(seed[i*8:], rand.Uint64())
	}
	return &Generator{r: rand.New(rand.NewChaCha8(seed))}
}

// NewSeeded returns a deterministic generator. Workers sharing a seed use
// distinct streams.
func NewSeeded(seed, stream uint64) *Generator {
	return &Generator{r: rand.New(rand.NewPCG(seed, stream))}
}

// Perm writes a fresh uniformly random permutation of 0..len(dst)-1 into dst
// (Fisher-Yates over the identity) and returns it.
func (g *Generator) Perm(dst []int) []int {
	for i := range dst {
		dst[i] = i
	}
	g.r.Shuffle(len(dst), func(i, j int) {
		dst[i], dst[j] = dst[j], dst[i]
	})
	return dst
}
