package partition

import "github.com/bits-and-blooms/bitset"

// Canonical relabels a dense labeling (ids in [0, len(labels))) to 1..k in
// order of first appearance when scanning items by index. It returns the new
// labels and k.
func Canonical(labels []int) ([]int, int) {
	out := make([]int, len(labels))
	seen := bitset.New(uint(len(labels)))
	mapping := make([]int, len(labels))

	next := 0
	for i, l := range labels {
		if !seen.Test(uint(l)) {
			seen.Set(uint(l))
			next++
			mapping[l] = next
		}
		out[i] = mapping[l]
	}
	return out, next
}

// CanonicalAny is Canonical for arbitrary integer labels (negative or sparse
// ids are allowed). It is used for caller-supplied partitions.
func CanonicalAny(labels []int) ([]int, int) {
	out := make([]int, len(labels))
	mapping := make(map[int]int)
	for i, l := range labels {
		c, ok := mapping[l]
		if !ok {
			c = len(mapping) + 1
			mapping[l] = c
		}
		out[i] = c
	}
	return out, len(mapping)
}
