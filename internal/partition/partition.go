package partition

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Unassigned marks an item that has not been placed yet.
const Unassigned = -1

// Partition assigns items 0..n-1 to dense cluster ids.
// It is owned by a single worker and not safe for concurrent use.
type Partition struct {
	labels  []int
	members []*roaring.Bitmap
	spare   []*roaring.Bitmap // emptied bitmaps kept for reuse
}

// New returns a partition of n unassigned items.
func New(n int) *Partition {
	p := &Partition{}
	p.Reset(n)
	return p
}

// Reset unassigns every item and resizes to n items, keeping allocated sets.
func (p *Partition) Reset(n int) {
	if cap(p.labels) < n {
		p.labels = make([]int, n)
	}
	p.labels = p.labels[:n]
	for i := range p.labels {
		p.labels[i] = Unassigned
	}
	for _, m := range p.members {
		m.Clear()
		p.spare = append(p.spare, m)
	}
	p.members = p.members[:0]
}

// Len returns the number of items.
func (p *Partition) Len() int { return len(p.labels) }

// Count returns the number of occupied clusters.
func (p *Partition) Count() int { return len(p.members) }

// Label returns the cluster of item i, or Unassigned.
func (p *Partition) Label(i int) int { return p.labels[i] }

// Labels returns the label vector. The slice must not be modified.
func (p *Partition) Labels() []int { return p.labels }

// Size returns the number of members of cluster c.
func (p *Partition) Size(c int) int { return int(p.members[c].GetCardinality()) }

// Members returns the member set of cluster c. The set must not be modified.
func (p *Partition) Members(c int) *roaring.Bitmap { return p.members[c] }

// Assign places an unassigned item into cluster c. c == Count() opens a new
// cluster.
func (p *Partition) Assign(item, c int) {
	if c == len(p.members) {
		p.open()
	}
	p.labels[item] = c
	p.members[c].Add(uint32(item))
}

// Move reassigns an assigned item to cluster c (c == Count() opens a new
// cluster). If the source cluster becomes empty it is compacted away and
// Move reports true.
func (p *Partition) Move(item, c int) bool {
	from := p.labels[item]
	if from == c {
		return false
	}
	if c == len(p.members) {
		p.open()
	}
	p.members[from].Remove(uint32(item))
	p.members[c].Add(uint32(item))
	p.labels[item] = c

	if !p.members[from].IsEmpty() {
		return false
	}
	p.compact(from)
	return true
}

// Affinity sums row over the members of cluster c in ascending item order.
func (p *Partition) Affinity(row []float64, c int) float64 {
	var s float64
	p.members[c].Iterate(func(x uint32) bool {
		s += row[x]
		return true
	})
	return s
}

// SetLabels replaces the partition with the given dense labeling.
// Labels must lie in [0, k) with every id in use.
func (p *Partition) SetLabels(labels []int) {
	p.Reset(len(labels))
	k := 0
	for _, l := range labels {
		if l+1 > k {
			k = l + 1
		}
	}
	for len(p.members) < k {
		p.open()
	}
	for i, l := range labels {
		p.labels[i] = l
		p.members[l].Add(uint32(i))
	}
}

func (p *Partition) open() {
	var m *roaring.Bitmap
	if n := len(p.spare); n > 0 {
		m = p.spare[n-1]
		p.spare = p.spare[:n-1]
	} else {
		m = roaring.New()
	}
	p.members = append(p.members, m)
}

// compact removes the empty cluster hole by moving the last cluster into it.
func (p *Partition) compact(hole int) {
	last := len(p.members) - 1
	empty := p.members[hole]
	if hole != last {
		p.members[hole] = p.members[last]
		p.members[hole].Iterate(func(x uint32) bool {
			p.labels[x] = hole
			return true
		})
	}
	p.members = p.members[:last]
	p.spare = append(p.spare, empty)
}
