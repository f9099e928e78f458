package partitions

import (
	"fmt"

	"github.com/onlinefem/onlinefem/mesh"
)

// Strategy defines how elements are assigned to partitions.
type Strategy int

const (
	Block      Strategy = iota // consecutive element ranges
	RoundRobin                 // distribute cyclically
	Balanced                   // greedy fill toward equal counts
)

func (s Strategy) String() string {
	switch s {
	case Block:
		return "block"
	case RoundRobin:
		return "round-robin"
	case Balanced:
		return "balanced"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Builder constructs a partition layout from a mesh.
type Builder struct {
	Mesh          *mesh.Mesh
	NumPartitions int
	Strategy      Strategy
}

// Build assigns every cell to a partition and returns the layout.
func (b *Builder) Build() (*Layout, error) {
	if b.Mesh == nil {
		return nil, fmt.Errorf("builder has no mesh")
	}
	K := b.Mesh.NumCells()
	if K == 0 {
		return nil, fmt.Errorf("mesh has no cells to partition")
	}
	n := b.NumPartitions
	if n < 1 {
		return nil, fmt.Errorf("need at least one partition, got %d", n)
	}
	if n > K {
		n = K // never hand a worker an empty partition
	}

	eToP := make([]int, K)
	switch b.Strategy {
	case Block:
		// ceil(K/n)-sized consecutive runs, last one short
		size := (K + n - 1) / n
		for e := 0; e < K; e++ {
			eToP[e] = e / size
		}
	case RoundRobin:
		for e := 0; e < K; e++ {
			eToP[e] = e % n
		}
	case Balanced:
		// greedy: next element to the currently smallest partition
		counts := make([]int, n)
		for e := 0; e < K; e++ {
			best := 0
			for p := 1; p < n; p++ {
				if counts[p] < counts[best] {
					best = p
				}
			}
			eToP[e] = best
			counts[best]++
		}
	default:
		return nil, fmt.Errorf("unknown partition strategy %v", b.Strategy)
	}

	// Block may produce fewer partitions than requested when K/n rounds up
	used := 0
	for _, p := range eToP {
		if p+1 > used {
			used = p + 1
		}
	}

	layout := &Layout{
		Partitions:    make([]Partition, used),
		TotalElements: K,
		NumPartitions: used,
		EToP:          eToP,
	}
	for i := range layout.Partitions {
		layout.Partitions[i].ID = i
	}
	for e, p := range eToP {
		layout.Partitions[p].Elements = append(layout.Partitions[p].Elements, e)
	}
	for i := range layout.Partitions {
		p := &layout.Partitions[i]
		p.NumElements = len(p.Elements)
		if p.NumElements > layout.KpartMax {
			layout.KpartMax = p.NumElements
		}
		buildTypeGroups(p, b.Mesh.CellTypes)
	}
	return layout, nil
}

// PartitionStats computes per-partition element counts and areas.
func PartitionStats(m *mesh.Mesh, l *Layout) []Stats {
	stats := make([]Stats, l.NumPartitions)
	for i, p := range l.Partitions {
		s := Stats{ID: p.ID, Elements: p.NumElements}
		for _, e := range p.Elements {
			s.Area += m.SignedArea(e)
		}
		stats[i] = s
	}
	return stats
}
