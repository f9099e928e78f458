// Package partitions decomposes a 2D mesh into element groups that the
// solver service processes concurrently, one worker per partition.
package partitions

import (
	"fmt"

	"github.com/onlinefem/onlinefem/mesh"
)

// Partition is a collection of elements processed together by one worker.
type Partition struct {
	// Unique identifier for this partition
	ID int

	// Element membership
	Elements    []int // Global element indices in this partition
	NumElements int

	// Elements grouped by cell type for type-specific processing in
	// heterogeneous meshes
	TypeGroups []ElementGroup
}

// ElementGroup represents elements of the same cell type within a partition.
type ElementGroup struct {
	CellType   mesh.CellType
	StartIndex int   // Starting position in the partition's element array
	Count      int   // Number of elements of this type
	LocalIDs   []int // Indices within the partition
}

// Layout manages the complete mesh decomposition.
type Layout struct {
	Partitions []Partition

	// Global sizing information
	KpartMax      int // max(NumElements) across all partitions
	TotalElements int
	NumPartitions int

	// EToP maps element k to the partition that owns it
	EToP []int
}

// Stats summarizes one partition for reporting. Halo is the number of
// neighbor values the partition receives per exchange, zero when no
// connector was built.
type Stats struct {
	ID       int     `json:"id"`
	Elements int     `json:"elements"`
	Area     float64 `json:"area"`
	Halo     int     `json:"halo"`
}

// Validate checks that every element is owned by exactly one partition.
func (l *Layout) Validate() error {
	if l.NumPartitions != len(l.Partitions) {
		return fmt.Errorf("layout has %d partitions, NumPartitions says %d",
			len(l.Partitions), l.NumPartitions)
	}
	seen := make([]int, l.TotalElements)
	for _, p := range l.Partitions {
		if p.NumElements != len(p.Elements) {
			return fmt.Errorf("partition %d: NumElements %d but %d elements",
				p.ID, p.NumElements, len(p.Elements))
		}
		for _, e := range p.Elements {
			if e < 0 || e >= l.TotalElements {
				return fmt.Errorf("partition %d: element %d out of range", p.ID, e)
			}
			seen[e]++
			if l.EToP[e] != p.ID {
				return fmt.Errorf("element %d: EToP says %d, owned by %d",
					e, l.EToP[e], p.ID)
			}
		}
	}
	for e, n := range seen {
		if n != 1 {
			return fmt.Errorf("element %d appears in %d partitions", e, n)
		}
	}
	return nil
}

// buildTypeGroups groups a partition's elements by cell type, preserving
// the element order.
func buildTypeGroups(p *Partition, types []mesh.CellType) {
	byType := map[mesh.CellType][]int{}
	var order []mesh.CellType
	for local, e := range p.Elements {
		ct := types[e]
		if _, ok := byType[ct]; !ok {
			order = append(order, ct)
		}
		byType[ct] = append(byType[ct], local)
	}
	start := 0
	for _, ct := range order {
		locals := byType[ct]
		p.TypeGroups = append(p.TypeGroups, ElementGroup{
			CellType:   ct,
			StartIndex: start,
			Count:      len(locals),
			LocalIDs:   locals,
		})
		start += len(locals)
	}
}
