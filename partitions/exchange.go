package partitions

import (
	"fmt"

	"github.com/onlinefem/onlinefem/mesh"
)

// EdgeConnector manages pick and place indices for exchanging neighbor
// values across partition boundaries. A partition picks the local element
// values its neighbors need and places received values into a flat edge
// buffer indexed by (local element, face).
type EdgeConnector struct {
	NumPartitions int
	K             int // Total elements

	// Input connectivity
	EToE [][]int // Element face → neighbor element
	EToP []int   // Element → partition mapping

	// Partition mappings
	ElemsPerPartition []int
	GlobalToLocalElem []map[int]int // [partition][globalElem] → localElem
	LocalToGlobalElem [][]int       // [partition][localElem] → globalElem

	// Flat edge-buffer offsets per partition, indexed by local element.
	// Cells have differing face counts, so offsets are cumulative.
	edgeOffsets [][]int

	// Pick/Place indices per partition
	PickIndices  [][]PickBuffer  // [sourcePartition][targetPartition]
	PlaceIndices [][]PlaceBuffer // [targetPartition][sourcePartition]
}

// PickBuffer contains local element indices for gathering values to send.
type PickBuffer struct {
	Indices         []int
	TargetPartition int
}

// PlaceBuffer contains edge-buffer positions for scattering received values.
type PlaceBuffer struct {
	Indices         []int
	SourcePartition int
}

// NewEdgeConnector builds the exchange indices for a partitioned mesh.
func NewEdgeConnector(m *mesh.Mesh, l *Layout) (*EdgeConnector, error) {
	if m == nil || l == nil {
		return nil, fmt.Errorf("edge connector needs a mesh and a layout")
	}
	K := m.NumCells()
	if len(l.EToP) != K {
		return nil, fmt.Errorf("EToP length %d does not match K=%d", len(l.EToP), K)
	}

	eToE, _ := m.Connectivity()

	ec := &EdgeConnector{
		NumPartitions: l.NumPartitions,
		K:             K,
		EToE:          eToE,
		EToP:          l.EToP,
	}
	ec.buildPartitionMappings()
	ec.initializeBuffers()
	ec.buildIndices()
	return ec, nil
}

// buildPartitionMappings creates bidirectional mappings between global and
// local element numbering, plus the per-partition edge-buffer offsets.
func (ec *EdgeConnector) buildPartitionMappings() {
	ec.ElemsPerPartition = make([]int, ec.NumPartitions)
	for _, p := range ec.EToP {
		ec.ElemsPerPartition[p]++
	}

	ec.GlobalToLocalElem = make([]map[int]int, ec.NumPartitions)
	ec.LocalToGlobalElem = make([][]int, ec.NumPartitions)
	ec.edgeOffsets = make([][]int, ec.NumPartitions)
	for p := 0; p < ec.NumPartitions; p++ {
		ec.GlobalToLocalElem[p] = make(map[int]int)
		ec.LocalToGlobalElem[p] = make([]int, 0, ec.ElemsPerPartition[p])
	}

	for globalElem := 0; globalElem < ec.K; globalElem++ {
		partition := ec.EToP[globalElem]
		localElem := len(ec.LocalToGlobalElem[partition])
		ec.GlobalToLocalElem[partition][globalElem] = localElem
		ec.LocalToGlobalElem[partition] = append(ec.LocalToGlobalElem[partition], globalElem)
	}

	for p := 0; p < ec.NumPartitions; p++ {
		offsets := make([]int, len(ec.LocalToGlobalElem[p]))
		pos := 0
		for local, global := range ec.LocalToGlobalElem[p] {
			offsets[local] = pos
			pos += len(ec.EToE[global])
		}
		ec.edgeOffsets[p] = offsets
	}
}

func (ec *EdgeConnector) initializeBuffers() {
	ec.PickIndices = make([][]PickBuffer, ec.NumPartitions)
	ec.PlaceIndices = make([][]PlaceBuffer, ec.NumPartitions)

	for p := 0; p < ec.NumPartitions; p++ {
		ec.PickIndices[p] = make([]PickBuffer, ec.NumPartitions)
		ec.PlaceIndices[p] = make([]PlaceBuffer, ec.NumPartitions)
		for q := 0; q < ec.NumPartitions; q++ {
			ec.PickIndices[p][q] = PickBuffer{TargetPartition: q}
			ec.PlaceIndices[p][q] = PlaceBuffer{SourcePartition: q}
		}
	}
}

// buildIndices walks every element face. A face whose neighbor lives in
// another partition turns into one pick on the owning partition and one
// place on the receiving one. Boundary faces connect to themselves and
// are skipped.
func (ec *EdgeConnector) buildIndices() {
	for p := 0; p < ec.NumPartitions; p++ {
		for localElem, globalElem := range ec.LocalToGlobalElem[p] {
			for face, neighbor := range ec.EToE[globalElem] {
				if neighbor == globalElem {
					continue // boundary face
				}
				sourcePartition := ec.EToP[neighbor]
				if sourcePartition == p {
					continue // interior to this partition
				}

				localSource := ec.GlobalToLocalElem[sourcePartition][neighbor]
				bufferPos := ec.edgeOffsets[p][localElem] + face

				ec.PickIndices[sourcePartition][p].Indices = append(
					ec.PickIndices[sourcePartition][p].Indices, localSource)
				ec.PlaceIndices[p][sourcePartition].Indices = append(
					ec.PlaceIndices[p][sourcePartition].Indices, bufferPos)
			}
		}
	}
}

// Pick returns the local element indices source sends to target.
func (ec *EdgeConnector) Pick(source, target int) []int {
	if source < 0 || source >= ec.NumPartitions || target < 0 || target >= ec.NumPartitions {
		return nil
	}
	return ec.PickIndices[source][target].Indices
}

// Place returns the edge-buffer positions target fills from source.
func (ec *EdgeConnector) Place(target, source int) []int {
	if target < 0 || target >= ec.NumPartitions || source < 0 || source >= ec.NumPartitions {
		return nil
	}
	return ec.PlaceIndices[target][source].Indices
}

// HaloSize is the number of values partition p receives per exchange.
func (ec *EdgeConnector) HaloSize(p int) int {
	if p < 0 || p >= ec.NumPartitions {
		return 0
	}
	n := 0
	for q := 0; q < ec.NumPartitions; q++ {
		n += len(ec.PlaceIndices[p][q].Indices)
	}
	return n
}

// Verify checks index validity and conservation properties.
func (ec *EdgeConnector) Verify() error {
	for p := 0; p < ec.NumPartitions; p++ {
		maxLocal := ec.ElemsPerPartition[p]
		for q := 0; q < ec.NumPartitions; q++ {
			for _, idx := range ec.PickIndices[p][q].Indices {
				if idx < 0 || idx >= maxLocal {
					return fmt.Errorf("invalid pick index %d for partition %d (max %d)",
						idx, p, maxLocal-1)
				}
			}
		}
	}

	for p := 0; p < ec.NumPartitions; p++ {
		for q := 0; q < ec.NumPartitions; q++ {
			pickLen := len(ec.PickIndices[p][q].Indices)
			placeLen := len(ec.PlaceIndices[q][p].Indices)
			if pickLen != placeLen {
				return fmt.Errorf("length mismatch: pick[%d][%d]=%d, place[%d][%d]=%d",
					p, q, pickLen, q, p, placeLen)
			}
		}
	}

	// Picks and places pair up one per cross-partition face, and faces
	// are counted once from each side, so the totals must be symmetric.
	totalPicks := 0
	totalPlaces := 0
	for p := 0; p < ec.NumPartitions; p++ {
		for q := 0; q < ec.NumPartitions; q++ {
			totalPicks += len(ec.PickIndices[p][q].Indices)
			totalPlaces += len(ec.PlaceIndices[p][q].Indices)
		}
	}
	if totalPicks != totalPlaces {
		return fmt.Errorf("conservation error: total picks %d != total places %d",
			totalPicks, totalPlaces)
	}
	return nil
}
