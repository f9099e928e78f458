// Package mesh generates and stores simplicial meshes for the geometry
// templates: structured triangle/quad grids over rectangle assemblies, with
// boundary tagging, periodic node links and an MSH 2.2 codec.
package mesh

import "fmt"

// CellType identifies the shape of an element.
type CellType uint8

const (
	Line     CellType = iota // 2-node line segment
	Triangle                 // 3-node triangle
	Quad                     // 4-node quadrilateral
)

// NumVerts returns the number of vertices for the cell type.
func (c CellType) NumVerts() int {
	switch c {
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad:
		return 4
	}
	return 0
}

func (c CellType) String() string {
	switch c {
	case Line:
		return "line"
	case Triangle:
		return "triangle"
	case Quad:
		return "quad"
	}
	return fmt.Sprintf("CellType(%d)", uint8(c))
}

// PhysicalName labels a physical group tag of a given dimension.
type PhysicalName struct {
	Dim  int
	Tag  int
	Name string
}

// BoundaryEdge is a 1D boundary element with its physical tag (0 when the
// underlying curve is untagged).
type BoundaryEdge struct {
	V        [2]int
	Physical int
}

// PeriodicLink records the node correspondence between a slave curve and a
// master curve. Pairs hold (slave, master) vertex indices.
type PeriodicLink struct {
	SlaveTag  int
	MasterTag int
	Pairs     [][2]int
}

// Mesh is an unstructured 2D mesh. Vertices are global; EtoV holds the
// vertex indices of each cell, CellTypes its shape and CellPhysical the
// physical tag of the surface it discretizes (0 when untagged).
type Mesh struct {
	Vertices     [][3]float64
	EtoV         [][]int
	CellTypes    []CellType
	CellPhysical []int

	Boundary  []BoundaryEdge
	Physicals []PhysicalName
	Periodic  []PeriodicLink
}

// NumVertices returns the global vertex count.
func (m *Mesh) NumVertices() int { return len(m.Vertices) }

// NumCells returns the number of 2D cells.
func (m *Mesh) NumCells() int { return len(m.EtoV) }

// PhysicalName returns the name registered for a (dim, tag) pair, or "".
func (m *Mesh) PhysicalName(dim, tag int) string {
	for _, pn := range m.Physicals {
		if pn.Dim == dim && pn.Tag == tag {
			return pn.Name
		}
	}
	return ""
}

// cellEdges lists the local vertex pairs forming each edge of a cell type,
// in counterclockwise order.
func cellEdges(ct CellType) [][2]int {
	switch ct {
	case Triangle:
		return [][2]int{{0, 1}, {1, 2}, {2, 0}}
	case Quad:
		return [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	}
	return nil
}

// Connectivity builds element-to-element and element-to-face maps from
// canonical edge signatures. Boundary edges connect an element to itself.
func (m *Mesh) Connectivity() (EToE, EToF [][]int) {
	K := m.NumCells()
	EToE = make([][]int, K)
	EToF = make([][]int, K)

	type half struct {
		elem, face int
	}
	edgeMap := make(map[[2]int]half, 3*K)

	for k := 0; k < K; k++ {
		edges := cellEdges(m.CellTypes[k])
		EToE[k] = make([]int, len(edges))
		EToF[k] = make([]int, len(edges))
		for f := range edges {
			EToE[k][f] = k
			EToF[k][f] = f
		}
		for f, e := range edges {
			a, b := m.EtoV[k][e[0]], m.EtoV[k][e[1]]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if other, ok := edgeMap[key]; ok {
				EToE[k][f] = other.elem
				EToF[k][f] = other.face
				EToE[other.elem][other.face] = k
				EToF[other.elem][other.face] = f
				delete(edgeMap, key)
				continue
			}
			edgeMap[key] = half{elem: k, face: f}
		}
	}
	return EToE, EToF
}

// BoundaryEdgeCount returns the number of cell edges not shared with a
// neighbor.
func (m *Mesh) BoundaryEdgeCount() int {
	EToE, _ := m.Connectivity()
	n := 0
	for k, nbrs := range EToE {
		for _, nb := range nbrs {
			if nb == k {
				n++
			}
		}
	}
	return n
}
