package mesh

import "fmt"

// Rectangle builds a structured mesh of the axis-aligned rectangle spanned
// by p0 (lower-left) and p1 (upper-right), with nx by ny cells. Triangles
// are split along the lower-left to upper-right diagonal and come out
// counterclockwise.
func Rectangle(p0, p1 [3]float64, nx, ny int, ct CellType) (*Mesh, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("cell counts must be positive, got %dx%d", nx, ny)
	}
	if p1[0] <= p0[0] || p1[1] <= p0[1] {
		return nil, fmt.Errorf("degenerate rectangle: [%v %v] to [%v %v]",
			p0[0], p0[1], p1[0], p1[1])
	}
	if ct != Triangle && ct != Quad {
		return nil, fmt.Errorf("unsupported cell type %v", ct)
	}

	dx := (p1[0] - p0[0]) / float64(nx)
	dy := (p1[1] - p0[1]) / float64(ny)

	m := &Mesh{}
	m.Vertices = make([][3]float64, 0, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			m.Vertices = append(m.Vertices, [3]float64{
				p0[0] + float64(i)*dx,
				p0[1] + float64(j)*dy,
				0,
			})
		}
	}

	idx := func(i, j int) int { return j*(nx+1) + i }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v00 := idx(i, j)
			v10 := idx(i+1, j)
			v01 := idx(i, j+1)
			v11 := idx(i+1, j+1)
			if ct == Quad {
				m.EtoV = append(m.EtoV, []int{v00, v10, v11, v01})
				m.CellTypes = append(m.CellTypes, Quad)
				m.CellPhysical = append(m.CellPhysical, 0)
				continue
			}
			m.EtoV = append(m.EtoV, []int{v00, v10, v11}, []int{v00, v11, v01})
			m.CellTypes = append(m.CellTypes, Triangle, Triangle)
			m.CellPhysical = append(m.CellPhysical, 0, 0)
		}
	}
	return m, nil
}

// UnitSquare is the mesh the solver service constructs on every request: the
// unit square with n by n triangle cells.
func UnitSquare(n int) (*Mesh, error) {
	return Rectangle([3]float64{0, 0, 0}, [3]float64{1, 1, 0}, n, n, Triangle)
}
