package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Jacobian returns the 2x2 coordinate transformation matrix of cell k,
// mapping the reference element onto the physical cell. For quads it uses
// the corner span, which is exact for the parallelograms produced here.
func (m *Mesh) Jacobian(k int) *mat.Dense {
	v := m.EtoV[k]
	o := m.Vertices[v[0]]
	a := m.Vertices[v[1]]
	var b [3]float64
	switch m.CellTypes[k] {
	case Triangle:
		b = m.Vertices[v[2]]
	case Quad:
		b = m.Vertices[v[3]]
	default:
		return nil
	}
	return mat.NewDense(2, 2, []float64{
		a[0] - o[0], b[0] - o[0],
		a[1] - o[1], b[1] - o[1],
	})
}

// SignedArea returns the signed area of cell k. Positive means
// counterclockwise orientation.
func (m *Mesh) SignedArea(k int) float64 {
	j := m.Jacobian(k)
	if j == nil {
		return 0
	}
	det := mat.Det(j)
	switch m.CellTypes[k] {
	case Triangle:
		return det / 2
	case Quad:
		return det
	}
	return 0
}

// TotalArea sums the signed areas of all cells.
func (m *Mesh) TotalArea() float64 {
	var sum float64
	for k := range m.EtoV {
		sum += m.SignedArea(k)
	}
	return sum
}

// CheckOrientation returns an error naming the first inverted or degenerate
// cell, if any.
func (m *Mesh) CheckOrientation() error {
	for k := range m.EtoV {
		if a := m.SignedArea(k); a <= 0 {
			return fmt.Errorf("cell %d has non-positive area %g", k, a)
		}
	}
	return nil
}
