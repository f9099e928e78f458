package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectangleTriangle(t *testing.T) {
	m, err := Rectangle([3]float64{0, 0, 0}, [3]float64{1, 1, 0}, 4, 3, Triangle)
	require.NoError(t, err)

	assert.Equal(t, 5*4, m.NumVertices())
	assert.Equal(t, 2*4*3, m.NumCells())
	require.NoError(t, m.CheckOrientation())
	assert.InDelta(t, 1.0, m.TotalArea(), 1e-12)
}

func TestRectangleQuad(t *testing.T) {
	m, err := Rectangle([3]float64{0, 0, 0}, [3]float64{2, 1, 0}, 4, 2, Quad)
	require.NoError(t, err)

	assert.Equal(t, 5*3, m.NumVertices())
	assert.Equal(t, 8, m.NumCells())
	require.NoError(t, m.CheckOrientation())
	assert.InDelta(t, 2.0, m.TotalArea(), 1e-12)
}

func TestRectangleInvalid(t *testing.T) {
	_, err := Rectangle([3]float64{0, 0, 0}, [3]float64{1, 1, 0}, 0, 3, Triangle)
	assert.Error(t, err)

	_, err = Rectangle([3]float64{1, 1, 0}, [3]float64{0, 0, 0}, 2, 2, Triangle)
	assert.Error(t, err)

	_, err = Rectangle([3]float64{0, 0, 0}, [3]float64{1, 1, 0}, 2, 2, Line)
	assert.Error(t, err)
}

func TestUnitSquare(t *testing.T) {
	// the mesh the solver service builds on every request
	m, err := UnitSquare(32)
	require.NoError(t, err)
	assert.Equal(t, 33*33, m.NumVertices())
	assert.Equal(t, 2*32*32, m.NumCells())
	assert.InDelta(t, 1.0, m.TotalArea(), 1e-12)
}

func TestConnectivityTwoTriangles(t *testing.T) {
	m, err := Rectangle([3]float64{0, 0, 0}, [3]float64{1, 1, 0}, 1, 1, Triangle)
	require.NoError(t, err)
	require.Equal(t, 2, m.NumCells())

	EToE, EToF := m.Connectivity()
	// the diagonal is shared: triangle 0 edge 2 (v11-v00) meets
	// triangle 1 edge 0 (v00-v11)
	assert.Equal(t, 1, EToE[0][2])
	assert.Equal(t, 0, EToF[0][2])
	assert.Equal(t, 0, EToE[1][0])
	assert.Equal(t, 2, EToF[1][0])

	// everything else is boundary (self-connected)
	assert.Equal(t, 0, EToE[0][0])
	assert.Equal(t, 0, EToE[0][1])
	assert.Equal(t, 1, EToE[1][1])
	assert.Equal(t, 1, EToE[1][2])
	assert.Equal(t, 4, m.BoundaryEdgeCount())
}

func TestConnectivityGrid(t *testing.T) {
	m, err := Rectangle([3]float64{0, 0, 0}, [3]float64{1, 1, 0}, 4, 4, Triangle)
	require.NoError(t, err)

	EToE, _ := m.Connectivity()
	interior := 0
	for k, nbrs := range EToE {
		for _, nb := range nbrs {
			if nb != k {
				interior++
			}
		}
	}
	// total edges: 3 per triangle; boundary edges: 4 sides * 4 cells
	assert.Equal(t, 3*m.NumCells()-16, interior)
	assert.Equal(t, 16, m.BoundaryEdgeCount())
}
