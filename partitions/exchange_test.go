package partitions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlinefem/onlinefem/mesh"
)

func TestEdgeConnectorTwoTriangles(t *testing.T) {
	m, err := mesh.Rectangle([3]float64{0, 0, 0}, [3]float64{1, 1, 0}, 1, 1, mesh.Triangle)
	require.NoError(t, err)
	require.Equal(t, 2, m.NumCells())

	b := Builder{Mesh: m, NumPartitions: 2, Strategy: RoundRobin}
	layout, err := b.Build()
	require.NoError(t, err)

	ec, err := NewEdgeConnector(m, layout)
	require.NoError(t, err)
	require.NoError(t, ec.Verify())

	// one shared diagonal, one value each way
	assert.Equal(t, []int{0}, ec.Pick(0, 1))
	assert.Equal(t, []int{0}, ec.Pick(1, 0))
	assert.Equal(t, []int{2}, ec.Place(0, 1)) // cell 0 sees the diagonal on face 2
	assert.Equal(t, []int{0}, ec.Place(1, 0)) // cell 1 on face 0
	assert.Equal(t, 1, ec.HaloSize(0))
	assert.Equal(t, 1, ec.HaloSize(1))
}

func TestEdgeConnectorGrid(t *testing.T) {
	m, err := mesh.Rectangle([3]float64{0, 0, 0}, [3]float64{1, 1, 0}, 4, 4, mesh.Triangle)
	require.NoError(t, err)

	b := Builder{Mesh: m, NumPartitions: 4, Strategy: Block}
	layout, err := b.Build()
	require.NoError(t, err)

	ec, err := NewEdgeConnector(m, layout)
	require.NoError(t, err)
	require.NoError(t, ec.Verify())

	for p := 0; p < ec.NumPartitions; p++ {
		assert.Positive(t, ec.HaloSize(p), "partition %d", p)
		for q := 0; q < ec.NumPartitions; q++ {
			assert.Len(t, ec.Place(p, q), len(ec.Pick(q, p)))
		}
	}
}

func TestEdgeConnectorSinglePartition(t *testing.T) {
	m, err := mesh.UnitSquare(3)
	require.NoError(t, err)

	b := Builder{Mesh: m, NumPartitions: 1, Strategy: Block}
	layout, err := b.Build()
	require.NoError(t, err)

	ec, err := NewEdgeConnector(m, layout)
	require.NoError(t, err)
	require.NoError(t, ec.Verify())
	assert.Zero(t, ec.HaloSize(0))
}

func TestEdgeConnectorBadInputs(t *testing.T) {
	_, err := NewEdgeConnector(nil, nil)
	assert.Error(t, err)

	m, err := mesh.UnitSquare(2)
	require.NoError(t, err)
	_, err = NewEdgeConnector(m, &Layout{EToP: []int{0}})
	assert.ErrorContains(t, err, "EToP length")
}
