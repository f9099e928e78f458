package partitions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlinefem/onlinefem/mesh"
)

func testMesh(t *testing.T, nx, ny int) *mesh.Mesh {
	t.Helper()
	m, err := mesh.Rectangle([3]float64{0, 0, 0}, [3]float64{1, 1, 0}, nx, ny, mesh.Triangle)
	require.NoError(t, err)
	return m
}

func TestBlockPartition(t *testing.T) {
	m := testMesh(t, 4, 4) // 32 triangles
	l, err := (&Builder{Mesh: m, NumPartitions: 4, Strategy: Block}).Build()
	require.NoError(t, err)
	require.NoError(t, l.Validate())

	assert.Equal(t, 4, l.NumPartitions)
	assert.Equal(t, 32, l.TotalElements)
	assert.Equal(t, 8, l.KpartMax)
	for _, p := range l.Partitions {
		assert.Equal(t, 8, p.NumElements)
	}
	// block assignment keeps runs consecutive
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, l.Partitions[0].Elements)
}

func TestRoundRobinPartition(t *testing.T) {
	m := testMesh(t, 3, 2) // 12 triangles
	l, err := (&Builder{Mesh: m, NumPartitions: 5, Strategy: RoundRobin}).Build()
	require.NoError(t, err)
	require.NoError(t, l.Validate())

	assert.Equal(t, 5, l.NumPartitions)
	assert.Equal(t, []int{0, 5, 10}, l.Partitions[0].Elements)
	assert.Equal(t, 3, l.KpartMax)
}

func TestBalancedPartition(t *testing.T) {
	m := testMesh(t, 5, 1) // 10 triangles
	l, err := (&Builder{Mesh: m, NumPartitions: 3, Strategy: Balanced}).Build()
	require.NoError(t, err)
	require.NoError(t, l.Validate())

	for _, p := range l.Partitions {
		assert.GreaterOrEqual(t, p.NumElements, 3)
		assert.LessOrEqual(t, p.NumElements, 4)
	}
}

func TestMorePartitionsThanElements(t *testing.T) {
	m := testMesh(t, 1, 1) // 2 triangles
	l, err := (&Builder{Mesh: m, NumPartitions: 8, Strategy: Block}).Build()
	require.NoError(t, err)
	require.NoError(t, l.Validate())

	assert.Equal(t, 2, l.NumPartitions)
	for _, p := range l.Partitions {
		assert.Equal(t, 1, p.NumElements)
	}
}

func TestBuilderErrors(t *testing.T) {
	_, err := (&Builder{NumPartitions: 2}).Build()
	assert.Error(t, err)

	m := testMesh(t, 1, 1)
	_, err = (&Builder{Mesh: m, NumPartitions: 0}).Build()
	assert.Error(t, err)

	_, err = (&Builder{Mesh: m, NumPartitions: 1, Strategy: Strategy(42)}).Build()
	assert.Error(t, err)
}

func TestTypeGroups(t *testing.T) {
	m := testMesh(t, 2, 2)
	l, err := (&Builder{Mesh: m, NumPartitions: 2, Strategy: Block}).Build()
	require.NoError(t, err)

	for _, p := range l.Partitions {
		require.Len(t, p.TypeGroups, 1)
		g := p.TypeGroups[0]
		assert.Equal(t, mesh.Triangle, g.CellType)
		assert.Equal(t, p.NumElements, g.Count)
		assert.Equal(t, 0, g.StartIndex)
	}
}

func TestPartitionStats(t *testing.T) {
	m := testMesh(t, 4, 4)
	l, err := (&Builder{Mesh: m, NumPartitions: 4, Strategy: RoundRobin}).Build()
	require.NoError(t, err)

	stats := PartitionStats(m, l)
	require.Len(t, stats, 4)
	total := 0.0
	count := 0
	for _, s := range stats {
		total += s.Area
		count += s.Elements
	}
	assert.Equal(t, m.NumCells(), count)
	assert.InDelta(t, 1.0, total, 1e-12)
}
