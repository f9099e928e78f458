package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumbers(t *testing.T) {
	reply, err := Numbers("GET")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, reply.Numbers)
	assert.Equal(t, "GET", reply.Method)
}

func TestBuildTemplateDefaults(t *testing.T) {
	for _, name := range []string{"a", "b", "c", "C"} {
		g, err := BuildTemplate(MeshRequest{Geometry: name})
		require.NoError(t, err, name)
		assert.Equal(t, 2, g.Dim(), name)
	}

	_, err := BuildTemplate(MeshRequest{Geometry: "d"})
	assert.ErrorContains(t, err, `unknown geometry "d"`)
}

func TestMeshTemplateGeomC(t *testing.T) {
	reply, err := MeshTemplate(MeshRequest{
		Geometry: "c", Lc: 0.5, W: 1, H: 0.5, Partitions: 4,
	})
	require.NoError(t, err)

	// lc/4 grading on the lower corners drives an 8x4 grid
	assert.Equal(t, 45, reply.Vertices)
	assert.Equal(t, 64, reply.Elements)
	assert.Equal(t, 24, reply.Boundary)
	assert.Equal(t, 1, reply.Periodic)
	assert.InDelta(t, 0.5, reply.TotalArea, 1e-12)

	require.Len(t, reply.Partitions, 4)
	sum := 0
	for _, p := range reply.Partitions {
		sum += p.Elements
		assert.Equal(t, 16, p.Elements)
		assert.Positive(t, p.Halo)
	}
	assert.Equal(t, reply.Elements, sum)
}

func TestMeshTemplateSinglePartition(t *testing.T) {
	reply, err := MeshTemplate(MeshRequest{Geometry: "c", Lc: 0.5, W: 1, H: 0.5})
	require.NoError(t, err)
	require.Len(t, reply.Partitions, 1)
	assert.Equal(t, reply.Elements, reply.Partitions[0].Elements)
	assert.Zero(t, reply.Partitions[0].Halo)
}
