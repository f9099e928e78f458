package mesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlinefem/onlinefem/geometry"
)

func TestMSHRoundTrip(t *testing.T) {
	g := geometry.New("c")
	g.GeomC(0.5, 1.0, 0.5)
	orig, err := Generate(g, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, orig.WriteMSH(&buf))

	got, err := ReadMSH(&buf)
	require.NoError(t, err)

	assert.Equal(t, orig.NumVertices(), got.NumVertices())
	assert.Equal(t, orig.EtoV, got.EtoV)
	assert.Equal(t, orig.CellTypes, got.CellTypes)
	assert.Equal(t, orig.CellPhysical, got.CellPhysical)
	assert.Equal(t, orig.Boundary, got.Boundary)
	assert.Equal(t, orig.Physicals, got.Physicals)
	assert.Equal(t, orig.Periodic, got.Periodic)
	assert.InDelta(t, orig.TotalArea(), got.TotalArea(), 1e-12)
}

func TestMSHSections(t *testing.T) {
	m, err := Rectangle([3]float64{0, 0, 0}, [3]float64{1, 1, 0}, 1, 1, Triangle)
	require.NoError(t, err)
	m.Physicals = []PhysicalName{{Dim: 2, Tag: 1, Name: "lower"}}

	var buf bytes.Buffer
	require.NoError(t, m.WriteMSH(&buf))
	out := buf.String()

	assert.Contains(t, out, "$MeshFormat\n2.2 0 8\n$EndMeshFormat")
	assert.Contains(t, out, "$PhysicalNames\n1\n2 1 \"lower\"\n$EndPhysicalNames")
	assert.Contains(t, out, "$Nodes\n4\n")
	assert.Contains(t, out, "$Elements\n2\n")
	// no periodic section without links
	assert.NotContains(t, out, "$Periodic")
}

func TestMSHFile(t *testing.T) {
	dir := t.TempDir()
	m, err := UnitSquare(2)
	require.NoError(t, err)

	path := dir + "/square.msh"
	require.NoError(t, m.WriteFile(path))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m.NumCells(), got.NumCells())
}

func TestReadMSHUnsupportedVersion(t *testing.T) {
	in := "$MeshFormat\n4.1 0 8\n$EndMeshFormat\n"
	_, err := ReadMSH(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestReadMSHBinaryRejected(t *testing.T) {
	in := "$MeshFormat\n2.2 1 8\n$EndMeshFormat\n"
	_, err := ReadMSH(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binary")
}

func TestReadMSHBadCounts(t *testing.T) {
	in := "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\nnope\n"
	_, err := ReadMSH(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$Nodes")
}

func TestReadMSHMissingNodes(t *testing.T) {
	in := "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n"
	_, err := ReadMSH(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$Nodes")
}

func TestReadMSHSkipsUnknownSections(t *testing.T) {
	in := "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n" +
		"$Comments\nanything\n$EndComments\n" +
		"$Nodes\n1\n1 0 0 0\n$EndNodes\n" +
		"$Elements\n0\n$EndElements\n"
	m, err := ReadMSH(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 1, m.NumVertices())
}
