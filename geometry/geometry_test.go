package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagAssignment(t *testing.T) {
	m := New("")
	assert.Equal(t, DefaultTag, m.Tag)
	assert.Equal(t, -1, m.Dim())

	p0 := m.AddPoint(0, 0, 0.1)
	p1 := m.AddPoint(1, 0, 0.1)
	assert.Equal(t, 1, p0)
	assert.Equal(t, 2, p1)
	assert.Equal(t, 0, m.Dim())

	l0 := m.AddLine(p0, p1)
	assert.Equal(t, 1, l0)
	assert.Equal(t, 1, m.Dim())

	cl := m.AddCurveLoop([]int{l0})
	s := m.AddPlaneSurface(cl)
	assert.Equal(t, 1, s)
	assert.Equal(t, 2, m.Dim())

	m.Clear()
	assert.Equal(t, -1, m.Dim())
	assert.Equal(t, DefaultTag, m.Tag)
}

func TestPhysicalNames(t *testing.T) {
	m := New("t")
	p0 := m.AddPoint(0, 0, 0.1)
	p1 := m.AddPoint(1, 0, 0.1)
	l0 := m.AddLine(p0, p1)

	pg := m.AddPhysicalGroup(1, []int{l0})
	require.NoError(t, m.SetPhysicalName(1, pg, "bottom"))
	got, ok := m.PhysicalByName("bottom")
	require.True(t, ok)
	assert.Equal(t, []int{l0}, got.Entities)
	assert.Equal(t, pg, m.LinePhysical(l0))
	assert.Equal(t, 0, m.LinePhysical(99))

	assert.Error(t, m.SetPhysicalName(2, pg, "nope"))
}

func TestPeriodicTransform(t *testing.T) {
	p := Periodic{Affine: Translation(1, 0, 0)}
	x, y, z := p.Transform(0, 0.25, 0)
	assert.InDelta(t, 1.0, x, 1e-14)
	assert.InDelta(t, 0.25, y, 1e-14)
	assert.InDelta(t, 0.0, z, 1e-14)

	dx, dy, dz, ok := p.IsTranslation()
	require.True(t, ok)
	assert.Equal(t, []float64{1, 0, 0}, []float64{dx, dy, dz})

	// a rotation-like entry breaks pure translation
	p.Affine[1] = 0.5
	_, _, _, ok = p.IsTranslation()
	assert.False(t, ok)
}

func TestSetPeriodicValidation(t *testing.T) {
	m := New("t")
	assert.Error(t, m.SetPeriodic(2, []int{1}, []int{2}, Translation(1, 0, 0)))
	assert.Error(t, m.SetPeriodic(1, []int{1}, []int{2}, []float64{1, 2, 3}))
	assert.Error(t, m.SetPeriodic(1, []int{1, 2}, []int{3}, Translation(1, 0, 0)))
	assert.NoError(t, m.SetPeriodic(1, []int{1}, []int{2}, Translation(1, 0, 0)))
}

func TestGeomA(t *testing.T) {
	m := New("a")
	m.GeomA(0.1, 1e-6)

	assert.Len(t, m.Points, 8)
	assert.Len(t, m.Lines, 8)
	assert.Len(t, m.Loops, 2)
	assert.Len(t, m.Surfaces, 2)
	assert.Equal(t, 2, m.Dim())

	for _, name := range []string{
		"bottom_lower", "bottom_periodic", "top_lower",
		"bottom_upper", "top_periodic", "top_upper", "lower", "upper",
	} {
		_, ok := m.PhysicalByName(name)
		assert.True(t, ok, "missing physical group %q", name)
	}

	// left edge graded to lc/4
	p, err := m.Point(1)
	require.NoError(t, err)
	assert.InDelta(t, 0.025, p.Lc, 1e-14)

	require.Len(t, m.Periodics, 2)
	dx, _, _, ok := m.Periodics[0].IsTranslation()
	require.True(t, ok)
	assert.Equal(t, 1.0, dx)
}

func TestGeomB(t *testing.T) {
	m := New("b")
	m.GeomB(0.1, 1e-6)

	pair, ok := m.PhysicalByName("pair")
	require.True(t, ok)
	assert.Len(t, pair.Entities, 2)

	// third constraint ties the upper bottom edge to the lower top edge
	require.Len(t, m.Periodics, 3)
	_, dy, _, ok := m.Periodics[2].IsTranslation()
	require.True(t, ok)
	assert.InDelta(t, 1e-6, dy, 1e-20)
}

func TestGeomC(t *testing.T) {
	m := New("c")
	m.GeomC(0.1, 2.0, 0.5)

	assert.Len(t, m.Points, 4)
	assert.Len(t, m.Surfaces, 1)
	_, ok := m.PhysicalByName("periodic_lower")
	assert.True(t, ok)

	require.Len(t, m.Periodics, 1)
	dx, _, _, ok := m.Periodics[0].IsTranslation()
	require.True(t, ok)
	assert.Equal(t, 2.0, dx)

	// width flows into the corner points
	p, err := m.Point(2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, p.X)
}
