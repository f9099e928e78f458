// Package geometry holds a small 2D boundary-representation model: points,
// lines, curve loops and plane surfaces, with physical group tagging and
// periodic curve constraints. It covers the rectangle-assembly templates
// this project meshes; it is not a general CAD kernel.
package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DefaultTag is the model name used when none is given.
const DefaultTag = "geometry"

// Point is a geometric vertex with a characteristic mesh length.
type Point struct {
	Tag  int
	X, Y float64
	Lc   float64
}

// Line is a straight curve between two point tags.
type Line struct {
	Tag        int
	Start, End int
}

// CurveLoop is a closed chain of line tags.
type CurveLoop struct {
	Tag   int
	Lines []int
}

// PlaneSurface is a surface bounded by a single curve loop.
type PlaneSurface struct {
	Tag  int
	Loop int
}

// PhysicalGroup names a set of same-dimension entities for boundary and
// domain tagging. Dim is 1 for curves and 2 for surfaces.
type PhysicalGroup struct {
	Dim      int
	Tag      int
	Name     string
	Entities []int
}

// Periodic constrains mesh nodes on the slave curves to the image of the
// master curves under an affine transform. The transform is a flattened
// row-major 4x4 matrix acting on homogeneous coordinates.
type Periodic struct {
	Dim     int
	Slaves  []int
	Masters []int
	Affine  []float64
}

// Transform applies the affine map to a point.
func (p *Periodic) Transform(x, y, z float64) (float64, float64, float64) {
	t := mat.NewDense(4, 4, p.Affine)
	v := mat.NewVecDense(4, []float64{x, y, z, 1})
	var out mat.VecDense
	out.MulVec(t, v)
	return out.AtVec(0), out.AtVec(1), out.AtVec(2)
}

// IsTranslation reports whether the affine map is a pure translation, and
// returns the translation vector when it is.
func (p *Periodic) IsTranslation() (dx, dy, dz float64, ok bool) {
	ident := []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if p.Affine[4*i+j] != ident[3*i+j] {
				return 0, 0, 0, false
			}
		}
	}
	for j := 0; j < 4; j++ {
		want := 0.0
		if j == 3 {
			want = 1
		}
		if p.Affine[12+j] != want {
			return 0, 0, 0, false
		}
	}
	return p.Affine[3], p.Affine[7], p.Affine[11], true
}

// Model is a mutable geometry under construction. Entity tags are dense,
// per-class and 1-based, matching the order of the Add calls.
type Model struct {
	Tag string

	Points    []Point
	Lines     []Line
	Loops     []CurveLoop
	Surfaces  []PlaneSurface
	Physicals []PhysicalGroup
	Periodics []Periodic
}

// New creates an empty model. An empty tag falls back to DefaultTag.
func New(tag string) *Model {
	if tag == "" {
		tag = DefaultTag
	}
	return &Model{Tag: tag}
}

// AddPoint appends a point and returns its tag.
func (m *Model) AddPoint(x, y, lc float64) int {
	tag := len(m.Points) + 1
	m.Points = append(m.Points, Point{Tag: tag, X: x, Y: y, Lc: lc})
	return tag
}

// AddLine appends a line between two existing point tags and returns its tag.
func (m *Model) AddLine(start, end int) int {
	tag := len(m.Lines) + 1
	m.Lines = append(m.Lines, Line{Tag: tag, Start: start, End: end})
	return tag
}

// AddCurveLoop appends a closed loop of line tags and returns its tag.
func (m *Model) AddCurveLoop(lines []int) int {
	tag := len(m.Loops) + 1
	m.Loops = append(m.Loops, CurveLoop{Tag: tag, Lines: append([]int(nil), lines...)})
	return tag
}

// AddPlaneSurface appends a surface bounded by the given loop tag and
// returns its tag.
func (m *Model) AddPlaneSurface(loop int) int {
	tag := len(m.Surfaces) + 1
	m.Surfaces = append(m.Surfaces, PlaneSurface{Tag: tag, Loop: loop})
	return tag
}

// AddPhysicalGroup appends a physical group over entities of dimension dim
// and returns its tag. Physical tags are global across dimensions, matching
// a single shared counter.
func (m *Model) AddPhysicalGroup(dim int, entities []int) int {
	tag := len(m.Physicals) + 1
	m.Physicals = append(m.Physicals, PhysicalGroup{
		Dim:      dim,
		Tag:      tag,
		Entities: append([]int(nil), entities...),
	})
	return tag
}

// SetPhysicalName names an existing physical group.
func (m *Model) SetPhysicalName(dim, tag int, name string) error {
	for i := range m.Physicals {
		if m.Physicals[i].Dim == dim && m.Physicals[i].Tag == tag {
			m.Physicals[i].Name = name
			return nil
		}
	}
	return fmt.Errorf("no physical group with dim %d and tag %d", dim, tag)
}

// SetPeriodic constrains the mesh on the slave curves to follow the master
// curves through the affine transform. affine must hold 16 values (row-major
// 4x4); slave and master lists must pair up one to one.
func (m *Model) SetPeriodic(dim int, slaves, masters []int, affine []float64) error {
	if dim != 1 {
		return fmt.Errorf("periodic constraints are only supported for curves, got dim %d", dim)
	}
	if len(affine) != 16 {
		return fmt.Errorf("affine transform must have 16 entries, got %d", len(affine))
	}
	if len(slaves) != len(masters) {
		return fmt.Errorf("slave/master count mismatch: %d vs %d", len(slaves), len(masters))
	}
	m.Periodics = append(m.Periodics, Periodic{
		Dim:     dim,
		Slaves:  append([]int(nil), slaves...),
		Masters: append([]int(nil), masters...),
		Affine:  append([]float64(nil), affine...),
	})
	return nil
}

// Dim returns the highest entity dimension present, or -1 for an empty model.
func (m *Model) Dim() int {
	switch {
	case len(m.Surfaces) > 0:
		return 2
	case len(m.Lines) > 0:
		return 1
	case len(m.Points) > 0:
		return 0
	}
	return -1
}

// Clear resets the model to empty, keeping its tag.
func (m *Model) Clear() {
	*m = Model{Tag: m.Tag}
}

// Point returns the point with the given tag.
func (m *Model) Point(tag int) (Point, error) {
	if tag < 1 || tag > len(m.Points) {
		return Point{}, fmt.Errorf("unknown point tag %d", tag)
	}
	return m.Points[tag-1], nil
}

// Line returns the line with the given tag.
func (m *Model) Line(tag int) (Line, error) {
	if tag < 1 || tag > len(m.Lines) {
		return Line{}, fmt.Errorf("unknown line tag %d", tag)
	}
	return m.Lines[tag-1], nil
}

// Loop returns the curve loop with the given tag.
func (m *Model) Loop(tag int) (CurveLoop, error) {
	if tag < 1 || tag > len(m.Loops) {
		return CurveLoop{}, fmt.Errorf("unknown curve loop tag %d", tag)
	}
	return m.Loops[tag-1], nil
}

// PhysicalByName finds a physical group by name.
func (m *Model) PhysicalByName(name string) (PhysicalGroup, bool) {
	for _, pg := range m.Physicals {
		if pg.Name == name {
			return pg, true
		}
	}
	return PhysicalGroup{}, false
}

// LinePhysical returns the tag of the dim-1 physical group containing the
// line, or 0 when the line is untagged.
func (m *Model) LinePhysical(lineTag int) int {
	for _, pg := range m.Physicals {
		if pg.Dim != 1 {
			continue
		}
		for _, e := range pg.Entities {
			if e == lineTag {
				return pg.Tag
			}
		}
	}
	return 0
}

// SurfacePhysical returns the tag of the dim-2 physical group containing the
// surface, or 0 when the surface is untagged.
func (m *Model) SurfacePhysical(surfTag int) int {
	for _, pg := range m.Physicals {
		if pg.Dim != 2 {
			continue
		}
		for _, e := range pg.Entities {
			if e == surfTag {
				return pg.Tag
			}
		}
	}
	return 0
}
