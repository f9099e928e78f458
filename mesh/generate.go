package mesh

import (
	"fmt"
	"math"

	"github.com/onlinefem/onlinefem/geometry"
)

// matchTol is the coordinate tolerance for node identification and periodic
// matching.
const matchTol = 1e-9

// Generate meshes every plane surface of a geometry model with triangles.
// dim must be 2; lower-dimensional generation is not supported. Surfaces in
// the built-in templates are axis-aligned rectangles; anything else is
// rejected. Cell density follows the smallest characteristic length among
// the model's points, boundary line elements inherit the enclosing
// physical curve tags, and periodic constraints become explicit node links.
func Generate(g *geometry.Model, dim int) (*Mesh, error) {
	if dim != 2 {
		return nil, fmt.Errorf("mesh generation supports dim 2, got %d", dim)
	}
	if len(g.Surfaces) == 0 {
		return nil, fmt.Errorf("model %q has no plane surfaces", g.Tag)
	}

	lc := math.Inf(1)
	for _, p := range g.Points {
		lc = math.Min(lc, p.Lc)
	}
	if lc <= 0 || math.IsInf(lc, 1) {
		return nil, fmt.Errorf("model %q has no positive characteristic length", g.Tag)
	}

	b := &builder{
		mesh:      &Mesh{},
		index:     make(map[[2]int64]int),
		lineNodes: make(map[int][]int),
	}
	for _, s := range g.Surfaces {
		if err := b.meshSurface(g, s, lc); err != nil {
			return nil, fmt.Errorf("surface %d: %w", s.Tag, err)
		}
	}

	for _, pg := range g.Physicals {
		b.mesh.Physicals = append(b.mesh.Physicals, PhysicalName{
			Dim: pg.Dim, Tag: pg.Tag, Name: pg.Name,
		})
	}

	for _, pc := range g.Periodics {
		for i := range pc.Slaves {
			link, err := b.matchPeriodic(pc, pc.Slaves[i], pc.Masters[i])
			if err != nil {
				return nil, err
			}
			b.mesh.Periodic = append(b.mesh.Periodic, link)
		}
	}
	return b.mesh, nil
}

type builder struct {
	mesh  *Mesh
	index map[[2]int64]int // quantized position -> vertex, dedups shared corners
	// lineNodes collects the mesh nodes created on each geometry line, in
	// sweep order, for boundary tagging and periodic matching.
	lineNodes map[int][]int
}

func quantize(x, y float64) [2]int64 {
	return [2]int64{
		int64(math.Round(x / matchTol)),
		int64(math.Round(y / matchTol)),
	}
}

// vertex returns the index for a position, creating it on first sight.
func (b *builder) vertex(x, y float64) int {
	key := quantize(x, y)
	if idx, ok := b.index[key]; ok {
		return idx
	}
	idx := len(b.mesh.Vertices)
	b.mesh.Vertices = append(b.mesh.Vertices, [3]float64{x, y, 0})
	b.index[key] = idx
	return idx
}

// rect describes an axis-aligned rectangular surface.
type rect struct {
	xmin, xmax, ymin, ymax float64
}

func (r rect) w() float64 { return r.xmax - r.xmin }
func (r rect) h() float64 { return r.ymax - r.ymin }

// meshSurface triangulates one rectangular surface at characteristic length
// lc. Every surface shares the model-wide minimum so that periodically
// constrained edges of differently graded surfaces mesh identically.
func (b *builder) meshSurface(g *geometry.Model, s geometry.PlaneSurface, lc float64) error {
	loop, err := g.Loop(s.Loop)
	if err != nil {
		return err
	}
	r, err := surfaceRect(g, loop)
	if err != nil {
		return err
	}

	nx := int(math.Max(1, math.Round(r.w()/lc)))
	ny := int(math.Max(1, math.Round(r.h()/lc)))
	dx := r.w() / float64(nx)
	dy := r.h() / float64(ny)

	// grid nodes, deduped against neighboring surfaces
	grid := make([]int, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			grid[j*(nx+1)+i] = b.vertex(r.xmin+float64(i)*dx, r.ymin+float64(j)*dy)
		}
	}
	idx := func(i, j int) int { return grid[j*(nx+1)+i] }

	phys := g.SurfacePhysical(s.Tag)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v00, v10 := idx(i, j), idx(i+1, j)
			v01, v11 := idx(i, j+1), idx(i+1, j+1)
			b.mesh.EtoV = append(b.mesh.EtoV, []int{v00, v10, v11}, []int{v00, v11, v01})
			b.mesh.CellTypes = append(b.mesh.CellTypes, Triangle, Triangle)
			b.mesh.CellPhysical = append(b.mesh.CellPhysical, phys, phys)
		}
	}

	// boundary nodes and line elements per loop line
	for _, lt := range loop.Lines {
		ln, err := g.Line(lt)
		if err != nil {
			return err
		}
		nodes, err := sideNodes(g, ln, r, idx, nx, ny)
		if err != nil {
			return err
		}
		b.lineNodes[lt] = nodes
		physLine := g.LinePhysical(lt)
		if physLine == 0 {
			continue
		}
		for i := 0; i+1 < len(nodes); i++ {
			b.mesh.Boundary = append(b.mesh.Boundary, BoundaryEdge{
				V:        [2]int{nodes[i], nodes[i+1]},
				Physical: physLine,
			})
		}
	}
	return nil
}

// surfaceRect validates that the loop bounds an axis-aligned rectangle and
// returns its extents.
func surfaceRect(g *geometry.Model, loop geometry.CurveLoop) (rect, error) {
	if len(loop.Lines) != 4 {
		return rect{}, fmt.Errorf("curve loop %d has %d lines, want 4", loop.Tag, len(loop.Lines))
	}
	seen := map[int]bool{}
	var corners []geometry.Point
	for _, lt := range loop.Lines {
		ln, err := g.Line(lt)
		if err != nil {
			return rect{}, err
		}
		for _, pt := range []int{ln.Start, ln.End} {
			if seen[pt] {
				continue
			}
			seen[pt] = true
			p, err := g.Point(pt)
			if err != nil {
				return rect{}, err
			}
			corners = append(corners, p)
		}
	}
	if len(corners) != 4 {
		return rect{}, fmt.Errorf("curve loop %d has %d distinct points, want 4", loop.Tag, len(corners))
	}

	r := rect{xmin: math.Inf(1), xmax: math.Inf(-1), ymin: math.Inf(1), ymax: math.Inf(-1)}
	for _, p := range corners {
		r.xmin = math.Min(r.xmin, p.X)
		r.xmax = math.Max(r.xmax, p.X)
		r.ymin = math.Min(r.ymin, p.Y)
		r.ymax = math.Max(r.ymax, p.Y)
	}
	if r.w() <= 0 || r.h() <= 0 {
		return rect{}, fmt.Errorf("degenerate surface bounded by loop %d", loop.Tag)
	}
	for _, p := range corners {
		onX := near(p.X, r.xmin) || near(p.X, r.xmax)
		onY := near(p.Y, r.ymin) || near(p.Y, r.ymax)
		if !onX || !onY {
			return rect{}, fmt.Errorf("loop %d is not an axis-aligned rectangle", loop.Tag)
		}
	}
	return r, nil
}

func near(a, b float64) bool { return math.Abs(a-b) <= matchTol }

// sideNodes returns the grid nodes lying on a rectangle side, ordered from
// the line's start point to its end point.
func sideNodes(g *geometry.Model, ln geometry.Line, r rect, idx func(i, j int) int, nx, ny int) ([]int, error) {
	ps, err := g.Point(ln.Start)
	if err != nil {
		return nil, err
	}
	pe, err := g.Point(ln.End)
	if err != nil {
		return nil, err
	}

	var nodes []int
	switch {
	case near(ps.Y, pe.Y) && near(ps.Y, r.ymin): // bottom
		nodes = rowNodes(idx, nx, 0)
	case near(ps.Y, pe.Y) && near(ps.Y, r.ymax): // top
		nodes = rowNodes(idx, nx, ny)
	case near(ps.X, pe.X) && near(ps.X, r.xmin): // left
		nodes = colNodes(idx, ny, 0)
	case near(ps.X, pe.X) && near(ps.X, r.xmax): // right
		nodes = colNodes(idx, ny, nx)
	default:
		return nil, fmt.Errorf("line %d does not lie on the surface boundary", ln.Tag)
	}

	// grid sweeps run toward +x/+y; flip to follow the line direction
	if pe.X < ps.X || pe.Y < ps.Y {
		for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
			nodes[i], nodes[j] = nodes[j], nodes[i]
		}
	}
	return nodes, nil
}

func rowNodes(idx func(i, j int) int, nx, j int) []int {
	nodes := make([]int, nx+1)
	for i := 0; i <= nx; i++ {
		nodes[i] = idx(i, j)
	}
	return nodes
}

func colNodes(idx func(i, j int) int, ny, i int) []int {
	nodes := make([]int, ny+1)
	for j := 0; j <= ny; j++ {
		nodes[j] = idx(i, j)
	}
	return nodes
}

// matchPeriodic pairs every node on the master line with the node on the
// slave line at its image under the constraint's affine map.
func (b *builder) matchPeriodic(pc geometry.Periodic, slaveTag, masterTag int) (PeriodicLink, error) {
	slaves, ok := b.lineNodes[slaveTag]
	if !ok {
		return PeriodicLink{}, fmt.Errorf("periodic slave line %d was not meshed", slaveTag)
	}
	masters, ok := b.lineNodes[masterTag]
	if !ok {
		return PeriodicLink{}, fmt.Errorf("periodic master line %d was not meshed", masterTag)
	}
	if len(slaves) != len(masters) {
		return PeriodicLink{}, fmt.Errorf(
			"periodic node count mismatch between lines %d and %d: %d vs %d",
			slaveTag, masterTag, len(slaves), len(masters))
	}

	byPos := make(map[[2]int64]int, len(slaves))
	for _, s := range slaves {
		v := b.mesh.Vertices[s]
		byPos[quantize(v[0], v[1])] = s
	}

	link := PeriodicLink{SlaveTag: slaveTag, MasterTag: masterTag}
	for _, mv := range masters {
		v := b.mesh.Vertices[mv]
		x, y, _ := pc.Transform(v[0], v[1], v[2])
		s, ok := byPos[quantize(x, y)]
		if !ok {
			return PeriodicLink{}, fmt.Errorf(
				"no slave node on line %d matches master node at (%g, %g)",
				slaveTag, v[0], v[1])
		}
		link.Pairs = append(link.Pairs, [2]int{s, mv})
	}
	return link, nil
}
