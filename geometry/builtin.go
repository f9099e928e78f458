package geometry

// Translation returns the row-major 4x4 affine matrix for a pure translation.
func Translation(dx, dy, dz float64) []float64 {
	return []float64{
		1, 0, 0, dx,
		0, 1, 0, dy,
		0, 0, 1, dz,
		0, 0, 0, 1,
	}
}

// GeomA builds a two-rectangles assembly from a unit square: a bottom
// rectangle of length 1 and height 0.5 with its corner at the origin, and a
// top rectangle of the same dimensions at y = 0.5 + eps. The shared boundary
// is not imprinted. Left-edge points are graded to lc/4. Both rectangles get
// a left/right periodic constraint.
func (m *Model) GeomA(lc, eps float64) {
	p0 := m.AddPoint(0, 0, lc/4)
	p1 := m.AddPoint(1, 0, lc)
	p2 := m.AddPoint(1, 0.5, lc)
	p3 := m.AddPoint(0, 0.5, lc/4)
	p4 := m.AddPoint(0, 0.5+eps, lc)
	p5 := m.AddPoint(1, 0.5+eps, lc)
	p6 := m.AddPoint(1, 1.0+eps, lc)
	p7 := m.AddPoint(0, 1.0+eps, lc)

	l0 := m.AddLine(p0, p1) // bottom lower
	l1 := m.AddLine(p1, p2) // right lower
	l2 := m.AddLine(p2, p3) // top lower
	l3 := m.AddLine(p3, p0) // left lower
	l4 := m.AddLine(p4, p5) // bottom upper
	l5 := m.AddLine(p5, p6) // right upper
	l6 := m.AddLine(p6, p7) // top upper
	l7 := m.AddLine(p7, p4) // left upper

	cla := m.AddCurveLoop([]int{l0, l1, l2, l3})
	clb := m.AddCurveLoop([]int{l4, l5, l6, l7})
	sa := m.AddPlaneSurface(cla)
	sb := m.AddPlaneSurface(clb)

	plaL := m.AddPhysicalGroup(1, []int{l0})
	plaP := m.AddPhysicalGroup(1, []int{l1, l3})
	plbL := m.AddPhysicalGroup(1, []int{l2})
	plaU := m.AddPhysicalGroup(1, []int{l4})
	plbP := m.AddPhysicalGroup(1, []int{l5, l7})
	plbU := m.AddPhysicalGroup(1, []int{l6})
	m.SetPhysicalName(1, plaL, "bottom_lower")
	m.SetPhysicalName(1, plaP, "bottom_periodic")
	m.SetPhysicalName(1, plbL, "top_lower")
	m.SetPhysicalName(1, plaU, "bottom_upper")
	m.SetPhysicalName(1, plbP, "top_periodic")
	m.SetPhysicalName(1, plbU, "top_upper")

	psa := m.AddPhysicalGroup(2, []int{sa})
	psb := m.AddPhysicalGroup(2, []int{sb})
	m.SetPhysicalName(2, psa, "lower")
	m.SetPhysicalName(2, psb, "upper")

	// left to right
	m.SetPeriodic(1, []int{l1}, []int{l3}, Translation(1, 0, 0))
	m.SetPeriodic(1, []int{l5}, []int{l7}, Translation(1, 0, 0))
}

// GeomB is the same assembly as GeomA but with a matching boundary between
// the top of the lower rectangle and the bottom of the upper rectangle: the
// two edges share one physical group and an extra periodic constraint ties
// their meshes together across the eps gap.
func (m *Model) GeomB(lc, eps float64) {
	p0 := m.AddPoint(0, 0, lc/4)
	p1 := m.AddPoint(1, 0, lc/4)
	p2 := m.AddPoint(1, 0.5, lc/4)
	p3 := m.AddPoint(0, 0.5, lc/4)
	p4 := m.AddPoint(0, 0.5+eps, lc)
	p5 := m.AddPoint(1, 0.5+eps, lc)
	p6 := m.AddPoint(1, 1.0+eps, lc)
	p7 := m.AddPoint(0, 1.0+eps, lc)

	l0 := m.AddLine(p0, p1) // bottom lower
	l1 := m.AddLine(p1, p2) // right lower
	l2 := m.AddLine(p2, p3) // top lower
	l3 := m.AddLine(p3, p0) // left lower
	l4 := m.AddLine(p4, p5) // bottom upper
	l5 := m.AddLine(p5, p6) // right upper
	l6 := m.AddLine(p6, p7) // top upper
	l7 := m.AddLine(p7, p4) // left upper

	cla := m.AddCurveLoop([]int{l0, l1, l2, l3})
	clb := m.AddCurveLoop([]int{l4, l5, l6, l7})
	sa := m.AddPlaneSurface(cla)
	sb := m.AddPlaneSurface(clb)

	plaL := m.AddPhysicalGroup(1, []int{l0})
	plaP := m.AddPhysicalGroup(1, []int{l1, l3})
	plPair := m.AddPhysicalGroup(1, []int{l2, l4})
	plbP := m.AddPhysicalGroup(1, []int{l5, l7})
	plbU := m.AddPhysicalGroup(1, []int{l6})
	m.SetPhysicalName(1, plaL, "bottom_lower")
	m.SetPhysicalName(1, plaP, "bottom_periodic")
	m.SetPhysicalName(1, plPair, "pair")
	m.SetPhysicalName(1, plbP, "top_periodic")
	m.SetPhysicalName(1, plbU, "top_upper")

	psa := m.AddPhysicalGroup(2, []int{sa})
	psb := m.AddPhysicalGroup(2, []int{sb})
	m.SetPhysicalName(2, psa, "lower")
	m.SetPhysicalName(2, psb, "upper")

	// left to right
	m.SetPeriodic(1, []int{l1}, []int{l3}, Translation(1, 0, 0))
	m.SetPeriodic(1, []int{l5}, []int{l7}, Translation(1, 0, 0))
	// bottom top
	m.SetPeriodic(1, []int{l4}, []int{l2}, Translation(0, eps, 0))
}

// GeomC is a single w by h rectangle with a left/right periodic constraint.
// Left-edge points are graded to lc/4.
func (m *Model) GeomC(lc, w, h float64) {
	p0 := m.AddPoint(0, 0, lc/4)
	p1 := m.AddPoint(w, 0, lc)
	p2 := m.AddPoint(w, h, lc)
	p3 := m.AddPoint(0, h, lc/4)

	l0 := m.AddLine(p0, p1) // bottom
	l1 := m.AddLine(p1, p2) // right
	l2 := m.AddLine(p2, p3) // top
	l3 := m.AddLine(p3, p0) // left

	cla := m.AddCurveLoop([]int{l0, l1, l2, l3})
	sa := m.AddPlaneSurface(cla)

	plaL := m.AddPhysicalGroup(1, []int{l0})
	plaP := m.AddPhysicalGroup(1, []int{l1, l3})
	plaU := m.AddPhysicalGroup(1, []int{l2})
	m.SetPhysicalName(1, plaL, "bottom_lower")
	m.SetPhysicalName(1, plaP, "periodic_lower")
	m.SetPhysicalName(1, plaU, "top_lower")

	psa := m.AddPhysicalGroup(2, []int{sa})
	m.SetPhysicalName(2, psa, "lower")

	// left to right
	m.SetPeriodic(1, []int{l1}, []int{l3}, Translation(w, 0, 0))
}
