// Package solver is the mesh microservice. It answers the numbers probe
// the front end forwards, and meshes the built-in geometry templates on
// demand.
package solver

import (
	"fmt"
	"strings"
	"sync"

	"github.com/onlinefem/onlinefem/geometry"
	"github.com/onlinefem/onlinefem/mesh"
	"github.com/onlinefem/onlinefem/partitions"
)

// warmupN is the resolution of the unit-square mesh built per request.
const warmupN = 32

// NumbersReply is the probe response.
type NumbersReply struct {
	Numbers []int  `json:"numbers"`
	Method  string `json:"method"`
}

// MeshRequest selects a geometry template and its parameters.
type MeshRequest struct {
	Geometry   string  `json:"geometry"`
	Lc         float64 `json:"lc"`
	Eps        float64 `json:"eps"`
	W          float64 `json:"w"`
	H          float64 `json:"h"`
	Partitions int     `json:"partitions"`
}

// MeshReply summarizes a meshed template.
type MeshReply struct {
	Geometry   string             `json:"geometry"`
	Vertices   int                `json:"vertices"`
	Elements   int                `json:"elements"`
	Boundary   int                `json:"boundary_edges"`
	TotalArea  float64            `json:"total_area"`
	Periodic   int                `json:"periodic_links"`
	Partitions []partitions.Stats `json:"partitions"`
}

// Numbers rebuilds the warmup mesh and returns 0..9 tagged with the HTTP
// method. The mesh is rebuilt and checked on every hit.
func Numbers(method string) (*NumbersReply, error) {
	m, err := mesh.UnitSquare(warmupN)
	if err != nil {
		return nil, fmt.Errorf("warmup mesh: %w", err)
	}
	if err := m.CheckOrientation(); err != nil {
		return nil, fmt.Errorf("warmup mesh: %w", err)
	}

	nums := make([]int, 10)
	for i := range nums {
		nums[i] = i
	}
	return &NumbersReply{Numbers: nums, Method: method}, nil
}

// BuildTemplate instantiates one of the built-in geometries. Zero-valued
// parameters fall back to the defaults the templates were designed with.
func BuildTemplate(req MeshRequest) (*geometry.Model, error) {
	lc := req.Lc
	if lc == 0 {
		lc = 0.1
	}
	eps := req.Eps
	if eps == 0 {
		eps = 1e-6
	}
	w, h := req.W, req.H
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 0.5
	}

	name := strings.ToLower(req.Geometry)
	g := geometry.New(name)
	switch name {
	case "a":
		g.GeomA(lc, eps)
	case "b":
		g.GeomB(lc, eps)
	case "c":
		g.GeomC(lc, w, h)
	default:
		return nil, fmt.Errorf("unknown geometry %q", req.Geometry)
	}
	return g, nil
}

// MeshTemplate meshes the requested template, partitions it and gathers
// the per-partition stats concurrently, one worker per partition.
func MeshTemplate(req MeshRequest) (*MeshReply, error) {
	g, err := BuildTemplate(req)
	if err != nil {
		return nil, err
	}
	m, err := mesh.Generate(g, 2)
	if err != nil {
		return nil, fmt.Errorf("mesh %s: %w", g.Tag, err)
	}

	nParts := req.Partitions
	if nParts < 1 {
		nParts = 1
	}
	b := partitions.Builder{Mesh: m, NumPartitions: nParts, Strategy: partitions.Balanced}
	layout, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("partition %s: %w", g.Tag, err)
	}

	ec, err := partitions.NewEdgeConnector(m, layout)
	if err != nil {
		return nil, fmt.Errorf("partition %s: %w", g.Tag, err)
	}
	if err := ec.Verify(); err != nil {
		return nil, fmt.Errorf("partition %s: %w", g.Tag, err)
	}

	stats := make([]partitions.Stats, layout.NumPartitions)
	var wg sync.WaitGroup
	for i := range layout.Partitions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := &layout.Partitions[i]
			s := partitions.Stats{ID: p.ID, Elements: p.NumElements, Halo: ec.HaloSize(p.ID)}
			for _, e := range p.Elements {
				s.Area += m.SignedArea(e)
			}
			stats[i] = s
		}(i)
	}
	wg.Wait()

	reply := &MeshReply{
		Geometry:   g.Tag,
		Vertices:   m.NumVertices(),
		Elements:   m.NumCells(),
		Boundary:   len(m.Boundary),
		Periodic:   len(m.Periodic),
		Partitions: stats,
	}
	for _, s := range stats {
		reply.TotalArea += s.Area
	}
	return reply, nil
}
