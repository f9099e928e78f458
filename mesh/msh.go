package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MSH 2.2 element type codes.
const (
	mshLine     = 1
	mshTriangle = 2
	mshQuad     = 3
)

func mshCode(ct CellType) int {
	switch ct {
	case Line:
		return mshLine
	case Triangle:
		return mshTriangle
	case Quad:
		return mshQuad
	}
	return 0
}

func cellTypeFromCode(code int) (CellType, bool) {
	switch code {
	case mshLine:
		return Line, true
	case mshTriangle:
		return Triangle, true
	case mshQuad:
		return Quad, true
	}
	return 0, false
}

// WriteMSH writes the mesh in Gmsh MSH 2.2 ASCII format. Boundary line
// elements come first, then cells; both carry their physical tag in the
// first and second element tag slot.
func (m *Mesh) WriteMSH(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n")

	if len(m.Physicals) > 0 {
		fmt.Fprintf(bw, "$PhysicalNames\n%d\n", len(m.Physicals))
		for _, pn := range m.Physicals {
			fmt.Fprintf(bw, "%d %d %q\n", pn.Dim, pn.Tag, pn.Name)
		}
		fmt.Fprintf(bw, "$EndPhysicalNames\n")
	}

	fmt.Fprintf(bw, "$Nodes\n%d\n", len(m.Vertices))
	for i, v := range m.Vertices {
		fmt.Fprintf(bw, "%d %s %s %s\n", i+1, fmtF(v[0]), fmtF(v[1]), fmtF(v[2]))
	}
	fmt.Fprintf(bw, "$EndNodes\n")

	fmt.Fprintf(bw, "$Elements\n%d\n", len(m.Boundary)+len(m.EtoV))
	id := 1
	for _, be := range m.Boundary {
		fmt.Fprintf(bw, "%d %d 2 %d %d %d %d\n",
			id, mshLine, be.Physical, be.Physical, be.V[0]+1, be.V[1]+1)
		id++
	}
	for k, cell := range m.EtoV {
		phys := m.CellPhysical[k]
		fmt.Fprintf(bw, "%d %d 2 %d %d", id, mshCode(m.CellTypes[k]), phys, phys)
		for _, v := range cell {
			fmt.Fprintf(bw, " %d", v+1)
		}
		fmt.Fprintln(bw)
		id++
	}
	fmt.Fprintf(bw, "$EndElements\n")

	if len(m.Periodic) > 0 {
		fmt.Fprintf(bw, "$Periodic\n%d\n", len(m.Periodic))
		for _, link := range m.Periodic {
			fmt.Fprintf(bw, "1 %d %d\n%d\n", link.SlaveTag, link.MasterTag, len(link.Pairs))
			for _, p := range link.Pairs {
				fmt.Fprintf(bw, "%d %d\n", p[0]+1, p[1]+1)
			}
		}
		fmt.Fprintf(bw, "$EndPeriodic\n")
	}
	return bw.Flush()
}

// WriteFile writes the mesh to path in MSH 2.2 format.
func (m *Mesh) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.WriteMSH(f)
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ReadMSH parses a MSH 2.2 ASCII stream written by WriteMSH (or Gmsh with
// the same sections).
func ReadMSH(r io.Reader) (*Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	m := &Mesh{}
	p := &mshParser{sc: sc}

	for {
		line, ok := p.next()
		if !ok {
			break
		}
		switch line {
		case "$MeshFormat":
			if err := p.readFormat(); err != nil {
				return nil, err
			}
		case "$PhysicalNames":
			if err := p.readPhysicalNames(m); err != nil {
				return nil, err
			}
		case "$Nodes":
			if err := p.readNodes(m); err != nil {
				return nil, err
			}
		case "$Elements":
			if err := p.readElements(m); err != nil {
				return nil, err
			}
		case "$Periodic":
			if err := p.readPeriodic(m); err != nil {
				return nil, err
			}
		default:
			// unknown section: skip to its terminator
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				if err := p.skipSection(line); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(m.Vertices) == 0 {
		return nil, fmt.Errorf("msh: no $Nodes section")
	}
	return m, nil
}

// ReadFile reads a MSH 2.2 file from path.
func ReadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMSH(f)
}

type mshParser struct {
	sc *bufio.Scanner
}

func (p *mshParser) next() (string, bool) {
	for p.sc.Scan() {
		line := strings.TrimSpace(p.sc.Text())
		if line != "" {
			return line, true
		}
	}
	return "", false
}

func (p *mshParser) expect(end string) error {
	line, ok := p.next()
	if !ok || line != end {
		return fmt.Errorf("msh: missing %s", end)
	}
	return nil
}

func (p *mshParser) skipSection(start string) error {
	end := "$End" + strings.TrimPrefix(start, "$")
	for {
		line, ok := p.next()
		if !ok {
			return fmt.Errorf("msh: unterminated section %s", start)
		}
		if line == end {
			return nil
		}
	}
}

func (p *mshParser) readFormat() error {
	line, ok := p.next()
	if !ok {
		return fmt.Errorf("msh: truncated $MeshFormat")
	}
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != "2.2" {
		return fmt.Errorf("msh: unsupported format %q, want 2.2 ASCII", line)
	}
	if fields[1] != "0" {
		return fmt.Errorf("msh: binary files are not supported")
	}
	return p.expect("$EndMeshFormat")
}

func (p *mshParser) readCount(section string) (int, error) {
	line, ok := p.next()
	if !ok {
		return 0, fmt.Errorf("msh: truncated %s", section)
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("msh: bad count %q in %s", line, section)
	}
	return n, nil
}

func (p *mshParser) readPhysicalNames(m *Mesh) error {
	n, err := p.readCount("$PhysicalNames")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		line, ok := p.next()
		if !ok {
			return fmt.Errorf("msh: truncated $PhysicalNames")
		}
		fields := strings.SplitN(line, " ", 3)
		if len(fields) != 3 {
			return fmt.Errorf("msh: bad physical name line %q", line)
		}
		dim, err1 := strconv.Atoi(fields[0])
		tag, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return fmt.Errorf("msh: bad physical name line %q", line)
		}
		m.Physicals = append(m.Physicals, PhysicalName{
			Dim: dim, Tag: tag, Name: strings.Trim(fields[2], `"`),
		})
	}
	return p.expect("$EndPhysicalNames")
}

func (p *mshParser) readNodes(m *Mesh) error {
	n, err := p.readCount("$Nodes")
	if err != nil {
		return err
	}
	m.Vertices = make([][3]float64, 0, n)
	for i := 0; i < n; i++ {
		line, ok := p.next()
		if !ok {
			return fmt.Errorf("msh: truncated $Nodes")
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return fmt.Errorf("msh: bad node line %q", line)
		}
		var v [3]float64
		for j := 0; j < 3; j++ {
			v[j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return fmt.Errorf("msh: bad node line %q", line)
			}
		}
		m.Vertices = append(m.Vertices, v)
	}
	return p.expect("$EndNodes")
}

func (p *mshParser) readElements(m *Mesh) error {
	n, err := p.readCount("$Elements")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		line, ok := p.next()
		if !ok {
			return fmt.Errorf("msh: truncated $Elements")
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return fmt.Errorf("msh: bad element line %q", line)
		}
		code, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("msh: bad element line %q", line)
		}
		nTags, err := strconv.Atoi(fields[2])
		if err != nil || len(fields) < 3+nTags {
			return fmt.Errorf("msh: bad element line %q", line)
		}
		phys := 0
		if nTags > 0 {
			phys, err = strconv.Atoi(fields[3])
			if err != nil {
				return fmt.Errorf("msh: bad element line %q", line)
			}
		}
		ct, ok2 := cellTypeFromCode(code)
		if !ok2 {
			// point and higher-order elements are not modeled here
			continue
		}
		nodeFields := fields[3+nTags:]
		if len(nodeFields) != ct.NumVerts() {
			return fmt.Errorf("msh: element line %q has %d nodes, want %d",
				line, len(nodeFields), ct.NumVerts())
		}
		nodes := make([]int, len(nodeFields))
		for j, f := range nodeFields {
			id, err := strconv.Atoi(f)
			if err != nil || id < 1 {
				return fmt.Errorf("msh: bad node reference %q", f)
			}
			nodes[j] = id - 1
		}
		if ct == Line {
			m.Boundary = append(m.Boundary, BoundaryEdge{
				V: [2]int{nodes[0], nodes[1]}, Physical: phys,
			})
			continue
		}
		m.EtoV = append(m.EtoV, nodes)
		m.CellTypes = append(m.CellTypes, ct)
		m.CellPhysical = append(m.CellPhysical, phys)
	}
	return p.expect("$EndElements")
}

func (p *mshParser) readPeriodic(m *Mesh) error {
	n, err := p.readCount("$Periodic")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		line, ok := p.next()
		if !ok {
			return fmt.Errorf("msh: truncated $Periodic")
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return fmt.Errorf("msh: bad periodic link line %q", line)
		}
		slave, err1 := strconv.Atoi(fields[1])
		master, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil {
			return fmt.Errorf("msh: bad periodic link line %q", line)
		}
		count, err := p.readCount("$Periodic")
		if err != nil {
			return err
		}
		link := PeriodicLink{SlaveTag: slave, MasterTag: master}
		for j := 0; j < count; j++ {
			line, ok := p.next()
			if !ok {
				return fmt.Errorf("msh: truncated $Periodic")
			}
			pf := strings.Fields(line)
			if len(pf) != 2 {
				return fmt.Errorf("msh: bad periodic pair %q", line)
			}
			s, err1 := strconv.Atoi(pf[0])
			mv, err2 := strconv.Atoi(pf[1])
			if err1 != nil || err2 != nil || s < 1 || mv < 1 {
				return fmt.Errorf("msh: bad periodic pair %q", line)
			}
			link.Pairs = append(link.Pairs, [2]int{s - 1, mv - 1})
		}
		m.Periodic = append(m.Periodic, link)
	}
	return p.expect("$EndPeriodic")
}
