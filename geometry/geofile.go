package geometry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// GeoExt is the extension used for unrolled geometry files.
const GeoExt = "geo_unrolled"

// WriteGeo writes the model as an unrolled .geo script: every entity as a
// flat statement, in tag order.
func (m *Model) WriteGeo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, p := range m.Points {
		fmt.Fprintf(bw, "Point(%d) = {%s, %s, 0, %s};\n",
			p.Tag, ftoa(p.X), ftoa(p.Y), ftoa(p.Lc))
	}
	for _, l := range m.Lines {
		fmt.Fprintf(bw, "Line(%d) = {%d, %d};\n", l.Tag, l.Start, l.End)
	}
	for _, cl := range m.Loops {
		fmt.Fprintf(bw, "Curve Loop(%d) = {%s};\n", cl.Tag, itoaList(cl.Lines))
	}
	for _, s := range m.Surfaces {
		fmt.Fprintf(bw, "Plane Surface(%d) = {%d};\n", s.Tag, s.Loop)
	}
	for _, pg := range m.Physicals {
		kind := "Curve"
		if pg.Dim == 2 {
			kind = "Surface"
		}
		fmt.Fprintf(bw, "Physical %s(%q, %d) = {%s};\n",
			kind, pg.Name, pg.Tag, itoaList(pg.Entities))
	}
	for _, pc := range m.Periodics {
		if dx, dy, dz, ok := pc.IsTranslation(); ok {
			fmt.Fprintf(bw, "Periodic Curve {%s} = {%s} Translate {%s, %s, %s};\n",
				itoaList(pc.Slaves), itoaList(pc.Masters), ftoa(dx), ftoa(dy), ftoa(dz))
			continue
		}
		vals := make([]string, len(pc.Affine))
		for i, v := range pc.Affine {
			vals[i] = ftoa(v)
		}
		fmt.Fprintf(bw, "Periodic Curve {%s} = {%s} Affine {%s};\n",
			itoaList(pc.Slaves), itoaList(pc.Masters), strings.Join(vals, ", "))
	}
	return bw.Flush()
}

// Save writes the model to dir as "<tag>.<format>". Only the unrolled geo
// format is supported; geometry data has no common representation to
// translate into other kernels' formats.
func (m *Model) Save(dir, format string) (string, error) {
	if format == "" {
		format = GeoExt
	}
	if format != GeoExt && format != "geo" {
		return "", fmt.Errorf("unsupported geometry format %q", format)
	}
	path := filepath.Join(dir, m.Tag+"."+format)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := m.WriteGeo(f); err != nil {
		return "", err
	}
	return path, nil
}

// Open reads an unrolled .geo file written by Save. Failures are reported
// as a single "can't open" error naming the file.
func Open(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openErr(path, err)
	}
	defer f.Close()
	m, err := ReadGeo(f)
	if err != nil {
		return nil, openErr(path, err)
	}
	if m.Dim() < 0 {
		return nil, openErr(path, fmt.Errorf("no entities"))
	}
	tag := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if tag != "" {
		m.Tag = tag
	}
	return m, nil
}

func openErr(path string, err error) error {
	return fmt.Errorf("can't open the file %q: %w", filepath.Base(path), err)
}

// ReadGeo parses the unrolled geo statements produced by WriteGeo.
func ReadGeo(r io.Reader) (*Model, error) {
	m := New("")
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if err := m.parseStatement(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) parseStatement(line string) error {
	line = strings.TrimSuffix(line, ";")
	switch {
	case strings.HasPrefix(line, "Point("):
		vals, err := parseAssign(line, "Point")
		if err != nil {
			return err
		}
		if len(vals) != 4 {
			return fmt.Errorf("point needs 4 values, got %d", len(vals))
		}
		m.AddPoint(vals[0], vals[1], vals[3])
	case strings.HasPrefix(line, "Line("):
		vals, err := parseAssign(line, "Line")
		if err != nil {
			return err
		}
		if len(vals) != 2 {
			return fmt.Errorf("line needs 2 point tags, got %d", len(vals))
		}
		m.AddLine(int(vals[0]), int(vals[1]))
	case strings.HasPrefix(line, "Curve Loop("):
		vals, err := parseAssign(line, "Curve Loop")
		if err != nil {
			return err
		}
		m.AddCurveLoop(toInts(vals))
	case strings.HasPrefix(line, "Plane Surface("):
		vals, err := parseAssign(line, "Plane Surface")
		if err != nil {
			return err
		}
		if len(vals) != 1 {
			return fmt.Errorf("plane surface needs 1 loop tag, got %d", len(vals))
		}
		m.AddPlaneSurface(int(vals[0]))
	case strings.HasPrefix(line, "Physical "):
		return m.parsePhysical(line)
	case strings.HasPrefix(line, "Periodic Curve "):
		return m.parsePeriodic(line)
	default:
		return fmt.Errorf("unrecognized statement %q", line)
	}
	return nil
}

func (m *Model) parsePhysical(line string) error {
	dim := 1
	rest := strings.TrimPrefix(line, "Physical ")
	switch {
	case strings.HasPrefix(rest, "Curve("):
		rest = strings.TrimPrefix(rest, "Curve(")
	case strings.HasPrefix(rest, "Surface("):
		dim = 2
		rest = strings.TrimPrefix(rest, "Surface(")
	default:
		return fmt.Errorf("unrecognized physical statement %q", line)
	}
	head, body, ok := strings.Cut(rest, ") = {")
	if !ok {
		return fmt.Errorf("malformed physical statement %q", line)
	}
	body = strings.TrimSuffix(body, "}")
	name := ""
	if i := strings.LastIndex(head, ","); i >= 0 {
		name = strings.Trim(strings.TrimSpace(head[:i]), `"`)
	}
	vals, err := parseFloats(body)
	if err != nil {
		return err
	}
	tag := m.AddPhysicalGroup(dim, toInts(vals))
	return m.SetPhysicalName(dim, tag, name)
}

func (m *Model) parsePeriodic(line string) error {
	rest := strings.TrimPrefix(line, "Periodic Curve ")
	slavePart, rest, ok := strings.Cut(rest, "} = {")
	if !ok {
		return fmt.Errorf("malformed periodic statement %q", line)
	}
	slaves, err := parseFloats(strings.TrimPrefix(slavePart, "{"))
	if err != nil {
		return err
	}
	masterPart, xformPart, ok := strings.Cut(rest, "} ")
	if !ok {
		return fmt.Errorf("malformed periodic statement %q", line)
	}
	masters, err := parseFloats(masterPart)
	if err != nil {
		return err
	}
	var affine []float64
	switch {
	case strings.HasPrefix(xformPart, "Translate {"):
		v, err := parseFloats(strings.TrimSuffix(strings.TrimPrefix(xformPart, "Translate {"), "}"))
		if err != nil {
			return err
		}
		if len(v) != 3 {
			return fmt.Errorf("translate needs 3 values, got %d", len(v))
		}
		affine = Translation(v[0], v[1], v[2])
	case strings.HasPrefix(xformPart, "Affine {"):
		v, err := parseFloats(strings.TrimSuffix(strings.TrimPrefix(xformPart, "Affine {"), "}"))
		if err != nil {
			return err
		}
		affine = v
	default:
		return fmt.Errorf("malformed periodic transform %q", xformPart)
	}
	return m.SetPeriodic(1, toInts(slaves), toInts(masters), affine)
}

// parseAssign extracts the value list of a "Kind(tag) = {v, v, ...}"
// statement. The declared tag is ignored; tags are reassigned densely on
// re-add, which preserves them for files written by WriteGeo.
func parseAssign(line, kind string) ([]float64, error) {
	rest := strings.TrimPrefix(line, kind+"(")
	_, body, ok := strings.Cut(rest, ") = {")
	if !ok {
		return nil, fmt.Errorf("malformed %s statement %q", kind, line)
	}
	return parseFloats(strings.TrimSuffix(body, "}"))
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", strings.TrimSpace(p))
		}
		out = append(out, v)
	}
	return out, nil
}

func toInts(vals []float64) []int {
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = int(v)
	}
	return out
}

func itoaList(tags []int) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, ", ")
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
