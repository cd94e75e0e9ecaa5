package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// SU2 element type codes, per https://su2code.github.io/docs_v7/Mesh-File/
const (
	su2Line          = 3
	su2Triangle      = 5
	su2Quadrilateral = 9
)

// ReadSU2 parses a 2D mesh in the SU2 ASCII format. Triangles and
// quadrilaterals are accepted as cells; each boundary marker section must
// contain only line elements. markerIDs maps the file's MARKER_TAG strings
// to the integer marker ids the boundary conditions are keyed on; a tag
// missing from the map is an error.
func ReadSU2(path string, markerIDs map[string]int) (*Grid, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	g, err := parseSU2(bufio.NewReader(fh), markerIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func parseSU2(r *bufio.Reader, markerIDs map[string]int) (*Grid, error) {
	var (
		coords     [][2]float64
		cells      [][]int
		edgeMarker = map[[2]int]int{}
	)
	for {
		line, err := nextLine(r)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		switch key {
		case "NDIME":
			if val != "2" {
				return nil, fmt.Errorf("only 2D meshes are supported, NDIME= %s", val)
			}

		case "NELEM":
			var nelem int
			if _, err = fmt.Sscanf(val, "%d", &nelem); err != nil {
				return nil, fmt.Errorf("bad NELEM %q", val)
			}
			cells = make([][]int, nelem)
			for i := 0; i < nelem; i++ {
				if cells[i], err = readSU2Element(r); err != nil {
					return nil, fmt.Errorf("element %d: %w", i, err)
				}
			}

		case "NPOIN":
			var npoin int
			if _, err = fmt.Sscanf(val, "%d", &npoin); err != nil {
				return nil, fmt.Errorf("bad NPOIN %q", val)
			}
			coords = make([][2]float64, npoin)
			for i := 0; i < npoin; i++ {
				line, err = nextLine(r)
				if err != nil {
					return nil, err
				}
				if _, err = fmt.Sscanf(line, "%f %f", &coords[i][0], &coords[i][1]); err != nil {
					return nil, fmt.Errorf("point %d: %w", i, err)
				}
			}

		case "NMARK":
			var nmark int
			if _, err = fmt.Sscanf(val, "%d", &nmark); err != nil {
				return nil, fmt.Errorf("bad NMARK %q", val)
			}
			for n := 0; n < nmark; n++ {
				if err = readSU2Marker(r, markerIDs, edgeMarker); err != nil {
					return nil, err
				}
			}
		}
	}
	if coords == nil || cells == nil {
		return nil, fmt.Errorf("missing NPOIN or NELEM section")
	}
	return NewGrid(coords, cells, func(n1, n2 int) int {
		return edgeMarker[edgeKey(n1, n2)]
	})
}

func readSU2Element(r *bufio.Reader) ([]int, error) {
	line, err := nextLine(r)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	var elType int
	if _, err = fmt.Sscanf(fields[0], "%d", &elType); err != nil {
		return nil, err
	}
	var nn int
	switch elType {
	case su2Triangle:
		nn = 3
	case su2Quadrilateral:
		nn = 4
	default:
		return nil, fmt.Errorf("unsupported element type %d", elType)
	}
	if len(fields) < 1+nn {
		return nil, fmt.Errorf("short element line %q", line)
	}
	nodes := make([]int, nn)
	for i := 0; i < nn; i++ {
		if _, err = fmt.Sscanf(fields[1+i], "%d", &nodes[i]); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

func readSU2Marker(r *bufio.Reader, markerIDs map[string]int, edgeMarker map[[2]int]int) error {
	line, err := nextLine(r)
	if err != nil {
		return err
	}
	_, tag, ok := strings.Cut(line, "=")
	if !ok || !strings.Contains(line, "MARKER_TAG") {
		return fmt.Errorf("expected MARKER_TAG, have %q", line)
	}
	tag = strings.TrimSpace(tag)
	id, ok := markerIDs[tag]
	if !ok {
		return fmt.Errorf("marker tag %q has no id assigned", tag)
	}
	if line, err = nextLine(r); err != nil {
		return err
	}
	var nedges int
	if _, err = fmt.Sscanf(line, "MARKER_ELEMS= %d", &nedges); err != nil {
		return fmt.Errorf("expected MARKER_ELEMS, have %q", line)
	}
	for i := 0; i < nedges; i++ {
		if line, err = nextLine(r); err != nil {
			return err
		}
		var elType, v1, v2 int
		if _, err = fmt.Sscanf(line, "%d %d %d", &elType, &v1, &v2); err != nil {
			return fmt.Errorf("marker %q edge %d: %w", tag, i, err)
		}
		if elType != su2Line {
			return fmt.Errorf("marker %q contains non-line element type %d", tag, elType)
		}
		edgeMarker[edgeKey(v1, v2)] = id
	}
	return nil
}

func edgeKey(n1, n2 int) [2]int {
	if n1 > n2 {
		n1, n2 = n2, n1
	}
	return [2]int{n1, n2}
}

// nextLine returns the next non-empty, non-comment line.
func nextLine(r *bufio.Reader) (string, error) {
	for {
		line, err := r.ReadString('\n')
		line = strings.TrimSpace(line)
		if len(line) > 0 && !strings.HasPrefix(line, "%") {
			return line, nil
		}
		if err != nil {
			return "", err
		}
	}
}
