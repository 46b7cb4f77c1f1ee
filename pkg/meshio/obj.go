// Package meshio reads and writes surface meshes in Wavefront OBJ
// format. Only vertex positions and face connectivity are handled;
// texture coordinates, normals and material statements are ignored on
// read and never written.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/geodesic/pkg/surface"
)

// ErrBadOBJ reports a malformed OBJ statement.
var ErrBadOBJ = fmt.Errorf("meshio: malformed obj")

// ReadOBJ parses an OBJ stream into a halfedge mesh and vertex
// positions. Faces may be polygonal. Face indices of the forms "v",
// "v/vt", "v//vn" and "v/vt/vn" are accepted; only the vertex index is
// used. Negative indices count back from the most recent vertex.
func ReadOBJ(r io.Reader) (*surface.Mesh, []v3.Vec, error) {
	var positions []v3.Vec
	var faces [][]int

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("%w: line %d: vertex needs 3 coordinates", ErrBadOBJ, lineNo)
			}
			var p v3.Vec
			var err error
			if p.X, err = strconv.ParseFloat(fields[1], 64); err == nil {
				if p.Y, err = strconv.ParseFloat(fields[2], 64); err == nil {
					p.Z, err = strconv.ParseFloat(fields[3], 64)
				}
			}
			if err != nil {
				return nil, nil, fmt.Errorf("%w: line %d: %v", ErrBadOBJ, lineNo, err)
			}
			positions = append(positions, p)

		case "f":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("%w: line %d: face needs at least 3 vertices", ErrBadOBJ, lineNo)
			}
			face := make([]int, 0, len(fields)-1)
			for _, f := range fields[1:] {
				idx, err := parseFaceIndex(f, len(positions))
				if err != nil {
					return nil, nil, fmt.Errorf("%w: line %d: %v", ErrBadOBJ, lineNo, err)
				}
				face = append(face, idx)
			}
			faces = append(faces, face)
		}
		// Other statements (vn, vt, o, g, s, usemtl, mtllib) are
		// skipped.
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("meshio: read: %w", err)
	}

	m, err := surface.NewMesh(len(positions), faces)
	if err != nil {
		return nil, nil, fmt.Errorf("meshio: %w", err)
	}
	return m, positions, nil
}

// parseFaceIndex extracts the 0-based vertex index from an OBJ face
// element. nVerts is the number of vertices read so far, used to
// resolve negative indices.
func parseFaceIndex(s string, nVerts int) (int, error) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx += nVerts
	default:
		return 0, fmt.Errorf("face index 0 is not valid")
	}
	if idx < 0 || idx >= nVerts {
		return 0, fmt.Errorf("face index %s out of range", s)
	}
	return idx, nil
}

// WriteOBJ writes a mesh and its vertex positions as OBJ. Faces keep
// their stored vertex order.
func WriteOBJ(w io.Writer, m *surface.Mesh, positions []v3.Vec) error {
	if len(positions) != m.NVertices() {
		return fmt.Errorf("meshio: %d positions for %d vertices", len(positions), m.NVertices())
	}
	bw := bufio.NewWriter(w)
	for _, p := range positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
	}
	for f := 0; f < m.NFaces(); f++ {
		bw.WriteString("f")
		for _, v := range m.FaceVertices(surface.Face(f)) {
			fmt.Fprintf(bw, " %d", int(v)+1)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadOBJFile reads an OBJ mesh from the named file.
func ReadOBJFile(path string) (*surface.Mesh, []v3.Vec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("meshio: %w", err)
	}
	defer f.Close()
	return ReadOBJ(f)
}

// WriteOBJFile writes a mesh to the named file, creating or truncating
// it.
func WriteOBJFile(path string, m *surface.Mesh, positions []v3.Vec) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("meshio: %w", err)
	}
	if err := WriteOBJ(f, m, positions); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
