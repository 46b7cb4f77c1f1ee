package meshio

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/geodesic/pkg/surface"
)

const tetraOBJ = `# regular tetrahedron
v 0 0 0
v 1 1 0
v 1 0 1
v 0 1 1
f 1 2 3
f 1 4 2
f 1 3 4
f 2 4 3
`

func TestReadOBJ(t *testing.T) {
	m, positions, err := ReadOBJ(strings.NewReader(tetraOBJ))
	if err != nil {
		t.Fatal(err)
	}
	if m.NVertices() != 4 || m.NFaces() != 4 || m.NEdges() != 6 {
		t.Errorf("got %d vertices, %d faces, %d edges; want 4, 4, 6",
			m.NVertices(), m.NFaces(), m.NEdges())
	}
	if m.NBoundaryEdges() != 0 {
		t.Errorf("closed mesh has %d boundary edges", m.NBoundaryEdges())
	}
	want := v3.Vec{X: 1, Y: 1, Z: 0}
	if positions[1] != want {
		t.Errorf("position[1] = %v, want %v", positions[1], want)
	}
}

func TestReadOBJSlashIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3//1
`
	m, _, err := ReadOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if m.NFaces() != 1 {
		t.Errorf("got %d faces, want 1", m.NFaces())
	}
}

func TestReadOBJNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	m, _, err := ReadOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	vs := m.FaceVertices(0)
	if vs[0] != 0 || vs[1] != 1 || vs[2] != 2 {
		t.Errorf("face vertices = %v, want [0 1 2]", vs)
	}
}

func TestReadOBJErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"bad coordinate", "v 1 x 3\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := ReadOBJ(strings.NewReader(tc.src)); !errors.Is(err, ErrBadOBJ) {
				t.Errorf("err = %v, want ErrBadOBJ", err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	m, positions, err := ReadOBJ(strings.NewReader(tetraOBJ))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m, positions); err != nil {
		t.Fatal(err)
	}
	m2, positions2, err := ReadOBJ(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if m2.NVertices() != m.NVertices() || m2.NEdges() != m.NEdges() || m2.NFaces() != m.NFaces() {
		t.Errorf("round trip changed element counts")
	}
	for i := range positions {
		d := math.Abs(positions[i].X-positions2[i].X) +
			math.Abs(positions[i].Y-positions2[i].Y) +
			math.Abs(positions[i].Z-positions2[i].Z)
		if d > 1e-12 {
			t.Errorf("position %d drifted by %g", i, d)
		}
	}
	for f := 0; f < m.NFaces(); f++ {
		a := m.FaceVertices(surface.Face(f))
		b := m2.FaceVertices(surface.Face(f))
		if len(a) != len(b) {
			t.Fatalf("face %d degree changed", f)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("face %d vertex %d: %v != %v", f, i, a[i], b[i])
			}
		}
	}
}

func TestWriteOBJSizeMismatch(t *testing.T) {
	m, positions, err := ReadOBJ(strings.NewReader(tetraOBJ))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m, positions[:2]); err == nil {
		t.Error("expected error for mismatched position count")
	}
}
