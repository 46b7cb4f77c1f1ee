package geometry

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/chazu/geodesic/pkg/surface"
)

func TestHalfedgeVectorsInFace(t *testing.T) {
	g := regularTetrahedron(t)
	if err := g.RequireHalfedgeVectorsInFace(); err != nil {
		t.Fatal(err)
	}
	vecs, _ := g.HalfedgeVectorsInFace()
	m := g.Mesh()

	for h, v := range vecs {
		// Magnitude is the halfedge's length.
		if math.Abs(cmplx.Abs(v)-math.Sqrt2) > eps {
			t.Errorf("|vec[%d]| = %g, want sqrt(2)", h, cmplx.Abs(v))
		}
	}

	// The three sides of each laid-out triangle close up.
	for f := 0; f < m.NFaces(); f++ {
		sum := complex(0, 0)
		for _, h := range m.FaceHalfedges(surface.Face(f)) {
			sum += vecs[h]
		}
		if cmplx.Abs(sum) > 1e-12 {
			t.Errorf("face %d layout does not close: |sum| = %g", f, cmplx.Abs(sum))
		}
	}
}

func TestHalfedgeVectorsInVertex(t *testing.T) {
	g := regularTetrahedron(t)
	if err := g.RequireHalfedgeVectorsInVertex(); err != nil {
		t.Fatal(err)
	}
	vecs, _ := g.HalfedgeVectorsInVertex()
	m := g.Mesh()

	for v := 0; v < m.NVertices(); v++ {
		vert := surface.Vertex(v)
		start := m.VertexHalfedge(vert)

		// Magnitudes are the edge lengths, and the rescaled fan angles are
		// uniform: the tetrahedron's three pi/3 corners stretch to 2*pi/3
		// spacing.
		var args []float64
		h := start
		for {
			if math.Abs(cmplx.Abs(vecs[h])-math.Sqrt2) > eps {
				t.Errorf("|vec[%v]| = %g, want sqrt(2)", h, cmplx.Abs(vecs[h]))
			}
			args = append(args, cmplx.Phase(vecs[h]))
			h = m.NextAroundVertex(h)
			if h == start || h == surface.Invalid {
				break
			}
		}
		if len(args) != 3 {
			t.Fatalf("fan of %v has %d vectors, want 3", vert, len(args))
		}
		for i := 1; i < len(args); i++ {
			d := math.Mod(args[i]-args[i-1]+4*math.Pi, 2*math.Pi)
			if math.Abs(d-2*math.Pi/3) > 1e-12 {
				t.Errorf("fan spacing at %v = %g, want 2*pi/3", vert, d)
			}
		}
	}
}

func TestTransportRotors(t *testing.T) {
	g := regularTetrahedron(t)
	if err := g.RequireTransportVectorsAlongHalfedge(); err != nil {
		t.Fatal(err)
	}
	rotors, _ := g.TransportVectorsAlongHalfedge()
	m := g.Mesh()

	for h, r := range rotors {
		he := surface.Halfedge(h)
		if !m.HasTwin(he) {
			if r != 0 {
				t.Errorf("boundary rotor[%d] = %v, want 0", h, r)
			}
			continue
		}
		// Unit magnitude: rotors rotate, never scale.
		if math.Abs(cmplx.Abs(r)-1) > eps {
			t.Errorf("|rotor[%d]| = %g, want 1", h, cmplx.Abs(r))
		}
		// Round trip along the twin is the identity: composition by
		// multiplication, inversion by conjugation.
		back := rotors[m.Twin(he)]
		if cmplx.Abs(r*back-1) > 1e-12 {
			t.Errorf("rotor[%d] * rotor[twin] = %v, want 1", h, r*back)
		}
		if cmplx.Abs(back-cmplx.Conj(r)) > 1e-12 {
			t.Errorf("inverse rotor[%d] is not the conjugate", h)
		}
	}
}
