package geometry

import (
	"math"
	"math/cmplx"

	"github.com/chazu/geodesic/pkg/surface"
)

// Tangent-space quantities. Each face and each vertex carries a flat 2D
// coordinate system; directions within it are complex numbers, and
// rotations between systems are unit-magnitude rotors composed by complex
// multiplication and inverted by conjugation.

func (g *Geometry) computeHalfedgeVectorsInFace() error {
	m := g.mesh
	g.halfedgeVectorsInFace = make([]complex128, m.NHalfedges())
	for f := 0; f < m.NFaces(); f++ {
		// Lay the face out in the plane: the first halfedge runs along the
		// positive real axis, and every subsequent side turns by the
		// exterior angle at the corner between them.
		first := m.FaceHalfedge(surface.Face(f))
		dir := 0.0
		h := first
		for {
			l := g.edgeLengths[m.EdgeOf(h)]
			g.halfedgeVectorsInFace[h] = cmplx.Rect(l, dir)
			next := m.Next(h)
			if next == first {
				break
			}
			dir += math.Pi - g.cornerAngles[m.CornerOf(next)]
			h = next
		}
	}
	return nil
}

func (g *Geometry) computeHalfedgeVectorsInVertex() error {
	m := g.mesh
	g.halfedgeVectorsInVertex = make([]complex128, m.NHalfedges())
	for v := 0; v < m.NVertices(); v++ {
		vert := surface.Vertex(v)
		start := m.VertexHalfedge(vert)
		if start == surface.Invalid {
			continue
		}

		// Rescale the corner angles so the fan spans a full turn (half a
		// turn on the boundary); this flattens the cone point at v.
		flat := 2 * math.Pi
		if m.IsBoundaryVertex(vert) {
			flat = math.Pi
		}
		s := 1.0
		if g.vertexAngleSums[v] > 0 {
			s = flat / g.vertexAngleSums[v]
		}

		phi := 0.0
		h := start
		for {
			l := g.edgeLengths[m.EdgeOf(h)]
			g.halfedgeVectorsInVertex[h] = cmplx.Rect(l, phi)
			phi += g.cornerAngles[m.CornerOf(h)] * s
			h = m.NextAroundVertex(h)
			if h == start || h == surface.Invalid {
				break
			}
		}
	}
	return nil
}

func (g *Geometry) computeTransportVectors() error {
	m := g.mesh
	g.transportVectors = make([]complex128, m.NHalfedges())
	for h := 0; h < m.NHalfedges(); h++ {
		he := surface.Halfedge(h)
		if !m.HasTwin(he) {
			// Transport across the boundary is undefined; the entry stays
			// zero.
			continue
		}
		tw := m.Twin(he)
		uh := g.halfedgeVectorsInVertex[he]
		ut := g.halfedgeVectorsInVertex[tw]
		if uh == 0 || ut == 0 {
			continue
		}
		// The halfedge he points one way along its edge as seen from its
		// tail; the twin points the opposite way as seen from the tip. The
		// rotor aligning the two views carries the extra half turn.
		r := -ut / uh
		g.transportVectors[h] = r / complex(cmplx.Abs(r), 0)
	}
	return nil
}
