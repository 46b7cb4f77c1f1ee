package geometry

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/geodesic/pkg/surface"
)

// Compute callbacks for the extrinsic quantities, registered only on the
// embedded tier.

func (g *Geometry) computeFaceNormals() error {
	if err := g.requireTriangular(); err != nil {
		return err
	}
	m := g.mesh
	g.faceNormals = make([]v3.Vec, m.NFaces())
	for f := 0; f < m.NFaces(); f++ {
		vs := m.FaceVertices(surface.Face(f))
		p0 := g.positions[vs[0]]
		p1 := g.positions[vs[1]]
		p2 := g.positions[vs[2]]
		g.faceNormals[f] = normalize(cross(sub(p1, p0), sub(p2, p0)))
	}
	return nil
}

func (g *Geometry) computeVertexNormals() error {
	m := g.mesh
	g.vertexNormals = make([]v3.Vec, m.NVertices())
	// Angle-weighted average of the incident face normals: wide corners
	// count for more, so the result is independent of how the neighborhood
	// happens to be triangulated.
	for c := 0; c < m.NCorners(); c++ {
		cn := surface.Corner(c)
		v := m.CornerVertex(cn)
		n := g.faceNormals[m.CornerFace(cn)]
		g.vertexNormals[v] = add(g.vertexNormals[v], scale(n, g.cornerAngles[c]))
	}
	for v := range g.vertexNormals {
		g.vertexNormals[v] = normalize(g.vertexNormals[v])
	}
	return nil
}
