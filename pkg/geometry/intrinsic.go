package geometry

import (
	"fmt"
	"math"

	"github.com/chazu/geodesic/pkg/surface"
)

// Compute callbacks for the intrinsic quantities. Each fills its storage for
// every element; the registry guarantees declared dependencies are cached
// before a callback runs, and callbacks read nothing else.

func (g *Geometry) computeEdgeLengthsFromInput() error {
	g.edgeLengths = append([]float64(nil), g.inputEdgeLengths...)
	return nil
}

func (g *Geometry) computeEdgeLengthsFromPositions() error {
	m := g.mesh
	g.edgeLengths = make([]float64, m.NEdges())
	for e := 0; e < m.NEdges(); e++ {
		a, b := m.EdgeVertices(surface.Edge(e))
		g.edgeLengths[e] = norm(sub(g.positions[b], g.positions[a]))
	}
	return nil
}

// requireTriangular rejects meshes with non-triangle faces; quantities
// built on per-triangle formulas call it first.
func (g *Geometry) requireTriangular() error {
	m := g.mesh
	for f := 0; f < m.NFaces(); f++ {
		if d := m.FaceDegree(surface.Face(f)); d != 3 {
			return fmt.Errorf("%w: face %d has %d sides", ErrNonTriangular, f, d)
		}
	}
	return nil
}

// faceSides returns the lengths of the three sides of triangle f, in
// halfedge order starting at the face's first halfedge.
func (g *Geometry) faceSides(f surface.Face) (h0 surface.Halfedge, a, b, c float64) {
	m := g.mesh
	h0 = m.FaceHalfedge(f)
	h1 := m.Next(h0)
	h2 := m.Next(h1)
	a = g.edgeLengths[m.EdgeOf(h0)]
	b = g.edgeLengths[m.EdgeOf(h1)]
	c = g.edgeLengths[m.EdgeOf(h2)]
	return h0, a, b, c
}

func (g *Geometry) computeFaceAreas() error {
	if err := g.requireTriangular(); err != nil {
		return err
	}
	m := g.mesh
	g.faceAreas = make([]float64, m.NFaces())
	for f := 0; f < m.NFaces(); f++ {
		_, a, b, c := g.faceSides(surface.Face(f))
		g.faceAreas[f] = heron(a, b, c)
	}
	return nil
}

// heron computes a triangle's area from its side lengths using the
// numerically stable form (Kahan): sides are sorted a >= b >= c and the
// product is grouped so no catastrophic cancellation occurs for needle
// triangles.
func heron(a, b, c float64) float64 {
	if b > a {
		a, b = b, a
	}
	if c > a {
		a, c = c, a
	}
	if c > b {
		b, c = c, b
	}
	p := (a + (b + c)) * (c - (a - b)) * (c + (a - b)) * (a + (b - c))
	if p < 0 {
		// Side lengths violating the triangle inequality: degenerate input.
		return 0
	}
	return 0.25 * math.Sqrt(p)
}

func (g *Geometry) computeCornerAngles() error {
	if err := g.requireTriangular(); err != nil {
		return err
	}
	m := g.mesh
	g.cornerAngles = make([]float64, m.NCorners())
	for c := 0; c < m.NCorners(); c++ {
		h := m.CornerHalfedge(surface.Corner(c))
		// Adjacent sides meet at the corner; the opposite side faces it.
		adjA := g.edgeLengths[m.EdgeOf(h)]
		adjB := g.edgeLengths[m.EdgeOf(m.Prev(h))]
		opp := g.edgeLengths[m.EdgeOf(m.Next(h))]
		g.cornerAngles[c] = lawOfCosines(adjA, adjB, opp)
	}
	return nil
}

// lawOfCosines returns the angle between sides a and b opposite side c,
// clamped against roundoff outside [-1, 1].
func lawOfCosines(a, b, c float64) float64 {
	q := (a*a + b*b - c*c) / (2 * a * b)
	q = math.Min(1, math.Max(-1, q))
	return math.Acos(q)
}

func (g *Geometry) computeVertexAngleSums() error {
	m := g.mesh
	g.vertexAngleSums = make([]float64, m.NVertices())
	for c := 0; c < m.NCorners(); c++ {
		v := m.CornerVertex(surface.Corner(c))
		g.vertexAngleSums[v] += g.cornerAngles[c]
	}
	return nil
}

func (g *Geometry) computeVertexGaussianCurvatures() error {
	m := g.mesh
	g.vertexGaussianCurvatures = make([]float64, m.NVertices())
	for v := 0; v < m.NVertices(); v++ {
		flat := 2 * math.Pi
		if m.IsBoundaryVertex(surface.Vertex(v)) {
			flat = math.Pi
		}
		g.vertexGaussianCurvatures[v] = flat - g.vertexAngleSums[v]
	}
	return nil
}

func (g *Geometry) computeHalfedgeCotanWeights() error {
	m := g.mesh
	g.halfedgeCotanWeights = make([]float64, m.NHalfedges())
	for h := 0; h < m.NHalfedges(); h++ {
		he := surface.Halfedge(h)
		a := g.edgeLengths[m.EdgeOf(he)]
		b := g.edgeLengths[m.EdgeOf(m.Next(he))]
		c := g.edgeLengths[m.EdgeOf(m.Prev(he))]
		area := g.faceAreas[m.FaceOf(he)]
		// Half the cotangent of the angle opposite he, written intrinsically.
		g.halfedgeCotanWeights[h] = (b*b + c*c - a*a) / (8 * area)
	}
	return nil
}

func (g *Geometry) computeEdgeCotanWeights() error {
	m := g.mesh
	g.edgeCotanWeights = make([]float64, m.NEdges())
	for h := 0; h < m.NHalfedges(); h++ {
		e := m.EdgeOf(surface.Halfedge(h))
		g.edgeCotanWeights[e] += g.halfedgeCotanWeights[h]
	}
	return nil
}

func (g *Geometry) computeVertexDualAreas() error {
	m := g.mesh
	g.vertexDualAreas = make([]float64, m.NVertices())
	// Each triangle hands a third of its area to each of its three corners.
	for c := 0; c < m.NCorners(); c++ {
		cn := surface.Corner(c)
		g.vertexDualAreas[m.CornerVertex(cn)] += g.faceAreas[m.CornerFace(cn)] / 3
	}
	return nil
}

func (g *Geometry) computeTotalArea() error {
	g.totalArea = 0
	for _, a := range g.faceAreas {
		g.totalArea += a
	}
	return nil
}

func (g *Geometry) computeMeanEdgeLength() error {
	g.meanEdgeLength = 0
	if len(g.edgeLengths) == 0 {
		return nil
	}
	for _, l := range g.edgeLengths {
		g.meanEdgeLength += l
	}
	g.meanEdgeLength /= float64(len(g.edgeLengths))
	return nil
}
