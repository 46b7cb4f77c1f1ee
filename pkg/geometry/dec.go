package geometry

import (
	"github.com/chazu/geodesic/pkg/linalg"
	"github.com/chazu/geodesic/pkg/surface"
)

// Discrete-exterior-calculus operators. Edges are oriented from the tail of
// their canonical halfedge to its tip; faces take the orientation of their
// halfedge traversal.

func (g *Geometry) computeD0() error {
	m := g.mesh
	entries := make([]linalg.Triplet, 0, 2*m.NEdges())
	for e := 0; e < m.NEdges(); e++ {
		tail, tip := m.EdgeVertices(surface.Edge(e))
		entries = append(entries,
			linalg.Triplet{Row: e, Col: int(tail), Val: -1},
			linalg.Triplet{Row: e, Col: int(tip), Val: 1},
		)
	}
	var err error
	g.d0, err = linalg.NewSparse(m.NEdges(), m.NVertices(), entries)
	return err
}

func (g *Geometry) computeD1() error {
	m := g.mesh
	entries := make([]linalg.Triplet, 0, m.NHalfedges())
	for h := 0; h < m.NHalfedges(); h++ {
		he := surface.Halfedge(h)
		e := m.EdgeOf(he)
		sign := 1.0
		if m.EdgeHalfedge(e) != he {
			// The face traverses the edge against its orientation.
			sign = -1.0
		}
		entries = append(entries, linalg.Triplet{
			Row: int(m.FaceOf(he)), Col: int(e), Val: sign,
		})
	}
	var err error
	g.d1, err = linalg.NewSparse(m.NFaces(), m.NEdges(), entries)
	return err
}

func (g *Geometry) computeHodge0() error {
	g.hodge0 = append([]float64(nil), g.vertexDualAreas...)
	return nil
}

func (g *Geometry) computeHodge1() error {
	g.hodge1 = append([]float64(nil), g.edgeCotanWeights...)
	return nil
}

func (g *Geometry) computeHodge2() error {
	g.hodge2 = make([]float64, len(g.faceAreas))
	for i, a := range g.faceAreas {
		if a != 0 {
			g.hodge2[i] = 1 / a
		}
	}
	return nil
}

func (g *Geometry) computeCotanLaplacian() error {
	m := g.mesh
	entries := make([]linalg.Triplet, 0, 4*m.NEdges())
	for e := 0; e < m.NEdges(); e++ {
		w := g.edgeCotanWeights[e]
		a, b := m.EdgeVertices(surface.Edge(e))
		i, j := int(a), int(b)
		entries = append(entries,
			linalg.Triplet{Row: i, Col: i, Val: w},
			linalg.Triplet{Row: j, Col: j, Val: w},
			linalg.Triplet{Row: i, Col: j, Val: -w},
			linalg.Triplet{Row: j, Col: i, Val: -w},
		)
	}
	var err error
	g.cotanLaplacian, err = linalg.NewSparse(m.NVertices(), m.NVertices(), entries)
	return err
}
