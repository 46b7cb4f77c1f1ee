package geometry

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/geodesic/pkg/surface"
)

// Immediate single-element computations. These bypass the registry
// entirely: no holds, no caching, recomputed from scratch on every call.
// They exist for one-off probes where setting up require/unrequire pairs is
// not worth it.

// EdgeLengthOf computes the length of edge e directly from positions.
func EdgeLengthOf(m *surface.Mesh, positions []v3.Vec, e surface.Edge) float64 {
	a, b := m.EdgeVertices(e)
	return norm(sub(positions[b], positions[a]))
}

// FaceAreaOf computes the area of triangle f directly from positions.
func FaceAreaOf(m *surface.Mesh, positions []v3.Vec, f surface.Face) (float64, error) {
	vs := m.FaceVertices(f)
	if len(vs) != 3 {
		return 0, fmt.Errorf("%w: face %d has %d sides", ErrNonTriangular, f, len(vs))
	}
	p0, p1, p2 := positions[vs[0]], positions[vs[1]], positions[vs[2]]
	return 0.5 * norm(cross(sub(p1, p0), sub(p2, p0))), nil
}

// FaceNormalOf computes the unit normal of triangle f directly from
// positions.
func FaceNormalOf(m *surface.Mesh, positions []v3.Vec, f surface.Face) (v3.Vec, error) {
	vs := m.FaceVertices(f)
	if len(vs) != 3 {
		return v3.Vec{}, fmt.Errorf("%w: face %d has %d sides", ErrNonTriangular, f, len(vs))
	}
	p0, p1, p2 := positions[vs[0]], positions[vs[1]], positions[vs[2]]
	return normalize(cross(sub(p1, p0), sub(p2, p0))), nil
}

// CornerAngleOf computes the interior angle at corner c directly from
// positions.
func CornerAngleOf(m *surface.Mesh, positions []v3.Vec, c surface.Corner) (float64, error) {
	h := m.CornerHalfedge(c)
	f := m.FaceOf(h)
	if m.FaceDegree(f) != 3 {
		return 0, fmt.Errorf("%w: face %d", ErrNonTriangular, f)
	}
	at := positions[m.Tail(h)]
	a := norm(sub(positions[m.Tip(h)], at))
	b := norm(sub(positions[m.Tail(m.Prev(h))], at))
	opp := norm(sub(positions[m.Tip(h)], positions[m.Tail(m.Prev(h))]))
	return lawOfCosines(a, b, opp), nil
}
